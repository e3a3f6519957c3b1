package builders

import (
	"hotelcore/models"
)

// ReservationBuilder giúp tạo reservation theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo instance mới của ReservationBuilder
func NewReservationBuilder(hotelID uint, roomType string) *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{
			HotelID:  hotelID,
			RoomType: roomType,
			Guests:   1,
		},
	}
}

// WithOwner thêm người tạo và khách hàng (nếu có)
func (b *ReservationBuilder) WithOwner(ownerID uint, customerID *uint) *ReservationBuilder {
	b.reservation.OwnerID = ownerID
	b.reservation.CustomerID = customerID
	return b
}

// WithDates thêm ngày đến và ngày đi
func (b *ReservationBuilder) WithDates(r models.DateRange) *ReservationBuilder {
	b.reservation.ArrivalDate = r.From()
	b.reservation.DepartureDate = r.To()
	return b
}

// WithRoom gắn phòng cụ thể
func (b *ReservationBuilder) WithRoom(room *models.Room) *ReservationBuilder {
	if room == nil {
		return b
	}
	id := room.ID
	b.reservation.RoomID = &id
	b.reservation.RoomNumber = room.Number
	return b
}

// WithGuestInfo thêm thông tin khách
func (b *ReservationBuilder) WithGuestInfo(guestName, guestPhone, guestEmail string, guests int) *ReservationBuilder {
	b.reservation.GuestName = guestName
	b.reservation.GuestPhone = guestPhone
	b.reservation.GuestEmail = guestEmail
	if guests > 0 {
		b.reservation.Guests = guests
	}
	return b
}

// WithBlockBooking đánh dấu reservation là phòng giữ chỗ của đặt phòng đoàn
func (b *ReservationBuilder) WithBlockBooking(blockID uint) *ReservationBuilder {
	b.reservation.BlockBookingID = &blockID
	return b
}

// WithStatus thêm trạng thái
func (b *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	b.reservation.Status = status
	return b
}

// WithTotalAmount thêm tổng tiền
func (b *ReservationBuilder) WithTotalAmount(total float64) *ReservationBuilder {
	b.reservation.TotalAmount = total
	return b
}

// Build tạo reservation hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
