package models

import "time"

type BlockBooking struct {
	ID              uint                   `json:"id" gorm:"primaryKey"`
	HotelID         uint                   `json:"hotelId" gorm:"not null;index"`
	TravelCompanyID uint                   `json:"travelCompanyId" gorm:"not null;index"`
	RequestedBy     uint                   `json:"requestedBy"`
	ArrivalDate     string                 `json:"arrivalDate" gorm:"type:varchar(10);not null"`
	DepartureDate   string                 `json:"departureDate" gorm:"type:varchar(10);not null"`
	DiscountRate    float64                `json:"discountRate"`
	Status          string                 `json:"status" gorm:"size:20;not null;index"`
	TotalAmount     float64                `json:"totalAmount"`
	RejectionReason *string                `json:"rejectionReason,omitempty"`
	RoomTypes       []BlockBookingRoomType `json:"roomTypes" gorm:"foreignKey:BlockBookingID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time              `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time              `gorm:"autoUpdateTime" json:"updatedAt"`
}

type BlockBookingRoomType struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	BlockBookingID uint    `json:"blockBookingId" gorm:"index"`
	RoomType       string  `json:"roomType" gorm:"size:60;not null"`
	RoomCount      int     `json:"roomCount"`
	PricePerNight  float64 `json:"pricePerNight"` // giá tại thời điểm đặt
}

func (b *BlockBooking) Range() DateRange {
	start, _ := ParseDate(b.ArrivalDate)
	end, _ := ParseDate(b.DepartureDate)
	return DateRange{Start: start, End: end}
}

func (b *BlockBooking) TotalRooms() int {
	total := 0
	for _, rt := range b.RoomTypes {
		total += rt.RoomCount
	}
	return total
}
