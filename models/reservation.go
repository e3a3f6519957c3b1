package models

import (
	"time"

	"hotelcore/constants"
)

type Reservation struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	HotelID            uint       `json:"hotelId" gorm:"not null;index:idx_reservation_availability,priority:1"`
	RoomType           string     `json:"roomType" gorm:"size:60;not null;index:idx_reservation_availability,priority:2"`
	ArrivalDate        string     `json:"arrivalDate" gorm:"type:varchar(10);not null;index:idx_reservation_availability,priority:3"`
	DepartureDate      string     `json:"departureDate" gorm:"type:varchar(10);not null"`
	RoomID             *uint      `json:"roomId,omitempty" gorm:"index"`
	RoomNumber         string     `json:"roomNumber,omitempty" gorm:"size:20"`
	OwnerID            uint       `json:"ownerId" gorm:"index"`
	CustomerID         *uint      `json:"customerId,omitempty" gorm:"index"`
	BlockBookingID     *uint      `json:"blockBookingId,omitempty" gorm:"index"`
	GuestName          string     `json:"guestName"`
	GuestEmail         string     `json:"guestEmail,omitempty"`
	GuestPhone         string     `json:"guestPhone,omitempty"`
	Guests             int        `json:"guests" gorm:"default:1"`
	TotalAmount        float64    `json:"totalAmount"`
	Status             string     `json:"status" gorm:"size:20;not null;index"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CustomerNotified   bool       `json:"customerNotified" gorm:"default:false"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`
	CheckedInAt        *time.Time `json:"checkedInAt,omitempty"`
	CheckedOutAt       *time.Time `json:"checkedOutAt,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Range returns the stay interval; stored dates are validated on write.
func (r *Reservation) Range() DateRange {
	start, _ := ParseDate(r.ArrivalDate)
	end, _ := ParseDate(r.DepartureDate)
	return DateRange{Start: start, End: end}
}

func (r *Reservation) Nights() int {
	return r.Range().Nights()
}

// IsOwnedBy reports whether userID created the reservation or is its customer.
func (r *Reservation) IsOwnedBy(userID uint) bool {
	if userID == 0 {
		return false
	}
	if r.OwnerID == userID {
		return true
	}
	return r.CustomerID != nil && *r.CustomerID == userID
}

func (r *Reservation) IsBlockHold() bool {
	return r.BlockBookingID != nil
}

func (r *Reservation) IsActive() bool {
	for _, s := range constants.ActiveReservationStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

func (r *Reservation) IsPreCheckIn() bool {
	for _, s := range constants.PreCheckInStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}
