package models

import "time"

// BillingRecord là folio của một reservation, tạo đúng một lần
type BillingRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ReservationID uint      `json:"reservationId" gorm:"uniqueIndex;not null"`
	RoomCharge    float64   `json:"roomCharge"`
	Restaurant    float64   `json:"restaurant"`
	RoomService   float64   `json:"roomService"`
	Laundry       float64   `json:"laundry"`
	Telephone     float64   `json:"telephone"`
	Club          float64   `json:"club"`
	Other         float64   `json:"other"`
	LateCheckout  float64   `json:"lateCheckout"`
	LateDays      int       `json:"lateDays"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"paymentMethod,omitempty" gorm:"size:30"`
	Source        string    `json:"source" gorm:"size:20"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
