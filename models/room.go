package models

import (
	"fmt"
	"time"

	"hotelcore/constants"
)

type Room struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	HotelID       uint      `json:"hotelId" gorm:"not null;uniqueIndex:idx_hotel_room_number,priority:1;index:idx_room_hotel_type,priority:1"`
	Number        string    `json:"number" gorm:"size:20;not null;uniqueIndex:idx_hotel_room_number,priority:2"`
	Type          string    `json:"type" gorm:"size:60;not null;index:idx_room_hotel_type,priority:2"`
	PricePerNight float64   `json:"pricePerNight"`
	Status        string    `json:"status" gorm:"size:20;default:available"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Room) ValidateStatus() error {
	switch r.Status {
	case constants.RoomStatusAvailable, constants.RoomStatusOccupied,
		constants.RoomStatusMaintenance, constants.RoomStatusReserved:
		return nil
	}
	return fmt.Errorf("invalid room status: %q", r.Status)
}

func (r *Room) ValidatePrice() error {
	if r.PricePerNight < 0 {
		return fmt.Errorf("invalid price: %.2f, must be >= 0", r.PricePerNight)
	}
	return nil
}
