package dto

import "hotelcore/services"

type AddRoomRequest struct {
	HotelID       uint    `json:"hotelId" binding:"required"`
	Number        string  `json:"number" binding:"required,max=20"`
	Type          string  `json:"type" binding:"required,roomtype"`
	PricePerNight float64 `json:"pricePerNight" binding:"gte=0"`
}

func (r AddRoomRequest) Params() services.AddRoomParams {
	return services.AddRoomParams{
		HotelID:       r.HotelID,
		Number:        r.Number,
		Type:          r.Type,
		PricePerNight: r.PricePerNight,
	}
}

type MaintenanceRequest struct {
	// con trỏ để phân biệt false với thiếu trường
	Maintenance *bool `json:"maintenance" binding:"required"`
}

type RoomListQuery struct {
	HotelID  uint   `form:"hotelId" binding:"required"`
	RoomType string `form:"roomType"`
}

type AvailabilityQuery struct {
	DateRangeQuery
	RoomType string `form:"roomType"`
}

type ReconcileRunRequest struct {
	Date  string `json:"date" binding:"omitempty,isodate"`
	Force bool   `json:"force"`
}
