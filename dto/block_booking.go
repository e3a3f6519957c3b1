package dto

import (
	"hotelcore/services"
	"hotelcore/types"
)

type BlockRoomLine struct {
	RoomType  string `json:"roomType" binding:"required,roomtype"`
	RoomCount int    `json:"roomCount" binding:"required,gte=1"`
}

type CreateBlockBookingRequest struct {
	HotelID         uint            `json:"hotelId" binding:"required"`
	TravelCompanyID uint            `json:"travelCompanyId"`
	ArrivalDate     string          `json:"arrivalDate" binding:"required,isodate"`
	DepartureDate   string          `json:"departureDate" binding:"required,isodate"`
	RoomTypes       []BlockRoomLine `json:"roomTypes" binding:"required,min=1,dive"`
	DiscountRate    float64         `json:"discountRate"`
}

func (r CreateBlockBookingRequest) Params(requester types.Identity) services.CreateBlockParams {
	return services.CreateBlockParams{
		HotelID:         r.HotelID,
		TravelCompanyID: r.TravelCompanyID,
		ArrivalDate:     r.ArrivalDate,
		DepartureDate:   r.DepartureDate,
		RoomTypes:       blockLines(r.RoomTypes),
		DiscountRate:    r.DiscountRate,
		Requester:       requester,
	}
}

type UpdateBlockBookingRequest struct {
	ArrivalDate   *string         `json:"arrivalDate" binding:"omitempty,isodate"`
	DepartureDate *string         `json:"departureDate" binding:"omitempty,isodate"`
	RoomTypes     []BlockRoomLine `json:"roomTypes" binding:"omitempty,dive"`
	DiscountRate  *float64        `json:"discountRate"`
}

func (r UpdateBlockBookingRequest) Params() services.UpdateBlockParams {
	return services.UpdateBlockParams{
		ArrivalDate:   r.ArrivalDate,
		DepartureDate: r.DepartureDate,
		RoomTypes:     blockLines(r.RoomTypes),
		DiscountRate:  r.DiscountRate,
	}
}

type BlockBookingListQuery struct {
	HotelID uint   `form:"hotelId"`
	Status  string `form:"status" binding:"omitempty,oneof=pending reserved rejected cancelled"`
}

func blockLines(lines []BlockRoomLine) []services.BlockRoomRequest {
	if lines == nil {
		return nil
	}
	out := make([]services.BlockRoomRequest, 0, len(lines))
	for _, l := range lines {
		out = append(out, services.BlockRoomRequest{RoomType: l.RoomType, RoomCount: l.RoomCount})
	}
	return out
}
