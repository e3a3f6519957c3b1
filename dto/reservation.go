package dto

import (
	"hotelcore/models"
	"hotelcore/services"
	"hotelcore/types"
)

type CreateReservationRequest struct {
	HotelID         uint     `json:"hotelId" binding:"required"`
	RoomType        string   `json:"roomType" binding:"required,roomtype"`
	ArrivalDate     string   `json:"arrivalDate" binding:"required,isodate"`
	DepartureDate   string   `json:"departureDate" binding:"required,isodate"`
	RoomNumber      string   `json:"roomNumber" binding:"max=20"`
	GuestName       string   `json:"guestName" binding:"required,max=255"`
	GuestEmail      string   `json:"guestEmail" binding:"omitempty,email"`
	GuestPhone      string   `json:"guestPhone" binding:"max=20"`
	Guests          *int     `json:"guests" binding:"omitempty,gte=1,lte=20"`
	CustomerID      *uint    `json:"customerId"`
	NegotiatedTotal *float64 `json:"negotiatedTotal" binding:"omitempty,gte=0"`
	CheckInNow      bool     `json:"checkInNow"`
}

func (r CreateReservationRequest) Params(requester types.Identity) services.CreateReservationParams {
	return services.CreateReservationParams{
		HotelID:         r.HotelID,
		RoomType:        r.RoomType,
		ArrivalDate:     r.ArrivalDate,
		DepartureDate:   r.DepartureDate,
		RoomNumber:      r.RoomNumber,
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
		GuestPhone:      r.GuestPhone,
		Guests:          guestsOrDefault(r.Guests),
		CustomerID:      r.CustomerID,
		NegotiatedTotal: r.NegotiatedTotal,
		CheckInNow:      r.CheckInNow,
		Requester:       requester,
	}
}

// guestsOrDefault: bỏ trống nghĩa là 1 khách
func guestsOrDefault(n *int) int {
	if n == nil {
		return 1
	}
	return *n
}

// UpdateReservationRequest: trường nil giữ nguyên giá trị cũ
type UpdateReservationRequest struct {
	RoomType      *string `json:"roomType" binding:"omitempty,roomtype"`
	ArrivalDate   *string `json:"arrivalDate" binding:"omitempty,isodate"`
	DepartureDate *string `json:"departureDate" binding:"omitempty,isodate"`
	GuestName     *string `json:"guestName" binding:"omitempty,max=255"`
	GuestEmail    *string `json:"guestEmail" binding:"omitempty,email"`
	GuestPhone    *string `json:"guestPhone" binding:"omitempty,max=20"`
	Guests        *int    `json:"guests" binding:"omitempty,gte=1,lte=20"`
}

func (r UpdateReservationRequest) Params() services.UpdateReservationParams {
	return services.UpdateReservationParams{
		RoomType:      r.RoomType,
		ArrivalDate:   r.ArrivalDate,
		DepartureDate: r.DepartureDate,
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		GuestPhone:    r.GuestPhone,
		Guests:        r.Guests,
	}
}

type CheckOutRequest struct {
	Restaurant    float64 `json:"restaurant" binding:"gte=0"`
	RoomService   float64 `json:"roomService" binding:"gte=0"`
	Laundry       float64 `json:"laundry" binding:"gte=0"`
	Telephone     float64 `json:"telephone" binding:"gte=0"`
	Club          float64 `json:"club" binding:"gte=0"`
	Other         float64 `json:"other" binding:"gte=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"omitempty,oneof=cash card transfer company"`
}

func (r CheckOutRequest) Params() services.CheckOutParams {
	return services.CheckOutParams{
		Incidentals: services.Incidentals{
			Restaurant:  r.Restaurant,
			RoomService: r.RoomService,
			Laundry:     r.Laundry,
			Telephone:   r.Telephone,
			Club:        r.Club,
			Other:       r.Other,
		},
		PaymentMethod: r.PaymentMethod,
	}
}

type ReservationListQuery struct {
	HotelID        uint   `form:"hotelId"`
	Status         string `form:"status"`
	ArrivalFrom    string `form:"arrivalFrom" binding:"omitempty,isodate"`
	ArrivalTo      string `form:"arrivalTo" binding:"omitempty,isodate"`
	BlockBookingID uint   `form:"blockBookingId"`
}

// ReservationResponse là DTO trả về cho client
type ReservationResponse struct {
	ID                 uint    `json:"id"`
	HotelID            uint    `json:"hotelId"`
	RoomType           string  `json:"roomType"`
	RoomNumber         string  `json:"roomNumber,omitempty"`
	ArrivalDate        string  `json:"arrivalDate"`
	DepartureDate      string  `json:"departureDate"`
	Nights             int     `json:"nights"`
	Status             string  `json:"status"`
	GuestName          string  `json:"guestName"`
	Guests             int     `json:"guests"`
	TotalAmount        float64 `json:"totalAmount"`
	BlockBookingID     *uint   `json:"blockBookingId,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CustomerNotified   bool    `json:"customerNotified"`
	Paid               bool    `json:"paid"`
	CreatedAt          string  `json:"createdAt"`
}

func NewReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                 r.ID,
		HotelID:            r.HotelID,
		RoomType:           r.RoomType,
		RoomNumber:         r.RoomNumber,
		ArrivalDate:        r.ArrivalDate,
		DepartureDate:      r.DepartureDate,
		Nights:             r.Nights(),
		Status:             r.Status,
		GuestName:          r.GuestName,
		Guests:             r.Guests,
		TotalAmount:        r.TotalAmount,
		BlockBookingID:     r.BlockBookingID,
		CancellationReason: r.CancellationReason,
		CustomerNotified:   r.CustomerNotified,
		Paid:               r.PaidAt != nil,
		CreatedAt:          r.CreatedAt.Format("02/01/2006 15:04:05"),
	}
}

func NewReservationResponses(list []models.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, NewReservationResponse(&list[i]))
	}
	return out
}
