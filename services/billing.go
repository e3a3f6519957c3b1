package services

import (
	"time"

	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"
)

// Incidentals là các khoản phát sinh trong thời gian lưu trú
type Incidentals struct {
	Restaurant  float64 `json:"restaurant"`
	RoomService float64 `json:"roomService"`
	Laundry     float64 `json:"laundry"`
	Telephone   float64 `json:"telephone"`
	Club        float64 `json:"club"`
	Other       float64 `json:"other"`
}

func (i Incidentals) Sum() float64 {
	return i.Restaurant + i.RoomService + i.Laundry + i.Telephone + i.Club + i.Other
}

func (i Incidentals) validate() error {
	items := map[string]float64{
		"restaurant":  i.Restaurant,
		"roomService": i.RoomService,
		"laundry":     i.Laundry,
		"telephone":   i.Telephone,
		"club":        i.Club,
		"other":       i.Other,
	}
	for name, v := range items {
		if v < 0 {
			return apperrors.Validation("incidental charge "+name+" must not be negative").WithDetail("field", name)
		}
	}
	return nil
}

type FolioInput struct {
	RoomCharge    float64
	DepartureDate string
	CheckoutAt    time.Time
	Location      *time.Location
	PricePerNight float64
	Incidentals   Incidentals
	PaymentMethod string
}

type Folio struct {
	RoomCharge    float64
	Incidentals   Incidentals
	LateDays      int
	LateCheckout  float64
	Total         float64
	PaymentMethod string
}

// CalculateFolio computes the checkout bill. Checking out any time on the departure date owes no late fee;
// each later calendar day owes one full night at the room's price.
func CalculateFolio(in FolioInput) (Folio, error) {
	if err := in.Incidentals.validate(); err != nil {
		return Folio{}, err
	}
	if in.RoomCharge < 0 || in.PricePerNight < 0 {
		return Folio{}, apperrors.Validation("charges must not be negative")
	}
	departure, err := models.ParseDate(in.DepartureDate)
	if err != nil {
		return Folio{}, err
	}
	checkoutDay := models.CalendarDate(in.CheckoutAt, in.Location)

	lateDays := models.DaysBetween(departure, checkoutDay)
	if lateDays < 0 {
		lateDays = 0
	}
	surcharge := roundCents(float64(lateDays) * in.PricePerNight)

	return Folio{
		RoomCharge:    in.RoomCharge,
		Incidentals:   in.Incidentals,
		LateDays:      lateDays,
		LateCheckout:  surcharge,
		Total:         roundCents(in.RoomCharge + in.Incidentals.Sum() + surcharge),
		PaymentMethod: in.PaymentMethod,
	}, nil
}

// NoShowFolio bills the booked amount for a stay that never happened.
func NoShowFolio(r *models.Reservation) Folio {
	return Folio{
		RoomCharge: r.TotalAmount,
		Total:      roundCents(r.TotalAmount),
	}
}

// Record maps the folio onto the persisted billing row.
func (f Folio) Record(reservationID uint, source string) models.BillingRecord {
	if source == "" {
		source = constants.BillingSourceCheckout
	}
	return models.BillingRecord{
		ReservationID: reservationID,
		RoomCharge:    f.RoomCharge,
		Restaurant:    f.Incidentals.Restaurant,
		RoomService:   f.Incidentals.RoomService,
		Laundry:       f.Incidentals.Laundry,
		Telephone:     f.Incidentals.Telephone,
		Club:          f.Incidentals.Club,
		Other:         f.Incidentals.Other,
		LateCheckout:  f.LateCheckout,
		LateDays:      f.LateDays,
		Total:         f.Total,
		PaymentMethod: f.PaymentMethod,
		Source:        source,
	}
}
