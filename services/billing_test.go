package services

import (
	"testing"
	"time"

	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFolio(t *testing.T) {
	tests := []struct {
		name         string
		checkout     time.Time
		loc          *time.Location
		incidentals  Incidentals
		wantLateDays int
		wantLate     float64
		wantTotal    float64
	}{
		{
			name:         "two days late",
			checkout:     time.Date(2024, 6, 12, 11, 0, 0, 0, time.UTC),
			incidentals:  Incidentals{Restaurant: 30, Laundry: 12.5},
			wantLateDays: 2,
			wantLate:     200,
			wantTotal:    500 + 42.5 + 200,
		},
		{
			name:         "late evening on departure day owes nothing",
			checkout:     time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC),
			wantLateDays: 0,
			wantTotal:    500,
		},
		{
			name:         "early departure is not a credit",
			checkout:     time.Date(2024, 6, 8, 9, 0, 0, 0, time.UTC),
			wantLateDays: 0,
			wantTotal:    500,
		},
		{
			name:         "calendar date taken in hotel timezone",
			checkout:     time.Date(2024, 6, 10, 18, 30, 0, 0, time.UTC), // 01:30 on the 11th in ICT
			loc:          ict,
			wantLateDays: 1,
			wantLate:     100,
			wantTotal:    600,
		},
		{
			name:         "all incidental lines are summed",
			checkout:     time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
			incidentals:  Incidentals{Restaurant: 1, RoomService: 2, Laundry: 3, Telephone: 4, Club: 5, Other: 6.01},
			wantLateDays: 0,
			wantTotal:    521.01,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folio, err := CalculateFolio(FolioInput{
				RoomCharge:    500,
				DepartureDate: "2024-06-10",
				CheckoutAt:    tt.checkout,
				Location:      tt.loc,
				PricePerNight: 100,
				Incidentals:   tt.incidentals,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantLateDays, folio.LateDays)
			assert.Equal(t, tt.wantLate, folio.LateCheckout)
			assert.InDelta(t, tt.wantTotal, folio.Total, 0.001)
		})
	}
}

func TestCalculateFolio_RejectsNegativeIncidentals(t *testing.T) {
	_, err := CalculateFolio(FolioInput{
		RoomCharge:    100,
		DepartureDate: "2024-06-10",
		CheckoutAt:    time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		Incidentals:   Incidentals{Club: -1},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "club", apperrors.GetAppError(err).Details["field"])
}

func TestNoShowFolio(t *testing.T) {
	r := &models.Reservation{ID: 9, TotalAmount: 321.5}
	rec := NoShowFolio(r).Record(r.ID, constants.BillingSourceNoShow)
	assert.Equal(t, 321.5, rec.RoomCharge)
	assert.Equal(t, 321.5, rec.Total)
	assert.Zero(t, rec.LateCheckout)
	assert.Zero(t, rec.Restaurant+rec.RoomService+rec.Laundry+rec.Telephone+rec.Club+rec.Other)
	assert.Equal(t, constants.BillingSourceNoShow, rec.Source)
}
