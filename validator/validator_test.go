package validator

import (
	"errors"
	"testing"

	apperrors "hotelcore/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stayRequest struct {
	RoomType    string  `validate:"roomtype"`
	ArrivalDate string  `validate:"required,isodate"`
	Discount    float64 `validate:"gte=0,lte=50"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name  string
		in    stayRequest
		field string
	}{
		{"ok", stayRequest{RoomType: "Deluxe", ArrivalDate: "2024-06-10"}, ""},
		{"missing date", stayRequest{RoomType: "Deluxe"}, "ArrivalDate"},
		{"bad date", stayRequest{RoomType: "Deluxe", ArrivalDate: "10/06/2024"}, "ArrivalDate"},
		{"blank room type", stayRequest{RoomType: "  ", ArrivalDate: "2024-06-10"}, "RoomType"},
		{"discount too high", stayRequest{RoomType: "Deluxe", ArrivalDate: "2024-06-10", Discount: 60}, "Discount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.field, apperrors.GetAppError(err).Details["field"])
		})
	}
}

func TestFromBindingError(t *testing.T) {
	assert.NoError(t, FromBindingError(nil))

	err := FromBindingError(errors.New("unexpected EOF"))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFormat))
}
