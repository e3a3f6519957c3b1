package models

import (
	"testing"

	"hotelcore/constants"
	apperrors "hotelcore/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationState_Transitions(t *testing.T) {
	cases := []struct {
		from   string
		action Action
		want   string
	}{
		{constants.ReservationPending, ActionStartPayment, constants.ReservationPendingPayment},
		{constants.ReservationPending, ActionMarkPaid, constants.ReservationConfirmed},
		{constants.ReservationPendingPayment, ActionMarkPaid, constants.ReservationConfirmed},
		{constants.ReservationPending, ActionConfirm, constants.ReservationReserved},
		{constants.ReservationReserved, ActionCheckIn, constants.ReservationCheckedIn},
		{constants.ReservationConfirmed, ActionCheckIn, constants.ReservationCheckedIn},
		{constants.ReservationCheckedIn, ActionCheckOut, constants.ReservationCheckedOut},
		{constants.ReservationConfirmed, ActionMarkNoShow, constants.ReservationNoShow},
		{constants.ReservationReserved, ActionCancel, constants.ReservationCancelled},
	}
	for _, tc := range cases {
		got, err := GetReservationState(tc.from).Next(tc.action)
		require.NoError(t, err, "%s -> %s", tc.from, tc.action)
		assert.Equal(t, tc.want, got)
	}
}

func TestReservationState_RejectsInvalid(t *testing.T) {
	_, err := GetReservationState(constants.ReservationCheckedIn).Next(ActionCancel)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = GetReservationState(constants.ReservationPending).Next(ActionCheckOut)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = GetReservationState(constants.ReservationPending).Next(ActionMarkNoShow)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestReservationState_Terminal(t *testing.T) {
	for _, s := range []string{constants.ReservationCheckedOut, constants.ReservationCancelled, constants.ReservationNoShow} {
		assert.True(t, GetReservationState(s).IsTerminal(), s)
	}
	assert.False(t, GetReservationState(constants.ReservationConfirmed).IsTerminal())
}

func TestDateRange(t *testing.T) {
	r, err := NewDateRange("2024-06-08", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Nights())

	_, err = NewDateRange("2024-06-10", "2024-06-10")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
	_, err = NewDateRange("2024-06-10", "2024-06-09")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
	_, err = NewDateRange("10/06/2024", "2024-06-11")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	backToBack := MustDateRange("2024-06-10", "2024-06-12")
	assert.False(t, r.Overlaps(backToBack), "checkout day may be the next arrival day")
	assert.True(t, r.Overlaps(MustDateRange("2024-06-09", "2024-06-11")))
	assert.True(t, MustDateRange("2024-06-01", "2024-06-30").Overlaps(r))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "khach-san-da-lat", Slugify("Khách sạn Đà Lạt"))
	assert.Equal(t, "grand-hotel", Slugify("  Grand   Hotel! "))
}
