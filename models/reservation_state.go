package models

import (
	"fmt"

	"hotelcore/constants"
	apperrors "hotelcore/errors"

	"gorm.io/gorm"
)

// Action là một thao tác làm thay đổi trạng thái reservation
type Action string

const (
	ActionStartPayment Action = "start payment for"
	ActionMarkPaid     Action = "mark paid"
	ActionConfirm      Action = "confirm"
	ActionCheckIn      Action = "check in"
	ActionCheckOut     Action = "check out"
	ActionCancel       Action = "cancel"
	ActionMarkNoShow   Action = "mark no-show"
	ActionUpdate       Action = "update"
)

// ReservationState holds the transitions allowed out of one status.
type ReservationState struct {
	Status      string
	transitions map[Action]string
}

var reservationStates = map[string]ReservationState{
	constants.ReservationPending: {
		Status: constants.ReservationPending,
		transitions: map[Action]string{
			ActionStartPayment: constants.ReservationPendingPayment,
			ActionMarkPaid:     constants.ReservationConfirmed,
			ActionConfirm:      constants.ReservationReserved,
			ActionCancel:       constants.ReservationCancelled,
			ActionUpdate:       constants.ReservationPending,
		},
	},
	constants.ReservationPendingPayment: {
		Status: constants.ReservationPendingPayment,
		transitions: map[Action]string{
			ActionMarkPaid: constants.ReservationConfirmed,
			ActionConfirm:  constants.ReservationReserved,
			ActionCheckIn:  constants.ReservationCheckedIn, // only once paid
			ActionCancel:   constants.ReservationCancelled,
			ActionUpdate:   constants.ReservationPendingPayment,
		},
	},
	constants.ReservationReserved: {
		Status: constants.ReservationReserved,
		transitions: map[Action]string{
			ActionMarkPaid:   constants.ReservationConfirmed,
			ActionCheckIn:    constants.ReservationCheckedIn,
			ActionCancel:     constants.ReservationCancelled,
			ActionMarkNoShow: constants.ReservationNoShow,
			ActionUpdate:     constants.ReservationReserved,
		},
	},
	constants.ReservationConfirmed: {
		Status: constants.ReservationConfirmed,
		transitions: map[Action]string{
			ActionCheckIn:    constants.ReservationCheckedIn,
			ActionCancel:     constants.ReservationCancelled,
			ActionMarkNoShow: constants.ReservationNoShow,
			ActionUpdate:     constants.ReservationConfirmed,
		},
	},
	constants.ReservationCheckedIn: {
		Status: constants.ReservationCheckedIn,
		transitions: map[Action]string{
			ActionCheckOut: constants.ReservationCheckedOut,
		},
	},
	constants.ReservationCheckedOut: {Status: constants.ReservationCheckedOut},
	constants.ReservationCancelled:  {Status: constants.ReservationCancelled},
	constants.ReservationNoShow:     {Status: constants.ReservationNoShow},
}

// GetReservationState trả về state tương ứng với trạng thái reservation
func GetReservationState(status string) ReservationState {
	if s, ok := reservationStates[status]; ok {
		return s
	}
	return ReservationState{Status: status}
}

// Next returns the status reached by action, or INVALID_STATE.
func (s ReservationState) Next(action Action) (string, error) {
	next, ok := s.transitions[action]
	if !ok {
		return "", apperrors.InvalidState(s.Status, string(action))
	}
	return next, nil
}

func (s ReservationState) Allows(action Action) bool {
	_, ok := s.transitions[action]
	return ok
}

func (s ReservationState) IsTerminal() bool {
	return len(s.transitions) == 0
}

// Transition applies action with a compare-and-set on the current status, so two concurrent
// transitions from the same status cannot both succeed.
func (r *Reservation) Transition(tx *gorm.DB, action Action, extra map[string]interface{}) error {
	next, err := GetReservationState(r.Status).Next(action)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{"status": next}
	for k, v := range extra {
		updates[k] = v
	}
	result := tx.Model(&Reservation{}).Where("id = ? AND status = ?", r.ID, r.Status).Updates(updates)
	if result.Error != nil {
		return apperrors.DB("update reservation status", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Conflict(fmt.Sprintf("reservation %d was modified concurrently", r.ID))
	}
	r.Status = next
	return nil
}
