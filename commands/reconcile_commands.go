package commands

import (
	"context"

	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/logger"

	"gorm.io/gorm"
)

// TxRunner chạy fn trong một transaction
type TxRunner func(ctx context.Context, fn func(tx *gorm.DB) error) error

// Env là các phụ thuộc dùng chung cho các bước đối soát
type Env struct {
	DB     *gorm.DB
	Tx     TxRunner
	Logger logger.Logger
	// RefreshRoom recomputes a room's status after a bound reservation changes.
	RefreshRoom func(tx *gorm.DB, roomID uint) error
	// NoShowBill builds the billing row for a reservation that never arrived.
	NoShowBill func(r *models.Reservation) models.BillingRecord
}

// Outcome là kết quả của một bước đối soát
type Outcome struct {
	Changed   []models.Reservation
	Billed    int
	FailedIDs []uint
	Report    *DailyReport
}

// ReconcileCommand định nghĩa interface cho các bước đối soát
type ReconcileCommand interface {
	Name() string
	Execute(ctx context.Context) (*Outcome, error)
}

// AutoCancelCommand hủy các reservation chưa thanh toán đến ngày nhận phòng
type AutoCancelCommand struct {
	env Env
	day string
}

func NewAutoCancelCommand(env Env, day string) *AutoCancelCommand {
	return &AutoCancelCommand{env: env, day: day}
}

func (c *AutoCancelCommand) Name() string { return "auto_cancel" }

func (c *AutoCancelCommand) Execute(ctx context.Context) (*Outcome, error) {
	var candidates []models.Reservation
	if err := c.env.DB.WithContext(ctx).
		Where("arrival_date = ? AND status IN ?", c.day,
			[]string{constants.ReservationPending, constants.ReservationPendingPayment}).
		Order("id").Find(&candidates).Error; err != nil {
		return nil, apperrors.DB("load unpaid arrivals", err)
	}

	out := &Outcome{}
	for i := range candidates {
		r := candidates[i]
		err := c.env.Tx(ctx, func(tx *gorm.DB) error {
			if err := r.Transition(tx, models.ActionCancel, map[string]interface{}{
				"cancellation_reason": constants.AutoCancelReason,
				"customer_notified":   false,
			}); err != nil {
				return err
			}
			if r.RoomID != nil && c.env.RefreshRoom != nil {
				return c.env.RefreshRoom(tx, *r.RoomID)
			}
			return nil
		})
		if skipped(c.env, c.Name(), &r, err, out) {
			continue
		}
		reason := constants.AutoCancelReason
		r.CancellationReason = &reason
		r.CustomerNotified = false
		out.Changed = append(out.Changed, r)
	}
	return out, nil
}

// NoShowCommand đánh dấu không đến và tạo hóa đơn cho mọi reservation có ngày đến đã qua.
// Quét đến hết ngày through nên một lượt chạy bị bỏ lỡ sẽ được bù ở lượt sau.
type NoShowCommand struct {
	env     Env
	through string
}

func NewNoShowCommand(env Env, through string) *NoShowCommand {
	return &NoShowCommand{env: env, through: through}
}

func (c *NoShowCommand) Name() string { return "no_show" }

func (c *NoShowCommand) Execute(ctx context.Context) (*Outcome, error) {
	var candidates []models.Reservation
	if err := c.env.DB.WithContext(ctx).
		Where("arrival_date <= ?", c.through).
		Where("status IN ? OR (status = ? AND NOT EXISTS (SELECT 1 FROM billing_records b WHERE b.reservation_id = reservations.id))",
			[]string{constants.ReservationReserved, constants.ReservationConfirmed}, constants.ReservationNoShow).
		Order("arrival_date, id").Find(&candidates).Error; err != nil {
		return nil, apperrors.DB("load unattended arrivals", err)
	}

	out := &Outcome{}
	for i := range candidates {
		r := candidates[i]
		marked, billed := false, false
		err := c.env.Tx(ctx, func(tx *gorm.DB) error {
			if r.Status != constants.ReservationNoShow {
				if err := r.Transition(tx, models.ActionMarkNoShow, nil); err != nil {
					return err
				}
				marked = true
				if r.RoomID != nil && c.env.RefreshRoom != nil {
					if err := c.env.RefreshRoom(tx, *r.RoomID); err != nil {
						return err
					}
				}
			}
			var existing int64
			if err := tx.Model(&models.BillingRecord{}).Where("reservation_id = ?", r.ID).Count(&existing).Error; err != nil {
				return apperrors.DB("check billing record", err)
			}
			if existing > 0 {
				return nil
			}
			record := c.env.NoShowBill(&r)
			if err := tx.Create(&record).Error; err != nil {
				return apperrors.DB("create no-show billing record", err)
			}
			billed = true
			return nil
		})
		if skipped(c.env, c.Name(), &r, err, out) {
			continue
		}
		if billed {
			out.Billed++
		}
		if marked {
			out.Changed = append(out.Changed, r)
		}
	}
	return out, nil
}

// ReportCommand tổng hợp số khách đến, không đến và doanh thu của ngày hôm trước
type ReportCommand struct {
	env Env
	day string
}

func NewReportCommand(env Env, yesterday string) *ReportCommand {
	return &ReportCommand{env: env, day: yesterday}
}

func (c *ReportCommand) Name() string { return "report" }

func (c *ReportCommand) Execute(ctx context.Context) (*Outcome, error) {
	report, err := BuildDailyReport(ctx, c.env.DB, c.day)
	if err != nil {
		return nil, err
	}
	c.env.Logger.Info("daily occupancy report",
		"date", report.Date, "attended", report.Attended, "no_shows", report.NoShows, "revenue", report.Revenue)
	return &Outcome{Report: report}, nil
}

// skipped records a per-reservation failure and reports whether the caller should move on.
// A reservation whose status changed underneath the sweep is not a failure.
func skipped(env Env, step string, r *models.Reservation, err error, out *Outcome) bool {
	if err == nil {
		return false
	}
	if apperrors.HasCode(err, apperrors.ErrCodeConflict) || apperrors.HasCode(err, apperrors.ErrCodeInvalidState) {
		env.Logger.Debug("reservation changed during reconciliation", "step", step, "reservation_id", r.ID, "error", err)
		return true
	}
	env.Logger.Error("reconciliation failed for reservation", "step", step, "reservation_id", r.ID, "error", err)
	out.FailedIDs = append(out.FailedIDs, r.ID)
	return true
}
