package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelcore/commands"
	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/lock"
	"hotelcore/services/notification"
	"hotelcore/types"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const reconcileLockKey = "lock:reconcile"

type RunOptions struct {
	// Force re-runs a day that already completed; status checks keep it harmless.
	Force bool
}

type RunResult struct {
	Run     *models.ReconciliationRun `json:"run"`
	Skipped bool                      `json:"skipped"`
	Report  *commands.DailyReport     `json:"report,omitempty"`
}

// ReconciliationService chạy đối soát hằng ngày: hủy đơn chưa thanh toán, đánh dấu no-show, báo cáo
type ReconciliationService struct {
	deps      Deps
	running   *lock.LocalLocker
	inventory *InventoryService
}

func NewReconciliationService(deps Deps, inventory *InventoryService) *ReconciliationService {
	deps = deps.withDefaults()
	if inventory == nil {
		inventory = NewInventoryService(deps)
	}
	return &ReconciliationService{deps: deps, running: lock.NewLocalLocker(), inventory: inventory}
}

// OperatingDay is today's date in the hotel timezone.
func (s *ReconciliationService) OperatingDay() string {
	return s.deps.today()
}

// Run processes one operating day. A run already in progress makes the call return Conflict instead of queuing.
func (s *ReconciliationService) Run(ctx context.Context, day string, opts RunOptions) (*RunResult, error) {
	if day == "" {
		day = s.deps.today()
	}
	d, err := models.ParseDate(day)
	if err != nil {
		return nil, err
	}
	yesterday := d.AddDate(0, 0, -1).Format(models.DateLayout)

	unlock, err := s.running.TryLock(ctx, reconcileLockKey)
	if err != nil {
		return nil, apperrors.Conflict("reconciliation is already running")
	}
	defer unlock()
	unlockShared, err := s.deps.JobLocker.TryLock(ctx, reconcileLockKey)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, apperrors.Conflict("reconciliation is already running on another instance")
		}
		return nil, apperrors.DB("acquire reconciliation lock", err)
	}
	defer unlockShared()

	run, skip, err := s.begin(ctx, day, opts)
	if err != nil {
		return nil, err
	}
	if skip {
		s.deps.Logger.Info("reconciliation already completed, skipping", "operating_date", day)
		return &RunResult{Run: run, Skipped: true}, nil
	}
	s.deps.Logger.Info("reconciliation started", "operating_date", day, "attempt", run.Attempts)

	env := commands.Env{
		DB:     s.deps.DB,
		Tx:     s.deps.transaction,
		Logger: s.deps.Logger,
		RefreshRoom: func(tx *gorm.DB, roomID uint) error {
			_, err := refreshRoomStatus(tx, roomID, day)
			return err
		},
		NoShowBill: func(r *models.Reservation) models.BillingRecord {
			return NoShowFolio(r).Record(r.ID, constants.BillingSourceNoShow)
		},
	}
	steps := []commands.ReconcileCommand{
		commands.NewAutoCancelCommand(env, day),
		commands.NewNoShowCommand(env, yesterday),
		commands.NewReportCommand(env, yesterday),
	}

	var (
		failed   pq.Int64Array
		stepErrs int
		report   *commands.DailyReport
	)
	for _, step := range steps {
		out, err := step.Execute(ctx)
		if err != nil {
			// một bước lỗi không chặn các bước sau
			stepErrs++
			s.deps.Logger.Error("reconciliation step failed", "step", step.Name(), "operating_date", day, "error", err)
			continue
		}
		for _, id := range out.FailedIDs {
			failed = append(failed, int64(id))
		}
		switch step.Name() {
		case "auto_cancel":
			run.CancelledCount += len(out.Changed)
			for i := range out.Changed {
				r := out.Changed[i]
				s.deps.publish(ctx, notification.NewEvent(notification.EventReservationCancelled, r.HotelID, r.ID, r))
			}
		case "no_show":
			run.NoShowCount += len(out.Changed)
			run.BilledCount += out.Billed
			for i := range out.Changed {
				r := out.Changed[i]
				s.deps.publish(ctx, notification.NewEvent(notification.EventReservationNoShow, r.HotelID, r.ID, r))
			}
		case "report":
			report = out.Report
			run.AttendedCount = report.Attended
			run.ReportNoShowCount = report.NoShows
			run.ReportRevenue = report.Revenue
		}
	}

	if changed, err := s.inventory.RefreshAll(ctx); err != nil {
		s.deps.Logger.Error("room status refresh failed", "error", err)
	} else if changed > 0 {
		s.deps.Logger.Info("room statuses refreshed", "changed", changed)
	}

	finished := s.deps.Clock()
	run.FinishedAt = &finished
	run.FailedCount = len(failed)
	run.FailedReservationIDs = failed
	run.Status = constants.RunStatusCompleted
	if stepErrs > 0 || len(failed) > 0 {
		run.Status = constants.RunStatusFailed
	}
	if err := s.deps.DB.WithContext(ctx).Save(run).Error; err != nil {
		return nil, dbErr("save reconciliation run", err)
	}

	s.deps.Logger.Info("reconciliation finished",
		"operating_date", day, "status", run.Status,
		"cancelled", run.CancelledCount, "no_show", run.NoShowCount, "billed", run.BilledCount, "failed", run.FailedCount)
	s.deps.invalidateAllAvailability(ctx)
	if report != nil {
		s.deps.publish(ctx, notification.NewEvent(notification.EventReconciliationReport, 0, run.ID, report))
	}
	return &RunResult{Run: run, Report: report}, nil
}

// begin loads or creates the persisted guard row for day and marks it running.
func (s *ReconciliationService) begin(ctx context.Context, day string, opts RunOptions) (*models.ReconciliationRun, bool, error) {
	var run models.ReconciliationRun
	skip := false
	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		err := tx.Where("operating_date = ?", day).First(&run).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			run = models.ReconciliationRun{
				OperatingDate: day,
				Status:        constants.RunStatusRunning,
				Attempts:      1,
				StartedAt:     s.deps.Clock(),
			}
			return dbErr("create reconciliation run", tx.Create(&run).Error)
		}
		if err != nil {
			return dbErr("load reconciliation run", err)
		}
		if run.Status == constants.RunStatusCompleted && !opts.Force {
			skip = true
			return nil
		}
		// một lượt running chưa quá JobTimeout có thể vẫn đang chạy ở instance khác
		if run.Status == constants.RunStatusRunning && s.deps.Clock().Sub(run.StartedAt) < s.deps.JobTimeout {
			return apperrors.Conflict(fmt.Sprintf("reconciliation for %s has been running since %s",
				day, run.StartedAt.Format(time.RFC3339)))
		}
		run.Status = constants.RunStatusRunning
		run.Attempts++
		run.StartedAt = s.deps.Clock()
		run.FinishedAt = nil
		return dbErr("update reconciliation run", tx.Save(&run).Error)
	})
	if err != nil {
		return nil, false, err
	}
	return &run, skip, nil
}

// DailyReport builds the occupancy/revenue summary for arrivals on day.
func (s *ReconciliationService) DailyReport(ctx context.Context, day string, requester types.Identity) (*commands.DailyReport, error) {
	if !requester.IsManager() {
		return nil, apperrors.Forbidden("only managers can view the daily report")
	}
	if day == "" {
		day = models.FormatDate(s.deps.Clock().AddDate(0, 0, -1), s.deps.Location)
	}
	if _, err := models.ParseDate(day); err != nil {
		return nil, err
	}
	return commands.BuildDailyReport(ctx, s.deps.DB, day)
}

// LastRun returns the guard row of day, if any.
func (s *ReconciliationService) LastRun(ctx context.Context, day string) (*models.ReconciliationRun, error) {
	var run models.ReconciliationRun
	if err := s.deps.DB.WithContext(ctx).Where("operating_date = ?", day).First(&run).Error; err != nil {
		return nil, notFoundOr(err, "reconciliation run", day)
	}
	return &run, nil
}

// RunScheduled is the cron entry point: it never panics and logs instead of returning errors.
func (s *ReconciliationService) RunScheduled(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	day := s.deps.today()
	if _, err := s.Run(ctx, day, RunOptions{}); err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeConflict) {
			s.deps.Logger.Warn("reconciliation skipped", "operating_date", day, "reason", err.Error())
			return
		}
		s.deps.Logger.Error("scheduled reconciliation failed", "operating_date", day, "error", err)
	}
}
