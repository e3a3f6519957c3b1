package services

import (
	"testing"
	"time"

	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/lock"
	"hotelcore/services/notification"
	"hotelcore/testutil"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reconcileScenario struct {
	unpaid, noShow, attended, future *models.Reservation
}

// seedReconcile chuẩn bị dữ liệu cho ngày 2024-06-10
func seedReconcile(f *fixture) reconcileScenario {
	r102 := f.room("102").ID
	r103 := f.room("103").ID
	s := reconcileScenario{
		unpaid: f.insert(models.Reservation{
			OwnerID: customer.UserID, RoomType: "Deluxe", ArrivalDate: "2024-06-10", DepartureDate: "2024-06-12",
			Status: constants.ReservationPendingPayment, TotalAmount: 200,
		}),
		noShow: f.insert(models.Reservation{
			OwnerID: customer.UserID, RoomType: "Deluxe", ArrivalDate: "2024-06-09", DepartureDate: "2024-06-11",
			Status: constants.ReservationReserved, TotalAmount: 200, RoomID: &r102, RoomNumber: "102",
		}),
		attended: f.insert(models.Reservation{
			OwnerID: otherGuest.UserID, RoomType: "Deluxe", ArrivalDate: "2024-06-09", DepartureDate: "2024-06-12",
			Status: constants.ReservationCheckedIn, TotalAmount: 300, RoomID: &r103, RoomNumber: "103",
		}),
		future: f.insert(models.Reservation{
			OwnerID: customer.UserID, RoomType: "Deluxe", ArrivalDate: "2024-06-11", DepartureDate: "2024-06-12",
			Status: constants.ReservationPendingPayment, TotalAmount: 100,
		}),
	}
	f.setNow("2024-06-10 14:00")
	return s
}

func reconcileFixture(t *testing.T) *fixture {
	return newFixture(t,
		testutil.Room("101", "Deluxe", 100),
		testutil.Room("102", "Deluxe", 100),
		testutil.Room("103", "Deluxe", 100),
	)
}

func TestReconcile_DailySweep(t *testing.T) {
	f := reconcileFixture(t)
	s := seedReconcile(f)

	res, err := f.reconcile.Run(f.ctx, "", RunOptions{})
	require.NoError(t, err)
	require.False(t, res.Skipped)

	run := res.Run
	assert.Equal(t, "2024-06-10", run.OperatingDate)
	assert.Equal(t, constants.RunStatusCompleted, run.Status)
	assert.Equal(t, 1, run.CancelledCount)
	assert.Equal(t, 1, run.NoShowCount)
	assert.Equal(t, 1, run.BilledCount)
	assert.Zero(t, run.FailedCount)
	assert.NotNil(t, run.FinishedAt)

	unpaid := f.reload(s.unpaid.ID)
	assert.Equal(t, constants.ReservationCancelled, unpaid.Status)
	require.NotNil(t, unpaid.CancellationReason)
	assert.Equal(t, constants.AutoCancelReason, *unpaid.CancellationReason)
	assert.False(t, unpaid.CustomerNotified)

	assert.Equal(t, constants.ReservationNoShow, f.reload(s.noShow.ID).Status)
	assert.Equal(t, constants.ReservationCheckedIn, f.reload(s.attended.ID).Status)
	assert.Equal(t, constants.ReservationPendingPayment, f.reload(s.future.ID).Status)

	var bills []models.BillingRecord
	require.NoError(t, f.db.Find(&bills).Error)
	require.Len(t, bills, 1)
	assert.Equal(t, s.noShow.ID, bills[0].ReservationID)
	assert.Equal(t, constants.BillingSourceNoShow, bills[0].Source)
	assert.Equal(t, 200.0, bills[0].Total)

	require.NotNil(t, res.Report)
	assert.Equal(t, "2024-06-09", res.Report.Date)
	assert.Equal(t, 1, res.Report.Attended)
	assert.Equal(t, 1, res.Report.NoShows)
	assert.Equal(t, 500.0, res.Report.Revenue)

	// phòng của khách không đến được trả lại
	assert.Equal(t, constants.RoomStatusAvailable, f.room("102").Status)
	assert.Equal(t, constants.RoomStatusOccupied, f.room("103").Status)

	got := f.events.Types()
	assert.Contains(t, got, notification.EventReservationCancelled)
	assert.Contains(t, got, notification.EventReservationNoShow)
	assert.Contains(t, got, notification.EventReconciliationReport)
}

func TestReconcile_Idempotent(t *testing.T) {
	f := reconcileFixture(t)
	seedReconcile(f)

	first, err := f.reconcile.Run(f.ctx, "2024-06-10", RunOptions{})
	require.NoError(t, err)

	again, err := f.reconcile.Run(f.ctx, "2024-06-10", RunOptions{})
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	assert.Equal(t, first.Run.ID, again.Run.ID)

	forced, err := f.reconcile.Run(f.ctx, "2024-06-10", RunOptions{Force: true})
	require.NoError(t, err)
	assert.False(t, forced.Skipped)
	assert.Equal(t, 2, forced.Run.Attempts)
	assert.Equal(t, 1, forced.Run.CancelledCount, "counts accumulate only real changes")
	assert.Equal(t, 1, forced.Run.NoShowCount)
	assert.Equal(t, 1, forced.Run.BilledCount)

	var bills int64
	require.NoError(t, f.db.Model(&models.BillingRecord{}).Count(&bills).Error)
	assert.Equal(t, int64(1), bills)

	var runs int64
	require.NoError(t, f.db.Model(&models.ReconciliationRun{}).Count(&runs).Error)
	assert.Equal(t, int64(1), runs)
}

func TestReconcile_BillsEarlierNoShowWithoutRecord(t *testing.T) {
	f := reconcileFixture(t)
	stale := f.insert(models.Reservation{
		OwnerID: customer.UserID, RoomType: "Deluxe", ArrivalDate: "2024-06-09", DepartureDate: "2024-06-10",
		Status: constants.ReservationNoShow, TotalAmount: 100,
	})
	f.setNow("2024-06-10 01:00")

	res, err := f.reconcile.Run(f.ctx, "", RunOptions{})
	require.NoError(t, err)
	assert.Zero(t, res.Run.NoShowCount)
	assert.Equal(t, 1, res.Run.BilledCount)

	var record models.BillingRecord
	require.NoError(t, f.db.Where("reservation_id = ?", stale.ID).First(&record).Error)
	assert.Equal(t, 100.0, record.Total)
}

func TestReconcile_SingleFlight(t *testing.T) {
	f := reconcileFixture(t)
	f.setNow("2024-06-10 01:00")

	release, err := f.deps.Locker.TryLock(f.ctx, reconcileLockKey)
	require.NoError(t, err)

	_, err = f.reconcile.Run(f.ctx, "", RunOptions{})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	release()
	res, err := f.reconcile.Run(f.ctx, "", RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, constants.RunStatusCompleted, res.Run.Status)

	// cron entry logs instead of failing
	assert.NotPanics(t, func() { f.reconcile.RunScheduled(0) })
}

// cron không chạy ngày 2024-06-09: lượt ngày 06-10 vẫn phải giải phóng phòng của khách đến 06-08
func TestReconcile_CatchesUpMissedDay(t *testing.T) {
	f := newFixture(t, testutil.Room("101", "Deluxe", 100))
	stay := f.insert(models.Reservation{
		OwnerID: customer.UserID, RoomType: "Deluxe", ArrivalDate: "2024-06-08", DepartureDate: "2024-06-14",
		Status: constants.ReservationReserved, TotalAmount: 600,
	})
	f.setNow("2024-06-10 14:00")
	require.Zero(t, f.available("Deluxe", "2024-06-11", "2024-06-13"))

	res, err := f.reconcile.Run(f.ctx, "", RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, constants.RunStatusCompleted, res.Run.Status)
	assert.Equal(t, 1, res.Run.NoShowCount)
	assert.Equal(t, 1, res.Run.BilledCount)

	assert.Equal(t, constants.ReservationNoShow, f.reload(stay.ID).Status)
	assert.Equal(t, 1, f.available("Deluxe", "2024-06-11", "2024-06-13"))

	var bills int64
	require.NoError(t, f.db.Model(&models.BillingRecord{}).Where("reservation_id = ?", stay.ID).Count(&bills).Error)
	assert.EqualValues(t, 1, bills)
}

func TestReconcile_RecentRunningRowConflicts(t *testing.T) {
	f := reconcileFixture(t)
	f.setNow("2024-06-10 14:00")
	row := models.ReconciliationRun{
		OperatingDate: "2024-06-10",
		Status:        constants.RunStatusRunning,
		Attempts:      1,
		StartedAt:     f.now.Add(-5 * time.Minute),
	}
	require.NoError(t, f.db.Create(&row).Error)

	_, err := f.reconcile.Run(f.ctx, "", RunOptions{})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	_, err = f.reconcile.Run(f.ctx, "", RunOptions{Force: true})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	var kept models.ReconciliationRun
	require.NoError(t, f.db.First(&kept, row.ID).Error)
	assert.Equal(t, 1, kept.Attempts)
	assert.Equal(t, constants.RunStatusRunning, kept.Status)

	// quá JobTimeout thì coi lượt cũ đã chết và chạy lại
	f.now = f.now.Add(time.Hour)
	res, err := f.reconcile.Run(f.ctx, "2024-06-10", RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, row.ID, res.Run.ID)
	assert.Equal(t, 2, res.Run.Attempts)
	assert.Equal(t, constants.RunStatusCompleted, res.Run.Status)
}

func TestReconcile_JobLockOutlivesRun(t *testing.T) {
	f := reconcileFixture(t)
	f.setNow("2024-06-10 14:00")
	rdb, mock := redismock.NewClientMock()

	deps := f.deps
	deps.JobTimeout = 30 * time.Minute
	deps.JobLocker = lock.NewRedisLocker(rdb, 35*time.Minute, lock.WithTokenFunc(func() string { return "job-1" }))
	svc := NewReconciliationService(deps, f.inventory)

	mock.ExpectSetNX(reconcileLockKey, "job-1", 35*time.Minute).SetVal(false)

	_, err := svc.Run(f.ctx, "", RunOptions{})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())

	// khóa sức chứa không dùng chung client với khóa job
	unlock, err := svc.deps.Locker.TryLock(f.ctx, reconcileLockKey)
	require.NoError(t, err)
	unlock()
}

func TestReconcile_DailyReportAccess(t *testing.T) {
	f := reconcileFixture(t)
	seedReconcile(f)
	_, err := f.reconcile.Run(f.ctx, "", RunOptions{})
	require.NoError(t, err)

	_, err = f.reconcile.DailyReport(f.ctx, "", clerk)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	report, err := f.reconcile.DailyReport(f.ctx, "", manager)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-09", report.Date)
	require.Len(t, report.Hotels, 1)
	assert.Equal(t, f.hotel.ID, report.Hotels[0].HotelID)

	_, err = f.reconcile.DailyReport(f.ctx, "10/06/2024", manager)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	run, err := f.reconcile.LastRun(f.ctx, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, constants.RunStatusCompleted, run.Status)

	_, err = f.reconcile.LastRun(f.ctx, "2024-06-11")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
