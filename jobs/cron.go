package jobs

import (
	"time"

	"hotelcore/services/logger"

	"github.com/robfig/cron/v3"
)

// Reconciler là phần việc đối soát hằng ngày mà cron gọi
type Reconciler interface {
	RunScheduled(timeout time.Duration)
}

// ReconcileTimeout bounds one scheduled run.
const ReconcileTimeout = 30 * time.Minute

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, spec string, r Reconciler, log logger.Logger) (cron.EntryID, error) {
	// mặc định 14:00 mỗi ngày (giờ cutoff) theo giờ khách sạn
	id, err := c.AddFunc(spec, func() {
		log.Info("scheduled reconciliation triggered")
		r.RunScheduled(ReconcileTimeout)
	})
	if err != nil {
		return 0, err
	}

	c.Start()
	log.Info("cron jobs initialized successfully", "reconcile_cron", spec)
	return id, nil
}
