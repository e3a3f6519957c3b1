package models

import (
	"time"

	"github.com/lib/pq"
)

// ReconciliationRun guards the daily sweep so one operating day is processed once.
type ReconciliationRun struct {
	ID                   uint          `json:"id" gorm:"primaryKey"`
	OperatingDate        string        `json:"operatingDate" gorm:"type:varchar(10);uniqueIndex;not null"`
	Status               string        `json:"status" gorm:"size:20;not null"`
	Attempts             int           `json:"attempts"`
	CancelledCount       int           `json:"cancelledCount"`
	NoShowCount          int           `json:"noShowCount"`
	BilledCount          int           `json:"billedCount"`
	FailedCount          int           `json:"failedCount"`
	FailedReservationIDs pq.Int64Array `json:"failedReservationIds" gorm:"type:integer[]"`
	AttendedCount        int           `json:"attendedCount"`
	ReportNoShowCount    int           `json:"reportNoShowCount"`
	ReportRevenue        float64       `json:"reportRevenue"`
	StartedAt            time.Time     `json:"startedAt"`
	FinishedAt           *time.Time    `json:"finishedAt,omitempty"`
}
