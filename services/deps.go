package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/lock"
	"hotelcore/services/logger"
	"hotelcore/services/notification"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps là các phụ thuộc dùng chung của tầng service
type Deps struct {
	DB     *gorm.DB
	Redis  redis.Cmdable // nil khi không cấu hình Redis
	Locker lock.Locker
	// JobLocker guards long batch jobs; its TTL must outlive JobTimeout. Mặc định dùng Locker.
	JobLocker  lock.Locker
	JobTimeout time.Duration
	Publisher  notification.Publisher
	Logger     logger.Logger
	Clock      func() time.Time
	Location   *time.Location
	LockWait   time.Duration
	CacheTTL   time.Duration
	TxOptions  *sql.TxOptions
}

func (d Deps) withDefaults() Deps {
	if d.Locker == nil {
		d.Locker = lock.NewLocalLocker()
	}
	if d.JobLocker == nil {
		d.JobLocker = d.Locker
	}
	if d.JobTimeout <= 0 {
		d.JobTimeout = 30 * time.Minute
	}
	if d.Publisher == nil {
		d.Publisher = notification.Nop()
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.LockWait <= 0 {
		d.LockWait = 5 * time.Second
	}
	if d.CacheTTL <= 0 {
		d.CacheTTL = 30 * time.Second
	}
	return d
}

// today is the operating calendar date in the hotel timezone.
func (d Deps) today() string {
	return models.FormatDate(d.Clock(), d.Location)
}

func (d Deps) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var opts []*sql.TxOptions
	if d.TxOptions != nil {
		opts = append(opts, d.TxOptions)
	}
	return d.DB.WithContext(ctx).Transaction(fn, opts...)
}

// lockCapacity giữ khóa sức chứa cho từng loại phòng, theo thứ tự để tránh deadlock
func (d Deps) lockCapacity(ctx context.Context, hotelID uint, roomTypes ...string) (func(), error) {
	keys := make([]string, 0, len(roomTypes))
	for _, rt := range roomTypes {
		keys = append(keys, lock.CapacityKey(hotelID, rt))
	}
	lctx, cancel := context.WithTimeout(ctx, d.LockWait)
	defer cancel()
	unlock, err := lock.LockAll(lctx, d.Locker, keys)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeLockTimeout, "inventory is busy, try again", err)
		}
		return nil, apperrors.DB("acquire capacity lock", err)
	}
	return unlock, nil
}

// publish never fails the caller; delivery problems are only logged.
func (d Deps) publish(ctx context.Context, e notification.Event) {
	if err := d.Publisher.Publish(ctx, e); err != nil {
		d.Logger.Warn("publish event failed", "event", e.Type, "entity_id", e.EntityID, "error", err)
	}
}

func (d Deps) invalidateAvailability(ctx context.Context, hotelID uint) {
	if d.Redis == nil {
		return
	}
	pattern := fmt.Sprintf("availability:%d:*", hotelID)
	if err := DeleteKeysByPattern(ctx, d.Redis, pattern); err != nil {
		d.Logger.Warn("invalidate availability cache failed", "hotel_id", hotelID, "error", err)
	}
}

func (d Deps) invalidateAllAvailability(ctx context.Context) {
	if d.Redis == nil {
		return
	}
	if err := DeleteKeysByPattern(ctx, d.Redis, "availability:*"); err != nil {
		d.Logger.Warn("invalidate availability cache failed", "error", err)
	}
}

// dbErr chuyển lỗi gorm thành AppError, giữ nguyên AppError có sẵn
func dbErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.DB(op, err)
}

func notFoundOr(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity, id)
	}
	return dbErr("load "+entity, err)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
