package lock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when a lock could not be taken before the deadline.
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker serializes critical sections by key.
type Locker interface {
	// Lock blocks until the key is held or ctx is done.
	Lock(ctx context.Context, key string) (unlock func(), err error)
	// TryLock returns ErrNotAcquired immediately when the key is taken.
	TryLock(ctx context.Context, key string) (unlock func(), err error)
}

// CapacityKey is the critical-section key for admissions of one room type in one hotel.
func CapacityKey(hotelID uint, roomType string) string {
	return fmt.Sprintf("lock:capacity:%d:%s", hotelID, strings.ToLower(roomType))
}

// LockAll takes keys in sorted order so callers locking several room types never deadlock.
func LockAll(ctx context.Context, l Locker, keys []string) (func(), error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	var unlocks []func()
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	var prev string
	for i, k := range sorted {
		if i > 0 && k == prev {
			continue
		}
		prev = k
		unlock, err := l.Lock(ctx, k)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}

// LocalLocker is an in-process keyed mutex.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*slot)}
}

func (l *LocalLocker) acquireSlot(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) releaseSlot(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.acquireSlot(key)
	select {
	case s.ch <- struct{}{}:
		return l.unlocker(key, s), nil
	case <-ctx.Done():
		l.releaseSlot(key, s)
		return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
	}
}

func (l *LocalLocker) TryLock(_ context.Context, key string) (func(), error) {
	s := l.acquireSlot(key)
	select {
	case s.ch <- struct{}{}:
		return l.unlocker(key, s), nil
	default:
		l.releaseSlot(key, s)
		return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
	}
}

func (l *LocalLocker) unlocker(key string, s *slot) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.releaseSlot(key, s)
		})
	}
}

// releaseScript deletes the key only if we still own it.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

// RedisLocker is a SET NX PX lock shared by every instance of the service.
type RedisLocker struct {
	rdb       redis.Cmdable
	ttl       time.Duration
	retry     time.Duration
	newToken  func() string
	onRelease func(key string, err error)
}

type RedisOption func(*RedisLocker)

// WithRetryInterval sets the polling interval used by Lock.
func WithRetryInterval(d time.Duration) RedisOption {
	return func(l *RedisLocker) { l.retry = d }
}

// WithReleaseHook reports release failures, e.g. to the logger.
func WithReleaseHook(fn func(key string, err error)) RedisOption {
	return func(l *RedisLocker) { l.onRelease = fn }
}

// WithTokenFunc overrides how owner tokens are generated.
func WithTokenFunc(fn func() string) RedisOption {
	return func(l *RedisLocker) { l.newToken = fn }
}

func NewRedisLocker(rdb redis.Cmdable, ttl time.Duration, opts ...RedisOption) *RedisLocker {
	l := &RedisLocker{
		rdb:      rdb,
		ttl:      ttl,
		retry:    50 * time.Millisecond,
		newToken: uuid.NewString,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *RedisLocker) TryLock(ctx context.Context, key string) (func(), error) {
	token := l.newToken()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("lock: redis setnx %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
	}
	return l.unlocker(key, token), nil
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()
	for {
		unlock, err := l.TryLock(ctx, key)
		if err == nil {
			return unlock, nil
		}
		if !errors.Is(err, ErrNotAcquired) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlocker(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// the caller's ctx may already be cancelled; release must still run
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err := l.rdb.Eval(ctx, releaseScript, []string{key}, token).Err()
			if err != nil && l.onRelease != nil {
				l.onRelease(key, err)
			}
		})
	}
}
