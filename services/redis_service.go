package services

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by GetFromRedis when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// Hàm lấy data từ Redis
func GetFromRedis(ctx context.Context, rdb redis.Cmdable, key string, target interface{}) error {
	cachedData, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}

	// Parse JSON thành object
	return json.Unmarshal(cachedData, target)
}

// Hàm lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb redis.Cmdable, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// DeleteKeysByPattern xóa mọi key khớp pattern, dùng SCAN để không chặn Redis
func DeleteKeysByPattern(ctx context.Context, rdb redis.Cmdable, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
