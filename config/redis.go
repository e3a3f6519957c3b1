package config

import (
	"context"
	"time"

	"hotelcore/services/logger"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// ConnectRedis trả về nil khi chưa cấu hình REDIS_ADDR; khi đó app dùng khóa cục bộ và không cache
func ConnectRedis(c Config, log logger.Logger) (*redis.Client, error) {
	if c.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, running without redis")
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Username: c.RedisUser,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	RedisClient = rdb
	log.Info("kết nối Redis thành công", "addr", c.RedisAddr, "ping", res)
	return rdb, nil
}
