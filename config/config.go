package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config gom toàn bộ cấu hình đọc từ biến môi trường
type Config struct {
	Env  string
	Port string

	DBDSN         string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	DBSSLMode     string
	TxIsolation   string
	AutoMigrate   bool
	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int

	Timezone      string
	ReconcileCron string
	LockWait      time.Duration
	LockTTL       time.Duration
	CacheTTL      time.Duration
	// ReconcileLockTTL là TTL khóa Redis của job đối soát, tách khỏi LockTTL của khóa sức chứa
	ReconcileLockTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	LogLevel string
}

// LoadEnv nạp file .env nếu có; thiếu file chỉ là cảnh báo
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("không load được file .env, sử dụng biến môi trường có sẵn", "error", err)
	}
}

// Load reads .env then the process environment, applying defaults.
func Load() Config {
	LoadEnv()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from any lookup function.
func FromEnv(getenv func(string) string) Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	return Config{
		Env:  get("ENV", "dev"),
		Port: get("PORT", "8083"),

		DBDSN:       get("DB_DSN", ""),
		DBHost:      get("DB_HOST", "localhost"),
		DBUser:      get("DB_USER", "postgres"),
		DBPassword:  get("DB_PASSWORD", ""),
		DBName:      get("DB_NAME", "hotelcore"),
		DBPort:      get("DB_PORT", "5432"),
		DBSSLMode:   get("DB_SSLMODE", "disable"),
		TxIsolation: get("DB_TX_ISOLATION", "repeatable_read"),
		AutoMigrate: parseBool(get("DB_AUTO_MIGRATE", "true"), true),

		RedisAddr:     get("REDIS_ADDR", ""),
		RedisUser:     get("REDIS_USER", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(get("REDIS_DB", "0"), 0),

		Timezone:      get("APP_TIMEZONE", "Asia/Ho_Chi_Minh"),
		ReconcileCron: get("RECONCILE_CRON", "0 14 * * *"),
		LockWait:      parseDuration(get("LOCK_WAIT", "5s"), 5*time.Second),
		LockTTL:       parseDuration(get("LOCK_TTL", "30s"), 30*time.Second),
		CacheTTL:      parseDuration(get("AVAILABILITY_CACHE_TTL", "30s"), 30*time.Second),

		ReconcileLockTTL: parseDuration(get("RECONCILE_LOCK_TTL", "35m"), 35*time.Minute),

		KafkaBrokers: splitList(get("KAFKA_BROKERS", "")),
		KafkaTopic:   get("KAFKA_TOPIC", "hotel.events"),

		LogLevel: get("LOG_LEVEL", "info"),
	}
}

// JobLockTTL never lets the job lock expire before a run can time out.
func (c Config) JobLockTTL(runTimeout time.Duration) time.Duration {
	return max(c.ReconcileLockTTL, runTimeout)
}

// Location resolves APP_TIMEZONE, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("invalid APP_TIMEZONE, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
