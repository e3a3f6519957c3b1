package config

import (
	"database/sql"
	"fmt"
	"strings"

	"hotelcore/models"
	"hotelcore/services/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func (c Config) dsn() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.Timezone)
}

// ConnectDB mở kết nối Postgres và migrate schema
func ConnectDB(c Config, log logger.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if c.Env == "dev" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(c.dsn()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	if c.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			return nil, fmt.Errorf("failed to migrate tables: %w", err)
		}
	}
	DB = db
	log.Info("successfully connected to db", "host", c.DBHost, "name", c.DBName)
	return db, nil
}

// TxOptions maps DB_TX_ISOLATION onto database/sql isolation levels.
func (c Config) TxOptions() *sql.TxOptions {
	switch strings.ToLower(strings.ReplaceAll(c.TxIsolation, " ", "_")) {
	case "serializable":
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	case "repeatable_read":
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	case "read_committed":
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	default:
		return nil
	}
}
