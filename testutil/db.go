// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"hotelcore/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the schema migrated.
// A single connection serializes writers the way row locks would on Postgres.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// FixedClock returns a clock frozen at the given RFC3339 instant.
func FixedClock(t testing.TB, at string) func() time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, at)
	require.NoError(t, err)
	return func() time.Time { return ts }
}

// SeedHotel tạo khách sạn với các phòng theo loại và giá
func SeedHotel(t testing.TB, db *gorm.DB, name string, rooms ...models.Room) *models.Hotel {
	t.Helper()
	hotel := &models.Hotel{Name: name, City: "Da Lat", Country: "VN", StarRating: 4}
	require.NoError(t, db.Create(hotel).Error)
	for i := range rooms {
		rooms[i].HotelID = hotel.ID
		if rooms[i].Status == "" {
			rooms[i].Status = "available"
		}
		require.NoError(t, db.Create(&rooms[i]).Error)
	}
	hotel.Rooms = rooms
	return hotel
}

// Room is a fixture shorthand.
func Room(number, roomType string, price float64) models.Room {
	return models.Room{Number: number, Type: roomType, PricePerNight: price}
}
