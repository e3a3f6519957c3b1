package services

import (
	"context"
	"errors"
	"fmt"

	"hotelcore/constants"
	"hotelcore/models"

	"gorm.io/gorm"
)

// AvailabilityView là số phòng trống của một loại phòng, dùng để hiển thị
type AvailabilityView struct {
	HotelID       uint    `json:"hotelId"`
	RoomType      string  `json:"roomType"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Total         int     `json:"total"`
	Booked        int     `json:"booked"`
	Available     int     `json:"available"`
	PricePerNight float64 `json:"pricePerNight"`
	Cached        bool    `json:"cached"`
}

// exclusion removes the caller's own allocation from the overlap count.
type exclusion struct {
	reservationID  uint
	blockBookingID uint
}

type AvailabilityService struct {
	deps Deps
}

func NewAvailabilityService(deps Deps) *AvailabilityService {
	return &AvailabilityService{deps: deps.withDefaults()}
}

// AvailableCount is the authoritative free-room count for a type over r.
func (s *AvailabilityService) AvailableCount(ctx context.Context, hotelID uint, roomType string, r models.DateRange) (int, error) {
	db := s.deps.DB.WithContext(ctx)
	if err := ensureHotel(db, hotelID); err != nil {
		return 0, err
	}
	rt, err := resolveRoomType(db, hotelID, roomType)
	if err != nil {
		return 0, err
	}
	available, _, _, err := countAvailable(db, hotelID, rt, r, exclusion{})
	return available, err
}

// Snapshot serves the display count, from Redis when a fresh copy exists.
func (s *AvailabilityService) Snapshot(ctx context.Context, hotelID uint, roomType string, r models.DateRange) (*AvailabilityView, error) {
	db := s.deps.DB.WithContext(ctx)
	if err := ensureHotel(db, hotelID); err != nil {
		return nil, err
	}
	rt, err := resolveRoomType(db, hotelID, roomType)
	if err != nil {
		return nil, err
	}

	key := availabilityCacheKey(hotelID, rt, r)
	if s.deps.Redis != nil {
		var cached AvailabilityView
		err := GetFromRedis(ctx, s.deps.Redis, key, &cached)
		if err == nil {
			cached.Cached = true
			return &cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.deps.Logger.Warn("read availability cache failed", "key", key, "error", err)
		}
	}

	view, err := buildView(db, hotelID, rt, r)
	if err != nil {
		return nil, err
	}
	if s.deps.Redis != nil {
		if err := SetToRedis(ctx, s.deps.Redis, key, view, s.deps.CacheTTL); err != nil {
			s.deps.Logger.Warn("write availability cache failed", "key", key, "error", err)
		}
	}
	return view, nil
}

// HotelAvailability trả về số phòng trống cho mọi loại phòng của khách sạn
func (s *AvailabilityService) HotelAvailability(ctx context.Context, hotelID uint, r models.DateRange) ([]AvailabilityView, error) {
	db := s.deps.DB.WithContext(ctx)
	if err := ensureHotel(db, hotelID); err != nil {
		return nil, err
	}
	roomTypes, err := hotelRoomTypes(db, hotelID)
	if err != nil {
		return nil, dbErr("load room types", err)
	}
	views := make([]AvailabilityView, 0, len(roomTypes))
	for _, rt := range roomTypes {
		v, err := s.Snapshot(ctx, hotelID, rt, r)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func availabilityCacheKey(hotelID uint, roomType string, r models.DateRange) string {
	return fmt.Sprintf("availability:%d:%s:%s:%s", hotelID, NormalizeRoomType(roomType), r.From(), r.To())
}

func buildView(tx *gorm.DB, hotelID uint, roomType string, r models.DateRange) (*AvailabilityView, error) {
	available, total, booked, err := countAvailable(tx, hotelID, roomType, r, exclusion{})
	if err != nil {
		return nil, err
	}
	rate, err := typeRate(tx, hotelID, roomType)
	if err != nil {
		return nil, err
	}
	return &AvailabilityView{
		HotelID:       hotelID,
		RoomType:      roomType,
		From:          r.From(),
		To:            r.To(),
		Total:         total,
		Booked:        booked,
		Available:     available,
		PricePerNight: rate,
	}, nil
}

// countAvailable = rooms of the type minus active reservations overlapping r, clamped to [0, rooms].
// Callers admitting new capacity must run it inside their transaction while holding the capacity lock.
func countAvailable(tx *gorm.DB, hotelID uint, roomType string, r models.DateRange, ex exclusion) (available, total, booked int, err error) {
	var rooms int64
	if err = tx.Model(&models.Room{}).
		Where("hotel_id = ? AND type = ?", hotelID, roomType).
		Count(&rooms).Error; err != nil {
		return 0, 0, 0, dbErr("count rooms", err)
	}
	n, err := countOverlapping(tx, hotelID, roomType, r, ex)
	if err != nil {
		return 0, 0, 0, err
	}
	total = int(rooms)
	booked = int(n)
	available = total - booked
	if available < 0 {
		available = 0
	}
	if available > total {
		available = total
	}
	return available, total, booked, nil
}

func countOverlapping(tx *gorm.DB, hotelID uint, roomType string, r models.DateRange, ex exclusion) (int64, error) {
	q := tx.Model(&models.Reservation{}).
		Where("hotel_id = ? AND room_type = ?", hotelID, roomType).
		Where("status IN ?", constants.ActiveReservationStatuses).
		// nửa mở: ở nối tiếp cùng ngày không xung đột
		Where("arrival_date < ? AND departure_date > ?", r.To(), r.From())
	if ex.reservationID != 0 {
		q = q.Where("id <> ?", ex.reservationID)
	}
	if ex.blockBookingID != 0 {
		q = q.Where("(block_booking_id IS NULL OR block_booking_id <> ?)", ex.blockBookingID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, dbErr("count overlapping reservations", err)
	}
	return n, nil
}

// roomIsFree reports whether no active reservation bound to roomID overlaps r.
func roomIsFree(tx *gorm.DB, roomID uint, r models.DateRange, ex exclusion) (bool, error) {
	q := tx.Model(&models.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", constants.ActiveReservationStatuses).
		Where("arrival_date < ? AND departure_date > ?", r.To(), r.From())
	if ex.reservationID != 0 {
		q = q.Where("id <> ?", ex.reservationID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, dbErr("check room availability", err)
	}
	return n == 0, nil
}

// typeRate là giá thấp nhất trong các phòng cùng loại
func typeRate(tx *gorm.DB, hotelID uint, roomType string) (float64, error) {
	var rate float64
	if err := tx.Model(&models.Room{}).
		Where("hotel_id = ? AND type = ?", hotelID, roomType).
		Select("COALESCE(MIN(price_per_night), 0)").
		Scan(&rate).Error; err != nil {
		return 0, dbErr("load room rate", err)
	}
	return rate, nil
}
