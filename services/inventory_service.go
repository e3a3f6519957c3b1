package services

import (
	"context"
	"strings"

	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/types"

	"gorm.io/gorm"
)

type InventoryService struct {
	deps Deps
}

func NewInventoryService(deps Deps) *InventoryService {
	return &InventoryService{deps: deps.withDefaults()}
}

// ListRooms trả về danh sách phòng của khách sạn, chỉ dành cho nhân viên
func (s *InventoryService) ListRooms(ctx context.Context, hotelID uint, roomType string, requester types.Identity) ([]models.Room, error) {
	if !requester.IsStaff() {
		return nil, apperrors.Forbidden("only staff can view room inventory")
	}
	if err := ensureHotel(s.deps.DB.WithContext(ctx), hotelID); err != nil {
		return nil, err
	}
	var rooms []models.Room
	q := s.deps.DB.WithContext(ctx).Where("hotel_id = ?", hotelID)
	if roomType != "" {
		rt, err := resolveRoomType(s.deps.DB.WithContext(ctx), hotelID, roomType)
		if err != nil {
			return nil, err
		}
		q = q.Where("type = ?", rt)
	}
	if err := q.Order("number").Find(&rooms).Error; err != nil {
		return nil, dbErr("list rooms", err)
	}
	return rooms, nil
}

type AddRoomParams struct {
	HotelID       uint
	Number        string
	Type          string
	PricePerNight float64
}

// AddRoom adds a physical room; the hotel's starting price follows the cheapest room.
func (s *InventoryService) AddRoom(ctx context.Context, p AddRoomParams, requester types.Identity) (*models.Room, error) {
	if !requester.IsManager() {
		return nil, apperrors.Forbidden("only managers can add rooms")
	}
	room := models.Room{
		HotelID:       p.HotelID,
		Number:        strings.TrimSpace(p.Number),
		Type:          strings.TrimSpace(p.Type),
		PricePerNight: p.PricePerNight,
		Status:        constants.RoomStatusAvailable,
	}
	if room.Number == "" || room.Type == "" {
		return nil, apperrors.Validation("room number and type are required")
	}
	if err := room.ValidatePrice(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		if err := ensureHotel(tx, p.HotelID); err != nil {
			return err
		}
		// giữ một cách viết cho mỗi loại phòng
		if existing, err := hotelRoomTypes(tx, p.HotelID); err == nil {
			for _, t := range existing {
				if NormalizeRoomType(t) == NormalizeRoomType(room.Type) {
					room.Type = t
					break
				}
			}
		}
		var dup int64
		if err := tx.Model(&models.Room{}).Where("hotel_id = ? AND number = ?", p.HotelID, room.Number).Count(&dup).Error; err != nil {
			return dbErr("check room number", err)
		}
		if dup > 0 {
			return apperrors.Conflict("room number " + room.Number + " already exists in this hotel")
		}
		if err := tx.Create(&room).Error; err != nil {
			return dbErr("create room", err)
		}
		return updateStartingPrice(tx, p.HotelID)
	})
	if err != nil {
		return nil, err
	}
	s.deps.invalidateAvailability(ctx, p.HotelID)
	return &room, nil
}

// SetMaintenance đưa phòng vào/ra trạng thái bảo trì
func (s *InventoryService) SetMaintenance(ctx context.Context, roomID uint, on bool, requester types.Identity) (*models.Room, error) {
	if !requester.IsStaff() {
		return nil, apperrors.Forbidden("only staff can change room maintenance")
	}
	var room models.Room
	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&room, roomID).Error; err != nil {
			return notFoundOr(err, "room", roomID)
		}
		if on {
			var occupied int64
			if err := tx.Model(&models.Reservation{}).
				Where("room_id = ? AND status = ?", roomID, constants.ReservationCheckedIn).
				Count(&occupied).Error; err != nil {
				return dbErr("check room occupancy", err)
			}
			if occupied > 0 {
				return apperrors.Conflict("room is occupied")
			}
			room.Status = constants.RoomStatusMaintenance
			return dbErr("update room", tx.Model(&room).Update("status", room.Status).Error)
		}
		if room.Status != constants.RoomStatusMaintenance {
			return nil
		}
		status, err := projectRoomStatus(tx, roomID, s.deps.today())
		if err != nil {
			return err
		}
		room.Status = status
		return dbErr("update room", tx.Model(&room).Update("status", status).Error)
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// RefreshAll recomputes the status projection of every room not under maintenance.
func (s *InventoryService) RefreshAll(ctx context.Context) (int, error) {
	var ids []uint
	if err := s.deps.DB.WithContext(ctx).Model(&models.Room{}).
		Where("status <> ?", constants.RoomStatusMaintenance).
		Pluck("id", &ids).Error; err != nil {
		return 0, dbErr("list rooms", err)
	}
	today := s.deps.today()
	changed := 0
	for _, id := range ids {
		err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
			updated, err := refreshRoomStatus(tx, id, today)
			if updated {
				changed++
			}
			return err
		})
		if err != nil {
			s.deps.Logger.Error("refresh room status failed", "room_id", id, "error", err)
		}
	}
	return changed, nil
}

// refreshRoomStatus cập nhật Room.Status theo các reservation đang gắn với phòng
func refreshRoomStatus(tx *gorm.DB, roomID uint, today string) (bool, error) {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		return false, notFoundOr(err, "room", roomID)
	}
	if room.Status == constants.RoomStatusMaintenance {
		return false, nil
	}
	status, err := projectRoomStatus(tx, roomID, today)
	if err != nil {
		return false, err
	}
	if status == room.Status {
		return false, nil
	}
	if err := tx.Model(&models.Room{}).Where("id = ?", roomID).Update("status", status).Error; err != nil {
		return false, dbErr("update room status", err)
	}
	return true, nil
}

func projectRoomStatus(tx *gorm.DB, roomID uint, today string) (string, error) {
	var n int64
	if err := tx.Model(&models.Reservation{}).
		Where("room_id = ? AND status = ?", roomID, constants.ReservationCheckedIn).
		Count(&n).Error; err != nil {
		return "", dbErr("project room status", err)
	}
	if n > 0 {
		return constants.RoomStatusOccupied, nil
	}
	if err := tx.Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ? AND arrival_date <= ? AND departure_date > ?",
			roomID, []string{constants.ReservationReserved, constants.ReservationConfirmed}, today, today).
		Count(&n).Error; err != nil {
		return "", dbErr("project room status", err)
	}
	if n > 0 {
		return constants.RoomStatusReserved, nil
	}
	return constants.RoomStatusAvailable, nil
}

func updateStartingPrice(tx *gorm.DB, hotelID uint) error {
	var min float64
	if err := tx.Model(&models.Room{}).Where("hotel_id = ?", hotelID).
		Select("COALESCE(MIN(price_per_night), 0)").Scan(&min).Error; err != nil {
		return dbErr("compute starting price", err)
	}
	return dbErr("update starting price",
		tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Update("starting_price", min).Error)
}

func ensureHotel(tx *gorm.DB, hotelID uint) error {
	var n int64
	if err := tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Count(&n).Error; err != nil {
		return dbErr("load hotel", err)
	}
	if n == 0 {
		return apperrors.NotFound("hotel", hotelID)
	}
	return nil
}
