package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotelcore/builders"
	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/notification"
	"hotelcore/types"
	"hotelcore/utils"

	"gorm.io/gorm"
)

const maxGuests = 20

type CreateReservationParams struct {
	HotelID       uint
	RoomType      string
	ArrivalDate   string
	DepartureDate string
	// RoomNumber lets a clerk pick the exact room.
	RoomNumber string
	GuestName  string
	GuestEmail string
	GuestPhone string
	// Guests defaults to 1 when zero.
	Guests int
	// CustomerID is honoured for staff only.
	CustomerID *uint
	// NegotiatedTotal replaces price × nights; staff only.
	NegotiatedTotal *float64
	// CheckInNow checks a walk-in guest in immediately.
	CheckInNow bool
	Requester  types.Identity
}

type UpdateReservationParams struct {
	RoomType      *string
	ArrivalDate   *string
	DepartureDate *string
	GuestName     *string
	GuestEmail    *string
	GuestPhone    *string
	Guests        *int
}

type CheckOutParams struct {
	Incidentals   Incidentals
	PaymentMethod string
}

type ReservationFilter struct {
	HotelID        uint
	Status         string
	ArrivalFrom    string
	ArrivalTo      string
	BlockBookingID uint
	Page           int
	Limit          int
}

type ReservationService struct {
	deps Deps
}

func NewReservationService(deps Deps) *ReservationService {
	return &ReservationService{deps: deps.withDefaults()}
}

// Create admits a reservation if the room type still has capacity for the range.
func (s *ReservationService) Create(ctx context.Context, p CreateReservationParams) (*models.Reservation, error) {
	dr, err := models.NewDateRange(p.ArrivalDate, p.DepartureDate)
	if err != nil {
		return nil, err
	}
	staff := p.Requester.IsStaff()
	if p.Requester.UserID == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "missing caller identity", nil)
	}
	if !staff && (p.RoomNumber != "" || p.NegotiatedTotal != nil || p.CheckInNow) {
		return nil, apperrors.Forbidden("only staff can pick a room, set a negotiated total or check in on creation")
	}
	if strings.TrimSpace(p.GuestName) == "" {
		return nil, apperrors.Validation("guest name is required")
	}
	if p.Guests == 0 {
		p.Guests = 1
	}
	if p.Guests < 1 || p.Guests > maxGuests {
		return nil, apperrors.Validation(fmt.Sprintf("guests must be between 1 and %d", maxGuests))
	}
	if p.NegotiatedTotal != nil && *p.NegotiatedTotal < 0 {
		return nil, apperrors.Validation("total amount must not be negative")
	}
	today := s.deps.today()
	if dr.From() < today {
		return nil, apperrors.InvalidDateRange("arrival date is in the past")
	}
	if p.CheckInNow && dr.From() != today {
		return nil, apperrors.InvalidDateRange("walk-in check-in requires arrival today")
	}

	db := s.deps.DB.WithContext(ctx)
	if err := ensureHotel(db, p.HotelID); err != nil {
		return nil, err
	}
	roomType, err := resolveRoomType(db, p.HotelID, p.RoomType)
	if err != nil {
		return nil, err
	}

	unlock, err := s.deps.lockCapacity(ctx, p.HotelID, roomType)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var res *models.Reservation
	err = s.deps.transaction(ctx, func(tx *gorm.DB) error {
		available, _, _, err := countAvailable(tx, p.HotelID, roomType, dr, exclusion{})
		if err != nil {
			return err
		}
		if available < 1 {
			return apperrors.CapacityExceeded(roomType, 1, available)
		}

		var room *models.Room
		switch {
		case p.RoomNumber != "":
			room, err = findFreeRoomByNumber(tx, p.HotelID, roomType, p.RoomNumber, dr)
		case p.CheckInNow:
			room, err = pickFreeRoom(tx, p.HotelID, roomType, dr, exclusion{})
		}
		if err != nil {
			return err
		}

		price, err := typeRate(tx, p.HotelID, roomType)
		if err != nil {
			return err
		}
		if room != nil {
			price = room.PricePerNight
		}
		total := roundCents(price * float64(dr.Nights()))
		if p.NegotiatedTotal != nil {
			total = roundCents(*p.NegotiatedTotal)
		}

		status := constants.ReservationPending
		if staff {
			status = constants.ReservationReserved
		}
		// chỉ nhân viên được đặt hộ khách khác; khách hàng luôn là customer của chính mình
		var customerID *uint
		switch {
		case staff:
			customerID = p.CustomerID
		case p.Requester.Role == constants.RoleCustomer:
			uid := p.Requester.UserID
			customerID = &uid
		}

		res = builders.NewReservationBuilder(p.HotelID, roomType).
			WithOwner(p.Requester.UserID, customerID).
			WithDates(dr).
			WithRoom(room).
			WithGuestInfo(strings.TrimSpace(p.GuestName), p.GuestPhone, p.GuestEmail, p.Guests).
			WithStatus(status).
			WithTotalAmount(total).
			Build()
		if p.CheckInNow {
			now := s.deps.Clock()
			res.Status = constants.ReservationCheckedIn
			res.CheckedInAt = &now
		}
		if err := tx.Create(res).Error; err != nil {
			return dbErr("create reservation", err)
		}
		if room != nil {
			if _, err := refreshRoomStatus(tx, room.ID, today); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("reservation created",
		"reservation_id", res.ID, "hotel_id", res.HotelID, "room_type", res.RoomType,
		"range", dr.String(), "status", res.Status)
	s.deps.invalidateAvailability(ctx, res.HotelID)
	s.deps.publish(ctx, notification.NewEvent(notification.EventReservationCreated, res.HotelID, res.ID, res))
	if res.Status == constants.ReservationCheckedIn {
		s.deps.publish(ctx, notification.NewEvent(notification.EventReservationCheckedIn, res.HotelID, res.ID, res))
	}
	return res, nil
}

// Update changes dates, room type or guest details; the reservation's own allocation never conflicts with itself.
func (s *ReservationService) Update(ctx context.Context, id uint, patch UpdateReservationParams, requester types.Identity) (*models.Reservation, error) {
	current, err := s.load(s.deps.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != requester.UserID {
		return nil, apperrors.Forbidden("only the owner can update this reservation")
	}
	if current.IsBlockHold() {
		return nil, apperrors.InvalidState(current.Status, string(models.ActionUpdate)).
			WithDetail("reason", "block booking holds change through their block booking")
	}
	if !models.GetReservationState(current.Status).Allows(models.ActionUpdate) {
		return nil, apperrors.InvalidState(current.Status, string(models.ActionUpdate))
	}

	arrival, departure := current.ArrivalDate, current.DepartureDate
	if patch.ArrivalDate != nil {
		arrival = *patch.ArrivalDate
	}
	if patch.DepartureDate != nil {
		departure = *patch.DepartureDate
	}
	dr, err := models.NewDateRange(arrival, departure)
	if err != nil {
		return nil, err
	}
	if dr.From() != current.ArrivalDate && dr.From() < s.deps.today() {
		return nil, apperrors.InvalidDateRange("arrival date is in the past")
	}
	if patch.Guests != nil && (*patch.Guests < 1 || *patch.Guests > maxGuests) {
		return nil, apperrors.Validation(fmt.Sprintf("guests must be between 1 and %d", maxGuests))
	}

	roomType := current.RoomType
	if patch.RoomType != nil && NormalizeRoomType(*patch.RoomType) != NormalizeRoomType(current.RoomType) {
		roomType, err = resolveRoomType(s.deps.DB.WithContext(ctx), current.HotelID, *patch.RoomType)
		if err != nil {
			return nil, err
		}
	}

	unlock, err := s.deps.lockCapacity(ctx, current.HotelID, current.RoomType, roomType)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var res *models.Reservation
	var releasedRoom *uint
	err = s.deps.transaction(ctx, func(tx *gorm.DB) error {
		res, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if res.Status != current.Status {
			return apperrors.Conflict(fmt.Sprintf("reservation %d was modified concurrently", id))
		}

		available, _, _, err := countAvailable(tx, res.HotelID, roomType, dr, exclusion{reservationID: res.ID})
		if err != nil {
			return err
		}
		if available < 1 {
			return apperrors.Conflict(fmt.Sprintf("no %q room is available for %s", roomType, dr)).
				WithDetail("roomType", roomType)
		}

		updates := map[string]interface{}{
			"room_type":      roomType,
			"arrival_date":   dr.From(),
			"departure_date": dr.To(),
		}
		price, err := typeRate(tx, res.HotelID, roomType)
		if err != nil {
			return err
		}
		if res.RoomID != nil {
			if roomType != res.RoomType {
				// đổi loại phòng thì bỏ gắn phòng cũ
				releasedRoom = res.RoomID
				updates["room_id"] = nil
				updates["room_number"] = ""
			} else {
				free, err := roomIsFree(tx, *res.RoomID, dr, exclusion{reservationID: res.ID})
				if err != nil {
					return err
				}
				if !free {
					return apperrors.Conflict(fmt.Sprintf("room %s is not free for %s", res.RoomNumber, dr))
				}
				var room models.Room
				if err := tx.First(&room, *res.RoomID).Error; err != nil {
					return notFoundOr(err, "room", *res.RoomID)
				}
				price = room.PricePerNight
				releasedRoom = res.RoomID
			}
		}
		updates["total_amount"] = roundCents(price * float64(dr.Nights()))
		if patch.GuestName != nil {
			if strings.TrimSpace(*patch.GuestName) == "" {
				return apperrors.Validation("guest name is required")
			}
			updates["guest_name"] = strings.TrimSpace(*patch.GuestName)
		}
		if patch.GuestEmail != nil {
			updates["guest_email"] = *patch.GuestEmail
		}
		if patch.GuestPhone != nil {
			updates["guest_phone"] = *patch.GuestPhone
		}
		if patch.Guests != nil {
			updates["guests"] = *patch.Guests
		}

		result := tx.Model(&models.Reservation{}).
			Where("id = ? AND status = ?", res.ID, res.Status).
			Updates(updates)
		if result.Error != nil {
			return dbErr("update reservation", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict(fmt.Sprintf("reservation %d was modified concurrently", id))
		}
		if releasedRoom != nil {
			if _, err := refreshRoomStatus(tx, *releasedRoom, s.deps.today()); err != nil {
				return err
			}
		}
		res, err = s.load(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("reservation updated", "reservation_id", id, "room_type", res.RoomType, "range", dr.String())
	s.deps.invalidateAvailability(ctx, res.HotelID)
	return res, nil
}

// Cancel releases the reservation's capacity; allowed for the owner or staff before check-in.
func (s *ReservationService) Cancel(ctx context.Context, id uint, requester types.Identity, reason string) (*models.Reservation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		if requester.IsStaff() {
			reason = "cancelled by staff"
		} else {
			reason = "cancelled by guest"
		}
	}

	var res *models.Reservation
	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		res, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if !res.IsOwnedBy(requester.UserID) && !requester.IsStaff() {
			return apperrors.Forbidden("only the owner or staff can cancel this reservation")
		}
		if err := res.Transition(tx, models.ActionCancel, map[string]interface{}{
			"cancellation_reason": reason,
			"customer_notified":   false,
		}); err != nil {
			return err
		}
		res.CancellationReason = &reason
		res.CustomerNotified = false
		if res.RoomID != nil {
			if _, err := refreshRoomStatus(tx, *res.RoomID, s.deps.today()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("reservation cancelled", "reservation_id", id, "by", requester.UserID, "reason", reason)
	s.deps.invalidateAvailability(ctx, res.HotelID)
	s.deps.publish(ctx, notification.NewEvent(notification.EventReservationCancelled, res.HotelID, res.ID, res))
	return res, nil
}

// Delete removes a reservation the owner has not yet had honored.
func (s *ReservationService) Delete(ctx context.Context, id uint, requester types.Identity) error {
	var hotelID uint
	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		res, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if res.OwnerID != requester.UserID {
			return apperrors.Forbidden("only the owner can delete this reservation")
		}
		if res.IsBlockHold() || !(res.IsPreCheckIn() || res.Status == constants.ReservationCancelled) {
			return apperrors.InvalidState(res.Status, "delete")
		}
		result := tx.Where("id = ? AND status = ?", res.ID, res.Status).Delete(&models.Reservation{})
		if result.Error != nil {
			return dbErr("delete reservation", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict(fmt.Sprintf("reservation %d was modified concurrently", id))
		}
		hotelID = res.HotelID
		if res.RoomID != nil {
			if _, err := refreshRoomStatus(tx, *res.RoomID, s.deps.today()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.deps.Logger.Info("reservation deleted", "reservation_id", id, "by", requester.UserID)
	s.deps.invalidateAvailability(ctx, hotelID)
	return nil
}

// StartPayment moves a pending reservation to pending_payment when the owner hands off to the payment provider.
func (s *ReservationService) StartPayment(ctx context.Context, id uint, requester types.Identity) (*models.Reservation, error) {
	return s.simpleTransition(ctx, id, models.ActionStartPayment, func(res *models.Reservation) error {
		if !res.IsOwnedBy(requester.UserID) {
			return apperrors.Forbidden("only the owner can pay for this reservation")
		}
		return nil
	}, nil)
}

// MarkPaid is called by the payment collaborator; repeated notifications are no-ops.
func (s *ReservationService) MarkPaid(ctx context.Context, id uint) (*models.Reservation, error) {
	var res *models.Reservation
	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		res, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if res.PaidAt != nil {
			return nil
		}
		now := s.deps.Clock()
		if err := res.Transition(tx, models.ActionMarkPaid, map[string]interface{}{"paid_at": now}); err != nil {
			return err
		}
		res.PaidAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("reservation paid", "reservation_id", id, "status", res.Status)
	return res, nil
}

// Confirm lets staff hold a reservation that will be paid at the desk.
func (s *ReservationService) Confirm(ctx context.Context, id uint, requester types.Identity) (*models.Reservation, error) {
	return s.simpleTransition(ctx, id, models.ActionConfirm, func(*models.Reservation) error {
		if !requester.IsStaff() {
			return apperrors.Forbidden("only staff can confirm reservations")
		}
		return nil
	}, nil)
}

// CheckIn binds a free room when none is bound yet and marks it occupied.
func (s *ReservationService) CheckIn(ctx context.Context, id uint, requester types.Identity) (*models.Reservation, error) {
	if !requester.IsStaff() {
		return nil, apperrors.Forbidden("only staff can check guests in")
	}
	current, err := s.load(s.deps.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	unlock, err := s.deps.lockCapacity(ctx, current.HotelID, current.RoomType)
	if err != nil {
		return nil, err
	}
	defer unlock()

	today := s.deps.today()
	var res *models.Reservation
	err = s.deps.transaction(ctx, func(tx *gorm.DB) error {
		res, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if !models.GetReservationState(res.Status).Allows(models.ActionCheckIn) {
			return apperrors.InvalidState(res.Status, string(models.ActionCheckIn))
		}
		if res.Status == constants.ReservationPendingPayment && res.PaidAt == nil {
			return apperrors.InvalidState(res.Status, string(models.ActionCheckIn)).
				WithDetail("reason", "payment has not been received")
		}
		if res.ArrivalDate > today {
			return apperrors.InvalidState(res.Status, string(models.ActionCheckIn)).
				WithDetail("reason", "arrival date is "+res.ArrivalDate)
		}

		room, err := s.roomForCheckIn(tx, res)
		if err != nil {
			return err
		}
		now := s.deps.Clock()
		if err := res.Transition(tx, models.ActionCheckIn, map[string]interface{}{
			"room_id":       room.ID,
			"room_number":   room.Number,
			"checked_in_at": now,
		}); err != nil {
			return err
		}
		if res.RoomID != nil && *res.RoomID != room.ID {
			if _, err := refreshRoomStatus(tx, *res.RoomID, today); err != nil {
				return err
			}
		}
		roomID := room.ID
		res.RoomID = &roomID
		res.RoomNumber = room.Number
		res.CheckedInAt = &now
		_, err = refreshRoomStatus(tx, room.ID, today)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("guest checked in", "reservation_id", id, "room", res.RoomNumber)
	s.deps.publish(ctx, notification.NewEvent(notification.EventReservationCheckedIn, res.HotelID, res.ID, res))
	return res, nil
}

// roomForCheckIn keeps the bound room unless it went into maintenance or is occupied by someone else.
func (s *ReservationService) roomForCheckIn(tx *gorm.DB, res *models.Reservation) (*models.Room, error) {
	if res.RoomID != nil {
		var room models.Room
		err := tx.First(&room, *res.RoomID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dbErr("load room", err)
		}
		if err == nil && room.Status != constants.RoomStatusMaintenance {
			var others int64
			if err := tx.Model(&models.Reservation{}).
				Where("room_id = ? AND status = ? AND id <> ?", room.ID, constants.ReservationCheckedIn, res.ID).
				Count(&others).Error; err != nil {
				return nil, dbErr("check room occupancy", err)
			}
			if others == 0 {
				return &room, nil
			}
		}
	}
	return pickFreeRoom(tx, res.HotelID, res.RoomType, res.Range(), exclusion{reservationID: res.ID})
}

// CheckOut bills the stay exactly once and frees the room.
func (s *ReservationService) CheckOut(ctx context.Context, id uint, p CheckOutParams, requester types.Identity) (*models.BillingRecord, error) {
	if !requester.IsStaff() {
		return nil, apperrors.Forbidden("only staff can check guests out")
	}
	var (
		res    *models.Reservation
		record models.BillingRecord
	)
	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		var billed int64
		if err := tx.Model(&models.BillingRecord{}).Where("reservation_id = ?", id).Count(&billed).Error; err != nil {
			return dbErr("check billing record", err)
		}
		if billed > 0 {
			return apperrors.AlreadyBilled(id)
		}
		var err error
		res, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if !models.GetReservationState(res.Status).Allows(models.ActionCheckOut) {
			return apperrors.InvalidState(res.Status, string(models.ActionCheckOut))
		}

		price, err := typeRate(tx, res.HotelID, res.RoomType)
		if err != nil {
			return err
		}
		if res.RoomID != nil {
			var room models.Room
			if err := tx.First(&room, *res.RoomID).Error; err != nil {
				return notFoundOr(err, "room", *res.RoomID)
			}
			price = room.PricePerNight
		}

		now := s.deps.Clock()
		folio, err := CalculateFolio(FolioInput{
			RoomCharge:    res.TotalAmount,
			DepartureDate: res.DepartureDate,
			CheckoutAt:    now,
			Location:      s.deps.Location,
			PricePerNight: price,
			Incidentals:   p.Incidentals,
			PaymentMethod: p.PaymentMethod,
		})
		if err != nil {
			return err
		}

		if err := res.Transition(tx, models.ActionCheckOut, map[string]interface{}{"checked_out_at": now}); err != nil {
			return err
		}
		res.CheckedOutAt = &now
		record = folio.Record(res.ID, constants.BillingSourceCheckout)
		if err := tx.Create(&record).Error; err != nil {
			return dbErr("create billing record", err)
		}
		if res.RoomID != nil {
			if _, err := refreshRoomStatus(tx, *res.RoomID, s.deps.today()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("guest checked out",
		"reservation_id", id, "total", record.Total, "late_days", record.LateDays)
	s.deps.invalidateAvailability(ctx, res.HotelID)
	s.deps.publish(ctx, notification.NewEvent(notification.EventReservationCheckedOut, res.HotelID, res.ID, record))
	return &record, nil
}

// MarkCustomerNotified records that the guest was told about the last status change.
func (s *ReservationService) MarkCustomerNotified(ctx context.Context, id uint, requester types.Identity) (*models.Reservation, error) {
	if !requester.IsStaff() {
		return nil, apperrors.Forbidden("only staff can acknowledge notifications")
	}
	var res *models.Reservation
	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		res, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if res.CustomerNotified {
			return nil
		}
		if err := tx.Model(&models.Reservation{}).Where("id = ?", id).Update("customer_notified", true).Error; err != nil {
			return dbErr("update reservation", err)
		}
		res.CustomerNotified = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint, requester types.Identity) (*models.Reservation, error) {
	res, err := s.load(s.deps.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !res.IsOwnedBy(requester.UserID) && !requester.IsStaff() {
		return nil, apperrors.Forbidden("you cannot view this reservation")
	}
	return res, nil
}

// List trả về danh sách reservation có phân trang; khách hàng chỉ thấy của mình
func (s *ReservationService) List(ctx context.Context, f ReservationFilter, requester types.Identity) ([]models.Reservation, int64, error) {
	q := s.deps.DB.WithContext(ctx).Model(&models.Reservation{})
	if !requester.IsStaff() {
		q = q.Where("owner_id = ? OR customer_id = ?", requester.UserID, requester.UserID)
	}
	if f.HotelID != 0 {
		q = q.Where("hotel_id = ?", f.HotelID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ArrivalFrom != "" {
		q = q.Where("arrival_date >= ?", f.ArrivalFrom)
	}
	if f.ArrivalTo != "" {
		q = q.Where("arrival_date <= ?", f.ArrivalTo)
	}
	if f.BlockBookingID != 0 {
		q = q.Where("block_booking_id = ?", f.BlockBookingID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, dbErr("count reservations", err)
	}
	page, limit := utils.NormalizePage(f.Page, f.Limit)
	var list []models.Reservation
	if err := q.Order("arrival_date, id").Offset(page * limit).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, dbErr("list reservations", err)
	}
	return list, total, nil
}

func (s *ReservationService) GetBilling(ctx context.Context, reservationID uint, requester types.Identity) (*models.BillingRecord, error) {
	if _, err := s.Get(ctx, reservationID, requester); err != nil {
		return nil, err
	}
	var record models.BillingRecord
	if err := s.deps.DB.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&record).Error; err != nil {
		return nil, notFoundOr(err, "billing record for reservation", reservationID)
	}
	return &record, nil
}

func (s *ReservationService) load(tx *gorm.DB, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := tx.First(&res, id).Error; err != nil {
		return nil, notFoundOr(err, "reservation", id)
	}
	return &res, nil
}

// simpleTransition applies an action that touches nothing but the status.
func (s *ReservationService) simpleTransition(ctx context.Context, id uint, action models.Action, authorize func(*models.Reservation) error, extra map[string]interface{}) (*models.Reservation, error) {
	var res *models.Reservation
	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		res, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if err := authorize(res); err != nil {
			return err
		}
		if err := res.Transition(tx, action, extra); err != nil {
			return err
		}
		if res.RoomID != nil {
			_, err = refreshRoomStatus(tx, *res.RoomID, s.deps.today())
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("reservation transitioned", "reservation_id", id, "action", string(action), "status", res.Status)
	return res, nil
}

// findFreeRoomByNumber verifies the clerk's chosen room is of the type and free for the whole range.
func findFreeRoomByNumber(tx *gorm.DB, hotelID uint, roomType, number string, dr models.DateRange) (*models.Room, error) {
	var room models.Room
	if err := tx.Where("hotel_id = ? AND number = ?", hotelID, strings.TrimSpace(number)).First(&room).Error; err != nil {
		return nil, notFoundOr(err, "room", number)
	}
	if room.Type != roomType {
		return nil, apperrors.Validation(fmt.Sprintf("room %s is a %q room, not %q", room.Number, room.Type, roomType))
	}
	if room.Status == constants.RoomStatusMaintenance {
		return nil, apperrors.CapacityExceeded(roomType, 1, 0).WithDetail("room", room.Number)
	}
	free, err := roomIsFree(tx, room.ID, dr, exclusion{})
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, apperrors.CapacityExceeded(roomType, 1, 0).WithDetail("room", room.Number)
	}
	return &room, nil
}

// pickFreeRoom chọn phòng trống có số nhỏ nhất, bỏ qua phòng bảo trì hoặc đang có khách
func pickFreeRoom(tx *gorm.DB, hotelID uint, roomType string, dr models.DateRange, ex exclusion) (*models.Room, error) {
	var rooms []models.Room
	if err := tx.Where("hotel_id = ? AND type = ? AND status NOT IN ?", hotelID, roomType,
		[]string{constants.RoomStatusMaintenance, constants.RoomStatusOccupied}).
		Order("LENGTH(number), number").
		Find(&rooms).Error; err != nil {
		return nil, dbErr("list rooms", err)
	}
	for i := range rooms {
		free, err := roomIsFree(tx, rooms[i].ID, dr, ex)
		if err != nil {
			return nil, err
		}
		if free {
			return &rooms[i], nil
		}
	}
	return nil, apperrors.NoRoomAvailable(roomType)
}
