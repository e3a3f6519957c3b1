package services

import (
	"context"
	"fmt"
	"sort"
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

type BlockRoomRequest struct {
	RoomType  string
	RoomCount int
}

type CreateBlockParams struct {
	HotelID uint
	// TravelCompanyID is required when staff book on behalf of a company.
	TravelCompanyID uint
	ArrivalDate     string
	DepartureDate   string
	RoomTypes       []BlockRoomRequest
	DiscountRate    float64
	Requester       types.Identity
}

type UpdateBlockParams struct {
	ArrivalDate   *string
	DepartureDate *string
	RoomTypes     []BlockRoomRequest // nil giữ nguyên
	DiscountRate  *float64
}

type BlockBookingFilter struct {
	HotelID uint
	Status  string
	Page    int
	Limit   int
}

type BlockBookingService struct {
	deps Deps
}

func NewBlockBookingService(deps Deps) *BlockBookingService {
	return &BlockBookingService{deps: deps.withDefaults()}
}

// Create validates the request against current availability and stores it as pending, without holds.
func (s *BlockBookingService) Create(ctx context.Context, p CreateBlockParams) (*models.BlockBooking, error) {
	if !p.Requester.IsTravelCompany() && !p.Requester.IsStaff() {
		return nil, apperrors.Forbidden("only travel companies or staff can request block bookings")
	}
	dr, err := models.NewDateRange(p.ArrivalDate, p.DepartureDate)
	if err != nil {
		return nil, err
	}
	if dr.From() < s.deps.today() {
		return nil, apperrors.InvalidDateRange("arrival date is in the past")
	}
	if err := validateBlockShape(p.RoomTypes, p.DiscountRate); err != nil {
		return nil, err
	}
	companyID := p.TravelCompanyID
	if p.Requester.IsTravelCompany() {
		companyID = p.Requester.Company()
	}
	if companyID == 0 {
		return nil, apperrors.Validation("travelCompanyId is required")
	}

	db := s.deps.DB.WithContext(ctx)
	if err := ensureHotel(db, p.HotelID); err != nil {
		return nil, err
	}
	lines, err := resolveBlockLines(db, p.HotelID, p.RoomTypes)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		available, _, _, err := countAvailable(db, p.HotelID, lines[i].RoomType, dr, exclusion{})
		if err != nil {
			return nil, err
		}
		if lines[i].RoomCount > available {
			return nil, apperrors.CapacityExceeded(lines[i].RoomType, lines[i].RoomCount, available)
		}
		if lines[i].PricePerNight, err = typeRate(db, p.HotelID, lines[i].RoomType); err != nil {
			return nil, err
		}
	}

	block := &models.BlockBooking{
		HotelID:         p.HotelID,
		TravelCompanyID: companyID,
		RequestedBy:     p.Requester.UserID,
		ArrivalDate:     dr.From(),
		DepartureDate:   dr.To(),
		DiscountRate:    p.DiscountRate,
		Status:          constants.BlockStatusPending,
		TotalAmount:     BlockTotal(lines, dr.Nights(), p.DiscountRate),
		RoomTypes:       lines,
	}
	if err := db.Create(block).Error; err != nil {
		return nil, dbErr("create block booking", err)
	}
	s.deps.Logger.Info("block booking requested",
		"block_booking_id", block.ID, "hotel_id", block.HotelID, "rooms", block.TotalRooms(), "total", block.TotalAmount)
	return block, nil
}

// Approve re-validates every room type under the capacity locks and materializes one hold per room.
func (s *BlockBookingService) Approve(ctx context.Context, id uint, requester types.Identity) (*models.BlockBooking, error) {
	if !requester.IsManager() {
		return nil, apperrors.Forbidden("only managers can approve block bookings")
	}
	block, err := s.load(s.deps.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if block.Status != constants.BlockStatusPending {
		return nil, apperrors.InvalidState(block.Status, "approve")
	}

	unlock, err := s.deps.lockCapacity(ctx, block.HotelID, lineTypes(block.RoomTypes)...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.deps.transaction(ctx, func(tx *gorm.DB) error {
		dr := block.Range()
		for _, line := range block.RoomTypes {
			available, _, _, err := countAvailable(tx, block.HotelID, line.RoomType, dr, exclusion{blockBookingID: block.ID})
			if err != nil {
				return err
			}
			if line.RoomCount > available {
				return apperrors.CapacityExceeded(line.RoomType, line.RoomCount, available)
			}
		}
		if err := casBlockStatus(tx, block, constants.BlockStatusReserved, nil); err != nil {
			return err
		}
		return createHolds(tx, block)
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("block booking approved", "block_booking_id", id, "by", requester.UserID)
	s.deps.invalidateAvailability(ctx, block.HotelID)
	s.deps.publish(ctx, notification.NewEvent(notification.EventBlockApproved, block.HotelID, block.ID, block))
	return block, nil
}

// Reject sets rejected and releases any holds that were materialized.
func (s *BlockBookingService) Reject(ctx context.Context, id uint, requester types.Identity, reason string) (*models.BlockBooking, error) {
	if !requester.IsManager() {
		return nil, apperrors.Forbidden("only managers can reject block bookings")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = constants.BlockRejectReason
	}
	block, err := s.finish(ctx, id, constants.BlockStatusRejected, "reject", reason, nil)
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("block booking rejected", "block_booking_id", id, "reason", reason)
	s.deps.publish(ctx, notification.NewEvent(notification.EventBlockRejected, block.HotelID, block.ID, block))
	return block, nil
}

// Cancel is available to the requesting company and to managers.
func (s *BlockBookingService) Cancel(ctx context.Context, id uint, requester types.Identity) (*models.BlockBooking, error) {
	block, err := s.finish(ctx, id, constants.BlockStatusCancelled, "cancel", constants.BlockCancelReason,
		func(b *models.BlockBooking) error {
			if !ownsBlock(b, requester) && !requester.IsManager() {
				return apperrors.Forbidden("only the requesting company or a manager can cancel this block booking")
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("block booking cancelled", "block_booking_id", id, "by", requester.UserID)
	return block, nil
}

func (s *BlockBookingService) finish(ctx context.Context, id uint, status, action, reason string, authorize func(*models.BlockBooking) error) (*models.BlockBooking, error) {
	var block *models.BlockBooking
	err := s.deps.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		block, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(block); err != nil {
				return err
			}
		}
		if block.Status != constants.BlockStatusPending && block.Status != constants.BlockStatusReserved {
			return apperrors.InvalidState(block.Status, action)
		}
		var extra map[string]interface{}
		if status == constants.BlockStatusRejected {
			extra = map[string]interface{}{"rejection_reason": reason}
			block.RejectionReason = &reason
		}
		if err := casBlockStatus(tx, block, status, extra); err != nil {
			return err
		}
		return s.releaseHolds(tx, block.ID, reason)
	})
	if err != nil {
		return nil, err
	}
	s.deps.invalidateAvailability(ctx, block.HotelID)
	return block, nil
}

// Update re-validates the new shape excluding the block's own holds and swaps the holds in one transaction.
func (s *BlockBookingService) Update(ctx context.Context, id uint, patch UpdateBlockParams, requester types.Identity) (*models.BlockBooking, error) {
	current, err := s.load(s.deps.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !ownsBlock(current, requester) {
		return nil, apperrors.Forbidden("only the requesting company can update this block booking")
	}
	if current.Status != constants.BlockStatusPending && current.Status != constants.BlockStatusReserved {
		return nil, apperrors.InvalidState(current.Status, "update")
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
	discount := current.DiscountRate
	if patch.DiscountRate != nil {
		discount = *patch.DiscountRate
	}
	requested := patch.RoomTypes
	if requested == nil {
		for _, line := range current.RoomTypes {
			requested = append(requested, BlockRoomRequest{RoomType: line.RoomType, RoomCount: line.RoomCount})
		}
	}
	if err := validateBlockShape(requested, discount); err != nil {
		return nil, err
	}
	lines, err := resolveBlockLines(s.deps.DB.WithContext(ctx), current.HotelID, requested)
	if err != nil {
		return nil, err
	}

	unlock, err := s.deps.lockCapacity(ctx, current.HotelID, append(lineTypes(current.RoomTypes), lineTypes(lines)...)...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var block *models.BlockBooking
	err = s.deps.transaction(ctx, func(tx *gorm.DB) error {
		block, err = s.load(tx, id)
		if err != nil {
			return err
		}
		if block.Status != current.Status {
			return apperrors.Conflict(fmt.Sprintf("block booking %d was modified concurrently", id))
		}
		for i := range lines {
			available, _, _, err := countAvailable(tx, block.HotelID, lines[i].RoomType, dr, exclusion{blockBookingID: block.ID})
			if err != nil {
				return err
			}
			if lines[i].RoomCount > available {
				return apperrors.Conflict(fmt.Sprintf("not enough %q rooms for %s: requested %d, available %d",
					lines[i].RoomType, dr, lines[i].RoomCount, available)).WithDetail("roomType", lines[i].RoomType)
			}
			if lines[i].PricePerNight, err = typeRate(tx, block.HotelID, lines[i].RoomType); err != nil {
				return err
			}
			lines[i].BlockBookingID = block.ID
		}

		if block.Status == constants.BlockStatusReserved {
			if err := s.releaseHolds(tx, block.ID, constants.BlockReplaceReason); err != nil {
				return err
			}
		}
		if err := tx.Where("block_booking_id = ?", block.ID).Delete(&models.BlockBookingRoomType{}).Error; err != nil {
			return dbErr("replace block room types", err)
		}
		if err := tx.Create(&lines).Error; err != nil {
			return dbErr("replace block room types", err)
		}
		block.ArrivalDate = dr.From()
		block.DepartureDate = dr.To()
		block.DiscountRate = discount
		block.TotalAmount = BlockTotal(lines, dr.Nights(), discount)
		block.RoomTypes = lines
		if err := tx.Model(&models.BlockBooking{}).Where("id = ?", block.ID).Updates(map[string]interface{}{
			"arrival_date":   block.ArrivalDate,
			"departure_date": block.DepartureDate,
			"discount_rate":  block.DiscountRate,
			"total_amount":   block.TotalAmount,
		}).Error; err != nil {
			return dbErr("update block booking", err)
		}
		if block.Status == constants.BlockStatusReserved {
			return createHolds(tx, block)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info("block booking updated", "block_booking_id", id, "rooms", block.TotalRooms(), "total", block.TotalAmount)
	s.deps.invalidateAvailability(ctx, block.HotelID)
	return block, nil
}

func (s *BlockBookingService) Get(ctx context.Context, id uint, requester types.Identity) (*models.BlockBooking, error) {
	block, err := s.load(s.deps.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !ownsBlock(block, requester) && !requester.IsStaff() {
		return nil, apperrors.Forbidden("you cannot view this block booking")
	}
	return block, nil
}

func (s *BlockBookingService) List(ctx context.Context, f BlockBookingFilter, requester types.Identity) ([]models.BlockBooking, int64, error) {
	q := s.deps.DB.WithContext(ctx).Model(&models.BlockBooking{})
	switch {
	case requester.IsStaff():
	case requester.IsTravelCompany():
		q = q.Where("travel_company_id = ?", requester.Company())
	default:
		return nil, 0, apperrors.Forbidden("only travel companies or staff can list block bookings")
	}
	if f.HotelID != 0 {
		q = q.Where("hotel_id = ?", f.HotelID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, dbErr("count block bookings", err)
	}
	page, limit := utils.NormalizePage(f.Page, f.Limit)
	var list []models.BlockBooking
	if err := q.Preload("RoomTypes").Order("arrival_date, id").Offset(page * limit).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, dbErr("list block bookings", err)
	}
	return list, total, nil
}

func (s *BlockBookingService) load(tx *gorm.DB, id uint) (*models.BlockBooking, error) {
	var block models.BlockBooking
	if err := tx.Preload("RoomTypes").First(&block, id).Error; err != nil {
		return nil, notFoundOr(err, "block booking", id)
	}
	return &block, nil
}

// releaseHolds cancels the block's pre-check-in holds; a checked-in hold pins the block.
func (s *BlockBookingService) releaseHolds(tx *gorm.DB, blockID uint, reason string) error {
	var stayed int64
	if err := tx.Model(&models.Reservation{}).
		Where("block_booking_id = ? AND status IN ?", blockID,
			[]string{constants.ReservationCheckedIn, constants.ReservationCheckedOut}).
		Count(&stayed).Error; err != nil {
		return dbErr("check block holds", err)
	}
	if stayed > 0 {
		return apperrors.InvalidState(constants.ReservationCheckedIn, "release").
			WithDetail("reason", "a room of this block is already checked in")
	}

	var rooms []uint
	if err := tx.Model(&models.Reservation{}).
		Where("block_booking_id = ? AND status IN ? AND room_id IS NOT NULL", blockID, constants.PreCheckInStatuses).
		Pluck("room_id", &rooms).Error; err != nil {
		return dbErr("load block holds", err)
	}
	if err := tx.Model(&models.Reservation{}).
		Where("block_booking_id = ? AND status IN ?", blockID, constants.PreCheckInStatuses).
		Updates(map[string]interface{}{
			"status":              constants.ReservationCancelled,
			"cancellation_reason": reason,
			"customer_notified":   false,
		}).Error; err != nil {
		return dbErr("release block holds", err)
	}
	for _, roomID := range rooms {
		if _, err := refreshRoomStatus(tx, roomID, s.deps.today()); err != nil {
			return err
		}
	}
	return nil
}

// BlockTotal = Σ(count × nights × rate) × (1 − discount/100), rounded to cents.
func BlockTotal(lines []models.BlockBookingRoomType, nights int, discount float64) float64 {
	gross := 0.0
	for _, l := range lines {
		gross += float64(l.RoomCount*nights) * l.PricePerNight
	}
	return roundCents(gross * (1 - discount/100))
}

func validateBlockShape(reqs []BlockRoomRequest, discount float64) error {
	total := 0
	for _, r := range reqs {
		if r.RoomCount < 1 {
			return apperrors.Validation(fmt.Sprintf("room count for %q must be at least 1", r.RoomType))
		}
		total += r.RoomCount
	}
	if total < constants.MinBlockRooms {
		return apperrors.InvalidBlockSize(total, constants.MinBlockRooms)
	}
	if discount < 0 || discount > constants.MaxBlockDiscount {
		return apperrors.InvalidDiscount(discount)
	}
	return nil
}

// resolveBlockLines maps requested names to stored room types, merging duplicates.
func resolveBlockLines(db *gorm.DB, hotelID uint, reqs []BlockRoomRequest) ([]models.BlockBookingRoomType, error) {
	counts := map[string]int{}
	for _, r := range reqs {
		rt, err := resolveRoomType(db, hotelID, r.RoomType)
		if err != nil {
			return nil, err
		}
		counts[rt] += r.RoomCount
	}
	lines := make([]models.BlockBookingRoomType, 0, len(counts))
	for rt, n := range counts {
		lines = append(lines, models.BlockBookingRoomType{RoomType: rt, RoomCount: n})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].RoomType < lines[j].RoomType })
	return lines, nil
}

func lineTypes(lines []models.BlockBookingRoomType) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.RoomType)
	}
	return out
}

func ownsBlock(b *models.BlockBooking, who types.Identity) bool {
	if who.UserID != 0 && b.RequestedBy == who.UserID {
		return true
	}
	return who.IsTravelCompany() && b.TravelCompanyID == who.Company()
}

func casBlockStatus(tx *gorm.DB, b *models.BlockBooking, status string, extra map[string]interface{}) error {
	updates := map[string]interface{}{"status": status}
	for k, v := range extra {
		updates[k] = v
	}
	result := tx.Model(&models.BlockBooking{}).Where("id = ? AND status = ?", b.ID, b.Status).Updates(updates)
	if result.Error != nil {
		return dbErr("update block booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Conflict(fmt.Sprintf("block booking %d was modified concurrently", b.ID))
	}
	b.Status = status
	return nil
}

// createHolds materializes one reserved reservation per room; the shares add up to the block total.
func createHolds(tx *gorm.DB, b *models.BlockBooking) error {
	dr := b.Range()
	factor := 1 - b.DiscountRate/100
	var holds []*models.Reservation
	allocated := 0.0
	for _, line := range b.RoomTypes {
		share := roundCents(line.PricePerNight * float64(dr.Nights()) * factor)
		for i := 0; i < line.RoomCount; i++ {
			hold := builders.NewReservationBuilder(b.HotelID, line.RoomType).
				WithOwner(b.RequestedBy, nil).
				WithDates(dr).
				WithGuestInfo(fmt.Sprintf("Block booking #%d", b.ID), "", "", 1).
				WithBlockBooking(b.ID).
				WithStatus(constants.ReservationReserved).
				WithTotalAmount(share).
				Build()
			holds = append(holds, hold)
			allocated += share
		}
	}
	if len(holds) == 0 {
		return nil
	}
	// phần lẻ do làm tròn dồn vào phòng cuối
	last := holds[len(holds)-1]
	last.TotalAmount = roundCents(last.TotalAmount + b.TotalAmount - allocated)
	for _, h := range holds {
		if err := tx.Create(h).Error; err != nil {
			return dbErr("create block hold", err)
		}
	}
	return nil
}
