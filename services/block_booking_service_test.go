package services

import (
	"testing"

	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/notification"
	"hotelcore/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockFixture(t *testing.T) *fixture {
	return newFixture(t,
		testutil.Room("101", "Deluxe", 100),
		testutil.Room("102", "Deluxe", 100),
		testutil.Room("103", "Deluxe", 100),
		testutil.Room("301", "Standard", 60),
		testutil.Room("302", "Standard", 60),
	)
}

func (f *fixture) requestBlock(counts map[string]int, discount float64) (*models.BlockBooking, error) {
	var lines []BlockRoomRequest
	for rt, n := range counts {
		lines = append(lines, BlockRoomRequest{RoomType: rt, RoomCount: n})
	}
	return f.blocks.Create(f.ctx, CreateBlockParams{
		HotelID:       f.hotel.ID,
		ArrivalDate:   "2024-06-10",
		DepartureDate: "2024-06-12",
		RoomTypes:     lines,
		DiscountRate:  discount,
		Requester:     company,
	})
}

func (f *fixture) activeHolds(blockID uint) []models.Reservation {
	f.t.Helper()
	var holds []models.Reservation
	require.NoError(f.t, f.db.Where("block_booking_id = ? AND status IN ?", blockID, constants.ActiveReservationStatuses).
		Order("id").Find(&holds).Error)
	return holds
}

func TestBlockCreate_TotalWithDiscount(t *testing.T) {
	f := blockFixture(t)

	block, err := f.requestBlock(map[string]int{"Deluxe": 2, "Standard": 1}, 10)
	require.NoError(t, err)

	assert.Equal(t, constants.BlockStatusPending, block.Status)
	assert.Equal(t, 468.0, block.TotalAmount)
	assert.Equal(t, company.Company(), block.TravelCompanyID)
	assert.Equal(t, 3, block.TotalRooms())
	assert.Empty(t, f.activeHolds(block.ID), "pending blocks hold nothing")
	assert.Equal(t, 3, f.available("Deluxe", "2024-06-10", "2024-06-12"))
}

func TestBlockCreate_MergesDuplicateTypes(t *testing.T) {
	f := blockFixture(t)
	block, err := f.blocks.Create(f.ctx, CreateBlockParams{
		HotelID: f.hotel.ID, ArrivalDate: "2024-06-10", DepartureDate: "2024-06-11",
		RoomTypes: []BlockRoomRequest{{"Deluxe", 1}, {"deluxe", 1}, {"Standard", 1}},
		Requester: company,
	})
	require.NoError(t, err)
	require.Len(t, block.RoomTypes, 2)
	assert.Equal(t, "Deluxe", block.RoomTypes[0].RoomType)
	assert.Equal(t, 2, block.RoomTypes[0].RoomCount)
}

func TestBlockCreate_Rejections(t *testing.T) {
	f := blockFixture(t)

	_, err := f.requestBlock(map[string]int{"Deluxe": 1, "Standard": 1}, 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidBlockSize)

	_, err = f.requestBlock(map[string]int{"Deluxe": 3}, 50.5)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDiscount)
	_, err = f.requestBlock(map[string]int{"Deluxe": 3}, -1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDiscount)

	_, err = f.requestBlock(map[string]int{"Deluxe": 2, "Standard": 3}, 0)
	require.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.Equal(t, "Standard", apperrors.GetAppError(err).Details["roomType"])

	_, err = f.blocks.Create(f.ctx, CreateBlockParams{
		HotelID: f.hotel.ID, ArrivalDate: "2024-06-10", DepartureDate: "2024-06-12",
		RoomTypes: []BlockRoomRequest{{"Deluxe", 3}}, Requester: customer,
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestBlockApprove_MaterializesHolds(t *testing.T) {
	f := blockFixture(t)
	block, err := f.requestBlock(map[string]int{"Deluxe": 2, "Standard": 1}, 10)
	require.NoError(t, err)

	_, err = f.blocks.Approve(f.ctx, block.ID, clerk)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	approved, err := f.blocks.Approve(f.ctx, block.ID, manager)
	require.NoError(t, err)
	assert.Equal(t, constants.BlockStatusReserved, approved.Status)

	holds := f.activeHolds(block.ID)
	require.Len(t, holds, 3)
	sum := 0.0
	for _, h := range holds {
		assert.Equal(t, constants.ReservationReserved, h.Status)
		assert.Equal(t, company.UserID, h.OwnerID)
		sum += h.TotalAmount
	}
	assert.InDelta(t, 468.0, sum, 0.001)

	assert.Equal(t, 1, f.available("Deluxe", "2024-06-10", "2024-06-12"))
	assert.Equal(t, 1, f.available("Standard", "2024-06-10", "2024-06-12"))
	assert.Contains(t, f.events.Types(), notification.EventBlockApproved)

	_, err = f.blocks.Approve(f.ctx, block.ID, manager)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestBlockApprove_RevalidatesCapacity(t *testing.T) {
	f := blockFixture(t)
	block, err := f.requestBlock(map[string]int{"Deluxe": 3}, 0)
	require.NoError(t, err)

	// một khách lấy mất phòng Deluxe trước khi duyệt
	f.book(customer, "Deluxe", "2024-06-11", "2024-06-13")

	_, err = f.blocks.Approve(f.ctx, block.ID, manager)
	require.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	var stored models.BlockBooking
	require.NoError(t, f.db.First(&stored, block.ID).Error)
	assert.Equal(t, constants.BlockStatusPending, stored.Status)
	assert.Empty(t, f.activeHolds(block.ID))
}

func TestBlockReject_ReleasesHolds(t *testing.T) {
	f := blockFixture(t)
	block, err := f.requestBlock(map[string]int{"Deluxe": 3}, 5)
	require.NoError(t, err)
	_, err = f.blocks.Approve(f.ctx, block.ID, manager)
	require.NoError(t, err)
	require.Equal(t, 0, f.available("Deluxe", "2024-06-10", "2024-06-12"))

	rejected, err := f.blocks.Reject(f.ctx, block.ID, manager, "")
	require.NoError(t, err)
	assert.Equal(t, constants.BlockStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Empty(t, f.activeHolds(block.ID))
	assert.Equal(t, 3, f.available("Deluxe", "2024-06-10", "2024-06-12"))

	_, err = f.blocks.Reject(f.ctx, block.ID, manager, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestBlockUpdate_ExcludesOwnHolds(t *testing.T) {
	f := blockFixture(t)
	block, err := f.requestBlock(map[string]int{"Deluxe": 2, "Standard": 1}, 10)
	require.NoError(t, err)
	_, err = f.blocks.Approve(f.ctx, block.ID, manager)
	require.NoError(t, err)

	_, err = f.blocks.Update(f.ctx, block.ID, UpdateBlockParams{DiscountRate: ptr(0.0)}, otherCompany)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// 3 Deluxe only fit if the block's own 2 holds are not counted against it
	updated, err := f.blocks.Update(f.ctx, block.ID, UpdateBlockParams{
		RoomTypes: []BlockRoomRequest{{"Deluxe", 3}, {"Standard", 1}},
	}, company)
	require.NoError(t, err)
	assert.Equal(t, constants.BlockStatusReserved, updated.Status)
	assert.Equal(t, 648.0, updated.TotalAmount)
	assert.Len(t, f.activeHolds(block.ID), 4)
	assert.Equal(t, 0, f.available("Deluxe", "2024-06-10", "2024-06-12"))

	_, err = f.blocks.Update(f.ctx, block.ID, UpdateBlockParams{
		RoomTypes: []BlockRoomRequest{{"Deluxe", 1}, {"Standard", 1}},
	}, company)
	assert.ErrorIs(t, err, apperrors.ErrInvalidBlockSize)

	// another guest now takes the last Standard room for a later night
	f.book(customer, "Standard", "2024-06-12", "2024-06-13")
	_, err = f.blocks.Update(f.ctx, block.ID, UpdateBlockParams{
		DepartureDate: ptr("2024-06-13"),
		RoomTypes:     []BlockRoomRequest{{"Deluxe", 1}, {"Standard", 2}},
	}, company)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Len(t, f.activeHolds(block.ID), 4, "failed update leaves holds untouched")
}

func TestBlockUpdate_CheckedInHoldPinsBlock(t *testing.T) {
	f := blockFixture(t)
	f.setNow("2024-06-10 12:00")
	block, err := f.requestBlock(map[string]int{"Deluxe": 3}, 0)
	require.NoError(t, err)
	_, err = f.blocks.Approve(f.ctx, block.ID, manager)
	require.NoError(t, err)

	holds := f.activeHolds(block.ID)
	_, err = f.reservations.CheckIn(f.ctx, holds[0].ID, clerk)
	require.NoError(t, err)

	_, err = f.blocks.Update(f.ctx, block.ID, UpdateBlockParams{DiscountRate: ptr(5.0)}, company)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = f.blocks.Cancel(f.ctx, block.ID, company)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestBlockCancelAndList(t *testing.T) {
	f := blockFixture(t)
	mine, err := f.requestBlock(map[string]int{"Deluxe": 3}, 0)
	require.NoError(t, err)

	_, err = f.blocks.Cancel(f.ctx, mine.ID, otherCompany)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	list, total, err := f.blocks.List(f.ctx, BlockBookingFilter{}, otherCompany)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	list, total, err = f.blocks.List(f.ctx, BlockBookingFilter{HotelID: f.hotel.ID}, company)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Len(t, list[0].RoomTypes, 1)

	cancelled, err := f.blocks.Cancel(f.ctx, mine.ID, company)
	require.NoError(t, err)
	assert.Equal(t, constants.BlockStatusCancelled, cancelled.Status)

	_, err = f.blocks.Get(f.ctx, mine.ID, customer)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
