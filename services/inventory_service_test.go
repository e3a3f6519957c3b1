package services

import (
	"testing"

	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryFixture(t *testing.T) *fixture {
	return newFixture(t,
		testutil.Room("101", "Deluxe", 120),
		testutil.Room("102", "Deluxe", 100),
		testutil.Room("301", "Standard", 60),
	)
}

func TestInventory_ListRooms(t *testing.T) {
	f := inventoryFixture(t)

	_, err := f.inventory.ListRooms(f.ctx, f.hotel.ID, "", customer)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	rooms, err := f.inventory.ListRooms(f.ctx, f.hotel.ID, "", clerk)
	require.NoError(t, err)
	assert.Len(t, rooms, 3)

	rooms, err = f.inventory.ListRooms(f.ctx, f.hotel.ID, " DELUXE ", clerk)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "101", rooms[0].Number)

	_, err = f.inventory.ListRooms(f.ctx, f.hotel.ID, "Delux", clerk)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Deluxe", apperrors.GetAppError(err).Details["suggestion"])

	_, err = f.inventory.ListRooms(f.ctx, 9999, "", clerk)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInventory_AddRoom(t *testing.T) {
	f := inventoryFixture(t)

	_, err := f.inventory.AddRoom(f.ctx, AddRoomParams{HotelID: f.hotel.ID, Number: "103", Type: "Deluxe", PricePerNight: 90}, clerk)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	room, err := f.inventory.AddRoom(f.ctx, AddRoomParams{HotelID: f.hotel.ID, Number: " 103 ", Type: "deluxe", PricePerNight: 50}, manager)
	require.NoError(t, err)
	assert.Equal(t, "103", room.Number)
	assert.Equal(t, "Deluxe", room.Type, "spelling follows the existing type")
	assert.Equal(t, constants.RoomStatusAvailable, room.Status)

	var hotel models.Hotel
	require.NoError(t, f.db.First(&hotel, f.hotel.ID).Error)
	assert.Equal(t, 50.0, hotel.StartingPrice)
	assert.Equal(t, 3, f.available("Deluxe", "2024-06-10", "2024-06-11"))

	_, err = f.inventory.AddRoom(f.ctx, AddRoomParams{HotelID: f.hotel.ID, Number: "103", Type: "Suite", PricePerNight: 300}, manager)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.inventory.AddRoom(f.ctx, AddRoomParams{HotelID: f.hotel.ID, Number: "104", Type: "Suite", PricePerNight: -1}, manager)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.inventory.AddRoom(f.ctx, AddRoomParams{HotelID: f.hotel.ID, Number: "", Type: "Suite"}, manager)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInventory_Maintenance(t *testing.T) {
	f := inventoryFixture(t)

	_, err := f.inventory.SetMaintenance(f.ctx, f.room("102").ID, true, customer)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	room, err := f.inventory.SetMaintenance(f.ctx, f.room("102").ID, true, clerk)
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusMaintenance, room.Status)

	// room 102 is never assigned while under maintenance
	res, err := f.reservations.Create(f.ctx, CreateReservationParams{
		HotelID: f.hotel.ID, RoomType: "Deluxe", ArrivalDate: "2024-06-01", DepartureDate: "2024-06-03",
		GuestName: "Lê Văn C", CheckInNow: true, Requester: clerk,
	})
	require.NoError(t, err)
	assert.Equal(t, "101", res.RoomNumber)
	assert.Equal(t, constants.RoomStatusOccupied, f.room("101").Status)

	_, err = f.inventory.SetMaintenance(f.ctx, f.room("101").ID, true, clerk)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.inventory.SetMaintenance(f.ctx, 9999, true, clerk)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	room, err = f.inventory.SetMaintenance(f.ctx, f.room("102").ID, false, clerk)
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusAvailable, room.Status)
}

func TestInventory_RefreshAll(t *testing.T) {
	f := inventoryFixture(t)
	r101 := f.room("101").ID
	r102 := f.room("102").ID
	r301 := f.room("301").ID

	f.insert(models.Reservation{
		OwnerID: customer.UserID, RoomType: "Deluxe", ArrivalDate: "2024-05-30", DepartureDate: "2024-06-02",
		Status: constants.ReservationCheckedIn, RoomID: &r101,
	})
	f.insert(models.Reservation{
		OwnerID: customer.UserID, RoomType: "Deluxe", ArrivalDate: "2024-06-01", DepartureDate: "2024-06-02",
		Status: constants.ReservationConfirmed, RoomID: &r102,
	})
	f.insert(models.Reservation{
		OwnerID: customer.UserID, RoomType: "Standard", ArrivalDate: "2024-06-05", DepartureDate: "2024-06-06",
		Status: constants.ReservationReserved, RoomID: &r301,
	})

	changed, err := f.inventory.RefreshAll(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Equal(t, constants.RoomStatusOccupied, f.room("101").Status)
	assert.Equal(t, constants.RoomStatusReserved, f.room("102").Status)
	assert.Equal(t, constants.RoomStatusAvailable, f.room("301").Status, "future stays do not reserve the room yet")

	changed, err = f.inventory.RefreshAll(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, changed)
}
