package services

import (
	"context"
	"testing"
	"time"

	"hotelcore/constants"
	"hotelcore/models"
	"hotelcore/services/lock"
	"hotelcore/services/notification"
	"hotelcore/testutil"
	"hotelcore/types"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	ict = time.FixedZone("ICT", 7*3600)

	customer     = types.Identity{UserID: 100, Role: constants.RoleCustomer}
	otherGuest   = types.Identity{UserID: 101, Role: constants.RoleCustomer}
	clerk        = types.Identity{UserID: 200, Role: constants.RoleClerk}
	manager      = types.Identity{UserID: 300, Role: constants.RoleManager}
	company      = types.Identity{UserID: 400, Role: constants.RoleTravelCompany, CompanyID: 40}
	otherCompany = types.Identity{UserID: 401, Role: constants.RoleTravelCompany, CompanyID: 41}
)

type fixture struct {
	t            *testing.T
	ctx          context.Context
	db           *gorm.DB
	now          time.Time
	events       *notification.Recorder
	deps         Deps
	hotel        *models.Hotel
	availability *AvailabilityService
	reservations *ReservationService
	blocks       *BlockBookingService
	inventory    *InventoryService
	reconcile    *ReconciliationService
}

// newFixture seeds one hotel with rooms; the clock starts at 2024-06-01 09:00 local time.
func newFixture(t *testing.T, rooms ...models.Room) *fixture {
	t.Helper()
	f := &fixture{
		t:      t,
		ctx:    context.Background(),
		db:     testutil.NewDB(t),
		now:    time.Date(2024, 6, 1, 9, 0, 0, 0, ict),
		events: &notification.Recorder{},
	}
	f.deps = Deps{
		DB:        f.db,
		Locker:    lock.NewLocalLocker(),
		Publisher: f.events,
		Clock:     func() time.Time { return f.now },
		Location:  ict,
		LockWait:  2 * time.Second,
	}
	f.hotel = testutil.SeedHotel(t, f.db, "Khách sạn Đà Lạt", rooms...)
	f.availability = NewAvailabilityService(f.deps)
	f.reservations = NewReservationService(f.deps)
	f.blocks = NewBlockBookingService(f.deps)
	f.inventory = NewInventoryService(f.deps)
	f.reconcile = NewReconciliationService(f.deps, f.inventory)
	return f
}

func (f *fixture) setNow(layout string) {
	f.t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", layout, ict)
	require.NoError(f.t, err)
	f.now = ts
}

func (f *fixture) book(who types.Identity, roomType, arrival, departure string) *models.Reservation {
	f.t.Helper()
	res, err := f.reservations.Create(f.ctx, CreateReservationParams{
		HotelID:       f.hotel.ID,
		RoomType:      roomType,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		GuestName:     "Nguyễn Văn A",
		Requester:     who,
	})
	require.NoError(f.t, err)
	return res
}

func (f *fixture) available(roomType, arrival, departure string) int {
	f.t.Helper()
	n, err := f.availability.AvailableCount(f.ctx, f.hotel.ID, roomType, models.MustDateRange(arrival, departure))
	require.NoError(f.t, err)
	return n
}

func (f *fixture) reload(id uint) *models.Reservation {
	f.t.Helper()
	var r models.Reservation
	require.NoError(f.t, f.db.First(&r, id).Error)
	return &r
}

func (f *fixture) room(number string) *models.Room {
	f.t.Helper()
	var r models.Room
	require.NoError(f.t, f.db.Where("hotel_id = ? AND number = ?", f.hotel.ID, number).First(&r).Error)
	return &r
}

// insert bypasses the service, for seeding states the clock would not allow.
func (f *fixture) insert(r models.Reservation) *models.Reservation {
	f.t.Helper()
	if r.HotelID == 0 {
		r.HotelID = f.hotel.ID
	}
	if r.GuestName == "" {
		r.GuestName = "Trần Thị B"
	}
	require.NoError(f.t, f.db.Create(&r).Error)
	return &r
}

func ptr[T any](v T) *T { return &v }
