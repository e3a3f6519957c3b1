package constants

// User roles, as carried in the upstream token.
const (
	RoleCustomer      = 0
	RoleSuperAdmin    = 1
	RoleManager       = 2
	RoleClerk         = 3
	RoleTravelCompany = 4
)

// Reservation status
const (
	ReservationPending        = "pending"
	ReservationPendingPayment = "pending_payment"
	ReservationReserved       = "reserved"
	ReservationConfirmed      = "confirmed"
	ReservationCheckedIn      = "checked_in"
	ReservationCheckedOut     = "checked_out"
	ReservationCancelled      = "cancelled"
	ReservationNoShow         = "no_show"
)

// Room status
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
	RoomStatusReserved    = "reserved"
)

// Block booking status
const (
	BlockStatusPending   = "pending"
	BlockStatusReserved  = "reserved"
	BlockStatusRejected  = "rejected"
	BlockStatusCancelled = "cancelled"
)

// Billing record source
const (
	BillingSourceCheckout = "checkout"
	BillingSourceNoShow   = "no_show"
)

// Reconciliation run status
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

const (
	MinBlockRooms      = 3
	MaxBlockDiscount   = 50.0
	AutoCancelReason   = "unpaid reservation auto-cancelled at cutoff"
	BlockRejectReason  = "block booking rejected"
	BlockCancelReason  = "block booking cancelled"
	BlockReplaceReason = "block booking updated"
)

// ActiveReservationStatuses consume capacity in the availability index.
var ActiveReservationStatuses = []string{
	ReservationPending,
	ReservationPendingPayment,
	ReservationReserved,
	ReservationConfirmed,
	ReservationCheckedIn,
}

// PreCheckInStatuses may still be cancelled or edited.
var PreCheckInStatuses = []string{
	ReservationPending,
	ReservationPendingPayment,
	ReservationReserved,
	ReservationConfirmed,
}

func IsStaff(role int) bool {
	return role == RoleSuperAdmin || role == RoleManager || role == RoleClerk
}

func IsManager(role int) bool {
	return role == RoleSuperAdmin || role == RoleManager
}
