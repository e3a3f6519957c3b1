package models

// All lists the tables owned by the service, in migration order.
func All() []interface{} {
	return []interface{}{
		&Hotel{},
		&Room{},
		&BlockBooking{},
		&BlockBookingRoomType{},
		&Reservation{},
		&BillingRecord{},
		&ReconciliationRun{},
	}
}
