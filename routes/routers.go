package routes

import (
	"net/http"

	"hotelcore/constants"
	"hotelcore/controllers"
	_ "hotelcore/docs"
	middlewares "hotelcore/middleware"
	"hotelcore/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services gom các service mà router cần
type Services struct {
	Reservations   *services.ReservationService
	Blocks         *services.BlockBookingService
	Availability   *services.AvailabilityService
	Inventory      *services.InventoryService
	Reconciliation *services.ReconciliationService
}

var (
	staff        = []int{constants.RoleSuperAdmin, constants.RoleManager, constants.RoleClerk}
	managers     = []int{constants.RoleSuperAdmin, constants.RoleManager}
	blockCallers = []int{constants.RoleSuperAdmin, constants.RoleManager, constants.RoleClerk, constants.RoleTravelCompany}
)

func SetupRoutes(router *gin.Engine, s Services) {
	reservationController := controllers.NewReservationController(s.Reservations)
	blockController := controllers.NewBlockBookingController(s.Blocks)
	roomController := controllers.NewRoomController(s.Inventory, s.Availability)
	reconcileController := controllers.NewReconciliationController(s.Reconciliation)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.ErrorHandler())

	v1.GET("/hotels/:id/availability", roomController.GetAvailability)

	v1.POST("/reservations", middlewares.AuthMiddleware(), reservationController.CreateReservation)
	v1.GET("/reservations", middlewares.AuthMiddleware(), reservationController.GetReservations)
	v1.GET("/reservations/:id", middlewares.AuthMiddleware(), reservationController.GetReservationDetail)
	v1.PUT("/reservations/:id", middlewares.AuthMiddleware(), reservationController.UpdateReservation)
	v1.DELETE("/reservations/:id", middlewares.AuthMiddleware(), reservationController.DeleteReservation)
	v1.POST("/reservations/:id/cancel", middlewares.AuthMiddleware(), reservationController.CancelReservation)
	v1.POST("/reservations/:id/payment", middlewares.AuthMiddleware(), reservationController.StartPayment)
	v1.POST("/reservations/:id/paid", middlewares.AuthMiddleware(staff...), reservationController.MarkPaid)
	v1.POST("/reservations/:id/confirm", middlewares.AuthMiddleware(staff...), reservationController.ConfirmReservation)
	v1.POST("/reservations/:id/checkin", middlewares.AuthMiddleware(staff...), reservationController.CheckIn)
	v1.POST("/reservations/:id/checkout", middlewares.AuthMiddleware(staff...), reservationController.CheckOut)
	v1.POST("/reservations/:id/notified", middlewares.AuthMiddleware(staff...), reservationController.MarkNotified)
	v1.GET("/reservations/:id/billing", middlewares.AuthMiddleware(), reservationController.GetBilling)

	v1.POST("/block-bookings", middlewares.AuthMiddleware(blockCallers...), blockController.CreateBlockBooking)
	v1.GET("/block-bookings", middlewares.AuthMiddleware(blockCallers...), blockController.GetBlockBookings)
	v1.GET("/block-bookings/:id", middlewares.AuthMiddleware(blockCallers...), blockController.GetBlockBookingDetail)
	v1.PUT("/block-bookings/:id", middlewares.AuthMiddleware(blockCallers...), blockController.UpdateBlockBooking)
	v1.POST("/block-bookings/:id/approve", middlewares.AuthMiddleware(managers...), blockController.ApproveBlockBooking)
	v1.POST("/block-bookings/:id/reject", middlewares.AuthMiddleware(managers...), blockController.RejectBlockBooking)
	v1.POST("/block-bookings/:id/cancel", middlewares.AuthMiddleware(blockCallers...), blockController.CancelBlockBooking)

	v1.GET("/rooms", middlewares.AuthMiddleware(staff...), roomController.GetRooms)
	v1.POST("/rooms", middlewares.AuthMiddleware(managers...), roomController.CreateRoom)
	v1.PUT("/rooms/:id/maintenance", middlewares.AuthMiddleware(staff...), roomController.SetMaintenance)

	v1.POST("/reconciliation/run", middlewares.AuthMiddleware(managers...), reconcileController.RunReconciliation)
	v1.GET("/reconciliation/runs", middlewares.AuthMiddleware(managers...), reconcileController.GetRun)
	v1.GET("/reconciliation/report", middlewares.AuthMiddleware(managers...), reconcileController.GetDailyReport)
}
