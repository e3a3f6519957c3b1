package controllers

import (
	"hotelcore/dto"
	"hotelcore/response"
	"hotelcore/services"
	"hotelcore/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) ReservationController {
	return ReservationController{Reservations: reservations}
}

// CreateReservation godoc
// @Summary  Tạo reservation
// @Tags     reservations
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateReservationRequest true "reservation"
// @Success  201 {object} response.Response
// @Failure  409 {object} response.Response
// @Router   /reservations [post]
func (rc ReservationController) CreateReservation(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := rc.Reservations.Create(c.Request.Context(), req.Params(requester))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.NewReservationResponse(res))
}

// GetReservations godoc
// @Summary  Danh sách reservation theo quyền của người gọi
// @Tags     reservations
// @Produce  json
// @Param    hotelId query int false "hotel"
// @Param    status query string false "status"
// @Param    page query int false "page, from 0"
// @Param    limit query int false "limit"
// @Success  200 {object} response.Response
// @Router   /reservations [get]
func (rc ReservationController) GetReservations(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	var q dto.ReservationListQuery
	if !bindQuery(c, &q) {
		return
	}
	page, limit := utils.ParsePagination(c)
	list, total, err := rc.Reservations.List(c.Request.Context(), services.ReservationFilter{
		HotelID:        q.HotelID,
		Status:         q.Status,
		ArrivalFrom:    q.ArrivalFrom,
		ArrivalTo:      q.ArrivalTo,
		BlockBookingID: q.BlockBookingID,
		Page:           page,
		Limit:          limit,
	}, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.NewReservationResponses(list), page, limit, int(total))
}

func (rc ReservationController) GetReservationDetail(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := rc.Reservations.Get(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

func (rc ReservationController) UpdateReservation(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := rc.Reservations.Update(c.Request.Context(), id, req.Params(), requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

func (rc ReservationController) DeleteReservation(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := rc.Reservations.Delete(c.Request.Context(), id, requester); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (rc ReservationController) CancelReservation(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ReasonRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	res, err := rc.Reservations.Cancel(c.Request.Context(), id, requester, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

func (rc ReservationController) StartPayment(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := rc.Reservations.StartPayment(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

// MarkPaid được gọi bởi hệ thống thanh toán, route đã giới hạn role
func (rc ReservationController) MarkPaid(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := rc.Reservations.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

func (rc ReservationController) ConfirmReservation(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := rc.Reservations.Confirm(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

// CheckIn godoc
// @Summary  Nhận phòng, gán phòng trống nếu chưa có
// @Tags     reservations
// @Produce  json
// @Param    id path int true "reservation id"
// @Success  200 {object} response.Response
// @Failure  409 {object} response.Response
// @Router   /reservations/{id}/checkin [post]
func (rc ReservationController) CheckIn(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := rc.Reservations.CheckIn(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

// CheckOut godoc
// @Summary  Trả phòng và lập hóa đơn
// @Tags     reservations
// @Accept   json
// @Produce  json
// @Param    id path int true "reservation id"
// @Param    body body dto.CheckOutRequest false "incidentals"
// @Success  200 {object} response.Response
// @Failure  409 {object} response.Response
// @Router   /reservations/{id}/checkout [post]
func (rc ReservationController) CheckOut(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.CheckOutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	record, err := rc.Reservations.CheckOut(c.Request.Context(), id, req.Params(), requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, record)
}

func (rc ReservationController) MarkNotified(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := rc.Reservations.MarkCustomerNotified(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(res))
}

func (rc ReservationController) GetBilling(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	record, err := rc.Reservations.GetBilling(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, record)
}
