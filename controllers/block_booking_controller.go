package controllers

import (
	"hotelcore/dto"
	"hotelcore/response"
	"hotelcore/services"
	"hotelcore/utils"

	"github.com/gin-gonic/gin"
)

type BlockBookingController struct {
	Blocks *services.BlockBookingService
}

func NewBlockBookingController(blocks *services.BlockBookingService) BlockBookingController {
	return BlockBookingController{Blocks: blocks}
}

// CreateBlockBooking godoc
// @Summary  Công ty du lịch đặt giữ nhiều phòng
// @Tags     block-bookings
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateBlockBookingRequest true "block booking"
// @Success  201 {object} response.Response
// @Failure  400 {object} response.Response
// @Router   /block-bookings [post]
func (bc BlockBookingController) CreateBlockBooking(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateBlockBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	block, err := bc.Blocks.Create(c.Request.Context(), req.Params(requester))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, block)
}

func (bc BlockBookingController) GetBlockBookings(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	var q dto.BlockBookingListQuery
	if !bindQuery(c, &q) {
		return
	}
	page, limit := utils.ParsePagination(c)
	list, total, err := bc.Blocks.List(c.Request.Context(), services.BlockBookingFilter{
		HotelID: q.HotelID,
		Status:  q.Status,
		Page:    page,
		Limit:   limit,
	}, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, list, page, limit, int(total))
}

func (bc BlockBookingController) GetBlockBookingDetail(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	block, err := bc.Blocks.Get(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, block)
}

func (bc BlockBookingController) UpdateBlockBooking(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBlockBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	block, err := bc.Blocks.Update(c.Request.Context(), id, req.Params(), requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, block)
}

func (bc BlockBookingController) ApproveBlockBooking(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	block, err := bc.Blocks.Approve(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, block)
}

func (bc BlockBookingController) RejectBlockBooking(c *gin.Context) {
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
	block, err := bc.Blocks.Reject(c.Request.Context(), id, requester, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, block)
}

func (bc BlockBookingController) CancelBlockBooking(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	block, err := bc.Blocks.Cancel(c.Request.Context(), id, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, block)
}
