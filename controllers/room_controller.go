package controllers

import (
	"hotelcore/dto"
	"hotelcore/models"
	"hotelcore/response"
	"hotelcore/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Inventory    *services.InventoryService
	Availability *services.AvailabilityService
}

func NewRoomController(inventory *services.InventoryService, availability *services.AvailabilityService) RoomController {
	return RoomController{Inventory: inventory, Availability: availability}
}

// GetAvailability godoc
// @Summary  Số phòng trống theo loại phòng (có thể lấy từ cache)
// @Tags     availability
// @Produce  json
// @Param    id path int true "hotel id"
// @Param    roomType query string false "room type, all types when empty"
// @Param    from query string true "YYYY-MM-DD"
// @Param    to query string true "YYYY-MM-DD"
// @Success  200 {object} response.Response
// @Router   /hotels/{id}/availability [get]
func (rc RoomController) GetAvailability(c *gin.Context) {
	hotelID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q dto.AvailabilityQuery
	if !bindQuery(c, &q) {
		return
	}
	dr, err := models.NewDateRange(q.From, q.To)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if q.RoomType == "" {
		views, err := rc.Availability.HotelAvailability(c.Request.Context(), hotelID, dr)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, views)
		return
	}
	view, err := rc.Availability.Snapshot(c.Request.Context(), hotelID, q.RoomType, dr)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, view)
}

func (rc RoomController) GetRooms(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	var q dto.RoomListQuery
	if !bindQuery(c, &q) {
		return
	}
	rooms, err := rc.Inventory.ListRooms(c.Request.Context(), q.HotelID, q.RoomType, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

func (rc RoomController) CreateRoom(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.AddRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := rc.Inventory.AddRoom(c.Request.Context(), req.Params(), requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

func (rc RoomController) SetMaintenance(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.MaintenanceRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := rc.Inventory.SetMaintenance(c.Request.Context(), id, *req.Maintenance, requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}
