package controllers

import (
	"strconv"

	apperrors "hotelcore/errors"
	"hotelcore/middleware"
	"hotelcore/response"
	"hotelcore/types"
	"hotelcore/validator"

	"github.com/gin-gonic/gin"
)

// currentIdentity lấy người gọi do AuthMiddleware gắn vào; thiếu thì trả 401
func currentIdentity(c *gin.Context) (types.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Unauthorized(c)
		return types.Identity{}, false
	}
	return id, true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.FromError(c, apperrors.Validation("ID không hợp lệ").WithDetail("field", name))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.FromError(c, validator.FromBindingError(err))
		return false
	}
	return true
}

// bindOptionalJSON tolerates an empty body.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, req)
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.FromError(c, validator.FromBindingError(err))
		return false
	}
	return true
}
