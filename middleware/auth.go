package middleware

import (
	"hotelcore/errors"
	"hotelcore/response"
	"hotelcore/services"
	"hotelcore/types"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware xử lý authentication; roles rỗng nghĩa là mọi user đã đăng nhập
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		identity, err := services.IdentityFromToken(authHeader)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == identity.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		// Lưu thông tin user vào context
		c.Set(identityKey, identity)
		c.Set("userID", identity.UserID)
		c.Set("userRole", identity.Role)
		c.Next()
	}
}

// SetIdentity stores an already-authenticated caller, for tests and internal callers.
func SetIdentity(c *gin.Context, id types.Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the caller stored by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (types.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return types.Identity{}, false
	}
	id, ok := v.(types.Identity)
	return id, ok
}

// ErrorHandler xử lý lỗi được gắn bằng c.Error
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if errors.IsAppError(err) {
			response.FromError(c, err)
			return
		}
		response.ServerError(c)
	}
}
