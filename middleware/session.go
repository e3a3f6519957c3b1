package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

// SessionMiddleware tạo sessionId nếu chưa có và gán vào context
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionId := c.GetHeader(SessionHeader)
		if sessionId == "" {
			sessionId = uuid.NewString()
		}

		// Gán vào context để dùng trong controller hoặc service
		c.Set("sessionId", sessionId)
		c.Writer.Header().Set(SessionHeader, sessionId)

		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString("sessionId")
}
