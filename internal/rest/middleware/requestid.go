package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/billcraft/billcraft/internal/types"
)

const RequestIDHeader = "X-Request-ID"

// RequestID assigns a request id to every request, reusing one supplied by
// the caller when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
