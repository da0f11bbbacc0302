package middleware

import (
	"strconv"

	"codeflow.app/relay/common/id"
	"codeflow.app/relay/common/logger"
	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-Id"

// RequestID assigns every request a snowflake ID, returns it in the
// X-Request-Id header and adds it to the log fields of the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.New()

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			RequestID: logger.Ptr(requestID),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, strconv.FormatInt(requestID, 10))

		c.Next()
	}
}
