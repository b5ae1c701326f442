package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader — заголовок, в котором передается идентификатор запроса
const RequestIDHeader = "X-Request-ID"

// RequestID присваивает каждому запросу идентификатор для сквозной трассировки.
// Идентификатор клиента сохраняется, если заголовок уже установлен.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
