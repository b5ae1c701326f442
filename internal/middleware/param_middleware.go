package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam извлекает числовой параметр URL и кладет его в контекст Gin
// под ключом contextKey как uint. Нечисловое значение прерывает цепочку
// с ответом в общем формате ошибок API.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid %s parameter", paramName),
				"code":  "VALIDATION_ERROR",
			})
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
