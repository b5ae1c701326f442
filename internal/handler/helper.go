package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
	"github.com/yourusername/timemachine-api/internal/service"
)

// respondError переводит ошибку сервисного слоя в HTTP-ответ.
// Внутренние ошибки логируются целиком, клиент получает общий текст.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Requested resource not found", "code": "NOT_FOUND"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "CONFLICT"})
	case errors.Is(err, apperrors.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired", "code": "TOKEN_EXPIRED"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "code": "UNAUTHORIZED"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied", "code": "FORBIDDEN"})
	default:
		log.Printf("[Handler] Внутренняя ошибка: path=%s request_id=%s err=%v",
			c.Request.URL.Path, c.GetString("request_id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "INTERNAL_ERROR"})
	}
}

// currentUserID возвращает ID пользователя, установленный RequireAuth
func currentUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}

// auditContext собирает контекст аудита текущего административного запроса
func auditContext(c *gin.Context) service.AuditContext {
	return service.AuditContext{
		AdminID:   currentUserID(c),
		IP:        c.ClientIP(),
		RequestID: c.GetString("request_id"),
	}
}
