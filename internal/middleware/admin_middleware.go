package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
)

// AdminMiddleware проверяет административные права по токену И по базе данных.
// Двойная проверка закрывает случай, когда роль в БД изменили после выпуска токена.
type AdminMiddleware struct {
	userRepo     repository.UserRepository
	adminLogRepo repository.AdminLogRepository
}

// NewAdminMiddleware создает новый middleware проверки администратора
func NewAdminMiddleware(userRepo repository.UserRepository, adminLogRepo repository.AdminLogRepository) *AdminMiddleware {
	return &AdminMiddleware{
		userRepo:     userRepo,
		adminLogRepo: adminLogRepo,
	}
}

// AdminRequired пропускает только пользователей с ролью admin в токене и в БД.
// Должен применяться ПОСЛЕ RequireAuth. При любой ошибке доступ закрывается.
func (m *AdminMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "code": "AUTH_REQUIRED"})
			c.Abort()
			return
		}
		userID := userIDValue.(uint)
		tokenRole := c.GetString("role")

		user, err := m.userRepo.GetByID(userID)
		if err != nil {
			log.Printf("[AdminMiddleware] Не удалось проверить роль пользователя ID=%d: %v", userID, err)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required", "code": "ADMIN_REQUIRED"})
			c.Abort()
			return
		}

		// Роль в токене говорит admin, а в БД — нет: токен устарел или подделан
		if tokenRole == entity.RoleAdmin && !user.IsAdmin() {
			log.Printf("[AdminMiddleware] SECURITY ALERT: несоответствие ролей для пользователя ID=%d (токен=%s, БД=%s), path=%s, ip=%s",
				userID, tokenRole, user.Role, c.Request.URL.Path, c.ClientIP())
			m.auditRoleMismatch(c, userID, tokenRole, user.Role)
			c.JSON(http.StatusForbidden, gin.H{"error": "Role verification failed", "code": "ROLE_MISMATCH"})
			c.Abort()
			return
		}

		if tokenRole != entity.RoleAdmin || !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required", "code": "ADMIN_REQUIRED"})
			c.Abort()
			return
		}

		c.Set("admin_user", user)
		c.Next()
	}
}

// auditRoleMismatch фиксирует несоответствие ролей в журнале аудита.
// Ошибка записи не прерывает обработку запроса.
func (m *AdminMiddleware) auditRoleMismatch(c *gin.Context, userID uint, tokenRole, dbRole string) {
	details, err := json.Marshal(map[string]string{
		"token_role": tokenRole,
		"db_role":    dbRole,
		"path":       c.Request.URL.Path,
		"request_id": c.GetString("request_id"),
	})
	if err != nil {
		log.Printf("[AdminMiddleware] Не удалось сериализовать детали аудита: %v", err)
		return
	}

	auditLog := &entity.AdminLog{
		AdminID:   &userID,
		Action:    entity.AdminActionRoleMismatch,
		Details:   datatypes.JSON(details),
		IPAddress: c.ClientIP(),
	}
	if err := m.adminLogRepo.Create(auditLog); err != nil {
		log.Printf("[AdminMiddleware] Не удалось записать аудит несоответствия ролей: %v", err)
	}
}
