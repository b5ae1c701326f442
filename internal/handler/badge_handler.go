package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/service"
)

// BadgeHandler обрабатывает запросы, связанные со значками достижений
type BadgeHandler struct {
	badgeService *service.BadgeService
}

// NewBadgeHandler создает новый обработчик значков
func NewBadgeHandler(badgeService *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// List возвращает каталог значков с отметкой получения для текущего пользователя
// GET /api/badges
func (h *BadgeHandler) List(c *gin.Context) {
	badges, err := h.badgeService.ListWithStatus(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, badges)
}

// Check сверяет прогресс пользователя с условиями значков и выдает новые
// POST /api/badges/check
func (h *BadgeHandler) Check(c *gin.Context) {
	awarded, err := h.badgeService.CheckAndAward(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if awarded == nil {
		awarded = []entity.BadgeDefinition{}
	}
	c.JSON(http.StatusOK, gin.H{
		"new_badges": awarded,
		"count":      len(awarded),
	})
}

// Stats возвращает сводку значков текущего пользователя
// GET /api/badges/stats
func (h *BadgeHandler) Stats(c *gin.Context) {
	stats, err := h.badgeService.Stats(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
