package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/timemachine-api/internal/handler/dto"
	"github.com/yourusername/timemachine-api/internal/service"
)

// MilestoneHandler обрабатывает запросы к реестру вех и прогрессу их открытия
type MilestoneHandler struct {
	milestoneService *service.MilestoneService
	progressService  *service.ProgressService
}

// NewMilestoneHandler создает новый обработчик вех
func NewMilestoneHandler(milestoneService *service.MilestoneService, progressService *service.ProgressService) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneService: milestoneService,
		progressService:  progressService,
	}
}

// MilestoneRequest представляет запрос на создание или обновление вехи
type MilestoneRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Year        int    `json:"year" binding:"required,gt=0"`
	Description string `json:"description" binding:"required"`
	MediaURL    string `json:"media_url" binding:"omitempty,max=2048"`
	MarkerID    string `json:"marker_id" binding:"required,max=50"`
}

// List возвращает все вехи, отсортированные по году
// GET /api/milestones
func (h *MilestoneHandler) List(c *gin.Context) {
	milestones, err := h.milestoneService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMilestoneDTOList(milestones))
}

// GetByID возвращает веху по ID
// GET /api/milestones/:id
func (h *MilestoneHandler) GetByID(c *gin.Context) {
	milestoneID := c.MustGet("milestoneID").(uint)

	milestone, err := h.milestoneService.GetByID(milestoneID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMilestoneDTO(milestone))
}

// GetByMarker возвращает веху по идентификатору AR-маркера
// GET /api/milestones/marker/:markerId
func (h *MilestoneHandler) GetByMarker(c *gin.Context) {
	milestone, err := h.milestoneService.GetByMarkerID(c.Param("markerId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMilestoneDTO(milestone))
}

// Progress возвращает все вехи с отметкой открытия для текущего пользователя
// GET /api/milestones/progress
func (h *MilestoneHandler) Progress(c *gin.Context) {
	overview, err := h.progressService.Overview(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// PeriodProgress возвращает прогресс пользователя по временным периодам
// GET /api/milestones/progress/periods
func (h *MilestoneHandler) PeriodProgress(c *gin.Context) {
	periods, err := h.progressService.PeriodOverview(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, periods)
}

// Stats возвращает статистику реестра вех
// GET /api/milestones/stats
func (h *MilestoneHandler) Stats(c *gin.Context) {
	stats, err := h.milestoneService.Stats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Create создает новую веху
// POST /api/milestones
func (h *MilestoneHandler) Create(c *gin.Context) {
	var req MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	milestone, err := h.milestoneService.Create(service.MilestoneInput{
		Title:       req.Title,
		Year:        req.Year,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		MarkerID:    req.MarkerID,
	}, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewMilestoneDTO(milestone))
}

// Update обновляет существующую веху
// PUT /api/milestones/:id
func (h *MilestoneHandler) Update(c *gin.Context) {
	milestoneID := c.MustGet("milestoneID").(uint)

	var req MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	milestone, err := h.milestoneService.Update(milestoneID, service.MilestoneInput{
		Title:       req.Title,
		Year:        req.Year,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		MarkerID:    req.MarkerID,
	}, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMilestoneDTO(milestone))
}

// Delete удаляет веху вместе с её вопросами, материалами и прогрессом
// DELETE /api/milestones/:id
func (h *MilestoneHandler) Delete(c *gin.Context) {
	milestoneID := c.MustGet("milestoneID").(uint)

	if err := h.milestoneService.Delete(milestoneID, auditContext(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted successfully"})
}
