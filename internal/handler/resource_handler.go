package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/timemachine-api/internal/service"
)

// ResourceHandler обрабатывает запросы к учебным материалам вех
type ResourceHandler struct {
	resourceService *service.ResourceService
}

// NewResourceHandler создает новый обработчик материалов
func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// ResourceRequest представляет запрос на создание или обновление материала
type ResourceRequest struct {
	MilestoneID  uint   `json:"milestone_id" binding:"required"`
	ResourceType string `json:"resource_type" binding:"required,max=20"`
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description" binding:"omitempty"`
	URL          string `json:"url" binding:"omitempty,max=2048"`
	Content      string `json:"content" binding:"omitempty"`
	DisplayOrder int    `json:"display_order" binding:"omitempty"`
	IsActive     *bool  `json:"is_active" binding:"omitempty"`
}

func (r *ResourceRequest) toInput() service.ResourceInput {
	return service.ResourceInput{
		MilestoneID:  r.MilestoneID,
		ResourceType: r.ResourceType,
		Title:        r.Title,
		Description:  r.Description,
		URL:          r.URL,
		Content:      r.Content,
		DisplayOrder: r.DisplayOrder,
		IsActive:     r.IsActive,
	}
}

// ListByMilestone возвращает активные материалы вехи для студентов
// GET /api/resources/milestone/:milestoneId
func (h *ResourceHandler) ListByMilestone(c *gin.Context) {
	milestoneID := c.MustGet("milestoneID").(uint)

	resources, err := h.resourceService.ListForMilestone(milestoneID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resources)
}

// ListAll возвращает все материалы для панели администратора
// GET /api/resources/admin/all
func (h *ResourceHandler) ListAll(c *gin.Context) {
	resources, err := h.resourceService.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resources)
}

// Create создает новый материал
// POST /api/resources
func (h *ResourceHandler) Create(c *gin.Context) {
	var req ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	resource, err := h.resourceService.Create(req.toInput(), auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// Update обновляет существующий материал
// PUT /api/resources/:id
func (h *ResourceHandler) Update(c *gin.Context) {
	resourceID := c.MustGet("resourceID").(uint)

	var req ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	resource, err := h.resourceService.Update(resourceID, req.toInput(), auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Toggle переключает видимость материала для студентов
// PATCH /api/resources/:id/toggle
func (h *ResourceHandler) Toggle(c *gin.Context) {
	resourceID := c.MustGet("resourceID").(uint)

	resource, err := h.resourceService.Toggle(resourceID, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Delete удаляет материал
// DELETE /api/resources/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	resourceID := c.MustGet("resourceID").(uint)

	if err := h.resourceService.Delete(resourceID, auditContext(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted successfully"})
}
