package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
)

// ResourceService управляет учебными материалами вех
type ResourceService struct {
	resourceRepo  repository.ResourceRepository
	milestoneRepo repository.MilestoneRepository
	adminLogRepo  repository.AdminLogRepository
}

// ResourceInput содержит данные для создания или обновления материала
type ResourceInput struct {
	MilestoneID  uint
	ResourceType string
	Title        string
	Description  string
	URL          string
	Content      string
	DisplayOrder int
	IsActive     *bool
}

// NewResourceService создает новый сервис материалов и возвращает ошибку при проблемах
func NewResourceService(
	resourceRepo repository.ResourceRepository,
	milestoneRepo repository.MilestoneRepository,
	adminLogRepo repository.AdminLogRepository,
) (*ResourceService, error) {
	if resourceRepo == nil {
		return nil, fmt.Errorf("ResourceRepository is required for ResourceService")
	}
	if milestoneRepo == nil {
		return nil, fmt.Errorf("MilestoneRepository is required for ResourceService")
	}
	// adminLogRepo может быть nil в unit-тестах
	return &ResourceService{
		resourceRepo:  resourceRepo,
		milestoneRepo: milestoneRepo,
		adminLogRepo:  adminLogRepo,
	}, nil
}

// ListForMilestone возвращает активные материалы вехи для студентов
func (s *ResourceService) ListForMilestone(milestoneID uint) ([]entity.Resource, error) {
	if _, err := s.milestoneRepo.GetByID(milestoneID); err != nil {
		return nil, err
	}
	return s.resourceRepo.ListActiveByMilestone(milestoneID)
}

// ListAll возвращает все материалы, включая неактивные, для панели администратора
func (s *ResourceService) ListAll() ([]entity.Resource, error) {
	return s.resourceRepo.ListAll()
}

// Create создает новый материал
func (s *ResourceService) Create(input ResourceInput, audit AuditContext) (*entity.Resource, error) {
	if err := s.validateResourceInput(&input); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	resource := &entity.Resource{
		MilestoneID:  input.MilestoneID,
		ResourceType: input.ResourceType,
		Title:        input.Title,
		Description:  input.Description,
		URL:          input.URL,
		Content:      input.Content,
		DisplayOrder: input.DisplayOrder,
		IsActive:     isActive,
	}
	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, err
	}

	writeAdminLog(s.adminLogRepo, audit, entity.AdminActionCreateResource, "resource", &resource.ID,
		map[string]interface{}{"milestone_id": resource.MilestoneID, "title": resource.Title, "type": resource.ResourceType})

	return resource, nil
}

// Update обновляет существующий материал
func (s *ResourceService) Update(id uint, input ResourceInput, audit AuditContext) (*entity.Resource, error) {
	if err := s.validateResourceInput(&input); err != nil {
		return nil, err
	}

	resource, err := s.resourceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	resource.MilestoneID = input.MilestoneID
	resource.ResourceType = input.ResourceType
	resource.Title = input.Title
	resource.Description = input.Description
	resource.URL = input.URL
	resource.Content = input.Content
	resource.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		resource.IsActive = *input.IsActive
	}

	if err := s.resourceRepo.Update(resource); err != nil {
		return nil, err
	}

	writeAdminLog(s.adminLogRepo, audit, entity.AdminActionUpdateResource, "resource", &resource.ID,
		map[string]interface{}{"title": resource.Title})

	return resource, nil
}

// Toggle переключает видимость материала для студентов
func (s *ResourceService) Toggle(id uint, audit AuditContext) (*entity.Resource, error) {
	resource, err := s.resourceRepo.Toggle(id)
	if err != nil {
		return nil, err
	}

	writeAdminLog(s.adminLogRepo, audit, entity.AdminActionToggleResource, "resource", &resource.ID,
		map[string]interface{}{"is_active": resource.IsActive})

	return resource, nil
}

// Delete удаляет материал
func (s *ResourceService) Delete(id uint, audit AuditContext) error {
	if err := s.resourceRepo.Delete(id); err != nil {
		return err
	}

	writeAdminLog(s.adminLogRepo, audit, entity.AdminActionDeleteResource, "resource", &id, nil)
	return nil
}

// validateResourceInput нормализует и проверяет обязательные поля материала
func (s *ResourceService) validateResourceInput(input *ResourceInput) error {
	input.ResourceType = strings.TrimSpace(input.ResourceType)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.URL = strings.TrimSpace(input.URL)

	if input.MilestoneID == 0 || input.ResourceType == "" || input.Title == "" {
		return fmt.Errorf("%w: milestone_id, resource_type and title are required", apperrors.ErrValidation)
	}
	if !entity.IsValidResourceType(input.ResourceType) {
		return fmt.Errorf("%w: invalid resource type, must be: article, video, document, link or text", apperrors.ErrValidation)
	}
	if _, err := s.milestoneRepo.GetByID(input.MilestoneID); err != nil {
		return err
	}
	return nil
}
