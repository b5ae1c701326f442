package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
)

// MilestoneService предоставляет методы для работы с реестром вех
type MilestoneService struct {
	milestoneRepo repository.MilestoneRepository
	adminLogRepo  repository.AdminLogRepository
}

// MilestoneInput содержит данные для создания или обновления вехи
type MilestoneInput struct {
	Title       string
	Year        int
	Description string
	MediaURL    string
	MarkerID    string
}

// NewMilestoneService создает новый сервис вех и возвращает ошибку при проблемах
func NewMilestoneService(
	milestoneRepo repository.MilestoneRepository,
	adminLogRepo repository.AdminLogRepository,
) (*MilestoneService, error) {
	if milestoneRepo == nil {
		return nil, fmt.Errorf("MilestoneRepository is required for MilestoneService")
	}
	// adminLogRepo может быть nil в unit-тестах
	return &MilestoneService{
		milestoneRepo: milestoneRepo,
		adminLogRepo:  adminLogRepo,
	}, nil
}

// List возвращает все вехи, отсортированные по году
func (s *MilestoneService) List() ([]entity.Milestone, error) {
	return s.milestoneRepo.List()
}

// GetByID возвращает веху по ID
func (s *MilestoneService) GetByID(id uint) (*entity.Milestone, error) {
	return s.milestoneRepo.GetByID(id)
}

// GetByMarkerID возвращает веху по идентификатору AR-маркера
func (s *MilestoneService) GetByMarkerID(markerID string) (*entity.Milestone, error) {
	markerID = strings.TrimSpace(markerID)
	if markerID == "" {
		return nil, fmt.Errorf("%w: marker_id is required", apperrors.ErrValidation)
	}
	return s.milestoneRepo.GetByMarkerID(markerID)
}

// Create создает новую веху. Дубликат marker_id возвращается как ErrConflict.
func (s *MilestoneService) Create(input MilestoneInput, audit AuditContext) (*entity.Milestone, error) {
	if err := validateMilestoneInput(&input); err != nil {
		return nil, err
	}

	milestone := &entity.Milestone{
		Title:       input.Title,
		Year:        input.Year,
		Description: input.Description,
		MediaURL:    input.MediaURL,
		MarkerID:    input.MarkerID,
	}
	if err := s.milestoneRepo.Create(milestone); err != nil {
		return nil, err
	}

	writeAdminLog(s.adminLogRepo, audit, entity.AdminActionCreateMilestone, "milestone", &milestone.ID,
		map[string]interface{}{"title": milestone.Title, "marker_id": milestone.MarkerID})

	return milestone, nil
}

// Update обновляет существующую веху
func (s *MilestoneService) Update(id uint, input MilestoneInput, audit AuditContext) (*entity.Milestone, error) {
	if err := validateMilestoneInput(&input); err != nil {
		return nil, err
	}

	milestone, err := s.milestoneRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	milestone.Title = input.Title
	milestone.Year = input.Year
	milestone.Description = input.Description
	milestone.MediaURL = input.MediaURL
	milestone.MarkerID = input.MarkerID

	if err := s.milestoneRepo.Update(milestone); err != nil {
		return nil, err
	}

	writeAdminLog(s.adminLogRepo, audit, entity.AdminActionUpdateMilestone, "milestone", &milestone.ID,
		map[string]interface{}{"title": milestone.Title, "marker_id": milestone.MarkerID})

	return milestone, nil
}

// Delete удаляет веху; вопросы, материалы и прогресс удаляются каскадно
func (s *MilestoneService) Delete(id uint, audit AuditContext) error {
	if err := s.milestoneRepo.Delete(id); err != nil {
		return err
	}

	writeAdminLog(s.adminLogRepo, audit, entity.AdminActionDeleteMilestone, "milestone", &id, nil)
	return nil
}

// Stats возвращает статистику реестра вех
func (s *MilestoneService) Stats() (*repository.MilestoneStats, error) {
	return s.milestoneRepo.Stats()
}

// validateMilestoneInput нормализует и проверяет обязательные поля вехи
func validateMilestoneInput(input *MilestoneInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.MarkerID = strings.TrimSpace(input.MarkerID)
	input.MediaURL = strings.TrimSpace(input.MediaURL)

	if input.Title == "" || input.Description == "" || input.MarkerID == "" {
		return fmt.Errorf("%w: title, description and marker_id are required", apperrors.ErrValidation)
	}
	if input.Year <= 0 {
		return fmt.Errorf("%w: year must be a positive number", apperrors.ErrValidation)
	}
	return nil
}
