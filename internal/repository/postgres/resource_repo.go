package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
)

// ResourceRepo реализует repository.ResourceRepository
type ResourceRepo struct {
	db *gorm.DB
}

// NewResourceRepo создает новый репозиторий учебных материалов
func NewResourceRepo(db *gorm.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

// Create создает новый материал
func (r *ResourceRepo) Create(resource *entity.Resource) error {
	return r.db.Create(resource).Error
}

// GetByID возвращает материал по ID
func (r *ResourceRepo) GetByID(id uint) (*entity.Resource, error) {
	var resource entity.Resource
	err := r.db.First(&resource, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &resource, nil
}

// ListActiveByMilestone возвращает активные материалы вехи по display_order
func (r *ResourceRepo) ListActiveByMilestone(milestoneID uint) ([]entity.Resource, error) {
	var resources []entity.Resource
	err := r.db.
		Where("milestone_id = ? AND is_active = ?", milestoneID, true).
		Order("display_order ASC, id ASC").
		Find(&resources).Error
	return resources, err
}

// ListAll возвращает все материалы с вехами для панели администратора
func (r *ResourceRepo) ListAll() ([]entity.Resource, error) {
	var resources []entity.Resource
	err := r.db.
		Preload("Milestone").
		Order("milestone_id ASC, display_order ASC, id ASC").
		Find(&resources).Error
	return resources, err
}

// Update обновляет материал
func (r *ResourceRepo) Update(resource *entity.Resource) error {
	return r.db.Save(resource).Error
}

// Toggle переключает флаг is_active и возвращает обновленный материал
func (r *ResourceRepo) Toggle(id uint) (*entity.Resource, error) {
	resource, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	resource.IsActive = !resource.IsActive
	err = r.db.Model(resource).Update("is_active", resource.IsActive).Error
	if err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete удаляет материал
func (r *ResourceRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Resource{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
