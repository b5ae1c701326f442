package repository

import (
	"github.com/yourusername/timemachine-api/internal/domain/entity"
)

// ResourceRepository определяет методы для работы с учебными материалами
type ResourceRepository interface {
	Create(resource *entity.Resource) error
	GetByID(id uint) (*entity.Resource, error)
	// ListActiveByMilestone возвращает активные материалы вехи по display_order
	ListActiveByMilestone(milestoneID uint) ([]entity.Resource, error)
	// ListAll возвращает все материалы (включая неактивные) для панели администратора
	ListAll() ([]entity.Resource, error)
	Update(resource *entity.Resource) error
	// Toggle переключает флаг is_active и возвращает обновлённый материал
	Toggle(id uint) (*entity.Resource, error)
	Delete(id uint) error
}
