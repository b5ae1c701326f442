package repository

import (
	"github.com/yourusername/timemachine-api/internal/domain/entity"
)

// PeriodCount — количество вех (или открытий) в одном временном периоде
type PeriodCount struct {
	TimePeriod string `json:"time_period"`
	Count      int64  `json:"count"`
}

// MilestoneStats — сводная статистика реестра вех для администратора
type MilestoneStats struct {
	Total    int64         `json:"total"`
	ByPeriod []PeriodCount `json:"by_period"`
	MinYear  int           `json:"min_year"`
	MaxYear  int           `json:"max_year"`
}

// MilestoneRepository определяет методы для работы с вехами
type MilestoneRepository interface {
	Create(milestone *entity.Milestone) error
	GetByID(id uint) (*entity.Milestone, error)
	GetByMarkerID(markerID string) (*entity.Milestone, error)
	// List возвращает все вехи, отсортированные по году, затем по id
	List() ([]entity.Milestone, error)
	Update(milestone *entity.Milestone) error
	Delete(id uint) error
	Count() (int64, error)
	Stats() (*MilestoneStats, error)
}
