package service

import (
	"fmt"
	"time"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
)

// ProgressService агрегирует прогресс открытия вех по пользователям
type ProgressService struct {
	progressRepo  repository.ProgressRepository
	milestoneRepo repository.MilestoneRepository
}

// MilestoneWithProgress — веха с признаком открытия для конкретного пользователя
type MilestoneWithProgress struct {
	entity.Milestone
	TimePeriod string     `json:"time_period"`
	IsUnlocked bool       `json:"is_unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// PeriodProgress — прогресс пользователя в одном временном периоде
type PeriodProgress struct {
	TimePeriod string `json:"time_period"`
	Unlocked   int64  `json:"unlocked"`
	Total      int64  `json:"total"`
}

// NewProgressService создает новый сервис прогресса и возвращает ошибку при проблемах
func NewProgressService(
	progressRepo repository.ProgressRepository,
	milestoneRepo repository.MilestoneRepository,
) (*ProgressService, error) {
	if progressRepo == nil {
		return nil, fmt.Errorf("ProgressRepository is required for ProgressService")
	}
	if milestoneRepo == nil {
		return nil, fmt.Errorf("MilestoneRepository is required for ProgressService")
	}
	return &ProgressService{
		progressRepo:  progressRepo,
		milestoneRepo: milestoneRepo,
	}, nil
}

// Overview возвращает все вехи с отметкой, какие из них открыты пользователем
func (s *ProgressService) Overview(userID uint) ([]MilestoneWithProgress, error) {
	milestones, err := s.milestoneRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}

	progress, err := s.progressRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user progress: %w", err)
	}

	unlockedAt := make(map[uint]time.Time, len(progress))
	for _, p := range progress {
		unlockedAt[p.MilestoneID] = p.UnlockedAt
	}

	result := make([]MilestoneWithProgress, 0, len(milestones))
	for _, m := range milestones {
		item := MilestoneWithProgress{
			Milestone:  m,
			TimePeriod: m.TimePeriod(),
		}
		if at, ok := unlockedAt[m.ID]; ok {
			item.IsUnlocked = true
			item.UnlockedAt = &at
		}
		result = append(result, item)
	}
	return result, nil
}

// UnlockedByPeriod возвращает количество открытых вех по периодам.
// Периоды без открытий отсутствуют в результате.
func (s *ProgressService) UnlockedByPeriod(userID uint) ([]repository.PeriodCount, error) {
	return s.progressRepo.PeriodsByUser(userID)
}

// PeriodOverview возвращает прогресс по каждому периоду, в котором есть вехи:
// сколько открыто из скольких
func (s *ProgressService) PeriodOverview(userID uint) ([]PeriodProgress, error) {
	totals, err := s.progressRepo.TotalsByPeriod()
	if err != nil {
		return nil, fmt.Errorf("failed to load period totals: %w", err)
	}

	unlocked, err := s.progressRepo.PeriodsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked periods: %w", err)
	}

	unlockedByPeriod := make(map[string]int64, len(unlocked))
	for _, p := range unlocked {
		unlockedByPeriod[p.TimePeriod] = p.Count
	}

	result := make([]PeriodProgress, 0, len(totals))
	for _, t := range totals {
		result = append(result, PeriodProgress{
			TimePeriod: t.TimePeriod,
			Unlocked:   unlockedByPeriod[t.TimePeriod],
			Total:      t.Count,
		})
	}
	return result, nil
}
