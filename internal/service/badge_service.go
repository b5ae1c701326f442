package service

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
)

// BadgeService проверяет условия значков и выдает новые
type BadgeService struct {
	badgeRepo     repository.BadgeRepository
	progressRepo  repository.ProgressRepository
	attemptRepo   repository.AttemptRepository
	milestoneRepo repository.MilestoneRepository
}

// BadgeStatus — значок каталога с отметкой, получен ли он пользователем
type BadgeStatus struct {
	entity.BadgeDefinition
	Earned    bool       `json:"earned"`
	AwardedAt *time.Time `json:"awarded_at,omitempty"`
}

// BadgeStats — сводка значков пользователя
type BadgeStats struct {
	EarnedCount   int            `json:"earned_count"`
	TotalCount    int            `json:"total_count"`
	CompletionPct float64        `json:"completion_pct"`
	Recent        []entity.Badge `json:"recent"`
}

// NewBadgeService создает новый сервис значков и возвращает ошибку при проблемах
func NewBadgeService(
	badgeRepo repository.BadgeRepository,
	progressRepo repository.ProgressRepository,
	attemptRepo repository.AttemptRepository,
	milestoneRepo repository.MilestoneRepository,
) (*BadgeService, error) {
	if badgeRepo == nil {
		return nil, fmt.Errorf("BadgeRepository is required for BadgeService")
	}
	if progressRepo == nil {
		return nil, fmt.Errorf("ProgressRepository is required for BadgeService")
	}
	if attemptRepo == nil {
		return nil, fmt.Errorf("AttemptRepository is required for BadgeService")
	}
	if milestoneRepo == nil {
		return nil, fmt.Errorf("MilestoneRepository is required for BadgeService")
	}
	return &BadgeService{
		badgeRepo:     badgeRepo,
		progressRepo:  progressRepo,
		attemptRepo:   attemptRepo,
		milestoneRepo: milestoneRepo,
	}, nil
}

// CheckAndAward сверяет текущий прогресс пользователя с каталогом и выдает
// все значки, условия которых выполнены впервые. Возвращаются только значки,
// выданные именно этим вызовом: повторная проверка без нового прогресса
// возвращает пустой список.
func (s *BadgeService) CheckAndAward(userID uint) ([]entity.BadgeDefinition, error) {
	var awarded []entity.BadgeDefinition

	// Декадные значки: по одному за первую открытую веху каждого периода.
	// Значок ищется в каталоге по метке периода, а не выводится из нее.
	periods, err := s.progressRepo.PeriodsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked periods: %w", err)
	}
	for _, p := range periods {
		def, ok := entity.BadgeForTimePeriod(p.TimePeriod)
		if !ok {
			// Для периода "Other" значка нет
			continue
		}
		newly, err := s.badgeRepo.Award(userID, def.ID, def.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to award badge %s: %w", def.ID, err)
		}
		if newly {
			awarded = append(awarded, def)
		}
	}

	// time_master: открыты все вехи (и вехи вообще существуют)
	unlocked, err := s.progressRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unlocked milestones: %w", err)
	}
	total, err := s.milestoneRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count milestones: %w", err)
	}
	if total > 0 && unlocked == total {
		if def, ok := entity.BadgeByID("time_master"); ok {
			newly, err := s.badgeRepo.Award(userID, def.ID, def.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to award badge %s: %w", def.ID, err)
			}
			if newly {
				awarded = append(awarded, def)
			}
		}
	}

	// quiz_expert: точность не ниже порога при хотя бы одной попытке
	stats, err := s.attemptRepo.StatsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt stats: %w", err)
	}
	if stats.TotalAttempted > 0 && stats.Accuracy >= entity.QuizExpertAccuracyThreshold {
		if def, ok := entity.BadgeByID("quiz_expert"); ok {
			newly, err := s.badgeRepo.Award(userID, def.ID, def.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to award badge %s: %w", def.ID, err)
			}
			if newly {
				awarded = append(awarded, def)
			}
		}
	}

	return awarded, nil
}

// ListWithStatus возвращает весь каталог значков с отметкой получения
func (s *BadgeService) ListWithStatus(userID uint) ([]BadgeStatus, error) {
	earned, err := s.badgeRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user badges: %w", err)
	}

	awardedAt := make(map[string]time.Time, len(earned))
	for _, b := range earned {
		awardedAt[b.BadgeID] = b.AwardedAt
	}

	result := make([]BadgeStatus, 0, len(entity.BadgeCatalog))
	for _, def := range entity.BadgeCatalog {
		status := BadgeStatus{BadgeDefinition: def}
		if at, ok := awardedAt[def.ID]; ok {
			status.Earned = true
			status.AwardedAt = &at
		}
		result = append(result, status)
	}
	return result, nil
}

// Stats возвращает сводку значков пользователя с последними выдачами
func (s *BadgeService) Stats(userID uint) (*BadgeStats, error) {
	earned, err := s.badgeRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user badges: %w", err)
	}

	recent, err := s.badgeRepo.Recent(userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent badges: %w", err)
	}

	total := len(entity.BadgeCatalog)
	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(len(earned))*100*100/float64(total)) / 100
	}

	return &BadgeStats{
		EarnedCount:   len(earned),
		TotalCount:    total,
		CompletionPct: pct,
		Recent:        recent,
	}, nil
}
