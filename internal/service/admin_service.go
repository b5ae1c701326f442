package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
)

// AdminService собирает сводные данные для панели администратора
type AdminService struct {
	userRepo      repository.UserRepository
	milestoneRepo repository.MilestoneRepository
	quizRepo      repository.QuizRepository
	attemptRepo   repository.AttemptRepository
	badgeRepo     repository.BadgeRepository
	adminLogRepo  repository.AdminLogRepository
}

// ActivitySummary — активность за последние 24 часа
type ActivitySummary struct {
	QuizAttempts24h int64 `json:"quiz_attempts_24h"`
	ActiveUsers24h  int64 `json:"active_users_24h"`
}

// DashboardStats — сводка для главной страницы панели администратора
type DashboardStats struct {
	Milestones     int64           `json:"milestones"`
	Quizzes        int64           `json:"quizzes"`
	Students       int64           `json:"students"`
	RecentActivity ActivitySummary `json:"recent_activity"`
	LastUpdated    time.Time       `json:"last_updated"`
	Error          string          `json:"error,omitempty"`
}

// AnalyticsReport — агрегаты по пользователям, попыткам и значкам
type AnalyticsReport struct {
	Users       repository.UserAnalytics  `json:"users"`
	Quizzes     repository.QuizAnalytics  `json:"quizzes"`
	Badges      repository.BadgeAnalytics `json:"badges"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// NewAdminService создает новый административный сервис и возвращает ошибку при проблемах
func NewAdminService(
	userRepo repository.UserRepository,
	milestoneRepo repository.MilestoneRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	badgeRepo repository.BadgeRepository,
	adminLogRepo repository.AdminLogRepository,
) (*AdminService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AdminService")
	}
	if milestoneRepo == nil {
		return nil, fmt.Errorf("MilestoneRepository is required for AdminService")
	}
	if quizRepo == nil {
		return nil, fmt.Errorf("QuizRepository is required for AdminService")
	}
	if attemptRepo == nil {
		return nil, fmt.Errorf("AttemptRepository is required for AdminService")
	}
	if badgeRepo == nil {
		return nil, fmt.Errorf("BadgeRepository is required for AdminService")
	}
	if adminLogRepo == nil {
		return nil, fmt.Errorf("AdminLogRepository is required for AdminService")
	}
	return &AdminService{
		userRepo:      userRepo,
		milestoneRepo: milestoneRepo,
		quizRepo:      quizRepo,
		attemptRepo:   attemptRepo,
		badgeRepo:     badgeRepo,
		adminLogRepo:  adminLogRepo,
	}, nil
}

// VerifyAdmin возвращает профиль администратора и сводку панели.
// Пользователь без роли admin в БД получает ErrForbidden.
func (s *AdminService) VerifyAdmin(userID uint) (*entity.User, *DashboardStats, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsAdmin() {
		return nil, nil, fmt.Errorf("%w: admin user not found", apperrors.ErrForbidden)
	}

	return user, s.Stats(), nil
}

// Stats возвращает сводку панели администратора. Ошибки хранилища не
// пробрасываются: клиент получает нули с маркером ошибки, сама авторизация
// администратора от этого не зависит.
func (s *AdminService) Stats() *DashboardStats {
	stats := &DashboardStats{LastUpdated: time.Now()}

	milestones, err := s.milestoneRepo.Count()
	if err == nil {
		stats.Milestones = milestones
		var quizzes int64
		quizzes, err = s.quizRepo.Count()
		if err == nil {
			stats.Quizzes = quizzes
		}
	}
	if err == nil {
		var students int64
		students, err = s.userRepo.CountByRole(entity.RoleUser)
		if err == nil {
			stats.Students = students
		}
	}
	if err == nil {
		var activity *repository.ActivityStats
		activity, err = s.attemptRepo.ActivitySince(time.Now().Add(-24 * time.Hour))
		if err == nil {
			stats.RecentActivity = ActivitySummary{
				QuizAttempts24h: activity.QuizAttempts,
				ActiveUsers24h:  activity.ActiveUsers,
			}
		}
	}

	if err != nil {
		log.Printf("[AdminService] Ошибка сбора статистики панели: %v", err)
		return &DashboardStats{
			LastUpdated: time.Now(),
			Error:       "Failed to load statistics",
		}
	}
	return stats
}

// UserAnalytics возвращает агрегаты за 7 и 30 дней
func (s *AdminService) UserAnalytics() (*AnalyticsReport, error) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	users, err := s.userRepo.Analytics(weekAgo, monthAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to load user analytics: %w", err)
	}

	quizzes, err := s.attemptRepo.AnalyticsSince(monthAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz analytics: %w", err)
	}

	badges, err := s.badgeRepo.AnalyticsSince(monthAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to load badge analytics: %w", err)
	}

	return &AnalyticsReport{
		Users:       *users,
		Quizzes:     *quizzes,
		Badges:      *badges,
		GeneratedAt: now,
	}, nil
}

// ExportAttempts возвращает все попытки для выгрузки в CSV/XLSX
func (s *AdminService) ExportAttempts() ([]repository.AttemptExportRow, error) {
	return s.attemptRepo.ListForExport()
}

// SecurityLogs возвращает последние записи журнала аудита
func (s *AdminService) SecurityLogs(limit int) ([]entity.AdminLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.adminLogRepo.ListRecent(limit)
}
