package repository

import (
	"time"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
)

// UserAnalytics — сводная статистика по пользователям для панели администратора
type UserAnalytics struct {
	TotalUsers    int64 `json:"total_users"`
	AdminCount    int64 `json:"admin_count"`
	StudentCount  int64 `json:"student_count"`
	NewUsersWeek  int64 `json:"new_users_week"`
	NewUsersMonth int64 `json:"new_users_month"`
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	UpdateLastLogin(userID uint) error
	CountByRole(role string) (int64, error)
	// Analytics возвращает агрегаты по пользователям; границы недели и месяца передаются снаружи
	Analytics(weekAgo, monthAgo time.Time) (*UserAnalytics, error)
}
