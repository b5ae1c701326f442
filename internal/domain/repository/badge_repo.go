package repository

import (
	"time"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
)

// BadgeAnalytics — агрегаты выдачи значков за интервал
type BadgeAnalytics struct {
	TotalAwarded     int64 `json:"total_badges_awarded"`
	UsersWithBadges  int64 `json:"users_with_badges"`
	UniqueBadgeTypes int64 `json:"unique_badge_types"`
}

// BadgeRepository определяет методы для работы с выданными значками
type BadgeRepository interface {
	// Award выдаёт значок пользователю ровно один раз. Возвращает true, если
	// значок выдан именно этим вызовом, и false, если был выдан ранее.
	Award(userID uint, badgeID, badgeName string) (bool, error)
	// ListByUser возвращает значки пользователя, новые первыми
	ListByUser(userID uint) ([]entity.Badge, error)
	Recent(userID uint, limit int) ([]entity.Badge, error)
	AnalyticsSince(since time.Time) (*BadgeAnalytics, error)
}
