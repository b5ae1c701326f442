package postgres

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
)

// BadgeRepo реализует repository.BadgeRepository
type BadgeRepo struct {
	db *gorm.DB
}

// NewBadgeRepo создает новый репозиторий значков
func NewBadgeRepo(db *gorm.DB) *BadgeRepo {
	return &BadgeRepo{db: db}
}

// Award выдает значок ровно один раз: конфликт (user_id, badge_id) пропускается,
// RowsAffected различает первую выдачу и повтор. Параллельные проверки
// одного пользователя не приводят к двойной выдаче.
func (r *BadgeRepo) Award(userID uint, badgeID, badgeName string) (bool, error) {
	badge := &entity.Badge{
		UserID:    userID,
		BadgeID:   badgeID,
		BadgeName: badgeName,
		AwardedAt: time.Now(),
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(badge)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser возвращает значки пользователя, новые первыми
func (r *BadgeRepo) ListByUser(userID uint) ([]entity.Badge, error) {
	var badges []entity.Badge
	err := r.db.
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&badges).Error
	return badges, err
}

// Recent возвращает последние выданные пользователю значки
func (r *BadgeRepo) Recent(userID uint, limit int) ([]entity.Badge, error) {
	var badges []entity.Badge
	err := r.db.
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Limit(limit).
		Find(&badges).Error
	return badges, err
}

// AnalyticsSince возвращает агрегаты выдачи значков с указанного момента
func (r *BadgeRepo) AnalyticsSince(since time.Time) (*repository.BadgeAnalytics, error) {
	var stats repository.BadgeAnalytics
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total_awarded,
			COUNT(DISTINCT user_id) AS users_with_badges,
			COUNT(DISTINCT badge_id) AS unique_badge_types
		FROM badges
		WHERE awarded_at >= ?`, since).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
