package postgres

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
)

// ProgressRepo реализует repository.ProgressRepository
type ProgressRepo struct {
	db *gorm.DB
}

// NewProgressRepo создает новый репозиторий прогресса
func NewProgressRepo(db *gorm.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// Unlock идемпотентно открывает веху: при конфликте (user_id, milestone_id)
// вставка пропускается. RowsAffected различает первое открытие и повтор.
func (r *ProgressRepo) Unlock(tx *gorm.DB, userID, milestoneID uint) (bool, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	progress := &entity.UserProgress{
		UserID:      userID,
		MilestoneID: milestoneID,
		UnlockedAt:  time.Now(),
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "milestone_id"}},
		DoNothing: true,
	}).Create(progress)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser возвращает открытия пользователя вместе с вехами, по году вехи
func (r *ProgressRepo) ListByUser(userID uint) ([]entity.UserProgress, error) {
	var progress []entity.UserProgress
	err := r.db.
		Preload("Milestone").
		Joins("JOIN milestones ON milestones.id = user_progress.milestone_id").
		Where("user_progress.user_id = ?", userID).
		Order("milestones.year ASC, milestones.id ASC").
		Find(&progress).Error
	return progress, err
}

// CountByUser возвращает количество открытых пользователем вех
func (r *ProgressRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.UserProgress{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// PeriodsByUser возвращает количество открытых вех по периодам.
// Периоды, в которых у пользователя нет открытий, не включаются.
func (r *ProgressRepo) PeriodsByUser(userID uint) ([]repository.PeriodCount, error) {
	var periods []repository.PeriodCount
	err := r.db.Raw(`
		SELECT `+entity.TimePeriodSQL+` AS time_period, COUNT(*) AS count
		FROM user_progress
		JOIN milestones ON milestones.id = user_progress.milestone_id
		WHERE user_progress.user_id = ?
		GROUP BY time_period
		ORDER BY time_period ASC`, userID).Scan(&periods).Error
	return periods, err
}

// TotalsByPeriod возвращает общее количество вех по периодам
func (r *ProgressRepo) TotalsByPeriod() ([]repository.PeriodCount, error) {
	var periods []repository.PeriodCount
	err := r.db.Model(&entity.Milestone{}).
		Select(entity.TimePeriodSQL + " AS time_period, COUNT(*) AS count").
		Group(entity.TimePeriodSQL).
		Order("time_period ASC").
		Scan(&periods).Error
	return periods, err
}
