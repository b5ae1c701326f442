package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
)

// MilestoneRepo реализует repository.MilestoneRepository
type MilestoneRepo struct {
	db *gorm.DB
}

// NewMilestoneRepo создает новый репозиторий вех
func NewMilestoneRepo(db *gorm.DB) *MilestoneRepo {
	return &MilestoneRepo{db: db}
}

// Create создает новую веху
func (r *MilestoneRepo) Create(milestone *entity.Milestone) error {
	if err := r.db.Create(milestone).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: marker_id %s already in use", apperrors.ErrConflict, milestone.MarkerID)
		}
		return err
	}
	return nil
}

// GetByID возвращает веху по ID
func (r *MilestoneRepo) GetByID(id uint) (*entity.Milestone, error) {
	var milestone entity.Milestone
	err := r.db.First(&milestone, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &milestone, nil
}

// GetByMarkerID возвращает веху по внешнему идентификатору AR-маркера
func (r *MilestoneRepo) GetByMarkerID(markerID string) (*entity.Milestone, error) {
	var milestone entity.Milestone
	err := r.db.Where("marker_id = ?", markerID).First(&milestone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &milestone, nil
}

// List возвращает все вехи, отсортированные по году, затем по id для стабильности
func (r *MilestoneRepo) List() ([]entity.Milestone, error) {
	var milestones []entity.Milestone
	err := r.db.Order("year ASC, id ASC").Find(&milestones).Error
	return milestones, err
}

// Update обновляет веху
func (r *MilestoneRepo) Update(milestone *entity.Milestone) error {
	if err := r.db.Save(milestone).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: marker_id %s already in use", apperrors.ErrConflict, milestone.MarkerID)
		}
		return err
	}
	return nil
}

// Delete удаляет веху; связанные вопросы, материалы и прогресс удаляются каскадно на уровне БД
func (r *MilestoneRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Milestone{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count возвращает общее количество вех
func (r *MilestoneRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Milestone{}).Count(&count).Error
	return count, err
}

// Stats возвращает статистику реестра: всего, по периодам, диапазон лет
func (r *MilestoneRepo) Stats() (*repository.MilestoneStats, error) {
	stats := &repository.MilestoneStats{}

	if err := r.db.Model(&entity.Milestone{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	err := r.db.Model(&entity.Milestone{}).
		Select(entity.TimePeriodSQL + " AS time_period, COUNT(*) AS count").
		Group(entity.TimePeriodSQL).
		Order("time_period ASC").
		Scan(&stats.ByPeriod).Error
	if err != nil {
		return nil, err
	}

	var years struct {
		MinYear int
		MaxYear int
	}
	err = r.db.Model(&entity.Milestone{}).
		Select("COALESCE(MIN(year), 0) AS min_year, COALESCE(MAX(year), 0) AS max_year").
		Scan(&years).Error
	if err != nil {
		return nil, err
	}
	stats.MinYear = years.MinYear
	stats.MaxYear = years.MaxYear

	return stats, nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
