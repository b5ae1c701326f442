package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
)

// AdminLogRepo реализует repository.AdminLogRepository
type AdminLogRepo struct {
	db *gorm.DB
}

// NewAdminLogRepo создает новый репозиторий журнала аудита
func NewAdminLogRepo(db *gorm.DB) *AdminLogRepo {
	return &AdminLogRepo{db: db}
}

// Create добавляет запись в журнал аудита
func (r *AdminLogRepo) Create(log *entity.AdminLog) error {
	return r.db.Create(log).Error
}

// ListRecent возвращает последние записи журнала, новые первыми
func (r *AdminLogRepo) ListRecent(limit int) ([]entity.AdminLog, error) {
	var logs []entity.AdminLog
	err := r.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
