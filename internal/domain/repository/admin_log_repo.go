package repository

import (
	"github.com/yourusername/timemachine-api/internal/domain/entity"
)

// AdminLogRepository определяет методы для журнала аудита административных действий
type AdminLogRepository interface {
	Create(log *entity.AdminLog) error
	// ListRecent возвращает последние записи журнала, новые первыми
	ListRecent(limit int) ([]entity.AdminLog, error)
}
