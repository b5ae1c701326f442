package repository

import (
	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"gorm.io/gorm"
)

// ProgressRepository определяет методы для работы с прогрессом открытия вех
type ProgressRepository interface {
	// Unlock идемпотентно открывает веху пользователю. Возвращает true, если
	// веха открыта именно этим вызовом, и false, если была открыта ранее.
	// tx == nil означает выполнение вне внешней транзакции.
	Unlock(tx *gorm.DB, userID, milestoneID uint) (bool, error)
	// ListByUser возвращает открытия пользователя вместе с вехами
	ListByUser(userID uint) ([]entity.UserProgress, error)
	CountByUser(userID uint) (int64, error)
	// PeriodsByUser возвращает количество открытых вех по периодам;
	// периоды без открытий не включаются
	PeriodsByUser(userID uint) ([]PeriodCount, error)
	// TotalsByPeriod возвращает общее количество вех по периодам (знаменатели прогресса)
	TotalsByPeriod() ([]PeriodCount, error)
}
