package repository

import (
	"time"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"gorm.io/gorm"
)

// AttemptStats — статистика попыток одного пользователя
type AttemptStats struct {
	TotalAttempted int64   `json:"total_attempted"`
	TotalCorrect   int64   `json:"total_correct"`
	Accuracy       float64 `json:"accuracy"`     // проценты, 2 знака; 0 при отсутствии попыток
	AverageTime    float64 `json:"average_time"` // секунды
}

// ActivityStats — активность за интервал для панели администратора
type ActivityStats struct {
	QuizAttempts int64 `json:"quiz_attempts"`
	ActiveUsers  int64 `json:"active_users"`
}

// QuizAnalytics — агрегаты попыток за интервал
type QuizAnalytics struct {
	TotalAttempts   int64   `json:"total_attempts"`
	CorrectAttempts int64   `json:"correct_attempts"`
	AvgTimeSeconds  float64 `json:"avg_time_seconds"`
	ActiveUsers     int64   `json:"active_users"`
}

// AttemptExportRow — строка экспорта попыток с данными пользователя и вопроса
type AttemptExportRow struct {
	AttemptID      uint      `json:"attempt_id"`
	UserEmail      string    `json:"user_email"`
	FullName       string    `json:"full_name"`
	MilestoneTitle string    `json:"milestone_title"`
	Question       string    `json:"question"`
	SelectedAnswer string    `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	TimeTaken      int       `json:"time_taken"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

// AttemptRepository определяет методы для работы с попытками ответов
type AttemptRepository interface {
	// Upsert сохраняет попытку; повторная отправка того же вопроса перезаписывает прежнюю.
	// tx == nil означает выполнение вне внешней транзакции.
	Upsert(tx *gorm.DB, attempt *entity.QuizAttempt) error
	// ListByUser возвращает попытки пользователя с вопросом и вехой, новые первыми
	ListByUser(userID uint) ([]entity.QuizAttempt, error)
	StatsByUser(userID uint) (*AttemptStats, error)
	ActivitySince(since time.Time) (*ActivityStats, error)
	AnalyticsSince(since time.Time) (*QuizAnalytics, error)
	ListForExport() ([]AttemptExportRow, error)
}
