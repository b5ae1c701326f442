package entity

import (
	"time"
)

// QuizAttempt представляет последнюю попытку пользователя ответить на вопрос.
// Пара (user_id, quiz_id) уникальна: повторная отправка перезаписывает попытку.
type QuizAttempt struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_quiz" json:"user_id"`
	QuizID         uint      `gorm:"not null;uniqueIndex:idx_user_quiz" json:"quiz_id"`
	SelectedAnswer string    `gorm:"type:text;not null" json:"selected_answer"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	TimeTaken      int       `gorm:"not null;default:0" json:"time_taken"` // секунды
	AttemptedAt    time.Time `gorm:"autoCreateTime" json:"attempted_at"`

	Quiz *Quiz `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"quiz,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
