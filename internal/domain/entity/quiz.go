package entity

import (
	"strings"
	"time"
)

// Quiz представляет вопрос с одним правильным и тремя неверными ответами,
// привязанный к конкретной вехе
type Quiz struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MilestoneID   uint      `gorm:"not null;index" json:"milestone_id"`
	Question      string    `gorm:"type:text;not null" json:"question"`
	CorrectAnswer string    `gorm:"type:text;not null" json:"correct_answer"`
	WrongAnswer1  string    `gorm:"type:text;not null" json:"wrong_answer_1"`
	WrongAnswer2  string    `gorm:"type:text;not null" json:"wrong_answer_2"`
	WrongAnswer3  string    `gorm:"type:text;not null" json:"wrong_answer_3"`
	CreatedAt     time.Time `json:"created_at"`

	Milestone *Milestone `gorm:"foreignKey:MilestoneID;constraint:OnDelete:CASCADE" json:"milestone,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// NormalizeAnswer приводит ответ к канонической форме для сравнения:
// обрезает пробелы и игнорирует регистр. Точное посимвольное сравнение
// в исходной версии ломалось на лишнем пробеле или другом регистре.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// CheckAnswer проверяет, совпадает ли выбранный ответ с правильным
func (q *Quiz) CheckAnswer(selected string) bool {
	return NormalizeAnswer(selected) == NormalizeAnswer(q.CorrectAnswer)
}
