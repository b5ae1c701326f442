package entity

import (
	"time"
)

// UserProgress представляет факт открытия вехи пользователем.
// Уникальность пары (user_id, milestone_id) гарантирует идемпотентность открытия.
type UserProgress struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_milestone" json:"user_id"`
	MilestoneID uint      `gorm:"not null;uniqueIndex:idx_user_milestone" json:"milestone_id"`
	UnlockedAt  time.Time `gorm:"autoCreateTime" json:"unlocked_at"`

	Milestone *Milestone `gorm:"foreignKey:MilestoneID;constraint:OnDelete:CASCADE" json:"milestone,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (UserProgress) TableName() string {
	return "user_progress"
}
