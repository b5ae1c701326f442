package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Действия администратора, фиксируемые в журнале аудита
const (
	AdminActionCreateMilestone = "create_milestone"
	AdminActionUpdateMilestone = "update_milestone"
	AdminActionDeleteMilestone = "delete_milestone"
	AdminActionCreateQuiz      = "create_quiz"
	AdminActionCreateResource  = "create_resource"
	AdminActionUpdateResource  = "update_resource"
	AdminActionToggleResource  = "toggle_resource"
	AdminActionDeleteResource  = "delete_resource"
	AdminActionRoleMismatch    = "role_mismatch_alert"
)

// AdminLog представляет запись журнала аудита административных действий.
// Записи не критичны для основного потока: ошибка вставки логируется и не прерывает операцию.
type AdminLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AdminID    *uint          `gorm:"index" json:"admin_id,omitempty"`
	Action     string         `gorm:"size:100;not null" json:"action"`
	TargetType string         `gorm:"size:50;default:''" json:"target_type,omitempty"`
	TargetID   *uint          `json:"target_id,omitempty"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	IPAddress  string         `gorm:"size:45;default:''" json:"ip_address,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (AdminLog) TableName() string {
	return "admin_logs"
}
