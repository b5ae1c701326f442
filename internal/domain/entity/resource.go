package entity

import (
	"time"
)

// Типы учебных материалов
const (
	ResourceTypeArticle  = "article"
	ResourceTypeVideo    = "video"
	ResourceTypeDocument = "document"
	ResourceTypeLink     = "link"
	ResourceTypeText     = "text"
)

// validResourceTypes — допустимые значения resource_type
var validResourceTypes = map[string]bool{
	ResourceTypeArticle:  true,
	ResourceTypeVideo:    true,
	ResourceTypeDocument: true,
	ResourceTypeLink:     true,
	ResourceTypeText:     true,
}

// IsValidResourceType проверяет, входит ли тип в список допустимых
func IsValidResourceType(resourceType string) bool {
	return validResourceTypes[resourceType]
}

// Resource представляет учебный материал, привязанный к вехе
type Resource struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MilestoneID  uint      `gorm:"not null;index" json:"milestone_id"`
	ResourceType string    `gorm:"size:20;not null" json:"resource_type"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text;default:''" json:"description,omitempty"`
	URL          string    `gorm:"type:text;default:''" json:"url,omitempty"`
	Content      string    `gorm:"type:text;default:''" json:"content,omitempty"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Milestone *Milestone `gorm:"foreignKey:MilestoneID;constraint:OnDelete:CASCADE" json:"milestone,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Resource) TableName() string {
	return "resources"
}
