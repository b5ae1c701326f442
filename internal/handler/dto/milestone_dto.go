package dto

import (
	"time"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
)

// MilestoneDTO представляет веху с производным временным периодом
type MilestoneDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	MediaURL    string    `json:"media_url"`
	MarkerID    string    `json:"marker_id"`
	TimePeriod  string    `json:"time_period"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMilestoneDTO преобразует веху в DTO с временным периодом
func NewMilestoneDTO(m *entity.Milestone) *MilestoneDTO {
	return &MilestoneDTO{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
		MediaURL:    m.MediaURL,
		MarkerID:    m.MarkerID,
		TimePeriod:  m.TimePeriod(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// NewMilestoneDTOList преобразует список вех в список DTO
func NewMilestoneDTOList(milestones []entity.Milestone) []*MilestoneDTO {
	result := make([]*MilestoneDTO, 0, len(milestones))
	for i := range milestones {
		result = append(result, NewMilestoneDTO(&milestones[i]))
	}
	return result
}
