package repository

import (
	"github.com/yourusername/timemachine-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с вопросами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	// GetByID возвращает вопрос вместе с его вехой
	GetByID(id uint) (*entity.Quiz, error)
	// ListWithMilestones возвращает все вопросы с вехами, отсортированные по году вехи, затем по id
	ListWithMilestones() ([]entity.Quiz, error)
	ListByMilestone(milestoneID uint) ([]entity.Quiz, error)
	Count() (int64, error)
}
