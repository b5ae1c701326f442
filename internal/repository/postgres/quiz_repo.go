package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий вопросов
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новый вопрос
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает вопрос вместе с его вехой
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Milestone").First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// ListWithMilestones возвращает все вопросы с вехами,
// отсортированные по году вехи, затем по id вопроса
func (r *QuizRepo) ListWithMilestones() ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.
		Joins("JOIN milestones ON milestones.id = quizzes.milestone_id").
		Preload("Milestone").
		Order("milestones.year ASC, quizzes.id ASC").
		Find(&quizzes).Error
	return quizzes, err
}

// ListByMilestone возвращает вопросы одной вехи
func (r *QuizRepo) ListByMilestone(milestoneID uint) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.
		Where("milestone_id = ?", milestoneID).
		Order("id ASC").
		Find(&quizzes).Error
	return quizzes, err
}

// Count возвращает общее количество вопросов
func (r *QuizRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Quiz{}).Count(&count).Error
	return count, err
}
