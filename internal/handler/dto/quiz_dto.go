package dto

import (
	"time"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
)

// QuizDTO представляет вопрос с плоской информацией о вехе для фронтенда
type QuizDTO struct {
	ID                   uint      `json:"id"`
	MilestoneID          uint      `json:"milestone_id"`
	Question             string    `json:"question"`
	CorrectAnswer        string    `json:"correct_answer"`
	WrongAnswer1         string    `json:"wrong_answer_1"`
	WrongAnswer2         string    `json:"wrong_answer_2"`
	WrongAnswer3         string    `json:"wrong_answer_3"`
	CreatedAt            time.Time `json:"created_at"`
	MilestoneTitle       string    `json:"milestone_title,omitempty"`
	MilestoneYear        int       `json:"milestone_year,omitempty"`
	MilestoneDescription string    `json:"milestone_description,omitempty"`
	TimePeriod           string    `json:"time_period,omitempty"`
}

// NewQuizDTO преобразует вопрос с предзагруженной вехой в плоский DTO
func NewQuizDTO(quiz *entity.Quiz) *QuizDTO {
	result := &QuizDTO{
		ID:            quiz.ID,
		MilestoneID:   quiz.MilestoneID,
		Question:      quiz.Question,
		CorrectAnswer: quiz.CorrectAnswer,
		WrongAnswer1:  quiz.WrongAnswer1,
		WrongAnswer2:  quiz.WrongAnswer2,
		WrongAnswer3:  quiz.WrongAnswer3,
		CreatedAt:     quiz.CreatedAt,
	}
	if quiz.Milestone != nil {
		result.MilestoneTitle = quiz.Milestone.Title
		result.MilestoneYear = quiz.Milestone.Year
		result.MilestoneDescription = quiz.Milestone.Description
		result.TimePeriod = quiz.Milestone.TimePeriod()
	}
	return result
}

// NewQuizDTOList преобразует список вопросов в список DTO
func NewQuizDTOList(quizzes []entity.Quiz) []*QuizDTO {
	result := make([]*QuizDTO, 0, len(quizzes))
	for i := range quizzes {
		result = append(result, NewQuizDTO(&quizzes[i]))
	}
	return result
}
