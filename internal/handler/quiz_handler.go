package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/timemachine-api/internal/handler/dto"
	"github.com/yourusername/timemachine-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с вопросами и попытками ответов
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик вопросов
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// SubmitRequest представляет отправку ответа на вопрос
type SubmitRequest struct {
	QuizID         uint   `json:"quiz_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required"`
	TimeTaken      int    `json:"time_taken" binding:"omitempty"`
}

// QuizRequest представляет запрос на создание вопроса
type QuizRequest struct {
	MilestoneID   uint   `json:"milestone_id" binding:"required"`
	Question      string `json:"question" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	WrongAnswer1  string `json:"wrong_answer_1" binding:"required"`
	WrongAnswer2  string `json:"wrong_answer_2" binding:"required"`
	WrongAnswer3  string `json:"wrong_answer_3" binding:"required"`
}

// List возвращает все вопросы с информацией о вехах
// GET /api/quizzes
func (h *QuizHandler) List(c *gin.Context) {
	quizzes, err := h.quizService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizDTOList(quizzes))
}

// ListByMilestone возвращает вопросы одной вехи
// GET /api/quizzes/milestone/:milestoneId
func (h *QuizHandler) ListByMilestone(c *gin.Context) {
	milestoneID := c.MustGet("milestoneID").(uint)

	quizzes, err := h.quizService.ListByMilestone(milestoneID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizDTOList(quizzes))
}

// Submit принимает ответ на вопрос, сохраняет попытку и открывает веху при верном ответе
// POST /api/quizzes/submit
func (h *QuizHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	result, err := h.quizService.SubmitAnswer(currentUserID(c), service.SubmitInput{
		QuizID:         req.QuizID,
		SelectedAnswer: req.SelectedAnswer,
		TimeTaken:      req.TimeTaken,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Progress возвращает историю попыток текущего пользователя, новые первыми
// GET /api/quizzes/progress
func (h *QuizHandler) Progress(c *gin.Context) {
	attempts, err := h.quizService.Progress(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempts)
}

// Stats возвращает статистику текущего пользователя по вопросам
// GET /api/quizzes/stats
func (h *QuizHandler) Stats(c *gin.Context) {
	stats, err := h.quizService.Stats(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Create создает новый вопрос для вехи
// POST /api/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(service.QuizInput{
		MilestoneID:   req.MilestoneID,
		Question:      req.Question,
		CorrectAnswer: req.CorrectAnswer,
		WrongAnswer1:  req.WrongAnswer1,
		WrongAnswer2:  req.WrongAnswer2,
		WrongAnswer3:  req.WrongAnswer3,
	}, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizDTO(quiz))
}
