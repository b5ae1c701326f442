package service

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
)

// QuizService оценивает ответы на вопросы и управляет их каталогом
type QuizService struct {
	quizRepo      repository.QuizRepository
	attemptRepo   repository.AttemptRepository
	progressRepo  repository.ProgressRepository
	milestoneRepo repository.MilestoneRepository
	badgeService  *BadgeService
	adminLogRepo  repository.AdminLogRepository
	db            *gorm.DB
}

// SubmitInput содержит данные отправленного ответа
type SubmitInput struct {
	QuizID         uint
	SelectedAnswer string
	TimeTaken      int
}

// SubmitResult — результат оценки ответа
type SubmitResult struct {
	IsCorrect         bool   `json:"isCorrect"`
	CorrectAnswer     string `json:"correctAnswer"`
	Explanation       string `json:"explanation"`
	MilestoneUnlocked bool   `json:"milestoneUnlocked"`
}

// QuizInput содержит данные для создания вопроса
type QuizInput struct {
	MilestoneID   uint
	Question      string
	CorrectAnswer string
	WrongAnswer1  string
	WrongAnswer2  string
	WrongAnswer3  string
}

// UserQuizStats — статистика пользователя по вопросам и открытым вехам
type UserQuizStats struct {
	TotalAttempted     int64   `json:"total_attempted"`
	TotalCorrect       int64   `json:"total_correct"`
	Accuracy           float64 `json:"accuracy"`
	AverageTime        float64 `json:"average_time"`
	MilestonesUnlocked int64   `json:"milestones_unlocked"`
	TotalMilestones    int64   `json:"total_milestones"`
}

// NewQuizService создает новый сервис вопросов и возвращает ошибку при проблемах.
// badgeService, adminLogRepo и db могут быть nil в unit-тестах.
func NewQuizService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	progressRepo repository.ProgressRepository,
	milestoneRepo repository.MilestoneRepository,
	badgeService *BadgeService,
	adminLogRepo repository.AdminLogRepository,
	db *gorm.DB,
) (*QuizService, error) {
	if quizRepo == nil {
		return nil, fmt.Errorf("QuizRepository is required for QuizService")
	}
	if attemptRepo == nil {
		return nil, fmt.Errorf("AttemptRepository is required for QuizService")
	}
	if progressRepo == nil {
		return nil, fmt.Errorf("ProgressRepository is required for QuizService")
	}
	if milestoneRepo == nil {
		return nil, fmt.Errorf("MilestoneRepository is required for QuizService")
	}
	return &QuizService{
		quizRepo:      quizRepo,
		attemptRepo:   attemptRepo,
		progressRepo:  progressRepo,
		milestoneRepo: milestoneRepo,
		badgeService:  badgeService,
		adminLogRepo:  adminLogRepo,
		db:            db,
	}, nil
}

// List возвращает все вопросы с их вехами
func (s *QuizService) List() ([]entity.Quiz, error) {
	return s.quizRepo.ListWithMilestones()
}

// ListByMilestone возвращает вопросы одной вехи; веха должна существовать
func (s *QuizService) ListByMilestone(milestoneID uint) ([]entity.Quiz, error) {
	if _, err := s.milestoneRepo.GetByID(milestoneID); err != nil {
		return nil, err
	}
	return s.quizRepo.ListByMilestone(milestoneID)
}

// SubmitAnswer оценивает ответ, сохраняет попытку и при верном ответе открывает веху.
// Запись попытки и открытие вехи выполняются одной транзакцией: сбой между ними
// не должен оставить открытую веху без записанной попытки.
func (s *QuizService) SubmitAnswer(userID uint, input SubmitInput) (*SubmitResult, error) {
	if input.QuizID == 0 {
		return nil, fmt.Errorf("%w: quiz_id is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(input.SelectedAnswer) == "" {
		return nil, fmt.Errorf("%w: selected_answer is required", apperrors.ErrValidation)
	}
	if input.TimeTaken < 0 {
		input.TimeTaken = 0
	}

	quiz, err := s.quizRepo.GetByID(input.QuizID)
	if err != nil {
		return nil, err
	}

	isCorrect := quiz.CheckAnswer(input.SelectedAnswer)

	err = s.inTransaction(func(tx *gorm.DB) error {
		attempt := &entity.QuizAttempt{
			UserID:         userID,
			QuizID:         quiz.ID,
			SelectedAnswer: input.SelectedAnswer,
			IsCorrect:      isCorrect,
			TimeTaken:      input.TimeTaken,
		}
		if err := s.attemptRepo.Upsert(tx, attempt); err != nil {
			return fmt.Errorf("failed to save attempt: %w", err)
		}

		// Открытие идемпотентно: уже открытая веха остается открытой,
		// в том числе после неверной повторной попытки
		if isCorrect {
			if _, err := s.progressRepo.Unlock(tx, userID, quiz.MilestoneID); err != nil {
				return fmt.Errorf("failed to unlock milestone: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Проверка значков — побочный эффект: ее сбой не отменяет принятый ответ
	if isCorrect && s.badgeService != nil {
		if _, err := s.badgeService.CheckAndAward(userID); err != nil {
			log.Printf("[QuizService] Ошибка проверки значков для пользователя ID=%d: %v", userID, err)
		}
	}

	milestoneTitle := ""
	if quiz.Milestone != nil {
		milestoneTitle = quiz.Milestone.Title
	}
	verdict := "Incorrect."
	if isCorrect {
		verdict = "Correct!"
	}

	return &SubmitResult{
		IsCorrect:         isCorrect,
		CorrectAnswer:     quiz.CorrectAnswer,
		Explanation:       fmt.Sprintf("%s: %s The right answer is %q.", milestoneTitle, verdict, quiz.CorrectAnswer),
		MilestoneUnlocked: isCorrect,
	}, nil
}

// Progress возвращает историю попыток пользователя, новые первыми
func (s *QuizService) Progress(userID uint) ([]entity.QuizAttempt, error) {
	return s.attemptRepo.ListByUser(userID)
}

// Stats возвращает статистику пользователя по вопросам и вехам
func (s *QuizService) Stats(userID uint) (*UserQuizStats, error) {
	attemptStats, err := s.attemptRepo.StatsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt stats: %w", err)
	}

	unlocked, err := s.progressRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unlocked milestones: %w", err)
	}

	total, err := s.milestoneRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count milestones: %w", err)
	}

	return &UserQuizStats{
		TotalAttempted:     attemptStats.TotalAttempted,
		TotalCorrect:       attemptStats.TotalCorrect,
		Accuracy:           attemptStats.Accuracy,
		AverageTime:        attemptStats.AverageTime,
		MilestonesUnlocked: unlocked,
		TotalMilestones:    total,
	}, nil
}

// CreateQuiz создает новый вопрос для вехи
func (s *QuizService) CreateQuiz(input QuizInput, audit AuditContext) (*entity.Quiz, error) {
	input.Question = strings.TrimSpace(input.Question)
	input.CorrectAnswer = strings.TrimSpace(input.CorrectAnswer)
	input.WrongAnswer1 = strings.TrimSpace(input.WrongAnswer1)
	input.WrongAnswer2 = strings.TrimSpace(input.WrongAnswer2)
	input.WrongAnswer3 = strings.TrimSpace(input.WrongAnswer3)

	if input.MilestoneID == 0 {
		return nil, fmt.Errorf("%w: milestone_id is required", apperrors.ErrValidation)
	}
	if input.Question == "" || input.CorrectAnswer == "" ||
		input.WrongAnswer1 == "" || input.WrongAnswer2 == "" || input.WrongAnswer3 == "" {
		return nil, fmt.Errorf("%w: question, correct answer and three wrong answers are required", apperrors.ErrValidation)
	}

	if _, err := s.milestoneRepo.GetByID(input.MilestoneID); err != nil {
		return nil, err
	}

	quiz := &entity.Quiz{
		MilestoneID:   input.MilestoneID,
		Question:      input.Question,
		CorrectAnswer: input.CorrectAnswer,
		WrongAnswer1:  input.WrongAnswer1,
		WrongAnswer2:  input.WrongAnswer2,
		WrongAnswer3:  input.WrongAnswer3,
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}

	writeAdminLog(s.adminLogRepo, audit, entity.AdminActionCreateQuiz, "quiz", &quiz.ID,
		map[string]interface{}{"milestone_id": quiz.MilestoneID, "question": quiz.Question})

	return quiz, nil
}

// inTransaction выполняет fn в транзакции БД; без подключения (в unit-тестах)
// fn выполняется напрямую с nil-транзакцией
func (s *QuizService) inTransaction(fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.Transaction(fn)
}
