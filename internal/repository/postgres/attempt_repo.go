package postgres

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Upsert сохраняет попытку; при конфликте (user_id, quiz_id) прежняя попытка
// перезаписывается — хранится только последняя
func (r *AttemptRepo) Upsert(tx *gorm.DB, attempt *entity.QuizAttempt) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	attempt.AttemptedAt = time.Now()
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_answer", "is_correct", "time_taken", "attempted_at",
		}),
	}).Create(attempt).Error
}

// ListByUser возвращает попытки пользователя с вопросом и вехой, новые первыми
func (r *AttemptRepo) ListByUser(userID uint) ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.
		Preload("Quiz").
		Preload("Quiz.Milestone").
		Where("user_id = ?", userID).
		Order("attempted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// StatsByUser возвращает статистику попыток пользователя одним запросом.
// Точность округляется до 2 знаков; при отсутствии попыток равна 0.
func (r *AttemptRepo) StatsByUser(userID uint) (*repository.AttemptStats, error) {
	var stats repository.AttemptStats
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total_attempted,
			COUNT(CASE WHEN is_correct THEN 1 END) AS total_correct,
			COALESCE(ROUND(COUNT(CASE WHEN is_correct THEN 1 END) * 100.0 / NULLIF(COUNT(*), 0), 2), 0) AS accuracy,
			COALESCE(ROUND(AVG(time_taken), 1), 0) AS average_time
		FROM quiz_attempts
		WHERE user_id = ?`, userID).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ActivitySince возвращает количество попыток и активных пользователей с указанного момента
func (r *AttemptRepo) ActivitySince(since time.Time) (*repository.ActivityStats, error) {
	var stats repository.ActivityStats
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS quiz_attempts,
			COUNT(DISTINCT user_id) AS active_users
		FROM quiz_attempts
		WHERE attempted_at >= ?`, since).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// AnalyticsSince возвращает агрегаты попыток с указанного момента
func (r *AttemptRepo) AnalyticsSince(since time.Time) (*repository.QuizAnalytics, error) {
	var stats repository.QuizAnalytics
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total_attempts,
			COUNT(CASE WHEN is_correct THEN 1 END) AS correct_attempts,
			COALESCE(ROUND(AVG(time_taken), 0), 0) AS avg_time_seconds,
			COUNT(DISTINCT user_id) AS active_users
		FROM quiz_attempts
		WHERE attempted_at >= ?`, since).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListForExport возвращает все попытки с данными пользователя, вопроса и вехи
func (r *AttemptRepo) ListForExport() ([]repository.AttemptExportRow, error) {
	var rows []repository.AttemptExportRow
	err := r.db.Raw(`
		SELECT
			qa.id AS attempt_id,
			u.email AS user_email,
			u.full_name AS full_name,
			m.title AS milestone_title,
			q.question AS question,
			qa.selected_answer AS selected_answer,
			qa.is_correct AS is_correct,
			qa.time_taken AS time_taken,
			qa.attempted_at AS attempted_at
		FROM quiz_attempts qa
		JOIN users u ON u.id = qa.user_id
		JOIN quizzes q ON q.id = qa.quiz_id
		JOIN milestones m ON m.id = q.milestone_id
		ORDER BY qa.attempted_at DESC`).Scan(&rows).Error
	return rows, err
}
