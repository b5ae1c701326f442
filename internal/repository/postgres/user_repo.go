package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	if err := r.db.Create(user).Error; err != nil {
		// Дубликат email ловим на уровне БД, а не проверкой перед вставкой
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrConflict, user.Email)
		}
		return err
	}
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin обновляет время последнего входа пользователя
func (r *UserRepo) UpdateLastLogin(userID uint) error {
	return r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

// CountByRole возвращает количество пользователей с указанной ролью
func (r *UserRepo) CountByRole(role string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// Analytics возвращает агрегаты по пользователям одним запросом
func (r *UserRepo) Analytics(weekAgo, monthAgo time.Time) (*repository.UserAnalytics, error) {
	var stats repository.UserAnalytics
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total_users,
			COUNT(CASE WHEN role = 'admin' THEN 1 END) AS admin_count,
			COUNT(CASE WHEN role = 'user' THEN 1 END) AS student_count,
			COUNT(CASE WHEN registered_at >= ? THEN 1 END) AS new_users_week,
			COUNT(CASE WHEN registered_at >= ? THEN 1 END) AS new_users_month
		FROM users`, weekAgo, monthAgo).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
