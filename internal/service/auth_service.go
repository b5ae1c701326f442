package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
	"github.com/yourusername/timemachine-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации, входа и профиля пользователей
type AuthService struct {
	userRepo    repository.UserRepository
	jwtService  *auth.JWTService
	emailSender EmailSender
}

// RegisterInput содержит все данные для регистрации
type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	SecondarySchool string
	SecondaryLevel  string
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	emailSender EmailSender,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	if emailSender == nil {
		return nil, fmt.Errorf("EmailSender is required for AuthService")
	}
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		emailSender: emailSender,
	}, nil
}

// RegisterUser регистрирует нового пользователя и возвращает его вместе с токеном доступа.
// Роль всегда "user": административные учетные записи создаются только сидером.
func (s *AuthService) RegisterUser(input RegisterInput) (*entity.User, string, error) {
	input.Email = normalizeEmail(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)
	input.SecondarySchool = strings.TrimSpace(input.SecondarySchool)
	input.SecondaryLevel = strings.TrimSpace(input.SecondaryLevel)

	if len(input.FullName) < 3 {
		return nil, "", fmt.Errorf("%w: full_name must be at least 3 characters", apperrors.ErrValidation)
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, "", fmt.Errorf("%w: a valid email is required", apperrors.ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	// Проверяем, существует ли пользователь с таким email
	_, err := s.userRepo.GetByEmail(input.Email)
	if err == nil {
		return nil, "", fmt.Errorf("%w: user with this email already exists", apperrors.ErrConflict)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email existence: %w", err)
	}

	user := &entity.User{
		Email:           input.Email,
		Password:        input.Password, // хешируется в BeforeSave
		FullName:        input.FullName,
		SecondarySchool: input.SecondarySchool,
		SecondaryLevel:  input.SecondaryLevel,
		Role:            entity.RoleUser,
	}

	// Гонку одновременных регистраций закрывает уникальный индекс email:
	// репозиторий вернет ErrConflict при нарушении
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	// Приветственное письмо не критично для регистрации
	if err := s.emailSender.SendWelcome(user.Email, user.FullName); err != nil {
		log.Printf("[AuthService] Ошибка отправки приветственного письма для ID=%d: %v", user.ID, err)
	}

	return user, token, nil
}

// Login проверяет учетные данные и возвращает пользователя вместе с токеном.
// Несуществующий email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, "", fmt.Errorf("failed to fetch user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	// Время последнего входа не критично для самого входа
	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		log.Printf("[AuthService] Ошибка обновления last_login для ID=%d: %v", user.ID, err)
	}

	return user, token, nil
}

// GetProfile возвращает пользователя по ID
func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// normalizeEmail приводит email к канонической форме
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
