package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
	apperrors "github.com/yourusername/timemachine-api/internal/pkg/errors"
)

// ============================================================================
// Моки для AdminService
// ============================================================================

type MockUserRepoForAdminService struct {
	mock.Mock
}

func (m *MockUserRepoForAdminService) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepoForAdminService) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForAdminService) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForAdminService) UpdateLastLogin(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepoForAdminService) CountByRole(role string) (int64, error) {
	args := m.Called(role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepoForAdminService) Analytics(weekAgo, monthAgo time.Time) (*repository.UserAnalytics, error) {
	args := m.Called(weekAgo, monthAgo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserAnalytics), args.Error(1)
}

type MockQuizRepoForAdminService struct {
	mock.Mock
}

func (m *MockQuizRepoForAdminService) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepoForAdminService) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForAdminService) ListWithMilestones() ([]entity.Quiz, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForAdminService) ListByMilestone(milestoneID uint) ([]entity.Quiz, error) {
	args := m.Called(milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForAdminService) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type MockAttemptRepoForAdminService struct {
	mock.Mock
}

func (m *MockAttemptRepoForAdminService) Upsert(tx *gorm.DB, attempt *entity.QuizAttempt) error {
	args := m.Called(tx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepoForAdminService) ListByUser(userID uint) ([]entity.QuizAttempt, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepoForAdminService) StatsByUser(userID uint) (*repository.AttemptStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AttemptStats), args.Error(1)
}

func (m *MockAttemptRepoForAdminService) ActivitySince(since time.Time) (*repository.ActivityStats, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ActivityStats), args.Error(1)
}

func (m *MockAttemptRepoForAdminService) AnalyticsSince(since time.Time) (*repository.QuizAnalytics, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.QuizAnalytics), args.Error(1)
}

func (m *MockAttemptRepoForAdminService) ListForExport() ([]repository.AttemptExportRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AttemptExportRow), args.Error(1)
}

type MockBadgeRepoForAdminService struct {
	mock.Mock
}

func (m *MockBadgeRepoForAdminService) Award(userID uint, badgeID, badgeName string) (bool, error) {
	args := m.Called(userID, badgeID, badgeName)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepoForAdminService) ListByUser(userID uint) ([]entity.Badge, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Badge), args.Error(1)
}

func (m *MockBadgeRepoForAdminService) Recent(userID uint, limit int) ([]entity.Badge, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Badge), args.Error(1)
}

func (m *MockBadgeRepoForAdminService) AnalyticsSince(since time.Time) (*repository.BadgeAnalytics, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BadgeAnalytics), args.Error(1)
}

type MockAdminLogRepoForAdminService struct {
	mock.Mock
}

func (m *MockAdminLogRepoForAdminService) Create(logEntry *entity.AdminLog) error {
	args := m.Called(logEntry)
	return args.Error(0)
}

func (m *MockAdminLogRepoForAdminService) ListRecent(limit int) ([]entity.AdminLog, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AdminLog), args.Error(1)
}

// adminServiceMocks собирает все моки AdminService в одном месте
type adminServiceMocks struct {
	userRepo      *MockUserRepoForAdminService
	milestoneRepo *MockMilestoneRepoForMilestoneService
	quizRepo      *MockQuizRepoForAdminService
	attemptRepo   *MockAttemptRepoForAdminService
	badgeRepo     *MockBadgeRepoForAdminService
	adminLogRepo  *MockAdminLogRepoForAdminService
}

// createTestAdminService создаёт AdminService для тестирования
func createTestAdminService() (*AdminService, *adminServiceMocks) {
	mocks := &adminServiceMocks{
		userRepo:      new(MockUserRepoForAdminService),
		milestoneRepo: new(MockMilestoneRepoForMilestoneService),
		quizRepo:      new(MockQuizRepoForAdminService),
		attemptRepo:   new(MockAttemptRepoForAdminService),
		badgeRepo:     new(MockBadgeRepoForAdminService),
		adminLogRepo:  new(MockAdminLogRepoForAdminService),
	}
	adminService := &AdminService{
		userRepo:      mocks.userRepo,
		milestoneRepo: mocks.milestoneRepo,
		quizRepo:      mocks.quizRepo,
		attemptRepo:   mocks.attemptRepo,
		badgeRepo:     mocks.badgeRepo,
		adminLogRepo:  mocks.adminLogRepo,
	}
	return adminService, mocks
}

// stubDashboardCounts настраивает успешные ответы всех хранилищ для сводки
func stubDashboardCounts(mocks *adminServiceMocks) {
	mocks.milestoneRepo.On("Count").Return(int64(4), nil)
	mocks.quizRepo.On("Count").Return(int64(6), nil)
	mocks.userRepo.On("CountByRole", entity.RoleUser).Return(int64(120), nil)
	mocks.attemptRepo.On("ActivitySince", mock.AnythingOfType("time.Time")).Return(&repository.ActivityStats{
		QuizAttempts: 34,
		ActiveUsers:  12,
	}, nil)
}

// ============================================================================
// Тесты для AdminService
// ============================================================================

func TestAdminService_VerifyAdmin_Success(t *testing.T) {
	// Arrange
	adminService, mocks := createTestAdminService()
	mocks.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Role: entity.RoleAdmin}, nil)
	stubDashboardCounts(mocks)

	// Act
	admin, stats, err := adminService.VerifyAdmin(1)

	// Assert
	require.NoError(t, err, "Проверка администратора должна быть успешной")
	assert.True(t, admin.IsAdmin())
	require.NotNil(t, stats)
	assert.Equal(t, int64(4), stats.Milestones)
	assert.Equal(t, int64(6), stats.Quizzes)
	assert.Equal(t, int64(120), stats.Students)
	assert.Equal(t, int64(34), stats.RecentActivity.QuizAttempts24h)
	assert.Empty(t, stats.Error)
}

func TestAdminService_VerifyAdmin_NotAdmin(t *testing.T) {
	// Arrange: в БД роль user, несмотря на токен
	adminService, mocks := createTestAdminService()
	mocks.userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2, Role: entity.RoleUser}, nil)

	// Act
	_, _, err := adminService.VerifyAdmin(2)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden), "Пользователь без роли admin должен получить ErrForbidden")
	mocks.milestoneRepo.AssertNotCalled(t, "Count")
}

func TestAdminService_Stats_StoreFailure(t *testing.T) {
	// Arrange: первое же хранилище недоступно
	adminService, mocks := createTestAdminService()
	mocks.milestoneRepo.On("Count").Return(int64(0), errors.New("connection refused"))

	// Act
	stats := adminService.Stats()

	// Assert: нули с маркером ошибки вместо проброса
	require.NotNil(t, stats)
	assert.Equal(t, "Failed to load statistics", stats.Error,
		"Сбой хранилища должен превращаться в маркер ошибки, а не в отказ")
	assert.Zero(t, stats.Milestones)
	assert.Zero(t, stats.Quizzes)
	assert.Zero(t, stats.Students)
	assert.False(t, stats.LastUpdated.IsZero())
}

func TestAdminService_UserAnalytics(t *testing.T) {
	// Arrange
	adminService, mocks := createTestAdminService()
	mocks.userRepo.On("Analytics", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(&repository.UserAnalytics{TotalUsers: 121, AdminCount: 1, StudentCount: 120, NewUsersWeek: 5, NewUsersMonth: 17}, nil)
	mocks.attemptRepo.On("AnalyticsSince", mock.AnythingOfType("time.Time")).
		Return(&repository.QuizAnalytics{TotalAttempts: 340, CorrectAttempts: 250, AvgTimeSeconds: 14.2, ActiveUsers: 48}, nil)
	mocks.badgeRepo.On("AnalyticsSince", mock.AnythingOfType("time.Time")).
		Return(&repository.BadgeAnalytics{TotalAwarded: 90, UsersWithBadges: 40, UniqueBadgeTypes: 6}, nil)

	// Act
	report, err := adminService.UserAnalytics()

	// Assert
	require.NoError(t, err, "Сбор аналитики должен быть успешным")
	assert.Equal(t, int64(121), report.Users.TotalUsers)
	assert.Equal(t, int64(340), report.Quizzes.TotalAttempts)
	assert.Equal(t, int64(90), report.Badges.TotalAwarded)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestAdminService_UserAnalytics_Failure(t *testing.T) {
	// Arrange: аналитика, в отличие от сводки, пробрасывает ошибки
	adminService, mocks := createTestAdminService()
	mocks.userRepo.On("Analytics", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(nil, errors.New("connection refused"))

	// Act
	_, err := adminService.UserAnalytics()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load user analytics")
}

func TestAdminService_SecurityLogs_LimitClamped(t *testing.T) {
	// Arrange
	adminService, mocks := createTestAdminService()
	mocks.adminLogRepo.On("ListRecent", 100).Return([]entity.AdminLog{}, nil)

	// Act: недопустимые значения лимита приводятся к 100
	_, err := adminService.SecurityLogs(0)
	require.NoError(t, err)
	_, err = adminService.SecurityLogs(10000)
	require.NoError(t, err)

	// Assert
	mocks.adminLogRepo.AssertNumberOfCalls(t, "ListRecent", 2)
}

func TestAdminService_ExportAttempts(t *testing.T) {
	// Arrange
	adminService, mocks := createTestAdminService()
	rows := []repository.AttemptExportRow{
		{AttemptID: 1, UserEmail: "student@example.com", FullName: "Test Student", MilestoneTitle: "Founding", IsCorrect: true},
	}
	mocks.attemptRepo.On("ListForExport").Return(rows, nil)

	// Act
	exported, err := adminService.ExportAttempts()

	// Assert
	require.NoError(t, err)
	require.Len(t, exported, 1)
	assert.Equal(t, "student@example.com", exported[0].UserEmail)
}
