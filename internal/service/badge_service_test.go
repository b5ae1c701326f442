package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/timemachine-api/internal/domain/entity"
	"github.com/yourusername/timemachine-api/internal/domain/repository"
)

// ============================================================================
// Моки для BadgeService
// ============================================================================

type MockBadgeRepoForBadgeService struct {
	mock.Mock
}

func (m *MockBadgeRepoForBadgeService) Award(userID uint, badgeID, badgeName string) (bool, error) {
	args := m.Called(userID, badgeID, badgeName)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepoForBadgeService) ListByUser(userID uint) ([]entity.Badge, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Badge), args.Error(1)
}

func (m *MockBadgeRepoForBadgeService) Recent(userID uint, limit int) ([]entity.Badge, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Badge), args.Error(1)
}

func (m *MockBadgeRepoForBadgeService) AnalyticsSince(since time.Time) (*repository.BadgeAnalytics, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BadgeAnalytics), args.Error(1)
}

type MockProgressRepoForBadgeService struct {
	mock.Mock
}

func (m *MockProgressRepoForBadgeService) Unlock(tx *gorm.DB, userID, milestoneID uint) (bool, error) {
	args := m.Called(tx, userID, milestoneID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressRepoForBadgeService) ListByUser(userID uint) ([]entity.UserProgress, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserProgress), args.Error(1)
}

func (m *MockProgressRepoForBadgeService) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepoForBadgeService) PeriodsByUser(userID uint) ([]repository.PeriodCount, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PeriodCount), args.Error(1)
}

func (m *MockProgressRepoForBadgeService) TotalsByPeriod() ([]repository.PeriodCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PeriodCount), args.Error(1)
}

type MockAttemptRepoForBadgeService struct {
	mock.Mock
}

func (m *MockAttemptRepoForBadgeService) Upsert(tx *gorm.DB, attempt *entity.QuizAttempt) error {
	args := m.Called(tx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepoForBadgeService) ListByUser(userID uint) ([]entity.QuizAttempt, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepoForBadgeService) StatsByUser(userID uint) (*repository.AttemptStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AttemptStats), args.Error(1)
}

func (m *MockAttemptRepoForBadgeService) ActivitySince(since time.Time) (*repository.ActivityStats, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ActivityStats), args.Error(1)
}

func (m *MockAttemptRepoForBadgeService) AnalyticsSince(since time.Time) (*repository.QuizAnalytics, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.QuizAnalytics), args.Error(1)
}

func (m *MockAttemptRepoForBadgeService) ListForExport() ([]repository.AttemptExportRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AttemptExportRow), args.Error(1)
}

type MockMilestoneRepoForBadgeService struct {
	mock.Mock
}

func (m *MockMilestoneRepoForBadgeService) Create(milestone *entity.Milestone) error {
	args := m.Called(milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepoForBadgeService) GetByID(id uint) (*entity.Milestone, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Milestone), args.Error(1)
}

func (m *MockMilestoneRepoForBadgeService) GetByMarkerID(markerID string) (*entity.Milestone, error) {
	args := m.Called(markerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Milestone), args.Error(1)
}

func (m *MockMilestoneRepoForBadgeService) List() ([]entity.Milestone, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Milestone), args.Error(1)
}

func (m *MockMilestoneRepoForBadgeService) Update(milestone *entity.Milestone) error {
	args := m.Called(milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepoForBadgeService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMilestoneRepoForBadgeService) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMilestoneRepoForBadgeService) Stats() (*repository.MilestoneStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.MilestoneStats), args.Error(1)
}

// createTestBadgeService создаёт BadgeService для тестирования
func createTestBadgeService(
	badgeRepo *MockBadgeRepoForBadgeService,
	progressRepo *MockProgressRepoForBadgeService,
	attemptRepo *MockAttemptRepoForBadgeService,
	milestoneRepo *MockMilestoneRepoForBadgeService,
) *BadgeService {
	return &BadgeService{
		badgeRepo:     badgeRepo,
		progressRepo:  progressRepo,
		attemptRepo:   attemptRepo,
		milestoneRepo: milestoneRepo,
	}
}

// noBadgeStats — прогресс без условий для значков достижения
func noBadgeStats(progressRepo *MockProgressRepoForBadgeService, attemptRepo *MockAttemptRepoForBadgeService, milestoneRepo *MockMilestoneRepoForBadgeService) {
	progressRepo.On("CountByUser", uint(1)).Return(int64(1), nil)
	milestoneRepo.On("Count").Return(int64(4), nil)
	attemptRepo.On("StatsByUser", uint(1)).Return(&repository.AttemptStats{
		TotalAttempted: 2,
		TotalCorrect:   1,
		Accuracy:       50.0,
	}, nil)
}

// ============================================================================
// Тесты для BadgeService.CheckAndAward
// ============================================================================

func TestBadgeService_CheckAndAward_PeriodBadge(t *testing.T) {
	// Arrange: первая открытая веха периода 2000s
	mockBadgeRepo := new(MockBadgeRepoForBadgeService)
	mockProgressRepo := new(MockProgressRepoForBadgeService)
	mockAttemptRepo := new(MockAttemptRepoForBadgeService)
	mockMilestoneRepo := new(MockMilestoneRepoForBadgeService)

	mockProgressRepo.On("PeriodsByUser", uint(1)).Return([]repository.PeriodCount{
		{TimePeriod: "2000s", Count: 1},
	}, nil)
	mockBadgeRepo.On("Award", uint(1), "digital_2000s", "Digital Revolution").Return(true, nil)
	noBadgeStats(mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	badgeService := createTestBadgeService(mockBadgeRepo, mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	// Act
	awarded, err := badgeService.CheckAndAward(1)

	// Assert
	require.NoError(t, err, "Проверка значков должна быть успешной")
	require.Len(t, awarded, 1, "Должен быть выдан ровно один значок")
	assert.Equal(t, "digital_2000s", awarded[0].ID)
	assert.Equal(t, entity.RarityCommon, awarded[0].Rarity)
	mockBadgeRepo.AssertExpectations(t)
}

func TestBadgeService_CheckAndAward_Idempotent(t *testing.T) {
	// Arrange: значок периода уже выдан, Award возвращает false
	mockBadgeRepo := new(MockBadgeRepoForBadgeService)
	mockProgressRepo := new(MockProgressRepoForBadgeService)
	mockAttemptRepo := new(MockAttemptRepoForBadgeService)
	mockMilestoneRepo := new(MockMilestoneRepoForBadgeService)

	mockProgressRepo.On("PeriodsByUser", uint(1)).Return([]repository.PeriodCount{
		{TimePeriod: "2000s", Count: 2},
	}, nil)
	mockBadgeRepo.On("Award", uint(1), "digital_2000s", "Digital Revolution").Return(false, nil)
	noBadgeStats(mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	badgeService := createTestBadgeService(mockBadgeRepo, mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	// Act
	awarded, err := badgeService.CheckAndAward(1)

	// Assert: повторная проверка без нового прогресса ничего не выдает
	require.NoError(t, err)
	assert.Empty(t, awarded, "Уже выданный значок не должен возвращаться повторно")
}

func TestBadgeService_CheckAndAward_OtherPeriodSkipped(t *testing.T) {
	// Arrange: веха вне каталога декад (период "Other")
	mockBadgeRepo := new(MockBadgeRepoForBadgeService)
	mockProgressRepo := new(MockProgressRepoForBadgeService)
	mockAttemptRepo := new(MockAttemptRepoForBadgeService)
	mockMilestoneRepo := new(MockMilestoneRepoForBadgeService)

	mockProgressRepo.On("PeriodsByUser", uint(1)).Return([]repository.PeriodCount{
		{TimePeriod: "Other", Count: 1},
	}, nil)
	noBadgeStats(mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	badgeService := createTestBadgeService(mockBadgeRepo, mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	// Act
	awarded, err := badgeService.CheckAndAward(1)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, awarded, "Для периода Other значок не предусмотрен")
	mockBadgeRepo.AssertNotCalled(t, "Award", mock.Anything, mock.Anything, mock.Anything)
}

func TestBadgeService_CheckAndAward_TimeMaster(t *testing.T) {
	// Arrange: открыты все 4 вехи
	mockBadgeRepo := new(MockBadgeRepoForBadgeService)
	mockProgressRepo := new(MockProgressRepoForBadgeService)
	mockAttemptRepo := new(MockAttemptRepoForBadgeService)
	mockMilestoneRepo := new(MockMilestoneRepoForBadgeService)

	mockProgressRepo.On("PeriodsByUser", uint(1)).Return([]repository.PeriodCount{}, nil)
	mockProgressRepo.On("CountByUser", uint(1)).Return(int64(4), nil)
	mockMilestoneRepo.On("Count").Return(int64(4), nil)
	mockBadgeRepo.On("Award", uint(1), "time_master", "Time Master").Return(true, nil)
	mockAttemptRepo.On("StatsByUser", uint(1)).Return(&repository.AttemptStats{
		TotalAttempted: 6,
		TotalCorrect:   4,
		Accuracy:       66.67,
	}, nil)

	badgeService := createTestBadgeService(mockBadgeRepo, mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	// Act
	awarded, err := badgeService.CheckAndAward(1)

	// Assert
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, "time_master", awarded[0].ID)
	assert.Equal(t, entity.RarityLegendary, awarded[0].Rarity)
}

func TestBadgeService_CheckAndAward_TimeMasterRequiresMilestones(t *testing.T) {
	// Arrange: вех в системе нет вообще, 0 == 0 не считается полным прохождением
	mockBadgeRepo := new(MockBadgeRepoForBadgeService)
	mockProgressRepo := new(MockProgressRepoForBadgeService)
	mockAttemptRepo := new(MockAttemptRepoForBadgeService)
	mockMilestoneRepo := new(MockMilestoneRepoForBadgeService)

	mockProgressRepo.On("PeriodsByUser", uint(1)).Return([]repository.PeriodCount{}, nil)
	mockProgressRepo.On("CountByUser", uint(1)).Return(int64(0), nil)
	mockMilestoneRepo.On("Count").Return(int64(0), nil)
	mockAttemptRepo.On("StatsByUser", uint(1)).Return(&repository.AttemptStats{}, nil)

	badgeService := createTestBadgeService(mockBadgeRepo, mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	// Act
	awarded, err := badgeService.CheckAndAward(1)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, awarded, "Без вех значок time_master не выдается")
	mockBadgeRepo.AssertNotCalled(t, "Award", mock.Anything, mock.Anything, mock.Anything)
}

func TestBadgeService_CheckAndAward_QuizExpertAtThreshold(t *testing.T) {
	// Arrange: точность ровно на пороге 80%
	mockBadgeRepo := new(MockBadgeRepoForBadgeService)
	mockProgressRepo := new(MockProgressRepoForBadgeService)
	mockAttemptRepo := new(MockAttemptRepoForBadgeService)
	mockMilestoneRepo := new(MockMilestoneRepoForBadgeService)

	mockProgressRepo.On("PeriodsByUser", uint(1)).Return([]repository.PeriodCount{}, nil)
	mockProgressRepo.On("CountByUser", uint(1)).Return(int64(2), nil)
	mockMilestoneRepo.On("Count").Return(int64(4), nil)
	mockAttemptRepo.On("StatsByUser", uint(1)).Return(&repository.AttemptStats{
		TotalAttempted: 5,
		TotalCorrect:   4,
		Accuracy:       80.0,
	}, nil)
	mockBadgeRepo.On("Award", uint(1), "quiz_expert", "Knowledge Expert").Return(true, nil)

	badgeService := createTestBadgeService(mockBadgeRepo, mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	// Act
	awarded, err := badgeService.CheckAndAward(1)

	// Assert: порог включительный
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, "quiz_expert", awarded[0].ID)
}

func TestBadgeService_CheckAndAward_QuizExpertRequiresAttempts(t *testing.T) {
	// Arrange: попыток нет, точность 0 из SQL-заглушки COALESCE
	mockBadgeRepo := new(MockBadgeRepoForBadgeService)
	mockProgressRepo := new(MockProgressRepoForBadgeService)
	mockAttemptRepo := new(MockAttemptRepoForBadgeService)
	mockMilestoneRepo := new(MockMilestoneRepoForBadgeService)

	mockProgressRepo.On("PeriodsByUser", uint(1)).Return([]repository.PeriodCount{}, nil)
	mockProgressRepo.On("CountByUser", uint(1)).Return(int64(0), nil)
	mockMilestoneRepo.On("Count").Return(int64(4), nil)
	mockAttemptRepo.On("StatsByUser", uint(1)).Return(&repository.AttemptStats{
		TotalAttempted: 0,
		Accuracy:       0,
	}, nil)

	badgeService := createTestBadgeService(mockBadgeRepo, mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	// Act
	awarded, err := badgeService.CheckAndAward(1)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, awarded, "Без попыток значок точности не выдается")
}

// ============================================================================
// Тесты для BadgeService.ListWithStatus и Stats
// ============================================================================

func TestBadgeService_ListWithStatus(t *testing.T) {
	// Arrange: получен один значок из шести
	mockBadgeRepo := new(MockBadgeRepoForBadgeService)
	mockProgressRepo := new(MockProgressRepoForBadgeService)
	mockAttemptRepo := new(MockAttemptRepoForBadgeService)
	mockMilestoneRepo := new(MockMilestoneRepoForBadgeService)

	awardedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mockBadgeRepo.On("ListByUser", uint(1)).Return([]entity.Badge{
		{ID: 1, UserID: 1, BadgeID: "pioneer_90s", BadgeName: "Pioneer Era", AwardedAt: awardedAt},
	}, nil)

	badgeService := createTestBadgeService(mockBadgeRepo, mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	// Act
	statuses, err := badgeService.ListWithStatus(1)

	// Assert: каталог целиком, с отметкой получения
	require.NoError(t, err)
	require.Len(t, statuses, len(entity.BadgeCatalog), "Должен вернуться весь каталог значков")
	assert.Equal(t, "pioneer_90s", statuses[0].ID)
	assert.True(t, statuses[0].Earned)
	require.NotNil(t, statuses[0].AwardedAt)
	assert.Equal(t, awardedAt, *statuses[0].AwardedAt)
	for _, s := range statuses[1:] {
		assert.False(t, s.Earned, "Остальные значки должны быть не получены")
		assert.Nil(t, s.AwardedAt)
	}
}

func TestBadgeService_Stats(t *testing.T) {
	// Arrange: получено 3 значка из 6
	mockBadgeRepo := new(MockBadgeRepoForBadgeService)
	mockProgressRepo := new(MockProgressRepoForBadgeService)
	mockAttemptRepo := new(MockAttemptRepoForBadgeService)
	mockMilestoneRepo := new(MockMilestoneRepoForBadgeService)

	earned := []entity.Badge{
		{BadgeID: "pioneer_90s"},
		{BadgeID: "digital_2000s"},
		{BadgeID: "quiz_expert"},
	}
	mockBadgeRepo.On("ListByUser", uint(1)).Return(earned, nil)
	mockBadgeRepo.On("Recent", uint(1), 5).Return(earned, nil)

	badgeService := createTestBadgeService(mockBadgeRepo, mockProgressRepo, mockAttemptRepo, mockMilestoneRepo)

	// Act
	stats, err := badgeService.Stats(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, stats.EarnedCount)
	assert.Equal(t, 6, stats.TotalCount)
	assert.Equal(t, 50.0, stats.CompletionPct, "Процент должен считаться от размера каталога")
	assert.Len(t, stats.Recent, 3)
}
