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
// Моки для ProgressService
// ============================================================================

type MockProgressRepoForProgressService struct {
	mock.Mock
}

func (m *MockProgressRepoForProgressService) Unlock(tx *gorm.DB, userID, milestoneID uint) (bool, error) {
	args := m.Called(tx, userID, milestoneID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressRepoForProgressService) ListByUser(userID uint) ([]entity.UserProgress, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserProgress), args.Error(1)
}

func (m *MockProgressRepoForProgressService) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepoForProgressService) PeriodsByUser(userID uint) ([]repository.PeriodCount, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PeriodCount), args.Error(1)
}

func (m *MockProgressRepoForProgressService) TotalsByPeriod() ([]repository.PeriodCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PeriodCount), args.Error(1)
}

type MockMilestoneRepoForProgressService struct {
	mock.Mock
}

func (m *MockMilestoneRepoForProgressService) Create(milestone *entity.Milestone) error {
	args := m.Called(milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepoForProgressService) GetByID(id uint) (*entity.Milestone, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Milestone), args.Error(1)
}

func (m *MockMilestoneRepoForProgressService) GetByMarkerID(markerID string) (*entity.Milestone, error) {
	args := m.Called(markerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Milestone), args.Error(1)
}

func (m *MockMilestoneRepoForProgressService) List() ([]entity.Milestone, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Milestone), args.Error(1)
}

func (m *MockMilestoneRepoForProgressService) Update(milestone *entity.Milestone) error {
	args := m.Called(milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepoForProgressService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMilestoneRepoForProgressService) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMilestoneRepoForProgressService) Stats() (*repository.MilestoneStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.MilestoneStats), args.Error(1)
}

// createTestProgressService создаёт ProgressService для тестирования
func createTestProgressService(
	progressRepo *MockProgressRepoForProgressService,
	milestoneRepo *MockMilestoneRepoForProgressService,
) *ProgressService {
	return &ProgressService{
		progressRepo:  progressRepo,
		milestoneRepo: milestoneRepo,
	}
}

// ============================================================================
// Тесты для ProgressService
// ============================================================================

func TestProgressService_Overview(t *testing.T) {
	// Arrange: три вехи, одна открыта пользователем
	mockProgressRepo := new(MockProgressRepoForProgressService)
	mockMilestoneRepo := new(MockMilestoneRepoForProgressService)

	milestones := []entity.Milestone{
		{ID: 1, Title: "Founding", Year: 1992},
		{ID: 2, Title: "Media Lab", Year: 2001},
		{ID: 3, Title: "Robotics Club", Year: 2015},
	}
	unlockedAt := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	mockMilestoneRepo.On("List").Return(milestones, nil)
	mockProgressRepo.On("ListByUser", uint(1)).Return([]entity.UserProgress{
		{ID: 10, UserID: 1, MilestoneID: 2, UnlockedAt: unlockedAt},
	}, nil)

	progressService := createTestProgressService(mockProgressRepo, mockMilestoneRepo)

	// Act
	overview, err := progressService.Overview(1)

	// Assert: все вехи присутствуют, открытая помечена
	require.NoError(t, err, "Сводка прогресса должна строиться без ошибок")
	require.Len(t, overview, 3, "Сводка должна содержать все вехи")

	assert.False(t, overview[0].IsUnlocked)
	assert.Nil(t, overview[0].UnlockedAt)
	assert.Equal(t, "1990s", overview[0].TimePeriod)

	assert.True(t, overview[1].IsUnlocked, "Веха Media Lab должна быть открыта")
	require.NotNil(t, overview[1].UnlockedAt)
	assert.Equal(t, unlockedAt, *overview[1].UnlockedAt)
	assert.Equal(t, "2000s", overview[1].TimePeriod)

	assert.False(t, overview[2].IsUnlocked)
	assert.Equal(t, "2010s", overview[2].TimePeriod)
}

func TestProgressService_Overview_NoProgress(t *testing.T) {
	// Arrange: у нового пользователя нет открытых вех
	mockProgressRepo := new(MockProgressRepoForProgressService)
	mockMilestoneRepo := new(MockMilestoneRepoForProgressService)

	mockMilestoneRepo.On("List").Return([]entity.Milestone{
		{ID: 1, Title: "Founding", Year: 1992},
	}, nil)
	mockProgressRepo.On("ListByUser", uint(5)).Return([]entity.UserProgress{}, nil)

	progressService := createTestProgressService(mockProgressRepo, mockMilestoneRepo)

	// Act
	overview, err := progressService.Overview(5)

	// Assert
	require.NoError(t, err)
	require.Len(t, overview, 1)
	assert.False(t, overview[0].IsUnlocked, "У нового пользователя все вехи закрыты")
}

func TestProgressService_PeriodOverview(t *testing.T) {
	// Arrange: вехи есть в трех периодах, открытия только в одном
	mockProgressRepo := new(MockProgressRepoForProgressService)
	mockMilestoneRepo := new(MockMilestoneRepoForProgressService)

	mockProgressRepo.On("TotalsByPeriod").Return([]repository.PeriodCount{
		{TimePeriod: "1990s", Count: 1},
		{TimePeriod: "2000s", Count: 2},
		{TimePeriod: "2010s", Count: 1},
	}, nil)
	mockProgressRepo.On("PeriodsByUser", uint(1)).Return([]repository.PeriodCount{
		{TimePeriod: "2000s", Count: 1},
	}, nil)

	progressService := createTestProgressService(mockProgressRepo, mockMilestoneRepo)

	// Act
	periods, err := progressService.PeriodOverview(1)

	// Assert: периоды без открытий присутствуют с нулем
	require.NoError(t, err)
	require.Len(t, periods, 3, "Должны вернуться все периоды с вехами")
	assert.Equal(t, PeriodProgress{TimePeriod: "1990s", Unlocked: 0, Total: 1}, periods[0])
	assert.Equal(t, PeriodProgress{TimePeriod: "2000s", Unlocked: 1, Total: 2}, periods[1])
	assert.Equal(t, PeriodProgress{TimePeriod: "2010s", Unlocked: 0, Total: 1}, periods[2])
}

func TestProgressService_UnlockedByPeriod(t *testing.T) {
	// Arrange
	mockProgressRepo := new(MockProgressRepoForProgressService)
	mockMilestoneRepo := new(MockMilestoneRepoForProgressService)

	mockProgressRepo.On("PeriodsByUser", uint(1)).Return([]repository.PeriodCount{
		{TimePeriod: "1990s", Count: 1},
	}, nil)

	progressService := createTestProgressService(mockProgressRepo, mockMilestoneRepo)

	// Act
	periods, err := progressService.UnlockedByPeriod(1)

	// Assert: разреженный список, только периоды с открытиями
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "1990s", periods[0].TimePeriod)
	assert.Equal(t, int64(1), periods[0].Count)
}
