package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimePeriodForYear_Decades(t *testing.T) {
	// Arrange
	testCases := []struct {
		name     string
		year     int
		expected string
	}{
		{"начало 1990-х", 1990, Period1990s},
		{"конец 1990-х", 1999, Period1990s},
		{"начало 2000-х", 2000, Period2000s},
		{"конец 2000-х", 2009, Period2000s},
		{"начало 2010-х", 2010, Period2010s},
		{"конец 2010-х", 2019, Period2010s},
		{"начало 2020-х", 2020, Period2020s},
		{"конец 2020-х", 2029, Period2020s},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act & Assert
			assert.Equal(t, tc.expected, TimePeriodForYear(tc.year))
		})
	}
}

func TestTimePeriodForYear_OutOfRange(t *testing.T) {
	// Act & Assert: годы вне диапазона 1990–2029 попадают в "Other"
	assert.Equal(t, PeriodOther, TimePeriodForYear(1989), "1989 должен попасть в Other")
	assert.Equal(t, PeriodOther, TimePeriodForYear(2030), "2030 должен попасть в Other")
	assert.Equal(t, PeriodOther, TimePeriodForYear(1889), "XIX век должен попасть в Other")
	assert.Equal(t, PeriodOther, TimePeriodForYear(0), "Нулевой год должен попасть в Other")
}

func TestMilestone_TimePeriod(t *testing.T) {
	// Arrange
	milestone := &Milestone{
		ID:       1,
		Title:    "Запуск первого компьютерного класса",
		Year:     2005,
		MarkerID: "marker_lab",
	}

	// Act & Assert
	assert.Equal(t, Period2000s, milestone.TimePeriod(), "Веха 2005 года должна относиться к периоду 2000s")
}

func TestMilestone_TableName(t *testing.T) {
	milestone := Milestone{}
	assert.Equal(t, "milestones", milestone.TableName(), "TableName должен возвращать 'milestones'")
}
