package entity

import (
	"time"
)

// Метки временных периодов (декады)
const (
	Period1990s = "1990s"
	Period2000s = "2000s"
	Period2010s = "2010s"
	Period2020s = "2020s"
	PeriodOther = "Other"
)

// Milestone представляет историческую веху, которую пользователь открывает, пройдя её квиз
type Milestone struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Year        int       `gorm:"not null;index" json:"year"`
	Description string    `gorm:"type:text;not null" json:"description"`
	MediaURL    string    `gorm:"type:text;default:''" json:"media_url"`
	MarkerID    string    `gorm:"size:50;not null;uniqueIndex" json:"marker_id"` // внешний идентификатор AR-маркера
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Milestone) TableName() string {
	return "milestones"
}

// TimePeriod возвращает производный временной период вехи
func (m *Milestone) TimePeriod() string {
	return TimePeriodForYear(m.Year)
}

// TimePeriodForYear возвращает декадную метку периода для заданного года.
// Годы вне диапазона 1990–2029 попадают в "Other".
func TimePeriodForYear(year int) string {
	switch {
	case year >= 1990 && year <= 1999:
		return Period1990s
	case year >= 2000 && year <= 2009:
		return Period2000s
	case year >= 2010 && year <= 2019:
		return Period2010s
	case year >= 2020 && year <= 2029:
		return Period2020s
	default:
		return PeriodOther
	}
}

// TimePeriodSQL — SQL-выражение той же декадной классификации для GROUP BY запросов.
// Должно оставаться согласованным с TimePeriodForYear.
const TimePeriodSQL = `CASE
	WHEN milestones.year BETWEEN 1990 AND 1999 THEN '1990s'
	WHEN milestones.year BETWEEN 2000 AND 2009 THEN '2000s'
	WHEN milestones.year BETWEEN 2010 AND 2019 THEN '2010s'
	WHEN milestones.year BETWEEN 2020 AND 2029 THEN '2020s'
	ELSE 'Other'
END`
