package entity

import (
	"time"
)

// Редкости значков
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Виды требований для получения значка
const (
	RequirementTimePeriod    = "time_period"    // открыть хотя бы одну веху указанного периода
	RequirementAllMilestones = "all_milestones" // открыть все вехи
	RequirementAccuracy      = "accuracy"       // точность ответов не ниже порога (в процентах)
)

// Badge представляет значок, выданный пользователю.
// Уникальность пары (user_id, badge_id) закрывает гонку при параллельной проверке.
type Badge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID   string    `gorm:"size:50;not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	BadgeName string    `gorm:"size:100;not null" json:"badge_name"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

// TableName определяет имя таблицы для GORM
func (Badge) TableName() string {
	return "badges"
}

// BadgeDefinition описывает значок из каталога и условие его получения
type BadgeDefinition struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Icon             string `json:"icon"`
	Rarity           string `json:"rarity"`
	RequirementKind  string `json:"requirement_kind"`
	RequirementValue string `json:"requirement_value"` // метка периода или порог точности
}

// BadgeCatalog — неизменяемый каталог всех значков системы.
// Порядок соответствует порядку отображения в клиенте.
var BadgeCatalog = []BadgeDefinition{
	{
		ID:               "pioneer_90s",
		Name:             "Pioneer Era",
		Description:      "Unlock a milestone from the 1990s",
		Icon:             "🏛️",
		Rarity:           RarityCommon,
		RequirementKind:  RequirementTimePeriod,
		RequirementValue: Period1990s,
	},
	{
		ID:               "digital_2000s",
		Name:             "Digital Revolution",
		Description:      "Unlock a milestone from the 2000s",
		Icon:             "💻",
		Rarity:           RarityCommon,
		RequirementKind:  RequirementTimePeriod,
		RequirementValue: Period2000s,
	},
	{
		ID:               "innovation_2010s",
		Name:             "Innovation Leader",
		Description:      "Unlock a milestone from the 2010s",
		Icon:             "🚀",
		Rarity:           RarityRare,
		RequirementKind:  RequirementTimePeriod,
		RequirementValue: Period2010s,
	},
	{
		ID:               "future_2020s",
		Name:             "Future Vision",
		Description:      "Unlock a milestone from the 2020s",
		Icon:             "🔮",
		Rarity:           RarityRare,
		RequirementKind:  RequirementTimePeriod,
		RequirementValue: Period2020s,
	},
	{
		ID:              "time_master",
		Name:            "Time Master",
		Description:     "Unlock every milestone in the time machine",
		Icon:            "⏳",
		Rarity:          RarityLegendary,
		RequirementKind: RequirementAllMilestones,
	},
	{
		ID:               "quiz_expert",
		Name:             "Knowledge Expert",
		Description:      "Achieve at least 80% quiz accuracy",
		Icon:             "🎓",
		Rarity:           RarityEpic,
		RequirementKind:  RequirementAccuracy,
		RequirementValue: "80",
	},
}

// QuizExpertAccuracyThreshold — порог точности (в процентах) для значка quiz_expert
const QuizExpertAccuracyThreshold = 80.0

// BadgeByID ищет определение значка в каталоге по его идентификатору
func BadgeByID(id string) (BadgeDefinition, bool) {
	for _, def := range BadgeCatalog {
		if def.ID == id {
			return def, true
		}
	}
	return BadgeDefinition{}, false
}

// BadgeForTimePeriod ищет значок, требующий открытия вехи указанного периода.
// Поиск по каталогу, а не выведение id из метки периода: метка и id значка
// связаны только содержимым каталога.
func BadgeForTimePeriod(period string) (BadgeDefinition, bool) {
	for _, def := range BadgeCatalog {
		if def.RequirementKind == RequirementTimePeriod && def.RequirementValue == period {
			return def, true
		}
	}
	return BadgeDefinition{}, false
}
