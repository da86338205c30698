package ledger

import "time"

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ProfileInput - данные профиля, собранные при настройке.
// После создания дневника не меняются.
type ProfileInput struct {
	WeightKg        float64 `json:"weight_kg"`
	HeightCm        float64 `json:"height_cm"`
	AgeYears        int     `json:"age_years"`
	ActivityMinutes int     `json:"activity_minutes"`
	City            string  `json:"city"`
	Gender          Gender  `json:"gender"`
	TemperatureC    float64 `json:"temperature_c"`
}

// NutritionFacts - пищевая ценность продукта на 100 г
type NutritionFacts struct {
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
}

type FoodEntry struct {
	Date     time.Time `json:"date"`
	Name     string    `json:"name"`
	AmountG  float64   `json:"amount_g"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
}

type WorkoutEntry struct {
	Date              time.Time `json:"date"`
	Type              string    `json:"type"`
	DurationMinutes   int       `json:"duration_minutes"`
	Calories          float64   `json:"calories"`
	AdditionalWaterMl float64   `json:"additional_water_ml"`
}

// HistoryEntry - одна запись истории за день (append-only)
type HistoryEntry struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

type WaterProgress struct {
	Logged     float64 `json:"logged"`
	Goal       float64 `json:"goal"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

type CalorieProgress struct {
	Logged     float64 `json:"logged"`
	Burned     float64 `json:"burned"`
	Balance    float64 `json:"balance"`
	Goal       float64 `json:"goal"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// ProgressSnapshot - срез дневного прогресса, только для чтения
type ProgressSnapshot struct {
	Water    WaterProgress   `json:"water"`
	Calories CalorieProgress `json:"calories"`
}

// State - полное сериализуемое состояние дневника одного пользователя.
// Именно этот срез хранится в БД и отдается презентационному слою.
type State struct {
	UserID          int64          `json:"user_id"`
	Profile         ProfileInput   `json:"profile"`
	BaseWaterGoalMl float64        `json:"base_water_goal_ml"`
	WaterGoalMl     float64        `json:"water_goal_ml"`
	CalorieGoal     float64        `json:"calorie_goal"`
	LoggedWaterMl   float64        `json:"logged_water_ml"`
	LoggedCalories  float64        `json:"logged_calories"`
	BurnedCalories  float64        `json:"burned_calories"`
	FoodLog         []FoodEntry    `json:"food_log"`
	WorkoutLog      []WorkoutEntry `json:"workout_log"`
	WaterHistory    []HistoryEntry `json:"water_history"`
	CalorieHistory  []HistoryEntry `json:"calorie_history"`
	BurnedHistory   []HistoryEntry `json:"burned_history"`
}
