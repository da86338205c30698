package services

import (
	"vita-balance/internal/ledger"
)

type FoodStats struct {
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
}

type WorkoutStats struct {
	TotalMinutes  int     `json:"total_minutes"`
	TotalCalories float64 `json:"total_calories"`
}

// DayReport - сводка дня для /stats: прогресс, статистика питания и
// тренировок, последние дни истории и рекомендации
type DayReport struct {
	State           ledger.State            `json:"state"`
	Progress        ledger.ProgressSnapshot `json:"progress"`
	Food            FoodStats               `json:"food"`
	Workouts        WorkoutStats            `json:"workouts"`
	Recommendations []string                `json:"recommendations"`
}

type ReportService struct {
	directory *ledger.Directory
}

func NewReportService(directory *ledger.Directory) *ReportService {
	return &ReportService{
		directory: directory,
	}
}

// DayReport собирает сводку дня для пользователя
func (rs *ReportService) DayReport(userID int64) (*DayReport, error) {
	l, err := rs.directory.Get(userID)
	if err != nil {
		return nil, err
	}

	state := l.State()
	progress := l.Progress()

	report := &DayReport{
		State:    state,
		Progress: progress,
	}

	for _, f := range state.FoodLog {
		report.Food.TotalCalories += f.Calories
		report.Food.TotalProtein += f.Protein
		report.Food.TotalCarbs += f.Carbs
		report.Food.TotalFat += f.Fat
	}

	for _, w := range state.WorkoutLog {
		report.Workouts.TotalMinutes += w.DurationMinutes
		report.Workouts.TotalCalories += w.Calories
	}

	report.Recommendations = Recommendations(
		progress.Water.Percentage,
		progress.Calories.Percentage,
		len(state.WorkoutLog),
	)

	return report, nil
}

// Recommendations формирует советы по порогам прогресса
func Recommendations(waterPercentage, caloriePercentage float64, workoutsCount int) []string {
	var recommendations []string

	switch {
	case waterPercentage < 30:
		recommendations = append(recommendations, "Вы выпили меньше 30% от нормы. Старайтесь пить по стакану воды каждый час.")
	case waterPercentage < 60:
		recommendations = append(recommendations, "Хороший темп! Продолжайте пить воду равномерно в течение дня.")
	case waterPercentage < 90:
		recommendations = append(recommendations, "Отлично! Вы близки к достижению цели по воде.")
	default:
		recommendations = append(recommendations, "Поздравляем! Вы достигли дневной нормы воды!")
	}

	switch {
	case caloriePercentage < 30:
		recommendations = append(recommendations, "У вас еще много калорий в запасе. Не пропускайте приемы пищи.")
	case caloriePercentage < 60:
		recommendations = append(recommendations, "Вы в хорошем темпе. Следующий прием пищи может быть полноценным.")
	case caloriePercentage < 90:
		recommendations = append(recommendations, "Вы близки к цели. Рассмотрите легкий ужин.")
	default:
		recommendations = append(recommendations, "Вы достигли или превысили дневную норму калорий.")
	}

	if workoutsCount == 0 {
		recommendations = append(recommendations, "Сегодня еще не было тренировок. 30 минут ходьбы помогут улучшить метаболизм.")
	}

	return recommendations
}

// LastEntries возвращает последние n записей истории
func LastEntries(history []ledger.HistoryEntry, n int) []ledger.HistoryEntry {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
