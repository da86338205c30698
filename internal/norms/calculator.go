package norms

import (
	"fmt"
	"math"
	"strings"
)

// calculator.go - расчет дневных норм воды и калорий

// caloriesPerMinute - расход калорий в минуту по типам тренировок
// (для веса 70 кг, масштабируется через weightFactor)
var caloriesPerMinute = map[string]float64{
	"бег":       10,
	"ходьба":    5,
	"плавание":  8,
	"велосипед": 7,
	"силовая":   6,
	"йога":      4,
	"аэробика":  8,
	"теннис":    9,
	"футбол":    10,
	"баскетбол": 9,
}

const defaultCaloriesPerMinute = 5

// WorkoutTypes возвращает известные типы тренировок (для клавиатуры)
func WorkoutTypes() []string {
	return []string{"бег", "ходьба", "плавание", "велосипед", "силовая", "йога", "аэробика", "теннис", "футбол", "баскетбол"}
}

// WaterNormMl рассчитывает базовую дневную норму воды в мл.
// Предусловия: weightKg > 0, activityMinutes >= 0 - валидация на стороне вызывающего.
func WaterNormMl(weightKg float64, activityMinutes int, temperatureC float64) float64 {
	base := weightKg * 30

	// Добавка за общую дневную активность
	activityAdd := float64(activityMinutes) / 30 * 500

	// Добавка за жаркую погоду, не больше 1000 мл
	weatherAdd := 0.0
	if temperatureC > 25 {
		weatherAdd = 500 + (temperatureC-25)*100
		if weatherAdd > 1000 {
			weatherAdd = 1000
		}
	}

	return math.Round(base + activityAdd + weatherAdd)
}

// CalorieNorm рассчитывает дневную норму калорий по формуле Миффлина-Сан Жеора.
// gender: "male" или "female" (все прочее считается как "male").
func CalorieNorm(weightKg, heightCm float64, ageYears, activityMinutes int, gender string) float64 {
	var bmr float64
	if strings.ToLower(gender) == "female" {
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(ageYears) - 161
	} else {
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(ageYears) + 5
	}

	var activityFactor float64
	switch {
	case activityMinutes < 30:
		activityFactor = 1.2
	case activityMinutes < 60:
		activityFactor = 1.375
	case activityMinutes < 90:
		activityFactor = 1.55
	default:
		activityFactor = 1.725
	}

	workoutCalories := float64(activityMinutes) * 7

	return math.Round(bmr*activityFactor + workoutCalories)
}

// WorkoutCalories рассчитывает сожженные калории за тренировку.
// Неизвестный тип тренировки получает ставку по умолчанию - это
// осознанная политика таблицы, а не ошибка.
func WorkoutCalories(workoutType string, durationMinutes int, weightKg float64) float64 {
	rate, ok := caloriesPerMinute[strings.ToLower(workoutType)]
	if !ok {
		rate = defaultCaloriesPerMinute
	}
	weightFactor := weightKg / 70

	return math.Round(rate * float64(durationMinutes) * weightFactor)
}

// WorkoutWaterMl рассчитывает дополнительную воду за тренировку:
// 200 мл за каждые полные 30 минут (29 минут -> 0 мл, 30 минут -> 200 мл).
func WorkoutWaterMl(durationMinutes int) int {
	periods := durationMinutes / 30
	return periods * 200
}

// WaterRecommendation возвращает рекомендацию по воде для тренировки
func WaterRecommendation(durationMinutes int) string {
	additional := WorkoutWaterMl(durationMinutes)
	if additional > 0 {
		return fmt.Sprintf("Во время/после тренировки выпейте дополнительно %d мл воды", additional)
	}
	return "Не забывайте пить воду во время тренировки"
}
