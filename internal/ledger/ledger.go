package ledger

import (
	"sync"
	"time"

	"vita-balance/internal/norms"
)

// Ledger - дневник одного пользователя: профиль, дневные счетчики и история.
// Все операции сериализуются мьютексом, чтобы пересчет нормы воды при
// логировании тренировки был атомарным относительно параллельных команд.
type Ledger struct {
	mu    sync.Mutex
	state State
}

// New создает дневник: нормы воды и калорий рассчитываются из профиля
// один раз при создании.
func New(userID int64, profile ProfileInput) *Ledger {
	baseWater := norms.WaterNormMl(profile.WeightKg, profile.ActivityMinutes, profile.TemperatureC)
	calorieGoal := norms.CalorieNorm(profile.WeightKg, profile.HeightCm, profile.AgeYears,
		profile.ActivityMinutes, string(profile.Gender))

	return &Ledger{
		state: State{
			UserID:          userID,
			Profile:         profile,
			BaseWaterGoalMl: baseWater,
			WaterGoalMl:     baseWater,
			CalorieGoal:     calorieGoal,
		},
	}
}

// Restore восстанавливает дневник из сохраненного состояния (загрузка из БД)
func Restore(state State) *Ledger {
	return &Ledger{state: state}
}

// State возвращает копию состояния дневника
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Ledger) snapshot() State {
	st := l.state
	st.FoodLog = append([]FoodEntry(nil), l.state.FoodLog...)
	st.WorkoutLog = append([]WorkoutEntry(nil), l.state.WorkoutLog...)
	st.WaterHistory = append([]HistoryEntry(nil), l.state.WaterHistory...)
	st.CalorieHistory = append([]HistoryEntry(nil), l.state.CalorieHistory...)
	st.BurnedHistory = append([]HistoryEntry(nil), l.state.BurnedHistory...)
	return st
}

// Profile возвращает профиль пользователя
func (l *Ledger) Profile() ProfileInput {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Profile
}

// LogWater добавляет выпитую воду и возвращает дневной итог и норму
func (l *Ledger) LogWater(amountMl float64) (total, goal float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.LoggedWaterMl += amountMl
	return l.state.LoggedWaterMl, l.state.WaterGoalMl
}

// LogFood записывает прием пищи: пищевая ценность на 100 г масштабируется
// к съеденному количеству. Нормы при этом не пересчитываются.
func (l *Ledger) LogFood(facts NutritionFacts, amountG float64, now time.Time) (FoodEntry, float64) {
	entry := FoodEntry{
		Date:     now,
		Name:     facts.Name,
		AmountG:  amountG,
		Calories: facts.CaloriesPer100g * amountG / 100,
		Protein:  facts.ProteinPer100g * amountG / 100,
		Carbs:    facts.CarbsPer100g * amountG / 100,
		Fat:      facts.FatPer100g * amountG / 100,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.FoodLog = append(l.state.FoodLog, entry)
	l.state.LoggedCalories += entry.Calories
	return entry, l.state.LoggedCalories
}

// LogWorkout записывает тренировку и пересчитывает действующую норму воды:
// базовая норма заново выводится из профиля, к ней прибавляется вода за все
// сегодняшние тренировки.
func (l *Ledger) LogWorkout(workoutType string, durationMinutes int, now time.Time) (WorkoutEntry, float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := WorkoutEntry{
		Date:              now,
		Type:              workoutType,
		DurationMinutes:   durationMinutes,
		Calories:          norms.WorkoutCalories(workoutType, durationMinutes, l.state.Profile.WeightKg),
		AdditionalWaterMl: float64(norms.WorkoutWaterMl(durationMinutes)),
	}

	l.state.WorkoutLog = append(l.state.WorkoutLog, entry)
	l.state.BurnedCalories += entry.Calories

	base := norms.WaterNormMl(l.state.Profile.WeightKg, l.state.Profile.ActivityMinutes,
		l.state.Profile.TemperatureC)

	additional := 0.0
	for _, w := range l.state.WorkoutLog {
		if sameDay(w.Date, now) {
			additional += w.AdditionalWaterMl
		}
	}

	l.state.BaseWaterGoalMl = base
	l.state.WaterGoalMl = base + additional

	return entry, l.state.BurnedCalories
}

// Progress возвращает срез дневного прогресса
func (l *Ledger) Progress() ProgressSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := l.state

	waterRemaining := st.WaterGoalMl - st.LoggedWaterMl
	if waterRemaining < 0 {
		waterRemaining = 0
	}
	waterPercentage := 0.0
	if st.WaterGoalMl > 0 {
		waterPercentage = st.LoggedWaterMl / st.WaterGoalMl * 100
	}

	balance := st.LoggedCalories - st.BurnedCalories
	calorieRemaining := st.CalorieGoal - balance
	if calorieRemaining < 0 {
		calorieRemaining = 0
	}
	caloriePercentage := 0.0
	if st.CalorieGoal > 0 {
		caloriePercentage = balance / st.CalorieGoal * 100
	}

	return ProgressSnapshot{
		Water: WaterProgress{
			Logged:     st.LoggedWaterMl,
			Goal:       st.WaterGoalMl,
			Remaining:  waterRemaining,
			Percentage: waterPercentage,
		},
		Calories: CalorieProgress{
			Logged:     st.LoggedCalories,
			Burned:     st.BurnedCalories,
			Balance:    balance,
			Goal:       st.CalorieGoal,
			Remaining:  calorieRemaining,
			Percentage: caloriePercentage,
		},
	}
}

// Rollover архивирует дневные итоги в историю и обнуляет счетчики.
// Нормы воды и калорий при этом сохраняются как действующие цели.
func (l *Ledger) Rollover(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	date := now.Format("2006-01-02")

	l.state.WaterHistory = append(l.state.WaterHistory, HistoryEntry{Date: date, Value: l.state.LoggedWaterMl})
	l.state.CalorieHistory = append(l.state.CalorieHistory, HistoryEntry{Date: date, Value: l.state.LoggedCalories})
	l.state.BurnedHistory = append(l.state.BurnedHistory, HistoryEntry{Date: date, Value: l.state.BurnedCalories})

	l.state.LoggedWaterMl = 0
	l.state.LoggedCalories = 0
	l.state.BurnedCalories = 0
	l.state.FoodLog = nil
	l.state.WorkoutLog = nil
}

// sameDay сравнивает календарные дни по распарсенным датам,
// а не по подстроке в строке времени
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
