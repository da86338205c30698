package ledger

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

func testProfile() ProfileInput {
	return ProfileInput{
		WeightKg:        70,
		HeightCm:        175,
		AgeYears:        30,
		ActivityMinutes: 45,
		City:            "Москва",
		Gender:          Male,
		TemperatureC:    20,
	}
}

func testFacts() NutritionFacts {
	return NutritionFacts{
		Name:            "Банан",
		CaloriesPer100g: 89,
		ProteinPer100g:  1.1,
		CarbsPer100g:    22.8,
		FatPer100g:      0.3,
	}
}

func TestNewLedgerComputesGoals(t *testing.T) {
	l := New(1, testProfile())
	st := l.State()

	// 70*30 + 45/30*500 = 2850
	if st.BaseWaterGoalMl != 2850 {
		t.Errorf("базовая норма воды = %v, ожидалось 2850", st.BaseWaterGoalMl)
	}
	if st.WaterGoalMl != st.BaseWaterGoalMl {
		t.Errorf("действующая норма %v должна совпадать с базовой %v при создании",
			st.WaterGoalMl, st.BaseWaterGoalMl)
	}
	if st.CalorieGoal != 2458 {
		t.Errorf("норма калорий = %v, ожидалось 2458", st.CalorieGoal)
	}
}

func TestLogFoodScalesToAmount(t *testing.T) {
	l := New(1, testProfile())
	entry, total := l.LogFood(testFacts(), 150, time.Now())

	if entry.Calories != 89*1.5 {
		t.Errorf("калории = %v, ожидалось %v", entry.Calories, 89*1.5)
	}
	if diff := entry.Protein - 1.65; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("белки = %v, ожидалось 1.65", entry.Protein)
	}
	if total != entry.Calories {
		t.Errorf("дневной итог = %v, ожидалось %v", total, entry.Calories)
	}

	st := l.State()
	if len(st.FoodLog) != 1 {
		t.Fatalf("в журнале питания %d записей, ожидалась 1", len(st.FoodLog))
	}
}

func TestLogWorkoutRecomputesWaterGoal(t *testing.T) {
	l := New(1, testProfile())
	base := l.State().BaseWaterGoalMl
	now := time.Now()

	entry, burned := l.LogWorkout("бег", 30, now)
	if entry.Calories != 300 {
		t.Errorf("сожжено за тренировку = %v, ожидалось 300", entry.Calories)
	}
	if entry.AdditionalWaterMl != 200 {
		t.Errorf("дополнительная вода = %v, ожидалось 200", entry.AdditionalWaterMl)
	}
	if burned != 300 {
		t.Errorf("итог сожженного = %v, ожидалось 300", burned)
	}

	if got := l.State().WaterGoalMl; got != base+200 {
		t.Errorf("норма воды после тренировки = %v, ожидалось %v", got, base+200)
	}

	// Вторая тренировка того же дня суммируется, а не затирает
	l.LogWorkout("йога", 60, now)
	if got := l.State().WaterGoalMl; got != base+200+400 {
		t.Errorf("норма воды после двух тренировок = %v, ожидалось %v", got, base+600)
	}
}

func TestLogWorkoutShortSessionKeepsGoal(t *testing.T) {
	l := New(1, testProfile())
	base := l.State().WaterGoalMl

	l.LogWorkout("ходьба", 29, time.Now())
	if got := l.State().WaterGoalMl; got != base {
		t.Errorf("норма воды = %v, 29-минутная тренировка не должна ее менять (%v)", got, base)
	}
}

func TestLogWorkoutIgnoresOtherDays(t *testing.T) {
	l := New(1, testProfile())
	base := l.State().BaseWaterGoalMl

	yesterday := time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC)
	today := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	l.LogWorkout("бег", 30, yesterday)
	l.LogWorkout("бег", 30, today)

	// Вчерашняя тренировка не входит в сегодняшнюю добавку
	if got := l.State().WaterGoalMl; got != base+200 {
		t.Errorf("норма воды = %v, ожидалось %v (только сегодняшняя тренировка)", got, base+200)
	}
}

func TestConcurrentWorkoutsDoNotRace(t *testing.T) {
	l := New(1, testProfile())
	base := l.State().BaseWaterGoalMl
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.LogWorkout("бег", 30, now)
		}()
	}
	wg.Wait()

	// Итог как при последовательных вызовах: ни потерь, ни двойного счета
	if got := l.State().WaterGoalMl; got != base+400 {
		t.Errorf("норма воды после двух параллельных тренировок = %v, ожидалось %v", got, base+400)
	}
	if got := l.State().BurnedCalories; got != 600 {
		t.Errorf("сожжено = %v, ожидалось 600", got)
	}
}

func TestProgress(t *testing.T) {
	l := New(1, testProfile())
	l.LogWater(1000)
	l.LogFood(testFacts(), 200, time.Now()) // 178 ккал
	l.LogWorkout("бег", 30, time.Now())     // 300 ккал, +200 мл

	p := l.Progress()

	if p.Water.Logged != 1000 || p.Water.Goal != 3050 {
		t.Errorf("вода: logged=%v goal=%v, ожидалось 1000/3050", p.Water.Logged, p.Water.Goal)
	}
	if p.Water.Remaining != 2050 {
		t.Errorf("остаток воды = %v, ожидалось 2050", p.Water.Remaining)
	}

	// Баланс может быть отрицательным и не ограничивается нулем
	if p.Calories.Balance != 178-300 {
		t.Errorf("баланс калорий = %v, ожидалось %v", p.Calories.Balance, 178-300)
	}
	if p.Calories.Remaining != 2458-(178-300) {
		t.Errorf("остаток калорий = %v, ожидалось %v", p.Calories.Remaining, 2458.0-(178-300))
	}
}

func TestProgressIdempotent(t *testing.T) {
	l := New(1, testProfile())
	l.LogWater(500)
	l.LogWorkout("бег", 45, time.Now())

	first := l.Progress()
	second := l.Progress()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("повторный Progress без мутаций дал другой срез:\n%+v\n%+v", first, second)
	}
}

func TestRemainingClampedAtZero(t *testing.T) {
	l := New(1, testProfile())
	l.LogWater(10000)

	p := l.Progress()
	if p.Water.Remaining != 0 {
		t.Errorf("остаток воды = %v, ожидался 0 при перевыполнении", p.Water.Remaining)
	}
}

func TestRollover(t *testing.T) {
	l := New(1, testProfile())
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	l.LogWater(1500)
	l.LogFood(testFacts(), 100, now)
	l.LogWorkout("бег", 30, now)

	before := l.State()
	l.Rollover(now)
	after := l.State()

	// Ровно по одной записи истории на метрику с дневными итогами
	if len(after.WaterHistory) != 1 || after.WaterHistory[0].Value != 1500 {
		t.Errorf("история воды = %+v, ожидалась одна запись 1500", after.WaterHistory)
	}
	if len(after.CalorieHistory) != 1 || after.CalorieHistory[0].Value != 89 {
		t.Errorf("история калорий = %+v, ожидалась одна запись 89", after.CalorieHistory)
	}
	if len(after.BurnedHistory) != 1 || after.BurnedHistory[0].Value != 300 {
		t.Errorf("история сожженного = %+v, ожидалась одна запись 300", after.BurnedHistory)
	}
	if after.WaterHistory[0].Date != "2026-08-30" {
		t.Errorf("дата записи = %s, ожидалось 2026-08-30", after.WaterHistory[0].Date)
	}

	// Дневные счетчики и журналы очищены
	if after.LoggedWaterMl != 0 || after.LoggedCalories != 0 || after.BurnedCalories != 0 {
		t.Errorf("счетчики не обнулены: %+v", after)
	}
	if len(after.FoodLog) != 0 || len(after.WorkoutLog) != 0 {
		t.Errorf("журналы не очищены: еда=%d тренировки=%d", len(after.FoodLog), len(after.WorkoutLog))
	}

	// Нормы сохраняются как действующие цели
	if after.WaterGoalMl != before.WaterGoalMl || after.CalorieGoal != before.CalorieGoal {
		t.Errorf("нормы изменились при переключении дня: %v/%v -> %v/%v",
			before.WaterGoalMl, before.CalorieGoal, after.WaterGoalMl, after.CalorieGoal)
	}
}

func TestRolloverHistoryAppendOnly(t *testing.T) {
	l := New(1, testProfile())
	day1 := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)

	l.LogWater(1000)
	l.Rollover(day1)
	l.LogWater(2000)
	l.Rollover(day2)

	st := l.State()
	if len(st.WaterHistory) != 2 {
		t.Fatalf("в истории %d записей, ожидалось 2", len(st.WaterHistory))
	}
	if st.WaterHistory[0].Value != 1000 || st.WaterHistory[1].Value != 2000 {
		t.Errorf("порядок истории нарушен: %+v", st.WaterHistory)
	}
}

func TestDirectory(t *testing.T) {
	d := NewDirectory()

	if _, err := d.Get(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get до создания: err = %v, ожидалось ErrNotFound", err)
	}

	if _, err := d.Create(42, testProfile()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := d.Create(42, testProfile()); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("повторный Create: err = %v, ожидалось ErrAlreadyExists", err)
	}

	l, err := d.Get(42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if l.State().UserID != 42 {
		t.Errorf("UserID = %d, ожидалось 42", l.State().UserID)
	}
}

func TestDirectoryRestore(t *testing.T) {
	d := NewDirectory()
	st := New(7, testProfile()).State()
	st.LoggedWaterMl = 500

	if _, err := d.Restore(st); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	l, err := d.Get(7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if l.State().LoggedWaterMl != 500 {
		t.Errorf("LoggedWaterMl = %v, ожидалось 500", l.State().LoggedWaterMl)
	}
}
