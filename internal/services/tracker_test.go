package services

import (
	"errors"
	"path/filepath"
	"testing"

	"vita-balance/internal/database"
	"vita-balance/internal/ledger"
)

func testTracker(t *testing.T) *TrackerService {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("открытие БД: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewTrackerService(ledger.NewDirectory(), database.NewRepository(db))
}

func TestTrackerUnknownUser(t *testing.T) {
	ts := testTracker(t)

	if _, _, err := ts.LogWater(404, 500); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("LogWater: err = %v, ожидалось ErrNotFound", err)
	}
	if _, _, err := ts.LogFood(404, ledger.NutritionFacts{}, 100); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("LogFood: err = %v, ожидалось ErrNotFound", err)
	}
	if _, _, _, err := ts.LogWorkout(404, "бег", 30); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("LogWorkout: err = %v, ожидалось ErrNotFound", err)
	}
	if err := ts.ResetDay(404); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("ResetDay: err = %v, ожидалось ErrNotFound", err)
	}
	if ts.HasProfile(404) {
		t.Error("HasProfile для неизвестного пользователя должен быть false")
	}
}

func TestTrackerCreateAndLogPersists(t *testing.T) {
	ts := testTracker(t)

	profile := ledger.ProfileInput{
		WeightKg: 70, HeightCm: 175, AgeYears: 30,
		ActivityMinutes: 45, Gender: ledger.Male, TemperatureC: 20,
	}

	state, err := ts.CreateProfile(1, profile)
	if err != nil {
		t.Fatalf("создание профиля: %v", err)
	}
	if state.WaterGoalMl != 2850 || state.CalorieGoal != 2458 {
		t.Errorf("нормы = %v/%v, ожидалось 2850/2458", state.WaterGoalMl, state.CalorieGoal)
	}

	if _, err := ts.CreateProfile(1, profile); !errors.Is(err, ledger.ErrAlreadyExists) {
		t.Errorf("повторное создание: err = %v, ожидалось ErrAlreadyExists", err)
	}

	total, goal, err := ts.LogWater(1, 700)
	if err != nil {
		t.Fatalf("запись воды: %v", err)
	}
	if total != 700 || goal != 2850 {
		t.Errorf("итог/норма = %v/%v, ожидалось 700/2850", total, goal)
	}

	// Состояние сохранилось в БД вместе с мутацией
	states, err := ts.repo.LoadStates()
	if err != nil {
		t.Fatalf("загрузка: %v", err)
	}
	if len(states) != 1 || states[0].LoggedWaterMl != 700 {
		t.Errorf("в БД %+v, ожидалась одна запись с водой 700", states)
	}
}

func TestTrackerRolloverAll(t *testing.T) {
	ts := testTracker(t)

	profile := ledger.ProfileInput{
		WeightKg: 70, HeightCm: 175, AgeYears: 30,
		ActivityMinutes: 45, Gender: ledger.Male, TemperatureC: 20,
	}

	for _, id := range []int64{1, 2, 3} {
		if _, err := ts.CreateProfile(id, profile); err != nil {
			t.Fatalf("создание профиля %d: %v", id, err)
		}
		if _, _, err := ts.LogWater(id, 1000); err != nil {
			t.Fatalf("запись воды %d: %v", id, err)
		}
	}

	if count := ts.RolloverAll(); count != 3 {
		t.Errorf("обработано %d дневников, ожидалось 3", count)
	}

	st, err := ts.State(2)
	if err != nil {
		t.Fatalf("состояние: %v", err)
	}
	if st.LoggedWaterMl != 0 || len(st.WaterHistory) != 1 || st.WaterHistory[0].Value != 1000 {
		t.Errorf("после переключения дня: %+v", st)
	}
}
