package database

import (
	"fmt"

	"vita-balance/internal/ledger"
)

// Repository сохраняет и загружает состояние дневников.
// Запись идет целиком в одной транзакции: строка пользователя перезаписывается,
// журналы и история пересобираются из среза состояния.
type Repository struct {
	Db *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{Db: db}
}

// SaveState сохраняет полное состояние дневника пользователя
func (r *Repository) SaveState(st ledger.State) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO users
		(user_id, weight, height, age, activity_minutes, city, gender, temperature,
		 base_water_goal, water_goal, calorie_goal,
		 logged_water, logged_calories, burned_calories)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, st.UserID, st.Profile.WeightKg, st.Profile.HeightCm, st.Profile.AgeYears,
		st.Profile.ActivityMinutes, st.Profile.City, string(st.Profile.Gender),
		st.Profile.TemperatureC, st.BaseWaterGoalMl, st.WaterGoalMl, st.CalorieGoal,
		st.LoggedWaterMl, st.LoggedCalories, st.BurnedCalories)
	if err != nil {
		return fmt.Errorf("ошибка сохранения пользователя: %v", err)
	}

	for _, table := range []string{"food_log", "workout_log", "history"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE user_id = ?", st.UserID); err != nil {
			return fmt.Errorf("ошибка очистки %s: %v", table, err)
		}
	}

	for _, f := range st.FoodLog {
		_, err := tx.Exec(`
			INSERT INTO food_log (user_id, date, name, amount, calories, protein, carbs, fat)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, st.UserID, f.Date, f.Name, f.AmountG, f.Calories, f.Protein, f.Carbs, f.Fat)
		if err != nil {
			return fmt.Errorf("ошибка сохранения журнала питания: %v", err)
		}
	}

	for _, w := range st.WorkoutLog {
		_, err := tx.Exec(`
			INSERT INTO workout_log (user_id, date, type, duration, calories, additional_water)
			VALUES (?, ?, ?, ?, ?, ?)
		`, st.UserID, w.Date, w.Type, w.DurationMinutes, w.Calories, w.AdditionalWaterMl)
		if err != nil {
			return fmt.Errorf("ошибка сохранения журнала тренировок: %v", err)
		}
	}

	histories := map[string][]ledger.HistoryEntry{
		"water":    st.WaterHistory,
		"calories": st.CalorieHistory,
		"burned":   st.BurnedHistory,
	}
	for metric, entries := range histories {
		for _, h := range entries {
			_, err := tx.Exec(`
				INSERT INTO history (user_id, metric, date, value)
				VALUES (?, ?, ?, ?)
			`, st.UserID, metric, h.Date, h.Value)
			if err != nil {
				return fmt.Errorf("ошибка сохранения истории: %v", err)
			}
		}
	}

	return tx.Commit()
}

// LoadStates загружает состояния всех пользователей (при старте приложения)
func (r *Repository) LoadStates() ([]ledger.State, error) {
	rows, err := r.Db.db.Query(`
		SELECT user_id, weight, height, age, activity_minutes, city, gender, temperature,
		       base_water_goal, water_goal, calorie_goal,
		       logged_water, logged_calories, burned_calories
		FROM users
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []ledger.State
	for rows.Next() {
		var st ledger.State
		var gender string
		err := rows.Scan(
			&st.UserID,
			&st.Profile.WeightKg,
			&st.Profile.HeightCm,
			&st.Profile.AgeYears,
			&st.Profile.ActivityMinutes,
			&st.Profile.City,
			&gender,
			&st.Profile.TemperatureC,
			&st.BaseWaterGoalMl,
			&st.WaterGoalMl,
			&st.CalorieGoal,
			&st.LoggedWaterMl,
			&st.LoggedCalories,
			&st.BurnedCalories,
		)
		if err != nil {
			return nil, err
		}
		st.Profile.Gender = ledger.Gender(gender)
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range states {
		if err := r.loadLogs(&states[i]); err != nil {
			return nil, err
		}
	}

	return states, nil
}

func (r *Repository) loadLogs(st *ledger.State) error {
	foodRows, err := r.Db.db.Query(`
		SELECT date, name, amount, calories, protein, carbs, fat
		FROM food_log WHERE user_id = ? ORDER BY id
	`, st.UserID)
	if err != nil {
		return err
	}
	defer foodRows.Close()

	for foodRows.Next() {
		var f ledger.FoodEntry
		if err := foodRows.Scan(&f.Date, &f.Name, &f.AmountG, &f.Calories, &f.Protein, &f.Carbs, &f.Fat); err != nil {
			return err
		}
		st.FoodLog = append(st.FoodLog, f)
	}
	if err := foodRows.Err(); err != nil {
		return err
	}

	workoutRows, err := r.Db.db.Query(`
		SELECT date, type, duration, calories, additional_water
		FROM workout_log WHERE user_id = ? ORDER BY id
	`, st.UserID)
	if err != nil {
		return err
	}
	defer workoutRows.Close()

	for workoutRows.Next() {
		var w ledger.WorkoutEntry
		if err := workoutRows.Scan(&w.Date, &w.Type, &w.DurationMinutes, &w.Calories, &w.AdditionalWaterMl); err != nil {
			return err
		}
		st.WorkoutLog = append(st.WorkoutLog, w)
	}
	if err := workoutRows.Err(); err != nil {
		return err
	}

	historyRows, err := r.Db.db.Query(`
		SELECT metric, date, value
		FROM history WHERE user_id = ? ORDER BY id
	`, st.UserID)
	if err != nil {
		return err
	}
	defer historyRows.Close()

	for historyRows.Next() {
		var metric string
		var h ledger.HistoryEntry
		if err := historyRows.Scan(&metric, &h.Date, &h.Value); err != nil {
			return err
		}
		switch metric {
		case "water":
			st.WaterHistory = append(st.WaterHistory, h)
		case "calories":
			st.CalorieHistory = append(st.CalorieHistory, h)
		case "burned":
			st.BurnedHistory = append(st.BurnedHistory, h)
		}
	}
	return historyRows.Err()
}
