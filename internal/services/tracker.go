package services

import (
	"log"
	"time"

	"vita-balance/internal/database"
	"vita-balance/internal/ledger"
)

// TrackerService - операции над дневниками: каждая мутация проходит через
// дневник и затем сохраняется в БД. Обработчики бота не трогают реестр напрямую.
type TrackerService struct {
	directory *ledger.Directory
	repo      *database.Repository
}

func NewTrackerService(directory *ledger.Directory, repo *database.Repository) *TrackerService {
	return &TrackerService{
		directory: directory,
		repo:      repo,
	}
}

// HasProfile сообщает, настроен ли профиль пользователя
func (ts *TrackerService) HasProfile(userID int64) bool {
	_, err := ts.directory.Get(userID)
	return err == nil
}

// CreateProfile создает дневник из собранного профиля
func (ts *TrackerService) CreateProfile(userID int64, profile ledger.ProfileInput) (ledger.State, error) {
	l, err := ts.directory.Create(userID, profile)
	if err != nil {
		return ledger.State{}, err
	}

	st := l.State()
	if err := ts.repo.SaveState(st); err != nil {
		log.Printf("⚠️ Ошибка сохранения профиля %d: %v", userID, err)
	}
	return st, nil
}

// LogWater записывает выпитую воду
func (ts *TrackerService) LogWater(userID int64, amountMl float64) (total, goal float64, err error) {
	l, err := ts.directory.Get(userID)
	if err != nil {
		return 0, 0, err
	}

	total, goal = l.LogWater(amountMl)
	ts.persist(l)
	return total, goal, nil
}

// LogFood записывает прием пищи
func (ts *TrackerService) LogFood(userID int64, facts ledger.NutritionFacts, amountG float64) (ledger.FoodEntry, float64, error) {
	l, err := ts.directory.Get(userID)
	if err != nil {
		return ledger.FoodEntry{}, 0, err
	}

	entry, total := l.LogFood(facts, amountG, time.Now())
	ts.persist(l)
	return entry, total, nil
}

// LogWorkout записывает тренировку и возвращает запись, итог сожженного
// и новую норму воды
func (ts *TrackerService) LogWorkout(userID int64, workoutType string, durationMinutes int) (ledger.WorkoutEntry, float64, float64, error) {
	l, err := ts.directory.Get(userID)
	if err != nil {
		return ledger.WorkoutEntry{}, 0, 0, err
	}

	entry, burned := l.LogWorkout(workoutType, durationMinutes, time.Now())
	goal := l.State().WaterGoalMl
	ts.persist(l)
	return entry, burned, goal, nil
}

// Progress возвращает дневной прогресс пользователя
func (ts *TrackerService) Progress(userID int64) (ledger.ProgressSnapshot, error) {
	l, err := ts.directory.Get(userID)
	if err != nil {
		return ledger.ProgressSnapshot{}, err
	}
	return l.Progress(), nil
}

// State возвращает срез состояния дневника
func (ts *TrackerService) State(userID int64) (ledger.State, error) {
	l, err := ts.directory.Get(userID)
	if err != nil {
		return ledger.State{}, err
	}
	return l.State(), nil
}

// ResetDay переключает день одного пользователя: итоги в историю,
// счетчики в ноль
func (ts *TrackerService) ResetDay(userID int64) error {
	l, err := ts.directory.Get(userID)
	if err != nil {
		return err
	}

	l.Rollover(time.Now())
	ts.persist(l)
	return nil
}

// RolloverAll переключает день всем пользователям (ночной cron).
// Возвращает количество обработанных дневников.
func (ts *TrackerService) RolloverAll() int {
	now := time.Now()
	count := 0

	for _, userID := range ts.directory.UserIDs() {
		l, err := ts.directory.Get(userID)
		if err != nil {
			continue
		}
		l.Rollover(now)
		ts.persist(l)
		count++
	}

	log.Printf("🌙 Переключение дня выполнено для %d пользователей", count)
	return count
}

func (ts *TrackerService) persist(l *ledger.Ledger) {
	st := l.State()
	if err := ts.repo.SaveState(st); err != nil {
		log.Printf("⚠️ Ошибка сохранения дневника %d: %v", st.UserID, err)
	}
}
