package telegram

import (
	"sync"

	"vita-balance/internal/ledger"
)

// fsm.go - состояние многошаговых диалогов (настройка профиля,
// количество еды, тип и длительность тренировки)

type dialogStep int

const (
	stepWeight dialogStep = iota + 1
	stepHeight
	stepAge
	stepActivity
	stepCity
	stepGender
	stepFoodAmount
	stepWorkoutType
	stepWorkoutDuration
)

// session - незавершенный диалог одного пользователя
type session struct {
	step        dialogStep
	profile     ledger.ProfileInput
	food        ledger.NutritionFacts
	workoutType string
}

type sessions struct {
	mu sync.Mutex
	m  map[int64]*session
}

func newSessions() *sessions {
	return &sessions{m: make(map[int64]*session)}
}

func (s *sessions) get(userID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[userID]
}

func (s *sessions) start(userID int64, step dialogStep) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &session{step: step}
	s.m[userID] = sess
	return sess
}

func (s *sessions) clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}
