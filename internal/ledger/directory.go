package ledger

import (
	"errors"
	"sync"
)

var (
	// ErrAlreadyExists - профиль уже создан
	ErrAlreadyExists = errors.New("профиль уже существует")
	// ErrNotFound - дневник пользователя не найден
	ErrNotFound = errors.New("пользователь не найден")
)

// Directory - реестр дневников по идентификатору пользователя.
// Создается явно при старте процесса и передается зависимостям,
// никакого глобального состояния.
type Directory struct {
	mu      sync.RWMutex
	ledgers map[int64]*Ledger
}

func NewDirectory() *Directory {
	return &Directory{ledgers: make(map[int64]*Ledger)}
}

// Create создает дневник для пользователя. Повторное создание отклоняется.
func (d *Directory) Create(userID int64, profile ProfileInput) (*Ledger, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.ledgers[userID]; ok {
		return nil, ErrAlreadyExists
	}

	l := New(userID, profile)
	d.ledgers[userID] = l
	return l, nil
}

// Get возвращает дневник пользователя
func (d *Directory) Get(userID int64) (*Ledger, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	l, ok := d.ledgers[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return l, nil
}

// Restore регистрирует дневник, восстановленный из БД при старте
func (d *Directory) Restore(state State) (*Ledger, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.ledgers[state.UserID]; ok {
		return nil, ErrAlreadyExists
	}

	l := Restore(state)
	d.ledgers[state.UserID] = l
	return l, nil
}

// UserIDs возвращает идентификаторы всех пользователей
// (для ночного переключения дня)
func (d *Directory) UserIDs() []int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]int64, 0, len(d.ledgers))
	for id := range d.ledgers {
		ids = append(ids, id)
	}
	return ids
}
