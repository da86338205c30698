package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db *sql.DB
}

func New(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия БД: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %v", err)
	}

	d := &Database{db: db}
	if err := d.init(); err != nil {
		return nil, err
	}

	log.Printf("✅ База данных инициализирована: %s", path)
	return d, nil
}

func (d *Database) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			weight REAL NOT NULL,
			height REAL NOT NULL,
			age INTEGER NOT NULL,
			activity_minutes INTEGER NOT NULL,
			city TEXT,
			gender TEXT NOT NULL,
			temperature REAL NOT NULL,
			base_water_goal REAL NOT NULL,
			water_goal REAL NOT NULL,
			calorie_goal REAL NOT NULL,
			logged_water REAL NOT NULL DEFAULT 0,
			logged_calories REAL NOT NULL DEFAULT 0,
			burned_calories REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS food_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			date DATETIME NOT NULL,
			name TEXT NOT NULL,
			amount REAL NOT NULL,
			calories REAL NOT NULL,
			protein REAL NOT NULL DEFAULT 0,
			carbs REAL NOT NULL DEFAULT 0,
			fat REAL NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS workout_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			date DATETIME NOT NULL,
			type TEXT NOT NULL,
			duration INTEGER NOT NULL,
			calories REAL NOT NULL,
			additional_water REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			metric TEXT NOT NULL,
			date TEXT NOT NULL,
			value REAL NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_food_log_user ON food_log(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_workout_log_user ON workout_log(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user ON history(user_id, metric)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("ошибка создания таблицы: %v", err)
		}
	}

	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}
