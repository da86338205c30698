package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Weather struct {
		APIKey             string        `yaml:"api_key"`
		DefaultTemperature float64       `yaml:"default_temperature"`
		Timeout            time.Duration `yaml:"timeout"`
	} `yaml:"weather"`
	Nutrition struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"nutrition"`
}

func Load() (*Config, error) {
	// .env необязателен: в проде переменные приходят из окружения
	if err := godotenv.Load(); err == nil {
		log.Println("✅ Загружен .env файл")
	}

	token := getEnv("TG_TOKEN", "")
	if token == "" {
		log.Fatal("❌ TG_TOKEN не установлен. Установите переменную окружения или создайте .env файл")
	}

	cfg := &Config{}
	cfg.Telegram.Token = token
	cfg.Database.Path = getEnv("DB_PATH", "/data/vita-balance.db")
	cfg.Weather.APIKey = getEnv("OPENWEATHER_API_KEY", "")
	cfg.Weather.DefaultTemperature = getEnvFloat("DEFAULT_TEMPERATURE", 20.0)
	cfg.Weather.Timeout = getEnvSeconds("WEATHER_API_TIMEOUT", 10)
	cfg.Nutrition.Timeout = getEnvSeconds("NUTRITION_API_TIMEOUT", 10)

	if cfg.Weather.APIKey == "" {
		log.Printf("⚠️ OPENWEATHER_API_KEY не установлен: будет использоваться температура %.1f°C",
			cfg.Weather.DefaultTemperature)
	}

	log.Printf("✅ Конфигурация загружена: БД=%s", cfg.Database.Path)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("❌ Неверное значение %s: %v", key, err)
	}
	return f
}

func getEnvSeconds(key string, defaultValue int) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return time.Duration(defaultValue) * time.Second
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("❌ Неверное значение %s: %v", key, err)
	}
	return time.Duration(n) * time.Second
}
