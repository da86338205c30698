package utils

import (
	"fmt"
	"time"
)

var (
	moscowLocation *time.Location
)

func init() {
	// Пытаемся загрузить локацию Москвы
	var err error
	moscowLocation, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		// Fallback: UTC+3
		moscowLocation = time.FixedZone("MSK", 3*60*60)
	}
}

// MoscowLocation возвращает локацию для отображения дат пользователю
func MoscowLocation() *time.Location {
	return moscowLocation
}

// GetCurrentMSKDate возвращает текущую дату в МСК
func GetCurrentMSKDate() string {
	now := time.Now().In(moscowLocation)
	return now.Format("2006-01-02")
}

// GetCurrentMSKTime возвращает текущее время в МСК
func GetCurrentMSKTime() string {
	now := time.Now().In(moscowLocation)
	return now.Format("15:04")
}

// GetTimezoneInfo возвращает информацию о временной зоне
func GetTimezoneInfo() string {
	nowUTC := time.Now().UTC()
	nowMSK := nowUTC.In(moscowLocation)

	_, offset := nowMSK.Zone()
	offsetHours := offset / 3600

	return fmt.Sprintf("🕐 Текущее время: %s МСК (UTC+%d)", nowMSK.Format("15:04"), offsetHours)
}
