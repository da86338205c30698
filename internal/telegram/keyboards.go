package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vita-balance/internal/norms"
)

// createGenderKeyboard создает клавиатуру для выбора пола
func createGenderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Мужской", "gender_male"),
			tgbotapi.NewInlineKeyboardButtonData("Женский", "gender_female"),
		),
	)
}

// createActivityKeyboard создает клавиатуру для выбора уровня активности
func createActivityKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Менее 30 мин", "activity_low"),
			tgbotapi.NewInlineKeyboardButtonData("30-60 мин", "activity_medium"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("60-90 мин", "activity_high"),
			tgbotapi.NewInlineKeyboardButtonData("Более 90 мин", "activity_very_high"),
		),
	)
}

// activityMinutes - соответствие кнопок активности минутам в день
var activityMinutes = map[string]int{
	"activity_low":       15,
	"activity_medium":    45,
	"activity_high":      75,
	"activity_very_high": 120,
}

// createWorkoutKeyboard создает клавиатуру с типами тренировок из таблицы норм
func createWorkoutKeyboard() tgbotapi.InlineKeyboardMarkup {
	types := norms.WorkoutTypes()

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(types); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(capitalize(types[i]), "workout_"+types[i]),
		}
		if i+1 < len(types) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(capitalize(types[i+1]), "workout_"+types[i+1]))
		}
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
