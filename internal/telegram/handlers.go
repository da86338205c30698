package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vita-balance/internal/ledger"
	"vita-balance/internal/norms"
	"vita-balance/internal/provider/openfoodfacts"
	"vita-balance/internal/services"
	"vita-balance/internal/utils"
)

// handlers.go - обработчики команд Telegram бота

const profileRequired = "Сначала настройте профиль: /set_profile"

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	message := `💧 <b>Трекер воды, питания и тренировок</b>

Я помогу следить за дневными нормами воды и калорий,
рассчитанными по вашему профилю и погоде в вашем городе.

Доступные команды:
/set_profile - Настроить профиль
/log_water [мл] - Записать воду
/log_food [продукт] - Записать питание
/log_workout - Записать тренировку
/check_progress - Прогресс за день
/recommend - Рекомендации
/stats - Подробная статистика
/reset_day - Начать новый день
/help - Помощь

Пример:
/log_water 500
/log_food банан`

	b.reply(msg.Chat.ID, message)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	message := `📚 <b>Список команд</b>

<b>Профиль:</b>
/set_profile - Настроить профиль (вес, рост, возраст, активность, город, пол)
Нормы воды и калорий рассчитываются автоматически.

<b>Дневник:</b>
/log_water [мл] - Записать выпитую воду
Пример: /log_water 500

/log_food [продукт] - Записать питание (поиск по базе продуктов)
Пример: /log_food банан

/log_workout - Записать тренировку (тип и длительность)
Норма воды увеличивается на 200 мл за каждые 30 минут тренировки.

<b>Прогресс:</b>
/check_progress - Вода и калории за день
/recommend - Рекомендации на основе прогресса
/stats - Полная статистика с историей за последние дни

<b>Новый день:</b>
/reset_day - Записать итоги в историю и обнулить счетчики
(также происходит автоматически в полночь)`

	b.reply(msg.Chat.ID, message)
}

// --- Настройка профиля ---

func (b *Bot) handleSetProfile(msg *tgbotapi.Message) {
	userID := msg.From.ID

	if b.services.Tracker.HasProfile(userID) {
		b.reply(msg.Chat.ID, "У вас уже есть профиль. Повторная настройка не поддерживается.")
		return
	}

	b.sessions.start(userID, stepWeight)
	b.reply(msg.Chat.ID, "Давайте настроим ваш профиль!\n\nВведите ваш вес (в кг):")
}

// handleDialogInput обрабатывает текстовые шаги незавершенных диалогов
func (b *Bot) handleDialogInput(msg *tgbotapi.Message, sess *session) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch sess.step {
	case stepWeight:
		weight, err := strconv.ParseFloat(text, 64)
		if err != nil || weight <= 0 {
			b.reply(chatID, "Пожалуйста, введите положительное число (например: 70):")
			return
		}
		sess.profile.WeightKg = weight
		sess.step = stepHeight
		b.reply(chatID, "Теперь введите ваш рост (в см):")

	case stepHeight:
		height, err := strconv.ParseFloat(text, 64)
		if err != nil || height <= 0 {
			b.reply(chatID, "Пожалуйста, введите положительное число (например: 180):")
			return
		}
		sess.profile.HeightCm = height
		sess.step = stepAge
		b.reply(chatID, "Хорошо! Теперь введите ваш возраст:")

	case stepAge:
		age, err := strconv.Atoi(text)
		if err != nil || age <= 0 {
			b.reply(chatID, "Пожалуйста, введите целое число (например: 25):")
			return
		}
		sess.profile.AgeYears = age
		sess.step = stepActivity
		b.sendKeyboard(chatID, "Сколько минут активности у вас в день?", createActivityKeyboard())

	case stepCity:
		sess.profile.City = text
		sess.step = stepGender
		b.sendKeyboard(chatID, "Выберите ваш пол:", createGenderKeyboard())

	case stepFoodAmount:
		b.processFoodAmount(msg, sess)

	case stepWorkoutDuration:
		b.processWorkoutDuration(msg, sess)
	}
}

func (b *Bot) handleActivityCallback(callback *tgbotapi.CallbackQuery) {
	userID := callback.From.ID
	sess := b.sessions.get(userID)
	if sess == nil || sess.step != stepActivity {
		return
	}

	minutes, ok := activityMinutes[callback.Data]
	if !ok {
		minutes = 45
	}
	sess.profile.ActivityMinutes = minutes
	sess.step = stepCity

	chatID := callback.Message.Chat.ID
	b.editMessage(chatID, callback.Message.MessageID,
		fmt.Sprintf("Уровень активности: %d мин/день", minutes))
	b.reply(chatID, "В каком городе вы находитесь? (для учета погоды)")
}

func (b *Bot) handleGenderCallback(callback *tgbotapi.CallbackQuery) {
	userID := callback.From.ID
	sess := b.sessions.get(userID)
	if sess == nil || sess.step != stepGender {
		return
	}

	gender := ledger.Male
	genderText := "мужской"
	if callback.Data == "gender_female" {
		gender = ledger.Female
		genderText = "женский"
	}
	sess.profile.Gender = gender

	chatID := callback.Message.Chat.ID
	b.editMessage(chatID, callback.Message.MessageID, "Пол: "+genderText)

	// Профиль собран: узнаем погоду и создаем дневник
	ctx, cancel := context.WithTimeout(context.Background(), b.requestTimeout)
	defer cancel()
	sess.profile.TemperatureC = b.weather.TemperatureOrDefault(ctx, sess.profile.City)

	state, err := b.services.Tracker.CreateProfile(userID, sess.profile)
	b.sessions.clear(userID)

	if errors.Is(err, ledger.ErrAlreadyExists) {
		b.reply(chatID, "У вас уже есть профиль. Повторная настройка не поддерживается.")
		return
	}
	if err != nil {
		b.reply(chatID, "❌ Не удалось создать профиль. Попробуйте еще раз: /set_profile")
		return
	}

	summary := fmt.Sprintf(
		"✅ <b>Профиль успешно создан!</b>\n\n"+
			"Ваши данные:\n"+
			"• Вес: %.0f кг\n"+
			"• Рост: %.0f см\n"+
			"• Возраст: %d лет\n"+
			"• Активность: %d мин/день\n"+
			"• Город: %s\n"+
			"• Пол: %s\n"+
			"• Температура: %.1f°C\n\n"+
			"Ваши дневные нормы:\n"+
			"💧 Вода: %.0f мл (базовая норма)\n"+
			"🍎 Калории: %.0f ккал\n\n"+
			"Норма воды будет увеличиваться при добавлении тренировок\n"+
			"(+200 мл за каждые 30 минут тренировки)",
		state.Profile.WeightKg,
		state.Profile.HeightCm,
		state.Profile.AgeYears,
		state.Profile.ActivityMinutes,
		state.Profile.City,
		genderText,
		state.Profile.TemperatureC,
		state.WaterGoalMl,
		state.CalorieGoal,
	)

	b.reply(chatID, summary)
}

// --- Вода ---

func (b *Bot) handleLogWater(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !b.services.Tracker.HasProfile(userID) {
		b.reply(chatID, profileRequired)
		return
	}

	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		b.reply(chatID, "Использование: /log_water [количество в мл]\nПример: /log_water 500")
		return
	}

	amount, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		b.reply(chatID, "Использование: /log_water [количество в мл]\nПример: /log_water 500")
		return
	}
	if amount <= 0 {
		b.reply(chatID, "Пожалуйста, введите положительное количество воды.")
		return
	}

	total, goal, err := b.services.Tracker.LogWater(userID, amount)
	if err != nil {
		b.reply(chatID, profileRequired)
		return
	}

	remaining := goal - total
	if remaining < 0 {
		remaining = 0
	}

	b.reply(chatID, fmt.Sprintf(
		"💧 Вода записана: %.0f мл\n\n"+
			"Прогресс по воде:\n"+
			"%s\n"+
			"Выпито: %.0f/%.0f мл\n"+
			"Осталось: %.0f мл",
		amount, utils.ProgressBar(total, goal, 20), total, goal, remaining,
	))
}

// --- Питание ---

func (b *Bot) handleLogFood(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !b.services.Tracker.HasProfile(userID) {
		b.reply(chatID, profileRequired)
		return
	}

	parts := strings.SplitN(msg.Text, " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		b.reply(chatID, "Использование: /log_food [название продукта]\nПример: /log_food банан")
		return
	}
	productName := strings.TrimSpace(parts[1])

	ctx, cancel := context.WithTimeout(context.Background(), b.requestTimeout)
	defer cancel()

	facts, err := b.nutrition.SearchProduct(ctx, productName)
	if errors.Is(err, openfoodfacts.ErrProductNotFound) {
		b.reply(chatID, fmt.Sprintf("Продукт %q не найден. Попробуйте другое название.", productName))
		return
	}
	if err != nil {
		b.reply(chatID, "❌ Не удалось получить данные о продукте. Попробуйте еще раз.")
		return
	}

	sess := b.sessions.start(userID, stepFoodAmount)
	sess.food = facts

	b.reply(chatID, fmt.Sprintf(
		"🍎 Найден продукт: <b>%s</b>\n\n"+
			"Пищевая ценность на 100г:\n"+
			"• Калории: %.1f ккал\n"+
			"• Белки: %.1f г\n"+
			"• Углеводы: %.1f г\n"+
			"• Жиры: %.1f г\n\n"+
			"Сколько грамм вы съели?",
		facts.Name, facts.CaloriesPer100g, facts.ProteinPer100g, facts.CarbsPer100g, facts.FatPer100g,
	))
}

func (b *Bot) processFoodAmount(msg *tgbotapi.Message, sess *session) {
	chatID := msg.Chat.ID

	amount, err := strconv.ParseFloat(strings.TrimSpace(msg.Text), 64)
	if err != nil || amount <= 0 {
		b.reply(chatID, "Пожалуйста, введите число (например: 150):")
		return
	}

	entry, total, err := b.services.Tracker.LogFood(msg.From.ID, sess.food, amount)
	b.sessions.clear(msg.From.ID)
	if err != nil {
		b.reply(chatID, profileRequired)
		return
	}

	b.reply(chatID, fmt.Sprintf(
		"Записано: <b>%s</b> - %.0fг\n\n"+
			"Пищевая ценность:\n"+
			"• Калории: %.1f ккал\n"+
			"• Белки: %.1f г\n"+
			"• Углеводы: %.1f г\n"+
			"• Жиры: %.1f г\n\n"+
			"Всего потреблено за день: %.1f ккал",
		entry.Name, entry.AmountG, entry.Calories, entry.Protein, entry.Carbs, entry.Fat, total,
	))
}

// --- Тренировки ---

func (b *Bot) handleLogWorkout(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !b.services.Tracker.HasProfile(userID) {
		b.reply(chatID, profileRequired)
		return
	}

	b.sessions.start(userID, stepWorkoutType)
	b.sendKeyboard(chatID, "Выберите тип тренировки:", createWorkoutKeyboard())
}

func (b *Bot) handleWorkoutTypeCallback(callback *tgbotapi.CallbackQuery) {
	userID := callback.From.ID
	sess := b.sessions.get(userID)
	if sess == nil || sess.step != stepWorkoutType {
		return
	}

	sess.workoutType = strings.TrimPrefix(callback.Data, "workout_")
	sess.step = stepWorkoutDuration

	chatID := callback.Message.Chat.ID
	b.editMessage(chatID, callback.Message.MessageID, "Тип тренировки: "+sess.workoutType)
	b.reply(chatID, "Введите продолжительность тренировки в минутах:")
}

func (b *Bot) processWorkoutDuration(msg *tgbotapi.Message, sess *session) {
	chatID := msg.Chat.ID

	duration, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil || duration <= 0 {
		b.reply(chatID, "Пожалуйста, введите целое число минут (например: 30):")
		return
	}

	entry, totalBurned, waterGoal, err := b.services.Tracker.LogWorkout(msg.From.ID, sess.workoutType, duration)
	b.sessions.clear(msg.From.ID)
	if err != nil {
		b.reply(chatID, profileRequired)
		return
	}

	b.reply(chatID, fmt.Sprintf(
		"🏃 <b>Тренировка добавлена!</b>\n\n"+
			"Детали:\n"+
			"• Тип: %s\n"+
			"• Продолжительность: %d минут\n"+
			"• Сожжено калорий: %.0f ккал\n\n"+
			"%s\n\n"+
			"Всего сожжено за день: %.0f ккал\n"+
			"Норма воды на сегодня: %.0f мл",
		entry.Type, entry.DurationMinutes, entry.Calories,
		norms.WaterRecommendation(duration), totalBurned, waterGoal,
	))
}

// --- Прогресс и статистика ---

func (b *Bot) handleCheckProgress(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	progress, err := b.services.Tracker.Progress(userID)
	if err != nil {
		b.reply(chatID, profileRequired)
		return
	}

	state, err := b.services.Tracker.State(userID)
	if err != nil {
		b.reply(chatID, profileRequired)
		return
	}

	water := progress.Water
	calories := progress.Calories

	b.reply(chatID, fmt.Sprintf(
		"📊 <b>Ваш прогресс на сегодня</b>\n\n"+
			"💧 <b>Вода:</b>\n"+
			"%s\n"+
			"Выпито: %.0f/%.0f мл (%.1f%%)\n"+
			"Осталось: %.0f мл\n\n"+
			"🍎 <b>Калории:</b>\n"+
			"%s\n"+
			"Потреблено: %.1f ккал\n"+
			"Сожжено: %.1f ккал\n"+
			"Баланс: %.1f ккал\n"+
			"Цель: %.0f ккал (%.1f%%)\n"+
			"Осталось: %.1f ккал\n\n"+
			"Приемов пищи: %d\n"+
			"Тренировок: %d",
		utils.ProgressBar(water.Logged, water.Goal, 20),
		water.Logged, water.Goal, water.Percentage, water.Remaining,
		utils.ProgressBar(calories.Balance, calories.Goal, 20),
		calories.Logged, calories.Burned, calories.Balance,
		calories.Goal, calories.Percentage, calories.Remaining,
		len(state.FoodLog), len(state.WorkoutLog),
	))
}

func (b *Bot) handleResetDay(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if err := b.services.Tracker.ResetDay(userID); err != nil {
		b.reply(chatID, profileRequired)
		return
	}

	b.reply(chatID, "🌅 Данные за день записаны в историю. Начинаем новый день!")
}

func (b *Bot) handleRecommend(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	progress, err := b.services.Tracker.Progress(userID)
	if err != nil {
		b.reply(chatID, profileRequired)
		return
	}

	state, err := b.services.Tracker.State(userID)
	if err != nil {
		b.reply(chatID, profileRequired)
		return
	}

	recommendations := services.Recommendations(
		progress.Water.Percentage,
		progress.Calories.Percentage,
		len(state.WorkoutLog),
	)

	b.reply(chatID, "💡 <b>Рекомендации:</b>\n\n• "+strings.Join(recommendations, "\n• "))
}

func (b *Bot) handleStats(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	report, err := b.services.Report.DayReport(userID)
	if err != nil {
		b.reply(chatID, profileRequired)
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("📈 <b>Статистика на %s</b>\n\n", utils.GetCurrentMSKDate()))

	message.WriteString(fmt.Sprintf(
		"💧 <b>Вода:</b>\n%s\nВыпито: %.0f/%.0f мл\n\n",
		utils.ProgressBar(report.Progress.Water.Logged, report.Progress.Water.Goal, 20),
		report.Progress.Water.Logged, report.Progress.Water.Goal,
	))

	message.WriteString(fmt.Sprintf(
		"🍎 <b>Питание:</b>\n"+
			"• Приемов пищи: %d\n"+
			"• Всего калорий: %.0f ккал\n"+
			"• Белки: %.1f г\n"+
			"• Углеводы: %.1f г\n"+
			"• Жиры: %.1f г\n\n",
		len(report.State.FoodLog),
		report.Food.TotalCalories, report.Food.TotalProtein,
		report.Food.TotalCarbs, report.Food.TotalFat,
	))

	message.WriteString(fmt.Sprintf(
		"🏃 <b>Тренировки:</b>\n"+
			"• Количество: %d\n"+
			"• Общее время: %d мин\n"+
			"• Сожжено калорий: %.0f ккал\n\n",
		len(report.State.WorkoutLog),
		report.Workouts.TotalMinutes, report.Workouts.TotalCalories,
	))

	message.WriteString(formatHistory(report.State))
	message.WriteString("\n💡 <b>Рекомендации:</b>\n• " + strings.Join(report.Recommendations, "\n• "))

	b.reply(chatID, message.String())
}

// formatHistory показывает последние 3 дня по каждой метрике
func formatHistory(state ledger.State) string {
	histories := []struct {
		metric  string
		entries []ledger.HistoryEntry
	}{
		{"water", state.WaterHistory},
		{"calories", state.CalorieHistory},
		{"burned", state.BurnedHistory},
	}

	empty := true
	var sb strings.Builder
	sb.WriteString("📅 <b>История (последние 3 дня):</b>\n")

	for _, h := range histories {
		last := services.LastEntries(h.entries, 3)
		if len(last) == 0 {
			continue
		}
		empty = false

		sb.WriteString(utils.GetMetricName(h.metric) + ":\n")
		for _, entry := range last {
			sb.WriteString(fmt.Sprintf("  %s: %.0f %s\n",
				entry.Date, entry.Value, utils.GetMetricUnit(h.metric)))
		}
	}

	if empty {
		return "📅 <b>История:</b>\nНет данных за предыдущие дни.\n"
	}
	return sb.String()
}
