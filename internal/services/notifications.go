package services

import (
	"fmt"
	"log"

	"vita-balance/internal/ledger"
	"vita-balance/internal/utils"
)

// NotificationSender интерфейс для отправки уведомлений пользователю
type NotificationSender interface {
	SendMessage(chatID int64, text string) error
}

type NotificationService struct {
	sender    NotificationSender
	directory *ledger.Directory
	tracker   *TrackerService
}

func NewNotificationService(sender NotificationSender, directory *ledger.Directory, tracker *TrackerService) *NotificationService {
	return &NotificationService{
		sender:    sender,
		directory: directory,
		tracker:   tracker,
	}
}

// SendWaterReminders отправляет вечернее напоминание тем, кто не добрал норму
func (ns *NotificationService) SendWaterReminders() {
	for _, userID := range ns.directory.UserIDs() {
		progress, err := ns.tracker.Progress(userID)
		if err != nil {
			continue
		}

		if progress.Water.Percentage >= 90 {
			continue
		}

		message := fmt.Sprintf(
			"💧 <b>Напоминание о воде</b>\n\n"+
				"Выпито: %.0f/%.0f мл (%.1f%%)\n"+
				"Осталось: %.0f мл\n\n"+
				"%s",
			progress.Water.Logged,
			progress.Water.Goal,
			progress.Water.Percentage,
			progress.Water.Remaining,
			utils.ProgressBar(progress.Water.Logged, progress.Water.Goal, 20),
		)

		if err := ns.sender.SendMessage(userID, message); err != nil {
			log.Printf("⚠️ Ошибка отправки напоминания %d: %v", userID, err)
		}
	}
}

// SendDailySummaries рассылает итоги дня перед ночным переключением
func (ns *NotificationService) SendDailySummaries() {
	for _, userID := range ns.directory.UserIDs() {
		progress, err := ns.tracker.Progress(userID)
		if err != nil {
			continue
		}

		message := fmt.Sprintf(
			"🌙 <b>Итоги дня %s</b>\n\n"+
				"💧 Вода: %.0f/%.0f мл (%.1f%%)\n"+
				"🍎 Потреблено: %.1f ккал\n"+
				"🔥 Сожжено: %.1f ккал\n"+
				"⚖️ Баланс: %.1f из %.0f ккал\n\n"+
				"Счетчики скоро обнулятся, итоги уйдут в историю. Доброй ночи!",
			utils.GetCurrentMSKDate(),
			progress.Water.Logged,
			progress.Water.Goal,
			progress.Water.Percentage,
			progress.Calories.Logged,
			progress.Calories.Burned,
			progress.Calories.Balance,
			progress.Calories.Goal,
		)

		if err := ns.sender.SendMessage(userID, message); err != nil {
			log.Printf("⚠️ Ошибка отправки итогов %d: %v", userID, err)
		}
	}
}
