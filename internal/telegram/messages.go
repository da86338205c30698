package telegram

import "log"

func (b *Bot) reply(chatID int64, message string) {
	if err := b.SendMessage(chatID, message); err != nil {
		log.Printf("⚠️ Ошибка отправки сообщения в чат %d: %v", chatID, err)
	}
}
