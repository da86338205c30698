package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vita-balance/internal/provider/openfoodfacts"
	"vita-balance/internal/provider/openweather"
	"vita-balance/internal/services"
)

// Bot - многопользовательский Telegram бот. В отличие от сценария с одним
// чатом, каждое сообщение обрабатывается в контексте своего пользователя:
// идентификатор пользователя и есть ключ дневника.
type Bot struct {
	bot            *tgbotapi.BotAPI
	services       *services.ServiceManager
	weather        *openweather.Client
	nutrition      *openfoodfacts.Client
	sessions       *sessions
	handlers       map[string]func(*tgbotapi.Message)
	requestTimeout time.Duration
}

func NewBot(token string, serviceManager *services.ServiceManager, weather *openweather.Client,
	nutrition *openfoodfacts.Client, requestTimeout time.Duration) (*Bot, error) {

	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %v", err)
	}

	bot := &Bot{
		bot:            botAPI,
		services:       serviceManager,
		weather:        weather,
		nutrition:      nutrition,
		sessions:       newSessions(),
		handlers:       make(map[string]func(*tgbotapi.Message)),
		requestTimeout: requestTimeout,
	}

	bot.registerHandlers()
	log.Printf("🤖 Бот инициализирован: %s", botAPI.Self.UserName)
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.handlers["/start"] = b.handleStart
	b.handlers["/help"] = b.handleHelp
	b.handlers["/set_profile"] = b.handleSetProfile
	b.handlers["/log_workout"] = b.handleLogWorkout
	b.handlers["/check_progress"] = b.handleCheckProgress
	b.handlers["/reset_day"] = b.handleResetDay
	b.handlers["/recommend"] = b.handleRecommend
	b.handlers["/stats"] = b.handleStats
}

// SendMessage отправляет сообщение в указанный чат
func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	b.handleMessage(update.Message)
}

// handleMessage обрабатывает текстовые сообщения: сначала команды,
// затем шаги незавершенного диалога
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	text := msg.Text
	if text == "" {
		return
	}

	switch {
	case strings.HasPrefix(text, "/log_water"):
		b.handleLogWater(msg)
	case strings.HasPrefix(text, "/log_food"):
		b.handleLogFood(msg)
	case strings.HasPrefix(text, "/"):
		command := strings.Fields(text)[0]
		// Команда может приходить как /stats@имя_бота
		command = strings.SplitN(command, "@", 2)[0]

		if handler, exists := b.handlers[command]; exists {
			handler(msg)
		} else {
			b.reply(msg.Chat.ID, "❌ Неизвестная команда. Используйте /help")
		}
	default:
		if sess := b.sessions.get(msg.From.ID); sess != nil {
			b.handleDialogInput(msg, sess)
		}
	}
}

func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
			log.Printf("⚠️ Ошибка подтверждения callback: %v", err)
		}
	}()

	data := callback.Data
	log.Printf("Received callback: %s", data)

	switch {
	case strings.HasPrefix(data, "activity_"):
		b.handleActivityCallback(callback)
	case strings.HasPrefix(data, "gender_"):
		b.handleGenderCallback(callback)
	case strings.HasPrefix(data, "workout_"):
		b.handleWorkoutTypeCallback(callback)
	}
}

// editMessage заменяет текст сообщения с клавиатурой на итог выбора
func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.bot.Send(edit); err != nil {
		log.Printf("⚠️ Ошибка редактирования сообщения %d: %v", messageID, err)
	}
}

// sendKeyboard отправляет сообщение с inline-клавиатурой
func (b *Bot) sendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	msg.ParseMode = "HTML"
	if _, err := b.bot.Send(msg); err != nil {
		log.Printf("⚠️ Ошибка отправки клавиатуры: %v", err)
	}
}
