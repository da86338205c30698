package app

import (
	"context"
	"log"
	"net/http"

	"vita-balance/internal/config"
	"vita-balance/internal/database"
	"vita-balance/internal/ledger"
	"vita-balance/internal/provider/openfoodfacts"
	"vita-balance/internal/provider/openweather"
	"vita-balance/internal/services"
	"vita-balance/internal/telegram"

	"github.com/robfig/cron/v3"
)

type Application struct {
	config     *config.Config
	db         *database.Database
	directory  *ledger.Directory
	bot        *telegram.Bot
	services   *services.ServiceManager
	cron       *cron.Cron
	cancelFunc context.CancelFunc
	ctx        context.Context
}

func New(cfg *config.Config) (*Application, error) {
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	repo := database.NewRepository(db)
	directory := ledger.NewDirectory()

	// Восстанавливаем дневники, сохраненные до перезапуска
	states, err := repo.LoadStates()
	if err != nil {
		db.Close()
		return nil, err
	}
	for _, st := range states {
		if _, err := directory.Restore(st); err != nil {
			log.Printf("⚠️ Ошибка восстановления дневника %d: %v", st.UserID, err)
		}
	}
	log.Printf("✅ Восстановлено дневников: %d", len(states))

	weather := &openweather.Client{
		APIKey:             cfg.Weather.APIKey,
		HTTPClient:         &http.Client{Timeout: cfg.Weather.Timeout},
		DefaultTemperature: cfg.Weather.DefaultTemperature,
	}
	nutrition := &openfoodfacts.Client{
		HTTPClient: &http.Client{Timeout: cfg.Nutrition.Timeout},
	}

	serviceManager := services.NewServiceManager(directory, repo)
	bot, err := telegram.NewBot(cfg.Telegram.Token, serviceManager, weather, nutrition, cfg.Nutrition.Timeout)
	if err != nil {
		db.Close()
		return nil, err
	}

	serviceManager.SetNotificationSender(bot)
	ctx, cancel := context.WithCancel(context.Background())

	app := &Application{
		config:     cfg,
		db:         db,
		directory:  directory,
		bot:        bot,
		services:   serviceManager,
		cron:       cron.New(),
		cancelFunc: cancel,
		ctx:        ctx,
	}

	app.setupCronJobs()

	return app, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Запуск приложения...")

	go a.bot.Start(a.ctx)
	a.cron.Start()

	log.Printf("✅ Приложение запущено. Бот: @%s", a.bot.GetUsername())

	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Остановка приложения...")

	a.cancelFunc()
	a.cron.Stop()

	if err := a.db.Close(); err != nil {
		log.Printf("⚠️ Ошибка закрытия БД: %v", err)
	}

	log.Println("✅ Приложение остановлено")
	return nil
}

func (a *Application) setupCronJobs() {
	// Напоминание о воде в 18:00 МСК
	_, err := a.cron.AddFunc("0 15 * * *", func() {
		a.services.Notification.SendWaterReminders()
	})
	if err != nil {
		panic(err)
	}

	// Итоги дня в 23:55 МСК
	_, err = a.cron.AddFunc("55 20 * * *", func() {
		a.services.Notification.SendDailySummaries()
	})
	if err != nil {
		panic(err)
	}

	// Переключение дня в полночь МСК: итоги в историю, счетчики в ноль
	_, err = a.cron.AddFunc("0 21 * * *", func() {
		a.services.Tracker.RolloverAll()
	})
	if err != nil {
		panic(err)
	}
}
