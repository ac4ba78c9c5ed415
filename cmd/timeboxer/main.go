package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timeboxer/internal/bot"
	"timeboxer/internal/config"
	"timeboxer/internal/repository"
	"timeboxer/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	plannerSvc := service.NewPlannerService(scheduleRepo, historyRepo, cfg.DefaultStartTime)
	reportSvc := service.NewReportService(plannerSvc)

	telegramBot, err := bot.New(cfg.TelegramToken, userRepo, plannerSvc, reportSvc, &cfg)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleDaily(cfg.ReportTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := telegramBot.SendDailyPlans(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("daily plans: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule daily plans: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Timeboxer bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
