package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pawcare/internal/config"
	"pawcare/internal/database"
	"pawcare/internal/notification"
	"pawcare/internal/pkg/logger"
	"pawcare/internal/repository"
)

// Vaccination reminders go out this many days before the due date.
const reminderWindowDays = 2

func main() {
	logger.Init()
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	sitterRepo := repository.NewSitterRepository(db)
	petRepo := repository.NewPetRepository(db)

	notifier := notification.NewTwilioDispatcher(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioWhatsAppNumber,
		userRepo,
		sitterRepo,
	)

	ctx := context.Background()
	cutoff := time.Now().AddDate(0, 0, reminderWindowDays)

	pets, err := petRepo.ListVaccinationsDue(ctx, cutoff)
	if err != nil {
		log.Fatal("list vaccinations due", zap.Error(err))
	}

	sent := 0
	for i := range pets {
		if err := notifier.NotifyVaccinationDue(ctx, &pets[i]); err != nil {
			log.Warn("vaccination reminder failed",
				zap.String("pet_id", pets[i].ID),
				zap.Error(err))
			continue
		}
		sent++
	}

	log.Info("vaccination reminders done",
		zap.Int("due", len(pets)),
		zap.Int("sent", sent))
}
