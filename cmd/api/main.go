package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawcare/internal/config"
	"pawcare/internal/database"
	"pawcare/internal/domain"
	"pawcare/internal/middleware"
	"pawcare/internal/modules/auth"
	"pawcare/internal/modules/booking"
	"pawcare/internal/modules/chat"
	"pawcare/internal/modules/pet"
	"pawcare/internal/modules/sitter"
	"pawcare/internal/notification"
	jwtsvc "pawcare/internal/pkg/jwt"
	"pawcare/internal/pkg/logger"
	"pawcare/internal/repository"
)

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

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Sitter{},
		&domain.Pet{},
		&domain.Booking{},
		&domain.Conversation{},
		&domain.Message{},
	); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	sitterRepo := repository.NewSitterRepository(db)
	petRepo := repository.NewPetRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	chatRepo := repository.NewChatRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL())

	notifier := notification.NewTwilioDispatcher(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioWhatsAppNumber,
		userRepo,
		sitterRepo,
	)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	sitterService := sitter.NewService(sitterRepo)
	sitterHandler := sitter.NewHandler(sitterService)

	petService := pet.NewService(petRepo)
	petHandler := pet.NewHandler(petService)

	bookingService := booking.NewService(bookingRepo, sitterRepo, petRepo, notifier)
	bookingHandler := booking.NewHandler(bookingService)

	hub := chat.NewHub()
	defer hub.Close()

	chatService := chat.NewService(chatRepo, bookingRepo, sitterRepo, userRepo, hub)
	chatHandler := chat.NewHandler(chatService)

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(20, 40))
	{
		// public
		authHandler.RegisterRoutes(v1)
		sitterHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)

			sitterHandler.RegisterProtectedRoutes(
				protected.Group("", middleware.RequireRole(string(domain.RoleSitter))))
			petHandler.RegisterRoutes(
				protected.Group("", middleware.RequireRole(string(domain.RoleOwner))))
		}
	}

	log.Info("api listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
