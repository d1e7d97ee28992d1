package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/enrollment-portal-api/internal/config"
	"github.com/noah-isme/enrollment-portal-api/internal/database"
	"github.com/noah-isme/enrollment-portal-api/internal/handler"
	"github.com/noah-isme/enrollment-portal-api/internal/middleware"
	"github.com/noah-isme/enrollment-portal-api/internal/models"
	"github.com/noah-isme/enrollment-portal-api/internal/repository"
	"github.com/noah-isme/enrollment-portal-api/internal/router"
	"github.com/noah-isme/enrollment-portal-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Enrollment{}, &models.GradeLevel{}, &models.Track{}, &models.Strand{}, &models.AuditLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// The profile cache is optional; the service degrades to direct reads
	// when no Redis URL is configured.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	enrollmentRepo := repository.NewEnrollmentRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	auditRecorder := service.NewAuditRecorder(auditLogRepo, logger)
	profileService := service.NewProfileService(enrollmentRepo, lookupRepo, validate, redisClient, cfg.ProfileCacheTTL, auditRecorder, logger)
	activityLogService := service.NewActivityLogService(auditLogRepo, validate, logger)
	securitySettingsService := service.NewSecuritySettingsService(validate, logger)

	profileHandler := handler.NewProfileHandler(profileService, logger)
	activityLogHandler := handler.NewActivityLogHandler(activityLogService, logger)
	securitySettingsHandler := handler.NewSecuritySettingsHandler(securitySettingsService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ProfileHandler:          profileHandler,
		ActivityLogHandler:      activityLogHandler,
		SecuritySettingsHandler: securitySettingsHandler,
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
