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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/config"
	"github.com/priyanshuguptaiit99/pronetwork/internal/database"
	"github.com/priyanshuguptaiit99/pronetwork/internal/handler"
	"github.com/priyanshuguptaiit99/pronetwork/internal/middleware"
	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
	"github.com/priyanshuguptaiit99/pronetwork/internal/realtime"
	"github.com/priyanshuguptaiit99/pronetwork/internal/repository"
	"github.com/priyanshuguptaiit99/pronetwork/internal/router"
	"github.com/priyanshuguptaiit99/pronetwork/internal/service"
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

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostComment{},
		&models.Message{},
		&models.Status{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	registry := realtime.NewRegistry()
	deliveryRouter := realtime.NewRouter(registry, redisClient, cfg.ChannelBase, natsConn, logger)

	notificationService := service.NewNotificationService(notificationRepo, userRepo, deliveryRouter, redisClient, cfg.UnreadCacheTTL, logger)
	messageService := service.NewMessageService(messageRepo, userRepo, deliveryRouter, logger)
	statusService := service.NewStatusService(statusRepo, userRepo, deliveryRouter, cfg.StatusTTL, logger)
	postService := service.NewPostService(postRepo, userRepo, notificationService, logger)
	userService := service.NewUserService(userRepo, postRepo, notificationService, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, logger)
	gatewayService := service.NewGatewayService(registry, deliveryRouter, messageService, statusService, cfg.TypingIdleTTL, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, validate, logger)
	postHandler := handler.NewPostHandler(postService, validate, logger)
	messageHandler := handler.NewMessageHandler(messageService, logger)
	statusHandler := handler.NewStatusHandler(statusService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger)
	wsHandler := handler.NewWSHandler(gatewayService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSOrigins,
		Development:  cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		PostHandler:         postHandler,
		MessageHandler:      messageHandler,
		StatusHandler:       statusHandler,
		NotificationHandler: notificationHandler,
		WSHandler:           wsHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	runCtx, stopConsumers := context.WithCancel(context.Background())
	deliveryRouter.Start(runCtx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, func() {
		stopConsumers()
		gatewayService.Shutdown()
	})
}

func waitForShutdown(app *fiber.App, cleanup func()) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
