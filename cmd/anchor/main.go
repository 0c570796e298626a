package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mariposahq/anchor/internal/api"
	"github.com/mariposahq/anchor/internal/checkin"
	"github.com/mariposahq/anchor/internal/config"
	"github.com/mariposahq/anchor/internal/db"
	"github.com/mariposahq/anchor/internal/logging"
	"github.com/mariposahq/anchor/internal/sentiment"
	"github.com/mariposahq/anchor/internal/whatsapp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	repos := db.NewRepositories(database)

	provider, err := whatsapp.NewProvider(cfg.WhatsAppAPIURL, cfg.WhatsAppAccounts(), logger)
	if err != nil {
		logger.Fatal("whatsapp init failed", zap.Error(err))
	}

	scorer := sentiment.NewClient(cfg.SentimentAPIURL, cfg.SentimentAPIKey, logger)

	gate := checkin.NewGate(repos.CheckIns, logger)
	evaluator := checkin.NewEvaluator(repos.CheckIns, gate, logger)
	selector := checkin.NewSelector()
	tracker := checkin.NewTracker(repos.Users, repos.CheckIns, scorer, logger)
	orchestrator := checkin.NewOrchestrator(
		repos.Users,
		repos.CheckIns,
		evaluator,
		selector,
		tracker,
		provider,
		checkin.OrchestratorOptions{
			ActiveHorizon:      time.Duration(cfg.ActiveHorizonDays) * 24 * time.Hour,
			SentimentTrendDays: cfg.SentimentTrendDays,
		},
		logger,
	)

	handler := api.NewHandler(repos, orchestrator, tracker, cfg.CronSecret, cfg.WhatsAppAppSecret, cfg.WebhookVerifyToken, logger)

	app := fiber.New(fiber.Config{
		AppName:               "Anchor",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("anchor listening",
		zap.String("port", cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.Int("accounts", len(cfg.WhatsAppAccounts())),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
