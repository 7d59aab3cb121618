package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/shopweb/shopweb-api/internal/config"
	"github.com/shopweb/shopweb-api/internal/events"
	"github.com/shopweb/shopweb-api/internal/handlers"
	"github.com/shopweb/shopweb-api/internal/repository"
	"github.com/shopweb/shopweb-api/internal/server"
	"github.com/shopweb/shopweb-api/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := newLogger()
	cfg := config.Load()

	logger.Info().Int("port", cfg.Server.Port).Msg("Starting shopweb-api")

	db, err := repository.Open(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	txRunner := repository.NewTxRunner(db)
	userRepo := repository.NewUserRepository()
	promotionRepo := repository.NewPromotionRepository()
	inventoryRepo := repository.NewInventoryRepository(logger)
	cartRepo := repository.NewCartRepository(logger)
	orderRepo := repository.NewOrderRepository(logger)

	var orderCache *repository.RedisOrderCache
	var detailCache service.DetailCache
	var cachePinger handlers.Pinger
	if cfg.Features.EnableOrderCaching {
		orderCache = repository.NewRedisOrderCache(cfg.Redis, logger)
		defer orderCache.Close()
		detailCache = orderCache
		cachePinger = orderCache
	}

	var eventPublisher service.EventPublisher
	if cfg.Features.EnableOrderEvents {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
		defer kafkaPublisher.Close()
		eventPublisher = kafkaPublisher
	}

	promotionService := service.NewPromotionEvaluator(db, promotionRepo)
	orderService := service.NewOrderService(
		txRunner,
		db,
		userRepo,
		promotionService,
		inventoryRepo,
		cartRepo,
		orderRepo,
		detailCache,
		eventPublisher,
		cfg.Features,
		logger,
	)
	cartService := service.NewCartService(db, cartRepo, inventoryRepo, logger)

	h := handlers.New(orderService, promotionService, cartService, handlers.DBPinger{DB: db}, cachePinger, logger)

	srv := server.New(cfg, h, logger)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func newLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "shopweb-api").
		Logger()
}
