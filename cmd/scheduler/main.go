package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/brewdeck/brewdeck-backend/internal/discounts"
	"github.com/brewdeck/brewdeck-backend/internal/loyalty"
	"github.com/brewdeck/brewdeck-backend/internal/menu"
	"github.com/brewdeck/brewdeck-backend/internal/orders"
	"github.com/brewdeck/brewdeck-backend/internal/realtime"
	"github.com/brewdeck/brewdeck-backend/internal/scheduler"
	"github.com/brewdeck/brewdeck-backend/internal/users"
	"github.com/brewdeck/brewdeck-backend/pkg/config"
	"github.com/brewdeck/brewdeck-backend/pkg/db"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
	"github.com/brewdeck/brewdeck-backend/pkg/metrics"
	"github.com/brewdeck/brewdeck-backend/pkg/migrate"
	"github.com/brewdeck/brewdeck-backend/pkg/redis"
)

const lockKeyFormat = "bd:scheduler:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "scheduler"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "scheduler"

	logg = logger.New(logger.Options{
		ServiceName: "scheduler",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	ordersService, err := buildOrdersService(cfg, dbClient, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	activationJob, err := scheduler.NewActivationJob(ordersService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create activation job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := scheduler.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler lock", err)
		os.Exit(1)
	}

	service, err := scheduler.NewService(scheduler.ServiceParams{
		Logger:   logg,
		Registry: scheduler.NewRegistry(activationJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Kitchen.ActivationInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting scheduler")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "scheduler stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "scheduler shutting down gracefully")
}

// buildOrdersService assembles the same order pipeline the API uses so an
// activated order carries complete pricing and loyalty state.
func buildOrdersService(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client, logg *logger.Logger) (orders.Service, error) {
	menuRepo := menu.NewRepository(dbClient.DB())
	usersRepo := users.NewRepository(dbClient.DB())

	discountsService, err := discounts.NewService(discounts.NewRepository(dbClient.DB()))
	if err != nil {
		return nil, err
	}

	loyaltyService, err := loyalty.NewService(loyalty.Params{
		Accounts:        usersRepo,
		Guests:          redisClient,
		RewardThreshold: cfg.Loyalty.RewardThreshold,
		GuestTTL:        cfg.Loyalty.GuestTTL,
	})
	if err != nil {
		return nil, err
	}

	notifier, err := realtime.NewNotifier(redisClient, logg)
	if err != nil {
		return nil, err
	}

	return orders.NewService(orders.Params{
		Repo:            orders.NewRepository(dbClient.DB()),
		Catalog:         menuRepo,
		Discounts:       discountsService,
		Loyalty:         loyaltyService,
		Notifier:        notifier,
		Logger:          logg,
		PreparationLead: cfg.Kitchen.PreparationLead,
		FeedLimit:       cfg.Kitchen.FeedLimit,
	})
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
