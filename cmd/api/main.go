package main

import (
	"context"
	"net/http"
	"os"

	"github.com/brewdeck/brewdeck-backend/api/routes"
	"github.com/brewdeck/brewdeck-backend/internal/cart"
	"github.com/brewdeck/brewdeck-backend/internal/discounts"
	"github.com/brewdeck/brewdeck-backend/internal/feedback"
	"github.com/brewdeck/brewdeck-backend/internal/kitchen"
	"github.com/brewdeck/brewdeck-backend/internal/loyalty"
	"github.com/brewdeck/brewdeck-backend/internal/menu"
	"github.com/brewdeck/brewdeck-backend/internal/orders"
	"github.com/brewdeck/brewdeck-backend/internal/realtime"
	"github.com/brewdeck/brewdeck-backend/internal/reports"
	"github.com/brewdeck/brewdeck-backend/internal/tutorials"
	"github.com/brewdeck/brewdeck-backend/internal/users"
	"github.com/brewdeck/brewdeck-backend/pkg/assistant"
	"github.com/brewdeck/brewdeck-backend/pkg/auth/session"
	"github.com/brewdeck/brewdeck-backend/pkg/config"
	"github.com/brewdeck/brewdeck-backend/pkg/db"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
	"github.com/brewdeck/brewdeck-backend/pkg/migrate"
	"github.com/brewdeck/brewdeck-backend/pkg/redis"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	notifier, err := realtime.NewNotifier(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create change notifier", err)
		os.Exit(1)
	}
	hub := realtime.NewHub()

	menuRepo := menu.NewRepository(dbClient.DB())
	usersRepo := users.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	menuService, err := menu.NewService(menuRepo, dbClient, notifier)
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	discountsService, err := discounts.NewService(discounts.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create discounts service", err)
		os.Exit(1)
	}

	loyaltyService, err := loyalty.NewService(loyalty.Params{
		Accounts:        usersRepo,
		Guests:          redisClient,
		RewardThreshold: cfg.Loyalty.RewardThreshold,
		GuestTTL:        cfg.Loyalty.GuestTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create loyalty service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.Params{
		Repo:            ordersRepo,
		Catalog:         menuRepo,
		Discounts:       discountsService,
		Loyalty:         loyaltyService,
		Notifier:        notifier,
		Logger:          logg,
		PreparationLead: cfg.Kitchen.PreparationLead,
		FeedLimit:       cfg.Kitchen.FeedLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	kitchenService, err := kitchen.NewService(ordersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create kitchen service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(redisClient, menuRepo, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	feedbackService, err := feedback.NewService(feedback.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create feedback service", err)
		os.Exit(1)
	}

	tutorialsService, err := tutorials.NewService(tutorials.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create tutorials service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(reports.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	var assistantClient *assistant.Client
	if cfg.Assistant.APIKey != "" {
		assistantClient, err = assistant.NewClient(cfg.Assistant.APIKey,
			assistant.WithBaseURL(cfg.Assistant.BaseURL),
			assistant.WithModel(cfg.Assistant.Model),
			assistant.WithHTTPClient(&http.Client{Timeout: cfg.Assistant.Timeout}),
		)
		if err != nil {
			logg.Error(context.Background(), "failed to create assistant client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "assistant api key not set, /assistant disabled")
	}

	if cfg.FeatureFlags.SeedMenu {
		if err := menuService.SeedIfEmpty(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed menu", err)
			os.Exit(1)
		}
	}

	bridgeCtx, stopBridge := context.WithCancel(context.Background())
	defer stopBridge()

	bridge, err := realtime.NewBridge(realtime.BridgeParams{
		Client: redisClient,
		Hub:    hub,
		Orders: ordersService,
		Menu:   menuService,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create realtime bridge", err)
		os.Exit(1)
	}
	go func() {
		if err := bridge.Run(bridgeCtx); err != nil {
			logg.Error(bridgeCtx, "realtime bridge stopped", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager,
			menuService, ordersService, kitchenService, cartService, usersService,
			discountsService, feedbackService, tutorialsService, reportsService,
			assistantClient, hub, bridge),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
