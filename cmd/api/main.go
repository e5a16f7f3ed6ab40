package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/figurehub/figurehub-backend/api/routes"
	"github.com/figurehub/figurehub-backend/internal/allocation"
	"github.com/figurehub/figurehub-backend/internal/cart"
	checkoutsvc "github.com/figurehub/figurehub-backend/internal/checkout"
	"github.com/figurehub/figurehub-backend/internal/contracts"
	"github.com/figurehub/figurehub-backend/internal/inventory"
	"github.com/figurehub/figurehub-backend/internal/notifications"
	"github.com/figurehub/figurehub-backend/internal/orders"
	"github.com/figurehub/figurehub-backend/internal/products"
	"github.com/figurehub/figurehub-backend/internal/shipping"
	"github.com/figurehub/figurehub-backend/internal/stock"
	"github.com/figurehub/figurehub-backend/internal/wallet"
	"github.com/figurehub/figurehub-backend/pkg/config"
	"github.com/figurehub/figurehub-backend/pkg/db"
	"github.com/figurehub/figurehub-backend/pkg/logger"
	"github.com/figurehub/figurehub-backend/pkg/migrate"
	"github.com/figurehub/figurehub-backend/pkg/outbox"
	"github.com/figurehub/figurehub-backend/pkg/pubsub"
	"github.com/figurehub/figurehub-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub", err)
		}
	}()

	gormDB := dbClient.DB()

	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)
	cartRepo := cart.NewRepository(gormDB)
	productsRepo := products.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	contractsRepo := contracts.NewRepository(gormDB)
	walletRepo := wallet.NewRepository(gormDB)
	inventoryRepo := inventory.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)
	stockManager := stock.NewManager()

	walletService, err := wallet.NewService(walletRepo, cfg.Loyalty.PointsDivisor)
	if err != nil {
		logg.Error(context.Background(), "failed to create wallet service", err)
		os.Exit(1)
	}

	contractsService, err := contracts.NewService(contracts.Params{
		Repo:            contractsRepo,
		Orders:          ordersRepo,
		Tx:              dbClient,
		Outbox:          outboxService,
		Wallet:          walletService,
		Logger:          logg,
		ShippingFlatFee: cfg.Checkout.FlatShippingFee,
		Now:             time.Now,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create contracts service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.Params{
		Repo:      ordersRepo,
		Tx:        dbClient,
		Outbox:    outboxService,
		Stock:     stockManager,
		Contracts: contractsService,
		Cart:      cartRepo,
		Wallet:    walletService,
		Logger:    logg,
		Now:       time.Now,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.Params{
		Cart:      cartRepo,
		Products:  productsRepo,
		Orders:    ordersRepo,
		Contracts: contractsRepo,
		Stock:     stockManager,
		Quoter:    shipping.NewQuoter(cfg.Carrier),
		Tx:        dbClient,
		Outbox:    outboxService,
		Logger:    logg,
		Config:    cfg.Checkout,
		Now:       time.Now,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	allocationService, err := allocation.NewService(contractsRepo, outboxService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create allocation service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.Params{
		Repo:      inventoryRepo,
		Products:  productsRepo,
		Allocator: allocationService,
		Tx:        dbClient,
		Outbox:    outboxService,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			pubsubClient,
			checkoutService,
			ordersService,
			contractsService,
			walletService,
			inventoryService,
			notificationsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
