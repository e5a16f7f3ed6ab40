package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/figurehub/figurehub-backend/internal/cart"
	"github.com/figurehub/figurehub-backend/internal/contracts"
	"github.com/figurehub/figurehub-backend/internal/cron"
	"github.com/figurehub/figurehub-backend/internal/notifications"
	"github.com/figurehub/figurehub-backend/internal/orders"
	"github.com/figurehub/figurehub-backend/internal/stock"
	"github.com/figurehub/figurehub-backend/internal/wallet"
	"github.com/figurehub/figurehub-backend/pkg/config"
	"github.com/figurehub/figurehub-backend/pkg/db"
	"github.com/figurehub/figurehub-backend/pkg/logger"
	"github.com/figurehub/figurehub-backend/pkg/metrics"
	"github.com/figurehub/figurehub-backend/pkg/migrate"
	"github.com/figurehub/figurehub-backend/pkg/outbox"
	"github.com/figurehub/figurehub-backend/pkg/redis"
)

const (
	lockKeyFormat    = "fh:cron-worker:lock:%s"
	retentionRunSpan = 24 * time.Hour
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	gormDB := dbClient.DB()

	outboxRepo := outbox.NewRepository(gormDB)
	outboxService := outbox.NewService(outboxRepo, logg)
	ordersRepo := orders.NewRepository(gormDB)
	contractsRepo := contracts.NewRepository(gormDB)
	walletRepo := wallet.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)

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
		Stock:     stock.NewManager(),
		Contracts: contractsService,
		Cart:      cart.NewRepository(gormDB),
		Wallet:    walletService,
		Logger:    logg,
		Now:       time.Now,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	expiryJob, err := cron.NewOrderExpiryJob(cron.OrderExpiryJobParams{
		Logger:    logg,
		Overdue:   ordersRepo,
		Expirer:   ordersService,
		BatchSize: cfg.Sweeper.BatchSize,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order expiry job", err)
		os.Exit(1)
	}

	retentionJob, err := cron.NewOutboxRetentionJob(cron.OutboxRetentionJobParams{
		Logger:     logg,
		Repository: outboxRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create outbox retention job", err)
		os.Exit(1)
	}

	cleanupJob, err := cron.NewNotificationCleanupJob(cron.NotificationCleanupJobParams{
		Logger:     logg,
		Repository: notificationsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification cleanup job", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(expiryJob)
	registry.RegisterEvery(retentionJob, retentionRunSpan)
	registry.RegisterEvery(cleanupJob, retentionRunSpan)

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Sweeper.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	go func() {
		if err := metrics.ServeOps(ctx, logg, cfg.App.MetricsPort); err != nil {
			logg.Error(ctx, "ops endpoint stopped", err)
		}
	}()

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
