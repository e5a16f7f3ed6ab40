package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/figurehub/figurehub-backend/api/controllers"
	webhookcontrollers "github.com/figurehub/figurehub-backend/api/controllers/webhooks"
	"github.com/figurehub/figurehub-backend/api/middleware"
	checkoutsvc "github.com/figurehub/figurehub-backend/internal/checkout"
	"github.com/figurehub/figurehub-backend/internal/contracts"
	"github.com/figurehub/figurehub-backend/internal/inventory"
	"github.com/figurehub/figurehub-backend/internal/notifications"
	"github.com/figurehub/figurehub-backend/internal/orders"
	"github.com/figurehub/figurehub-backend/internal/wallet"
	"github.com/figurehub/figurehub-backend/pkg/config"
	"github.com/figurehub/figurehub-backend/pkg/db"
	"github.com/figurehub/figurehub-backend/pkg/logger"
	"github.com/figurehub/figurehub-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	pubsubP controllers.PubSubPinger,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
	contractsService contracts.Service,
	walletService wallet.Service,
	inventoryService inventory.Service,
	notificationsService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	carrierPolicy := middleware.NewWebhookRateLimitPolicy(
		"carrier",
		cfg.Carrier.WebhookRateLimitWindow,
		cfg.Carrier.WebhookRateLimitPerIP,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient, pubsubP))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Use(
			middleware.WebhookToken(cfg.Carrier.WebhookToken, logg),
			middleware.WebhookRateLimit(carrierPolicy, redisClient, logg),
		)
		r.Post("/carrier", webhookcontrollers.CarrierStatus(ordersService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Post("/v1/checkout", controllers.Checkout(checkoutService, logg))

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{orderID}", controllers.GetOrder(ordersService, logg))
			r.Post("/{orderID}/confirm-payment", controllers.ConfirmOrderPayment(ordersService, logg))
			r.Post("/{orderID}/cancel", controllers.CancelOrder(ordersService, logg))
		})

		r.Route("/v1/contracts", func(r chi.Router) {
			r.Get("/", controllers.ListContracts(contractsService, logg))
			r.Get("/{contractID}", controllers.GetContract(contractsService, logg))
			r.Post("/{contractID}/final-payment", controllers.ContractFinalPayment(contractsService, logg))
		})

		r.Route("/v1/wallet", func(r chi.Router) {
			r.Get("/", controllers.WalletBalance(walletService, logg))
			r.Get("/transactions", controllers.WalletTransactions(walletService, logg))
		})

		r.Route("/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/{notificationID}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})

		r.Route("/v1/staff", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, "staff", "admin"))

			r.Route("/inventory/receipts", func(r chi.Router) {
				r.Post("/", controllers.RecordInventoryReceipt(inventoryService, logg))
				r.Get("/", controllers.ListInventoryReceipts(inventoryService, logg))
				r.Get("/{receiptID}", controllers.GetInventoryReceipt(inventoryService, logg))
			})
			r.Post("/orders/{orderID}/pack", controllers.PackOrder(ordersService, logg))
		})
	})

	return r
}
