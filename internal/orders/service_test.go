package orders

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/internal/cart"
	"github.com/figurehub/figurehub-backend/internal/stock"
	"github.com/figurehub/figurehub-backend/internal/wallet"
	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
	"github.com/figurehub/figurehub-backend/pkg/outbox"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  payment_ref_code TEXT NOT NULL,
  status TEXT NOT NULL,
  payment_method TEXT NOT NULL DEFAULT 'wallet',
  total_amount INTEGER NOT NULL DEFAULT 0,
  paid_amount INTEGER NOT NULL DEFAULT 0,
  shipping_fee INTEGER NOT NULL DEFAULT 0,
  original_shipping_fee INTEGER NOT NULL DEFAULT 0,
  shipping_address_id TEXT,
  voucher_code TEXT,
  payment_deadline DATETIME,
  completed_at DATETIME,
  cancelled_at DATETIME,
  expired_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  variant_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price INTEGER NOT NULL,
  is_preorder INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price INTEGER NOT NULL DEFAULT 0,
  stock_available INTEGER NOT NULL DEFAULT 0,
  stock_defect INTEGER NOT NULL DEFAULT 0,
  weight_grams INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS preorder_configs (
  variant_id TEXT PRIMARY KEY,
  deposit_amount INTEGER NOT NULL DEFAULT 0,
  full_price INTEGER NOT NULL DEFAULT 0,
  total_slots INTEGER NOT NULL DEFAULT 0,
  sold_slots INTEGER NOT NULL DEFAULT 0,
  stock_held INTEGER NOT NULL DEFAULT 0,
  max_qty_per_user INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS wallets (
  customer_id TEXT PRIMARY KEY,
  balance_available INTEGER NOT NULL DEFAULT 0,
  balance_locked INTEGER NOT NULL DEFAULT 0,
  loyalty_points INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS wallet_transactions (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  amount INTEGER NOT NULL,
  type TEXT NOT NULL,
  ref_code TEXT NOT NULL,
  description TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  variant_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME,
  published_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT
);`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type fakeContractStore struct {
	contracts    []models.PreorderContract
	depositedFor []uuid.UUID
	cancelledFor []uuid.UUID
	completedFor []uuid.UUID
}

func (f *fakeContractStore) MarkDepositedByOrderTx(_ context.Context, _ *gorm.DB, orderID uuid.UUID) ([]models.PreorderContract, error) {
	f.depositedFor = append(f.depositedFor, orderID)
	return f.contracts, nil
}

func (f *fakeContractStore) CancelByDepositOrderTx(_ context.Context, _ *gorm.DB, orderID uuid.UUID, _ string) ([]models.PreorderContract, error) {
	f.cancelledFor = append(f.cancelledFor, orderID)
	return f.contracts, nil
}

func (f *fakeContractStore) CompleteByOrderTx(_ context.Context, _ *gorm.DB, orderID uuid.UUID) ([]models.PreorderContract, error) {
	f.completedFor = append(f.completedFor, orderID)
	return nil, nil
}

type ordersHarness struct {
	svc       Service
	db        *gorm.DB
	contracts *fakeContractStore
	now       time.Time
}

func newOrdersHarness(t *testing.T) *ordersHarness {
	t.Helper()

	db := setupOrdersTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard})
	walletSvc, err := wallet.NewService(wallet.NewRepository(db), 1000)
	require.NoError(t, err)

	contracts := &fakeContractStore{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc, err := NewService(Params{
		Repo:      NewRepository(db),
		Tx:        gormTxRunner{db: db},
		Outbox:    outbox.NewService(outbox.NewRepository(db), logg),
		Stock:     stock.NewManager(),
		Contracts: contracts,
		Cart:      cart.NewRepository(db),
		Wallet:    walletSvc,
		Logger:    logg,
		Now:       func() time.Time { return now },
	})
	require.NoError(t, err)

	return &ordersHarness{svc: svc, db: db, contracts: contracts, now: now}
}

func (h *ordersHarness) seedVariant(t *testing.T, stockAvailable int) uuid.UUID {
	t.Helper()
	variant := &models.Variant{
		ID:             uuid.New(),
		ProductID:      uuid.New(),
		SKU:            "SKU-" + uuid.NewString()[:8],
		Name:           "standard",
		UnitPrice:      100000,
		StockAvailable: stockAvailable,
	}
	require.NoError(t, h.db.Create(variant).Error)
	return variant.ID
}

func (h *ordersHarness) seedPreorderConfig(t *testing.T, soldSlots, totalSlots int) uuid.UUID {
	t.Helper()
	variantID := h.seedVariant(t, 0)
	cfg := &models.PreorderConfig{
		VariantID:     variantID,
		DepositAmount: 1000000,
		FullPrice:     3000000,
		TotalSlots:    totalSlots,
		SoldSlots:     soldSlots,
		MaxQtyPerUser: 5,
	}
	require.NoError(t, h.db.Create(cfg).Error)
	return variantID
}

type seedOrderInput struct {
	customerID uuid.UUID
	status     enums.OrderStatus
	total      int64
	items      []models.OrderItem
}

func (h *ordersHarness) seedOrder(t *testing.T, input seedOrderInput) *models.Order {
	t.Helper()
	deadline := h.now.Add(15 * time.Minute)
	order := &models.Order{
		ID:              uuid.New(),
		CustomerID:      input.customerID,
		PaymentRefCode:  "PAY-" + uuid.NewString()[:8],
		Status:          input.status,
		PaymentMethod:   enums.PaymentMethodWallet,
		TotalAmount:     input.total,
		PaymentDeadline: &deadline,
	}
	require.NoError(t, h.db.Create(order).Error)
	for i := range input.items {
		input.items[i].ID = uuid.New()
		input.items[i].OrderID = order.ID
		require.NoError(t, h.db.Create(&input.items[i]).Error)
	}
	return order
}

func (h *ordersHarness) seedWallet(t *testing.T, customerID uuid.UUID, balance int64) {
	t.Helper()
	require.NoError(t, h.db.Create(&models.Wallet{CustomerID: customerID, BalanceAvailable: balance}).Error)
}

func (h *ordersHarness) countEvents(t *testing.T, eventType enums.OutboxEventType) int64 {
	t.Helper()
	var count int64
	require.NoError(t, h.db.Model(&models.OutboxEvent{}).Where("event_type = ?", eventType).Count(&count).Error)
	return count
}

func TestConfirmPaymentWallet(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()
	h.seedWallet(t, customerID, 500000)

	variantID := h.seedVariant(t, 0)
	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusPendingPayment,
		total:      300000,
		items:      []models.OrderItem{{VariantID: variantID, Quantity: 2, UnitPrice: 150000}},
	})

	paid, err := h.svc.ConfirmPayment(ctx, ConfirmPaymentInput{
		OrderID:    order.ID,
		CustomerID: customerID,
		Method:     enums.PaymentMethodWallet,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, paid.Status)
	assert.Equal(t, int64(300000), paid.PaidAmount)
	assert.Nil(t, paid.PaymentDeadline)

	var w models.Wallet
	require.NoError(t, h.db.First(&w, "customer_id = ?", customerID).Error)
	assert.Equal(t, int64(200000), w.BalanceAvailable)

	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderPaid))
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventWalletDebited))
}

func TestConfirmPaymentInsufficientBalanceRollsBack(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()
	h.seedWallet(t, customerID, 1000)

	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusPendingPayment,
		total:      300000,
	})

	_, err := h.svc.ConfirmPayment(ctx, ConfirmPaymentInput{
		OrderID:    order.ID,
		CustomerID: customerID,
		Method:     enums.PaymentMethodWallet,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientBalance, typed.Code())

	var after models.Order
	require.NoError(t, h.db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusPendingPayment, after.Status)
	assert.Equal(t, int64(0), after.PaidAmount)
	assert.Equal(t, int64(0), h.countEvents(t, enums.EventOrderPaid))
}

func TestConfirmDepositActivatesContracts(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()
	h.seedWallet(t, customerID, 2000000)

	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusWaitingDeposit,
		total:      1000000,
	})
	h.contracts.contracts = []models.PreorderContract{{
		ID:                uuid.New(),
		CustomerID:        customerID,
		VariantID:         uuid.New(),
		Quantity:          1,
		DepositAmountPaid: 1000000,
		Status:            enums.ContractStatusDeposited,
		DepositOrderID:    order.ID,
	}}

	paid, err := h.svc.ConfirmPayment(ctx, ConfirmPaymentInput{
		OrderID:    order.ID,
		CustomerID: customerID,
		Method:     enums.PaymentMethodWallet,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDeposited, paid.Status)
	assert.Equal(t, []uuid.UUID{order.ID}, h.contracts.depositedFor)
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventContractDeposited))

	entries := []models.WalletTransaction{}
	require.NoError(t, h.db.Where("customer_id = ?", customerID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, enums.WalletEntryDepositPayment, entries[0].Type)
	assert.Equal(t, int64(-1000000), entries[0].Amount)
}

func TestConfirmDepositRejectsCOD(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()

	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusWaitingDeposit,
		total:      1000000,
	})

	_, err := h.svc.ConfirmPayment(ctx, ConfirmPaymentInput{
		OrderID:    order.ID,
		CustomerID: customerID,
		Method:     enums.PaymentMethodCOD,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestConfirmPaymentCODKeepsPaidAmountZero(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()

	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusPendingPayment,
		total:      300000,
	})

	paid, err := h.svc.ConfirmPayment(ctx, ConfirmPaymentInput{
		OrderID:    order.ID,
		CustomerID: customerID,
		Method:     enums.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, paid.Status)
	assert.Equal(t, int64(0), paid.PaidAmount)
	assert.Equal(t, enums.PaymentMethodCOD, paid.PaymentMethod)
}

func TestCancelReleasesReservationsAndRestoresCart(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()

	retailVariant := h.seedVariant(t, 3)
	preorderVariant := h.seedPreorderConfig(t, 2, 10)

	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusPendingPayment,
		total:      500000,
		items: []models.OrderItem{
			{VariantID: retailVariant, Quantity: 2, UnitPrice: 100000},
			{VariantID: preorderVariant, Quantity: 1, UnitPrice: 300000, IsPreorder: true},
		},
	})

	cancelled, err := h.svc.Cancel(ctx, CancelInput{OrderID: order.ID, CustomerID: customerID, Reason: "changed my mind"})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	var variant models.Variant
	require.NoError(t, h.db.First(&variant, "id = ?", retailVariant).Error)
	assert.Equal(t, 5, variant.StockAvailable)

	var cfg models.PreorderConfig
	require.NoError(t, h.db.First(&cfg, "variant_id = ?", preorderVariant).Error)
	assert.Equal(t, 1, cfg.SoldSlots)

	var items []models.CartItem
	require.NoError(t, h.db.Find(&items).Error)
	assert.Len(t, items, 2)

	assert.Equal(t, []uuid.UUID{order.ID}, h.contracts.cancelledFor)
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderCancelled))
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventNotificationRequested))

	// cancelling again is a no-op
	again, err := h.svc.Cancel(ctx, CancelInput{OrderID: order.ID, CustomerID: customerID})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, again.Status)
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderCancelled))
}

func TestCancelPaidOrderFails(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()

	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusProcessing,
		total:      300000,
	})

	_, err := h.svc.Cancel(ctx, CancelInput{OrderID: order.ID, CustomerID: customerID})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestCancelForeignOrderNotFound(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()

	order := h.seedOrder(t, seedOrderInput{
		customerID: uuid.New(),
		status:     enums.OrderStatusPendingPayment,
		total:      100,
	})

	_, err := h.svc.Cancel(ctx, CancelInput{OrderID: order.ID, CustomerID: uuid.New()})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestExpireIsIdempotent(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()

	variantID := h.seedVariant(t, 0)
	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusPendingPayment,
		total:      100000,
		items:      []models.OrderItem{{VariantID: variantID, Quantity: 1, UnitPrice: 100000}},
	})

	require.NoError(t, h.svc.Expire(ctx, order.ID))

	var after models.Order
	require.NoError(t, h.db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusExpired, after.Status)
	require.NotNil(t, after.ExpiredAt)
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderExpired))

	require.NoError(t, h.svc.Expire(ctx, order.ID))
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderExpired))
}

func TestExpireSkipsPaidOrder(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()

	order := h.seedOrder(t, seedOrderInput{
		customerID: uuid.New(),
		status:     enums.OrderStatusProcessing,
		total:      100000,
	})

	require.NoError(t, h.svc.Expire(ctx, order.ID))

	var after models.Order
	require.NoError(t, h.db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusProcessing, after.Status)
	assert.Equal(t, int64(0), h.countEvents(t, enums.EventOrderExpired))
}

func TestApplyCarrierStatusDelivered(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()
	h.seedWallet(t, customerID, 0)

	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusShipping,
		total:      2750,
	})

	require.NoError(t, h.svc.ApplyCarrierStatus(ctx, CarrierStatusInput{OrderID: order.ID, CarrierStatus: "delivered"}))

	var after models.Order
	require.NoError(t, h.db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusCompleted, after.Status)
	require.NotNil(t, after.CompletedAt)

	var w models.Wallet
	require.NoError(t, h.db.First(&w, "customer_id = ?", customerID).Error)
	assert.Equal(t, int64(2), w.LoyaltyPoints)

	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderCompleted))
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventLoyaltyAccrued))
}

func TestApplyCarrierStatusPickingMovesToShipping(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()

	order := h.seedOrder(t, seedOrderInput{
		customerID: uuid.New(),
		status:     enums.OrderStatusPacked,
		total:      100000,
	})

	require.NoError(t, h.svc.ApplyCarrierStatus(ctx, CarrierStatusInput{OrderID: order.ID, CarrierStatus: "picking"}))

	var after models.Order
	require.NoError(t, h.db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusShipping, after.Status)
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderShipping))

	// same status again is a no-op
	require.NoError(t, h.svc.ApplyCarrierStatus(ctx, CarrierStatusInput{OrderID: order.ID, CarrierStatus: "picked"}))
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderShipping))
}

func TestApplyCarrierStatusUnknownIgnored(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()

	order := h.seedOrder(t, seedOrderInput{
		customerID: uuid.New(),
		status:     enums.OrderStatusShipping,
		total:      100000,
	})

	require.NoError(t, h.svc.ApplyCarrierStatus(ctx, CarrierStatusInput{OrderID: order.ID, CarrierStatus: "teleported"}))

	var after models.Order
	require.NoError(t, h.db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusShipping, after.Status)
}

func TestApplyCarrierStatusReturnedRefundsWallet(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()
	customerID := uuid.New()
	h.seedWallet(t, customerID, 1000)

	order := h.seedOrder(t, seedOrderInput{
		customerID: customerID,
		status:     enums.OrderStatusReturning,
		total:      250000,
	})
	require.NoError(t, h.db.Model(&models.Order{}).Where("id = ?", order.ID).Update("paid_amount", 250000).Error)

	require.NoError(t, h.svc.ApplyCarrierStatus(ctx, CarrierStatusInput{OrderID: order.ID, CarrierStatus: "returned"}))

	var after models.Order
	require.NoError(t, h.db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusReturned, after.Status)

	var w models.Wallet
	require.NoError(t, h.db.First(&w, "customer_id = ?", customerID).Error)
	assert.Equal(t, int64(251000), w.BalanceAvailable)

	assert.Equal(t, int64(1), h.countEvents(t, enums.EventWalletCredited))
}

func TestApplyCarrierStatusConflicts(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()

	order := h.seedOrder(t, seedOrderInput{
		customerID: uuid.New(),
		status:     enums.OrderStatusPendingPayment,
		total:      100000,
	})

	err := h.svc.ApplyCarrierStatus(ctx, CarrierStatusInput{OrderID: order.ID, CarrierStatus: "delivered"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestPack(t *testing.T) {
	h := newOrdersHarness(t)
	ctx := context.Background()

	order := h.seedOrder(t, seedOrderInput{
		customerID: uuid.New(),
		status:     enums.OrderStatusProcessing,
		total:      100000,
	})

	require.NoError(t, h.svc.Pack(ctx, order.ID))
	var after models.Order
	require.NoError(t, h.db.First(&after, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusPacked, after.Status)
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderPacked))

	require.NoError(t, h.svc.Pack(ctx, order.ID))
	assert.Equal(t, int64(1), h.countEvents(t, enums.EventOrderPacked))
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from enums.OrderStatus
		to   enums.OrderStatus
		ok   bool
	}{
		{enums.OrderStatusPendingPayment, enums.OrderStatusProcessing, true},
		{enums.OrderStatusWaitingDeposit, enums.OrderStatusDeposited, true},
		{enums.OrderStatusPendingPayment, enums.OrderStatusCompleted, false},
		{enums.OrderStatusShipping, enums.OrderStatusCompleted, true},
		{enums.OrderStatusCompleted, enums.OrderStatusShipping, false},
		{enums.OrderStatusCancelled, enums.OrderStatusProcessing, false},
		{enums.OrderStatusReturning, enums.OrderStatusReturned, true},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}
