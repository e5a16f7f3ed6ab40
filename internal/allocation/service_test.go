package allocation

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

	"github.com/figurehub/figurehub-backend/internal/contracts"
	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
	"github.com/figurehub/figurehub-backend/pkg/outbox"
)

func setupAllocationTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:allocation_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, stmt := range []string{
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
		`CREATE TABLE IF NOT EXISTS preorder_contracts (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  variant_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  deposit_amount_paid INTEGER NOT NULL DEFAULT 0,
  remaining_amount INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL,
  deposit_order_id TEXT NOT NULL,
  final_payment_order_id TEXT,
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

type allocationHarness struct {
	svc *Service
	db  *gorm.DB
	now time.Time
}

func newAllocationHarness(t *testing.T) *allocationHarness {
	t.Helper()
	db := setupAllocationTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "allocation-test", Output: io.Discard})
	svc, err := NewService(contracts.NewRepository(db), outbox.NewService(outbox.NewRepository(db), logg), logg)
	require.NoError(t, err)
	return &allocationHarness{
		svc: svc,
		db:  db,
		now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (h *allocationHarness) seedConfig(t *testing.T, stockHeld int) uuid.UUID {
	t.Helper()
	variantID := uuid.New()
	require.NoError(t, h.db.Create(&models.PreorderConfig{
		VariantID:     variantID,
		DepositAmount: 1000000,
		FullPrice:     3000000,
		TotalSlots:    20,
		SoldSlots:     10,
		StockHeld:     stockHeld,
		MaxQtyPerUser: 5,
	}).Error)
	return variantID
}

func (h *allocationHarness) seedContract(t *testing.T, variantID uuid.UUID, quantity int, age time.Duration) uuid.UUID {
	t.Helper()
	contract := &models.PreorderContract{
		ID:              uuid.New(),
		CustomerID:      uuid.New(),
		VariantID:       variantID,
		Quantity:        quantity,
		RemainingAmount: int64(quantity) * 2000000,
		Status:          enums.ContractStatusDeposited,
		DepositOrderID:  uuid.New(),
		CreatedAt:       h.now.Add(-age),
	}
	require.NoError(t, h.db.Create(contract).Error)
	return contract.ID
}

func (h *allocationHarness) contractStatus(t *testing.T, id uuid.UUID) enums.ContractStatus {
	t.Helper()
	var contract models.PreorderContract
	require.NoError(t, h.db.First(&contract, "id = ?", id).Error)
	return contract.Status
}

func (h *allocationHarness) stockHeld(t *testing.T, variantID uuid.UUID) int {
	t.Helper()
	var cfg models.PreorderConfig
	require.NoError(t, h.db.First(&cfg, "variant_id = ?", variantID).Error)
	return cfg.StockHeld
}

func TestAllocatePromotesOldestFirst(t *testing.T) {
	h := newAllocationHarness(t)
	ctx := context.Background()
	variantID := h.seedConfig(t, 0)

	oldest := h.seedContract(t, variantID, 3, 3*time.Hour)
	middle := h.seedContract(t, variantID, 2, 2*time.Hour)
	newest := h.seedContract(t, variantID, 1, time.Hour)

	promoted, err := h.svc.AllocateTx(ctx, h.db, variantID, 5)
	require.NoError(t, err)
	require.Len(t, promoted, 2)
	assert.Equal(t, oldest, promoted[0].ID)
	assert.Equal(t, middle, promoted[1].ID)

	assert.Equal(t, enums.ContractStatusReadyForPayment, h.contractStatus(t, oldest))
	assert.Equal(t, enums.ContractStatusReadyForPayment, h.contractStatus(t, middle))
	assert.Equal(t, enums.ContractStatusDeposited, h.contractStatus(t, newest))
	assert.Equal(t, 0, h.stockHeld(t, variantID))

	var readyEvents int64
	require.NoError(t, h.db.Model(&models.OutboxEvent{}).
		Where("event_type = ?", enums.EventContractReadyToPay).Count(&readyEvents).Error)
	assert.Equal(t, int64(2), readyEvents)
}

func TestAllocateNoPartialFulfilment(t *testing.T) {
	h := newAllocationHarness(t)
	ctx := context.Background()
	variantID := h.seedConfig(t, 0)

	big := h.seedContract(t, variantID, 5, 2*time.Hour)
	small := h.seedContract(t, variantID, 1, time.Hour)

	promoted, err := h.svc.AllocateTx(ctx, h.db, variantID, 3)
	require.NoError(t, err)
	assert.Empty(t, promoted)

	// the oldest contract blocks the queue; units wait for the next receipt
	assert.Equal(t, enums.ContractStatusDeposited, h.contractStatus(t, big))
	assert.Equal(t, enums.ContractStatusDeposited, h.contractStatus(t, small))
	assert.Equal(t, 3, h.stockHeld(t, variantID))
}

func TestAllocateAccumulatesAcrossReceipts(t *testing.T) {
	h := newAllocationHarness(t)
	ctx := context.Background()
	variantID := h.seedConfig(t, 0)

	contractID := h.seedContract(t, variantID, 4, time.Hour)

	promoted, err := h.svc.AllocateTx(ctx, h.db, variantID, 3)
	require.NoError(t, err)
	assert.Empty(t, promoted)
	assert.Equal(t, 3, h.stockHeld(t, variantID))

	promoted, err = h.svc.AllocateTx(ctx, h.db, variantID, 2)
	require.NoError(t, err)
	require.Len(t, promoted, 1)
	assert.Equal(t, contractID, promoted[0].ID)
	assert.Equal(t, 1, h.stockHeld(t, variantID))
}

func TestAllocateUnknownVariant(t *testing.T) {
	h := newAllocationHarness(t)
	ctx := context.Background()

	_, err := h.svc.AllocateTx(ctx, h.db, uuid.New(), 3)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAllocateZeroUnitsStillSettlesQueue(t *testing.T) {
	h := newAllocationHarness(t)
	ctx := context.Background()
	variantID := h.seedConfig(t, 2)

	contractID := h.seedContract(t, variantID, 2, time.Hour)

	// stock was already held from an earlier receipt with nobody deposited
	promoted, err := h.svc.AllocateTx(ctx, h.db, variantID, 0)
	require.NoError(t, err)
	require.Len(t, promoted, 1)
	assert.Equal(t, contractID, promoted[0].ID)
	assert.Equal(t, 0, h.stockHeld(t, variantID))
}
