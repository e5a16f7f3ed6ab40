package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/logger"
)

const defaultExpiryBatchSize = 200

// OrderExpiryJobParams configure the unpaid order sweeper.
type OrderExpiryJobParams struct {
	Logger    *logger.Logger
	Overdue   overdueOrderReader
	Expirer   orderExpirer
	BatchSize int
}

type overdueOrderReader interface {
	FindAwaitingPaymentBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Order, error)
}

type orderExpirer interface {
	Expire(ctx context.Context, orderID uuid.UUID) error
}

// NewOrderExpiryJob builds the sweeper that expires orders whose payment
// deadline has passed.
func NewOrderExpiryJob(params OrderExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Overdue == nil {
		return nil, fmt.Errorf("overdue orders reader required")
	}
	if params.Expirer == nil {
		return nil, fmt.Errorf("order expirer required")
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultExpiryBatchSize
	}
	return &orderExpiryJob{
		logg:      params.Logger,
		overdue:   params.Overdue,
		expirer:   params.Expirer,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

type orderExpiryJob struct {
	logg      *logger.Logger
	overdue   overdueOrderReader
	expirer   orderExpirer
	batchSize int
	now       func() time.Time
}

func (j *orderExpiryJob) Name() string { return "order-expiry" }

func (j *orderExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC()
	orders, err := j.overdue.FindAwaitingPaymentBefore(ctx, cutoff, j.batchSize)
	if err != nil {
		return fmt.Errorf("query overdue orders: %w", err)
	}

	// One order per transaction so a single failure cannot stall the batch.
	var errs []error
	expired := 0
	for _, order := range orders {
		if err := j.expirer.Expire(ctx, order.ID); err != nil {
			errs = append(errs, fmt.Errorf("expire order %s: %w", order.ID, err))
			continue
		}
		expired++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"candidates": len(orders),
		"expired":    expired,
		"failed":     len(errs),
	})
	j.logg.Info(logCtx, "order expiry sweep complete")
	return multierr.Combine(errs...)
}
