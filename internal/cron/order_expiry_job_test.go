package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/logger"
)

type fakeOverdueReader struct {
	orders     []models.Order
	err        error
	lastCutoff time.Time
	lastLimit  int
}

func (f *fakeOverdueReader) FindAwaitingPaymentBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Order, error) {
	f.lastCutoff = cutoff
	f.lastLimit = limit
	return f.orders, f.err
}

type fakeExpirer struct {
	expired []uuid.UUID
	failOn  uuid.UUID
}

func (f *fakeExpirer) Expire(ctx context.Context, orderID uuid.UUID) error {
	if f.failOn != uuid.Nil && orderID == f.failOn {
		return errors.New("boom")
	}
	f.expired = append(f.expired, orderID)
	return nil
}

func newOrderExpiryJob(t *testing.T, reader *fakeOverdueReader, expirer *fakeExpirer) *orderExpiryJob {
	t.Helper()
	jobIface, err := NewOrderExpiryJob(OrderExpiryJobParams{
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
		Overdue:   reader,
		Expirer:   expirer,
		BatchSize: 50,
	})
	if err != nil {
		t.Fatalf("NewOrderExpiryJob: %v", err)
	}
	job, ok := jobIface.(*orderExpiryJob)
	if !ok {
		t.Fatalf("expected orderExpiryJob, got %T", jobIface)
	}
	return job
}

func TestOrderExpiryJobExpiresOverdueOrders(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := models.Order{ID: uuid.New()}
	second := models.Order{ID: uuid.New()}
	reader := &fakeOverdueReader{orders: []models.Order{first, second}}
	expirer := &fakeExpirer{}

	job := newOrderExpiryJob(t, reader, expirer)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reader.lastCutoff.Equal(now) {
		t.Fatalf("expected cutoff %s, got %s", now, reader.lastCutoff)
	}
	if reader.lastLimit != 50 {
		t.Fatalf("expected batch size 50, got %d", reader.lastLimit)
	}
	if len(expirer.expired) != 2 {
		t.Fatalf("expected 2 expired orders, got %d", len(expirer.expired))
	}
}

func TestOrderExpiryJobContinuesPastFailures(t *testing.T) {
	broken := models.Order{ID: uuid.New()}
	healthy := models.Order{ID: uuid.New()}
	reader := &fakeOverdueReader{orders: []models.Order{broken, healthy}}
	expirer := &fakeExpirer{failOn: broken.ID}

	job := newOrderExpiryJob(t, reader, expirer)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected combined error")
	}
	if len(expirer.expired) != 1 || expirer.expired[0] != healthy.ID {
		t.Fatalf("expected healthy order expired despite failure, got %v", expirer.expired)
	}
}

func TestOrderExpiryJobPropagatesReadErrors(t *testing.T) {
	reader := &fakeOverdueReader{err: errors.New("db down")}
	job := newOrderExpiryJob(t, reader, &fakeExpirer{})

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
