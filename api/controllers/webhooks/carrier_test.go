package webhooks

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	ordersvc "github.com/figurehub/figurehub-backend/internal/orders"
	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/logger"
)

type testOrdersService struct {
	carrierFn func(ctx context.Context, input ordersvc.CarrierStatusInput) error
}

func (s *testOrdersService) Get(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	return nil, nil
}

func (s *testOrdersService) List(ctx context.Context, customerID uuid.UUID, limit int) ([]models.Order, error) {
	return nil, nil
}

func (s *testOrdersService) ConfirmPayment(ctx context.Context, input ordersvc.ConfirmPaymentInput) (*models.Order, error) {
	return nil, nil
}

func (s *testOrdersService) Cancel(ctx context.Context, input ordersvc.CancelInput) (*models.Order, error) {
	return nil, nil
}

func (s *testOrdersService) Expire(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

func (s *testOrdersService) Pack(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

func (s *testOrdersService) ApplyCarrierStatus(ctx context.Context, input ordersvc.CarrierStatusInput) error {
	if s.carrierFn != nil {
		return s.carrierFn(ctx, input)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestCarrierStatusAccepted(t *testing.T) {
	orderID := uuid.New()
	var got ordersvc.CarrierStatusInput
	svc := &testOrdersService{
		carrierFn: func(ctx context.Context, input ordersvc.CarrierStatusInput) error {
			got = input
			return nil
		},
	}

	body := strings.NewReader(`{"order_id":"` + orderID.String() + `","status":"delivered"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/carrier", body)
	resp := httptest.NewRecorder()
	CarrierStatus(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.OrderID != orderID || got.CarrierStatus != "delivered" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestCarrierStatusRejectsMissingOrder(t *testing.T) {
	body := strings.NewReader(`{"status":"delivered"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/carrier", body)
	resp := httptest.NewRecorder()
	CarrierStatus(&testOrdersService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
