package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	ordersvc "github.com/figurehub/figurehub-backend/internal/orders"
	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
)

type testOrdersService struct {
	getFn            func(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error)
	listFn           func(ctx context.Context, customerID uuid.UUID, limit int) ([]models.Order, error)
	confirmPaymentFn func(ctx context.Context, input ordersvc.ConfirmPaymentInput) (*models.Order, error)
	cancelFn         func(ctx context.Context, input ordersvc.CancelInput) (*models.Order, error)
	packFn           func(ctx context.Context, orderID uuid.UUID) error
	carrierFn        func(ctx context.Context, input ordersvc.CarrierStatusInput) error
}

func (s *testOrdersService) Get(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	if s.getFn != nil {
		return s.getFn(ctx, customerID, orderID)
	}
	return &models.Order{ID: orderID, CustomerID: customerID}, nil
}

func (s *testOrdersService) List(ctx context.Context, customerID uuid.UUID, limit int) ([]models.Order, error) {
	if s.listFn != nil {
		return s.listFn(ctx, customerID, limit)
	}
	return nil, nil
}

func (s *testOrdersService) ConfirmPayment(ctx context.Context, input ordersvc.ConfirmPaymentInput) (*models.Order, error) {
	if s.confirmPaymentFn != nil {
		return s.confirmPaymentFn(ctx, input)
	}
	return &models.Order{ID: input.OrderID}, nil
}

func (s *testOrdersService) Cancel(ctx context.Context, input ordersvc.CancelInput) (*models.Order, error) {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, input)
	}
	return &models.Order{ID: input.OrderID}, nil
}

func (s *testOrdersService) Expire(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

func (s *testOrdersService) Pack(ctx context.Context, orderID uuid.UUID) error {
	if s.packFn != nil {
		return s.packFn(ctx, orderID)
	}
	return nil
}

func (s *testOrdersService) ApplyCarrierStatus(ctx context.Context, input ordersvc.CarrierStatusInput) error {
	if s.carrierFn != nil {
		return s.carrierFn(ctx, input)
	}
	return nil
}

func TestConfirmOrderPaymentSuccess(t *testing.T) {
	customerID := uuid.New()
	orderID := uuid.New()
	var got ordersvc.ConfirmPaymentInput
	svc := &testOrdersService{
		confirmPaymentFn: func(ctx context.Context, input ordersvc.ConfirmPaymentInput) (*models.Order, error) {
			got = input
			return &models.Order{ID: input.OrderID, CustomerID: input.CustomerID, Status: enums.OrderStatusProcessing}, nil
		},
	}

	body := strings.NewReader(`{"payment_method":"wallet"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/confirm-payment", body)
	req = withCustomer(req, customerID)
	req = addRouteParam(req, "orderID", orderID.String())

	resp := httptest.NewRecorder()
	ConfirmOrderPayment(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.OrderID != orderID || got.CustomerID != customerID || got.Method != enums.PaymentMethodWallet {
		t.Fatalf("unexpected input %+v", got)
	}

	var envelope struct {
		Data orderResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Status != string(enums.OrderStatusProcessing) {
		t.Fatalf("unexpected status %q", envelope.Data.Status)
	}
}

func TestConfirmOrderPaymentRejectsUnknownMethod(t *testing.T) {
	orderID := uuid.New()
	body := strings.NewReader(`{"payment_method":"barter"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/confirm-payment", body)
	req = withCustomer(req, uuid.New())
	req = addRouteParam(req, "orderID", orderID.String())

	resp := httptest.NewRecorder()
	ConfirmOrderPayment(&testOrdersService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCancelOrderPassesReason(t *testing.T) {
	customerID := uuid.New()
	orderID := uuid.New()
	var got ordersvc.CancelInput
	svc := &testOrdersService{
		cancelFn: func(ctx context.Context, input ordersvc.CancelInput) (*models.Order, error) {
			got = input
			return &models.Order{ID: input.OrderID, Status: enums.OrderStatusCancelled}, nil
		},
	}

	body := strings.NewReader(`{"reason":"changed my mind"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/cancel", body)
	req = withCustomer(req, customerID)
	req = addRouteParam(req, "orderID", orderID.String())

	resp := httptest.NewRecorder()
	CancelOrder(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.OrderID != orderID || got.CustomerID != customerID || got.Reason != "changed my mind" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestListOrdersUsesLimit(t *testing.T) {
	customerID := uuid.New()
	var gotLimit int
	svc := &testOrdersService{
		listFn: func(ctx context.Context, cid uuid.UUID, limit int) ([]models.Order, error) {
			gotLimit = limit
			return []models.Order{{ID: uuid.New(), CustomerID: cid}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?limit=5", nil)
	req = withCustomer(req, customerID)
	resp := httptest.NewRecorder()
	ListOrders(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if gotLimit != 5 {
		t.Fatalf("expected limit 5 got %d", gotLimit)
	}
}

func TestGetOrderRequiresAuth(t *testing.T) {
	orderID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	req = addRouteParam(req, "orderID", orderID.String())
	resp := httptest.NewRecorder()
	GetOrder(&testOrdersService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestPackOrderInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/staff/orders/nope/pack", nil)
	req = addRouteParam(req, "orderID", "nope")
	resp := httptest.NewRecorder()
	PackOrder(&testOrdersService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
