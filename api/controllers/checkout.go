package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/api/responses"
	"github.com/figurehub/figurehub-backend/api/validators"
	checkoutsvc "github.com/figurehub/figurehub-backend/internal/checkout"
	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
)

// Checkout submits the customer's active cart. Retail lines bundle into one
// order; each pre-order line becomes its own deposit order with a contract.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var method enums.PaymentMethod
		if payload.PaymentMethod != "" {
			method, err = enums.ParsePaymentMethod(payload.PaymentMethod)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
				return
			}
		}

		lines := make([]checkoutsvc.Line, 0, len(payload.Items))
		for _, item := range payload.Items {
			lines = append(lines, checkoutsvc.Line{
				VariantID:      item.VariantID,
				Quantity:       item.Quantity,
				UnitPriceHint:  item.UnitPriceHint,
				PayFullUpfront: item.PayFullUpfront,
			})
		}

		result, err := svc.Execute(r.Context(), checkoutsvc.Input{
			CustomerID:        customerID,
			ShippingAddressID: payload.ShippingAddressID,
			PaymentMethod:     method,
			VoucherCode:       payload.VoucherCode,
			Items:             lines,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCheckoutResponse(result))
	}
}

type checkoutRequest struct {
	Items             []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddressID *uuid.UUID            `json:"shipping_address_id,omitempty" validate:"omitempty,uuid4"`
	PaymentMethod     string                `json:"payment_method,omitempty" validate:"omitempty,max=20"`
	VoucherCode       string                `json:"voucher_code,omitempty" validate:"omitempty,max=40"`
}

type checkoutItemRequest struct {
	VariantID      uuid.UUID `json:"variant_id" validate:"required,uuid4"`
	Quantity       int       `json:"quantity" validate:"required,min=1"`
	UnitPriceHint  int64     `json:"unit_price_hint,omitempty" validate:"omitempty,min=0"`
	PayFullUpfront bool      `json:"pay_full_upfront"`
}

type checkoutResponse struct {
	PaymentRefCode string          `json:"payment_ref_code"`
	TotalAmount    int64           `json:"total_amount"`
	OrderIDs       []uuid.UUID     `json:"order_ids"`
	Orders         []orderResponse `json:"orders"`
}

func newCheckoutResponse(result *checkoutsvc.Result) checkoutResponse {
	if result == nil {
		return checkoutResponse{}
	}
	orders := make([]orderResponse, 0, len(result.Orders))
	for i := range result.Orders {
		orders = append(orders, newOrderResponse(&result.Orders[i]))
	}
	return checkoutResponse{
		PaymentRefCode: result.PaymentRefCode,
		TotalAmount:    result.TotalAmount,
		OrderIDs:       result.OrderIDs,
		Orders:         orders,
	}
}

func newOrderResponse(order *models.Order) orderResponse {
	if order == nil {
		return orderResponse{}
	}
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ItemID:     item.ID,
			VariantID:  item.VariantID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			IsPreorder: item.IsPreorder,
		})
	}
	return orderResponse{
		OrderID:         order.ID,
		Status:          string(order.Status),
		PaymentRefCode:  order.PaymentRefCode,
		PaymentMethod:   string(order.PaymentMethod),
		TotalAmount:     order.TotalAmount,
		PaidAmount:      order.PaidAmount,
		ShippingFee:     order.ShippingFee,
		PaymentDeadline: order.PaymentDeadline,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
