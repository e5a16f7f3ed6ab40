package orders

import (
	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// ConfirmPaymentInput carries a customer's payment confirmation for one order.
type ConfirmPaymentInput struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Method     enums.PaymentMethod
}

// CancelInput carries a customer-initiated cancellation.
type CancelInput struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Reason     string
}

// CarrierStatusInput carries one carrier webhook callback for an order.
type CarrierStatusInput struct {
	OrderID       uuid.UUID
	CarrierStatus string
}
