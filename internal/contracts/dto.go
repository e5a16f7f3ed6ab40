package contracts

import (
	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// FinalPaymentInput settles the remaining balance of an allocated contract.
type FinalPaymentInput struct {
	ContractID        uuid.UUID
	CustomerID        uuid.UUID
	Method            enums.PaymentMethod
	ShippingAddressID *uuid.UUID
}
