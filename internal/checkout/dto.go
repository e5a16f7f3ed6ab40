package checkout

import (
	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// Line is one requested checkout line. PayFullUpfront applies to pre-order
// variants only: the customer pays the full price immediately instead of a
// deposit, and the flat shipping fee is waived. UnitPriceHint is what the
// client last saw; the server-side snapshot always wins.
type Line struct {
	VariantID      uuid.UUID
	Quantity       int
	UnitPriceHint  int64
	PayFullUpfront bool
}

// Input describes one checkout request against the customer's active cart.
// PaymentMethod records how the customer intends to settle the group; the
// actual charge happens at payment confirmation.
type Input struct {
	CustomerID        uuid.UUID
	ShippingAddressID *uuid.UUID
	PaymentMethod     enums.PaymentMethod
	VoucherCode       string
	Items             []Line
}

// Result reports the orders a checkout split into. All orders share the
// payment ref code and can be paid as one group.
type Result struct {
	PaymentRefCode string
	TotalAmount    int64
	OrderIDs       []uuid.UUID
	Orders         []models.Order
}
