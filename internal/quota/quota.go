package quota

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/pkg/enums"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
)

// Check sums the customer's existing order-item quantities for the variant
// across orders that are not cancelled or expired and rejects the request
// when the cumulative holding would exceed maxQtyPerUser. Callers must run it
// in the same transaction as the subsequent slot reservation so a concurrent
// pair cannot both pass the check before either reserves.
func Check(ctx context.Context, tx *gorm.DB, customerID, variantID uuid.UUID, requested, maxQtyPerUser int) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for quota check")
	}
	if customerID == uuid.Nil || variantID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id and variant id required")
	}
	if requested <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if maxQtyPerUser <= 0 {
		return nil
	}

	var held int64
	err := tx.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ?", customerID).
		Where("order_items.variant_id = ?", variantID).
		Where("orders.status NOT IN ?", []enums.OrderStatus{enums.OrderStatusCancelled, enums.OrderStatusExpired}).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&held).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum active holdings")
	}

	if held+int64(requested) > int64(maxQtyPerUser) {
		return pkgerrors.New(pkgerrors.CodeQuotaExceeded, "purchase quota exceeded for variant").
			WithDetails(map[string]any{
				"variant_id": variantID.String(),
				"held":       held,
				"requested":  requested,
				"max":        maxQtyPerUser,
			})
	}
	return nil
}
