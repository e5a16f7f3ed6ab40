package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
)

// ReserveRetail decrements stock_available inside the caller's transaction.
// The availability check and the decrement are one conditional UPDATE; zero
// rows affected means the stock race was lost.
func ReserveRetail(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if err := validate(tx, variantID, qty); err != nil {
		return err
	}
	res := tx.WithContext(ctx).Exec(`
		UPDATE variants
		SET stock_available = stock_available - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock_available >= ?
	`, qty, variantID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve retail stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeOutOfStock, "insufficient stock for variant").
			WithDetails(map[string]any{"variant_id": variantID.String(), "requested": qty})
	}
	return nil
}

// ReleaseRetail returns previously reserved units to stock_available.
func ReleaseRetail(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if err := validate(tx, variantID, qty); err != nil {
		return err
	}
	res := tx.WithContext(ctx).Exec(`
		UPDATE variants
		SET stock_available = stock_available + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, variantID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "release retail stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	return nil
}

// Restock books newly received sellable units into stock_available. Same
// mutation as ReleaseRetail, but receipts add stock that was never reserved.
func Restock(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if err := validate(tx, variantID, qty); err != nil {
		return err
	}
	res := tx.WithContext(ctx).Exec(`
		UPDATE variants
		SET stock_available = stock_available + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, variantID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "restock variant")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	return nil
}

// ReserveSlot increments sold_slots against the total_slots ceiling. The
// ceiling re-check lives in the WHERE clause so two concurrent reservations
// for the last slot can never both succeed.
func ReserveSlot(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if err := validate(tx, variantID, qty); err != nil {
		return err
	}
	res := tx.WithContext(ctx).Exec(`
		UPDATE preorder_configs
		SET sold_slots = sold_slots + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE variant_id = ? AND sold_slots + ? <= total_slots
	`, qty, variantID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve preorder slot")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeSoldOut, "no preorder slots left for variant").
			WithDetails(map[string]any{"variant_id": variantID.String(), "requested": qty})
	}
	return nil
}

// ReleaseSlot gives reserved slots back. It never touches stock_held: slots
// are reserved before any physical stock exists.
func ReleaseSlot(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if err := validate(tx, variantID, qty); err != nil {
		return err
	}
	res := tx.WithContext(ctx).Exec(`
		UPDATE preorder_configs
		SET sold_slots = sold_slots - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE variant_id = ? AND sold_slots >= ?
	`, qty, variantID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "release preorder slot")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "slot release exceeds reserved count")
	}
	return nil
}

// AddDefect books damaged units from a receipt. Defect stock is never
// sellable and only ever grows from receipts.
func AddDefect(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if err := validate(tx, variantID, qty); err != nil {
		return err
	}
	res := tx.WithContext(ctx).Exec(`
		UPDATE variants
		SET stock_defect = stock_defect + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, variantID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "add defect stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	return nil
}

func validate(tx *gorm.DB, variantID uuid.UUID, qty int) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock mutation")
	}
	if variantID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	return nil
}
