package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Manager adapts the package-level stock operations to the narrow interfaces
// consuming services declare.
type Manager struct{}

func NewManager() Manager {
	return Manager{}
}

func (Manager) ReserveRetail(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	return ReserveRetail(ctx, tx, variantID, qty)
}

func (Manager) ReleaseRetail(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	return ReleaseRetail(ctx, tx, variantID, qty)
}

func (Manager) ReserveSlot(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	return ReserveSlot(ctx, tx, variantID, qty)
}

func (Manager) ReleaseSlot(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error {
	return ReleaseSlot(ctx, tx, variantID, qty)
}
