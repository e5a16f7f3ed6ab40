package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// Repository manages cart persistence for checkout conversion and reversal
// restore.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Cart, error)
	UpdateStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error
	RemoveItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error
	RestoreItems(ctx context.Context, customerID uuid.UUID, items []models.CartItem) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a cart repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ? AND status = ?", customerID, enums.CartStatusActive).
		Order("created_at DESC").
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *repository) UpdateStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("status", status).Error
}

func (r *repository) RemoveItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id IN ?", cartID, itemIDs).
		Delete(&models.CartItem{}).Error
}

// RestoreItems puts reversed order lines back into the customer's active
// cart, creating one if none exists.
func (r *repository) RestoreItems(ctx context.Context, customerID uuid.UUID, items []models.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	cart, err := r.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		cart = &models.Cart{ID: uuid.New(), CustomerID: customerID, Status: enums.CartStatusActive}
		if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
			return err
		}
	}
	rows := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
