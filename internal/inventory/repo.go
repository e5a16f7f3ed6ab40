package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/pkg/db/models"
)

// Repository persists warehouse receipts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateReceipt(ctx context.Context, receipt *models.InventoryReceipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryReceipt, error)
	List(ctx context.Context, limit int) ([]models.InventoryReceipt, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateReceipt(ctx context.Context, receipt *models.InventoryReceipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryReceipt, error) {
	var receipt models.InventoryReceipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &receipt, nil
}

func (r *repository) List(ctx context.Context, limit int) ([]models.InventoryReceipt, error) {
	if limit <= 0 {
		limit = 50
	}
	var receipts []models.InventoryReceipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&receipts).Error
	return receipts, err
}
