package contracts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// Repository defines persistence operations for pre-order contracts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, contract *models.PreorderContract) (*models.PreorderContract, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PreorderContract, error)
	FindByDepositOrder(ctx context.Context, orderID uuid.UUID) ([]models.PreorderContract, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]models.PreorderContract, error)
	ListDepositedFIFO(ctx context.Context, variantID uuid.UUID) ([]models.PreorderContract, error)
	UpdateContract(ctx context.Context, id uuid.UUID, updates map[string]any) error
	TransitionByDepositOrder(ctx context.Context, orderID uuid.UUID, from []enums.ContractStatus, to enums.ContractStatus) ([]models.PreorderContract, error)
	TransitionByFinalOrder(ctx context.Context, orderID uuid.UUID, from, to enums.ContractStatus) ([]models.PreorderContract, error)
	FindConfig(ctx context.Context, variantID uuid.UUID) (*models.PreorderConfig, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a contract repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, contract *models.PreorderContract) (*models.PreorderContract, error) {
	if err := r.db.WithContext(ctx).Create(contract).Error; err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PreorderContract, error) {
	var contract models.PreorderContract
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

func (r *repository) FindByDepositOrder(ctx context.Context, orderID uuid.UUID) ([]models.PreorderContract, error) {
	var contracts []models.PreorderContract
	err := r.db.WithContext(ctx).
		Where("deposit_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]models.PreorderContract, error) {
	if limit <= 0 {
		limit = 50
	}
	var contracts []models.PreorderContract
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&contracts).Error
	return contracts, err
}

// ListDepositedFIFO returns deposited contracts for one variant in creation
// order. Allocation walks this list front to back.
func (r *repository) ListDepositedFIFO(ctx context.Context, variantID uuid.UUID) ([]models.PreorderContract, error) {
	var contracts []models.PreorderContract
	err := r.db.WithContext(ctx).
		Where("variant_id = ? AND status = ?", variantID, enums.ContractStatusDeposited).
		Order("created_at ASC").
		Order("id ASC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) UpdateContract(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PreorderContract{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// TransitionByDepositOrder moves every contract of a deposit order that sits
// in one of the from statuses into the to status, returning the moved rows.
func (r *repository) TransitionByDepositOrder(ctx context.Context, orderID uuid.UUID, from []enums.ContractStatus, to enums.ContractStatus) ([]models.PreorderContract, error) {
	var candidates []models.PreorderContract
	err := r.db.WithContext(ctx).
		Where("deposit_order_id = ? AND status IN ?", orderID, from).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	err = r.db.WithContext(ctx).
		Model(&models.PreorderContract{}).
		Where("id IN ?", ids).
		Update("status", to).Error
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].Status = to
	}
	return candidates, nil
}

// TransitionByFinalOrder does the same keyed on final_payment_order_id, used
// when delivery settles COD contracts.
func (r *repository) TransitionByFinalOrder(ctx context.Context, orderID uuid.UUID, from, to enums.ContractStatus) ([]models.PreorderContract, error) {
	var candidates []models.PreorderContract
	err := r.db.WithContext(ctx).
		Where("final_payment_order_id = ? AND status = ?", orderID, from).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	err = r.db.WithContext(ctx).
		Model(&models.PreorderContract{}).
		Where("id IN ?", ids).
		Update("status", to).Error
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].Status = to
	}
	return candidates, nil
}

func (r *repository) FindConfig(ctx context.Context, variantID uuid.UUID) (*models.PreorderConfig, error) {
	var cfg models.PreorderConfig
	err := r.db.WithContext(ctx).Where("variant_id = ?", variantID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}
