package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/figurehub/figurehub-backend/pkg/db/models"
)

// Repository manages wallet rows and their append-only transaction log.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetOrCreate(ctx context.Context, customerID uuid.UUID) (*models.Wallet, error)
	Find(ctx context.Context, customerID uuid.UUID) (*models.Wallet, error)
	DebitAvailable(ctx context.Context, customerID uuid.UUID, amount int64) (bool, error)
	CreditAvailable(ctx context.Context, customerID uuid.UUID, amount int64) error
	AddLoyaltyPoints(ctx context.Context, customerID uuid.UUID, points int64) error
	CreateTransaction(ctx context.Context, entry *models.WalletTransaction) error
	ListTransactions(ctx context.Context, customerID uuid.UUID, limit int) ([]models.WalletTransaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a wallet repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetOrCreate(ctx context.Context, customerID uuid.UUID) (*models.Wallet, error) {
	wallet := models.Wallet{CustomerID: customerID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&wallet).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, customerID)
}

func (r *repository) Find(ctx context.Context, customerID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}

// DebitAvailable runs the sufficiency check and the decrement as one guarded
// UPDATE. A false return means the balance was insufficient.
func (r *repository) DebitAvailable(ctx context.Context, customerID uuid.UUID, amount int64) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE wallets
		SET balance_available = balance_available - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE customer_id = ? AND balance_available >= ?
	`, amount, customerID, amount)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CreditAvailable(ctx context.Context, customerID uuid.UUID, amount int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE wallets
		SET balance_available = balance_available + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE customer_id = ?
	`, amount, customerID).Error
}

func (r *repository) AddLoyaltyPoints(ctx context.Context, customerID uuid.UUID, points int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE wallets
		SET loyalty_points = loyalty_points + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE customer_id = ?
	`, points, customerID).Error
}

func (r *repository) CreateTransaction(ctx context.Context, entry *models.WalletTransaction) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListTransactions(ctx context.Context, customerID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
