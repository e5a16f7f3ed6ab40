package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
)

// MovementInput describes one signed wallet movement.
type MovementInput struct {
	CustomerID  uuid.UUID
	Amount      int64
	EntryType   enums.WalletEntryType
	RefCode     string
	Description string
}

// Service exposes wallet operations. Debit and Credit are transaction-scoped
// because payment flows run them inside the order mutation transaction.
type Service interface {
	DebitTx(ctx context.Context, tx *gorm.DB, input MovementInput) error
	CreditTx(ctx context.Context, tx *gorm.DB, input MovementInput) error
	AccrueLoyaltyTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, totalAmount int64) (int64, error)
	Balance(ctx context.Context, customerID uuid.UUID) (*models.Wallet, error)
	Transactions(ctx context.Context, customerID uuid.UUID, limit int) ([]models.WalletTransaction, error)
}

type service struct {
	repo          Repository
	pointsDivisor int64
}

// NewService wires a wallet service with the provided repository.
func NewService(repo Repository, pointsDivisor int64) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	if pointsDivisor <= 0 {
		pointsDivisor = 1000
	}
	return &service{repo: repo, pointsDivisor: pointsDivisor}, nil
}

func (s *service) DebitTx(ctx context.Context, tx *gorm.DB, input MovementInput) error {
	if err := validateMovement(tx, input); err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)

	if _, err := repo.GetOrCreate(ctx, input.CustomerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet")
	}
	debited, err := repo.DebitAvailable(ctx, input.CustomerID, input.Amount)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "debit wallet")
	}
	if !debited {
		return pkgerrors.New(pkgerrors.CodeInsufficientBalance, "wallet balance insufficient").
			WithDetails(map[string]any{"required": input.Amount})
	}

	entry := &models.WalletTransaction{
		CustomerID:  input.CustomerID,
		Amount:      -input.Amount,
		Type:        input.EntryType,
		RefCode:     input.RefCode,
		Description: input.Description,
	}
	if err := repo.CreateTransaction(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append wallet transaction")
	}
	return nil
}

func (s *service) CreditTx(ctx context.Context, tx *gorm.DB, input MovementInput) error {
	if err := validateMovement(tx, input); err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)

	if _, err := repo.GetOrCreate(ctx, input.CustomerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet")
	}
	if err := repo.CreditAvailable(ctx, input.CustomerID, input.Amount); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit wallet")
	}

	entry := &models.WalletTransaction{
		CustomerID:  input.CustomerID,
		Amount:      input.Amount,
		Type:        input.EntryType,
		RefCode:     input.RefCode,
		Description: input.Description,
	}
	if err := repo.CreateTransaction(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append wallet transaction")
	}
	return nil
}

// AccrueLoyaltyTx grants floor(totalAmount / divisor) points and returns the
// granted count. Zero-point totals are a no-op.
func (s *service) AccrueLoyaltyTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, totalAmount int64) (int64, error) {
	if tx == nil {
		return 0, pkgerrors.New(pkgerrors.CodeDependency, "transaction required for loyalty accrual")
	}
	if customerID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if totalAmount <= 0 {
		return 0, nil
	}

	points := decimal.NewFromInt(totalAmount).
		Div(decimal.NewFromInt(s.pointsDivisor)).
		Floor().
		IntPart()
	if points <= 0 {
		return 0, nil
	}

	repo := s.repo.WithTx(tx)
	if _, err := repo.GetOrCreate(ctx, customerID); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet")
	}
	if err := repo.AddLoyaltyPoints(ctx, customerID, points); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add loyalty points")
	}
	return points, nil
}

func (s *service) Balance(ctx context.Context, customerID uuid.UUID) (*models.Wallet, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	wallet, err := s.repo.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet")
	}
	return wallet, nil
}

func (s *service) Transactions(ctx context.Context, customerID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	rows, err := s.repo.ListTransactions(ctx, customerID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wallet transactions")
	}
	return rows, nil
}

func validateMovement(tx *gorm.DB, input MovementInput) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for wallet movement")
	}
	if input.CustomerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.Amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !input.EntryType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid wallet entry type %q", input.EntryType))
	}
	if input.RefCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "ref code required")
	}
	return nil
}
