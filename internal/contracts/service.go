package contracts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/internal/orders"
	"github.com/figurehub/figurehub-backend/internal/wallet"
	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
	"github.com/figurehub/figurehub-backend/pkg/outbox"
	"github.com/figurehub/figurehub-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type walletCharger interface {
	DebitTx(ctx context.Context, tx *gorm.DB, input wallet.MovementInput) error
}

// Service owns the contract lifecycle from deposit activation to final
// settlement. The final payment reuses the deposit order as the payable unit
// instead of minting a second order.
type Service interface {
	Get(ctx context.Context, customerID, contractID uuid.UUID) (*models.PreorderContract, error)
	List(ctx context.Context, customerID uuid.UUID, limit int) ([]models.PreorderContract, error)
	FinalPayment(ctx context.Context, input FinalPaymentInput) (*models.PreorderContract, error)

	MarkDepositedByOrderTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]models.PreorderContract, error)
	CancelByDepositOrderTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, reason string) ([]models.PreorderContract, error)
	CompleteByOrderTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]models.PreorderContract, error)
}

// Params collects the dependencies of the contract service.
type Params struct {
	Repo            Repository
	Orders          orders.Repository
	Tx              txRunner
	Outbox          outboxPublisher
	Wallet          walletCharger
	Logger          *logger.Logger
	ShippingFlatFee int64
	Now             func() time.Time
}

type service struct {
	repo            Repository
	orders          orders.Repository
	tx              txRunner
	outbox          outboxPublisher
	wallet          walletCharger
	logg            *logger.Logger
	shippingFlatFee int64
	now             func() time.Time
}

// NewService validates the dependency set and returns a contract service.
func NewService(params Params) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("contracts repository required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Wallet == nil {
		return nil, fmt.Errorf("wallet charger required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.ShippingFlatFee < 0 {
		return nil, fmt.Errorf("shipping flat fee cannot be negative")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		repo:            params.Repo,
		orders:          params.Orders,
		tx:              params.Tx,
		outbox:          params.Outbox,
		wallet:          params.Wallet,
		logg:            params.Logger,
		shippingFlatFee: params.ShippingFlatFee,
		now:             params.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, customerID, contractID uuid.UUID) (*models.PreorderContract, error) {
	if customerID == uuid.Nil || contractID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id and contract id required")
	}
	return s.findOwned(ctx, s.repo, customerID, contractID)
}

func (s *service) List(ctx context.Context, customerID uuid.UUID, limit int) ([]models.PreorderContract, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	rows, err := s.repo.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contracts")
	}
	return rows, nil
}

// FinalPayment settles an allocated contract. The remaining balance is priced
// off the current catalog full price, not the one frozen at deposit time, plus
// the flat customer shipping fee. The deposit order becomes the final payment
// order; no second order is created.
func (s *service) FinalPayment(ctx context.Context, input FinalPaymentInput) (*models.PreorderContract, error) {
	if input.ContractID == uuid.Nil || input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id and contract id required")
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.Method))
	}

	var settled *models.PreorderContract
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		contract, err := s.findOwned(ctx, txRepo, input.CustomerID, input.ContractID)
		if err != nil {
			return err
		}
		if contract.Status == enums.ContractStatusCompleted {
			settled = contract
			return nil
		}
		if contract.Status != enums.ContractStatusReadyForPayment {
			return pkgerrors.New(pkgerrors.CodeContractNotReady, "contract is not ready for final payment").
				WithDetails(map[string]any{"status": contract.Status})
		}

		cfg, err := txRepo.FindConfig(ctx, contract.VariantID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preorder config")
		}
		if cfg == nil {
			return pkgerrors.New(pkgerrors.CodeDependency, "preorder config missing for contract variant")
		}

		txOrders := s.orders.WithTx(tx)
		order, err := txOrders.FindByID(ctx, contract.DepositOrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeDependency, "deposit order missing for contract")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deposit order")
		}

		total := cfg.FullPrice*int64(contract.Quantity) + s.shippingFlatFee
		due := total - order.PaidAmount
		if due < 0 {
			due = 0
		}

		if input.Method == enums.PaymentMethodWallet && due > 0 {
			if err := s.wallet.DebitTx(ctx, tx, wallet.MovementInput{
				CustomerID:  contract.CustomerID,
				Amount:      due,
				EntryType:   enums.WalletEntryFinalPayment,
				RefCode:     order.PaymentRefCode,
				Description: fmt.Sprintf("final payment for contract %s", contract.ID),
			}); err != nil {
				return err
			}
			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventWalletDebited,
				AggregateType: enums.AggregateWallet,
				AggregateID:   contract.CustomerID,
				Data: payloads.WalletMovementEvent{
					CustomerID: contract.CustomerID,
					Amount:     due,
					EntryType:  enums.WalletEntryFinalPayment,
					RefCode:    order.PaymentRefCode,
				},
			}); err != nil {
				return err
			}
		}

		paidAmount := total
		contractStatus := enums.ContractStatusCompleted
		amountPaid := due
		if input.Method == enums.PaymentMethodCOD {
			// money changes hands at the door; contract settles on delivery
			paidAmount = order.PaidAmount
			contractStatus = enums.ContractStatusPendingFinalPayment
			amountPaid = 0
		}

		orderUpdates := map[string]any{
			"status":         enums.OrderStatusProcessing,
			"total_amount":   total,
			"paid_amount":    paidAmount,
			"shipping_fee":   s.shippingFlatFee,
			"payment_method": input.Method,
		}
		if input.ShippingAddressID != nil {
			orderUpdates["shipping_address_id"] = *input.ShippingAddressID
		}
		if err := txOrders.UpdateOrder(ctx, order.ID, orderUpdates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update deposit order")
		}

		contractUpdates := map[string]any{
			"status":                 contractStatus,
			"final_payment_order_id": order.ID,
		}
		if err := txRepo.UpdateContract(ctx, contract.ID, contractUpdates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contract")
		}

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderPaid,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderPaidEvent{
				OrderID:       order.ID,
				CustomerID:    contract.CustomerID,
				PaymentMethod: input.Method,
				AmountPaid:    amountPaid,
				PaidAt:        s.now(),
			},
		}); err != nil {
			return err
		}
		if contractStatus == enums.ContractStatusCompleted {
			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventContractCompleted,
				AggregateType: enums.AggregateContract,
				AggregateID:   contract.ID,
				Data: payloads.ContractCompletedEvent{
					ContractID:          contract.ID,
					CustomerID:          contract.CustomerID,
					FinalPaymentOrderID: order.ID,
				},
			}); err != nil {
				return err
			}
		}

		settled, err = txRepo.FindByID(ctx, contract.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithContractID(ctx, settled.ID.String())
	s.logg.Info(logCtx, "contract final payment settled")
	return settled, nil
}

// MarkDepositedByOrderTx activates every waiting contract of a paid deposit
// order.
func (s *service) MarkDepositedByOrderTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]models.PreorderContract, error) {
	moved, err := s.repo.WithTx(tx).TransitionByDepositOrder(ctx, orderID,
		[]enums.ContractStatus{enums.ContractStatusWaitingDeposit}, enums.ContractStatusDeposited)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark contracts deposited")
	}
	return moved, nil
}

// CancelByDepositOrderTx cascades an order reversal onto its contracts. Any
// non-terminal contract of the order is cancelled.
func (s *service) CancelByDepositOrderTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, _ string) ([]models.PreorderContract, error) {
	from := []enums.ContractStatus{
		enums.ContractStatusWaitingDeposit,
		enums.ContractStatusDeposited,
		enums.ContractStatusReadyForPayment,
		enums.ContractStatusPendingFinalPayment,
	}
	moved, err := s.repo.WithTx(tx).TransitionByDepositOrder(ctx, orderID, from, enums.ContractStatusCancelled)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel contracts")
	}
	return moved, nil
}

// CompleteByOrderTx settles COD contracts once the carrier confirms delivery
// of their final payment order.
func (s *service) CompleteByOrderTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]models.PreorderContract, error) {
	moved, err := s.repo.WithTx(tx).TransitionByFinalOrder(ctx, orderID,
		enums.ContractStatusPendingFinalPayment, enums.ContractStatusCompleted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete contracts")
	}
	return moved, nil
}

func (s *service) findOwned(ctx context.Context, repo Repository, customerID, contractID uuid.UUID) (*models.PreorderContract, error) {
	contract, err := repo.FindByID(ctx, contractID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
	}
	if contract == nil || contract.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
	}
	return contract, nil
}
