package allocation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/internal/contracts"
	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
	"github.com/figurehub/figurehub-backend/pkg/outbox"
	"github.com/figurehub/figurehub-backend/pkg/outbox/payloads"
)

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service hands received pre-order stock to deposited contracts, oldest
// first. A contract is promoted only when its whole quantity fits; leftover
// units stay in stock_held for the next receipt.
type Service struct {
	contracts contracts.Repository
	outbox    outboxPublisher
	logg      *logger.Logger
}

func NewService(contractRepo contracts.Repository, publisher outboxPublisher, logg *logger.Logger) (*Service, error) {
	if contractRepo == nil {
		return nil, fmt.Errorf("contracts repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{contracts: contractRepo, outbox: publisher, logg: logg}, nil
}

// AllocateTx adds quantityGood units to the variant's held stock and promotes
// deposited contracts in FIFO order. The opening UPDATE takes the config row
// lock, so concurrent receipts for the same variant serialize here.
func (s *Service) AllocateTx(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, quantityGood int) ([]models.PreorderContract, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction required for allocation")
	}
	if variantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
	}
	if quantityGood < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE preorder_configs
		SET stock_held = stock_held + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE variant_id = ?
	`, quantityGood, variantID)
	if res.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "add held stock")
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "preorder config not found for variant")
	}

	txRepo := s.contracts.WithTx(tx)
	cfg, err := txRepo.FindConfig(ctx, variantID)
	if err != nil || cfg == nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preorder config")
	}

	waiting, err := txRepo.ListDepositedFIFO(ctx, variantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list deposited contracts")
	}

	available := cfg.StockHeld
	var promoted []models.PreorderContract
	for _, contract := range waiting {
		if contract.Quantity > available {
			// no partial fulfilment, and nobody jumps the queue
			break
		}
		if err := txRepo.UpdateContract(ctx, contract.ID, map[string]any{
			"status": enums.ContractStatusReadyForPayment,
		}); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "promote contract")
		}
		available -= contract.Quantity
		contract.Status = enums.ContractStatusReadyForPayment
		promoted = append(promoted, contract)

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventContractReadyToPay,
			AggregateType: enums.AggregateContract,
			AggregateID:   contract.ID,
			Data: payloads.ContractReadyToPayEvent{
				ContractID:      contract.ID,
				CustomerID:      contract.CustomerID,
				VariantID:       contract.VariantID,
				RemainingAmount: contract.RemainingAmount,
			},
		}); err != nil {
			return nil, err
		}
		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventNotificationRequested,
			AggregateType: enums.AggregateNotification,
			AggregateID:   uuid.New(),
			Data: payloads.NotificationRequestedEvent{
				CustomerID: contract.CustomerID,
				Type:       enums.NotificationTypeReadyToPay,
				Title:      "Your pre-order arrived",
				Message:    "Stock for your pre-order has arrived. Settle the remaining balance to get it shipped.",
			},
		}); err != nil {
			return nil, err
		}
	}

	if available != cfg.StockHeld {
		res = tx.WithContext(ctx).Exec(`
			UPDATE preorder_configs
			SET stock_held = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE variant_id = ?
		`, available, variantID)
		if res.Error != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "settle held stock")
		}
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"variant_id": variantID.String(),
		"received":   quantityGood,
		"promoted":   len(promoted),
		"held_after": available,
	})
	s.logg.Info(logCtx, "preorder stock allocated")
	return promoted, nil
}
