package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/internal/products"
	"github.com/figurehub/figurehub-backend/internal/stock"
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

type allocator interface {
	AllocateTx(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, quantityGood int) ([]models.PreorderContract, error)
}

// ReceiptLine is one variant line of an incoming delivery.
type ReceiptLine struct {
	VariantID      uuid.UUID
	QuantityGood   int
	QuantityDefect int
}

// RecordReceiptInput describes one warehouse delivery.
type RecordReceiptInput struct {
	Reference string
	Lines     []ReceiptLine
}

// Service records warehouse receipts. Good units of retail variants go
// straight to sellable stock; good units of pre-order variants run through
// the allocation queue instead.
type Service interface {
	RecordReceipt(ctx context.Context, input RecordReceiptInput) (*models.InventoryReceipt, error)
	GetReceipt(ctx context.Context, id uuid.UUID) (*models.InventoryReceipt, error)
	ListReceipts(ctx context.Context, limit int) ([]models.InventoryReceipt, error)
}

// Params collects the dependencies of the inventory service.
type Params struct {
	Repo      Repository
	Products  products.Repository
	Allocator allocator
	Tx        txRunner
	Outbox    outboxPublisher
	Logger    *logger.Logger
}

type service struct {
	repo      Repository
	products  products.Repository
	allocator allocator
	tx        txRunner
	outbox    outboxPublisher
	logg      *logger.Logger
}

// NewService validates the dependency set and returns an inventory service.
func NewService(params Params) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if params.Allocator == nil {
		return nil, fmt.Errorf("allocator required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      params.Repo,
		products:  params.Products,
		allocator: params.Allocator,
		tx:        params.Tx,
		outbox:    params.Outbox,
		logg:      params.Logger,
	}, nil
}

func (s *service) RecordReceipt(ctx context.Context, input RecordReceiptInput) (*models.InventoryReceipt, error) {
	if err := validateReceipt(input); err != nil {
		return nil, err
	}

	var receipt *models.InventoryReceipt
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		variantIDs := make([]uuid.UUID, 0, len(input.Lines))
		for _, line := range input.Lines {
			variantIDs = append(variantIDs, line.VariantID)
		}
		variants, err := s.products.WithTx(tx).FindVariantsByIDs(ctx, variantIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variants")
		}

		row := &models.InventoryReceipt{ID: uuid.New()}
		if input.Reference != "" {
			ref := input.Reference
			row.Reference = &ref
		}
		for _, line := range input.Lines {
			row.Items = append(row.Items, models.InventoryReceiptItem{
				ID:             uuid.New(),
				ReceiptID:      row.ID,
				VariantID:      line.VariantID,
				QuantityGood:   line.QuantityGood,
				QuantityDefect: line.QuantityDefect,
			})
		}
		if err := s.repo.WithTx(tx).CreateReceipt(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create receipt")
		}

		eventLines := make([]payloads.InventoryReceivedLine, 0, len(input.Lines))
		for _, line := range input.Lines {
			variant, ok := variants[line.VariantID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found").
					WithDetails(map[string]any{"variant_id": line.VariantID.String()})
			}

			if line.QuantityGood > 0 {
				if products.IsPreorder(variant) {
					if _, err := s.allocator.AllocateTx(ctx, tx, line.VariantID, line.QuantityGood); err != nil {
						return err
					}
				} else if err := stock.Restock(ctx, tx, line.VariantID, line.QuantityGood); err != nil {
					return err
				}
			}
			if line.QuantityDefect > 0 {
				if err := stock.AddDefect(ctx, tx, line.VariantID, line.QuantityDefect); err != nil {
					return err
				}
			}
			eventLines = append(eventLines, payloads.InventoryReceivedLine{
				VariantID:      line.VariantID,
				QuantityGood:   line.QuantityGood,
				QuantityDefect: line.QuantityDefect,
			})
		}

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventInventoryReceived,
			AggregateType: enums.AggregateInventoryReceipt,
			AggregateID:   row.ID,
			Data: payloads.InventoryReceivedEvent{
				ReceiptID: row.ID,
				Lines:     eventLines,
			},
		}); err != nil {
			return err
		}
		receipt = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"receipt_id": receipt.ID.String(),
		"lines":      len(receipt.Items),
	})
	s.logg.Info(logCtx, "inventory receipt recorded")
	return receipt, nil
}

func (s *service) GetReceipt(ctx context.Context, id uuid.UUID) (*models.InventoryReceipt, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "receipt id required")
	}
	receipt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load receipt")
	}
	if receipt == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "receipt not found")
	}
	return receipt, nil
}

func (s *service) ListReceipts(ctx context.Context, limit int) ([]models.InventoryReceipt, error) {
	receipts, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list receipts")
	}
	return receipts, nil
}

func validateReceipt(input RecordReceiptInput) error {
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "receipt needs at least one line")
	}
	for _, line := range input.Lines {
		if line.VariantID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant id required on every line")
		}
		if line.QuantityGood < 0 || line.QuantityDefect < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantities cannot be negative")
		}
		if line.QuantityGood == 0 && line.QuantityDefect == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "empty receipt line").
				WithDetails(map[string]any{"variant_id": line.VariantID.String()})
		}
	}
	return nil
}
