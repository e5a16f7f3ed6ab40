package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

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
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// stockReleaser returns reserved units to the pools the checkout took them
// from. Retail lines go back to variant stock, preorder lines free slots.
type stockReleaser interface {
	ReleaseRetail(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error
	ReleaseSlot(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error
}

// contractStore is the slice of the contracts service the order state machine
// needs. Kept narrow to avoid a package cycle.
type contractStore interface {
	MarkDepositedByOrderTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]models.PreorderContract, error)
	CancelByDepositOrderTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, reason string) ([]models.PreorderContract, error)
	CompleteByOrderTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]models.PreorderContract, error)
}

type cartRestorer interface {
	RestoreItems(ctx context.Context, customerID uuid.UUID, items []models.CartItem) error
}

type walletCharger interface {
	DebitTx(ctx context.Context, tx *gorm.DB, input wallet.MovementInput) error
	CreditTx(ctx context.Context, tx *gorm.DB, input wallet.MovementInput) error
	AccrueLoyaltyTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, totalAmount int64) (int64, error)
}

// Service drives the order state machine: payment confirmation, cancellation
// and expiry with full reservation rollback, and carrier-driven fulfilment
// transitions.
type Service interface {
	Get(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, customerID uuid.UUID, limit int) ([]models.Order, error)
	ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*models.Order, error)
	Cancel(ctx context.Context, input CancelInput) (*models.Order, error)
	Expire(ctx context.Context, orderID uuid.UUID) error
	Pack(ctx context.Context, orderID uuid.UUID) error
	ApplyCarrierStatus(ctx context.Context, input CarrierStatusInput) error
}

// Params collects the dependencies of the order service.
type Params struct {
	Repo      Repository
	Tx        txRunner
	Outbox    outboxPublisher
	Stock     stockReleaser
	Contracts contractStore
	Cart      cartRestorer
	Wallet    walletCharger
	Logger    *logger.Logger
	Now       func() time.Time
}

type service struct {
	repo      Repository
	tx        txRunner
	outbox    outboxPublisher
	stock     stockReleaser
	contracts contractStore
	cart      cartRestorer
	wallet    walletCharger
	logg      *logger.Logger
	now       func() time.Time
}

// NewService validates the dependency set and returns an order service.
func NewService(params Params) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock releaser required")
	}
	if params.Contracts == nil {
		return nil, fmt.Errorf("contract store required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart restorer required")
	}
	if params.Wallet == nil {
		return nil, fmt.Errorf("wallet charger required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		repo:      params.Repo,
		tx:        params.Tx,
		outbox:    params.Outbox,
		stock:     params.Stock,
		contracts: params.Contracts,
		cart:      params.Cart,
		wallet:    params.Wallet,
		logg:      params.Logger,
		now:       params.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	if customerID == uuid.Nil || orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id and order id required")
	}
	order, err := s.findOwned(ctx, s.repo, customerID, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID, limit int) ([]models.Order, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	rows, err := s.repo.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

// ConfirmPayment moves an awaiting-payment order forward. Wallet payments
// debit the order total inside the same transaction; COD is only accepted for
// retail orders because deposits secure a slot and must be paid up front.
func (s *service) ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil || input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id and order id required")
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.Method))
	}

	var paid *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		order, err := s.findOwned(ctx, txRepo, input.CustomerID, input.OrderID)
		if err != nil {
			return err
		}
		if !order.Status.IsAwaitingPayment() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not awaiting payment").
				WithDetails(map[string]any{"status": order.Status})
		}

		target := enums.OrderStatusProcessing
		entryType := enums.WalletEntryOrderPayment
		if order.Status == enums.OrderStatusWaitingDeposit {
			target = enums.OrderStatusDeposited
			entryType = enums.WalletEntryDepositPayment
			if input.Method == enums.PaymentMethodCOD {
				return pkgerrors.New(pkgerrors.CodeValidation, "deposit orders cannot be paid on delivery")
			}
		}
		if !CanTransition(order.Status, target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order cannot accept payment").
				WithDetails(map[string]any{"status": order.Status})
		}

		amount := order.TotalAmount - order.PaidAmount
		if input.Method == enums.PaymentMethodWallet && amount > 0 {
			if err := s.wallet.DebitTx(ctx, tx, wallet.MovementInput{
				CustomerID:  order.CustomerID,
				Amount:      amount,
				EntryType:   entryType,
				RefCode:     order.PaymentRefCode,
				Description: fmt.Sprintf("payment for order %s", order.ID),
			}); err != nil {
				return err
			}
			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventWalletDebited,
				AggregateType: enums.AggregateWallet,
				AggregateID:   order.CustomerID,
				Data: payloads.WalletMovementEvent{
					CustomerID: order.CustomerID,
					Amount:     amount,
					EntryType:  entryType,
					RefCode:    order.PaymentRefCode,
				},
			}); err != nil {
				return err
			}
		}

		paidAt := s.now()
		updates := map[string]any{
			"status":           target,
			"payment_method":   input.Method,
			"paid_amount":      order.PaidAmount + paidAmount(input.Method, amount),
			"payment_deadline": nil,
		}
		if err := txRepo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}

		if target == enums.OrderStatusDeposited {
			contracts, err := s.contracts.MarkDepositedByOrderTx(ctx, tx, order.ID)
			if err != nil {
				return err
			}
			for _, contract := range contracts {
				if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
					EventType:     enums.EventContractDeposited,
					AggregateType: enums.AggregateContract,
					AggregateID:   contract.ID,
					Data: payloads.ContractDepositedEvent{
						ContractID:    contract.ID,
						OrderID:       order.ID,
						CustomerID:    contract.CustomerID,
						DepositAmount: contract.DepositAmountPaid,
					},
				}); err != nil {
					return err
				}
			}
		}

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderPaid,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderPaidEvent{
				OrderID:       order.ID,
				CustomerID:    order.CustomerID,
				PaymentMethod: input.Method,
				AmountPaid:    paidAmount(input.Method, amount),
				PaidAt:        paidAt,
			},
		}); err != nil {
			return err
		}

		paid, err = txRepo.FindByID(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithOrderID(ctx, paid.ID.String())
	s.logg.Info(logCtx, "order payment confirmed")
	return paid, nil
}

// paidAmount is zero for COD confirmations; the money changes hands at the
// door, not in the wallet.
func paidAmount(method enums.PaymentMethod, amount int64) int64 {
	if method == enums.PaymentMethodCOD {
		return 0
	}
	return amount
}

// Cancel reverses an awaiting-payment order on customer request. Cancelling a
// terminal order is a no-op; cancelling a paid or shipped order fails.
func (s *service) Cancel(ctx context.Context, input CancelInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil || input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id and order id required")
	}
	order, err := s.findOwned(ctx, s.repo, input.CustomerID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return order, nil
	}
	if !order.Status.IsAwaitingPayment() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only unpaid orders can be cancelled").
			WithDetails(map[string]any{"status": order.Status})
	}
	if err := s.revert(ctx, order.ID, enums.OrderStatusCancelled, input.Reason); err != nil {
		return nil, err
	}
	return s.findOwned(ctx, s.repo, input.CustomerID, input.OrderID)
}

// Expire is invoked by the deadline sweeper. Orders that were paid or already
// closed between the scan and this call are skipped silently.
func (s *service) Expire(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	err := s.revert(ctx, orderID, enums.OrderStatusExpired, "payment deadline passed")
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeStateConflict {
		return nil
	}
	return err
}

// revert rolls an awaiting-payment order into a terminal state inside one
// transaction: reservations are returned, contracts cancelled, and the event
// queued. Cart restore runs after commit and never fails the reversal.
func (s *service) revert(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus, reason string) error {
	var (
		customerID uuid.UUID
		restore    []models.CartItem
		reverted   bool
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		order, err := txRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status.IsTerminal() {
			return nil
		}
		if !order.Status.IsAwaitingPayment() || !CanTransition(order.Status, target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is no longer awaiting payment").
				WithDetails(map[string]any{"status": order.Status})
		}

		for _, item := range order.Items {
			if item.IsPreorder {
				err = s.stock.ReleaseSlot(ctx, tx, item.VariantID, item.Quantity)
			} else {
				err = s.stock.ReleaseRetail(ctx, tx, item.VariantID, item.Quantity)
			}
			if err != nil {
				return err
			}
			restore = append(restore, models.CartItem{
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}

		cancelled, err := s.contracts.CancelByDepositOrderTx(ctx, tx, order.ID, reason)
		if err != nil {
			return err
		}
		for _, contract := range cancelled {
			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventContractCancelled,
				AggregateType: enums.AggregateContract,
				AggregateID:   contract.ID,
				Data: payloads.ContractCancelledEvent{
					ContractID: contract.ID,
					CustomerID: contract.CustomerID,
					Reason:     reason,
				},
			}); err != nil {
				return err
			}
		}

		at := s.now()
		updates := map[string]any{"status": target, "payment_deadline": nil}
		if target == enums.OrderStatusExpired {
			updates["expired_at"] = at
		} else {
			updates["cancelled_at"] = at
		}
		if err := txRepo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}

		if target == enums.OrderStatusExpired {
			if err := s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventOrderExpired,
				AggregateType: enums.AggregateOrder,
				AggregateID:   order.ID,
				Data: payloads.OrderExpiredEvent{
					OrderID:    order.ID,
					CustomerID: order.CustomerID,
					ExpiredAt:  at,
				},
			}); err != nil {
				return err
			}
			if err := s.emitNotification(ctx, tx, order.CustomerID, enums.NotificationTypeOrderExpired,
				"Order expired", fmt.Sprintf("Order %s expired because payment was not received in time.", order.PaymentRefCode)); err != nil {
				return err
			}
		} else {
			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventOrderCancelled,
				AggregateType: enums.AggregateOrder,
				AggregateID:   order.ID,
				Data: payloads.OrderCancelledEvent{
					OrderID:     order.ID,
					CustomerID:  order.CustomerID,
					CancelledAt: at,
					Reason:      reason,
				},
			}); err != nil {
				return err
			}
			if err := s.emitNotification(ctx, tx, order.CustomerID, enums.NotificationTypeOrderCancelled,
				"Order cancelled", fmt.Sprintf("Order %s was cancelled.", order.PaymentRefCode)); err != nil {
				return err
			}
		}

		customerID = order.CustomerID
		reverted = true
		return nil
	})
	if err != nil {
		return err
	}
	if !reverted {
		return nil
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id": orderID.String(),
		"status":   target,
	})
	s.logg.Info(logCtx, "order reverted")

	// Cart restore is a courtesy. The reversal already committed, so a
	// failure here is logged and swallowed.
	if len(restore) > 0 {
		if err := s.cart.RestoreItems(ctx, customerID, restore); err != nil {
			s.logg.Error(logCtx, "restore cart after reversal", err)
		}
	}
	return nil
}

// Pack marks a paid order as packed by warehouse staff.
func (s *service) Pack(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		order, err := txRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == enums.OrderStatusPacked {
			return nil
		}
		if !CanTransition(order.Status, enums.OrderStatusPacked) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order cannot be packed").
				WithDetails(map[string]any{"status": order.Status})
		}
		if err := txRepo.UpdateOrder(ctx, order.ID, map[string]any{"status": enums.OrderStatusPacked}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderPacked,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderPackedEvent{
				OrderID:    order.ID,
				CustomerID: order.CustomerID,
			},
		})
	})
}

// ApplyCarrierStatus handles one carrier webhook callback. Unknown carrier
// statuses are logged and dropped so the carrier does not retry forever.
func (s *service) ApplyCarrierStatus(ctx context.Context, input CarrierStatusInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	target, ok := MapCarrierStatus(input.CarrierStatus)
	if !ok {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":       input.OrderID.String(),
			"carrier_status": input.CarrierStatus,
		})
		s.logg.Warn(logCtx, "unknown carrier status ignored")
		return nil
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		order, err := txRepo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == target {
			return nil
		}
		if !CanTransition(order.Status, target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "carrier status conflicts with order state").
				WithDetails(map[string]any{"status": order.Status, "carrier_status": input.CarrierStatus})
		}

		at := s.now()
		updates := map[string]any{"status": target}
		switch target {
		case enums.OrderStatusCompleted:
			updates["completed_at"] = at
		case enums.OrderStatusCancelled:
			updates["cancelled_at"] = at
		}
		if err := txRepo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}

		switch target {
		case enums.OrderStatusShipping:
			return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventOrderShipping,
				AggregateType: enums.AggregateOrder,
				AggregateID:   order.ID,
				Data: payloads.OrderShippingEvent{
					OrderID:       order.ID,
					CustomerID:    order.CustomerID,
					CarrierStatus: input.CarrierStatus,
				},
			})
		case enums.OrderStatusCompleted:
			return s.complete(ctx, tx, order, at)
		case enums.OrderStatusReturned:
			return s.refundReturned(ctx, tx, order)
		case enums.OrderStatusCancelled:
			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventOrderCancelled,
				AggregateType: enums.AggregateOrder,
				AggregateID:   order.ID,
				Data: payloads.OrderCancelledEvent{
					OrderID:     order.ID,
					CustomerID:  order.CustomerID,
					CancelledAt: at,
					Reason:      "carrier:" + input.CarrierStatus,
				},
			}); err != nil {
				return err
			}
			return s.emitNotification(ctx, tx, order.CustomerID, enums.NotificationTypeOrderCancelled,
				"Order cancelled", fmt.Sprintf("Order %s was cancelled by the carrier.", order.PaymentRefCode))
		}
		return nil
	})
}

// refundReturned credits wallet-paid money back once the carrier confirms the
// return. COD orders carry no captured payment, so nothing moves.
func (s *service) refundReturned(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if order.PaymentMethod != enums.PaymentMethodWallet || order.PaidAmount <= 0 {
		return nil
	}
	if err := s.wallet.CreditTx(ctx, tx, wallet.MovementInput{
		CustomerID:  order.CustomerID,
		Amount:      order.PaidAmount,
		EntryType:   enums.WalletEntryRefund,
		RefCode:     order.PaymentRefCode,
		Description: fmt.Sprintf("refund for returned order %s", order.ID),
	}); err != nil {
		return err
	}
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventWalletCredited,
		AggregateType: enums.AggregateWallet,
		AggregateID:   order.CustomerID,
		Data: payloads.WalletMovementEvent{
			CustomerID: order.CustomerID,
			Amount:     order.PaidAmount,
			EntryType:  enums.WalletEntryRefund,
			RefCode:    order.PaymentRefCode,
		},
	})
}

// complete finishes a delivered order: loyalty points accrue on the full
// amount and the customer is notified.
func (s *service) complete(ctx context.Context, tx *gorm.DB, order *models.Order, at time.Time) error {
	points, err := s.wallet.AccrueLoyaltyTx(ctx, tx, order.CustomerID, order.TotalAmount)
	if err != nil {
		return err
	}
	settled, err := s.contracts.CompleteByOrderTx(ctx, tx, order.ID)
	if err != nil {
		return err
	}
	for _, contract := range settled {
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
	if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderCompleted,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Data: payloads.OrderCompletedEvent{
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			CompletedAt: at,
		},
	}); err != nil {
		return err
	}
	if points > 0 {
		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventLoyaltyAccrued,
			AggregateType: enums.AggregateWallet,
			AggregateID:   order.CustomerID,
			Data: payloads.LoyaltyAccruedEvent{
				CustomerID: order.CustomerID,
				OrderID:    order.ID,
				Points:     points,
			},
		}); err != nil {
			return err
		}
	}
	return s.emitNotification(ctx, tx, order.CustomerID, enums.NotificationTypeOrderCompleted,
		"Order delivered", fmt.Sprintf("Order %s was delivered. Thanks for collecting with us!", order.PaymentRefCode))
}

func (s *service) emitNotification(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, kind enums.NotificationType, title, message string) error {
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventNotificationRequested,
		AggregateType: enums.AggregateNotification,
		AggregateID:   uuid.New(),
		Data: payloads.NotificationRequestedEvent{
			CustomerID: customerID,
			Type:       kind,
			Title:      title,
			Message:    message,
		},
	})
}

func (s *service) findOwned(ctx context.Context, repo Repository, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}
