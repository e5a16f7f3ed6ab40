package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/figurehub/figurehub-backend/internal/cart"
	"github.com/figurehub/figurehub-backend/internal/contracts"
	"github.com/figurehub/figurehub-backend/internal/orders"
	"github.com/figurehub/figurehub-backend/internal/products"
	"github.com/figurehub/figurehub-backend/internal/quota"
	"github.com/figurehub/figurehub-backend/pkg/config"
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

type stockReserver interface {
	ReserveRetail(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error
	ReserveSlot(ctx context.Context, tx *gorm.DB, variantID uuid.UUID, qty int) error
}

type shippingQuoter interface {
	Quote(ctx context.Context, weightGrams int) (int64, error)
}

// Service turns an active cart into payable orders in one transaction. Each
// pre-order line becomes its own order plus a contract; retail lines bundle
// into a single order. Nothing is taken from the cart until every reservation
// has succeeded.
type Service interface {
	Execute(ctx context.Context, input Input) (*Result, error)
}

// Params collects the dependencies of the checkout service.
type Params struct {
	Cart      cart.Repository
	Products  products.Repository
	Orders    orders.Repository
	Contracts contracts.Repository
	Stock     stockReserver
	Quoter    shippingQuoter
	Tx        txRunner
	Outbox    outboxPublisher
	Logger    *logger.Logger
	Config    config.CheckoutConfig
	Now       func() time.Time
}

type service struct {
	cart      cart.Repository
	products  products.Repository
	orders    orders.Repository
	contracts contracts.Repository
	stock     stockReserver
	quoter    shippingQuoter
	tx        txRunner
	outbox    outboxPublisher
	logg      *logger.Logger
	cfg       config.CheckoutConfig
	now       func() time.Time
}

// NewService validates the dependency set and returns a checkout service.
func NewService(params Params) (Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Contracts == nil {
		return nil, fmt.Errorf("contracts repository required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock reserver required")
	}
	if params.Quoter == nil {
		return nil, fmt.Errorf("shipping quoter required")
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
	if params.Config.PaymentDeadline <= 0 {
		params.Config.PaymentDeadline = 15 * time.Minute
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		cart:      params.Cart,
		products:  params.Products,
		orders:    params.Orders,
		contracts: params.Contracts,
		stock:     params.Stock,
		quoter:    params.Quoter,
		tx:        params.Tx,
		outbox:    params.Outbox,
		logg:      params.Logger,
		cfg:       params.Config,
		now:       params.Now,
	}, nil
}

// checkoutLine pairs a requested line with its resolved variant and the cart
// item it came from.
type checkoutLine struct {
	request  Line
	variant  models.Variant
	cartItem models.CartItem
}

func (s *service) Execute(ctx context.Context, input Input) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	refCode := newPaymentRefCode()
	deadline := s.now().Add(s.cfg.PaymentDeadline)

	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txCart := s.cart.WithTx(tx)
		activeCart, err := txCart.FindActiveByCustomer(ctx, input.CustomerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if activeCart == nil || len(activeCart.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "no active cart to check out")
		}

		retail, preorder, err := s.resolveLines(ctx, tx, input, activeCart)
		if err != nil {
			return err
		}

		var (
			created   []models.Order
			total     int64
			usedItems []uuid.UUID
		)

		// every pre-order line is its own order plus a contract
		for _, line := range preorder {
			cfg := line.variant.PreorderConfig
			if err := quota.Check(ctx, tx, input.CustomerID, line.variant.ID, line.request.Quantity, cfg.MaxQtyPerUser); err != nil {
				return err
			}
			if err := s.stock.ReserveSlot(ctx, tx, line.variant.ID, line.request.Quantity); err != nil {
				return err
			}

			qty := int64(line.request.Quantity)
			depositPaid := cfg.DepositAmount * qty
			if line.request.PayFullUpfront {
				depositPaid = cfg.FullPrice * qty
			}

			order := &models.Order{
				ID:                uuid.New(),
				CustomerID:        input.CustomerID,
				PaymentRefCode:    refCode,
				Status:            enums.OrderStatusWaitingDeposit,
				TotalAmount:       depositPaid,
				PaymentMethod:     input.PaymentMethod,
				ShippingAddressID: input.ShippingAddressID,
				PaymentDeadline:   &deadline,
			}
			if _, err := s.orders.WithTx(tx).CreateOrder(ctx, order); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create preorder order")
			}
			item := models.OrderItem{
				ID:         uuid.New(),
				OrderID:    order.ID,
				VariantID:  line.variant.ID,
				Quantity:   line.request.Quantity,
				UnitPrice:  cfg.FullPrice,
				IsPreorder: true,
			}
			if err := s.orders.WithTx(tx).CreateOrderItems(ctx, []models.OrderItem{item}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create preorder order item")
			}

			contract := &models.PreorderContract{
				ID:                uuid.New(),
				CustomerID:        input.CustomerID,
				VariantID:         line.variant.ID,
				Quantity:          line.request.Quantity,
				DepositAmountPaid: depositPaid,
				RemainingAmount:   cfg.FullPrice*qty - depositPaid,
				Status:            enums.ContractStatusWaitingDeposit,
				DepositOrderID:    order.ID,
			}
			if _, err := s.contracts.WithTx(tx).Create(ctx, contract); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contract")
			}

			order.Items = []models.OrderItem{item}
			created = append(created, *order)
			total += order.TotalAmount
			usedItems = append(usedItems, line.cartItem.ID)
		}

		// all retail lines bundle into one order
		if len(retail) > 0 {
			var (
				items       []models.OrderItem
				goodsTotal  int64
				totalWeight int
			)
			orderID := uuid.New()
			for _, line := range retail {
				if err := s.stock.ReserveRetail(ctx, tx, line.variant.ID, line.request.Quantity); err != nil {
					return err
				}
				items = append(items, models.OrderItem{
					ID:        uuid.New(),
					OrderID:   orderID,
					VariantID: line.variant.ID,
					Quantity:  line.request.Quantity,
					UnitPrice: line.variant.UnitPrice,
				})
				goodsTotal += line.variant.UnitPrice * int64(line.request.Quantity)
				totalWeight += line.variant.WeightGrams * line.request.Quantity
				usedItems = append(usedItems, line.cartItem.ID)
			}

			carrierQuote, err := s.quoter.Quote(ctx, totalWeight)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "quote shipping")
			}

			order := &models.Order{
				ID:                  orderID,
				CustomerID:          input.CustomerID,
				PaymentRefCode:      refCode,
				Status:              enums.OrderStatusPendingPayment,
				TotalAmount:         goodsTotal + s.cfg.FlatShippingFee,
				ShippingFee:         s.cfg.FlatShippingFee,
				OriginalShippingFee: carrierQuote,
				PaymentMethod:       input.PaymentMethod,
				ShippingAddressID:   input.ShippingAddressID,
				PaymentDeadline:     &deadline,
			}
			if input.VoucherCode != "" {
				voucher := input.VoucherCode
				order.VoucherCode = &voucher
			}
			if _, err := s.orders.WithTx(tx).CreateOrder(ctx, order); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create retail order")
			}
			if err := s.orders.WithTx(tx).CreateOrderItems(ctx, items); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create retail order items")
			}

			order.Items = items
			created = append(created, *order)
			total += order.TotalAmount
		}

		// cart lines leave the cart only once every reservation has held
		if err := txCart.RemoveItems(ctx, activeCart.ID, usedItems); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart items")
		}
		if len(usedItems) == len(activeCart.Items) {
			if err := txCart.UpdateStatus(ctx, activeCart.ID, enums.CartStatusConverted); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "convert cart")
			}
		}

		orderIDs := make([]uuid.UUID, 0, len(created))
		for _, order := range created {
			orderIDs = append(orderIDs, order.ID)
		}
		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   orderIDs[0],
			Actor:         &outbox.ActorRef{CustomerID: input.CustomerID, Role: "customer"},
			Data: payloads.OrderCreatedEvent{
				PaymentRefCode: refCode,
				CustomerID:     input.CustomerID,
				OrderIDs:       orderIDs,
			},
		}); err != nil {
			return err
		}

		result = &Result{
			PaymentRefCode: refCode,
			TotalAmount:    total,
			OrderIDs:       orderIDs,
			Orders:         created,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"payment_ref_code": result.PaymentRefCode,
		"orders":           len(result.OrderIDs),
		"total_amount":     result.TotalAmount,
	})
	s.logg.Info(logCtx, "checkout completed")
	return result, nil
}

// resolveLines matches requested lines against the cart and classifies them.
func (s *service) resolveLines(ctx context.Context, tx *gorm.DB, input Input, activeCart *models.Cart) (retail, preorder []checkoutLine, err error) {
	cartByVariant := make(map[uuid.UUID]models.CartItem, len(activeCart.Items))
	for _, item := range activeCart.Items {
		cartByVariant[item.VariantID] = item
	}

	variantIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, line := range input.Items {
		variantIDs = append(variantIDs, line.VariantID)
	}
	variants, err := s.products.WithTx(tx).FindVariantsByIDs(ctx, variantIDs)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variants")
	}

	for _, line := range input.Items {
		cartItem, inCart := cartByVariant[line.VariantID]
		if !inCart {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "requested variant is not in the cart").
				WithDetails(map[string]any{"variant_id": line.VariantID.String()})
		}
		if line.Quantity > cartItem.Quantity {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds cart quantity").
				WithDetails(map[string]any{"variant_id": line.VariantID.String()})
		}
		variant, ok := variants[line.VariantID]
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found").
				WithDetails(map[string]any{"variant_id": line.VariantID.String()})
		}

		if line.UnitPriceHint != 0 && line.UnitPriceHint != variant.UnitPrice {
			hintCtx := s.logg.WithFields(ctx, map[string]any{
				"variant_id":   line.VariantID.String(),
				"price_hint":   line.UnitPriceHint,
				"actual_price": variant.UnitPrice,
			})
			s.logg.Warn(hintCtx, "checkout price hint is stale, charging the snapshot price")
		}

		resolved := checkoutLine{request: line, variant: variant, cartItem: cartItem}
		if products.IsPreorder(variant) {
			if variant.PreorderConfig == nil {
				return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "preorder variant has no slot configuration").
					WithDetails(map[string]any{"variant_id": line.VariantID.String()})
			}
			preorder = append(preorder, resolved)
		} else {
			if line.PayFullUpfront {
				return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "full upfront payment only applies to preorder lines")
			}
			retail = append(retail, resolved)
		}
	}
	return retail, preorder, nil
}

func validateInput(input Input) error {
	if input.CustomerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout needs at least one item")
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}
	seen := make(map[uuid.UUID]struct{}, len(input.Items))
	for _, line := range input.Items {
		if line.VariantID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant id required on every item")
		}
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if _, dup := seen[line.VariantID]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate variant in checkout items").
				WithDetails(map[string]any{"variant_id": line.VariantID.String()})
		}
		seen[line.VariantID] = struct{}{}
	}
	return nil
}

func newPaymentRefCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PAY-" + strings.ToUpper(raw[:16])
}
