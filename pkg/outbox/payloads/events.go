package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// OrderCreatedEvent signals a checkout split into one or more orders.
type OrderCreatedEvent struct {
	PaymentRefCode string      `json:"payment_ref_code"`
	CustomerID     uuid.UUID   `json:"customer_id"`
	OrderIDs       []uuid.UUID `json:"order_ids"`
}

// OrderPaidEvent is emitted when a payment is confirmed for an order.
type OrderPaidEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	CustomerID    uuid.UUID           `json:"customer_id"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	AmountPaid    int64               `json:"amount_paid"`
	PaidAt        time.Time           `json:"paid_at"`
}

// OrderPackedEvent is emitted when warehouse staff finish packing an order.
type OrderPackedEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// OrderShippingEvent mirrors a carrier webhook that moved the order into transit.
type OrderShippingEvent struct {
	OrderID       uuid.UUID `json:"order_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CarrierStatus string    `json:"carrier_status"`
}

// OrderCompletedEvent is emitted on carrier-confirmed delivery.
type OrderCompletedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// OrderCancelledEvent is emitted whenever an order is cancelled and its holds released.
type OrderCancelledEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	CancelledAt time.Time `json:"cancelled_at"`
	Reason      string    `json:"reason,omitempty"`
}

// OrderExpiredEvent describes the payload when the sweeper expires an unpaid order.
type OrderExpiredEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ExpiredAt  time.Time `json:"expired_at"`
}

// ContractDepositedEvent is emitted when a deposit payment activates a contract.
type ContractDepositedEvent struct {
	ContractID    uuid.UUID `json:"contract_id"`
	OrderID       uuid.UUID `json:"order_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	DepositAmount int64     `json:"deposit_amount"`
}

// ContractReadyToPayEvent tells the customer their allocated units await final payment.
type ContractReadyToPayEvent struct {
	ContractID      uuid.UUID `json:"contract_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	VariantID       uuid.UUID `json:"variant_id"`
	RemainingAmount int64     `json:"remaining_amount"`
}

// ContractCompletedEvent is emitted once the final payment settles a contract.
type ContractCompletedEvent struct {
	ContractID          uuid.UUID `json:"contract_id"`
	CustomerID          uuid.UUID `json:"customer_id"`
	FinalPaymentOrderID uuid.UUID `json:"final_payment_order_id"`
}

// ContractCancelledEvent is emitted when a contract is cancelled with its parent order.
type ContractCancelledEvent struct {
	ContractID uuid.UUID `json:"contract_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Reason     string    `json:"reason,omitempty"`
}

// InventoryReceivedLine is one variant line of a stock receipt.
type InventoryReceivedLine struct {
	VariantID      uuid.UUID `json:"variant_id"`
	QuantityGood   int       `json:"quantity_good"`
	QuantityDefect int       `json:"quantity_defect"`
}

// InventoryReceivedEvent is emitted after a warehouse receipt is recorded.
type InventoryReceivedEvent struct {
	ReceiptID uuid.UUID               `json:"receipt_id"`
	Lines     []InventoryReceivedLine `json:"lines"`
}

// WalletMovementEvent is shared by debit and credit events on a wallet.
type WalletMovementEvent struct {
	CustomerID uuid.UUID             `json:"customer_id"`
	Amount     int64                 `json:"amount"`
	EntryType  enums.WalletEntryType `json:"entry_type"`
	RefCode    string                `json:"ref_code"`
}

// LoyaltyAccruedEvent reports points granted on order completion.
type LoyaltyAccruedEvent struct {
	CustomerID uuid.UUID `json:"customer_id"`
	OrderID    uuid.UUID `json:"order_id"`
	Points     int64     `json:"points"`
}

// NotificationRequestedEvent asks the notification consumer to persist a message.
type NotificationRequestedEvent struct {
	CustomerID uuid.UUID              `json:"customer_id"`
	Type       enums.NotificationType `json:"type"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Link       string                 `json:"link,omitempty"`
}
