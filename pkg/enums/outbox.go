package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateOrder            OutboxAggregateType = "order"
	AggregateContract         OutboxAggregateType = "preorder_contract"
	AggregateWallet           OutboxAggregateType = "wallet"
	AggregateInventoryReceipt OutboxAggregateType = "inventory_receipt"
	AggregateNotification     OutboxAggregateType = "notification"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateOrder,
	AggregateContract,
	AggregateWallet,
	AggregateInventoryReceipt,
	AggregateNotification,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventOrderCreated          OutboxEventType = "order_created"
	EventOrderPaid             OutboxEventType = "order_paid"
	EventOrderPacked           OutboxEventType = "order_packed"
	EventOrderShipping         OutboxEventType = "order_shipping"
	EventOrderCompleted        OutboxEventType = "order_completed"
	EventOrderCancelled        OutboxEventType = "order_cancelled"
	EventOrderExpired          OutboxEventType = "order_expired"
	EventContractDeposited     OutboxEventType = "contract_deposited"
	EventContractReadyToPay    OutboxEventType = "contract_ready_to_pay"
	EventContractCompleted     OutboxEventType = "contract_completed"
	EventContractCancelled     OutboxEventType = "contract_cancelled"
	EventInventoryReceived     OutboxEventType = "inventory_received"
	EventWalletDebited         OutboxEventType = "wallet_debited"
	EventWalletCredited        OutboxEventType = "wallet_credited"
	EventLoyaltyAccrued        OutboxEventType = "loyalty_accrued"
	EventNotificationRequested OutboxEventType = "notification_requested"
)

var validOutboxEventTypes = []OutboxEventType{
	EventOrderCreated,
	EventOrderPaid,
	EventOrderPacked,
	EventOrderShipping,
	EventOrderCompleted,
	EventOrderCancelled,
	EventOrderExpired,
	EventContractDeposited,
	EventContractReadyToPay,
	EventContractCompleted,
	EventContractCancelled,
	EventInventoryReceived,
	EventWalletDebited,
	EventWalletCredited,
	EventLoyaltyAccrued,
	EventNotificationRequested,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
