package enums

import "fmt"

// OrderStatus tracks the lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusWaitingDeposit OrderStatus = "waiting_deposit"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusDeposited      OrderStatus = "deposited"
	OrderStatusPacked         OrderStatus = "packed"
	OrderStatusShipping       OrderStatus = "shipping"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusReturning      OrderStatus = "returning"
	OrderStatusReturned       OrderStatus = "returned"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusExpired        OrderStatus = "expired"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPendingPayment,
	OrderStatusWaitingDeposit,
	OrderStatusProcessing,
	OrderStatusDeposited,
	OrderStatusPacked,
	OrderStatusShipping,
	OrderStatusCompleted,
	OrderStatusReturning,
	OrderStatusReturned,
	OrderStatusCancelled,
	OrderStatusExpired,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition may leave the status.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusReturned, OrderStatusCancelled, OrderStatusExpired:
		return true
	}
	return false
}

// IsAwaitingPayment reports whether the order still holds unpaid
// reservations and may be reverted.
func (s OrderStatus) IsAwaitingPayment() bool {
	return s == OrderStatusPendingPayment || s == OrderStatusWaitingDeposit
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
