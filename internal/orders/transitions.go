package orders

import "github.com/figurehub/figurehub-backend/pkg/enums"

// allowedTransitions is the whole order state machine. Any move not listed
// here is rejected at the point of mutation; callers never write raw status
// strings.
var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPendingPayment: {
		enums.OrderStatusProcessing,
		enums.OrderStatusCancelled,
		enums.OrderStatusExpired,
	},
	enums.OrderStatusWaitingDeposit: {
		enums.OrderStatusDeposited,
		enums.OrderStatusCancelled,
		enums.OrderStatusExpired,
	},
	enums.OrderStatusProcessing: {
		enums.OrderStatusPacked,
		enums.OrderStatusCancelled,
	},
	enums.OrderStatusDeposited: {
		enums.OrderStatusProcessing,
		enums.OrderStatusPacked,
		enums.OrderStatusCancelled,
	},
	enums.OrderStatusPacked: {
		enums.OrderStatusShipping,
		enums.OrderStatusCancelled,
	},
	enums.OrderStatusShipping: {
		enums.OrderStatusCompleted,
		enums.OrderStatusReturning,
		enums.OrderStatusCancelled,
	},
	enums.OrderStatusReturning: {
		enums.OrderStatusReturned,
	},
}

// CanTransition reports whether moving from one status to another is listed
// in the state machine. Terminal statuses have no outgoing edges.
func CanTransition(from, to enums.OrderStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
