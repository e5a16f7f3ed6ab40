package orders

import (
	"strings"

	"github.com/figurehub/figurehub-backend/pkg/enums"
)

// carrierStatusMap translates raw carrier callback statuses into order
// statuses. Carriers report several pick/warehouse phases that all mean the
// parcel is in transit from our side.
var carrierStatusMap = map[string]enums.OrderStatus{
	"picking":   enums.OrderStatusShipping,
	"picked":    enums.OrderStatusShipping,
	"storing":   enums.OrderStatusShipping,
	"transport": enums.OrderStatusShipping,
	"delivered": enums.OrderStatusCompleted,
	"return":    enums.OrderStatusReturning,
	"returning": enums.OrderStatusReturning,
	"returned":  enums.OrderStatusReturned,
	"cancel":    enums.OrderStatusCancelled,
	"canceled":  enums.OrderStatusCancelled,
	"cancelled": enums.OrderStatusCancelled,
}

// MapCarrierStatus resolves a carrier status string to an order status.
// Unknown statuses return false; callers acknowledge and drop them.
func MapCarrierStatus(raw string) (enums.OrderStatus, bool) {
	status, ok := carrierStatusMap[strings.ToLower(strings.TrimSpace(raw))]
	return status, ok
}
