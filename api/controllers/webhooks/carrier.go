package webhooks

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/api/responses"
	"github.com/figurehub/figurehub-backend/api/validators"
	ordersvc "github.com/figurehub/figurehub-backend/internal/orders"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
)

type carrierStatusRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required,uuid4"`
	Status  string    `json:"status" validate:"required,max=60"`
}

// CarrierStatus ingests one fulfilment callback from the shipping carrier.
// Unknown statuses still return 200 so the carrier stops retrying.
func CarrierStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload carrierStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.ApplyCarrierStatus(ctx, ordersvc.CarrierStatusInput{
			OrderID:       payload.OrderID,
			CarrierStatus: payload.Status,
		}); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "accepted"})
	}
}
