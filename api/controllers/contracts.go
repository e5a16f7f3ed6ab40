package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/api/responses"
	"github.com/figurehub/figurehub-backend/api/validators"
	contractsvc "github.com/figurehub/figurehub-backend/internal/contracts"
	"github.com/figurehub/figurehub-backend/pkg/db/models"
	"github.com/figurehub/figurehub-backend/pkg/enums"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
)

const (
	defaultContractListLimit = 20
	maxContractListLimit     = 100
)

type contractResponse struct {
	ContractID          uuid.UUID  `json:"contract_id"`
	VariantID           uuid.UUID  `json:"variant_id"`
	Quantity            int        `json:"quantity"`
	Status              string     `json:"status"`
	DepositAmountPaid   int64      `json:"deposit_amount_paid"`
	RemainingAmount     int64      `json:"remaining_amount"`
	DepositOrderID      uuid.UUID  `json:"deposit_order_id"`
	FinalPaymentOrderID *uuid.UUID `json:"final_payment_order_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

func newContractResponse(contract *models.PreorderContract) contractResponse {
	if contract == nil {
		return contractResponse{}
	}
	return contractResponse{
		ContractID:          contract.ID,
		VariantID:           contract.VariantID,
		Quantity:            contract.Quantity,
		Status:              string(contract.Status),
		DepositAmountPaid:   contract.DepositAmountPaid,
		RemainingAmount:     contract.RemainingAmount,
		DepositOrderID:      contract.DepositOrderID,
		FinalPaymentOrderID: contract.FinalPaymentOrderID,
		CreatedAt:           contract.CreatedAt,
	}
}

// ListContracts returns the customer's pre-order contracts, newest first.
func ListContracts(svc contractsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contract service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultContractListLimit, 1, maxContractListLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contracts, err := svc.List(r.Context(), customerID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]contractResponse, 0, len(contracts))
		for i := range contracts {
			items = append(items, newContractResponse(&contracts[i]))
		}
		responses.WriteSuccess(w, map[string]any{"contracts": items})
	}
}

// GetContract returns one of the customer's contracts.
func GetContract(svc contractsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contract service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contractID, err := pathUUID(r, "contractID", chi.URLParam(r, "contractID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contract, err := svc.Get(r.Context(), customerID, contractID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newContractResponse(contract))
	}
}

type finalPaymentRequest struct {
	PaymentMethod     string     `json:"payment_method" validate:"required"`
	ShippingAddressID *uuid.UUID `json:"shipping_address_id,omitempty" validate:"omitempty,uuid4"`
}

// ContractFinalPayment settles the remaining balance of an allocated contract.
func ContractFinalPayment(svc contractsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contract service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contractID, err := pathUUID(r, "contractID", chi.URLParam(r, "contractID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload finalPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		contract, err := svc.FinalPayment(r.Context(), contractsvc.FinalPaymentInput{
			ContractID:        contractID,
			CustomerID:        customerID,
			Method:            method,
			ShippingAddressID: payload.ShippingAddressID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newContractResponse(contract))
	}
}
