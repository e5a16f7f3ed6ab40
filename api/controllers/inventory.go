package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/api/responses"
	"github.com/figurehub/figurehub-backend/api/validators"
	inventorysvc "github.com/figurehub/figurehub-backend/internal/inventory"
	"github.com/figurehub/figurehub-backend/pkg/db/models"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
)

const (
	defaultReceiptListLimit = 20
	maxReceiptListLimit     = 100
)

type receiptResponse struct {
	ReceiptID uuid.UUID             `json:"receipt_id"`
	Reference *string               `json:"reference,omitempty"`
	Items     []receiptItemResponse `json:"items,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

type receiptItemResponse struct {
	VariantID      uuid.UUID `json:"variant_id"`
	QuantityGood   int       `json:"quantity_good"`
	QuantityDefect int       `json:"quantity_defect"`
}

func newReceiptResponse(receipt *models.InventoryReceipt) receiptResponse {
	if receipt == nil {
		return receiptResponse{}
	}
	items := make([]receiptItemResponse, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		items = append(items, receiptItemResponse{
			VariantID:      item.VariantID,
			QuantityGood:   item.QuantityGood,
			QuantityDefect: item.QuantityDefect,
		})
	}
	return receiptResponse{
		ReceiptID: receipt.ID,
		Reference: receipt.Reference,
		Items:     items,
		CreatedAt: receipt.CreatedAt,
	}
}

type recordReceiptRequest struct {
	Reference string                     `json:"reference,omitempty" validate:"omitempty,max=120"`
	Lines     []recordReceiptLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type recordReceiptLineRequest struct {
	VariantID      uuid.UUID `json:"variant_id" validate:"required,uuid4"`
	QuantityGood   int       `json:"quantity_good" validate:"min=0"`
	QuantityDefect int       `json:"quantity_defect" validate:"min=0"`
}

// RecordInventoryReceipt books a warehouse delivery. Good pre-order units
// run the allocation queue before anything is released for sale.
func RecordInventoryReceipt(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload recordReceiptRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]inventorysvc.ReceiptLine, 0, len(payload.Lines))
		for _, line := range payload.Lines {
			lines = append(lines, inventorysvc.ReceiptLine{
				VariantID:      line.VariantID,
				QuantityGood:   line.QuantityGood,
				QuantityDefect: line.QuantityDefect,
			})
		}

		receipt, err := svc.RecordReceipt(r.Context(), inventorysvc.RecordReceiptInput{
			Reference: payload.Reference,
			Lines:     lines,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newReceiptResponse(receipt))
	}
}

// GetInventoryReceipt returns one receipt with its lines.
func GetInventoryReceipt(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		receiptID, err := pathUUID(r, "receiptID", chi.URLParam(r, "receiptID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.GetReceipt(r.Context(), receiptID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newReceiptResponse(receipt))
	}
}

// ListInventoryReceipts returns recent receipts, newest first.
func ListInventoryReceipts(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultReceiptListLimit, 1, maxReceiptListLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipts, err := svc.ListReceipts(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]receiptResponse, 0, len(receipts))
		for i := range receipts {
			items = append(items, newReceiptResponse(&receipts[i]))
		}
		responses.WriteSuccess(w, map[string]any{"receipts": items})
	}
}
