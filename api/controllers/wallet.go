package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/figurehub/figurehub-backend/api/responses"
	"github.com/figurehub/figurehub-backend/api/validators"
	walletsvc "github.com/figurehub/figurehub-backend/internal/wallet"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
)

const (
	defaultWalletTxLimit = 20
	maxWalletTxLimit     = 100
)

type walletResponse struct {
	CustomerID       uuid.UUID `json:"customer_id"`
	BalanceAvailable int64     `json:"balance_available"`
	BalanceLocked    int64     `json:"balance_locked"`
	LoyaltyPoints    int64     `json:"loyalty_points"`
}

type walletTransactionResponse struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Type          string    `json:"type"`
	RefCode       string    `json:"ref_code"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// WalletBalance returns the customer's balances and loyalty points.
func WalletBalance(svc walletsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wallet, err := svc.Balance(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, walletResponse{
			CustomerID:       wallet.CustomerID,
			BalanceAvailable: wallet.BalanceAvailable,
			BalanceLocked:    wallet.BalanceLocked,
			LoyaltyPoints:    wallet.LoyaltyPoints,
		})
	}
}

// WalletTransactions returns the customer's ledger entries, newest first.
func WalletTransactions(svc walletsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultWalletTxLimit, 1, maxWalletTxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transactions, err := svc.Transactions(r.Context(), customerID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]walletTransactionResponse, 0, len(transactions))
		for _, tx := range transactions {
			items = append(items, walletTransactionResponse{
				TransactionID: tx.ID,
				Amount:        tx.Amount,
				Type:          string(tx.Type),
				RefCode:       tx.RefCode,
				Description:   tx.Description,
				CreatedAt:     tx.CreatedAt,
			})
		}
		responses.WriteSuccess(w, map[string]any{"transactions": items})
	}
}
