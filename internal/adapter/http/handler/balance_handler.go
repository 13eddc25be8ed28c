package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yamori/ammoledger/internal/adapter/http/dto"
	"github.com/yamori/ammoledger/internal/domain"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	CurrentBalance(ctx context.Context, ownerID, typeID string) (int64, error)
	BalanceAtDate(ctx context.Context, ownerID, typeID string, date time.Time) (int64, error)
	BalanceHistory(ctx context.Context, ownerID, typeID string, start, end time.Time) ([]domain.DailyBalance, error)
	AllCurrentBalances(ctx context.Context, ownerID string) ([]*domain.TypeBalance, error)
}

// BalanceHandler handles balance HTTP requests.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// All returns current balances for every active type.
func (h *BalanceHandler) All(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	balances, err := h.balanceUC.AllCurrentBalances(r.Context(), ownerID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TypeBalancesFromDomain(balances))
}

// Current returns the current balance for one type.
func (h *BalanceHandler) Current(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	typeID := chi.URLParam(r, "typeID")

	balance, err := h.balanceUC.CurrentBalance(r.Context(), ownerID, typeID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AmmunitionTypeID: typeID,
		Balance:          balance,
	})
}

// AtDate returns the balance as of the end of a calendar date.
func (h *BalanceHandler) AtDate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	typeID := chi.URLParam(r, "typeID")

	date, err := dto.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	balance, err := h.balanceUC.BalanceAtDate(r.Context(), ownerID, typeID, date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AmmunitionTypeID: typeID,
		Balance:          balance,
		AsOf:             date.Format(domain.DateLayout),
	})
}

// History returns a daily balance history over a date range.
func (h *BalanceHandler) History(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	typeID := chi.URLParam(r, "typeID")

	start, err := dto.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}

	end, err := dto.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}

	history, err := h.balanceUC.BalanceHistory(r.Context(), ownerID, typeID, start, end)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceHistoryResponse{
		AmmunitionTypeID: typeID,
		History:          dto.DailyBalancesFromDomain(history),
	})
}
