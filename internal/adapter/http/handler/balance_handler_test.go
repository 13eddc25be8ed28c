package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamori/ammoledger/internal/adapter/http/dto"
	"github.com/yamori/ammoledger/internal/domain"
)

type fakeBalanceService struct {
	currentFunc func(ctx context.Context, ownerID, typeID string) (int64, error)
	atDateFunc  func(ctx context.Context, ownerID, typeID string, date time.Time) (int64, error)
	historyFunc func(ctx context.Context, ownerID, typeID string, start, end time.Time) ([]domain.DailyBalance, error)
	allFunc     func(ctx context.Context, ownerID string) ([]*domain.TypeBalance, error)
}

func (f *fakeBalanceService) CurrentBalance(ctx context.Context, ownerID, typeID string) (int64, error) {
	return f.currentFunc(ctx, ownerID, typeID)
}

func (f *fakeBalanceService) BalanceAtDate(ctx context.Context, ownerID, typeID string, date time.Time) (int64, error) {
	return f.atDateFunc(ctx, ownerID, typeID, date)
}

func (f *fakeBalanceService) BalanceHistory(ctx context.Context, ownerID, typeID string, start, end time.Time) ([]domain.DailyBalance, error) {
	return f.historyFunc(ctx, ownerID, typeID, start, end)
}

func (f *fakeBalanceService) AllCurrentBalances(ctx context.Context, ownerID string) ([]*domain.TypeBalance, error) {
	return f.allFunc(ctx, ownerID)
}

func balanceRouter(svc BalanceService) http.Handler {
	h := NewBalanceHandler(svc)

	r := chi.NewRouter()
	r.Get("/balances", h.All)
	r.Get("/balances/{typeID}", h.Current)
	r.Get("/balances/{typeID}/at", h.AtDate)
	r.Get("/balances/{typeID}/history", h.History)

	return r
}

func TestCurrentBalanceHandler(t *testing.T) {
	svc := &fakeBalanceService{
		currentFunc: func(ctx context.Context, ownerID, typeID string) (int64, error) {
			assert.Equal(t, "owner-1", ownerID)
			assert.Equal(t, "type-1", typeID)
			return 90, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/balances/type-1", nil)
	req.Header.Set(OwnerIDHeader, "owner-1")
	w := httptest.NewRecorder()

	balanceRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.BalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "type-1", resp.AmmunitionTypeID)
	assert.Equal(t, int64(90), resp.Balance)
	assert.Empty(t, resp.AsOf)
}

func TestCurrentBalanceHandlerUnknownType(t *testing.T) {
	svc := &fakeBalanceService{
		currentFunc: func(ctx context.Context, ownerID, typeID string) (int64, error) {
			return 0, domain.ErrTypeNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/balances/missing", nil)
	req.Header.Set(OwnerIDHeader, "owner-1")
	w := httptest.NewRecorder()

	balanceRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBalanceAtDateHandler(t *testing.T) {
	svc := &fakeBalanceService{
		atDateFunc: func(ctx context.Context, ownerID, typeID string, date time.Time) (int64, error) {
			assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), date)
			return 70, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/balances/type-1/at?date=2025-03-14", nil)
	req.Header.Set(OwnerIDHeader, "owner-1")
	w := httptest.NewRecorder()

	balanceRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.BalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(70), resp.Balance)
	assert.Equal(t, "2025-03-14", resp.AsOf)
}

func TestBalanceAtDateHandlerMissingDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/balances/type-1/at", nil)
	req.Header.Set(OwnerIDHeader, "owner-1")
	w := httptest.NewRecorder()

	balanceRouter(&fakeBalanceService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBalanceHistoryHandler(t *testing.T) {
	svc := &fakeBalanceService{
		historyFunc: func(ctx context.Context, ownerID, typeID string, start, end time.Time) ([]domain.DailyBalance, error) {
			return []domain.DailyBalance{
				{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Balance: 100},
				{Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Balance: 70},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/balances/type-1/history?start=2025-03-01&end=2025-03-02", nil)
	req.Header.Set(OwnerIDHeader, "owner-1")
	w := httptest.NewRecorder()

	balanceRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.BalanceHistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.History, 2)
	assert.Equal(t, "2025-03-01", resp.History[0].Date)
	assert.Equal(t, int64(70), resp.History[1].Balance)
}

func TestBalanceHistoryHandlerInvalidRange(t *testing.T) {
	svc := &fakeBalanceService{
		historyFunc: func(ctx context.Context, ownerID, typeID string, start, end time.Time) ([]domain.DailyBalance, error) {
			return nil, domain.ErrInvalidDateRange
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/balances/type-1/history?start=2025-03-05&end=2025-03-01", nil)
	req.Header.Set(OwnerIDHeader, "owner-1")
	w := httptest.NewRecorder()

	balanceRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllBalancesHandler(t *testing.T) {
	last := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	svc := &fakeBalanceService{
		allFunc: func(ctx context.Context, ownerID string) ([]*domain.TypeBalance, error) {
			return []*domain.TypeBalance{
				{
					Type:          &domain.AmmunitionType{ID: "type-1", Category: "rifle", Caliber: ".308 Win", Active: true},
					Balance:       90,
					LastEventDate: &last,
				},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/balances", nil)
	req.Header.Set(OwnerIDHeader, "owner-1")
	w := httptest.NewRecorder()

	balanceRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []*dto.TypeBalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(90), resp[0].Balance)
	require.NotNil(t, resp[0].LastEventDate)
	assert.Equal(t, "2025-03-04", *resp[0].LastEventDate)
}
