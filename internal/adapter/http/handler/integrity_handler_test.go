package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamori/ammoledger/internal/adapter/http/dto"
	"github.com/yamori/ammoledger/internal/domain"
)

type fakeIntegrityService struct {
	verifyFunc func(ctx context.Context, ownerID string) (*domain.ChainReport, error)
}

func (f *fakeIntegrityService) VerifyChain(ctx context.Context, ownerID string) (*domain.ChainReport, error) {
	return f.verifyFunc(ctx, ownerID)
}

func TestVerifyHandlerBrokenChainIsStillOK(t *testing.T) {
	svc := &fakeIntegrityService{
		verifyFunc: func(ctx context.Context, ownerID string) (*domain.ChainReport, error) {
			return &domain.ChainReport{
				OwnerID:   ownerID,
				Valid:     false,
				CheckedAt: time.Now().UTC(),
				Results: []domain.EventCheck{
					{EventID: 1, Kind: domain.KindAcquisition, HashValid: true, ChainValid: true, Valid: true},
					{EventID: 2, Kind: domain.KindConsumption, HashValid: false, ChainValid: true, Valid: false},
				},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/integrity", nil)
	req.Header.Set(OwnerIDHeader, "owner-1")
	w := httptest.NewRecorder()

	NewIntegrityHandler(svc).Verify(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ChainReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, 2, resp.Events)
	require.Len(t, resp.Results, 2)
	assert.False(t, resp.Results[1].HashValid)
}

func TestVerifyHandlerStorageError(t *testing.T) {
	svc := &fakeIntegrityService{
		verifyFunc: func(ctx context.Context, ownerID string) (*domain.ChainReport, error) {
			return nil, assert.AnError
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/integrity", nil)
	req.Header.Set(OwnerIDHeader, "owner-1")
	w := httptest.NewRecorder()

	NewIntegrityHandler(svc).Verify(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
