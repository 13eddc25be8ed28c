package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/usecase"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrEventNotFound, http.StatusNotFound},
		{domain.ErrTypeNotFound, http.StatusNotFound},
		{domain.ErrAppendContention, http.StatusConflict},
		{domain.ErrInvalidQuantity, http.StatusBadRequest},
		{domain.ErrFutureEventDate, http.StatusBadRequest},
		{domain.ErrInvalidEventKind, http.StatusBadRequest},
		{domain.ErrCorrectionNotAllowed, http.StatusBadRequest},
		{domain.ErrReasonRequired, http.StatusBadRequest},
		{domain.ErrDetailNotAllowed, http.StatusBadRequest},
		{domain.ErrInvalidDateRange, http.StatusBadRequest},
		{domain.ErrTypeInactive, http.StatusBadRequest},
		{usecase.ErrCategoryRequired, http.StatusBadRequest},
		{usecase.ErrCaliberRequired, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, mapDomainError(tt.err))
		})
	}
}

func TestRequireOwner(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	_, ok := requireOwner(w, r)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(OwnerIDHeader, "owner-1")
	w = httptest.NewRecorder()

	ownerID, ok := requireOwner(w, r)
	assert.True(t, ok)
	assert.Equal(t, "owner-1", ownerID)
}

func TestParseIntQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=abc", nil)

	assert.Equal(t, 25, parseIntQuery(r, "limit", 0))
	assert.Equal(t, 0, parseIntQuery(r, "bad", 0))
	assert.Equal(t, 50, parseIntQuery(r, "missing", 50))
}
