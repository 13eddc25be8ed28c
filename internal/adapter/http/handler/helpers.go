package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yamori/ammoledger/internal/adapter/http/dto"
	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/usecase"
)

// OwnerIDHeader carries the caller's owner identity. The service trusts
// it as-is; authentication happens upstream of this API.
const OwnerIDHeader = "X-Owner-ID"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTypeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAppendContention):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFutureEventDate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidEventKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCorrectionNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReasonRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDetailNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTypeInactive):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrCategoryRequired):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrCaliberRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requireOwner extracts the owner ID header, writing a 400 if absent.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := r.Header.Get(OwnerIDHeader)
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "missing owner", "set the "+OwnerIDHeader+" header")
		return "", false
	}

	return ownerID, true
}

// auditContext collects request metadata for audit rows.
func auditContext(r *http.Request) usecase.AuditContext {
	return usecase.AuditContext{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
		RequestID: chimiddleware.GetReqID(r.Context()),
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
