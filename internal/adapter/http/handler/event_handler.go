package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yamori/ammoledger/internal/adapter/http/dto"
	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/usecase"
)

// LedgerService defines the behavior needed by EventHandler.
type LedgerService interface {
	Append(ctx context.Context, input usecase.AppendEventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, ownerID string, id int64) (*domain.Event, []*domain.Event, error)
	ListEvents(ctx context.Context, ownerID string, filter domain.EventFilter) ([]*domain.Event, error)
}

// CorrectionService defines the behavior needed for corrections.
type CorrectionService interface {
	Correct(ctx context.Context, input usecase.CorrectEventInput) (*domain.Event, error)
}

// EventHandler handles ledger event HTTP requests.
type EventHandler struct {
	ledgerUC     LedgerService
	correctionUC CorrectionService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(ledgerUC LedgerService, correctionUC CorrectionService) *EventHandler {
	return &EventHandler{
		ledgerUC:     ledgerUC,
		correctionUC: correctionUC,
	}
}

// Append appends a new inventory movement.
func (h *EventHandler) Append(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req dto.AppendEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(ownerID, auditContext(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event date", err.Error())
		return
	}

	event, err := h.ledgerUC.Append(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to append event", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EventFromDomain(event))
}

// Get retrieves one event with its corrections.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID", err.Error())
		return
	}

	event, corrections, err := h.ledgerUC.GetEvent(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get event", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EventWithCorrectionsResponse{
		Event:       dto.EventFromDomain(event),
		Corrections: dto.EventsFromDomain(corrections),
	})
}

// List lists an owner's events with filters and pagination.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	filter := domain.EventFilter{
		TypeID: r.URL.Query().Get("ammunition_type_id"),
		Kind:   domain.EventKind(r.URL.Query().Get("event_type")),
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: parseIntQuery(r, "offset", 0),
	}

	var err error
	if filter.DateFrom, err = parseDateQuery(r, "from"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}
	if filter.DateTo, err = parseDateQuery(r, "to"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	events, err := h.ledgerUC.ListEvents(r.Context(), ownerID, filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list events", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEventsResponse{
		Events: dto.EventsFromDomain(events),
		Total:  int64(len(events)),
	})
}

// Correct appends a correction event referencing the original.
func (h *EventHandler) Correct(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID", err.Error())
		return
	}

	var req dto.CorrectEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	event, err := h.correctionUC.Correct(r.Context(), req.ToUseCaseInput(ownerID, id, auditContext(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to correct event", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EventFromDomain(event))
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}

	t, err := dto.ParseDate(val)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
