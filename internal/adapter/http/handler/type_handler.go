package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yamori/ammoledger/internal/adapter/http/dto"
	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/usecase"
)

// TypeService defines the behavior needed by TypeHandler.
type TypeService interface {
	CreateType(ctx context.Context, input usecase.CreateTypeInput) (*domain.AmmunitionType, error)
	GetType(ctx context.Context, ownerID, id string) (*domain.AmmunitionType, error)
	ListTypes(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.AmmunitionType, error)
	UpdateType(ctx context.Context, input usecase.UpdateTypeInput) (*domain.AmmunitionType, error)
}

// TypeHandler handles ammunition-type catalog HTTP requests.
type TypeHandler struct {
	typeUC TypeService
}

// NewTypeHandler creates a new TypeHandler.
func NewTypeHandler(typeUC TypeService) *TypeHandler {
	return &TypeHandler{typeUC: typeUC}
}

// Create registers a new ammunition type.
func (h *TypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req dto.CreateTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ammoType, err := h.typeUC.CreateType(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create type", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TypeFromDomain(ammoType))
}

// Get retrieves a type by ID, active or not.
func (h *TypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	ammoType, err := h.typeUC.GetType(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get type", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TypeFromDomain(ammoType))
}

// List lists an owner's types.
func (h *TypeHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	types, err := h.typeUC.ListTypes(r.Context(), ownerID, activeOnly)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list types", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TypesFromDomain(types))
}

// Update updates catalog fields, including deactivation.
func (h *TypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ammoType, err := h.typeUC.UpdateType(r.Context(), req.ToUseCaseInput(ownerID, chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update type", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TypeFromDomain(ammoType))
}
