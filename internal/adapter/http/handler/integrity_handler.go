package handler

import (
	"context"
	"net/http"

	"github.com/yamori/ammoledger/internal/adapter/http/dto"
	"github.com/yamori/ammoledger/internal/domain"
)

// IntegrityService defines the behavior needed by IntegrityHandler.
type IntegrityService interface {
	VerifyChain(ctx context.Context, ownerID string) (*domain.ChainReport, error)
}

// IntegrityHandler handles chain verification HTTP requests.
type IntegrityHandler struct {
	integrityUC IntegrityService
}

// NewIntegrityHandler creates a new IntegrityHandler.
func NewIntegrityHandler(integrityUC IntegrityService) *IntegrityHandler {
	return &IntegrityHandler{integrityUC: integrityUC}
}

// Verify replays the owner's chain and reports validity. A broken chain
// is a 200 with valid=false; only operational failures are errors.
func (h *IntegrityHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	report, err := h.integrityUC.VerifyChain(r.Context(), ownerID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to verify chain", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ChainReportFromDomain(report))
}
