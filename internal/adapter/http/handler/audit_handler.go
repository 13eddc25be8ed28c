package handler

import (
	"context"
	"net/http"

	"github.com/yamori/ammoledger/internal/adapter/http/dto"
	"github.com/yamori/ammoledger/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	List(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// AuditHandler handles audit trail HTTP requests.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List returns an owner's audit entries, newest first.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	filter := domain.AuditFilter{
		Action:       r.URL.Query().Get("action"),
		ResourceType: r.URL.Query().Get("resource_type"),
		ResourceID:   r.URL.Query().Get("resource_id"),
		Limit:        parseIntQuery(r, "limit", 0),
		Offset:       parseIntQuery(r, "offset", 0),
	}

	logs, err := h.auditUC.List(r.Context(), ownerID, filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
