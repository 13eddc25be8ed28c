package usecase

import (
	"context"

	"github.com/yamori/ammoledger/internal/domain"
)

// AuditUseCase exposes the audit trail for compliance review.
type AuditUseCase struct {
	audit AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(audit AuditRepository) *AuditUseCase {
	return &AuditUseCase{audit: audit}
}

// List returns an owner's audit entries, newest first.
func (uc *AuditUseCase) List(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}

	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}

	return uc.audit.List(ctx, ownerID, filter)
}
