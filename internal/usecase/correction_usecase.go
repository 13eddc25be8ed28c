package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/yamori/ammoledger/internal/domain"
)

// CorrectionUseCase amends ledger events without touching them: each
// correction is a new chained event carrying the signed delta between the
// corrected target quantity and the original's stored quantity.
type CorrectionUseCase struct {
	ledger *LedgerUseCase
	events EventRepository
}

// NewCorrectionUseCase creates a new CorrectionUseCase.
func NewCorrectionUseCase(ledger *LedgerUseCase, events EventRepository) *CorrectionUseCase {
	return &CorrectionUseCase{
		ledger: ledger,
		events: events,
	}
}

// CorrectEventInput represents input for correcting an event.
type CorrectEventInput struct {
	OwnerID         string
	OriginalEventID int64
	// TargetQuantity is the corrected signed contribution the original
	// event should have had, not an additional magnitude.
	TargetQuantity int64
	Reason         string
	Audit          AuditContext
}

// Correct appends a correction event referencing the original. The
// original is never modified; multiple corrections against the same
// original are allowed, and corrections of corrections are not prevented.
func (uc *CorrectionUseCase) Correct(ctx context.Context, input CorrectEventInput) (*domain.Event, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	// A foreign owner's event reports not-found, same as a missing one.
	original, err := uc.events.GetByID(ctx, input.OwnerID, input.OriginalEventID)
	if err != nil {
		return nil, err
	}

	delta := input.TargetQuantity - original.Quantity
	originalID := original.ID

	event := &domain.Event{
		OwnerID:   input.OwnerID,
		TypeID:    original.TypeID,
		Kind:      domain.KindCorrection,
		Quantity:  delta, // stored as-is, no polarity applied
		EventDate: domain.TruncateToDate(time.Now()),
		Details: domain.EventDetails{
			CorrectionReason: &reason,
			OriginalEventID:  &originalID,
		},
	}

	created, err := uc.ledger.appendChained(ctx, event)
	if err != nil {
		return nil, err
	}

	uc.ledger.afterAppend(ctx, created, domain.AuditActionEventCorrect, input.Audit)

	return created, nil
}
