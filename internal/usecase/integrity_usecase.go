package usecase

import (
	"context"
	"time"

	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/hashchain"
)

// IntegrityUseCase replays an owner's chain and reports per-event and
// aggregate validity. It never mutates anything, and integrity violations
// are findings in the report, not errors.
type IntegrityUseCase struct {
	events EventRepository
}

// NewIntegrityUseCase creates a new IntegrityUseCase.
func NewIntegrityUseCase(events EventRepository) *IntegrityUseCase {
	return &IntegrityUseCase{events: events}
}

// VerifyChain checks every event of an owner in id order. For each event,
// the stored hash is recomputed from the stored fields (hashValid) and the
// previous-hash link is compared against the prior event's stored hash
// (chainValid). A corrupted hash invalidates that event and the link of
// the immediately following one; validity is not cascaded further, so the
// report points at the first place the chain broke.
func (uc *IntegrityUseCase) VerifyChain(ctx context.Context, ownerID string) (*domain.ChainReport, error) {
	events, err := uc.events.ListChain(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := &domain.ChainReport{
		OwnerID:   ownerID,
		Valid:     true,
		CheckedAt: time.Now().UTC(),
		Results:   make([]domain.EventCheck, 0, len(events)),
	}

	for i, event := range events {
		hashValid := hashchain.Verify(event)

		var chainValid bool
		if i == 0 {
			chainValid = event.PreviousHash == nil
		} else {
			chainValid = event.PreviousHash != nil && *event.PreviousHash == events[i-1].RecordHash
		}

		valid := hashValid && chainValid
		if !valid {
			report.Valid = false
		}

		report.Results = append(report.Results, domain.EventCheck{
			EventID:    event.ID,
			EventDate:  event.EventDate,
			Kind:       event.Kind,
			HashValid:  hashValid,
			ChainValid: chainValid,
			Valid:      valid,
		})
	}

	return report, nil
}
