package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/hashchain"
)

const balanceCacheTTL = 5 * time.Minute

// LedgerUseCase owns the append path of the tamper-evident ledger. Append
// is the only way an event comes into existence; there is no update or
// delete anywhere in the exposed surface.
type LedgerUseCase struct {
	txManager TransactionManager
	events    EventRepository
	types     TypeRepository
	audit     AuditRepository
	cache     Cache
	retrier   Retrier
}

// NewLedgerUseCase creates a new LedgerUseCase. audit, cache and retrier
// may be nil to disable audit logging, balance caching and write retries.
func NewLedgerUseCase(
	txManager TransactionManager,
	events EventRepository,
	types TypeRepository,
	audit AuditRepository,
	cache Cache,
	retrier Retrier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager: txManager,
		events:    events,
		types:     types,
		audit:     audit,
		cache:     cache,
		retrier:   retrier,
	}
}

// AppendEventInput represents input for appending a movement.
type AppendEventInput struct {
	OwnerID   string
	TypeID    string
	Kind      domain.EventKind
	Quantity  int64 // magnitude; the kind's polarity determines the sign
	EventDate time.Time
	Details   domain.EventDetails
	Audit     AuditContext
}

// Append validates and persists one inventory movement, chained to the
// owner's previous event. Corrections are rejected here; they go through
// CorrectionUseCase, which funnels into the same append primitive.
func (uc *LedgerUseCase) Append(ctx context.Context, input AppendEventInput) (*domain.Event, error) {
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidEventKind
	}

	if input.Kind == domain.KindCorrection {
		return nil, domain.ErrCorrectionNotAllowed
	}

	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	eventDate := domain.TruncateToDate(input.EventDate)
	if eventDate.After(domain.TruncateToDate(time.Now())) {
		return nil, domain.ErrFutureEventDate
	}

	if err := input.Details.ValidateForKind(input.Kind); err != nil {
		return nil, err
	}

	ammoType, err := uc.types.GetByID(ctx, input.OwnerID, input.TypeID)
	if err != nil {
		return nil, err
	}

	if !ammoType.Active {
		return nil, domain.ErrTypeInactive
	}

	event := &domain.Event{
		OwnerID:   input.OwnerID,
		TypeID:    input.TypeID,
		Kind:      input.Kind,
		Quantity:  input.Kind.Polarity() * input.Quantity,
		EventDate: eventDate,
		Details:   input.Details,
	}

	created, err := uc.appendChained(ctx, event)
	if err != nil {
		return nil, err
	}

	uc.afterAppend(ctx, created, domain.AuditActionEventAppend, input.Audit)

	return created, nil
}

// appendChained is the single write primitive shared by Append and
// CorrectionUseCase.Correct. It links the event to the owner's chain tail
// and inserts it, all inside one transaction under the owner's lock so
// that no concurrent append can observe the same tail. Transient storage
// failures rerun the whole transaction, which recomputes the tail and the
// hash from scratch.
func (uc *LedgerUseCase) appendChained(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	var created *domain.Event

	op := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.events.LockOwner(ctx, tx, event.OwnerID); err != nil {
			return err
		}

		previousHash, err := uc.events.TailHash(ctx, tx, event.OwnerID)
		if err != nil {
			return err
		}

		event.PreviousHash = previousHash
		event.RecordHash = hashchain.Sum(hashchain.FromEvent(event))
		event.CreatedAt = time.Now().UTC()

		created, err = uc.events.Insert(ctx, tx, event)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		return nil, err
	}

	return created, nil
}

// afterAppend records side effects that must not fail the append itself:
// balance cache invalidation and the audit row.
func (uc *LedgerUseCase) afterAppend(ctx context.Context, event *domain.Event, action string, audit AuditContext) {
	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, BalanceCacheKey(event.OwnerID, event.TypeID)); err != nil {
			log.Warn().Err(err).Int64("event_id", event.ID).Msg("balance cache invalidation failed")
		}
	}

	if uc.audit != nil {
		err := uc.audit.Create(ctx, &domain.AuditLog{
			OwnerID:      event.OwnerID,
			Action:       action,
			ResourceType: domain.ResourceTypeEvent,
			ResourceID:   formatEventID(event.ID),
			IPAddress:    audit.IPAddress,
			UserAgent:    audit.UserAgent,
			RequestID:    audit.RequestID,
			Payload:      domain.MarshalState(event),
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			log.Warn().Err(err).Int64("event_id", event.ID).Msg("audit log write failed")
		}
	}
}

// GetEvent retrieves one event with its corrections.
func (uc *LedgerUseCase) GetEvent(ctx context.Context, ownerID string, id int64) (*domain.Event, []*domain.Event, error) {
	event, err := uc.events.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}

	corrections, err := uc.events.ListCorrections(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}

	return event, corrections, nil
}

// ListEvents lists an owner's events with filters and pagination.
func (uc *LedgerUseCase) ListEvents(ctx context.Context, ownerID string, filter domain.EventFilter) ([]*domain.Event, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}

	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}

	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return uc.events.List(ctx, ownerID, filter)
}
