package usecase

import (
	"context"
	"time"

	"github.com/yamori/ammoledger/internal/domain"
)

// EventRepository defines data access for ledger events. The interface
// deliberately exposes no update or delete: immutability of persisted
// events is a structural property of this contract, not a runtime guard.
type EventRepository interface {
	// LockOwner serializes appends for one owner. It must block (within
	// the store's lock timeout) until no other append for the same owner
	// holds the lock, and the lock must span processes, not just this one.
	LockOwner(ctx context.Context, tx Transaction, ownerID string) error
	// TailHash returns the record hash of the owner's most recent event,
	// or nil if the owner has no events. Callers must hold the owner lock.
	TailHash(ctx context.Context, tx Transaction, ownerID string) (*string, error)
	Insert(ctx context.Context, tx Transaction, event *domain.Event) (*domain.Event, error)

	GetByID(ctx context.Context, ownerID string, id int64) (*domain.Event, error)
	List(ctx context.Context, ownerID string, filter domain.EventFilter) ([]*domain.Event, error)
	// ListChain returns all of an owner's events ordered by id ascending.
	ListChain(ctx context.Context, ownerID string) ([]*domain.Event, error)
	ListCorrections(ctx context.Context, ownerID string, originalEventID int64) ([]*domain.Event, error)

	// SumQuantity sums signed quantities for an owner/type pair. A nil
	// onOrBefore means all events; otherwise only events dated on or
	// before that calendar date are included.
	SumQuantity(ctx context.Context, ownerID, typeID string, onOrBefore *time.Time) (int64, error)
	// ListThrough returns an owner/type's events dated on or before the
	// given date, ordered by event date then id.
	ListThrough(ctx context.Context, ownerID, typeID string, through time.Time) ([]*domain.Event, error)
	// CurrentBalances returns balance and last event date for every
	// currently active type owned by ownerID.
	CurrentBalances(ctx context.Context, ownerID string) ([]*domain.TypeBalance, error)
}

// TypeRepository defines data access for ammunition types.
type TypeRepository interface {
	Create(ctx context.Context, t *domain.AmmunitionType) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.AmmunitionType, error)
	List(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.AmmunitionType, error)
	Update(ctx context.Context, t *domain.AmmunitionType) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage failures such as
// deadlocks. It must not retry errors the implementation reports as
// permanent.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// AuditContext is the request-level metadata attached to audit rows.
// It is passed explicitly through every mutating call; there is no
// ambient "current request" state.
type AuditContext struct {
	IPAddress string
	UserAgent string
	RequestID string
}
