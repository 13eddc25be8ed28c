package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/usecase"
)

const eventColumns = `id, owner_id, ammunition_type_id, event_type, quantity, event_date,
	notes, location, counterparty_name, counterparty_address, counterparty_permit_number,
	disposal_method, correction_reason, original_event_id, record_hash, previous_hash, created_at`

// EventRepository implements usecase.EventRepository. The interface carries
// no update or delete, and the ledger_events table backs that up with a
// trigger that rejects both; any violation surfaces as ErrImmutableRecord.
type EventRepository struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewEventRepository creates a new EventRepository. lockTimeout bounds how
// long an append waits for the per-owner lock before failing with
// ErrAppendContention.
func NewEventRepository(pool *pgxpool.Pool, lockTimeout time.Duration) *EventRepository {
	return &EventRepository{
		pool:        pool,
		lockTimeout: lockTimeout,
	}
}

// LockOwner takes the owner's advisory lock for the duration of the
// transaction. The lock key is derived from the owner ID, so appends for
// different owners never contend, and the lock is held in postgres, so it
// serializes appends across processes.
func (r *EventRepository) LockOwner(ctx context.Context, tx usecase.Transaction, ownerID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
	if _, err := pgxTx.Exec(ctx, timeout); err != nil {
		return translateError(err)
	}

	_, err := pgxTx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended('ledger:' || $1, 0))`, ownerID)

	return translateError(err)
}

// TailHash returns the record hash of the owner's most recent event, or
// nil for a fresh chain. Must run inside the transaction holding the
// owner's lock so the tail cannot move before the insert.
func (r *EventRepository) TailHash(ctx context.Context, tx usecase.Transaction, ownerID string) (*string, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var hash string
	err := pgxTx.QueryRow(ctx,
		`SELECT record_hash FROM ledger_events WHERE owner_id = $1 ORDER BY id DESC LIMIT 1`,
		ownerID,
	).Scan(&hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}

		return nil, translateError(err)
	}

	return &hash, nil
}

// Insert persists a new event and returns it with the store-assigned id.
func (r *EventRepository) Insert(ctx context.Context, tx usecase.Transaction, event *domain.Event) (*domain.Event, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO ledger_events (
			owner_id, ammunition_type_id, event_type, quantity, event_date,
			notes, location, counterparty_name, counterparty_address, counterparty_permit_number,
			disposal_method, correction_reason, original_event_id, record_hash, previous_hash, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	stored := *event
	err := pgxTx.QueryRow(ctx, query,
		event.OwnerID,
		event.TypeID,
		string(event.Kind),
		event.Quantity,
		event.EventDate,
		event.Details.Notes,
		event.Details.Location,
		event.Details.CounterpartyName,
		event.Details.CounterpartyAddress,
		event.Details.CounterpartyPermitNumber,
		event.Details.DisposalMethod,
		event.Details.CorrectionReason,
		event.Details.OriginalEventID,
		event.RecordHash,
		event.PreviousHash,
		event.CreatedAt,
	).Scan(&stored.ID)
	if err != nil {
		return nil, translateError(err)
	}

	return &stored, nil
}

// GetByID retrieves one event. A foreign owner's event is reported as
// not found, the same as a missing one.
func (r *EventRepository) GetByID(ctx context.Context, ownerID string, id int64) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM ledger_events WHERE owner_id = $1 AND id = $2`,
		ownerID, id,
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, translateError(err)
	}

	return event, nil
}

// List retrieves an owner's events, newest first, with optional filters.
func (r *EventRepository) List(ctx context.Context, ownerID string, filter domain.EventFilter) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM ledger_events WHERE owner_id = $1`
	args := []any{ownerID}

	if filter.TypeID != "" {
		args = append(args, filter.TypeID)
		query += fmt.Sprintf(` AND ammunition_type_id = $%d`, len(args))
	}

	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		query += fmt.Sprintf(` AND event_type = $%d`, len(args))
	}

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(` AND event_date >= $%d`, len(args))
	}

	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(` AND event_date <= $%d`, len(args))
	}

	query += ` ORDER BY event_date DESC, id DESC`

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	return r.queryEvents(ctx, query, args...)
}

// ListChain returns all of an owner's events in id order, for replay.
func (r *EventRepository) ListChain(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	return r.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM ledger_events WHERE owner_id = $1 ORDER BY id ASC`,
		ownerID,
	)
}

// ListCorrections returns the correction events referencing an original.
func (r *EventRepository) ListCorrections(ctx context.Context, ownerID string, originalEventID int64) ([]*domain.Event, error) {
	return r.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM ledger_events
		 WHERE owner_id = $1 AND original_event_id = $2 ORDER BY id ASC`,
		ownerID, originalEventID,
	)
}

// SumQuantity sums signed quantities for an owner/type, optionally only
// through a calendar date.
func (r *EventRepository) SumQuantity(ctx context.Context, ownerID, typeID string, onOrBefore *time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM ledger_events WHERE owner_id = $1 AND ammunition_type_id = $2`
	args := []any{ownerID, typeID}

	if onOrBefore != nil {
		args = append(args, *onOrBefore)
		query += fmt.Sprintf(` AND event_date <= $%d`, len(args))
	}

	var sum int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return 0, translateError(err)
	}

	return sum, nil
}

// ListThrough returns an owner/type's events dated on or before through,
// ordered by event date then id, for balance-history derivation.
func (r *EventRepository) ListThrough(ctx context.Context, ownerID, typeID string, through time.Time) ([]*domain.Event, error) {
	return r.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM ledger_events
		 WHERE owner_id = $1 AND ammunition_type_id = $2 AND event_date <= $3
		 ORDER BY event_date ASC, id ASC`,
		ownerID, typeID, through,
	)
}

// CurrentBalances returns balance and last event date for every active
// type owned by ownerID.
func (r *EventRepository) CurrentBalances(ctx context.Context, ownerID string) ([]*domain.TypeBalance, error) {
	query := `
		SELECT t.id, t.owner_id, t.category, t.caliber, t.manufacturer, t.notes,
		       t.is_active, t.created_at, t.updated_at,
		       COALESCE(SUM(e.quantity), 0) AS balance,
		       MAX(e.event_date) AS last_event_date
		FROM ammunition_types t
		LEFT JOIN ledger_events e
		  ON e.ammunition_type_id = t.id AND e.owner_id = t.owner_id
		WHERE t.owner_id = $1 AND t.is_active
		GROUP BY t.id, t.owner_id, t.category, t.caliber, t.manufacturer, t.notes,
		         t.is_active, t.created_at, t.updated_at
		ORDER BY t.category, t.caliber
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var balances []*domain.TypeBalance
	for rows.Next() {
		var (
			t             domain.AmmunitionType
			balance       int64
			lastEventDate *time.Time
		)

		err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Category, &t.Caliber, &t.Manufacturer, &t.Notes,
			&t.Active, &t.CreatedAt, &t.UpdatedAt,
			&balance, &lastEventDate,
		)
		if err != nil {
			return nil, translateError(err)
		}

		balances = append(balances, &domain.TypeBalance{
			Type:          &t,
			Balance:       balance,
			LastEventDate: lastEventDate,
		})
	}

	return balances, translateError(rows.Err())
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, translateError(err)
		}

		events = append(events, event)
	}

	return events, translateError(rows.Err())
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		e    domain.Event
		kind string
	)

	err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.TypeID,
		&kind,
		&e.Quantity,
		&e.EventDate,
		&e.Details.Notes,
		&e.Details.Location,
		&e.Details.CounterpartyName,
		&e.Details.CounterpartyAddress,
		&e.Details.CounterpartyPermitNumber,
		&e.Details.DisposalMethod,
		&e.Details.CorrectionReason,
		&e.Details.OriginalEventID,
		&e.RecordHash,
		&e.PreviousHash,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Kind = domain.EventKind(kind)
	e.EventDate = domain.TruncateToDate(e.EventDate)

	return &e, nil
}
