package domain

import "time"

// DateLayout is the calendar-date format used everywhere an event date
// crosses a boundary (API, canonical hash payload, database).
const DateLayout = "2006-01-02"

// EventKind identifies the type of inventory movement.
type EventKind string

const (
	KindAcquisition   EventKind = "acquisition"
	KindConsumption   EventKind = "consumption"
	KindTransfer      EventKind = "transfer"
	KindDisposal      EventKind = "disposal"
	KindCustodyOut    EventKind = "custody_out"
	KindCustodyReturn EventKind = "custody_return"
	KindCorrection    EventKind = "correction"
)

// EventKinds lists every valid kind.
var EventKinds = []EventKind{
	KindAcquisition,
	KindConsumption,
	KindTransfer,
	KindDisposal,
	KindCustodyOut,
	KindCustodyReturn,
	KindCorrection,
}

// Valid reports whether k is a known event kind.
func (k EventKind) Valid() bool {
	switch k {
	case KindAcquisition, KindConsumption, KindTransfer, KindDisposal,
		KindCustodyOut, KindCustodyReturn, KindCorrection:
		return true
	}
	return false
}

// Polarity returns the sign applied to a quantity magnitude for this kind:
// +1 for movements that increase stock, -1 for movements that decrease it,
// 0 for corrections, whose signed delta is stored as-is.
func (k EventKind) Polarity() int64 {
	switch k {
	case KindAcquisition, KindCustodyReturn:
		return 1
	case KindConsumption, KindTransfer, KindDisposal, KindCustodyOut:
		return -1
	default:
		return 0
	}
}

// Event is a single immutable ledger record. Once persisted it is never
// updated or deleted; amendments happen through correction events that
// reference the original.
type Event struct {
	ID           int64
	OwnerID      string
	TypeID       string
	Kind         EventKind
	Quantity     int64     // signed; polarity encodes direction
	EventDate    time.Time // calendar date, midnight UTC
	Details      EventDetails
	RecordHash   string
	PreviousHash *string // nil for the owner's first event
	CreatedAt    time.Time
}

// IsCorrection reports whether this event amends another one.
func (e *Event) IsCorrection() bool {
	return e.Kind == KindCorrection
}

// EventDetails carries the kind-specific optional fields. A nil pointer
// means the field is absent; ValidateForKind rejects fields that are not
// legal for the event's kind.
type EventDetails struct {
	Notes                    *string
	Location                 *string // consumption
	CounterpartyName         *string // acquisition, transfer
	CounterpartyAddress      *string // acquisition, transfer
	CounterpartyPermitNumber *string // acquisition, transfer
	DisposalMethod           *string // disposal
	CorrectionReason         *string // correction
	OriginalEventID          *int64  // correction
}

// ValidateForKind checks that only fields legal for kind are set.
// Notes are allowed on every kind.
func (d EventDetails) ValidateForKind(kind EventKind) error {
	if d.Location != nil && kind != KindConsumption {
		return ErrDetailNotAllowed
	}

	counterparty := d.CounterpartyName != nil || d.CounterpartyAddress != nil || d.CounterpartyPermitNumber != nil
	if counterparty && kind != KindAcquisition && kind != KindTransfer {
		return ErrDetailNotAllowed
	}

	if d.DisposalMethod != nil && kind != KindDisposal {
		return ErrDetailNotAllowed
	}

	if (d.CorrectionReason != nil || d.OriginalEventID != nil) && kind != KindCorrection {
		return ErrDetailNotAllowed
	}

	return nil
}

// EventFilter narrows event listings.
type EventFilter struct {
	TypeID   string
	Kind     EventKind
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// TruncateToDate normalizes t to midnight UTC, keeping only the calendar date.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
