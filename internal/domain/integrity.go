package domain

import "time"

// EventCheck is the verification result for one ledger event.
type EventCheck struct {
	EventID    int64
	EventDate  time.Time
	Kind       EventKind
	HashValid  bool // stored hash matches recomputation from stored fields
	ChainValid bool // previous_hash links to the prior event's stored hash
	Valid      bool // HashValid && ChainValid
}

// ChainReport is the outcome of replaying an owner's full chain.
// Integrity violations are reported here, never raised as errors.
type ChainReport struct {
	OwnerID   string
	Valid     bool
	CheckedAt time.Time
	Results   []EventCheck
}
