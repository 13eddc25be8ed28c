package domain

import "time"

// AmmunitionType is a catalog entry describing one kind of regulated
// inventory (e.g. shotgun shells of a given gauge). Ledger events reference
// a type by ID; only active types accept new events, but inactive types
// stay readable for historical records.
type AmmunitionType struct {
	ID           string
	OwnerID      string
	Category     string
	Caliber      string
	Manufacturer *string
	Notes        *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName renders the type for listings.
func (t *AmmunitionType) DisplayName() string {
	return t.Category + " / " + t.Caliber
}

// TypeBalance pairs a type with its derived current balance.
type TypeBalance struct {
	Type          *AmmunitionType
	Balance       int64
	LastEventDate *time.Time
}

// DailyBalance is one day of a balance history.
type DailyBalance struct {
	Date    time.Time
	Balance int64
}
