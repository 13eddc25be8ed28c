package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/hashchain"
)

// seedChain stores a correctly linked chain of events for owner-1 and
// returns them. Tests then break individual links to provoke findings.
func (f *fixture) seedChain(t *testing.T, quantities ...int64) []*domain.Event {
	t.Helper()

	var previous *string
	events := make([]*domain.Event, 0, len(quantities))
	for i, quantity := range quantities {
		e := &domain.Event{
			OwnerID:      "owner-1",
			TypeID:       "type-1",
			Kind:         domain.KindAcquisition,
			Quantity:     quantity,
			EventDate:    date(2025, 3, 1+i),
			PreviousHash: previous,
		}
		e.RecordHash = hashchain.Sum(hashchain.FromEvent(e))

		f.events.Seed(e)

		hash := e.RecordHash
		previous = &hash
		events = append(events, e)
	}

	return events
}

func TestVerifyChainEmpty(t *testing.T) {
	f := newFixture()

	report, err := f.integrity.VerifyChain(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Results)
	assert.Equal(t, "owner-1", report.OwnerID)
}

func TestVerifyChainValid(t *testing.T) {
	f := newFixture()
	f.seedChain(t, 100, -30, 20)

	report, err := f.integrity.VerifyChain(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	require.Len(t, report.Results, 3)
	for _, result := range report.Results {
		assert.True(t, result.HashValid)
		assert.True(t, result.ChainValid)
		assert.True(t, result.Valid)
	}
}

func TestVerifyChainTamperedQuantity(t *testing.T) {
	f := newFixture()
	events := f.seedChain(t, 100, -30, 20)

	// Tamper with the middle event after hashing. The event's own hash
	// no longer matches, but its stored hash still links cleanly, so only
	// the event itself fails hash validation.
	events[1].Quantity = -10

	report, err := f.integrity.VerifyChain(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.Len(t, report.Results, 3)

	assert.True(t, report.Results[0].Valid)

	assert.False(t, report.Results[1].HashValid)
	assert.True(t, report.Results[1].ChainValid)
	assert.False(t, report.Results[1].Valid)

	assert.True(t, report.Results[2].HashValid)
	assert.True(t, report.Results[2].ChainValid)
	assert.True(t, report.Results[2].Valid)
}

func TestVerifyChainRewrittenHashBreaksNextLink(t *testing.T) {
	f := newFixture()
	events := f.seedChain(t, 100, -30, 20)

	// Rewriting a stored hash invalidates that event and orphans the
	// following link, but validity does not cascade past it.
	events[1].RecordHash = "deadbeef"

	report, err := f.integrity.VerifyChain(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.False(t, report.Valid)

	assert.True(t, report.Results[0].Valid)

	assert.False(t, report.Results[1].HashValid)
	assert.True(t, report.Results[1].ChainValid)

	assert.True(t, report.Results[2].HashValid)
	assert.False(t, report.Results[2].ChainValid)
	assert.False(t, report.Results[2].Valid)
}

func TestVerifyChainFirstEventMustHaveNoPrevious(t *testing.T) {
	f := newFixture()

	bogus := "a-hash-that-should-not-be-there"
	e := &domain.Event{
		OwnerID:      "owner-1",
		TypeID:       "type-1",
		Kind:         domain.KindAcquisition,
		Quantity:     100,
		EventDate:    date(2025, 3, 1),
		PreviousHash: &bogus,
	}
	e.RecordHash = hashchain.Sum(hashchain.FromEvent(e))
	f.events.Seed(e)

	report, err := f.integrity.VerifyChain(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].HashValid)
	assert.False(t, report.Results[0].ChainValid)
}

func TestVerifyChainScopedToOwner(t *testing.T) {
	f := newFixture()
	f.seedChain(t, 100)

	// Another owner's chain starts fresh; owner-1's events must not leak
	// into its verification.
	other := &domain.Event{
		OwnerID:   "owner-2",
		TypeID:    "type-9",
		Kind:      domain.KindAcquisition,
		Quantity:  10,
		EventDate: date(2025, 3, 1),
	}
	other.RecordHash = hashchain.Sum(hashchain.FromEvent(other))
	f.events.Seed(other)

	report, err := f.integrity.VerifyChain(context.Background(), "owner-2")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	require.Len(t, report.Results, 1)
}
