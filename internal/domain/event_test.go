package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func TestEventKindValid(t *testing.T) {
	for _, kind := range EventKinds {
		assert.True(t, kind.Valid(), "kind %s should be valid", kind)
	}

	assert.False(t, EventKind("purchase").Valid())
	assert.False(t, EventKind("").Valid())
}

func TestEventKindPolarity(t *testing.T) {
	tests := []struct {
		kind EventKind
		want int64
	}{
		{KindAcquisition, 1},
		{KindCustodyReturn, 1},
		{KindConsumption, -1},
		{KindTransfer, -1},
		{KindDisposal, -1},
		{KindCustodyOut, -1},
		{KindCorrection, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Polarity())
		})
	}
}

func TestIsCorrection(t *testing.T) {
	e := &Event{Kind: KindCorrection}
	assert.True(t, e.IsCorrection())

	e.Kind = KindAcquisition
	assert.False(t, e.IsCorrection())
}

func TestValidateForKind(t *testing.T) {
	tests := []struct {
		name    string
		details EventDetails
		kind    EventKind
		wantErr error
	}{
		{
			name:    "notes allowed everywhere",
			details: EventDetails{Notes: strPtr("range day")},
			kind:    KindDisposal,
		},
		{
			name:    "location on consumption",
			details: EventDetails{Location: strPtr("Range West")},
			kind:    KindConsumption,
		},
		{
			name:    "location on acquisition rejected",
			details: EventDetails{Location: strPtr("Range West")},
			kind:    KindAcquisition,
			wantErr: ErrDetailNotAllowed,
		},
		{
			name:    "counterparty on acquisition",
			details: EventDetails{CounterpartyName: strPtr("Gun Shop GmbH")},
			kind:    KindAcquisition,
		},
		{
			name:    "counterparty on transfer",
			details: EventDetails{CounterpartyAddress: strPtr("Hauptstr. 1")},
			kind:    KindTransfer,
		},
		{
			name:    "counterparty permit on consumption rejected",
			details: EventDetails{CounterpartyPermitNumber: strPtr("WBK-123")},
			kind:    KindConsumption,
			wantErr: ErrDetailNotAllowed,
		},
		{
			name:    "disposal method on disposal",
			details: EventDetails{DisposalMethod: strPtr("police handover")},
			kind:    KindDisposal,
		},
		{
			name:    "disposal method on transfer rejected",
			details: EventDetails{DisposalMethod: strPtr("police handover")},
			kind:    KindTransfer,
			wantErr: ErrDetailNotAllowed,
		},
		{
			name:    "correction fields on correction",
			details: EventDetails{CorrectionReason: strPtr("typo"), OriginalEventID: int64Ptr(7)},
			kind:    KindCorrection,
		},
		{
			name:    "correction reason on acquisition rejected",
			details: EventDetails{CorrectionReason: strPtr("typo")},
			kind:    KindAcquisition,
			wantErr: ErrDetailNotAllowed,
		},
		{
			name:    "original event id on custody_out rejected",
			details: EventDetails{OriginalEventID: int64Ptr(7)},
			kind:    KindCustodyOut,
			wantErr: ErrDetailNotAllowed,
		},
		{
			name:    "empty details valid for any kind",
			details: EventDetails{},
			kind:    KindCustodyReturn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.details.ValidateForKind(tt.kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTruncateToDate(t *testing.T) {
	in := time.Date(2025, 3, 14, 15, 9, 26, 535, time.FixedZone("CET", 3600))
	got := TruncateToDate(in)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}
