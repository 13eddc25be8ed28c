// Package hashchain computes the tamper-evidence digest for ledger events.
//
// Canonical encoding contract (version 1): the digest input is a compact
// JSON object with exactly the keys below, in exactly this order, encoded
// as UTF-8 with HTML escaping disabled so non-ASCII text is preserved
// byte-for-byte. Absent optional fields are encoded as an explicit null,
// never omitted. Dates use YYYY-MM-DD. Quantities and event IDs are plain
// JSON integers. The digest is SHA-256, rendered as 64 lowercase hex
// characters. Changing any part of this encoding invalidates every
// previously stored hash, so it must never change silently.
package hashchain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/yamori/ammoledger/internal/domain"
)

// Payload is the exact field set bound by an event's record hash.
// Field order here is the canonical key order.
type Payload struct {
	OwnerID                  string  `json:"owner_id"`
	TypeID                   string  `json:"ammunition_type_id"`
	Kind                     string  `json:"event_type"`
	Quantity                 int64   `json:"quantity"`
	EventDate                string  `json:"event_date"`
	Notes                    *string `json:"notes"`
	Location                 *string `json:"location"`
	CounterpartyName         *string `json:"counterparty_name"`
	CounterpartyAddress      *string `json:"counterparty_address"`
	CounterpartyPermitNumber *string `json:"counterparty_permit_number"`
	DisposalMethod           *string `json:"disposal_method"`
	CorrectionReason         *string `json:"correction_reason"`
	OriginalEventID          *int64  `json:"original_event_id"`
	PreviousHash             *string `json:"previous_hash"`
}

// FromEvent builds the canonical payload from an event's stored fields,
// including its stored previous hash. The event ID is deliberately not
// part of the payload: the hash is computed before the store assigns one.
func FromEvent(e *domain.Event) Payload {
	return Payload{
		OwnerID:                  e.OwnerID,
		TypeID:                   e.TypeID,
		Kind:                     string(e.Kind),
		Quantity:                 e.Quantity,
		EventDate:                e.EventDate.Format(domain.DateLayout),
		Notes:                    e.Details.Notes,
		Location:                 e.Details.Location,
		CounterpartyName:         e.Details.CounterpartyName,
		CounterpartyAddress:      e.Details.CounterpartyAddress,
		CounterpartyPermitNumber: e.Details.CounterpartyPermitNumber,
		DisposalMethod:           e.Details.DisposalMethod,
		CorrectionReason:         e.Details.CorrectionReason,
		OriginalEventID:          e.Details.OriginalEventID,
		PreviousHash:             e.PreviousHash,
	}
}

// Sum computes the record hash for a payload. It is pure: identical
// payloads always produce identical output, and no I/O is performed.
func Sum(p Payload) string {
	digest := sha256.Sum256(canonicalBytes(p))
	return hex.EncodeToString(digest[:])
}

// Verify recomputes an event's hash from its stored fields and compares
// it with the stored record hash.
func Verify(e *domain.Event) bool {
	return Sum(FromEvent(e)) == e.RecordHash
}

func canonicalBytes(p Payload) []byte {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// Encoding a flat struct of strings, integers and pointers cannot fail.
	if err := enc.Encode(p); err != nil {
		panic("hashchain: canonical encoding failed: " + err.Error())
	}

	// json.Encoder appends a newline; it is not part of the canonical form.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
