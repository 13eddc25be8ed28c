package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records who did what to which resource. Ledger events carry
// their own tamper evidence; the audit log adds request-level context
// (address, agent, request ID) for compliance review.
type AuditLog struct {
	ID           string
	OwnerID      string
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
	RequestID    string
	Payload      JSON
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data.
type JSON map[string]any

// Audit actions
const (
	AuditActionEventAppend   = "event.append"
	AuditActionEventCorrect  = "event.correct"
	AuditActionTypeCreate    = "type.create"
	AuditActionTypeUpdate    = "type.update"
	AuditActionChainVerified = "chain.verify"
)

// Resource types
const (
	ResourceTypeEvent          = "ledger_event"
	ResourceTypeAmmunitionType = "ammunition_type"
)

// MarshalState converts a domain object to JSON for audit logging.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs.
type AuditFilter struct {
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
