package dto

import (
	"time"

	"github.com/yamori/ammoledger/internal/domain"
)

// EventResponse represents a ledger event in API responses.
type EventResponse struct {
	ID                       int64     `json:"id"`
	AmmunitionTypeID         string    `json:"ammunition_type_id"`
	EventType                string    `json:"event_type"`
	Quantity                 int64     `json:"quantity"` // signed contribution
	EventDate                string    `json:"event_date"`
	Notes                    *string   `json:"notes,omitempty"`
	Location                 *string   `json:"location,omitempty"`
	CounterpartyName         *string   `json:"counterparty_name,omitempty"`
	CounterpartyAddress      *string   `json:"counterparty_address,omitempty"`
	CounterpartyPermitNumber *string   `json:"counterparty_permit_number,omitempty"`
	DisposalMethod           *string   `json:"disposal_method,omitempty"`
	CorrectionReason         *string   `json:"correction_reason,omitempty"`
	OriginalEventID          *int64    `json:"original_event_id,omitempty"`
	RecordHash               string    `json:"record_hash"`
	PreviousHash             *string   `json:"previous_hash"`
	CreatedAt                time.Time `json:"created_at"`
}

// EventFromDomain converts a domain event to a response.
func EventFromDomain(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:                       e.ID,
		AmmunitionTypeID:         e.TypeID,
		EventType:                string(e.Kind),
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
		RecordHash:               e.RecordHash,
		PreviousHash:             e.PreviousHash,
		CreatedAt:                e.CreatedAt,
	}
}

// EventsFromDomain converts domain events to responses.
func EventsFromDomain(events []*domain.Event) []*EventResponse {
	result := make([]*EventResponse, len(events))
	for i, e := range events {
		result[i] = EventFromDomain(e)
	}
	return result
}

// EventWithCorrectionsResponse is a single event plus the corrections
// that reference it.
type EventWithCorrectionsResponse struct {
	Event       *EventResponse   `json:"event"`
	Corrections []*EventResponse `json:"corrections"`
}

// ListEventsResponse wraps an event listing.
type ListEventsResponse struct {
	Events []*EventResponse `json:"events"`
	Total  int64            `json:"total"`
}

// TypeResponse represents an ammunition type in API responses.
type TypeResponse struct {
	ID           string    `json:"id"`
	Category     string    `json:"category"`
	Caliber      string    `json:"caliber"`
	Manufacturer *string   `json:"manufacturer,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TypeFromDomain converts a domain type to a response.
func TypeFromDomain(t *domain.AmmunitionType) *TypeResponse {
	return &TypeResponse{
		ID:           t.ID,
		Category:     t.Category,
		Caliber:      t.Caliber,
		Manufacturer: t.Manufacturer,
		Notes:        t.Notes,
		Active:       t.Active,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// TypesFromDomain converts domain types to responses.
func TypesFromDomain(types []*domain.AmmunitionType) []*TypeResponse {
	result := make([]*TypeResponse, len(types))
	for i, t := range types {
		result[i] = TypeFromDomain(t)
	}
	return result
}

// BalanceResponse represents a single derived balance.
type BalanceResponse struct {
	AmmunitionTypeID string `json:"ammunition_type_id"`
	Balance          int64  `json:"balance"`
	AsOf             string `json:"as_of,omitempty"` // set for at-date queries
}

// TypeBalanceResponse pairs a type with its current balance.
type TypeBalanceResponse struct {
	Type          *TypeResponse `json:"type"`
	Balance       int64         `json:"balance"`
	LastEventDate *string       `json:"last_event_date,omitempty"`
}

// TypeBalancesFromDomain converts domain type balances to responses.
func TypeBalancesFromDomain(balances []*domain.TypeBalance) []*TypeBalanceResponse {
	result := make([]*TypeBalanceResponse, len(balances))
	for i, b := range balances {
		resp := &TypeBalanceResponse{
			Type:    TypeFromDomain(b.Type),
			Balance: b.Balance,
		}
		if b.LastEventDate != nil {
			d := b.LastEventDate.Format(domain.DateLayout)
			resp.LastEventDate = &d
		}
		result[i] = resp
	}
	return result
}

// DailyBalanceResponse is one day of a balance history.
type DailyBalanceResponse struct {
	Date    string `json:"date"`
	Balance int64  `json:"balance"`
}

// BalanceHistoryResponse wraps a daily balance history.
type BalanceHistoryResponse struct {
	AmmunitionTypeID string                  `json:"ammunition_type_id"`
	History          []*DailyBalanceResponse `json:"history"`
}

// DailyBalancesFromDomain converts a domain history to responses.
func DailyBalancesFromDomain(history []domain.DailyBalance) []*DailyBalanceResponse {
	result := make([]*DailyBalanceResponse, len(history))
	for i, d := range history {
		result[i] = &DailyBalanceResponse{
			Date:    d.Date.Format(domain.DateLayout),
			Balance: d.Balance,
		}
	}
	return result
}

// EventCheckResponse is the verification result for one event.
type EventCheckResponse struct {
	EventID    int64  `json:"event_id"`
	EventDate  string `json:"event_date"`
	EventType  string `json:"event_type"`
	HashValid  bool   `json:"hash_valid"`
	ChainValid bool   `json:"chain_valid"`
	Valid      bool   `json:"valid"`
}

// ChainReportResponse is the outcome of a full chain verification.
type ChainReportResponse struct {
	Valid     bool                  `json:"valid"`
	CheckedAt time.Time             `json:"checked_at"`
	Events    int                   `json:"events"`
	Results   []*EventCheckResponse `json:"results"`
}

// ChainReportFromDomain converts a domain chain report to a response.
func ChainReportFromDomain(report *domain.ChainReport) *ChainReportResponse {
	results := make([]*EventCheckResponse, len(report.Results))
	for i, c := range report.Results {
		results[i] = &EventCheckResponse{
			EventID:    c.EventID,
			EventDate:  c.EventDate.Format(domain.DateLayout),
			EventType:  string(c.Kind),
			HashValid:  c.HashValid,
			ChainValid: c.ChainValid,
			Valid:      c.Valid,
		}
	}

	return &ChainReportResponse{
		Valid:     report.Valid,
		CheckedAt: report.CheckedAt,
		Events:    len(report.Results),
		Results:   results,
	}
}

// AuditLogResponse represents an audit entry in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	IPAddress    string      `json:"ip_address,omitempty"`
	UserAgent    string      `json:"user_agent,omitempty"`
	RequestID    string      `json:"request_id,omitempty"`
	Payload      domain.JSON `json:"payload,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			IPAddress:    l.IPAddress,
			UserAgent:    l.UserAgent,
			RequestID:    l.RequestID,
			Payload:      l.Payload,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
