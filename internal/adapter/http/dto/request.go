package dto

import (
	"fmt"
	"time"

	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/usecase"
)

// AppendEventRequest represents a request to append an inventory movement.
type AppendEventRequest struct {
	AmmunitionTypeID         string  `json:"ammunition_type_id"`
	EventType                string  `json:"event_type"`
	Quantity                 int64   `json:"quantity"`
	EventDate                string  `json:"event_date"` // YYYY-MM-DD
	Notes                    *string `json:"notes,omitempty"`
	Location                 *string `json:"location,omitempty"`
	CounterpartyName         *string `json:"counterparty_name,omitempty"`
	CounterpartyAddress      *string `json:"counterparty_address,omitempty"`
	CounterpartyPermitNumber *string `json:"counterparty_permit_number,omitempty"`
	DisposalMethod           *string `json:"disposal_method,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AppendEventRequest) ToUseCaseInput(ownerID string, audit usecase.AuditContext) (usecase.AppendEventInput, error) {
	eventDate, err := ParseDate(r.EventDate)
	if err != nil {
		return usecase.AppendEventInput{}, err
	}

	return usecase.AppendEventInput{
		OwnerID:   ownerID,
		TypeID:    r.AmmunitionTypeID,
		Kind:      domain.EventKind(r.EventType),
		Quantity:  r.Quantity,
		EventDate: eventDate,
		Details: domain.EventDetails{
			Notes:                    r.Notes,
			Location:                 r.Location,
			CounterpartyName:         r.CounterpartyName,
			CounterpartyAddress:      r.CounterpartyAddress,
			CounterpartyPermitNumber: r.CounterpartyPermitNumber,
			DisposalMethod:           r.DisposalMethod,
		},
		Audit: audit,
	}, nil
}

// CorrectEventRequest represents a request to correct an event.
type CorrectEventRequest struct {
	TargetQuantity int64  `json:"target_quantity"`
	Reason         string `json:"reason"`
}

// ToUseCaseInput converts to use case input.
func (r *CorrectEventRequest) ToUseCaseInput(ownerID string, originalEventID int64, audit usecase.AuditContext) usecase.CorrectEventInput {
	return usecase.CorrectEventInput{
		OwnerID:         ownerID,
		OriginalEventID: originalEventID,
		TargetQuantity:  r.TargetQuantity,
		Reason:          r.Reason,
		Audit:           audit,
	}
}

// CreateTypeRequest represents a request to create an ammunition type.
type CreateTypeRequest struct {
	Category     string  `json:"category"`
	Caliber      string  `json:"caliber"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTypeRequest) ToUseCaseInput(ownerID string) usecase.CreateTypeInput {
	return usecase.CreateTypeInput{
		OwnerID:      ownerID,
		Category:     r.Category,
		Caliber:      r.Caliber,
		Manufacturer: r.Manufacturer,
		Notes:        r.Notes,
	}
}

// UpdateTypeRequest represents a request to update an ammunition type.
// Absent fields are left unchanged.
type UpdateTypeRequest struct {
	Category     *string `json:"category,omitempty"`
	Caliber      *string `json:"caliber,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTypeRequest) ToUseCaseInput(ownerID, typeID string) usecase.UpdateTypeInput {
	return usecase.UpdateTypeInput{
		OwnerID:      ownerID,
		TypeID:       typeID,
		Category:     r.Category,
		Caliber:      r.Caliber,
		Manufacturer: r.Manufacturer,
		Notes:        r.Notes,
		Active:       r.Active,
	}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}

	return t, nil
}
