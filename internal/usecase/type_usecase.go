package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yamori/ammoledger/internal/domain"
)

var (
	// ErrCategoryRequired is returned when a type is created without a category.
	ErrCategoryRequired = errors.New("category is required")
	// ErrCaliberRequired is returned when a type is created without a caliber.
	ErrCaliberRequired = errors.New("caliber is required")
)

// TypeUseCase handles the ammunition-type catalog.
type TypeUseCase struct {
	types TypeRepository
	idGen IDGenerator
}

// NewTypeUseCase creates a new TypeUseCase.
func NewTypeUseCase(types TypeRepository, idGen IDGenerator) *TypeUseCase {
	return &TypeUseCase{
		types: types,
		idGen: idGen,
	}
}

// CreateTypeInput represents input for creating an ammunition type.
type CreateTypeInput struct {
	OwnerID      string
	Category     string
	Caliber      string
	Manufacturer *string
	Notes        *string
}

// CreateType registers a new ammunition type for an owner.
func (uc *TypeUseCase) CreateType(ctx context.Context, input CreateTypeInput) (*domain.AmmunitionType, error) {
	if strings.TrimSpace(input.Category) == "" {
		return nil, ErrCategoryRequired
	}

	if strings.TrimSpace(input.Caliber) == "" {
		return nil, ErrCaliberRequired
	}

	now := time.Now().UTC()
	ammoType := &domain.AmmunitionType{
		ID:           uc.idGen.Generate(),
		OwnerID:      input.OwnerID,
		Category:     strings.TrimSpace(input.Category),
		Caliber:      strings.TrimSpace(input.Caliber),
		Manufacturer: input.Manufacturer,
		Notes:        input.Notes,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.types.Create(ctx, ammoType); err != nil {
		return nil, err
	}

	return ammoType, nil
}

// GetType retrieves a type by ID, active or not.
func (uc *TypeUseCase) GetType(ctx context.Context, ownerID, id string) (*domain.AmmunitionType, error) {
	return uc.types.GetByID(ctx, ownerID, id)
}

// ListTypes lists an owner's types, optionally only active ones.
func (uc *TypeUseCase) ListTypes(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.AmmunitionType, error) {
	return uc.types.List(ctx, ownerID, activeOnly)
}

// UpdateTypeInput represents input for updating an ammunition type.
// Nil fields are left unchanged.
type UpdateTypeInput struct {
	OwnerID      string
	TypeID       string
	Category     *string
	Caliber      *string
	Manufacturer *string
	Notes        *string
	Active       *bool
}

// UpdateType updates catalog fields, including deactivation. Deactivating
// a type only blocks new appends; its historical events stay readable.
func (uc *TypeUseCase) UpdateType(ctx context.Context, input UpdateTypeInput) (*domain.AmmunitionType, error) {
	ammoType, err := uc.types.GetByID(ctx, input.OwnerID, input.TypeID)
	if err != nil {
		return nil, err
	}

	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return nil, ErrCategoryRequired
		}
		ammoType.Category = strings.TrimSpace(*input.Category)
	}

	if input.Caliber != nil {
		if strings.TrimSpace(*input.Caliber) == "" {
			return nil, ErrCaliberRequired
		}
		ammoType.Caliber = strings.TrimSpace(*input.Caliber)
	}

	if input.Manufacturer != nil {
		ammoType.Manufacturer = input.Manufacturer
	}

	if input.Notes != nil {
		ammoType.Notes = input.Notes
	}

	if input.Active != nil {
		ammoType.Active = *input.Active
	}

	ammoType.UpdatedAt = time.Now().UTC()

	if err := uc.types.Update(ctx, ammoType); err != nil {
		return nil, err
	}

	return ammoType, nil
}
