package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamori/ammoledger/internal/domain"
)

// TypeRepository implements usecase.TypeRepository.
type TypeRepository struct {
	pool *pgxpool.Pool
}

// NewTypeRepository creates a new TypeRepository.
func NewTypeRepository(pool *pgxpool.Pool) *TypeRepository {
	return &TypeRepository{pool: pool}
}

// Create creates a new ammunition type.
func (r *TypeRepository) Create(ctx context.Context, t *domain.AmmunitionType) error {
	query := `
		INSERT INTO ammunition_types (id, owner_id, category, caliber, manufacturer, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.OwnerID, t.Category, t.Caliber, t.Manufacturer, t.Notes, t.Active, t.CreatedAt, t.UpdatedAt,
	)

	return translateError(err)
}

// GetByID retrieves a type by ID. Foreign owners see not-found.
func (r *TypeRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.AmmunitionType, error) {
	var t domain.AmmunitionType

	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, category, caliber, manufacturer, notes, is_active, created_at, updated_at
		 FROM ammunition_types WHERE owner_id = $1 AND id = $2`,
		ownerID, id,
	).Scan(&t.ID, &t.OwnerID, &t.Category, &t.Caliber, &t.Manufacturer, &t.Notes, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTypeNotFound
		}

		return nil, translateError(err)
	}

	return &t, nil
}

// List retrieves an owner's types.
func (r *TypeRepository) List(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.AmmunitionType, error) {
	query := `SELECT id, owner_id, category, caliber, manufacturer, notes, is_active, created_at, updated_at
	          FROM ammunition_types WHERE owner_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY category, caliber`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var types []*domain.AmmunitionType
	for rows.Next() {
		var t domain.AmmunitionType
		err := rows.Scan(&t.ID, &t.OwnerID, &t.Category, &t.Caliber, &t.Manufacturer, &t.Notes, &t.Active, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, translateError(err)
		}

		types = append(types, &t)
	}

	return types, translateError(rows.Err())
}

// Update updates a type's catalog fields.
func (r *TypeRepository) Update(ctx context.Context, t *domain.AmmunitionType) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ammunition_types
		 SET category = $3, caliber = $4, manufacturer = $5, notes = $6, is_active = $7, updated_at = $8
		 WHERE owner_id = $1 AND id = $2`,
		t.OwnerID, t.ID, t.Category, t.Caliber, t.Manufacturer, t.Notes, t.Active, t.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTypeNotFound
	}

	return nil
}
