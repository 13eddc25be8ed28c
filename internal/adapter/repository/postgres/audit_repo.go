package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamori/ammoledger/internal/domain"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts a new audit log entry.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	var payloadJSON []byte
	if log.Payload != nil {
		var err error
		payloadJSON, err = json.Marshal(log.Payload)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_logs (
			id, owner_id, action, resource_type, resource_id,
			ip_address, user_agent, request_id, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		log.ID,
		log.OwnerID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.IPAddress,
		log.UserAgent,
		log.RequestID,
		payloadJSON,
		log.CreatedAt,
	)

	return translateError(err)
}

// List retrieves an owner's audit logs with filtering, newest first.
func (r *AuditRepository) List(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, owner_id, action, resource_type, resource_id,
		       ip_address, user_agent, request_id, payload, created_at
		FROM audit_logs
		WHERE owner_id = $1
	`
	args := []any{ownerID}

	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(` AND action = $%d`, len(args))
	}

	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		query += fmt.Sprintf(` AND resource_type = $%d`, len(args))
	}

	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		query += fmt.Sprintf(` AND resource_id = $%d`, len(args))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			log         domain.AuditLog
			payloadJSON []byte
		)

		err := rows.Scan(
			&log.ID,
			&log.OwnerID,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&log.IPAddress,
			&log.UserAgent,
			&log.RequestID,
			&payloadJSON,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, translateError(err)
		}

		if payloadJSON != nil {
			_ = json.Unmarshal(payloadJSON, &log.Payload)
		}

		logs = append(logs, &log)
	}

	return logs, translateError(rows.Err())
}
