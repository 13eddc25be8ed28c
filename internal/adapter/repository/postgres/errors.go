package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yamori/ammoledger/internal/domain"
)

// PostgreSQL error codes this package cares about.
const (
	pgErrLockNotAvailable = "55P03" // lock_timeout expired
	pgErrRaiseException   = "P0001" // RAISE EXCEPTION from the immutability trigger
)

// translateError maps low-level postgres errors onto domain sentinels.
// Anything unrecognized passes through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEventNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrLockNotAvailable:
			return domain.ErrAppendContention
		case pgErrRaiseException:
			if strings.Contains(pgErr.Message, "immutable") {
				return domain.ErrImmutableRecord
			}
		}
	}

	return err
}
