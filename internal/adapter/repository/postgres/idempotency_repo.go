package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// IdempotencyRepository implements usecase.IdempotencyRepository over the
// idempotency_records table. The (key, operation) primary key is what
// resolves races between concurrent callers reusing the same key: the
// first committer wins and everyone else sees a unique violation.
type IdempotencyRepository struct {
	pool *pgxpool.Pool
}

// NewIdempotencyRepository creates a new IdempotencyRepository.
func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{pool: pool}
}

// Find retrieves a record by key and operation. Returns (nil, nil) when
// no record exists.
func (r *IdempotencyRepository) Find(ctx context.Context, key, operation string) (*domain.IdempotencyRecord, error) {
	query := `
		SELECT key, operation, resource_id, created_at
		FROM idempotency_records
		WHERE key = $1 AND operation = $2
	`

	var record domain.IdempotencyRecord
	err := r.pool.QueryRow(ctx, query, key, operation).Scan(
		&record.Key,
		&record.Operation,
		&record.ResourceID,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &record, nil
}

// Create inserts a record inside the caller's transaction. Returns
// domain.ErrIdempotencyConflict when the (key, operation) pair was
// already committed.
func (r *IdempotencyRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.IdempotencyRecord) error {
	query := `
		INSERT INTO idempotency_records (key, operation, resource_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := pgxTxOf(tx).Exec(ctx, query,
		record.Key,
		record.Operation,
		record.ResourceID,
		record.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrIdempotencyConflict
	}

	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
