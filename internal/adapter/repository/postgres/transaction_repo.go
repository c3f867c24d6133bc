package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over the
// append-only transactions table.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a transaction to the log.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, wallet_id, type, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := pgxTxOf(tx).Exec(ctx, query,
		txn.ID,
		txn.WalletID,
		string(txn.Type),
		decimalToNumeric(txn.Amount),
		txn.Timestamp,
	)

	return err
}

// ListByWallet retrieves a wallet's transactions, newest first.
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, wallet_id, type, amount, created_at
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByWallets retrieves all transactions across a set of wallets,
// newest first.
func (r *TransactionRepository) ListByWallets(ctx context.Context, walletIDs []string) ([]*domain.Transaction, error) {
	query := `
		SELECT id, wallet_id, type, amount, created_at
		FROM transactions
		WHERE wallet_id = ANY($1)
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, walletIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByWalletUpTo retrieves all transactions of a wallet with a
// timestamp at or before the given instant.
func (r *TransactionRepository) ListByWalletUpTo(ctx context.Context, walletID string, at time.Time) ([]*domain.Transaction, error) {
	query := `
		SELECT id, wallet_id, type, amount, created_at
		FROM transactions
		WHERE wallet_id = $1 AND created_at <= $2
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, walletID, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction

	for rows.Next() {
		var (
			txn    domain.Transaction
			typ    string
			amount pgtype.Numeric
		)

		err := rows.Scan(
			&txn.ID,
			&txn.WalletID,
			&typ,
			&amount,
			&txn.Timestamp,
		)
		if err != nil {
			return nil, err
		}

		txn.Type = domain.TransactionType(typ)
		txn.Amount = numericToDecimal(amount)
		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
