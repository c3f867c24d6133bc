package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	Create(ctx context.Context, tx Transaction, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Wallet, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Wallet, error)
}

// TransactionRepository defines data access for the transaction log.
// Entries are append-only; there are no update or delete operations.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error)
	ListByWallets(ctx context.Context, walletIDs []string) ([]*domain.Transaction, error)
	ListByWalletUpTo(ctx context.Context, walletID string, at time.Time) ([]*domain.Transaction, error)
}

// IdempotencyRepository defines data access for idempotency records.
// Find returns (nil, nil) when no record exists. Create returns
// domain.ErrIdempotencyConflict when the (key, operation) pair was
// already committed by a concurrent caller.
type IdempotencyRepository interface {
	Find(ctx context.Context, key, operation string) (*domain.IdempotencyRecord, error)
	Create(ctx context.Context, tx Transaction, record *domain.IdempotencyRecord) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier reruns an operation after transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations for the non-locking read path.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MetricsRecorder records ledger operation outcomes.
type MetricsRecorder interface {
	OperationCompleted(operation string)
	IdempotentReplay(operation string)
	IdempotencyConflict(operation string)
}
