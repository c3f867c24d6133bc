package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// LedgerUseCase orchestrates all wallet mutations. Every mutating
// operation follows the same shape: idempotency lookup, locked read,
// pure domain transition, persistence of the new wallet state and its
// transaction log entries, idempotency record write - all inside one
// database transaction.
type LedgerUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	txnRepo    TransactionRepository
	idemRepo   IdempotencyRepository
	userRepo   UserRepository
	idGen      IDGenerator
	retrier    Retrier
	cache      Cache
	cacheTTL   time.Duration
	metrics    MetricsRecorder
}

// LedgerConfig holds dependencies for the LedgerUseCase. Retrier,
// Cache and Metrics are optional.
type LedgerConfig struct {
	TxManager       TransactionManager
	WalletRepo      WalletRepository
	TransactionRepo TransactionRepository
	IdempotencyRepo IdempotencyRepository
	UserRepo        UserRepository
	IDGen           IDGenerator
	Retrier         Retrier
	Cache           Cache
	CacheTTL        time.Duration
	Metrics         MetricsRecorder
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(cfg LedgerConfig) *LedgerUseCase {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultWalletCacheTTL
	}

	return &LedgerUseCase{
		txManager:  cfg.TxManager,
		walletRepo: cfg.WalletRepo,
		txnRepo:    cfg.TransactionRepo,
		idemRepo:   cfg.IdempotencyRepo,
		userRepo:   cfg.UserRepo,
		idGen:      cfg.IDGen,
		retrier:    cfg.Retrier,
		cache:      cfg.Cache,
		cacheTTL:   ttl,
		metrics:    cfg.Metrics,
	}
}

// CreateWalletInput represents input for creating a wallet.
type CreateWalletInput struct {
	UserID         string
	IdempotencyKey string
}

// CreateWallet creates a new zero-balance wallet for a user.
func (uc *LedgerUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	if replayed, ok, err := uc.findReplay(ctx, input.IdempotencyKey, OpCreateWallet); ok || err != nil {
		return replayed, err
	}

	if input.UserID == "" {
		return nil, domain.ErrMissingUserID
	}

	if _, err := uc.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	wallet, err := domain.NewWallet(uc.idGen.Generate(), input.UserID)
	if err != nil {
		return nil, err
	}

	err = uc.inTx(ctx, func(tx Transaction) error {
		if err := uc.walletRepo.Create(ctx, tx, &wallet); err != nil {
			return err
		}

		return uc.recordKey(ctx, tx, input.IdempotencyKey, OpCreateWallet, wallet.ID)
	})
	if err != nil {
		return uc.resolveConflict(ctx, err, input.IdempotencyKey, OpCreateWallet)
	}

	uc.operationDone(OpCreateWallet)

	return &wallet, nil
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	WalletID       string
	Amount         decimal.Decimal
	IdempotencyKey string
}

// Deposit adds funds to a wallet and appends a deposit transaction.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Wallet, error) {
	if replayed, ok, err := uc.findReplay(ctx, input.IdempotencyKey, OpDeposit); ok || err != nil {
		return replayed, err
	}

	var updated domain.Wallet

	err := uc.withRetry(ctx, func() error {
		return uc.inTx(ctx, func(tx Transaction) error {
			current, err := uc.walletRepo.GetByIDForUpdate(ctx, tx, input.WalletID)
			if err != nil {
				return err
			}

			next, err := current.Deposit(input.Amount)
			if err != nil {
				return err
			}

			now := time.Now().UTC()

			txn, err := domain.NewDeposit(uc.idGen.Generate(), next.ID, input.Amount, now)
			if err != nil {
				return err
			}

			if err := uc.walletRepo.UpdateBalance(ctx, tx, next.ID, next.Balance, now); err != nil {
				return err
			}

			if err := uc.txnRepo.Create(ctx, tx, &txn); err != nil {
				return err
			}

			if err := uc.recordKey(ctx, tx, input.IdempotencyKey, OpDeposit, next.ID); err != nil {
				return err
			}

			updated = next

			return nil
		})
	})
	if err != nil {
		return uc.resolveConflict(ctx, err, input.IdempotencyKey, OpDeposit)
	}

	uc.invalidate(ctx, updated.ID)
	uc.operationDone(OpDeposit)

	return &updated, nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	WalletID       string
	Amount         decimal.Decimal
	IdempotencyKey string
}

// Withdraw removes funds from a wallet and appends a withdrawal
// transaction. Fails when the amount exceeds the balance.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Wallet, error) {
	if replayed, ok, err := uc.findReplay(ctx, input.IdempotencyKey, OpWithdraw); ok || err != nil {
		return replayed, err
	}

	var updated domain.Wallet

	err := uc.withRetry(ctx, func() error {
		return uc.inTx(ctx, func(tx Transaction) error {
			current, err := uc.walletRepo.GetByIDForUpdate(ctx, tx, input.WalletID)
			if err != nil {
				return err
			}

			next, err := current.Withdraw(input.Amount)
			if err != nil {
				return err
			}

			now := time.Now().UTC()

			txn, err := domain.NewWithdrawal(uc.idGen.Generate(), next.ID, input.Amount, now)
			if err != nil {
				return err
			}

			if err := uc.walletRepo.UpdateBalance(ctx, tx, next.ID, next.Balance, now); err != nil {
				return err
			}

			if err := uc.txnRepo.Create(ctx, tx, &txn); err != nil {
				return err
			}

			if err := uc.recordKey(ctx, tx, input.IdempotencyKey, OpWithdraw, next.ID); err != nil {
				return err
			}

			updated = next

			return nil
		})
	})
	if err != nil {
		return uc.resolveConflict(ctx, err, input.IdempotencyKey, OpWithdraw)
	}

	uc.invalidate(ctx, updated.ID)
	uc.operationDone(OpWithdraw)

	return &updated, nil
}

// TransferInput represents input for a transfer between two wallets.
type TransferInput struct {
	SourceWalletID string
	TargetWalletID string
	Amount         decimal.Decimal
	IdempotencyKey string
}

// Transfer moves funds between two wallets atomically, appending a
// debit transaction on the source and a credit transaction on the
// destination. Returns the updated source wallet.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Wallet, error) {
	// Self-transfer is a validation error, rejected before any lock
	// is taken.
	if input.SourceWalletID == input.TargetWalletID {
		return nil, domain.ErrSameWallet
	}

	if replayed, ok, err := uc.findReplay(ctx, input.IdempotencyKey, OpTransfer); ok || err != nil {
		return replayed, err
	}

	// Lock acquisition order is by wallet id, independent of argument
	// order, so two opposing transfers cannot deadlock.
	ids := []string{input.SourceWalletID, input.TargetWalletID}
	sort.Strings(ids)

	var updatedSource domain.Wallet

	err := uc.withRetry(ctx, func() error {
		return uc.inTx(ctx, func(tx Transaction) error {
			wallets, err := uc.walletRepo.GetByIDsForUpdate(ctx, tx, ids)
			if err != nil {
				return err
			}

			if len(wallets) != len(ids) {
				return domain.ErrWalletNotFound
			}

			byID := make(map[string]*domain.Wallet, len(wallets))
			for _, w := range wallets {
				byID[w.ID] = w
			}

			source := byID[input.SourceWalletID]
			target := byID[input.TargetWalletID]

			if source == nil || target == nil {
				return domain.ErrWalletNotFound
			}

			result, err := source.TransferTo(*target, input.Amount)
			if err != nil {
				return err
			}

			now := time.Now().UTC()

			if err := uc.walletRepo.UpdateBalance(ctx, tx, result.Source.ID, result.Source.Balance, now); err != nil {
				return err
			}

			if err := uc.walletRepo.UpdateBalance(ctx, tx, result.Destination.ID, result.Destination.Balance, now); err != nil {
				return err
			}

			outTxn, err := domain.NewTransferOut(uc.idGen.Generate(), result.Source.ID, input.Amount, now)
			if err != nil {
				return err
			}

			inTxn, err := domain.NewTransferIn(uc.idGen.Generate(), result.Destination.ID, input.Amount, now)
			if err != nil {
				return err
			}

			if err := uc.txnRepo.Create(ctx, tx, &outTxn); err != nil {
				return err
			}

			if err := uc.txnRepo.Create(ctx, tx, &inTxn); err != nil {
				return err
			}

			if err := uc.recordKey(ctx, tx, input.IdempotencyKey, OpTransfer, result.Source.ID); err != nil {
				return err
			}

			updatedSource = result.Source

			return nil
		})
	})
	if err != nil {
		return uc.resolveConflict(ctx, err, input.IdempotencyKey, OpTransfer)
	}

	uc.invalidate(ctx, input.SourceWalletID, input.TargetWalletID)
	uc.operationDone(OpTransfer)

	return &updatedSource, nil
}

// GetWallet retrieves a wallet by id through the read cache.
func (uc *LedgerUseCase) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, walletCacheKey(id)); err == nil && raw != "" {
			var w domain.Wallet
			if err := json.Unmarshal([]byte(raw), &w); err == nil {
				return &w, nil
			}
		}
	}

	wallet, err := uc.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(wallet); err == nil {
			_ = uc.cache.Set(ctx, walletCacheKey(id), string(raw), uc.cacheTTL)
		}
	}

	return wallet, nil
}

// GetCurrentBalance returns the stored balance of a wallet. This is a
// non-locking read and may trail concurrent writers.
func (uc *LedgerUseCase) GetCurrentBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	wallet, err := uc.GetWallet(ctx, walletID)
	if err != nil {
		return decimal.Zero, err
	}

	return wallet.Balance, nil
}

// GetHistoricalBalance reconstructs a wallet's balance at an instant by
// folding the signed amounts of all transactions up to that instant,
// independent of the live balance column.
func (uc *LedgerUseCase) GetHistoricalBalance(ctx context.Context, walletID string, at time.Time) (decimal.Decimal, error) {
	if _, err := uc.walletRepo.GetByID(ctx, walletID); err != nil {
		return decimal.Zero, err
	}

	txns, err := uc.txnRepo.ListByWalletUpTo(ctx, walletID, at)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, txn := range txns {
		balance = balance.Add(txn.Amount)
	}

	return balance, nil
}

// ListTransactionsInput represents input for listing wallet transactions.
type ListTransactionsInput struct {
	WalletID string
	Limit    int
	Offset   int
}

// ListTransactions lists a wallet's transactions, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	if _, err := uc.walletRepo.GetByID(ctx, input.WalletID); err != nil {
		return nil, err
	}

	return uc.txnRepo.ListByWallet(ctx, input.WalletID, input.Limit, input.Offset)
}

// ListUserWallets lists all wallets owned by a user.
func (uc *LedgerUseCase) ListUserWallets(ctx context.Context, userID string) ([]*domain.Wallet, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return uc.walletRepo.ListByUser(ctx, userID)
}

// ListUserTransactions lists transactions across all of a user's wallets.
func (uc *LedgerUseCase) ListUserTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	wallets, err := uc.ListUserWallets(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(wallets) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(wallets))
	for _, w := range wallets {
		ids = append(ids, w.ID)
	}

	return uc.txnRepo.ListByWallets(ctx, ids)
}

// inTx runs fn inside a single database transaction.
func (uc *LedgerUseCase) inTx(ctx context.Context, fn func(tx Transaction) error) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (uc *LedgerUseCase) withRetry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	return uc.retrier.Retry(ctx, op)
}

// findReplay looks up a previously recorded execution. The contract is
// "same resource": a replay re-fetches the resource's current state,
// which may reflect later operations.
func (uc *LedgerUseCase) findReplay(ctx context.Context, key, operation string) (*domain.Wallet, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	record, err := uc.idemRepo.Find(ctx, key, operation)
	if err != nil {
		return nil, false, err
	}

	if record == nil {
		return nil, false, nil
	}

	wallet, err := uc.GetWallet(ctx, record.ResourceID)
	if err != nil {
		return nil, true, err
	}

	if uc.metrics != nil {
		uc.metrics.IdempotentReplay(operation)
	}

	return wallet, true, nil
}

func (uc *LedgerUseCase) recordKey(ctx context.Context, tx Transaction, key, operation, resourceID string) error {
	if key == "" {
		return nil
	}

	return uc.idemRepo.Create(ctx, tx, &domain.IdempotencyRecord{
		Key:        key,
		Operation:  operation,
		ResourceID: resourceID,
		CreatedAt:  time.Now().UTC(),
	})
}

// resolveConflict handles the race where two concurrent calls carry the
// same idempotency key: the first committer wins and the loser replays
// the winner's result instead of erroring the caller.
func (uc *LedgerUseCase) resolveConflict(ctx context.Context, cause error, key, operation string) (*domain.Wallet, error) {
	if !errors.Is(cause, domain.ErrIdempotencyConflict) {
		return nil, cause
	}

	if uc.metrics != nil {
		uc.metrics.IdempotencyConflict(operation)
	}

	record, err := uc.idemRepo.Find(ctx, key, operation)
	if err != nil {
		return nil, err
	}

	if record == nil {
		return nil, cause
	}

	return uc.GetWallet(ctx, record.ResourceID)
}

func (uc *LedgerUseCase) invalidate(ctx context.Context, walletIDs ...string) {
	if uc.cache == nil {
		return
	}

	for _, id := range walletIDs {
		_ = uc.cache.Delete(ctx, walletCacheKey(id))
	}
}

func (uc *LedgerUseCase) operationDone(operation string) {
	if uc.metrics != nil {
		uc.metrics.OperationCompleted(operation)
	}
}

func walletCacheKey(id string) string {
	return "wallet:" + id
}
