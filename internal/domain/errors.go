package domain

import "errors"

var (
	// Not found errors
	ErrWalletNotFound = errors.New("wallet not found")
	ErrUserNotFound   = errors.New("user not found")

	// Validation errors
	ErrMissingWalletID = errors.New("wallet id must not be empty")
	ErrMissingUserID   = errors.New("user id must not be empty")
	ErrBlankUserName   = errors.New("name must not be blank")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrSameWallet      = errors.New("cannot transfer to the same wallet")
	ErrZeroAmount      = errors.New("transaction amount must not be zero")
	ErrFutureTimestamp = errors.New("timestamp cannot be in the future")
	ErrInvalidType     = errors.New("invalid transaction type")

	// Funds errors
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Idempotency errors
	ErrIdempotencyConflict = errors.New("idempotency key already recorded for operation")
)
