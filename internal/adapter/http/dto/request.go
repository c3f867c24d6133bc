package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/usecase"
)

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Name string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput(idempotencyKey string) usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:           r.Name,
		IdempotencyKey: idempotencyKey,
	}
}

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	UserID string `json:"user_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWalletRequest) ToUseCaseInput(idempotencyKey string) usecase.CreateWalletInput {
	return usecase.CreateWalletInput{
		UserID:         r.UserID,
		IdempotencyKey: idempotencyKey,
	}
}

// DepositRequest represents a request to deposit into a wallet.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput(walletID, idempotencyKey string) usecase.DepositInput {
	return usecase.DepositInput{
		WalletID:       walletID,
		Amount:         r.Amount,
		IdempotencyKey: idempotencyKey,
	}
}

// WithdrawRequest represents a request to withdraw from a wallet.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput(walletID, idempotencyKey string) usecase.WithdrawInput {
	return usecase.WithdrawInput{
		WalletID:       walletID,
		Amount:         r.Amount,
		IdempotencyKey: idempotencyKey,
	}
}

// TransferRequest represents a request to transfer between wallets.
type TransferRequest struct {
	TargetWalletID string          `json:"target_wallet_id"`
	Amount         decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(sourceWalletID, idempotencyKey string) usecase.TransferInput {
	return usecase.TransferInput{
		SourceWalletID: sourceWalletID,
		TargetWalletID: r.TargetWalletID,
		Amount:         r.Amount,
		IdempotencyKey: idempotencyKey,
	}
}
