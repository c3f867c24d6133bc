package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's balance. Wallets are immutable values: every
// state transition returns a new Wallet and never mutates the receiver,
// so a failed operation can never leave partial state behind.
type Wallet struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransferResult carries both sides of a completed transfer.
type TransferResult struct {
	Source      Wallet
	Destination Wallet
}

// NewWallet creates a wallet with a zero balance.
func NewWallet(id, userID string) (Wallet, error) {
	if id == "" {
		return Wallet{}, ErrMissingWalletID
	}

	if userID == "" {
		return Wallet{}, ErrMissingUserID
	}

	now := time.Now().UTC()

	return Wallet{
		ID:        id,
		UserID:    userID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func checkAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// Deposit returns a new wallet with the amount added to the balance.
func (w Wallet) Deposit(amount decimal.Decimal) (Wallet, error) {
	if err := checkAmount(amount); err != nil {
		return Wallet{}, err
	}

	w.Balance = w.Balance.Add(amount)
	w.UpdatedAt = time.Now().UTC()

	return w, nil
}

// Withdraw returns a new wallet with the amount subtracted. The balance
// never goes negative.
func (w Wallet) Withdraw(amount decimal.Decimal) (Wallet, error) {
	if err := checkAmount(amount); err != nil {
		return Wallet{}, err
	}

	if w.Balance.LessThan(amount) {
		return Wallet{}, ErrInsufficientFunds
	}

	w.Balance = w.Balance.Sub(amount)
	w.UpdatedAt = time.Now().UTC()

	return w, nil
}

// TransferTo withdraws from the receiver and deposits into target,
// returning both updated wallets. A withdrawal failure prevents any
// change to the destination.
func (w Wallet) TransferTo(target Wallet, amount decimal.Decimal) (TransferResult, error) {
	if w.ID == target.ID {
		return TransferResult{}, ErrSameWallet
	}

	if err := checkAmount(amount); err != nil {
		return TransferResult{}, err
	}

	updatedSource, err := w.Withdraw(amount)
	if err != nil {
		return TransferResult{}, err
	}

	updatedDestination, err := target.Deposit(amount)
	if err != nil {
		return TransferResult{}, err
	}

	return TransferResult{
		Source:      updatedSource,
		Destination: updatedDestination,
	}, nil
}
