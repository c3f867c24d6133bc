package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of balance movement.
type TransactionType string

const (
	TypeDeposit     TransactionType = "DEPOSIT"
	TypeWithdrawal  TransactionType = "WITHDRAWAL"
	TypeTransferIn  TransactionType = "TRANSFER_IN"
	TypeTransferOut TransactionType = "TRANSFER_OUT"
)

var validTypes = map[TransactionType]bool{
	TypeDeposit:     true,
	TypeWithdrawal:  true,
	TypeTransferIn:  true,
	TypeTransferOut: true,
}

// IsValid checks if the type is a known transaction type.
func (t TransactionType) IsValid() bool {
	return validTypes[t]
}

// IsDeposit reports whether the type is a deposit.
func (t TransactionType) IsDeposit() bool {
	return t == TypeDeposit
}

// IsWithdrawal reports whether the type is a withdrawal.
func (t TransactionType) IsWithdrawal() bool {
	return t == TypeWithdrawal
}

// IsTransfer reports whether the type is either side of a transfer.
func (t TransactionType) IsTransfer() bool {
	return t == TypeTransferIn || t == TypeTransferOut
}

// IsCredit reports whether the type increases a balance.
func (t TransactionType) IsCredit() bool {
	return t == TypeDeposit || t == TypeTransferIn
}

// IsDebit reports whether the type decreases a balance.
func (t TransactionType) IsDebit() bool {
	return t == TypeWithdrawal || t == TypeTransferOut
}

// Transaction is one immutable signed movement against one wallet.
// The amount is stored pre-signed: credits positive, debits negative.
type Transaction struct {
	ID        string
	WalletID  string
	Type      TransactionType
	Amount    decimal.Decimal
	Timestamp time.Time
}

func newTransaction(id, walletID string, txType TransactionType, amount decimal.Decimal, ts time.Time) (Transaction, error) {
	if walletID == "" {
		return Transaction{}, ErrMissingWalletID
	}

	if !txType.IsValid() {
		return Transaction{}, ErrInvalidType
	}

	if amount.IsZero() {
		return Transaction{}, ErrZeroAmount
	}

	if ts.After(time.Now()) {
		return Transaction{}, ErrFutureTimestamp
	}

	return Transaction{
		ID:        id,
		WalletID:  walletID,
		Type:      txType,
		Amount:    amount,
		Timestamp: ts,
	}, nil
}

// NewDeposit creates a deposit transaction from an unsigned magnitude.
func NewDeposit(id, walletID string, amount decimal.Decimal, ts time.Time) (Transaction, error) {
	return newTransaction(id, walletID, TypeDeposit, amount.Abs(), ts)
}

// NewWithdrawal creates a withdrawal transaction; the stored amount is negated.
func NewWithdrawal(id, walletID string, amount decimal.Decimal, ts time.Time) (Transaction, error) {
	return newTransaction(id, walletID, TypeWithdrawal, amount.Abs().Neg(), ts)
}

// NewTransferOut creates the debit side of a transfer; the stored amount is negated.
func NewTransferOut(id, walletID string, amount decimal.Decimal, ts time.Time) (Transaction, error) {
	return newTransaction(id, walletID, TypeTransferOut, amount.Abs().Neg(), ts)
}

// NewTransferIn creates the credit side of a transfer.
func NewTransferIn(id, walletID string, amount decimal.Decimal, ts time.Time) (Transaction, error) {
	return newTransaction(id, walletID, TypeTransferIn, amount.Abs(), ts)
}
