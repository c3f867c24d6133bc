package usecase

import "time"

// Operation names recorded alongside idempotency keys. A key is only
// considered a replay for the exact operation it was first used with.
const (
	OpCreateUser   = "createUser"
	OpCreateWallet = "createWallet"
	OpDeposit      = "depositWallet"
	OpWithdraw     = "withdrawWallet"
	OpTransfer     = "transferWallet"
)

// DefaultWalletCacheTTL bounds staleness of the non-locking read path.
const DefaultWalletCacheTTL = 30 * time.Second
