package usecase

import (
	"context"
	"errors"

	"github.com/iho/gowallet/internal/domain"
)

// UserUseCase handles user creation and lookup. Users are opaque to the
// ledger beyond their id; only creation is idempotency-aware.
type UserUseCase struct {
	txManager TransactionManager
	userRepo  UserRepository
	idemRepo  IdempotencyRepository
	idGen     IDGenerator
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(txManager TransactionManager, userRepo UserRepository, idemRepo IdempotencyRepository, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{
		txManager: txManager,
		userRepo:  userRepo,
		idemRepo:  idemRepo,
		idGen:     idGen,
	}
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Name           string
	IdempotencyKey string
}

// CreateUser creates a new user.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.IdempotencyKey != "" {
		record, err := uc.idemRepo.Find(ctx, input.IdempotencyKey, OpCreateUser)
		if err != nil {
			return nil, err
		}

		if record != nil {
			return uc.userRepo.GetByID(ctx, record.ResourceID)
		}
	}

	user, err := domain.NewUser(uc.idGen.Generate(), input.Name)
	if err != nil {
		return nil, err
	}

	err = uc.inTx(ctx, func(tx Transaction) error {
		if err := uc.userRepo.Create(ctx, tx, &user); err != nil {
			return err
		}

		if input.IdempotencyKey == "" {
			return nil
		}

		return uc.idemRepo.Create(ctx, tx, &domain.IdempotencyRecord{
			Key:        input.IdempotencyKey,
			Operation:  OpCreateUser,
			ResourceID: user.ID,
			CreatedAt:  user.CreatedAt,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrIdempotencyConflict) {
			record, findErr := uc.idemRepo.Find(ctx, input.IdempotencyKey, OpCreateUser)
			if findErr == nil && record != nil {
				return uc.userRepo.GetByID(ctx, record.ResourceID)
			}
		}

		return nil, err
	}

	return &user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) inTx(ctx context.Context, fn func(tx Transaction) error) error {
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
