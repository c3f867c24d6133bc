package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

func newUserUseCase() (*usecase.UserUseCase, *mocks.MockUserRepository, *mocks.MockIdempotencyRepository) {
	userRepo := mocks.NewMockUserRepository()
	idemRepo := mocks.NewMockIdempotencyRepository()
	uc := usecase.NewUserUseCase(mocks.NewMockTransactionManager(), userRepo, idemRepo, mocks.NewMockIDGenerator())

	return uc, userRepo, idemRepo
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a trimmed name", func(t *testing.T) {
		uc, _, _ := newUserUseCase()

		user, err := uc.CreateUser(ctx, usecase.CreateUserInput{Name: "  Alice  "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if user.Name != "Alice" {
			t.Errorf("expected name Alice, got %q", user.Name)
		}

		if user.ID == "" {
			t.Error("expected generated id")
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		uc, _, _ := newUserUseCase()

		_, err := uc.CreateUser(ctx, usecase.CreateUserInput{Name: "   "})
		if !errors.Is(err, domain.ErrBlankUserName) {
			t.Errorf("expected ErrBlankUserName, got %v", err)
		}
	})

	t.Run("replays the same user for a reused key", func(t *testing.T) {
		uc, _, _ := newUserUseCase()

		first, err := uc.CreateUser(ctx, usecase.CreateUserInput{Name: "Alice", IdempotencyKey: "key-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second, err := uc.CreateUser(ctx, usecase.CreateUserInput{Name: "Bob", IdempotencyKey: "key-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("expected replay to return user %s, got %s", first.ID, second.ID)
		}

		if second.Name != "Alice" {
			t.Errorf("expected original name Alice, got %q", second.Name)
		}
	})

	t.Run("loser of an idempotency race returns the winner's user", func(t *testing.T) {
		uc, userRepo, idemRepo := newUserUseCase()
		userRepo.Seed(&domain.User{ID: "winner", Name: "Alice"})

		calls := 0
		idemRepo.FindFunc = func(ctx context.Context, key, operation string) (*domain.IdempotencyRecord, error) {
			calls++
			if calls == 1 {
				return nil, nil
			}
			return &domain.IdempotencyRecord{Key: key, Operation: operation, ResourceID: "winner"}, nil
		}
		idemRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, record *domain.IdempotencyRecord) error {
			return domain.ErrIdempotencyConflict
		}

		user, err := uc.CreateUser(ctx, usecase.CreateUserInput{Name: "Alice", IdempotencyKey: "raced"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if user.ID != "winner" {
			t.Errorf("expected winner's user, got %s", user.ID)
		}
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()

	uc, userRepo, _ := newUserUseCase()
	userRepo.Seed(&domain.User{ID: "user-1", Name: "Alice"})

	user, err := uc.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Name != "Alice" {
		t.Errorf("expected name Alice, got %q", user.Name)
	}

	if _, err := uc.GetUser(ctx, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
