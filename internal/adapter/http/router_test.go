package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Router")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users/",
		"GET /api/v1/users/{id}",
		"GET /api/v1/users/{id}/wallets",
		"GET /api/v1/users/{id}/transactions",
		"POST /api/v1/wallets/",
		"GET /api/v1/wallets/{id}",
		"GET /api/v1/wallets/{id}/balance",
		"GET /api/v1/wallets/{id}/balance/history",
		"GET /api/v1/wallets/{id}/transactions",
		"POST /api/v1/wallets/{id}/deposit",
		"POST /api/v1/wallets/{id}/withdraw",
		"POST /api/v1/wallets/{id}/transfer",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_IdempotencyKeyReachesUseCase(t *testing.T) {
	svc := &stubWalletService{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.WalletHandler = handler.NewWalletHandler(svc)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallets/w1/deposit", strings.NewReader(`{"amount":"10"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handler.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected deposit to return 200, got %d", rec.Code)
	}

	if svc.lastDeposit.IdempotencyKey != "key-123" {
		t.Fatalf("expected idempotency key to reach the use case, got %q", svc.lastDeposit.IdempotencyKey)
	}

	if svc.lastDeposit.WalletID != "w1" {
		t.Fatalf("expected wallet id w1, got %q", svc.lastDeposit.WalletID)
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		UserHandler:   handler.NewUserHandler(&stubUserService{}, &stubWalletService{}),
		WalletHandler: handler.NewWalletHandler(&stubWalletService{}),
		HealthHandler: &handler.HealthHandler{},
		Logger:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubWalletService struct {
	lastDeposit usecase.DepositInput
}

func (s *stubWalletService) CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error) {
	return &domain.Wallet{ID: "wallet", UserID: input.UserID}, nil
}

func (s *stubWalletService) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	return &domain.Wallet{ID: id}, nil
}

func (s *stubWalletService) GetCurrentBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *stubWalletService) GetHistoricalBalance(ctx context.Context, walletID string, at time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *stubWalletService) Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Wallet, error) {
	s.lastDeposit = input
	return &domain.Wallet{ID: input.WalletID}, nil
}

func (s *stubWalletService) Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Wallet, error) {
	return &domain.Wallet{ID: input.WalletID}, nil
}

func (s *stubWalletService) Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Wallet, error) {
	return &domain.Wallet{ID: input.SourceWalletID}, nil
}

func (s *stubWalletService) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

func (s *stubWalletService) ListUserWallets(ctx context.Context, userID string) ([]*domain.Wallet, error) {
	return []*domain.Wallet{}, nil
}

func (s *stubWalletService) ListUserTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

type stubUserService struct{}

func (stubUserService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "user", Name: input.Name}, nil
}

func (stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}
