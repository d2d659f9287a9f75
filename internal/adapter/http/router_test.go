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

	"github.com/mkarlis/posledger/internal/adapter/http/handler"
	apimiddleware "github.com/mkarlis/posledger/internal/adapter/http/middleware"
	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/auth"
	"github.com/mkarlis/posledger/internal/usecase"
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

func TestNewRouter_APIRequiresToken(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/counts/", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected unauthenticated request to return 401, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	cfg := newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = apimiddleware.NewRateLimiter(1, 1)
	})
	router := NewRouter(cfg)
	token := mintToken(t, cfg.JWTManager, domain.RoleCashier)

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/counts/", nil)
	req1.Header.Set("Authorization", "Bearer "+token)
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/counts/", nil)
	req2.Header.Set("Authorization", "Bearer "+token)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyKeyScopedToTenant(t *testing.T) {
	store := &stubIdempotencyStore{}
	cfg := newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	})
	router := NewRouter(cfg)
	token := mintToken(t, cfg.JWTManager, domain.RoleManager)

	body := `{"number":"CS-2024-001","counted_by":"actor-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/counts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatal("expected idempotency store to be used")
	}
	if store.lastKey != "tenant-1:key-123" {
		t.Fatalf("expected idempotency key scoped to tenant, got %q", store.lastKey)
	}
}

func TestNewRouter_CountPostingNeedsManagerRole(t *testing.T) {
	cfg := newRouterConfig()
	router := NewRouter(cfg)

	cashier := mintToken(t, cfg.JWTManager, domain.RoleCashier)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/counts/sheet-1/post", nil)
	req.Header.Set("Authorization", "Bearer "+cashier)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected cashier posting to be forbidden, got %d", rec.Code)
	}

	manager := mintToken(t, cfg.JWTManager, domain.RoleManager)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/counts/sheet-1/post", nil)
	req.Header.Set("Authorization", "Bearer "+manager)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected manager posting to succeed, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
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
		"POST /api/v1/counts/",
		"POST /api/v1/counts/{id}/post",
		"POST /api/v1/orders/",
		"POST /api/v1/orders/{id}/payments",
		"POST /api/v1/sessions/",
		"GET /api/v1/sessions/{id}/orders",
		"POST /api/v1/movements/",
		"GET /api/v1/balances/{itemID}/{locationID}",
		"PUT /api/v1/balances/{itemID}/{locationID}/reorder-point",
		"GET /api/v1/ledger/consistency",
		"GET /api/v1/audit/",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		CountingHandler: handler.NewCountingHandler(stubCountingService{}),
		OrderHandler:    handler.NewOrderHandler(nil),
		PaymentHandler:  handler.NewPaymentHandler(nil),
		SessionHandler:  handler.NewSessionHandler(nil),
		LedgerHandler:   handler.NewLedgerHandler(nil, nil),
		AuditHandler:    handler.NewAuditHandler(nil),
		HealthHandler:   &handler.HealthHandler{},
		JWTManager:      auth.NewJWTManager("router-test-secret", time.Hour),
		Logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func mintToken(t *testing.T, manager *auth.JWTManager, role domain.Role) string {
	t.Helper()

	token, err := manager.Generate(&domain.Actor{
		ID:       "actor-1",
		TenantID: "tenant-1",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

type stubCountingService struct{}

func (stubCountingService) CreateSheet(ctx context.Context, input usecase.CreateSheetInput) (*domain.CountSheet, error) {
	return &domain.CountSheet{ID: "sheet-1", TenantID: input.TenantID, Number: input.Number}, nil
}

func (stubCountingService) AddLine(ctx context.Context, input usecase.AddLineInput) (*domain.CountLine, error) {
	return &domain.CountLine{ID: "line-1", SheetID: input.SheetID}, nil
}

func (stubCountingService) ApproveSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
	return &domain.CountSheet{ID: sheetID, TenantID: tenantID}, nil
}

func (stubCountingService) PostSheet(ctx context.Context, tenantID, sheetID string) (*usecase.PostResult, error) {
	return &usecase.PostResult{
		Sheet:         &domain.CountSheet{ID: sheetID, TenantID: tenantID},
		CorrelationID: "corr-1",
	}, nil
}

func (stubCountingService) VoidSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
	return &domain.CountSheet{ID: sheetID, TenantID: tenantID}, nil
}

func (stubCountingService) GetSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
	return &domain.CountSheet{ID: sheetID, TenantID: tenantID}, nil
}

func (stubCountingService) ListLines(ctx context.Context, tenantID, sheetID string) ([]*domain.CountLine, error) {
	return []*domain.CountLine{}, nil
}

func (stubCountingService) ListSheets(ctx context.Context, input usecase.ListSheetsInput) ([]*domain.CountSheet, error) {
	return []*domain.CountSheet{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
	lastKey     string
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	s.lastKey = key
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
