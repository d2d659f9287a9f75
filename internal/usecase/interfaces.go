package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/domain"
)

// LedgerRepository defines data access for immutable ledger entries.
type LedgerRepository interface {
	CreateTx(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	ListByKey(ctx context.Context, key domain.BalanceKey, limit, offset int) ([]*domain.LedgerEntry, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*domain.LedgerEntry, error)
	ListByCorrelationID(ctx context.Context, tenantID, correlationID string) ([]*domain.LedgerEntry, error)
	// CheckProjection compares the entry sum against the materialized balance
	// for every key of the tenant and returns the keys that drift.
	CheckProjection(ctx context.Context, tenantID string) ([]ProjectionDrift, error)
}

// BalanceRepository defines data access for materialized balances.
type BalanceRepository interface {
	GetByKey(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error)
	// ApplyDeltaTx atomically adds delta to the balance for key, creating the
	// row when the key is new, and returns the post-apply state.
	ApplyDeltaTx(ctx context.Context, tx Transaction, key domain.BalanceKey, delta decimal.Decimal, updatedAt time.Time) (*domain.Balance, error)
	SetReorderPoint(ctx context.Context, tx Transaction, key domain.BalanceKey, threshold decimal.Decimal, updatedAt time.Time) (*domain.Balance, error)
	List(ctx context.Context, tenantID, itemID, locationID string, limit, offset int) ([]*domain.Balance, error)
}

// CountSheetRepository defines data access for count sheets and their lines.
type CountSheetRepository interface {
	CreateTx(ctx context.Context, tx Transaction, sheet *domain.CountSheet) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.CountSheet, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenantID, id string) (*domain.CountSheet, error)
	UpdateStatus(ctx context.Context, tx Transaction, tenantID, id string, status domain.CountSheetStatus, postedAt *time.Time, updatedAt time.Time) error
	List(ctx context.Context, tenantID string, status domain.CountSheetStatus, limit, offset int) ([]*domain.CountSheet, error)
	CreateLineTx(ctx context.Context, tx Transaction, line *domain.CountLine) error
	// ListLines returns all lines of a sheet in ascending line id order.
	ListLines(ctx context.Context, sheetID string) ([]*domain.CountLine, error)
}

// OrderRepository defines data access for orders and their lines.
type OrderRepository interface {
	CreateTx(ctx context.Context, tx Transaction, order *domain.Order) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenantID, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx Transaction, tenantID, id string, status domain.OrderStatus, paidAt *time.Time, updatedAt time.Time) error
	UpdateTotals(ctx context.Context, tx Transaction, order *domain.Order) error
	ListBySession(ctx context.Context, tenantID, sessionID string, limit, offset int) ([]*domain.Order, error)
	CreateLineTx(ctx context.Context, tx Transaction, line *domain.OrderLine) error
	ListLines(ctx context.Context, orderID string) ([]*domain.OrderLine, error)
	// NextLineNo returns the next sequential line number; callers must hold
	// the order lock.
	NextLineNo(ctx context.Context, tx Transaction, orderID string) (int32, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	CreateTx(ctx context.Context, tx Transaction, payment *domain.Payment) error
	// SumByOrderTx aggregates payment amounts of one status; callers must
	// hold the order lock for the sum to be stable.
	SumByOrderTx(ctx context.Context, tx Transaction, orderID string, status domain.PaymentStatus) (int64, error)
	ListByOrder(ctx context.Context, tenantID, orderID string) ([]*domain.Payment, error)
}

// SessionRepository defines data access for register sessions.
type SessionRepository interface {
	CreateTx(ctx context.Context, tx Transaction, session *domain.RegisterSession) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.RegisterSession, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenantID, id string) (*domain.RegisterSession, error)
	GetOpenBySite(ctx context.Context, tenantID, siteID string) (*domain.RegisterSession, error)
	CloseTx(ctx context.Context, tx Transaction, tenantID, id, closedBy string, closedAt time.Time) error
	Summarize(ctx context.Context, tenantID, id string) (*domain.SessionSummary, error)
}

// AuditRepository defines data access for audit records.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, record *domain.AuditRecord) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error)
	GetByCorrelationID(ctx context.Context, tenantID, correlationID string) ([]*domain.AuditRecord, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	CreateTx(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on retryable store errors (deadlock,
// serialization failure). Implementations must not retry business errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique, time-sortable IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// ProjectionDrift reports one balance key whose materialized quantity does
// not equal the sum of its ledger entries.
type ProjectionDrift struct {
	Key      domain.BalanceKey
	Balance  decimal.Decimal
	EntrySum decimal.Decimal
}
