package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/postgres/generated"
	"github.com/mkarlis/posledger/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// SessionRepository implements usecase.SessionRepository.
type SessionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx opens a register session within a transaction. A partial unique
// index on (tenant_id, site_id) WHERE status = 'open' backs the one-open-
// session-per-site rule, so a concurrent open surfaces as a unique violation.
func (r *SessionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, session *domain.RegisterSession) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	var closedAt pgtype.Timestamptz
	if session.ClosedAt != nil {
		closedAt = timeToPgTimestamptz(*session.ClosedAt)
	}

	_, err := queries.CreateRegisterSession(ctx, generated.CreateRegisterSessionParams{
		ID:           session.ID,
		TenantID:     session.TenantID,
		SiteID:       session.SiteID,
		OpenedBy:     session.OpenedBy,
		ClosedBy:     session.ClosedBy,
		Status:       string(session.Status),
		OpeningFloat: session.OpeningFloat,
		OpenedAt:     timeToPgTimestamptz(session.OpenedAt),
		ClosedAt:     closedAt,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrSessionAlreadyOpen
		}
		return err
	}

	return nil
}

// GetByID retrieves a register session scoped to its tenant.
func (r *SessionRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.RegisterSession, error) {
	row, err := r.queries.GetRegisterSession(ctx, generated.GetRegisterSessionParams{
		TenantID: tenantID,
		ID:       id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	return rowToRegisterSession(row), nil
}

// GetByIDForUpdate retrieves a register session with a row lock.
func (r *SessionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.RegisterSession, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetRegisterSessionForUpdate(ctx, generated.GetRegisterSessionForUpdateParams{
		TenantID: tenantID,
		ID:       id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	return rowToRegisterSession(row), nil
}

// GetOpenBySite retrieves the open session for a site, if any.
func (r *SessionRepository) GetOpenBySite(ctx context.Context, tenantID, siteID string) (*domain.RegisterSession, error) {
	row, err := r.queries.GetOpenRegisterSessionBySite(ctx, generated.GetOpenRegisterSessionBySiteParams{
		TenantID: tenantID,
		SiteID:   siteID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	return rowToRegisterSession(row), nil
}

// CloseTx closes a session; callers must hold the row lock.
func (r *SessionRepository) CloseTx(ctx context.Context, tx usecase.Transaction, tenantID, id, closedBy string, closedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.CloseRegisterSession(ctx, generated.CloseRegisterSessionParams{
		TenantID: tenantID,
		ID:       id,
		ClosedBy: closedBy,
		ClosedAt: timeToPgTimestamptz(closedAt),
	})
}

// Summarize aggregates order and payment figures for one session. Totals by
// method are captured amounts net of refunds.
func (r *SessionRepository) Summarize(ctx context.Context, tenantID, id string) (*domain.SessionSummary, error) {
	orderCount, err := r.queries.CountOrdersBySession(ctx, generated.CountOrdersBySessionParams{
		TenantID:  tenantID,
		SessionID: id,
	})
	if err != nil {
		return nil, err
	}

	rows, err := r.queries.SumSessionPaymentsByMethod(ctx, generated.SumSessionPaymentsByMethodParams{
		TenantID:  tenantID,
		SessionID: id,
	})
	if err != nil {
		return nil, err
	}

	summary := &domain.SessionSummary{
		SessionID:      id,
		OrderCount:     orderCount,
		TotalsByMethod: map[string]int64{},
	}

	for _, row := range rows {
		switch domain.PaymentStatus(row.Status) {
		case domain.PaymentStatusCaptured:
			summary.CapturedTotal += row.Total
			summary.TotalsByMethod[row.Method] += row.Total
		case domain.PaymentStatusRefunded:
			summary.RefundedTotal += row.Total
			summary.TotalsByMethod[row.Method] -= row.Total
		}
	}

	return summary, nil
}

func rowToRegisterSession(row generated.RegisterSession) *domain.RegisterSession {
	var closedAt *time.Time
	if row.ClosedAt.Valid {
		t := row.ClosedAt.Time
		closedAt = &t
	}

	return &domain.RegisterSession{
		ID:           row.ID,
		TenantID:     row.TenantID,
		SiteID:       row.SiteID,
		OpenedBy:     row.OpenedBy,
		ClosedBy:     row.ClosedBy,
		Status:       domain.SessionStatus(row.Status),
		OpeningFloat: row.OpeningFloat,
		OpenedAt:     row.OpenedAt.Time,
		ClosedAt:     closedAt,
	}
}
