package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/metrics"
)

const sessionSummaryCachePrefix = "session:summary:"

// SessionUseCase manages register sessions. One open session per site at a
// time; orders and captures require the owning session to be open.
type SessionUseCase struct {
	txManager   TransactionManager
	sessionRepo SessionRepository
	auditRepo   AuditRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	cache       Cache
	metrics     *metrics.Metrics
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	txManager TransactionManager,
	sessionRepo SessionRepository,
	auditRepo AuditRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	cache Cache,
	metrics *metrics.Metrics,
) *SessionUseCase {
	return &SessionUseCase{
		txManager:   txManager,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		cache:       cache,
		metrics:     metrics,
	}
}

// OpenSessionInput represents input for opening a register session.
type OpenSessionInput struct {
	TenantID     string
	SiteID       string
	OpeningFloat int64
}

// OpenSession opens a register session for a site. At most one session per
// site may be open; a partial unique index in the store backs this up under
// concurrent opens.
func (uc *SessionUseCase) OpenSession(ctx context.Context, input OpenSessionInput) (*domain.RegisterSession, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.SiteID); err != nil {
		return nil, err
	}

	if input.OpeningFloat < 0 || input.OpeningFloat > domain.MaxMoneyAmount {
		return nil, domain.ErrInvalidAmount
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	_, err = uc.sessionRepo.GetOpenBySite(txCtx, input.TenantID, input.SiteID)
	if err == nil {
		return nil, domain.ErrSessionAlreadyOpen
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.RegisterSession{
		ID:           uc.idGen.Generate(),
		TenantID:     input.TenantID,
		SiteID:       input.SiteID,
		OpenedBy:     actorIDFromContext(ctx),
		Status:       domain.SessionStatusOpen,
		OpeningFloat: input.OpeningFloat,
		OpenedAt:     now,
	}

	if err := uc.sessionRepo.CreateTx(txCtx, tx, session); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   session.ID,
		AggregateType: domain.AggregateTypeSession,
		EventType:     domain.EventTypeSessionOpened,
		Payload: map[string]any{
			"session_id": session.ID,
			"site_id":    session.SiteID,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
		return nil, err
	}

	audit := newAuditRecord(ctx, uc.idGen, input.TenantID, domain.AuditSessionOpened, uc.idGen.Generate(), domain.AuditDetail{
		SessionID: session.ID,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SessionsOpened.Inc()
		uc.metrics.OpenSessions.Inc()
	}

	return session, nil
}

// CloseSession closes an open session. Closing is terminal; captures against
// the session's orders are rejected afterwards.
func (uc *SessionUseCase) CloseSession(ctx context.Context, tenantID, sessionID string) (*domain.RegisterSession, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(sessionID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	session, err := uc.sessionRepo.GetByIDForUpdate(txCtx, tx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsOpen() {
		return nil, domain.ErrSessionClosed
	}

	now := time.Now().UTC()
	closedBy := actorIDFromContext(ctx)

	if err := uc.sessionRepo.CloseTx(txCtx, tx, tenantID, sessionID, closedBy, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   session.ID,
		AggregateType: domain.AggregateTypeSession,
		EventType:     domain.EventTypeSessionClosed,
		Payload: map[string]any{
			"session_id": session.ID,
			"site_id":    session.SiteID,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
		return nil, err
	}

	audit := newAuditRecord(ctx, uc.idGen, tenantID, domain.AuditSessionClosed, uc.idGen.Generate(), domain.AuditDetail{
		SessionID: session.ID,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SessionsClosed.Inc()
		uc.metrics.OpenSessions.Dec()
	}

	// A summary cached while the session was open is stale now.
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, sessionSummaryCachePrefix+sessionID)
	}

	session.Status = domain.SessionStatusClosed
	session.ClosedBy = closedBy
	session.ClosedAt = &now

	return session, nil
}

// GetSession retrieves a session by ID within the tenant scope.
func (uc *SessionUseCase) GetSession(ctx context.Context, tenantID, sessionID string) (*domain.RegisterSession, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(sessionID); err != nil {
		return nil, err
	}

	return uc.sessionRepo.GetByID(ctx, tenantID, sessionID)
}

// GetSummary aggregates the session's committed money state. Summaries of
// closed sessions are immutable and served cache-aside; open sessions are
// always computed fresh.
func (uc *SessionUseCase) GetSummary(ctx context.Context, tenantID, sessionID string) (*domain.SessionSummary, error) {
	session, err := uc.GetSession(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	cacheKey := sessionSummaryCachePrefix + session.ID
	closed := !session.IsOpen()

	if closed && uc.cache != nil {
		if data, err := uc.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var summary domain.SessionSummary
			if err := json.Unmarshal(data, &summary); err == nil {
				return &summary, nil
			}
		}
	}

	summary, err := uc.sessionRepo.Summarize(ctx, tenantID, session.ID)
	if err != nil {
		return nil, err
	}

	summary.SessionID = session.ID
	summary.GeneratedAt = time.Now().UTC()

	if closed && uc.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, data, SessionSummaryCacheTTL)
		}
	}

	return summary, nil
}
