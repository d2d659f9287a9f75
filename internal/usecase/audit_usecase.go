package usecase

import (
	"context"
	"time"

	"github.com/mkarlis/posledger/internal/domain"
)

// AuditUseCase exposes the audit trail read side. Writes happen inside the
// mutating usecases, always in the mutation's own transaction.
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{
		auditRepo: auditRepo,
	}
}

// List returns audit records matching the filter, newest first.
func (uc *AuditUseCase) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	if err := domain.ValidateTenantID(filter.TenantID); err != nil {
		return nil, err
	}

	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.auditRepo.List(ctx, filter)
}

// GetByCorrelationID returns every audit record written for one business
// operation.
func (uc *AuditUseCase) GetByCorrelationID(ctx context.Context, tenantID, correlationID string) ([]*domain.AuditRecord, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(correlationID); err != nil {
		return nil, err
	}

	return uc.auditRepo.GetByCorrelationID(ctx, tenantID, correlationID)
}

// actorIDFromContext resolves the acting identity, falling back to "system"
// for internal callers (CLI, workers).
func actorIDFromContext(ctx context.Context) string {
	if actor, ok := domain.ActorFromContext(ctx); ok {
		return actor.ID
	}

	return "system"
}

// newAuditRecord builds the one audit record a mutating operation writes in
// its own transaction.
func newAuditRecord(ctx context.Context, idGen IDGenerator, tenantID string, event domain.AuditEvent, correlationID string, detail domain.AuditDetail) *domain.AuditRecord {
	detail.SchemaVersion = domain.AuditDetailVersion

	record := &domain.AuditRecord{
		ID:            idGen.Generate(),
		TenantID:      tenantID,
		Event:         event,
		ActorID:       actorIDFromContext(ctx),
		CorrelationID: correlationID,
		Detail:        detail,
		CreatedAt:     time.Now().UTC(),
	}

	if meta, ok := domain.RequestMetaFromContext(ctx); ok {
		record.IPAddress = meta.IPAddress
		record.RequestID = meta.RequestID
	}

	return record
}
