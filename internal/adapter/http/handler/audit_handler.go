package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlis/posledger/internal/adapter/http/dto"
	"github.com/mkarlis/posledger/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error)
	GetByCorrelationID(ctx context.Context, tenantID, correlationID string) ([]*domain.AuditRecord, error)
}

// AuditHandler handles audit trail HTTP requests. Routes are admin-only,
// enforced by middleware.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List lists audit records, newest first. event, actor_id, correlation_id,
// since and until narrow the listing; since is inclusive, until exclusive.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	filter := domain.AuditFilter{
		TenantID:      tenantID,
		Event:         r.URL.Query().Get("event"),
		ActorID:       r.URL.Query().Get("actor_id"),
		CorrelationID: r.URL.Query().Get("correlation_id"),
		Limit:         parseIntQuery(r, "limit", 50),
		Offset:        parseIntQuery(r, "offset", 0),
	}

	since, err := parseTimeQuery(r, "since")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid since parameter", err.Error())
		return
	}
	filter.Since = since

	until, err := parseTimeQuery(r, "until")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid until parameter", err.Error())
		return
	}
	filter.Until = until

	records, err := h.auditUC.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, "failed to list audit records")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAuditResponse{
		Records: dto.AuditRecordsFromDomain(records),
		Total:   int64(len(records)),
	})
}

// GetByCorrelation lists every audit record written for one business
// operation, in write order.
func (h *AuditHandler) GetByCorrelation(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	correlationID := chi.URLParam(r, "correlationID")

	records, err := h.auditUC.GetByCorrelationID(r.Context(), tenantID, correlationID)
	if err != nil {
		writeDomainError(w, err, "failed to get audit records")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAuditResponse{
		Records: dto.AuditRecordsFromDomain(records),
		Total:   int64(len(records)),
	})
}

// parseTimeQuery parses an RFC 3339 timestamp query parameter.
func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
