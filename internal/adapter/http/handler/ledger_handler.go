package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlis/posledger/internal/adapter/http/dto"
	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	RecordMovement(ctx context.Context, input usecase.RecordMovementInput) (*usecase.MovementResult, error)
	GetBalance(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error)
	ListBalances(ctx context.Context, input usecase.ListBalancesInput) ([]*domain.Balance, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error)
	ListEntriesByCorrelation(ctx context.Context, tenantID, correlationID string) ([]*domain.LedgerEntry, error)
	SetReorderPoint(ctx context.Context, input usecase.SetReorderPointInput) (*domain.Balance, error)
}

// ReconciliationService defines the projection check needed by LedgerHandler.
type ReconciliationService interface {
	VerifyProjection(ctx context.Context, tenantID string) (*usecase.ProjectionReport, error)
}

// LedgerHandler handles stock ledger and balance HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
	reconUC  ReconciliationService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, reconUC ReconciliationService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, reconUC: reconUC}
}

// RecordMovement appends one signed movement and returns the entry together
// with the updated balance.
func (h *LedgerHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	var req dto.RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerUC.RecordMovement(r.Context(), req.ToUseCaseInput(tenantID))
	if err != nil {
		writeDomainError(w, err, "failed to record movement")
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementResultFromUseCase(result))
}

// ListEntries lists ledger entries, newest first. item_id, location_id and
// lot_id narrow the listing.
func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	entries, err := h.ledgerUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		TenantID:   tenantID,
		ItemID:     r.URL.Query().Get("item_id"),
		LocationID: r.URL.Query().Get("location_id"),
		LotID:      r.URL.Query().Get("lot_id"),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err, "failed to list ledger entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.LedgerEntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// ListByCorrelation lists every entry written by one business operation, in
// write order.
func (h *LedgerHandler) ListByCorrelation(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	correlationID := chi.URLParam(r, "correlationID")

	entries, err := h.ledgerUC.ListEntriesByCorrelation(r.Context(), tenantID, correlationID)
	if err != nil {
		writeDomainError(w, err, "failed to list ledger entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.LedgerEntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// GetBalance retrieves the materialized balance for one key. The lot
// dimension comes from the lot_id query parameter.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	key := domain.BalanceKey{
		TenantID:   tenantID,
		ItemID:     chi.URLParam(r, "itemID"),
		LocationID: chi.URLParam(r, "locationID"),
		LotID:      r.URL.Query().Get("lot_id"),
	}

	balance, err := h.ledgerUC.GetBalance(r.Context(), key)
	if err != nil {
		writeDomainError(w, err, "failed to get balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// ListBalances lists balances, optionally narrowed to one item and/or one
// location.
func (h *LedgerHandler) ListBalances(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	balances, err := h.ledgerUC.ListBalances(r.Context(), usecase.ListBalancesInput{
		TenantID:   tenantID,
		ItemID:     r.URL.Query().Get("item_id"),
		LocationID: r.URL.Query().Get("location_id"),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err, "failed to list balances")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListBalancesResponse{
		Balances: dto.BalancesFromDomain(balances),
		Total:    int64(len(balances)),
	})
}

// SetReorderPoint sets the alert threshold for one balance key.
func (h *LedgerHandler) SetReorderPoint(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	var req dto.SetReorderPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := h.ledgerUC.SetReorderPoint(r.Context(), req.ToUseCaseInput(tenantID, chi.URLParam(r, "itemID"), chi.URLParam(r, "locationID")))
	if err != nil {
		writeDomainError(w, err, "failed to set reorder point")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// CheckConsistency compares every balance against its entry sum. Drift means
// a bug or manual interference; the response carries the offending keys.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	report, err := h.reconUC.VerifyProjection(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err, "failed to check consistency")
		return
	}

	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ProjectionReportFromUseCase(report))
}
