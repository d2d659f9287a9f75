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

// CountingService defines the behavior needed by CountingHandler.
type CountingService interface {
	CreateSheet(ctx context.Context, input usecase.CreateSheetInput) (*domain.CountSheet, error)
	AddLine(ctx context.Context, input usecase.AddLineInput) (*domain.CountLine, error)
	ApproveSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error)
	PostSheet(ctx context.Context, tenantID, sheetID string) (*usecase.PostResult, error)
	VoidSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error)
	GetSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error)
	ListLines(ctx context.Context, tenantID, sheetID string) ([]*domain.CountLine, error)
	ListSheets(ctx context.Context, input usecase.ListSheetsInput) ([]*domain.CountSheet, error)
}

// CountingHandler handles count sheet HTTP requests.
type CountingHandler struct {
	countingUC CountingService
}

// NewCountingHandler creates a new CountingHandler.
func NewCountingHandler(countingUC CountingService) *CountingHandler {
	return &CountingHandler{countingUC: countingUC}
}

// Create creates a count sheet in draft status.
func (h *CountingHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	var req dto.CreateSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sheet, err := h.countingUC.CreateSheet(r.Context(), req.ToUseCaseInput(tenantID))
	if err != nil {
		writeDomainError(w, err, "failed to create count sheet")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CountSheetFromDomain(sheet))
}

// Get retrieves a count sheet by ID.
func (h *CountingHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sheetID := chi.URLParam(r, "id")

	sheet, err := h.countingUC.GetSheet(r.Context(), tenantID, sheetID)
	if err != nil {
		writeDomainError(w, err, "failed to get count sheet")
		return
	}

	writeJSON(w, http.StatusOK, dto.CountSheetFromDomain(sheet))
}

// List lists count sheets, optionally narrowed to one status.
func (h *CountingHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sheets, err := h.countingUC.ListSheets(r.Context(), usecase.ListSheetsInput{
		TenantID: tenantID,
		Status:   domain.CountSheetStatus(r.URL.Query().Get("status")),
		Limit:    parseIntQuery(r, "limit", 50),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err, "failed to list count sheets")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSheetsResponse{
		Sheets: dto.CountSheetsFromDomain(sheets),
		Total:  int64(len(sheets)),
	})
}

// AddLine attaches one counted line to a sheet.
func (h *CountingHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sheetID := chi.URLParam(r, "id")

	var req dto.AddCountLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	line, err := h.countingUC.AddLine(r.Context(), req.ToUseCaseInput(tenantID, sheetID))
	if err != nil {
		writeDomainError(w, err, "failed to add count line")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CountLineFromDomain(line))
}

// ListLines lists all lines of one sheet.
func (h *CountingHandler) ListLines(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sheetID := chi.URLParam(r, "id")

	lines, err := h.countingUC.ListLines(r.Context(), tenantID, sheetID)
	if err != nil {
		writeDomainError(w, err, "failed to list count lines")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListCountLinesResponse{
		Lines: dto.CountLinesFromDomain(lines),
		Total: int64(len(lines)),
	})
}

// Approve moves a draft sheet to approved.
func (h *CountingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sheetID := chi.URLParam(r, "id")

	sheet, err := h.countingUC.ApproveSheet(r.Context(), tenantID, sheetID)
	if err != nil {
		writeDomainError(w, err, "failed to approve count sheet")
		return
	}

	writeJSON(w, http.StatusOK, dto.CountSheetFromDomain(sheet))
}

// Post posts an approved sheet, turning variances into ledger entries.
func (h *CountingHandler) Post(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sheetID := chi.URLParam(r, "id")

	result, err := h.countingUC.PostSheet(r.Context(), tenantID, sheetID)
	if err != nil {
		writeDomainError(w, err, "failed to post count sheet")
		return
	}

	writeJSON(w, http.StatusOK, dto.PostResultFromUseCase(result))
}

// Void voids a draft or approved sheet.
func (h *CountingHandler) Void(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sheetID := chi.URLParam(r, "id")

	sheet, err := h.countingUC.VoidSheet(r.Context(), tenantID, sheetID)
	if err != nil {
		writeDomainError(w, err, "failed to void count sheet")
		return
	}

	writeJSON(w, http.StatusOK, dto.CountSheetFromDomain(sheet))
}
