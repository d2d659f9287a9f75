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

// SessionService defines the behavior needed by SessionHandler.
type SessionService interface {
	OpenSession(ctx context.Context, input usecase.OpenSessionInput) (*domain.RegisterSession, error)
	CloseSession(ctx context.Context, tenantID, sessionID string) (*domain.RegisterSession, error)
	GetSession(ctx context.Context, tenantID, sessionID string) (*domain.RegisterSession, error)
	GetSummary(ctx context.Context, tenantID, sessionID string) (*domain.SessionSummary, error)
}

// SessionHandler handles register session HTTP requests.
type SessionHandler struct {
	sessionUC SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionUC SessionService) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC}
}

// Open opens a register session for a site. At most one session per site may
// be open.
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	var req dto.OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.sessionUC.OpenSession(r.Context(), req.ToUseCaseInput(tenantID))
	if err != nil {
		writeDomainError(w, err, "failed to open session")
		return
	}

	writeJSON(w, http.StatusCreated, dto.SessionFromDomain(session))
}

// Get retrieves a register session by ID.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sessionID := chi.URLParam(r, "id")

	session, err := h.sessionUC.GetSession(r.Context(), tenantID, sessionID)
	if err != nil {
		writeDomainError(w, err, "failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// Close closes an open register session. Closing is terminal.
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sessionID := chi.URLParam(r, "id")

	session, err := h.sessionUC.CloseSession(r.Context(), tenantID, sessionID)
	if err != nil {
		writeDomainError(w, err, "failed to close session")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// Summary returns the committed money summary of one session.
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sessionID := chi.URLParam(r, "id")

	summary, err := h.sessionUC.GetSummary(r.Context(), tenantID, sessionID)
	if err != nil {
		writeDomainError(w, err, "failed to summarize session")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionSummaryFromDomain(summary))
}
