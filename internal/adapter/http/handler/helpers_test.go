package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mkarlis/posledger/internal/adapter/http/dto"
	"github.com/mkarlis/posledger/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/counts?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/counts?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"sheet not found", domain.ErrSheetNotFound, http.StatusNotFound},
		{"order not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"balance not found", domain.ErrBalanceNotFound, http.StatusNotFound},
		{"sheet not approved", domain.ErrSheetNotApproved, http.StatusConflict},
		{"order not open", domain.ErrOrderNotOpen, http.StatusConflict},
		{"session already open", domain.ErrSessionAlreadyOpen, http.StatusConflict},
		{"contention", domain.ErrContention, http.StatusConflict},
		{"capture exceeds remaining", domain.ErrCaptureExceedsRemaining, http.StatusUnprocessableEntity},
		{"refund exceeds refundable", domain.ErrRefundExceedsRefundable, http.StatusUnprocessableEntity},
		{"invalid quantity", domain.ErrInvalidQuantity, http.StatusBadRequest},
		{"unknown movement kind", domain.ErrUnknownMovementKind, http.StatusBadRequest},
		{"tenant mismatch", domain.ErrTenantMismatch, http.StatusForbidden},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}

func TestWriteDomainErrorCarriesCode(t *testing.T) {
	rr := httptest.NewRecorder()

	writeDomainError(rr, domain.ErrSessionAlreadyOpen, "failed to open session")

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Code != domain.CodeSessionAlreadyOpen {
		t.Fatalf("expected code %q, got %q", domain.CodeSessionAlreadyOpen, resp.Code)
	}
	if resp.Error != "failed to open session" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
