package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlis/posledger/internal/adapter/http/dto"
	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/usecase"
)

type countingServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateSheetInput) (*domain.CountSheet, error)
	addLineFn    func(ctx context.Context, input usecase.AddLineInput) (*domain.CountLine, error)
	approveFn    func(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error)
	postFn       func(ctx context.Context, tenantID, sheetID string) (*usecase.PostResult, error)
	voidFn       func(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error)
	getFn        func(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error)
	listLinesFn  func(ctx context.Context, tenantID, sheetID string) ([]*domain.CountLine, error)
	listSheetsFn func(ctx context.Context, input usecase.ListSheetsInput) ([]*domain.CountSheet, error)
}

func (s *countingServiceStub) CreateSheet(ctx context.Context, input usecase.CreateSheetInput) (*domain.CountSheet, error) {
	return s.createFn(ctx, input)
}

func (s *countingServiceStub) AddLine(ctx context.Context, input usecase.AddLineInput) (*domain.CountLine, error) {
	return s.addLineFn(ctx, input)
}

func (s *countingServiceStub) ApproveSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
	return s.approveFn(ctx, tenantID, sheetID)
}

func (s *countingServiceStub) PostSheet(ctx context.Context, tenantID, sheetID string) (*usecase.PostResult, error) {
	return s.postFn(ctx, tenantID, sheetID)
}

func (s *countingServiceStub) VoidSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
	return s.voidFn(ctx, tenantID, sheetID)
}

func (s *countingServiceStub) GetSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
	return s.getFn(ctx, tenantID, sheetID)
}

func (s *countingServiceStub) ListLines(ctx context.Context, tenantID, sheetID string) ([]*domain.CountLine, error) {
	return s.listLinesFn(ctx, tenantID, sheetID)
}

func (s *countingServiceStub) ListSheets(ctx context.Context, input usecase.ListSheetsInput) ([]*domain.CountSheet, error) {
	return s.listSheetsFn(ctx, input)
}

// withActor attaches an authenticated actor, standing in for auth middleware.
func withActor(r *http.Request, role domain.Role) *http.Request {
	actor := &domain.Actor{ID: "actor-1", TenantID: "tenant-1", Role: role}
	return r.WithContext(domain.ContextWithActor(r.Context(), actor))
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestCountingHandler_Create_Success(t *testing.T) {
	sheet := &domain.CountSheet{
		ID:     "sheet-1",
		Number: "CS-1",
		Status: domain.SheetStatusDraft,
	}

	var captured usecase.CreateSheetInput
	handler := NewCountingHandler(&countingServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateSheetInput) (*domain.CountSheet, error) {
			captured = input
			return sheet, nil
		},
	})

	body, _ := json.Marshal(dto.CreateSheetRequest{Number: "CS-1", Notes: "monthly"})

	req := httptest.NewRequest(http.MethodPost, "/counts", bytes.NewReader(body))
	req = withActor(req, domain.RoleCashier)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.TenantID != "tenant-1" || captured.Number != "CS-1" {
		t.Fatalf("expected tenant from actor and number from body, got %+v", captured)
	}

	var resp dto.CountSheetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "sheet-1" || resp.Status != "draft" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCountingHandler_Create_MissingActor(t *testing.T) {
	handler := NewCountingHandler(&countingServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateSheetInput) (*domain.CountSheet, error) {
			t.Fatal("CreateSheet should not be called without an actor")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/counts", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCountingHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewCountingHandler(&countingServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateSheetInput) (*domain.CountSheet, error) {
			t.Fatal("CreateSheet should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/counts", bytes.NewBufferString("{invalid json"))
	req = withActor(req, domain.RoleCashier)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCountingHandler_AddLine_ScopesFromPath(t *testing.T) {
	var captured usecase.AddLineInput
	handler := NewCountingHandler(&countingServiceStub{
		addLineFn: func(ctx context.Context, input usecase.AddLineInput) (*domain.CountLine, error) {
			captured = input
			return &domain.CountLine{ID: "line-1", SheetID: input.SheetID}, nil
		},
	})

	body, _ := json.Marshal(dto.AddCountLineRequest{ItemID: "item-1", LocationID: "loc-1"})

	req := httptest.NewRequest(http.MethodPost, "/counts/sheet-1/lines", bytes.NewReader(body))
	req = withActor(req, domain.RoleCashier)
	req = setChiURLParam(req, "id", "sheet-1")
	rec := httptest.NewRecorder()

	handler.AddLine(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.SheetID != "sheet-1" || captured.TenantID != "tenant-1" {
		t.Fatalf("expected sheet from path and tenant from actor, got %+v", captured)
	}
}

func TestCountingHandler_Post_Success(t *testing.T) {
	handler := NewCountingHandler(&countingServiceStub{
		postFn: func(ctx context.Context, tenantID, sheetID string) (*usecase.PostResult, error) {
			if tenantID != "tenant-1" || sheetID != "sheet-1" {
				t.Fatalf("unexpected scoping: %s %s", tenantID, sheetID)
			}
			return &usecase.PostResult{
				Sheet:         &domain.CountSheet{ID: sheetID, Status: domain.SheetStatusPosted},
				CorrelationID: "corr-1",
				LineCount:     3,
				PostedCount:   2,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/counts/sheet-1/post", nil)
	req = withActor(req, domain.RoleManager)
	req = setChiURLParam(req, "id", "sheet-1")
	rec := httptest.NewRecorder()

	handler.Post(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PostSheetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CorrelationID != "corr-1" || resp.LineCount != 3 || resp.PostedCount != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Sheet.Status != "posted" {
		t.Fatalf("expected posted sheet, got %+v", resp.Sheet)
	}
}

func TestCountingHandler_Post_NotApproved(t *testing.T) {
	handler := NewCountingHandler(&countingServiceStub{
		postFn: func(ctx context.Context, tenantID, sheetID string) (*usecase.PostResult, error) {
			return nil, domain.ErrSheetNotApproved
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/counts/sheet-1/post", nil)
	req = withActor(req, domain.RoleManager)
	req = setChiURLParam(req, "id", "sheet-1")
	rec := httptest.NewRecorder()

	handler.Post(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Code != domain.CodeSheetNotApproved {
		t.Fatalf("expected code %q, got %q", domain.CodeSheetNotApproved, resp.Code)
	}
}

func TestCountingHandler_Get_NotFound(t *testing.T) {
	handler := NewCountingHandler(&countingServiceStub{
		getFn: func(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
			return nil, domain.ErrSheetNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/counts/missing", nil)
	req = withActor(req, domain.RoleCashier)
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCountingHandler_List_PassesStatusFilter(t *testing.T) {
	handler := NewCountingHandler(&countingServiceStub{
		listSheetsFn: func(ctx context.Context, input usecase.ListSheetsInput) ([]*domain.CountSheet, error) {
			if input.Status != domain.SheetStatusApproved {
				t.Fatalf("expected status filter approved, got %q", input.Status)
			}
			if input.Limit != 5 || input.Offset != 2 {
				t.Fatalf("expected limit=5 offset=2, got %+v", input)
			}
			return []*domain.CountSheet{{ID: "sheet-1"}, {ID: "sheet-2"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/counts?status=approved&limit=5&offset=2", nil)
	req = withActor(req, domain.RoleCashier)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListSheetsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Sheets) != 2 || resp.Total != 2 {
		t.Fatalf("expected 2 sheets, got %+v", resp)
	}
}
