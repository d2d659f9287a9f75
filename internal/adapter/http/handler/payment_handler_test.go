package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkarlis/posledger/internal/adapter/http/dto"
	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/usecase"
)

type paymentServiceStub struct {
	captureFn func(ctx context.Context, input usecase.CapturePaymentInput) (*usecase.CaptureResult, error)
	refundFn  func(ctx context.Context, input usecase.RefundPaymentInput) (*usecase.RefundResult, error)
	listFn    func(ctx context.Context, tenantID, orderID string) ([]*domain.Payment, error)
}

func (s *paymentServiceStub) CapturePayment(ctx context.Context, input usecase.CapturePaymentInput) (*usecase.CaptureResult, error) {
	return s.captureFn(ctx, input)
}

func (s *paymentServiceStub) RefundPayment(ctx context.Context, input usecase.RefundPaymentInput) (*usecase.RefundResult, error) {
	return s.refundFn(ctx, input)
}

func (s *paymentServiceStub) ListPayments(ctx context.Context, tenantID, orderID string) ([]*domain.Payment, error) {
	return s.listFn(ctx, tenantID, orderID)
}

func TestPaymentHandler_Capture_CashChange(t *testing.T) {
	var captured usecase.CapturePaymentInput
	handler := NewPaymentHandler(&paymentServiceStub{
		captureFn: func(ctx context.Context, input usecase.CapturePaymentInput) (*usecase.CaptureResult, error) {
			captured = input
			return &usecase.CaptureResult{
				Payment:   &domain.Payment{ID: "pay-1", Method: domain.PaymentMethodCash, Amount: 770, Status: domain.PaymentStatusCaptured},
				Order:     &domain.Order{ID: "order-1", Status: domain.OrderStatusPaid, Total: 770},
				Remaining: 0,
				ChangeDue: 230,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CapturePaymentRequest{Method: domain.PaymentMethodCash, Amount: 1000})

	req := httptest.NewRequest(http.MethodPost, "/orders/order-1/payments", bytes.NewReader(body))
	req = withActor(req, domain.RoleCashier)
	req = setChiURLParam(req, "id", "order-1")
	rec := httptest.NewRecorder()

	handler.Capture(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.OrderID != "order-1" || captured.TenantID != "tenant-1" || captured.Amount != 1000 {
		t.Fatalf("expected order from path and amount from body, got %+v", captured)
	}

	var resp dto.CapturePaymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ChangeDue != 230 || resp.Remaining != 0 {
		t.Fatalf("expected change 230 and no remaining, got %+v", resp)
	}
	if resp.Order.Status != "paid" {
		t.Fatalf("expected paid order, got %+v", resp.Order)
	}
}

func TestPaymentHandler_Capture_ExceedsRemaining(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		captureFn: func(ctx context.Context, input usecase.CapturePaymentInput) (*usecase.CaptureResult, error) {
			return nil, domain.ErrCaptureExceedsRemaining
		},
	})

	body, _ := json.Marshal(dto.CapturePaymentRequest{Method: domain.PaymentMethodCard, Amount: 5000})

	req := httptest.NewRequest(http.MethodPost, "/orders/order-1/payments", bytes.NewReader(body))
	req = withActor(req, domain.RoleCashier)
	req = setChiURLParam(req, "id", "order-1")
	rec := httptest.NewRecorder()

	handler.Capture(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Code != domain.CodeCaptureExceedsRemain {
		t.Fatalf("expected code %q, got %q", domain.CodeCaptureExceedsRemain, resp.Code)
	}
}

func TestPaymentHandler_Refund_Success(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		refundFn: func(ctx context.Context, input usecase.RefundPaymentInput) (*usecase.RefundResult, error) {
			return &usecase.RefundResult{
				Payment:    &domain.Payment{ID: "pay-2", Method: input.Method, Amount: input.Amount, Status: domain.PaymentStatusRefunded},
				Order:      &domain.Order{ID: input.OrderID, Status: domain.OrderStatusPaid},
				Refundable: 270,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.RefundPaymentRequest{Method: domain.PaymentMethodCash, Amount: 500, Reason: "damaged item"})

	req := httptest.NewRequest(http.MethodPost, "/orders/order-1/refunds", bytes.NewReader(body))
	req = withActor(req, domain.RoleCashier)
	req = setChiURLParam(req, "id", "order-1")
	rec := httptest.NewRecorder()

	handler.Refund(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RefundPaymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Payment.Status != "refunded" || resp.Refundable != 270 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPaymentHandler_List(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		listFn: func(ctx context.Context, tenantID, orderID string) ([]*domain.Payment, error) {
			if tenantID != "tenant-1" || orderID != "order-1" {
				t.Fatalf("unexpected scoping: %s %s", tenantID, orderID)
			}
			return []*domain.Payment{
				{ID: "pay-1", Status: domain.PaymentStatusCaptured},
				{ID: "pay-2", Status: domain.PaymentStatusRefunded},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/order-1/payments", nil)
	req = withActor(req, domain.RoleCashier)
	req = setChiURLParam(req, "id", "order-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListPaymentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(resp.Payments))
	}
}
