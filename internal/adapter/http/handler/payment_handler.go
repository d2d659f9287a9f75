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

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	CapturePayment(ctx context.Context, input usecase.CapturePaymentInput) (*usecase.CaptureResult, error)
	RefundPayment(ctx context.Context, input usecase.RefundPaymentInput) (*usecase.RefundResult, error)
	ListPayments(ctx context.Context, tenantID, orderID string) ([]*domain.Payment, error)
}

// PaymentHandler handles payment HTTP requests. Payments are always scoped
// to an order.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Capture captures a payment against an open order.
func (h *PaymentHandler) Capture(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	orderID := chi.URLParam(r, "id")

	var req dto.CapturePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.paymentUC.CapturePayment(r.Context(), req.ToUseCaseInput(tenantID, orderID))
	if err != nil {
		writeDomainError(w, err, "failed to capture payment")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CaptureResultFromUseCase(result))
}

// Refund refunds captured money on an order.
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	orderID := chi.URLParam(r, "id")

	var req dto.RefundPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.paymentUC.RefundPayment(r.Context(), req.ToUseCaseInput(tenantID, orderID))
	if err != nil {
		writeDomainError(w, err, "failed to refund payment")
		return
	}

	writeJSON(w, http.StatusCreated, dto.RefundResultFromUseCase(result))
}

// List lists all payment rows of one order, captures and refunds alike.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	orderID := chi.URLParam(r, "id")

	payments, err := h.paymentUC.ListPayments(r.Context(), tenantID, orderID)
	if err != nil {
		writeDomainError(w, err, "failed to list payments")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPaymentsResponse{
		Payments: dto.PaymentsFromDomain(payments),
		Total:    int64(len(payments)),
	})
}
