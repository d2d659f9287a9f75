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

// OrderService defines the behavior needed by OrderHandler.
type OrderService interface {
	CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*domain.Order, error)
	AddLine(ctx context.Context, input usecase.AddOrderLineInput) (*usecase.OrderLineResult, error)
	ApplyDiscount(ctx context.Context, input usecase.ApplyDiscountInput) (*domain.Order, error)
	VoidOrder(ctx context.Context, tenantID, orderID, reason string) (*domain.Order, error)
	GetOrder(ctx context.Context, tenantID, orderID string) (*domain.Order, error)
	ListOrderLines(ctx context.Context, tenantID, orderID string) ([]*domain.OrderLine, error)
	ListOrdersBySession(ctx context.Context, input usecase.ListOrdersBySessionInput) ([]*domain.Order, error)
}

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	orderUC OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderUC OrderService) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

// Create opens a new order inside an open register session.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	order, err := h.orderUC.CreateOrder(r.Context(), req.ToUseCaseInput(tenantID))
	if err != nil {
		writeDomainError(w, err, "failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderFromDomain(order))
}

// Get retrieves an order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	orderID := chi.URLParam(r, "id")

	order, err := h.orderUC.GetOrder(r.Context(), tenantID, orderID)
	if err != nil {
		writeDomainError(w, err, "failed to get order")
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// AddLine appends a line to an open order and returns the recomputed order.
func (h *OrderHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	orderID := chi.URLParam(r, "id")

	var req dto.AddOrderLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.orderUC.AddLine(r.Context(), req.ToUseCaseInput(tenantID, orderID))
	if err != nil {
		writeDomainError(w, err, "failed to add order line")
		return
	}

	writeJSON(w, http.StatusCreated, dto.AddOrderLineResponse{
		Order: dto.OrderFromDomain(result.Order),
		Line:  dto.OrderLineFromDomain(result.Line),
	})
}

// ListLines lists all lines of one order.
func (h *OrderHandler) ListLines(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	orderID := chi.URLParam(r, "id")

	lines, err := h.orderUC.ListOrderLines(r.Context(), tenantID, orderID)
	if err != nil {
		writeDomainError(w, err, "failed to list order lines")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListOrderLinesResponse{
		Lines: dto.OrderLinesFromDomain(lines),
		Total: int64(len(lines)),
	})
}

// ApplyDiscount sets the order-level discount and returns the recomputed
// order.
func (h *OrderHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	orderID := chi.URLParam(r, "id")

	var req dto.ApplyDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	order, err := h.orderUC.ApplyDiscount(r.Context(), req.ToUseCaseInput(tenantID, orderID))
	if err != nil {
		writeDomainError(w, err, "failed to apply discount")
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// Void voids an open order. Orders with captured payments must be refunded
// first.
func (h *OrderHandler) Void(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	orderID := chi.URLParam(r, "id")

	var req dto.VoidOrderRequest
	if r.Body != nil {
		// Body is optional for void; a bare POST voids without a reason.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	order, err := h.orderUC.VoidOrder(r.Context(), tenantID, orderID, req.Reason)
	if err != nil {
		writeDomainError(w, err, "failed to void order")
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// ListBySession lists the orders opened in one register session.
func (h *OrderHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	sessionID := chi.URLParam(r, "id")

	orders, err := h.orderUC.ListOrdersBySession(r.Context(), usecase.ListOrdersBySessionInput{
		TenantID:  tenantID,
		SessionID: sessionID,
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err, "failed to list session orders")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListOrdersResponse{
		Orders: dto.OrdersFromDomain(orders),
		Total:  int64(len(orders)),
	})
}
