package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/metrics"
)

// OrderUseCase manages the order aggregate: creation inside an open session,
// line capture with server-side total recomputation, discounts, and void.
type OrderUseCase struct {
	txManager   TransactionManager
	orderRepo   OrderRepository
	sessionRepo SessionRepository
	paymentRepo PaymentRepository
	auditRepo   AuditRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	taxRateBps  int64
	metrics     *metrics.Metrics
}

// NewOrderUseCase creates a new OrderUseCase. taxRateBps is the tax rate in
// basis points applied to every line (0 disables tax).
func NewOrderUseCase(
	txManager TransactionManager,
	orderRepo OrderRepository,
	sessionRepo SessionRepository,
	paymentRepo PaymentRepository,
	auditRepo AuditRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	taxRateBps int64,
	metrics *metrics.Metrics,
) *OrderUseCase {
	return &OrderUseCase{
		txManager:   txManager,
		orderRepo:   orderRepo,
		sessionRepo: sessionRepo,
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		taxRateBps:  taxRateBps,
		metrics:     metrics,
	}
}

// CreateOrderInput represents input for opening an order.
type CreateOrderInput struct {
	TenantID  string
	SessionID string
	Number    string
}

// CreateOrder opens a new order inside an open register session. The order's
// site is inherited from the session.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.SessionID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	session, err := uc.sessionRepo.GetByID(txCtx, input.TenantID, input.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsOpen() {
		return nil, domain.ErrSessionClosed
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:        uc.idGen.Generate(),
		TenantID:  input.TenantID,
		SiteID:    session.SiteID,
		SessionID: session.ID,
		Number:    input.Number,
		Status:    domain.OrderStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if order.Number == "" {
		order.Number = "SO-" + order.ID
	}

	if err := uc.orderRepo.CreateTx(txCtx, tx, order); err != nil {
		return nil, err
	}

	audit := newAuditRecord(ctx, uc.idGen, input.TenantID, domain.AuditOrderCreated, uc.idGen.Generate(), domain.AuditDetail{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		SessionID:   session.ID,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.OrdersCreated.Inc()
	}

	return order, nil
}

// AddOrderLineInput represents input for adding one priced line.
type AddOrderLineInput struct {
	TenantID    string
	OrderID     string
	Kind        domain.OrderLineKind
	ItemID      string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   int64
}

// OrderLineResult carries the new line together with the recomputed order.
type OrderLineResult struct {
	Order *domain.Order
	Line  *domain.OrderLine
}

// AddLine appends a line to an open order and recomputes the order totals
// under the order's exclusive lock.
func (uc *OrderUseCase) AddLine(ctx context.Context, input AddOrderLineInput) (*OrderLineResult, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.OrderID); err != nil {
		return nil, err
	}

	if !input.Kind.IsValid() {
		return nil, domain.ErrUnknownLineKind
	}

	if input.Kind != domain.LineKindMisc {
		if err := domain.ValidateID(input.ItemID); err != nil {
			return nil, err
		}
	}

	if input.UnitPrice < 0 || input.UnitPrice > domain.MaxMoneyAmount {
		return nil, domain.ErrInvalidAmount
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	order, err := uc.orderRepo.GetByIDForUpdate(txCtx, tx, input.TenantID, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusOpen {
		return nil, domain.ErrOrderNotOpen
	}

	lineNo, err := uc.orderRepo.NextLineNo(txCtx, tx, order.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	line := &domain.OrderLine{
		ID:          uc.idGen.Generate(),
		OrderID:     order.ID,
		LineNo:      lineNo,
		Kind:        input.Kind,
		ItemID:      input.ItemID,
		Description: input.Description,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		CreatedAt:   now,
	}
	line.Compute(uc.taxRateBps)

	if err := line.Validate(); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.CreateLineTx(txCtx, tx, line); err != nil {
		return nil, err
	}

	lines, err := uc.orderRepo.ListLines(txCtx, order.ID)
	if err != nil {
		return nil, err
	}

	order.Recalculate(lines)
	order.UpdatedAt = now

	if err := uc.orderRepo.UpdateTotals(txCtx, tx, order); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &OrderLineResult{Order: order, Line: line}, nil
}

// ApplyDiscountInput represents input for setting an order-level discount.
type ApplyDiscountInput struct {
	TenantID string
	OrderID  string
	Discount int64
}

// ApplyDiscount sets the order-level discount and recomputes totals. The
// discount may not exceed subtotal plus tax, and may not push the total below
// what has already been captured.
func (uc *OrderUseCase) ApplyDiscount(ctx context.Context, input ApplyDiscountInput) (*domain.Order, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.OrderID); err != nil {
		return nil, err
	}

	if input.Discount < 0 || input.Discount > domain.MaxMoneyAmount {
		return nil, domain.ErrInvalidAmount
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	order, err := uc.orderRepo.GetByIDForUpdate(txCtx, tx, input.TenantID, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusOpen {
		return nil, domain.ErrOrderNotOpen
	}

	lines, err := uc.orderRepo.ListLines(txCtx, order.ID)
	if err != nil {
		return nil, err
	}

	order.DiscountTotal = input.Discount
	order.Recalculate(lines)

	if input.Discount > order.Subtotal+order.TaxTotal {
		return nil, domain.ErrDiscountExceedsTotal
	}

	captured, err := uc.paymentRepo.SumByOrderTx(txCtx, tx, order.ID, domain.PaymentStatusCaptured)
	if err != nil {
		return nil, err
	}

	refunded, err := uc.paymentRepo.SumByOrderTx(txCtx, tx, order.ID, domain.PaymentStatusRefunded)
	if err != nil {
		return nil, err
	}

	// The discounted total must still cover money already taken.
	if order.Total < captured-refunded {
		return nil, domain.ErrDiscountExceedsTotal
	}

	now := time.Now().UTC()
	order.UpdatedAt = now

	if err := uc.orderRepo.UpdateTotals(txCtx, tx, order); err != nil {
		return nil, err
	}

	audit := newAuditRecord(ctx, uc.idGen, input.TenantID, domain.AuditDiscountApplied, uc.idGen.Generate(), domain.AuditDetail{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Amount:      input.Discount,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return order, nil
}

// VoidOrder voids an open order. A paid order must be refunded instead, and
// an order holding captured money cannot be voided until it is refunded.
func (uc *OrderUseCase) VoidOrder(ctx context.Context, tenantID, orderID, reason string) (*domain.Order, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(orderID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	order, err := uc.orderRepo.GetByIDForUpdate(txCtx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == domain.OrderStatusPaid {
		return nil, domain.ErrOrderPaid
	}

	if !order.Status.CanTransitionTo(domain.OrderStatusVoid) {
		return nil, domain.ErrOrderNotOpen
	}

	captured, err := uc.paymentRepo.SumByOrderTx(txCtx, tx, order.ID, domain.PaymentStatusCaptured)
	if err != nil {
		return nil, err
	}

	refunded, err := uc.paymentRepo.SumByOrderTx(txCtx, tx, order.ID, domain.PaymentStatusRefunded)
	if err != nil {
		return nil, err
	}

	if captured-refunded > 0 {
		return nil, domain.ErrOrderHasPayments
	}

	now := time.Now().UTC()
	if err := uc.orderRepo.UpdateStatus(txCtx, tx, tenantID, orderID, domain.OrderStatusVoid, nil, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   order.ID,
		AggregateType: domain.AggregateTypeOrder,
		EventType:     domain.EventTypeOrderVoided,
		Payload: map[string]any{
			"order_id":     order.ID,
			"order_number": order.Number,
			"reason":       reason,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
		return nil, err
	}

	audit := newAuditRecord(ctx, uc.idGen, tenantID, domain.AuditOrderVoided, uc.idGen.Generate(), domain.AuditDetail{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		OrderStatus: string(domain.OrderStatusVoid),
		Reason:      reason,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.OrdersVoided.Inc()
	}

	order.Status = domain.OrderStatusVoid
	order.UpdatedAt = now

	return order, nil
}

// GetOrder retrieves an order by ID within the tenant scope.
func (uc *OrderUseCase) GetOrder(ctx context.Context, tenantID, orderID string) (*domain.Order, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(orderID); err != nil {
		return nil, err
	}

	return uc.orderRepo.GetByID(ctx, tenantID, orderID)
}

// ListOrderLines returns the lines of an order in line number order.
func (uc *OrderUseCase) ListOrderLines(ctx context.Context, tenantID, orderID string) ([]*domain.OrderLine, error) {
	order, err := uc.GetOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	return uc.orderRepo.ListLines(ctx, order.ID)
}

// ListOrdersBySessionInput represents input for listing a session's orders.
type ListOrdersBySessionInput struct {
	TenantID  string
	SessionID string
	Limit     int
	Offset    int
}

// ListOrdersBySession lists the orders opened in one register session.
func (uc *OrderUseCase) ListOrdersBySession(ctx context.Context, input ListOrdersBySessionInput) ([]*domain.Order, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.SessionID); err != nil {
		return nil, err
	}

	input.Limit, input.Offset = domain.ValidatePagination(input.Limit, input.Offset)

	return uc.orderRepo.ListBySession(ctx, input.TenantID, input.SessionID, input.Limit, input.Offset)
}
