package usecase

import (
	"context"
	"time"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/metrics"
)

// PaymentUseCase is the payment guard: every capture and refund runs under
// the order's exclusive lock, validates the monetary invariants against the
// committed payment sums, and writes payment, status change and audit record
// in one transaction.
type PaymentUseCase struct {
	txManager   TransactionManager
	orderRepo   OrderRepository
	paymentRepo PaymentRepository
	sessionRepo SessionRepository
	auditRepo   AuditRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	orderRepo OrderRepository,
	paymentRepo PaymentRepository,
	sessionRepo SessionRepository,
	auditRepo AuditRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// CapturePaymentInput represents input for capturing a payment.
type CapturePaymentInput struct {
	TenantID  string
	OrderID   string
	Method    domain.PaymentMethod
	Amount    int64
	Reference string
}

// CaptureResult carries the committed payment, the post-capture order state,
// the balance still owed and, for cash, the change to hand back.
type CaptureResult struct {
	Payment   *domain.Payment
	Order     *domain.Order
	Remaining int64
	ChangeDue int64
}

// CapturePayment captures a payment against an open order. A cash tender may
// exceed the remaining balance; only the remaining balance is captured and
// the excess is returned as ChangeDue. Any other method is rejected when the
// amount exceeds remaining. The order transitions to paid exactly once, when
// cumulative captures reach its total.
func (uc *PaymentUseCase) CapturePayment(ctx context.Context, input CapturePaymentInput) (*CaptureResult, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.OrderID); err != nil {
		return nil, err
	}

	if !input.Method.IsValid() {
		return nil, domain.ErrUnknownPaymentMethod
	}

	if err := domain.ValidateMoney(input.Amount); err != nil {
		return nil, err
	}

	start := time.Now()

	var result *CaptureResult
	operation := func() error {
		r, err := uc.capture(ctx, input)
		if err != nil {
			return err
		}
		result = r
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsCaptured.WithLabelValues(string(input.Method)).Inc()
		uc.metrics.PaymentAmount.Observe(float64(result.Payment.Amount))
		uc.metrics.CaptureDuration.Observe(time.Since(start).Seconds())
		if result.Order.Status == domain.OrderStatusPaid {
			uc.metrics.OrderTotal.Observe(float64(result.Order.Total))
		}
	}

	return result, nil
}

func (uc *PaymentUseCase) capture(ctx context.Context, input CapturePaymentInput) (*CaptureResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// The order row is the single lock boundary; concurrent captures on the
	// same order serialize here.
	order, err := uc.orderRepo.GetByIDForUpdate(txCtx, tx, input.TenantID, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusOpen {
		return nil, domain.ErrOrderNotOpen
	}

	session, err := uc.sessionRepo.GetByID(txCtx, input.TenantID, order.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsOpen() {
		return nil, domain.ErrSessionClosed
	}

	captured, err := uc.paymentRepo.SumByOrderTx(txCtx, tx, order.ID, domain.PaymentStatusCaptured)
	if err != nil {
		return nil, err
	}

	remaining := order.Total - captured
	if remaining <= 0 {
		return nil, domain.ErrNothingToCapture
	}

	captureAmount := input.Amount
	var changeDue int64
	if input.Amount > remaining {
		if input.Method != domain.PaymentMethodCash {
			return nil, domain.ErrCaptureExceedsRemaining
		}
		// Cash over-tender: capture what is owed, hand back the rest.
		captureAmount = remaining
		changeDue = input.Amount - remaining
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:        uc.idGen.Generate(),
		TenantID:  input.TenantID,
		OrderID:   order.ID,
		Method:    input.Method,
		Amount:    captureAmount,
		Status:    domain.PaymentStatusCaptured,
		Reference: input.Reference,
		CreatedAt: now,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.CreateTx(txCtx, tx, payment); err != nil {
		return nil, err
	}

	newCaptured := captured + captureAmount
	if newCaptured >= order.Total {
		paidAt := now
		if err := uc.orderRepo.UpdateStatus(txCtx, tx, input.TenantID, order.ID, domain.OrderStatusPaid, &paidAt, now); err != nil {
			return nil, err
		}

		order.Status = domain.OrderStatusPaid
		order.PaidAt = &paidAt
		order.UpdatedAt = now

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   order.ID,
			AggregateType: domain.AggregateTypeOrder,
			EventType:     domain.EventTypeOrderPaid,
			Payload: map[string]any{
				"order_id":   order.ID,
				"session_id": order.SessionID,
				"total":      order.Total,
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
			return nil, err
		}
	}

	audit := newAuditRecord(ctx, uc.idGen, input.TenantID, domain.AuditPaymentCaptured, uc.idGen.Generate(), domain.AuditDetail{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		OrderStatus: string(order.Status),
		Method:      string(input.Method),
		Amount:      captureAmount,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &CaptureResult{
		Payment:   payment,
		Order:     order,
		Remaining: order.Total - newCaptured,
		ChangeDue: changeDue,
	}, nil
}

// RefundPaymentInput represents input for refunding captured money.
type RefundPaymentInput struct {
	TenantID string
	OrderID  string
	Method   domain.PaymentMethod
	Amount   int64
	Reason   string
}

// RefundResult carries the refund row, the post-refund order state and the
// amount still refundable.
type RefundResult struct {
	Payment    *domain.Payment
	Order      *domain.Order
	Refundable int64
}

// RefundPayment refunds captured money. The refund may never exceed captured
// minus already refunded; the order transitions to refunded once cumulative
// refunds reach cumulative captures.
func (uc *PaymentUseCase) RefundPayment(ctx context.Context, input RefundPaymentInput) (*RefundResult, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.OrderID); err != nil {
		return nil, err
	}

	if !input.Method.IsValid() {
		return nil, domain.ErrUnknownPaymentMethod
	}

	if err := domain.ValidateMoney(input.Amount); err != nil {
		return nil, err
	}

	start := time.Now()

	var result *RefundResult
	operation := func() error {
		r, err := uc.refund(ctx, input)
		if err != nil {
			return err
		}
		result = r
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRefunded.WithLabelValues(string(input.Method)).Inc()
		uc.metrics.CaptureDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func (uc *PaymentUseCase) refund(ctx context.Context, input RefundPaymentInput) (*RefundResult, error) {
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

	captured, err := uc.paymentRepo.SumByOrderTx(txCtx, tx, order.ID, domain.PaymentStatusCaptured)
	if err != nil {
		return nil, err
	}

	refunded, err := uc.paymentRepo.SumByOrderTx(txCtx, tx, order.ID, domain.PaymentStatusRefunded)
	if err != nil {
		return nil, err
	}

	refundable := captured - refunded
	if input.Amount > refundable {
		return nil, domain.ErrRefundExceedsRefundable
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:        uc.idGen.Generate(),
		TenantID:  input.TenantID,
		OrderID:   order.ID,
		Method:    input.Method,
		Amount:    input.Amount,
		Status:    domain.PaymentStatusRefunded,
		Reference: input.Reason,
		CreatedAt: now,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.CreateTx(txCtx, tx, payment); err != nil {
		return nil, err
	}

	newRefunded := refunded + input.Amount
	if newRefunded >= captured && order.Status.CanTransitionTo(domain.OrderStatusRefunded) {
		if err := uc.orderRepo.UpdateStatus(txCtx, tx, input.TenantID, order.ID, domain.OrderStatusRefunded, order.PaidAt, now); err != nil {
			return nil, err
		}

		order.Status = domain.OrderStatusRefunded
		order.UpdatedAt = now

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   order.ID,
			AggregateType: domain.AggregateTypeOrder,
			EventType:     domain.EventTypeOrderRefunded,
			Payload: map[string]any{
				"order_id": order.ID,
				"refunded": newRefunded,
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
			return nil, err
		}
	}

	audit := newAuditRecord(ctx, uc.idGen, input.TenantID, domain.AuditPaymentRefunded, uc.idGen.Generate(), domain.AuditDetail{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		OrderStatus: string(order.Status),
		Method:      string(input.Method),
		Amount:      input.Amount,
		Reason:      input.Reason,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &RefundResult{
		Payment:    payment,
		Order:      order,
		Refundable: captured - newRefunded,
	}, nil
}

// ListPayments returns every payment row of an order, captures and refunds
// alike, oldest first.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, tenantID, orderID string) ([]*domain.Payment, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(orderID); err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	return uc.paymentRepo.ListByOrder(ctx, tenantID, order.ID)
}
