package integration

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/adapter/repository/postgres"
	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/usecase"
	"github.com/mkarlis/posledger/tests/testutil"
)

func TestTenantIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := testutil.ActorContext("tenant-1", "mgr-1", domain.RoleManager)

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	sheetRepo := postgres.NewCountSheetRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	countingUC := usecase.NewCountingUseCase(txManager, sheetRepo, balanceRepo, ledgerRepo, auditRepo, outboxRepo, idGen, retrier, nil)
	ledgerUC := usecase.NewLedgerUseCase(txManager, ledgerRepo, balanceRepo, auditRepo, outboxRepo, idGen, nil)

	testDB.TruncateAll(ctx)

	sheet, err := countingUC.CreateSheet(ctx, usecase.CreateSheetInput{
		TenantID: "tenant-1",
		Number:   "CS-ISO-1",
	})
	if err != nil {
		t.Fatalf("failed to create sheet: %v", err)
	}

	testDB.SeedStock(ctx, "tenant-1", "itm-flour", "loc-main", "", decimal.NewFromInt(100))

	// The same IDs under another tenant resolve to nothing.
	if _, err := countingUC.GetSheet(ctx, "tenant-2", sheet.ID); !errors.Is(err, domain.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound across tenants, got %v", err)
	}
	if _, err := countingUC.ApproveSheet(ctx, "tenant-2", sheet.ID); !errors.Is(err, domain.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound approving across tenants, got %v", err)
	}
	if _, err := ledgerUC.GetBalance(ctx, domain.BalanceKey{
		TenantID:   "tenant-2",
		ItemID:     "itm-flour",
		LocationID: "loc-main",
	}); !errors.Is(err, domain.ErrBalanceNotFound) {
		t.Fatalf("expected ErrBalanceNotFound across tenants, got %v", err)
	}

	// Each tenant keeps its own balance for identical keys.
	testDB.SeedStock(ctx, "tenant-2", "itm-flour", "loc-main", "", decimal.NewFromInt(7))

	mine, err := ledgerUC.GetBalance(ctx, domain.BalanceKey{
		TenantID:   "tenant-1",
		ItemID:     "itm-flour",
		LocationID: "loc-main",
	})
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if !mine.Quantity.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected tenant-1 balance 100, got %s", mine.Quantity)
	}

	theirs, err := ledgerUC.GetBalance(ctx, domain.BalanceKey{
		TenantID:   "tenant-2",
		ItemID:     "itm-flour",
		LocationID: "loc-main",
	})
	if err != nil {
		t.Fatalf("failed to get tenant-2 balance: %v", err)
	}
	if !theirs.Quantity.Equal(decimal.NewFromInt(7)) {
		t.Errorf("expected tenant-2 balance 7, got %s", theirs.Quantity)
	}
}

func TestOrderTotalsWithTax(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := testutil.ActorContext("tenant-1", "cashier-1", domain.RoleCashier)

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	sessionUC := usecase.NewSessionUseCase(txManager, sessionRepo, auditRepo, outboxRepo, idGen, nil, nil)
	// 8.25% sales tax.
	orderUC := usecase.NewOrderUseCase(txManager, orderRepo, sessionRepo, paymentRepo, auditRepo, outboxRepo, idGen, 825, nil)

	testDB.TruncateAll(ctx)

	session, err := sessionUC.OpenSession(ctx, usecase.OpenSessionInput{
		TenantID: "tenant-1",
		SiteID:   "site-1",
	})
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}

	order, err := orderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		TenantID:  "tenant-1",
		SessionID: session.ID,
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	// 1000 at 825 bps is 82.5, rounded half away from zero to 83.
	result, err := orderUC.AddLine(ctx, usecase.AddOrderLineInput{
		TenantID:  "tenant-1",
		OrderID:   order.ID,
		Kind:      domain.LineKindMisc,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 1000,
	})
	if err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if result.Line.TaxAmount != 83 {
		t.Errorf("expected line tax 83, got %d", result.Line.TaxAmount)
	}
	if result.Order.Subtotal != 1000 {
		t.Errorf("expected subtotal 1000, got %d", result.Order.Subtotal)
	}
	if result.Order.TaxTotal != 83 {
		t.Errorf("expected tax total 83, got %d", result.Order.TaxTotal)
	}
	if result.Order.Total != 1083 {
		t.Errorf("expected total 1083, got %d", result.Order.Total)
	}

	// Fractional quantities price by quantity times unit price.
	result, err = orderUC.AddLine(ctx, usecase.AddOrderLineInput{
		TenantID:  "tenant-1",
		OrderID:   order.ID,
		Kind:      domain.LineKindStockItem,
		ItemID:    "itm-cheese",
		Quantity:  decimal.RequireFromString("0.250"),
		UnitPrice: 1998,
	})
	if err != nil {
		t.Fatalf("failed to add weighed line: %v", err)
	}
	// 0.250 × 1998 = 499.5 → 500; tax 500 × 0.0825 = 41.25 → 41.
	if result.Line.Subtotal != 500 {
		t.Errorf("expected weighed subtotal 500, got %d", result.Line.Subtotal)
	}
	if result.Line.TaxAmount != 41 {
		t.Errorf("expected weighed tax 41, got %d", result.Line.TaxAmount)
	}
	if result.Order.Total != 1083+541 {
		t.Errorf("expected order total %d, got %d", 1083+541, result.Order.Total)
	}
}

func TestDiscountRules(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := testutil.ActorContext("tenant-1", "mgr-1", domain.RoleManager)

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	sessionUC := usecase.NewSessionUseCase(txManager, sessionRepo, auditRepo, outboxRepo, idGen, nil, nil)
	orderUC := usecase.NewOrderUseCase(txManager, orderRepo, sessionRepo, paymentRepo, auditRepo, outboxRepo, idGen, 0, nil)
	paymentUC := usecase.NewPaymentUseCase(txManager, orderRepo, paymentRepo, sessionRepo, auditRepo, outboxRepo, idGen, retrier, nil)

	testDB.TruncateAll(ctx)

	session, err := sessionUC.OpenSession(ctx, usecase.OpenSessionInput{
		TenantID: "tenant-1",
		SiteID:   "site-1",
	})
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}

	order, err := orderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		TenantID:  "tenant-1",
		SessionID: session.ID,
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	if _, err := orderUC.AddLine(ctx, usecase.AddOrderLineInput{
		TenantID:  "tenant-1",
		OrderID:   order.ID,
		Kind:      domain.LineKindMisc,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 1000,
	}); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}

	// The discount is capped by subtotal plus tax.
	if _, err := orderUC.ApplyDiscount(ctx, usecase.ApplyDiscountInput{
		TenantID: "tenant-1",
		OrderID:  order.ID,
		Discount: 1100,
	}); !errors.Is(err, domain.ErrDiscountExceedsTotal) {
		t.Fatalf("expected ErrDiscountExceedsTotal, got %v", err)
	}

	discounted, err := orderUC.ApplyDiscount(ctx, usecase.ApplyDiscountInput{
		TenantID: "tenant-1",
		OrderID:  order.ID,
		Discount: 200,
	})
	if err != nil {
		t.Fatalf("failed to apply discount: %v", err)
	}
	if discounted.DiscountTotal != 200 {
		t.Errorf("expected discount 200, got %d", discounted.DiscountTotal)
	}
	if discounted.Total != 800 {
		t.Errorf("expected total 800, got %d", discounted.Total)
	}

	// A later, smaller discount cannot undercut money already captured.
	if _, err := paymentUC.CapturePayment(ctx, usecase.CapturePaymentInput{
		TenantID: "tenant-1",
		OrderID:  order.ID,
		Method:   domain.PaymentMethodCard,
		Amount:   700,
	}); err != nil {
		t.Fatalf("failed to capture payment: %v", err)
	}
	if _, err := orderUC.ApplyDiscount(ctx, usecase.ApplyDiscountInput{
		TenantID: "tenant-1",
		OrderID:  order.ID,
		Discount: 400,
	}); !errors.Is(err, domain.ErrDiscountExceedsTotal) {
		t.Fatalf("expected ErrDiscountExceedsTotal below captured sum, got %v", err)
	}

	// Settle and lock: no discount changes on a paid order.
	if _, err := paymentUC.CapturePayment(ctx, usecase.CapturePaymentInput{
		TenantID: "tenant-1",
		OrderID:  order.ID,
		Method:   domain.PaymentMethodCash,
		Amount:   100,
	}); err != nil {
		t.Fatalf("failed to settle order: %v", err)
	}
	if _, err := orderUC.ApplyDiscount(ctx, usecase.ApplyDiscountInput{
		TenantID: "tenant-1",
		OrderID:  order.ID,
		Discount: 50,
	}); !errors.Is(err, domain.ErrOrderNotOpen) {
		t.Fatalf("expected ErrOrderNotOpen on paid order, got %v", err)
	}
}

func TestVoidOrderRules(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := testutil.ActorContext("tenant-1", "mgr-1", domain.RoleManager)

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	sessionUC := usecase.NewSessionUseCase(txManager, sessionRepo, auditRepo, outboxRepo, idGen, nil, nil)
	orderUC := usecase.NewOrderUseCase(txManager, orderRepo, sessionRepo, paymentRepo, auditRepo, outboxRepo, idGen, 0, nil)
	paymentUC := usecase.NewPaymentUseCase(txManager, orderRepo, paymentRepo, sessionRepo, auditRepo, outboxRepo, idGen, retrier, nil)

	testDB.TruncateAll(ctx)

	session, err := sessionUC.OpenSession(ctx, usecase.OpenSessionInput{
		TenantID: "tenant-1",
		SiteID:   "site-1",
	})
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}

	funded, err := orderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		TenantID:  "tenant-1",
		SessionID: session.ID,
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	if _, err := orderUC.AddLine(ctx, usecase.AddOrderLineInput{
		TenantID:  "tenant-1",
		OrderID:   funded.ID,
		Kind:      domain.LineKindMisc,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 1000,
	}); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if _, err := paymentUC.CapturePayment(ctx, usecase.CapturePaymentInput{
		TenantID: "tenant-1",
		OrderID:  funded.ID,
		Method:   domain.PaymentMethodCard,
		Amount:   400,
	}); err != nil {
		t.Fatalf("failed to capture partial payment: %v", err)
	}

	// Captured money blocks the void until it is refunded.
	if _, err := orderUC.VoidOrder(ctx, "tenant-1", funded.ID, "customer left"); !errors.Is(err, domain.ErrOrderHasPayments) {
		t.Fatalf("expected ErrOrderHasPayments, got %v", err)
	}

	if _, err := paymentUC.RefundPayment(ctx, usecase.RefundPaymentInput{
		TenantID: "tenant-1",
		OrderID:  funded.ID,
		Method:   domain.PaymentMethodCard,
		Amount:   400,
		Reason:   "void prep",
	}); err != nil {
		t.Fatalf("failed to refund: %v", err)
	}

	// With the money returned the order is refunded, which is terminal too.
	if _, err := orderUC.VoidOrder(ctx, "tenant-1", funded.ID, "customer left"); !errors.Is(err, domain.ErrOrderNotOpen) {
		t.Fatalf("expected ErrOrderNotOpen on refunded order, got %v", err)
	}

	// A paid order is never voided, only refunded.
	paid, err := orderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		TenantID:  "tenant-1",
		SessionID: session.ID,
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	if _, err := orderUC.AddLine(ctx, usecase.AddOrderLineInput{
		TenantID:  "tenant-1",
		OrderID:   paid.ID,
		Kind:      domain.LineKindMisc,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 500,
	}); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if _, err := paymentUC.CapturePayment(ctx, usecase.CapturePaymentInput{
		TenantID: "tenant-1",
		OrderID:  paid.ID,
		Method:   domain.PaymentMethodCash,
		Amount:   500,
	}); err != nil {
		t.Fatalf("failed to pay order: %v", err)
	}
	if _, err := orderUC.VoidOrder(ctx, "tenant-1", paid.ID, "mistake"); !errors.Is(err, domain.ErrOrderPaid) {
		t.Fatalf("expected ErrOrderPaid, got %v", err)
	}

	// An untouched order voids cleanly and stops accepting lines.
	fresh, err := orderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		TenantID:  "tenant-1",
		SessionID: session.ID,
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	voided, err := orderUC.VoidOrder(ctx, "tenant-1", fresh.ID, "wrong register")
	if err != nil {
		t.Fatalf("failed to void order: %v", err)
	}
	if voided.Status != domain.OrderStatusVoid {
		t.Errorf("expected void status, got %s", voided.Status)
	}
	if _, err := orderUC.AddLine(ctx, usecase.AddOrderLineInput{
		TenantID:  "tenant-1",
		OrderID:   fresh.ID,
		Kind:      domain.LineKindMisc,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 100,
	}); !errors.Is(err, domain.ErrOrderNotOpen) {
		t.Fatalf("expected ErrOrderNotOpen adding to void order, got %v", err)
	}
}
