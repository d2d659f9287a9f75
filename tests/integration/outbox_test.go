package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/adapter/repository/postgres"
	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/eventpublisher"
	"github.com/mkarlis/posledger/internal/usecase"
	"github.com/mkarlis/posledger/tests/testutil"
)

// MockPublisher records published events for assertions.
type MockPublisher struct {
	mu        sync.Mutex
	published []*domain.OutboxEvent
}

func (m *MockPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	return nil
}

func (m *MockPublisher) GetPublished() []*domain.OutboxEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.OutboxEvent, len(m.published))
	copy(result, m.published)
	return result
}

func TestOutboxEventCreation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := testutil.ActorContext("tenant-1", "counter-1", domain.RoleManager)

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

	testDB.TruncateAll(ctx)

	testDB.SeedStock(ctx, "tenant-1", "itm-oats", "loc-main", "", decimal.NewFromInt(60))

	sheet, err := countingUC.CreateSheet(ctx, usecase.CreateSheetInput{
		TenantID: "tenant-1",
		Number:   "CS-OB-1",
	})
	if err != nil {
		t.Fatalf("failed to create sheet: %v", err)
	}
	if _, err := countingUC.AddLine(ctx, usecase.AddLineInput{
		TenantID:   "tenant-1",
		SheetID:    sheet.ID,
		ItemID:     "itm-oats",
		LocationID: "loc-main",
		Counted:    decimal.NewFromInt(55),
	}); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if _, err := countingUC.ApproveSheet(ctx, "tenant-1", sheet.ID); err != nil {
		t.Fatalf("failed to approve sheet: %v", err)
	}
	result, err := countingUC.PostSheet(ctx, "tenant-1", sheet.ID)
	if err != nil {
		t.Fatalf("failed to post sheet: %v", err)
	}

	events, err := outboxRepo.GetUnpublished(ctx, 100)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}

	var posted *domain.OutboxEvent
	for _, e := range events {
		if e.EventType == domain.EventTypeCountPosted {
			posted = e
			break
		}
	}
	if posted == nil {
		t.Fatal("expected a count.posted event in the outbox")
	}
	if posted.AggregateID != sheet.ID {
		t.Errorf("expected aggregate %s, got %s", sheet.ID, posted.AggregateID)
	}
	if posted.AggregateType != domain.AggregateTypeCountSheet {
		t.Errorf("expected aggregate type count_sheet, got %s", posted.AggregateType)
	}
	if posted.Payload["sheet_id"] != sheet.ID {
		t.Errorf("expected payload sheet_id %s, got %v", sheet.ID, posted.Payload["sheet_id"])
	}
	if posted.Payload["correlation_id"] != result.CorrelationID {
		t.Errorf("expected payload correlation_id %s, got %v", result.CorrelationID, posted.Payload["correlation_id"])
	}
	if posted.Published {
		t.Error("expected event to start unpublished")
	}
	if posted.PublishedAt != nil {
		t.Error("expected no published timestamp yet")
	}
}

func TestEventPublisher(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := testutil.ActorContext("tenant-1", "mgr-1", domain.RoleManager)

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	sessionUC := usecase.NewSessionUseCase(txManager, sessionRepo, auditRepo, outboxRepo, idGen, nil, nil)

	testDB.TruncateAll(ctx)

	for _, site := range []string{"site-1", "site-2"} {
		if _, err := sessionUC.OpenSession(ctx, usecase.OpenSessionInput{
			TenantID: "tenant-1",
			SiteID:   site,
		}); err != nil {
			t.Fatalf("failed to open session on %s: %v", site, err)
		}
	}

	pending, err := outboxRepo.GetUnpublished(ctx, 100)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending events, got %d", len(pending))
	}

	mock := &MockPublisher{}
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  mock,
		BatchSize:  10,
	})

	publisherCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	go func() { _ = publisher.Start(publisherCtx) }()

	// The worker drains the backlog once immediately on start.
	time.Sleep(100 * time.Millisecond)

	published := mock.GetPublished()
	if len(published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(published))
	}
	for _, e := range published {
		if e.EventType != domain.EventTypeSessionOpened {
			t.Errorf("expected session.opened, got %s", e.EventType)
		}
	}

	remaining, err := outboxRepo.GetUnpublished(ctx, 100)
	if err != nil {
		t.Fatalf("failed to re-check outbox: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected drained outbox, got %d events", len(remaining))
	}
}
