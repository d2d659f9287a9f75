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

func TestCountSheetPosting(t *testing.T) {
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
	ledgerUC := usecase.NewLedgerUseCase(txManager, ledgerRepo, balanceRepo, auditRepo, outboxRepo, idGen, nil)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	testDB.TruncateAll(ctx)

	testDB.SeedStock(ctx, "tenant-1", "itm-flour", "loc-main", "", decimal.NewFromInt(100))
	testDB.SeedStock(ctx, "tenant-1", "itm-salt", "loc-main", "", decimal.NewFromInt(50))

	sheet, err := countingUC.CreateSheet(ctx, usecase.CreateSheetInput{
		TenantID:  "tenant-1",
		Number:    "CS-2024-001",
		CountedBy: "counter-1",
	})
	if err != nil {
		t.Fatalf("failed to create sheet: %v", err)
	}
	if sheet.Status != domain.SheetStatusDraft {
		t.Fatalf("expected draft sheet, got %s", sheet.Status)
	}

	// Posting requires approval first.
	if _, err := countingUC.PostSheet(ctx, "tenant-1", sheet.ID); !errors.Is(err, domain.ErrSheetNotApproved) {
		t.Fatalf("expected ErrSheetNotApproved, got %v", err)
	}

	flourLine, err := countingUC.AddLine(ctx, usecase.AddLineInput{
		TenantID:   "tenant-1",
		SheetID:    sheet.ID,
		ItemID:     "itm-flour",
		LocationID: "loc-main",
		Counted:    decimal.NewFromInt(90),
	})
	if err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if !flourLine.Expected.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected snapshot 100, got %s", flourLine.Expected)
	}
	if !flourLine.Variance.Equal(decimal.NewFromInt(-10)) {
		t.Errorf("expected variance -10, got %s", flourLine.Variance)
	}

	// A line counted exactly at the snapshot posts nothing.
	if _, err := countingUC.AddLine(ctx, usecase.AddLineInput{
		TenantID:   "tenant-1",
		SheetID:    sheet.ID,
		ItemID:     "itm-salt",
		LocationID: "loc-main",
		Counted:    decimal.NewFromInt(50),
	}); err != nil {
		t.Fatalf("failed to add zero-variance line: %v", err)
	}

	if _, err := countingUC.ApproveSheet(ctx, "tenant-1", sheet.ID); err != nil {
		t.Fatalf("failed to approve sheet: %v", err)
	}

	// Stock moves between approval and posting. The variance was snapshotted
	// at line-add time, so the posting still applies -10 on top of the issue.
	if _, err := ledgerUC.RecordMovement(ctx, usecase.RecordMovementInput{
		TenantID:   "tenant-1",
		ItemID:     "itm-flour",
		LocationID: "loc-main",
		Kind:       domain.MovementIssue,
		Quantity:   decimal.NewFromInt(-5),
	}); err != nil {
		t.Fatalf("failed to record movement: %v", err)
	}

	result, err := countingUC.PostSheet(ctx, "tenant-1", sheet.ID)
	if err != nil {
		t.Fatalf("failed to post sheet: %v", err)
	}

	if result.LineCount != 2 {
		t.Errorf("expected 2 lines, got %d", result.LineCount)
	}
	if result.PostedCount != 1 {
		t.Errorf("expected 1 posted line, got %d", result.PostedCount)
	}
	if result.Sheet.Status != domain.SheetStatusPosted {
		t.Errorf("expected posted sheet, got %s", result.Sheet.Status)
	}
	if result.Sheet.PostedAt == nil {
		t.Error("expected PostedAt to be set")
	}

	flourBalance, err := ledgerUC.GetBalance(ctx, domain.BalanceKey{
		TenantID:   "tenant-1",
		ItemID:     "itm-flour",
		LocationID: "loc-main",
	})
	if err != nil {
		t.Fatalf("failed to get flour balance: %v", err)
	}
	if !flourBalance.Quantity.Equal(decimal.NewFromInt(85)) {
		t.Errorf("expected flour balance 85, got %s", flourBalance.Quantity)
	}

	saltBalance, err := ledgerUC.GetBalance(ctx, domain.BalanceKey{
		TenantID:   "tenant-1",
		ItemID:     "itm-salt",
		LocationID: "loc-main",
	})
	if err != nil {
		t.Fatalf("failed to get salt balance: %v", err)
	}
	if !saltBalance.Quantity.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected salt balance 50, got %s", saltBalance.Quantity)
	}

	// One entry per non-zero variance line, all under the posting correlation.
	entries, err := ledgerUC.ListEntriesByCorrelation(ctx, "tenant-1", result.CorrelationID)
	if err != nil {
		t.Fatalf("failed to list entries by correlation: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(entries))
	}
	if entries[0].Kind != domain.MovementCountPosted {
		t.Errorf("expected count_posted entry, got %s", entries[0].Kind)
	}
	if !entries[0].Quantity.Equal(decimal.NewFromInt(-10)) {
		t.Errorf("expected entry quantity -10, got %s", entries[0].Quantity)
	}
	if entries[0].ActorID != "counter-1" {
		t.Errorf("expected actor counter-1, got %s", entries[0].ActorID)
	}

	// The audit record shares the posting correlation.
	records, err := auditUC.GetByCorrelationID(ctx, "tenant-1", result.CorrelationID)
	if err != nil {
		t.Fatalf("failed to get audit records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(records))
	}
	if records[0].Event != domain.AuditSheetPosted {
		t.Errorf("expected %s, got %s", domain.AuditSheetPosted, records[0].Event)
	}
	if records[0].Detail.PostedCount != 1 {
		t.Errorf("expected posted count 1 in detail, got %d", records[0].Detail.PostedCount)
	}

	// Posting is terminal.
	if _, err := countingUC.PostSheet(ctx, "tenant-1", sheet.ID); !errors.Is(err, domain.ErrSheetTerminal) {
		t.Errorf("expected ErrSheetTerminal on repost, got %v", err)
	}
	if _, err := countingUC.VoidSheet(ctx, "tenant-1", sheet.ID); !errors.Is(err, domain.ErrSheetTerminal) {
		t.Errorf("expected ErrSheetTerminal on void after post, got %v", err)
	}
	if _, err := countingUC.AddLine(ctx, usecase.AddLineInput{
		TenantID:   "tenant-1",
		SheetID:    sheet.ID,
		ItemID:     "itm-flour",
		LocationID: "loc-main",
		Counted:    decimal.NewFromInt(80),
	}); !errors.Is(err, domain.ErrSheetTerminal) {
		t.Errorf("expected ErrSheetTerminal on add line after post, got %v", err)
	}
}

func TestCountSheetVoid(t *testing.T) {
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
	ledgerUC := usecase.NewLedgerUseCase(txManager, ledgerRepo, balanceRepo, auditRepo, outboxRepo, idGen, nil)

	testDB.TruncateAll(ctx)
	testDB.SeedStock(ctx, "tenant-1", "itm-rice", "loc-main", "", decimal.NewFromInt(30))

	sheet, err := countingUC.CreateSheet(ctx, usecase.CreateSheetInput{
		TenantID:  "tenant-1",
		Number:    "CS-2024-002",
		CountedBy: "counter-1",
	})
	if err != nil {
		t.Fatalf("failed to create sheet: %v", err)
	}

	if _, err := countingUC.AddLine(ctx, usecase.AddLineInput{
		TenantID:   "tenant-1",
		SheetID:    sheet.ID,
		ItemID:     "itm-rice",
		LocationID: "loc-main",
		Counted:    decimal.NewFromInt(10),
	}); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}

	voided, err := countingUC.VoidSheet(ctx, "tenant-1", sheet.ID)
	if err != nil {
		t.Fatalf("failed to void sheet: %v", err)
	}
	if voided.Status != domain.SheetStatusVoid {
		t.Errorf("expected void status, got %s", voided.Status)
	}

	// Void posts nothing, so the balance stays where the seed left it.
	balance, err := ledgerUC.GetBalance(ctx, domain.BalanceKey{
		TenantID:   "tenant-1",
		ItemID:     "itm-rice",
		LocationID: "loc-main",
	})
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if !balance.Quantity.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected balance 30, got %s", balance.Quantity)
	}

	if _, err := countingUC.ApproveSheet(ctx, "tenant-1", sheet.ID); !errors.Is(err, domain.ErrSheetTerminal) {
		t.Errorf("expected ErrSheetTerminal on approve after void, got %v", err)
	}
	if _, err := countingUC.PostSheet(ctx, "tenant-1", sheet.ID); !errors.Is(err, domain.ErrSheetTerminal) {
		t.Errorf("expected ErrSheetTerminal on post after void, got %v", err)
	}
}

func TestCountSheetListing(t *testing.T) {
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

	first, err := countingUC.CreateSheet(ctx, usecase.CreateSheetInput{
		TenantID:  "tenant-1",
		Number:    "CS-2024-010",
		CountedBy: "counter-1",
	})
	if err != nil {
		t.Fatalf("failed to create first sheet: %v", err)
	}

	second, err := countingUC.CreateSheet(ctx, usecase.CreateSheetInput{
		TenantID:  "tenant-1",
		Number:    "CS-2024-011",
		CountedBy: "counter-1",
	})
	if err != nil {
		t.Fatalf("failed to create second sheet: %v", err)
	}

	if _, err := countingUC.VoidSheet(ctx, "tenant-1", second.ID); err != nil {
		t.Fatalf("failed to void second sheet: %v", err)
	}

	drafts, err := countingUC.ListSheets(ctx, usecase.ListSheetsInput{
		TenantID: "tenant-1",
		Status:   domain.SheetStatusDraft,
	})
	if err != nil {
		t.Fatalf("failed to list draft sheets: %v", err)
	}
	if len(drafts) != 1 || drafts[0].ID != first.ID {
		t.Errorf("expected only the first sheet in draft listing, got %d sheets", len(drafts))
	}

	all, err := countingUC.ListSheets(ctx, usecase.ListSheetsInput{TenantID: "tenant-1"})
	if err != nil {
		t.Fatalf("failed to list all sheets: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 sheets, got %d", len(all))
	}

	fetched, err := countingUC.GetSheet(ctx, "tenant-1", first.ID)
	if err != nil {
		t.Fatalf("failed to get sheet: %v", err)
	}
	if fetched.Number != "CS-2024-010" {
		t.Errorf("expected number CS-2024-010, got %s", fetched.Number)
	}
}
