package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/metrics"
)

// CountingUseCase coordinates the count sheet lifecycle: draft, line capture
// against balance snapshots, approval, and the atomic posting that turns
// variances into ledger entries.
type CountingUseCase struct {
	txManager   TransactionManager
	sheetRepo   CountSheetRepository
	balanceRepo BalanceRepository
	ledgerRepo  LedgerRepository
	auditRepo   AuditRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewCountingUseCase creates a new CountingUseCase.
func NewCountingUseCase(
	txManager TransactionManager,
	sheetRepo CountSheetRepository,
	balanceRepo BalanceRepository,
	ledgerRepo LedgerRepository,
	auditRepo AuditRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *CountingUseCase {
	return &CountingUseCase{
		txManager:   txManager,
		sheetRepo:   sheetRepo,
		balanceRepo: balanceRepo,
		ledgerRepo:  ledgerRepo,
		auditRepo:   auditRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// CreateSheetInput represents input for creating a count sheet.
type CreateSheetInput struct {
	TenantID  string
	Number    string
	CountDate *time.Time
	CountedBy string
	Notes     string
}

// CreateSheet creates a count sheet in draft status.
func (uc *CountingUseCase) CreateSheet(ctx context.Context, input CreateSheetInput) (*domain.CountSheet, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateNotes(input.Notes); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()

	countDate := now
	if input.CountDate != nil {
		countDate = *input.CountDate
	}

	countedBy := input.CountedBy
	if countedBy == "" {
		countedBy = actorIDFromContext(ctx)
	}

	sheet := &domain.CountSheet{
		ID:        uc.idGen.Generate(),
		TenantID:  input.TenantID,
		Number:    input.Number,
		CountDate: countDate,
		Status:    domain.SheetStatusDraft,
		CountedBy: countedBy,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if sheet.Number == "" {
		sheet.Number = "CS-" + sheet.ID
	}

	if err := uc.sheetRepo.CreateTx(txCtx, tx, sheet); err != nil {
		return nil, err
	}

	audit := newAuditRecord(ctx, uc.idGen, input.TenantID, domain.AuditSheetCreated, uc.idGen.Generate(), domain.AuditDetail{
		SheetID:     sheet.ID,
		SheetNumber: sheet.Number,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SheetsCreated.Inc()
	}

	return sheet, nil
}

// AddLineInput represents input for attaching one counted line to a sheet.
type AddLineInput struct {
	TenantID   string
	SheetID    string
	ItemID     string
	LocationID string
	LotID      string
	Counted    decimal.Decimal
	Notes      string
}

// AddLine attaches a count line to a draft or approved sheet. The expected
// quantity is snapshotted from the current balance at this moment and is not
// re-read when the sheet posts.
func (uc *CountingUseCase) AddLine(ctx context.Context, input AddLineInput) (*domain.CountLine, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.SheetID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.ItemID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.LocationID); err != nil {
		return nil, err
	}

	if err := domain.ValidateCountedQuantity(input.Counted); err != nil {
		return nil, err
	}

	if err := domain.ValidateNotes(input.Notes); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock the sheet so line capture serializes with posting and voiding.
	sheet, err := uc.sheetRepo.GetByIDForUpdate(txCtx, tx, input.TenantID, input.SheetID)
	if err != nil {
		return nil, err
	}

	if !sheet.AcceptsLines() {
		return nil, domain.ErrSheetTerminal
	}

	lines, err := uc.sheetRepo.ListLines(txCtx, sheet.ID)
	if err != nil {
		return nil, err
	}

	if len(lines) >= MaxSheetLines {
		return nil, domain.ErrSheetFull
	}

	expected := decimal.Zero
	balance, err := uc.balanceRepo.GetByKey(txCtx, domain.BalanceKey{
		TenantID:   input.TenantID,
		ItemID:     input.ItemID,
		LocationID: input.LocationID,
		LotID:      input.LotID,
	})
	if err != nil && !errors.Is(err, domain.ErrBalanceNotFound) {
		return nil, err
	}
	if balance != nil {
		expected = balance.Quantity
	}

	now := time.Now().UTC()
	line := &domain.CountLine{
		ID:         uc.idGen.Generate(),
		SheetID:    sheet.ID,
		ItemID:     input.ItemID,
		LocationID: input.LocationID,
		LotID:      input.LotID,
		Expected:   expected,
		Counted:    input.Counted,
		Notes:      input.Notes,
		CreatedAt:  now,
	}
	line.Variance = line.ComputeVariance()

	if err := uc.sheetRepo.CreateLineTx(txCtx, tx, line); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return line, nil
}

// ApproveSheet moves a draft sheet to approved.
func (uc *CountingUseCase) ApproveSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(sheetID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	sheet, err := uc.sheetRepo.GetByIDForUpdate(txCtx, tx, tenantID, sheetID)
	if err != nil {
		return nil, err
	}

	if !sheet.Status.CanTransitionTo(domain.SheetStatusApproved) {
		if sheet.Status.IsTerminal() {
			return nil, domain.ErrSheetTerminal
		}
		return nil, domain.ErrSheetNotDraft
	}

	now := time.Now().UTC()
	if err := uc.sheetRepo.UpdateStatus(txCtx, tx, tenantID, sheetID, domain.SheetStatusApproved, nil, now); err != nil {
		return nil, err
	}

	audit := newAuditRecord(ctx, uc.idGen, tenantID, domain.AuditSheetApproved, uc.idGen.Generate(), domain.AuditDetail{
		SheetID:     sheet.ID,
		SheetNumber: sheet.Number,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SheetsApproved.Inc()
	}

	sheet.Status = domain.SheetStatusApproved
	sheet.UpdatedAt = now

	return sheet, nil
}

// PostResult summarizes one committed posting.
type PostResult struct {
	Sheet         *domain.CountSheet
	CorrelationID string
	LineCount     int
	PostedCount   int
	ReorderAlerts int
}

// PostSheet posts an approved sheet: every non-zero-variance line becomes one
// count_posted ledger entry and the matching balance update, all under the
// sheet's exclusive lock in a single transaction. Posting is irreversible.
// Lock contention is retried as a whole; no writes survive a failed attempt.
func (uc *CountingUseCase) PostSheet(ctx context.Context, tenantID, sheetID string) (*PostResult, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(sheetID); err != nil {
		return nil, err
	}

	start := time.Now()

	var result *PostResult
	operation := func() error {
		r, err := uc.postSheet(ctx, tenantID, sheetID)
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
		if uc.metrics != nil {
			uc.metrics.PostingErrors.WithLabelValues(domain.ErrorCode(err)).Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SheetsPosted.Inc()
		uc.metrics.PostingDuration.Observe(time.Since(start).Seconds())
		uc.metrics.PostedLines.Observe(float64(result.PostedCount))
		if result.ReorderAlerts > 0 {
			uc.metrics.ReorderAlerts.Add(float64(result.ReorderAlerts))
		}
	}

	return result, nil
}

func (uc *CountingUseCase) postSheet(ctx context.Context, tenantID, sheetID string) (*PostResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Exclusive sheet lock prevents concurrent double-posting.
	sheet, err := uc.sheetRepo.GetByIDForUpdate(txCtx, tx, tenantID, sheetID)
	if err != nil {
		return nil, err
	}

	if sheet.Status != domain.SheetStatusApproved {
		if sheet.Status.IsTerminal() {
			return nil, domain.ErrSheetTerminal
		}
		return nil, domain.ErrSheetNotApproved
	}

	// Lines come back in ascending line id order, which fixes the ledger
	// ordering of the posting.
	lines, err := uc.sheetRepo.ListLines(txCtx, sheet.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	correlationID := uc.idGen.Generate()
	actorID := actorIDFromContext(ctx)

	posted := 0
	var alerts []*domain.Balance
	for _, line := range lines {
		// Variance is recomputed from the stored snapshot, never from a
		// re-read of the live balance.
		variance := line.ComputeVariance()
		if variance.IsZero() {
			continue
		}

		entry := &domain.LedgerEntry{
			ID:            uc.idGen.Generate(),
			TenantID:      tenantID,
			ItemID:        line.ItemID,
			LocationID:    line.LocationID,
			LotID:         line.LotID,
			Kind:          domain.MovementCountPosted,
			Quantity:      variance,
			CorrelationID: correlationID,
			ActorID:       actorID,
			CreatedAt:     now,
		}
		if err := entry.Validate(); err != nil {
			return nil, err
		}

		if err := uc.ledgerRepo.CreateTx(txCtx, tx, entry); err != nil {
			return nil, err
		}

		balance, err := uc.balanceRepo.ApplyDeltaTx(txCtx, tx, entry.Key(), variance, now)
		if err != nil {
			return nil, err
		}

		if balance.BelowReorderPoint() {
			alerts = append(alerts, balance)
		}

		posted++
	}

	postedAt := now
	if err := uc.sheetRepo.UpdateStatus(txCtx, tx, tenantID, sheetID, domain.SheetStatusPosted, &postedAt, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   sheet.ID,
		AggregateType: domain.AggregateTypeCountSheet,
		EventType:     domain.EventTypeCountPosted,
		Payload: map[string]any{
			"sheet_id":       sheet.ID,
			"sheet_number":   sheet.Number,
			"correlation_id": correlationID,
			"posted_lines":   posted,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
		return nil, err
	}

	for _, b := range alerts {
		alert := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   b.ItemID,
			AggregateType: domain.AggregateTypeBalance,
			EventType:     domain.EventTypeReorderAlert,
			Payload: map[string]any{
				"item_id":       b.ItemID,
				"location_id":   b.LocationID,
				"lot_id":        b.LotID,
				"quantity":      b.Quantity.String(),
				"reorder_point": b.ReorderPoint.String(),
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.CreateTx(txCtx, tx, alert); err != nil {
			return nil, err
		}
	}

	audit := newAuditRecord(ctx, uc.idGen, tenantID, domain.AuditSheetPosted, correlationID, domain.AuditDetail{
		SheetID:     sheet.ID,
		SheetNumber: sheet.Number,
		LineCount:   len(lines),
		PostedCount: posted,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	sheet.Status = domain.SheetStatusPosted
	sheet.PostedAt = &postedAt
	sheet.UpdatedAt = now

	return &PostResult{
		Sheet:         sheet,
		CorrelationID: correlationID,
		LineCount:     len(lines),
		PostedCount:   posted,
		ReorderAlerts: len(alerts),
	}, nil
}

// VoidSheet voids a draft or approved sheet. Void is terminal and produces no
// ledger entries.
func (uc *CountingUseCase) VoidSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(sheetID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	sheet, err := uc.sheetRepo.GetByIDForUpdate(txCtx, tx, tenantID, sheetID)
	if err != nil {
		return nil, err
	}

	if !sheet.Status.CanTransitionTo(domain.SheetStatusVoid) {
		return nil, domain.ErrSheetTerminal
	}

	now := time.Now().UTC()
	if err := uc.sheetRepo.UpdateStatus(txCtx, tx, tenantID, sheetID, domain.SheetStatusVoid, nil, now); err != nil {
		return nil, err
	}

	audit := newAuditRecord(ctx, uc.idGen, tenantID, domain.AuditSheetVoided, uc.idGen.Generate(), domain.AuditDetail{
		SheetID:     sheet.ID,
		SheetNumber: sheet.Number,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SheetsVoided.Inc()
	}

	sheet.Status = domain.SheetStatusVoid
	sheet.UpdatedAt = now

	return sheet, nil
}

// GetSheet retrieves a count sheet by ID within the tenant scope.
func (uc *CountingUseCase) GetSheet(ctx context.Context, tenantID, sheetID string) (*domain.CountSheet, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(sheetID); err != nil {
		return nil, err
	}

	return uc.sheetRepo.GetByID(ctx, tenantID, sheetID)
}

// ListLines returns the lines of a sheet in ascending line id order.
func (uc *CountingUseCase) ListLines(ctx context.Context, tenantID, sheetID string) ([]*domain.CountLine, error) {
	sheet, err := uc.GetSheet(ctx, tenantID, sheetID)
	if err != nil {
		return nil, err
	}

	return uc.sheetRepo.ListLines(ctx, sheet.ID)
}

// ListSheetsInput represents input for listing count sheets.
type ListSheetsInput struct {
	TenantID string
	Status   domain.CountSheetStatus
	Limit    int
	Offset   int
}

// ListSheets lists a tenant's count sheets, optionally filtered by status.
func (uc *CountingUseCase) ListSheets(ctx context.Context, input ListSheetsInput) ([]*domain.CountSheet, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	input.Limit, input.Offset = domain.ValidatePagination(input.Limit, input.Offset)

	return uc.sheetRepo.List(ctx, input.TenantID, input.Status, input.Limit, input.Offset)
}
