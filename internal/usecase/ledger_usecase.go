package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/metrics"
)

// LedgerUseCase appends stock movements and reads the ledger and its balance
// projection. Every append updates the matching balance in the same
// transaction; there is no asynchronous projection mode.
type LedgerUseCase struct {
	txManager   TransactionManager
	ledgerRepo  LedgerRepository
	balanceRepo BalanceRepository
	auditRepo   AuditRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	ledgerRepo LedgerRepository,
	balanceRepo BalanceRepository,
	auditRepo AuditRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		ledgerRepo:  ledgerRepo,
		balanceRepo: balanceRepo,
		auditRepo:   auditRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// RecordMovementInput represents input for appending one stock movement.
type RecordMovementInput struct {
	TenantID   string
	ItemID     string
	LocationID string
	LotID      string
	Kind       domain.MovementKind
	Quantity   decimal.Decimal
	Reference  string
}

// MovementResult carries the appended entry and the post-apply balance.
type MovementResult struct {
	Entry   *domain.LedgerEntry
	Balance *domain.Balance
}

// RecordMovement appends one signed movement and updates the balance
// atomically. Either both the entry and the balance mutation are durable, or
// neither is.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (*MovementResult, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.ItemID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.LocationID); err != nil {
		return nil, err
	}

	if err := domain.ValidateQuantity(input.Quantity); err != nil {
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
	correlationID := uc.idGen.Generate()

	entry := &domain.LedgerEntry{
		ID:            uc.idGen.Generate(),
		TenantID:      input.TenantID,
		ItemID:        input.ItemID,
		LocationID:    input.LocationID,
		LotID:         input.LotID,
		Kind:          input.Kind,
		Quantity:      input.Quantity,
		CorrelationID: correlationID,
		ActorID:       actorIDFromContext(ctx),
		CreatedAt:     now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.CreateTx(txCtx, tx, entry); err != nil {
		return nil, err
	}

	balance, err := uc.balanceRepo.ApplyDeltaTx(txCtx, tx, entry.Key(), entry.Quantity, now)
	if err != nil {
		return nil, err
	}

	if balance.BelowReorderPoint() {
		alert := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   balance.ItemID,
			AggregateType: domain.AggregateTypeBalance,
			EventType:     domain.EventTypeReorderAlert,
			Payload: map[string]any{
				"item_id":       balance.ItemID,
				"location_id":   balance.LocationID,
				"lot_id":        balance.LotID,
				"quantity":      balance.Quantity.String(),
				"reorder_point": balance.ReorderPoint.String(),
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.CreateTx(txCtx, tx, alert); err != nil {
			return nil, err
		}
	}

	audit := newAuditRecord(ctx, uc.idGen, input.TenantID, domain.AuditMovementRecorded, correlationID, domain.AuditDetail{
		ItemID:       input.ItemID,
		LocationID:   input.LocationID,
		LotID:        input.LotID,
		MovementKind: string(input.Kind),
		Quantity:     input.Quantity.String(),
		Reason:       input.Reference,
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsRecorded.WithLabelValues(string(input.Kind)).Inc()
		if balance.BelowReorderPoint() {
			uc.metrics.ReorderAlerts.Inc()
		}
	}

	return &MovementResult{Entry: entry, Balance: balance}, nil
}

// GetBalance reads the materialized quantity for one key.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error) {
	if err := domain.ValidateTenantID(key.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(key.ItemID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(key.LocationID); err != nil {
		return nil, err
	}

	return uc.balanceRepo.GetByKey(ctx, key)
}

// ListBalancesInput represents input for listing balances.
type ListBalancesInput struct {
	TenantID   string
	ItemID     string
	LocationID string
	Limit      int
	Offset     int
}

// ListBalances lists a tenant's balances, optionally narrowed to one item
// and/or one location.
func (uc *LedgerUseCase) ListBalances(ctx context.Context, input ListBalancesInput) ([]*domain.Balance, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	input.Limit, input.Offset = domain.ValidatePagination(input.Limit, input.Offset)

	return uc.balanceRepo.List(ctx, input.TenantID, input.ItemID, input.LocationID, input.Limit, input.Offset)
}

// ListEntriesInput represents input for listing ledger entries.
type ListEntriesInput struct {
	TenantID   string
	ItemID     string
	LocationID string
	LotID      string
	Limit      int
	Offset     int
}

// ListEntries lists ledger entries, newest first. With both an item and a
// location the listing narrows to that single balance key.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.LedgerEntry, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	input.Limit, input.Offset = domain.ValidatePagination(input.Limit, input.Offset)

	if input.ItemID != "" && input.LocationID != "" {
		key := domain.BalanceKey{
			TenantID:   input.TenantID,
			ItemID:     input.ItemID,
			LocationID: input.LocationID,
			LotID:      input.LotID,
		}
		return uc.ledgerRepo.ListByKey(ctx, key, input.Limit, input.Offset)
	}

	return uc.ledgerRepo.ListByTenant(ctx, input.TenantID, input.Limit, input.Offset)
}

// ListEntriesByCorrelation returns every entry written by one business
// operation, in posting order.
func (uc *LedgerUseCase) ListEntriesByCorrelation(ctx context.Context, tenantID, correlationID string) ([]*domain.LedgerEntry, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(correlationID); err != nil {
		return nil, err
	}

	return uc.ledgerRepo.ListByCorrelationID(ctx, tenantID, correlationID)
}

// SetReorderPointInput represents input for configuring a reorder threshold.
type SetReorderPointInput struct {
	TenantID   string
	ItemID     string
	LocationID string
	LotID      string
	Threshold  decimal.Decimal
}

// SetReorderPoint sets the alert threshold for one balance key. Zero clears
// the threshold. The balance row is created with zero quantity when the key
// has no entries yet.
func (uc *LedgerUseCase) SetReorderPoint(ctx context.Context, input SetReorderPointInput) (*domain.Balance, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.ItemID); err != nil {
		return nil, err
	}

	if err := domain.ValidateID(input.LocationID); err != nil {
		return nil, err
	}

	if input.Threshold.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	key := domain.BalanceKey{
		TenantID:   input.TenantID,
		ItemID:     input.ItemID,
		LocationID: input.LocationID,
		LotID:      input.LotID,
	}

	balance, err := uc.balanceRepo.SetReorderPoint(txCtx, tx, key, input.Threshold, now)
	if err != nil {
		return nil, err
	}

	audit := newAuditRecord(ctx, uc.idGen, input.TenantID, domain.AuditReorderPointSet, uc.idGen.Generate(), domain.AuditDetail{
		ItemID:     input.ItemID,
		LocationID: input.LocationID,
		LotID:      input.LotID,
		Quantity:   input.Threshold.String(),
	})
	if err := uc.auditRepo.CreateTx(txCtx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return balance, nil
}
