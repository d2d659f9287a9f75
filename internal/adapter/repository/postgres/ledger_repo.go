package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/postgres/generated"
	"github.com/mkarlis/posledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx appends a ledger entry within a transaction. Entries are never
// updated or deleted afterwards.
func (r *LedgerRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:            entry.ID,
		TenantID:      entry.TenantID,
		ItemID:        entry.ItemID,
		LocationID:    entry.LocationID,
		LotID:         entry.LotID,
		Kind:          string(entry.Kind),
		Quantity:      decimalToNumeric(entry.Quantity),
		CorrelationID: entry.CorrelationID,
		ActorID:       entry.ActorID,
		CreatedAt:     timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// ListByKey retrieves entries for one balance key, newest first.
func (r *LedgerRepository) ListByKey(ctx context.Context, key domain.BalanceKey, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListLedgerEntriesByKey(ctx, generated.ListLedgerEntriesByKeyParams{
		TenantID:   key.TenantID,
		ItemID:     key.ItemID,
		LocationID: key.LocationID,
		LotID:      key.LotID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToLedgerEntry(row))
	}

	return entries, nil
}

// ListByTenant retrieves entries across all keys of a tenant, newest first.
func (r *LedgerRepository) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListLedgerEntriesByTenant(ctx, generated.ListLedgerEntriesByTenantParams{
		TenantID: tenantID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToLedgerEntry(row))
	}

	return entries, nil
}

// ListByCorrelationID retrieves all entries written under one correlation ID,
// oldest first.
func (r *LedgerRepository) ListByCorrelationID(ctx context.Context, tenantID, correlationID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListLedgerEntriesByCorrelation(ctx, generated.ListLedgerEntriesByCorrelationParams{
		TenantID:      tenantID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToLedgerEntry(row))
	}

	return entries, nil
}

// CheckProjection compares every materialized balance of the tenant against
// the sum of its ledger entries and returns the keys that diverge.
func (r *LedgerRepository) CheckProjection(ctx context.Context, tenantID string) ([]usecase.ProjectionDrift, error) {
	rows, err := r.queries.ListBalanceDrift(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	drifts := make([]usecase.ProjectionDrift, 0, len(rows))
	for _, row := range rows {
		drifts = append(drifts, usecase.ProjectionDrift{
			Key: domain.BalanceKey{
				TenantID:   tenantID,
				ItemID:     row.ItemID,
				LocationID: row.LocationID,
				LotID:      row.LotID,
			},
			Balance:  numericToDecimal(row.Balance),
			EntrySum: numericToDecimal(row.EntrySum),
		})
	}

	return drifts, nil
}

func rowToLedgerEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:            row.ID,
		TenantID:      row.TenantID,
		ItemID:        row.ItemID,
		LocationID:    row.LocationID,
		LotID:         row.LotID,
		Kind:          domain.MovementKind(row.Kind),
		Quantity:      numericToDecimal(row.Quantity),
		CorrelationID: row.CorrelationID,
		ActorID:       row.ActorID,
		CreatedAt:     row.CreatedAt.Time,
	}
}
