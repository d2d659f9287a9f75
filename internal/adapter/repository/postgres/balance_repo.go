package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/postgres/generated"
	"github.com/mkarlis/posledger/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// GetByKey retrieves the balance for one key.
func (r *BalanceRepository) GetByKey(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error) {
	row, err := r.queries.GetBalance(ctx, generated.GetBalanceParams{
		TenantID:   key.TenantID,
		ItemID:     key.ItemID,
		LocationID: key.LocationID,
		LotID:      key.LotID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}
		return nil, err
	}

	return rowToBalance(row), nil
}

// ApplyDeltaTx atomically adds delta to the balance for key, creating the row
// when the key is new, and returns the post-apply state.
func (r *BalanceRepository) ApplyDeltaTx(ctx context.Context, tx usecase.Transaction, key domain.BalanceKey, delta decimal.Decimal, updatedAt time.Time) (*domain.Balance, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.ApplyBalanceDelta(ctx, generated.ApplyBalanceDeltaParams{
		TenantID:   key.TenantID,
		ItemID:     key.ItemID,
		LocationID: key.LocationID,
		LotID:      key.LotID,
		Quantity:   decimalToNumeric(delta),
		CreatedAt:  timeToPgTimestamptz(updatedAt),
		UpdatedAt:  timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return nil, err
	}

	return rowToBalance(row), nil
}

// SetReorderPoint sets the alert threshold for key, creating a zero-quantity
// row when the key has never moved.
func (r *BalanceRepository) SetReorderPoint(ctx context.Context, tx usecase.Transaction, key domain.BalanceKey, threshold decimal.Decimal, updatedAt time.Time) (*domain.Balance, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.SetBalanceReorderPoint(ctx, generated.SetBalanceReorderPointParams{
		TenantID:     key.TenantID,
		ItemID:       key.ItemID,
		LocationID:   key.LocationID,
		LotID:        key.LotID,
		ReorderPoint: decimalToNumeric(threshold),
		CreatedAt:    timeToPgTimestamptz(updatedAt),
		UpdatedAt:    timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return nil, err
	}

	return rowToBalance(row), nil
}

// List retrieves balances for a tenant, optionally narrowed by item and
// location. Empty filter values match everything.
func (r *BalanceRepository) List(ctx context.Context, tenantID, itemID, locationID string, limit, offset int) ([]*domain.Balance, error) {
	rows, err := r.queries.ListBalances(ctx, generated.ListBalancesParams{
		TenantID:   tenantID,
		ItemID:     itemID,
		LocationID: locationID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, err
	}

	balances := make([]*domain.Balance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, rowToBalance(row))
	}

	return balances, nil
}

func rowToBalance(row generated.Balance) *domain.Balance {
	return &domain.Balance{
		TenantID:     row.TenantID,
		ItemID:       row.ItemID,
		LocationID:   row.LocationID,
		LotID:        row.LotID,
		Quantity:     numericToDecimal(row.Quantity),
		ReorderPoint: numericToDecimal(row.ReorderPoint),
		Version:      row.Version,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
