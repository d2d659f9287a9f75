package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceKey identifies one materialized balance: (tenant, item, location, lot).
type BalanceKey struct {
	TenantID   string
	ItemID     string
	LocationID string
	LotID      string
}

// Balance is the materialized running total for one key. Its quantity equals
// the sum of all ledger entries for the key and is only ever mutated as part
// of a ledger append.
type Balance struct {
	TenantID     string
	ItemID       string
	LocationID   string
	LotID        string
	Quantity     decimal.Decimal
	ReorderPoint decimal.Decimal // zero means no alert threshold configured
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Key returns the projection key of this balance.
func (b *Balance) Key() BalanceKey {
	return BalanceKey{
		TenantID:   b.TenantID,
		ItemID:     b.ItemID,
		LocationID: b.LocationID,
		LotID:      b.LotID,
	}
}

// BelowReorderPoint reports whether the current quantity sits at or below the
// configured alert threshold.
func (b *Balance) BelowReorderPoint() bool {
	if b.ReorderPoint.IsZero() {
		return false
	}
	return b.Quantity.LessThanOrEqual(b.ReorderPoint)
}
