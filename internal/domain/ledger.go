package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind classifies a ledger entry.
type MovementKind string

const (
	MovementReceipt     MovementKind = "receipt"
	MovementIssue       MovementKind = "issue"
	MovementTransferIn  MovementKind = "transfer_in"
	MovementTransferOut MovementKind = "transfer_out"
	MovementAdjustment  MovementKind = "adjustment"
	MovementSale        MovementKind = "sale"
	MovementCountPosted MovementKind = "count_posted"
)

var validMovementKinds = map[MovementKind]bool{
	MovementReceipt:     true,
	MovementIssue:       true,
	MovementTransferIn:  true,
	MovementTransferOut: true,
	MovementAdjustment:  true,
	MovementSale:        true,
	MovementCountPosted: true,
}

// IsValid checks if the movement kind is known.
func (k MovementKind) IsValid() bool {
	return validMovementKinds[k]
}

// SignValid reports whether a quantity sign is coherent with the kind:
// inbound kinds must be positive, outbound kinds negative, adjustments and
// count postings may carry either sign.
func (k MovementKind) SignValid(q decimal.Decimal) bool {
	switch k {
	case MovementReceipt, MovementTransferIn:
		return q.IsPositive()
	case MovementIssue, MovementSale, MovementTransferOut:
		return q.IsNegative()
	default:
		return true
	}
}

// LedgerEntry is one immutable, signed quantity movement. Entries are the
// sole source of truth for balances and are never updated or deleted.
type LedgerEntry struct {
	ID            string
	TenantID      string
	ItemID        string
	LocationID    string
	LotID         string // empty when the item is not lot-tracked
	Kind          MovementKind
	Quantity      decimal.Decimal
	CorrelationID string
	ActorID       string
	CreatedAt     time.Time
}

// Validate checks entry invariants before persistence.
func (e *LedgerEntry) Validate() error {
	if !e.Kind.IsValid() {
		return ErrUnknownMovementKind
	}
	if e.Quantity.IsZero() {
		return ErrInvalidQuantity
	}
	if !e.Kind.SignValid(e.Quantity) {
		return ErrQuantitySign
	}
	return nil
}

// Key returns the balance projection key this entry applies to.
func (e *LedgerEntry) Key() BalanceKey {
	return BalanceKey{
		TenantID:   e.TenantID,
		ItemID:     e.ItemID,
		LocationID: e.LocationID,
		LotID:      e.LotID,
	}
}
