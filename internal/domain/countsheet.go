package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountSheetStatus is the lifecycle state of a count sheet.
type CountSheetStatus string

const (
	SheetStatusDraft    CountSheetStatus = "draft"
	SheetStatusApproved CountSheetStatus = "approved"
	SheetStatusPosted   CountSheetStatus = "posted"
	SheetStatusVoid     CountSheetStatus = "void"
)

// CanTransitionTo reports whether the status transition is legal.
// draft → approved → posted, or draft/approved → void. posted and void
// are terminal.
func (s CountSheetStatus) CanTransitionTo(next CountSheetStatus) bool {
	switch s {
	case SheetStatusDraft:
		return next == SheetStatusApproved || next == SheetStatusVoid
	case SheetStatusApproved:
		return next == SheetStatusPosted || next == SheetStatusVoid
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s CountSheetStatus) IsTerminal() bool {
	return s == SheetStatusPosted || s == SheetStatusVoid
}

// CountSheet is the aggregate root for one physical count reconciliation.
// Its row lock governs all writes of a posting.
type CountSheet struct {
	ID        string
	TenantID  string
	Number    string
	CountDate time.Time
	Status    CountSheetStatus
	CountedBy string
	Notes     string
	PostedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AcceptsLines reports whether lines may still be attached.
func (s *CountSheet) AcceptsLines() bool {
	return s.Status == SheetStatusDraft || s.Status == SheetStatusApproved
}

// CountLine is one counted-vs-expected observation on a sheet. Expected is a
// snapshot of the Balance at line-add time and is not re-read at posting.
// Lines are immutable once the parent sheet is posted.
type CountLine struct {
	ID         string
	SheetID    string
	ItemID     string
	LocationID string
	LotID      string
	Expected   decimal.Decimal
	Counted    decimal.Decimal
	Variance   decimal.Decimal
	Notes      string
	CreatedAt  time.Time
}

// ComputeVariance derives the ledger delta to post for this line.
func (l *CountLine) ComputeVariance() decimal.Decimal {
	return l.Counted.Sub(l.Expected)
}
