package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusOpen     OrderStatus = "open"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusRefunded OrderStatus = "refunded"
	OrderStatusVoid     OrderStatus = "void"
)

// CanTransitionTo reports whether the status transition is legal.
// open → paid → refunded, or open → void. A paid order is never voided.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusOpen:
		return next == OrderStatusPaid || next == OrderStatusVoid || next == OrderStatusRefunded
	case OrderStatusPaid:
		return next == OrderStatusRefunded
	default:
		return false
	}
}

// Order is the aggregate root for the payment guard. All monetary fields are
// integer minor currency units.
type Order struct {
	ID            string
	TenantID      string
	SiteID        string
	SessionID     string
	Number        string
	Status        OrderStatus
	Subtotal      int64
	TaxTotal      int64
	DiscountTotal int64
	Total         int64
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recalculate recomputes order totals from its lines and the current
// discount. The total never goes below zero.
func (o *Order) Recalculate(lines []*OrderLine) {
	var subtotal, tax int64
	for _, l := range lines {
		subtotal += l.Subtotal
		tax += l.TaxAmount
	}

	o.Subtotal = subtotal
	o.TaxTotal = tax
	o.Total = subtotal + tax - o.DiscountTotal
	if o.Total < 0 {
		o.Total = 0
	}
}

// OrderLineKind classifies an order line.
type OrderLineKind string

const (
	LineKindStockItem OrderLineKind = "stock_item"
	LineKindRecipe    OrderLineKind = "recipe"
	LineKindMisc      OrderLineKind = "misc"
)

var validLineKinds = map[OrderLineKind]bool{
	LineKindStockItem: true,
	LineKindRecipe:    true,
	LineKindMisc:      true,
}

// IsValid checks if the line kind is known.
func (k OrderLineKind) IsValid() bool {
	return validLineKinds[k]
}

// OrderLine is one priced position on an order. Monetary fields are integer
// minor units; quantity is a fixed-precision decimal.
type OrderLine struct {
	ID          string
	OrderID     string
	LineNo      int32
	Kind        OrderLineKind
	ItemID      string // empty for misc lines
	Description string
	Quantity    decimal.Decimal
	UnitPrice   int64
	Subtotal    int64
	TaxAmount   int64
	Total       int64
	CreatedAt   time.Time
}

// Compute derives subtotal, tax and total from quantity, unit price and a tax
// rate in basis points. Cents are rounded half up.
func (l *OrderLine) Compute(taxRateBps int64) {
	sub := l.Quantity.Mul(decimal.NewFromInt(l.UnitPrice)).Round(0)
	l.Subtotal = sub.IntPart()

	taxRate := decimal.NewFromInt(taxRateBps).Div(decimal.NewFromInt(10000))
	l.TaxAmount = sub.Mul(taxRate).Round(0).IntPart()

	l.Total = l.Subtotal + l.TaxAmount
}

// Validate checks line invariants before persistence.
func (l *OrderLine) Validate() error {
	if !l.Kind.IsValid() {
		return ErrUnknownLineKind
	}
	if l.Quantity.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidQuantity
	}
	if l.UnitPrice < 0 {
		return ErrInvalidAmount
	}
	return nil
}
