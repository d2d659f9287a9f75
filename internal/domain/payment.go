package domain

import "time"

// PaymentMethod is how a payment was taken.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

var validPaymentMethods = map[PaymentMethod]bool{
	PaymentMethodCash:     true,
	PaymentMethodCard:     true,
	PaymentMethodTransfer: true,
}

// IsValid checks if the payment method is known.
func (m PaymentMethod) IsValid() bool {
	return validPaymentMethods[m]
}

// PaymentStatus marks a payment row as a capture or a refund.
type PaymentStatus string

const (
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment is one immutable money movement against an order. Amount is in
// integer minor currency units and always positive; the status tells the
// direction. The guard invariant is
// sum(captured) - sum(refunded) <= order.Total at all times.
type Payment struct {
	ID        string
	TenantID  string
	OrderID   string
	Method    PaymentMethod
	Amount    int64
	Status    PaymentStatus
	Reference string
	CreatedAt time.Time
}

// Validate checks payment invariants before persistence.
func (p *Payment) Validate() error {
	if !p.Method.IsValid() {
		return ErrUnknownPaymentMethod
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
