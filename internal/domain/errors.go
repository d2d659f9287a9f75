package domain

import "errors"

var (
	// Ledger / balance errors
	ErrInvalidQuantity     = errors.New("quantity must be non-zero")
	ErrQuantitySign        = errors.New("quantity sign does not match movement kind")
	ErrUnknownMovementKind = errors.New("unknown movement kind")
	ErrBalanceNotFound     = errors.New("balance not found")

	// Count sheet errors
	ErrSheetNotFound    = errors.New("count sheet not found")
	ErrLineNotFound     = errors.New("count line not found")
	ErrSheetNotApproved = errors.New("sheet must be approved before posting")
	ErrSheetNotDraft    = errors.New("sheet is not in draft status")
	ErrSheetTerminal    = errors.New("sheet is posted or void and cannot change")
	ErrSheetFull        = errors.New("sheet line limit reached")

	// Order / payment errors
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderNotOpen            = errors.New("order is not open")
	ErrOrderPaid               = errors.New("paid order must be refunded, not voided")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrNothingToCapture        = errors.New("order has no remaining balance to capture")
	ErrCaptureExceedsRemaining = errors.New("amount exceeds remaining balance")
	ErrRefundExceedsRefundable = errors.New("amount exceeds refundable balance")
	ErrUnknownPaymentMethod    = errors.New("unknown payment method")
	ErrUnknownLineKind         = errors.New("unknown order line kind")
	ErrDiscountExceedsTotal    = errors.New("discount exceeds order total")
	ErrOrderHasPayments        = errors.New("order has captured payments, refund before voiding")

	// Register session errors
	ErrSessionNotFound    = errors.New("register session not found")
	ErrSessionClosed      = errors.New("register session is not open")
	ErrSessionAlreadyOpen = errors.New("an open register session already exists for this site")

	// Cross-cutting errors
	ErrTenantMismatch = errors.New("resource does not belong to tenant")
	ErrContention     = errors.New("operation aborted due to lock contention, retry")
)

// Stable wire codes for every rejected operation. Clients branch on these
// instead of parsing error text.
const (
	CodeValidation           = "validation_failed"
	CodeNotFound             = "not_found"
	CodeSheetNotApproved     = "sheet_not_approved"
	CodeSheetNotDraft        = "sheet_not_draft"
	CodeSheetTerminal        = "sheet_terminal"
	CodeOrderNotOpen         = "order_not_open"
	CodeOrderPaid            = "order_paid"
	CodeSessionClosed        = "session_closed"
	CodeSessionAlreadyOpen   = "session_already_open"
	CodeNothingToCapture     = "nothing_to_capture"
	CodeOrderHasPayments     = "order_has_payments"
	CodeCaptureExceedsRemain = "amount_exceeds_remaining"
	CodeRefundExceedsRefund  = "refund_exceeds_refundable"
	CodeInvalidQuantity      = "invalid_quantity"
	CodeInvalidAmount        = "invalid_amount"
	CodeUnknownMovementKind  = "unknown_movement_kind"
	CodeUnknownPaymentMethod = "unknown_payment_method"
	CodeContention           = "contention"
	CodeInternal             = "internal"
)

// ErrorCode maps a domain error to its stable wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrSheetNotFound),
		errors.Is(err, ErrLineNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrBalanceNotFound):
		return CodeNotFound
	case errors.Is(err, ErrSheetNotApproved):
		return CodeSheetNotApproved
	case errors.Is(err, ErrSheetNotDraft):
		return CodeSheetNotDraft
	case errors.Is(err, ErrSheetTerminal):
		return CodeSheetTerminal
	case errors.Is(err, ErrOrderNotOpen):
		return CodeOrderNotOpen
	case errors.Is(err, ErrOrderPaid):
		return CodeOrderPaid
	case errors.Is(err, ErrSessionClosed):
		return CodeSessionClosed
	case errors.Is(err, ErrSessionAlreadyOpen):
		return CodeSessionAlreadyOpen
	case errors.Is(err, ErrNothingToCapture):
		return CodeNothingToCapture
	case errors.Is(err, ErrOrderHasPayments):
		return CodeOrderHasPayments
	case errors.Is(err, ErrCaptureExceedsRemaining):
		return CodeCaptureExceedsRemain
	case errors.Is(err, ErrRefundExceedsRefundable):
		return CodeRefundExceedsRefund
	case errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrQuantityTooBig),
		errors.Is(err, ErrQuantitySign):
		return CodeInvalidQuantity
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrAmountTooLarge),
		errors.Is(err, ErrDiscountExceedsTotal):
		return CodeInvalidAmount
	case errors.Is(err, ErrUnknownMovementKind):
		return CodeUnknownMovementKind
	case errors.Is(err, ErrUnknownPaymentMethod):
		return CodeUnknownPaymentMethod
	case errors.Is(err, ErrContention):
		return CodeContention
	case errors.Is(err, ErrUnknownLineKind),
		errors.Is(err, ErrInvalidNotes),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidTenantID),
		errors.Is(err, ErrTenantMismatch),
		errors.Is(err, ErrSheetFull):
		return CodeValidation
	default:
		return CodeInternal
	}
}
