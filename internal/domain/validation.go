package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidTenantID = errors.New("invalid tenant id")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidNotes    = errors.New("notes exceed maximum length")
	ErrQuantityTooBig  = errors.New("quantity exceeds maximum allowed")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxIDLength    = 64
	MaxNotesLength = 2000
	MaxQuantity    = "1000000000" // 1 billion units
	MaxMoneyAmount = 1_000_000_000_00
)

// ValidateTenantID validates a tenant identifier.
func ValidateTenantID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxIDLength {
		return ErrInvalidTenantID
	}
	return nil
}

// ValidateID validates an opaque resource identifier.
func ValidateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxIDLength {
		return ErrInvalidID
	}
	return nil
}

// ValidateQuantity validates a signed quantity delta.
func ValidateQuantity(q decimal.Decimal) error {
	if q.IsZero() {
		return ErrInvalidQuantity
	}

	maxQty, _ := decimal.NewFromString(MaxQuantity)
	if q.Abs().GreaterThan(maxQty) {
		return fmt.Errorf("%w: maximum is %s", ErrQuantityTooBig, MaxQuantity)
	}

	return nil
}

// ValidateCountedQuantity validates a counted stock quantity. Zero is a
// legitimate count result; negative counts are not.
func ValidateCountedQuantity(q decimal.Decimal) error {
	if q.IsNegative() {
		return ErrInvalidQuantity
	}

	maxQty, _ := decimal.NewFromString(MaxQuantity)
	if q.GreaterThan(maxQty) {
		return fmt.Errorf("%w: maximum is %s", ErrQuantityTooBig, MaxQuantity)
	}

	return nil
}

// ValidateMoney validates a positive monetary amount in minor units.
func ValidateMoney(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxMoneyAmount {
		return fmt.Errorf("%w: maximum is %d", ErrAmountTooLarge, int64(MaxMoneyAmount))
	}
	return nil
}

// ValidateNotes validates free-text notes length.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return fmt.Errorf("%w: maximum is %d characters", ErrInvalidNotes, MaxNotesLength)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
