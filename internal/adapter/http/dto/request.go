package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/usecase"
)

// CreateSheetRequest represents a request to create a count sheet.
type CreateSheetRequest struct {
	Number    string     `json:"number,omitempty"`
	CountDate *time.Time `json:"count_date,omitempty"`
	CountedBy string     `json:"counted_by,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSheetRequest) ToUseCaseInput(tenantID string) usecase.CreateSheetInput {
	return usecase.CreateSheetInput{
		TenantID:  tenantID,
		Number:    r.Number,
		CountDate: r.CountDate,
		CountedBy: r.CountedBy,
		Notes:     r.Notes,
	}
}

// AddCountLineRequest represents a request to attach a counted line to a sheet.
type AddCountLineRequest struct {
	ItemID     string          `json:"item_id"`
	LocationID string          `json:"location_id"`
	LotID      string          `json:"lot_id,omitempty"`
	Counted    decimal.Decimal `json:"counted"`
	Notes      string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddCountLineRequest) ToUseCaseInput(tenantID, sheetID string) usecase.AddLineInput {
	return usecase.AddLineInput{
		TenantID:   tenantID,
		SheetID:    sheetID,
		ItemID:     r.ItemID,
		LocationID: r.LocationID,
		LotID:      r.LotID,
		Counted:    r.Counted,
		Notes:      r.Notes,
	}
}

// CreateOrderRequest represents a request to open an order in a session.
type CreateOrderRequest struct {
	SessionID string `json:"session_id"`
	Number    string `json:"number,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateOrderRequest) ToUseCaseInput(tenantID string) usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		TenantID:  tenantID,
		SessionID: r.SessionID,
		Number:    r.Number,
	}
}

// AddOrderLineRequest represents a request to append a line to an order.
type AddOrderLineRequest struct {
	Kind        domain.OrderLineKind `json:"kind"`
	ItemID      string               `json:"item_id,omitempty"`
	Description string               `json:"description,omitempty"`
	Quantity    decimal.Decimal      `json:"quantity"`
	UnitPrice   int64                `json:"unit_price"`
}

// ToUseCaseInput converts to use case input.
func (r *AddOrderLineRequest) ToUseCaseInput(tenantID, orderID string) usecase.AddOrderLineInput {
	return usecase.AddOrderLineInput{
		TenantID:    tenantID,
		OrderID:     orderID,
		Kind:        r.Kind,
		ItemID:      r.ItemID,
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
	}
}

// ApplyDiscountRequest represents a request to set the order-level discount.
type ApplyDiscountRequest struct {
	Discount int64 `json:"discount"`
}

// ToUseCaseInput converts to use case input.
func (r *ApplyDiscountRequest) ToUseCaseInput(tenantID, orderID string) usecase.ApplyDiscountInput {
	return usecase.ApplyDiscountInput{
		TenantID: tenantID,
		OrderID:  orderID,
		Discount: r.Discount,
	}
}

// VoidOrderRequest represents a request to void an order.
type VoidOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CapturePaymentRequest represents a request to capture a payment against an
// order.
type CapturePaymentRequest struct {
	Method    domain.PaymentMethod `json:"method"`
	Amount    int64                `json:"amount"`
	Reference string               `json:"reference,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CapturePaymentRequest) ToUseCaseInput(tenantID, orderID string) usecase.CapturePaymentInput {
	return usecase.CapturePaymentInput{
		TenantID:  tenantID,
		OrderID:   orderID,
		Method:    r.Method,
		Amount:    r.Amount,
		Reference: r.Reference,
	}
}

// RefundPaymentRequest represents a request to refund captured money.
type RefundPaymentRequest struct {
	Method domain.PaymentMethod `json:"method"`
	Amount int64                `json:"amount"`
	Reason string               `json:"reason,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RefundPaymentRequest) ToUseCaseInput(tenantID, orderID string) usecase.RefundPaymentInput {
	return usecase.RefundPaymentInput{
		TenantID: tenantID,
		OrderID:  orderID,
		Method:   r.Method,
		Amount:   r.Amount,
		Reason:   r.Reason,
	}
}

// OpenSessionRequest represents a request to open a register session.
type OpenSessionRequest struct {
	SiteID       string `json:"site_id"`
	OpeningFloat int64  `json:"opening_float"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenSessionRequest) ToUseCaseInput(tenantID string) usecase.OpenSessionInput {
	return usecase.OpenSessionInput{
		TenantID:     tenantID,
		SiteID:       r.SiteID,
		OpeningFloat: r.OpeningFloat,
	}
}

// RecordMovementRequest represents a request to append a stock movement.
type RecordMovementRequest struct {
	ItemID     string              `json:"item_id"`
	LocationID string              `json:"location_id"`
	LotID      string              `json:"lot_id,omitempty"`
	Kind       domain.MovementKind `json:"kind"`
	Quantity   decimal.Decimal     `json:"quantity"`
	Reference  string              `json:"reference,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordMovementRequest) ToUseCaseInput(tenantID string) usecase.RecordMovementInput {
	return usecase.RecordMovementInput{
		TenantID:   tenantID,
		ItemID:     r.ItemID,
		LocationID: r.LocationID,
		LotID:      r.LotID,
		Kind:       r.Kind,
		Quantity:   r.Quantity,
		Reference:  r.Reference,
	}
}

// SetReorderPointRequest represents a request to set the alert threshold for
// one balance key. A zero threshold clears it.
type SetReorderPointRequest struct {
	LotID     string          `json:"lot_id,omitempty"`
	Threshold decimal.Decimal `json:"threshold"`
}

// ToUseCaseInput converts to use case input.
func (r *SetReorderPointRequest) ToUseCaseInput(tenantID, itemID, locationID string) usecase.SetReorderPointInput {
	return usecase.SetReorderPointInput{
		TenantID:   tenantID,
		ItemID:     itemID,
		LocationID: locationID,
		LotID:      r.LotID,
		Threshold:  r.Threshold,
	}
}
