package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/domain"
)

func TestCreateSheetRequest_ToUseCaseInput(t *testing.T) {
	countDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	req := &CreateSheetRequest{
		Number:    "CS-100",
		CountDate: &countDate,
		CountedBy: "actor-7",
		Notes:     "monthly count",
	}

	got := req.ToUseCaseInput("tenant-1")

	if got.TenantID != "tenant-1" || got.Number != "CS-100" || got.CountedBy != "actor-7" {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
	if got.CountDate == nil || !got.CountDate.Equal(countDate) {
		t.Fatalf("expected count date %v, got %v", countDate, got.CountDate)
	}
}

func TestAddCountLineRequest_ToUseCaseInput(t *testing.T) {
	req := &AddCountLineRequest{
		ItemID:     "item-1",
		LocationID: "loc-1",
		LotID:      "lot-9",
		Counted:    decimal.RequireFromString("12.5"),
		Notes:      "shelf 3",
	}

	got := req.ToUseCaseInput("tenant-1", "sheet-1")

	if got.TenantID != "tenant-1" || got.SheetID != "sheet-1" {
		t.Fatalf("expected scoping from path, got %+v", got)
	}
	if got.ItemID != "item-1" || got.LocationID != "loc-1" || got.LotID != "lot-9" {
		t.Fatalf("unexpected key fields: %+v", got)
	}
	if !got.Counted.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected counted 12.5, got %s", got.Counted)
	}
}

func TestAddOrderLineRequest_ToUseCaseInput(t *testing.T) {
	req := &AddOrderLineRequest{
		Kind:      domain.LineKindStockItem,
		ItemID:    "item-1",
		Quantity:  decimal.NewFromInt(2),
		UnitPrice: 350,
	}

	got := req.ToUseCaseInput("tenant-1", "order-1")

	if got.TenantID != "tenant-1" || got.OrderID != "order-1" {
		t.Fatalf("expected scoping from path, got %+v", got)
	}
	if got.Kind != domain.LineKindStockItem || got.UnitPrice != 350 {
		t.Fatalf("unexpected line fields: %+v", got)
	}
}

func TestCapturePaymentRequest_ToUseCaseInput(t *testing.T) {
	req := &CapturePaymentRequest{
		Method:    domain.PaymentMethodCash,
		Amount:    1000,
		Reference: "drawer-1",
	}

	got := req.ToUseCaseInput("tenant-1", "order-1")

	if got.TenantID != "tenant-1" || got.OrderID != "order-1" {
		t.Fatalf("expected scoping from path, got %+v", got)
	}
	if got.Method != domain.PaymentMethodCash || got.Amount != 1000 || got.Reference != "drawer-1" {
		t.Fatalf("unexpected payment fields: %+v", got)
	}
}

func TestSetReorderPointRequest_ToUseCaseInput(t *testing.T) {
	req := &SetReorderPointRequest{
		LotID:     "lot-2",
		Threshold: decimal.NewFromInt(5),
	}

	got := req.ToUseCaseInput("tenant-1", "item-1", "loc-1")

	if got.TenantID != "tenant-1" || got.ItemID != "item-1" || got.LocationID != "loc-1" || got.LotID != "lot-2" {
		t.Fatalf("expected key from path and body, got %+v", got)
	}
	if !got.Threshold.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected threshold 5, got %s", got.Threshold)
	}
}
