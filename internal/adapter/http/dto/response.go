package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/usecase"
)

// CountSheetResponse represents a count sheet in API responses.
type CountSheetResponse struct {
	ID        string     `json:"id"`
	Number    string     `json:"number"`
	CountDate time.Time  `json:"count_date"`
	Status    string     `json:"status"`
	CountedBy string     `json:"counted_by"`
	Notes     string     `json:"notes,omitempty"`
	PostedAt  *time.Time `json:"posted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CountSheetFromDomain converts a domain count sheet to a response.
func CountSheetFromDomain(s *domain.CountSheet) *CountSheetResponse {
	return &CountSheetResponse{
		ID:        s.ID,
		Number:    s.Number,
		CountDate: s.CountDate,
		Status:    string(s.Status),
		CountedBy: s.CountedBy,
		Notes:     s.Notes,
		PostedAt:  s.PostedAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CountSheetsFromDomain converts domain count sheets to responses.
func CountSheetsFromDomain(sheets []*domain.CountSheet) []*CountSheetResponse {
	result := make([]*CountSheetResponse, len(sheets))
	for i, s := range sheets {
		result[i] = CountSheetFromDomain(s)
	}
	return result
}

// ListSheetsResponse wraps a page of count sheets.
type ListSheetsResponse struct {
	Sheets []*CountSheetResponse `json:"sheets"`
	Total  int64                 `json:"total"`
}

// CountLineResponse represents a count line in API responses.
type CountLineResponse struct {
	ID         string          `json:"id"`
	SheetID    string          `json:"sheet_id"`
	ItemID     string          `json:"item_id"`
	LocationID string          `json:"location_id"`
	LotID      string          `json:"lot_id,omitempty"`
	Expected   decimal.Decimal `json:"expected"`
	Counted    decimal.Decimal `json:"counted"`
	Variance   decimal.Decimal `json:"variance"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CountLineFromDomain converts a domain count line to a response.
func CountLineFromDomain(l *domain.CountLine) *CountLineResponse {
	return &CountLineResponse{
		ID:         l.ID,
		SheetID:    l.SheetID,
		ItemID:     l.ItemID,
		LocationID: l.LocationID,
		LotID:      l.LotID,
		Expected:   l.Expected,
		Counted:    l.Counted,
		Variance:   l.Variance,
		Notes:      l.Notes,
		CreatedAt:  l.CreatedAt,
	}
}

// CountLinesFromDomain converts domain count lines to responses.
func CountLinesFromDomain(lines []*domain.CountLine) []*CountLineResponse {
	result := make([]*CountLineResponse, len(lines))
	for i, l := range lines {
		result[i] = CountLineFromDomain(l)
	}
	return result
}

// ListCountLinesResponse wraps the lines of one sheet.
type ListCountLinesResponse struct {
	Lines []*CountLineResponse `json:"lines"`
	Total int64                `json:"total"`
}

// PostSheetResponse represents the outcome of posting a count sheet.
type PostSheetResponse struct {
	Sheet         *CountSheetResponse `json:"sheet"`
	CorrelationID string              `json:"correlation_id"`
	LineCount     int                 `json:"line_count"`
	PostedCount   int                 `json:"posted_count"`
	ReorderAlerts int                 `json:"reorder_alerts"`
}

// PostResultFromUseCase converts a posting result to a response.
func PostResultFromUseCase(res *usecase.PostResult) *PostSheetResponse {
	return &PostSheetResponse{
		Sheet:         CountSheetFromDomain(res.Sheet),
		CorrelationID: res.CorrelationID,
		LineCount:     res.LineCount,
		PostedCount:   res.PostedCount,
		ReorderAlerts: res.ReorderAlerts,
	}
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID            string     `json:"id"`
	SiteID        string     `json:"site_id"`
	SessionID     string     `json:"session_id"`
	Number        string     `json:"number"`
	Status        string     `json:"status"`
	Subtotal      int64      `json:"subtotal"`
	TaxTotal      int64      `json:"tax_total"`
	DiscountTotal int64      `json:"discount_total"`
	Total         int64      `json:"total"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// OrderFromDomain converts a domain order to a response.
func OrderFromDomain(o *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:            o.ID,
		SiteID:        o.SiteID,
		SessionID:     o.SessionID,
		Number:        o.Number,
		Status:        string(o.Status),
		Subtotal:      o.Subtotal,
		TaxTotal:      o.TaxTotal,
		DiscountTotal: o.DiscountTotal,
		Total:         o.Total,
		PaidAt:        o.PaidAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// OrdersFromDomain converts domain orders to responses.
func OrdersFromDomain(orders []*domain.Order) []*OrderResponse {
	result := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = OrderFromDomain(o)
	}
	return result
}

// ListOrdersResponse wraps a page of orders.
type ListOrdersResponse struct {
	Orders []*OrderResponse `json:"orders"`
	Total  int64            `json:"total"`
}

// OrderLineResponse represents an order line in API responses.
type OrderLineResponse struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	LineNo      int32           `json:"line_no"`
	Kind        string          `json:"kind"`
	ItemID      string          `json:"item_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   int64           `json:"unit_price"`
	Subtotal    int64           `json:"subtotal"`
	TaxAmount   int64           `json:"tax_amount"`
	Total       int64           `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderLineFromDomain converts a domain order line to a response.
func OrderLineFromDomain(l *domain.OrderLine) *OrderLineResponse {
	return &OrderLineResponse{
		ID:          l.ID,
		OrderID:     l.OrderID,
		LineNo:      l.LineNo,
		Kind:        string(l.Kind),
		ItemID:      l.ItemID,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Subtotal:    l.Subtotal,
		TaxAmount:   l.TaxAmount,
		Total:       l.Total,
		CreatedAt:   l.CreatedAt,
	}
}

// OrderLinesFromDomain converts domain order lines to responses.
func OrderLinesFromDomain(lines []*domain.OrderLine) []*OrderLineResponse {
	result := make([]*OrderLineResponse, len(lines))
	for i, l := range lines {
		result[i] = OrderLineFromDomain(l)
	}
	return result
}

// ListOrderLinesResponse wraps the lines of one order.
type ListOrderLinesResponse struct {
	Lines []*OrderLineResponse `json:"lines"`
	Total int64                `json:"total"`
}

// AddOrderLineResponse carries the new line and the recomputed order.
type AddOrderLineResponse struct {
	Order *OrderResponse     `json:"order"`
	Line  *OrderLineResponse `json:"line"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Method    string    `json:"method"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Method:    string(p.Method),
		Amount:    p.Amount,
		Status:    string(p.Status),
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// ListPaymentsResponse wraps the payments of one order.
type ListPaymentsResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int64              `json:"total"`
}

// CapturePaymentResponse carries the committed payment, the post-capture
// order, the remaining balance and the cash change due.
type CapturePaymentResponse struct {
	Payment   *PaymentResponse `json:"payment"`
	Order     *OrderResponse   `json:"order"`
	Remaining int64            `json:"remaining"`
	ChangeDue int64            `json:"change_due"`
}

// CaptureResultFromUseCase converts a capture result to a response.
func CaptureResultFromUseCase(res *usecase.CaptureResult) *CapturePaymentResponse {
	return &CapturePaymentResponse{
		Payment:   PaymentFromDomain(res.Payment),
		Order:     OrderFromDomain(res.Order),
		Remaining: res.Remaining,
		ChangeDue: res.ChangeDue,
	}
}

// RefundPaymentResponse carries the refund row, the post-refund order and the
// amount still refundable.
type RefundPaymentResponse struct {
	Payment    *PaymentResponse `json:"payment"`
	Order      *OrderResponse   `json:"order"`
	Refundable int64            `json:"refundable"`
}

// RefundResultFromUseCase converts a refund result to a response.
func RefundResultFromUseCase(res *usecase.RefundResult) *RefundPaymentResponse {
	return &RefundPaymentResponse{
		Payment:    PaymentFromDomain(res.Payment),
		Order:      OrderFromDomain(res.Order),
		Refundable: res.Refundable,
	}
}

// SessionResponse represents a register session in API responses.
type SessionResponse struct {
	ID           string     `json:"id"`
	SiteID       string     `json:"site_id"`
	OpenedBy     string     `json:"opened_by"`
	ClosedBy     string     `json:"closed_by,omitempty"`
	Status       string     `json:"status"`
	OpeningFloat int64      `json:"opening_float"`
	OpenedAt     time.Time  `json:"opened_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}

// SessionFromDomain converts a domain register session to a response.
func SessionFromDomain(s *domain.RegisterSession) *SessionResponse {
	return &SessionResponse{
		ID:           s.ID,
		SiteID:       s.SiteID,
		OpenedBy:     s.OpenedBy,
		ClosedBy:     s.ClosedBy,
		Status:       string(s.Status),
		OpeningFloat: s.OpeningFloat,
		OpenedAt:     s.OpenedAt,
		ClosedAt:     s.ClosedAt,
	}
}

// SessionSummaryResponse represents the money summary of one session.
type SessionSummaryResponse struct {
	SessionID      string           `json:"session_id"`
	OrderCount     int64            `json:"order_count"`
	CapturedTotal  int64            `json:"captured_total"`
	RefundedTotal  int64            `json:"refunded_total"`
	TotalsByMethod map[string]int64 `json:"totals_by_method"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// SessionSummaryFromDomain converts a domain session summary to a response.
func SessionSummaryFromDomain(s *domain.SessionSummary) *SessionSummaryResponse {
	return &SessionSummaryResponse{
		SessionID:      s.SessionID,
		OrderCount:     s.OrderCount,
		CapturedTotal:  s.CapturedTotal,
		RefundedTotal:  s.RefundedTotal,
		TotalsByMethod: s.TotalsByMethod,
		GeneratedAt:    s.GeneratedAt,
	}
}

// BalanceResponse represents a materialized balance in API responses.
type BalanceResponse struct {
	ItemID       string          `json:"item_id"`
	LocationID   string          `json:"location_id"`
	LotID        string          `json:"lot_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b *domain.Balance) *BalanceResponse {
	return &BalanceResponse{
		ItemID:       b.ItemID,
		LocationID:   b.LocationID,
		LotID:        b.LotID,
		Quantity:     b.Quantity,
		ReorderPoint: b.ReorderPoint,
		Version:      b.Version,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// BalancesFromDomain converts domain balances to responses.
func BalancesFromDomain(balances []*domain.Balance) []*BalanceResponse {
	result := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = BalanceFromDomain(b)
	}
	return result
}

// ListBalancesResponse wraps a page of balances.
type ListBalancesResponse struct {
	Balances []*BalanceResponse `json:"balances"`
	Total    int64              `json:"total"`
}

// LedgerEntryResponse represents a ledger entry in API responses.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	LocationID    string          `json:"location_id"`
	LotID         string          `json:"lot_id,omitempty"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"`
	CorrelationID string          `json:"correlation_id"`
	ActorID       string          `json:"actor_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LedgerEntryFromDomain converts a domain ledger entry to a response.
func LedgerEntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:            e.ID,
		ItemID:        e.ItemID,
		LocationID:    e.LocationID,
		LotID:         e.LotID,
		Kind:          string(e.Kind),
		Quantity:      e.Quantity,
		CorrelationID: e.CorrelationID,
		ActorID:       e.ActorID,
		CreatedAt:     e.CreatedAt,
	}
}

// LedgerEntriesFromDomain converts domain ledger entries to responses.
func LedgerEntriesFromDomain(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	result := make([]*LedgerEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = LedgerEntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a page of ledger entries.
type ListEntriesResponse struct {
	Entries []*LedgerEntryResponse `json:"entries"`
	Total   int64                  `json:"total"`
}

// MovementResponse carries the appended entry and the post-apply balance.
type MovementResponse struct {
	Entry   *LedgerEntryResponse `json:"entry"`
	Balance *BalanceResponse     `json:"balance"`
}

// MovementResultFromUseCase converts a movement result to a response.
func MovementResultFromUseCase(res *usecase.MovementResult) *MovementResponse {
	return &MovementResponse{
		Entry:   LedgerEntryFromDomain(res.Entry),
		Balance: BalanceFromDomain(res.Balance),
	}
}

// DriftResponse represents one balance key whose materialized quantity
// disagrees with its entry sum.
type DriftResponse struct {
	ItemID     string          `json:"item_id"`
	LocationID string          `json:"location_id"`
	LotID      string          `json:"lot_id,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
	EntrySum   decimal.Decimal `json:"entry_sum"`
}

// ProjectionReportResponse represents a projection consistency report.
type ProjectionReportResponse struct {
	Consistent bool             `json:"consistent"`
	Drifts     []*DriftResponse `json:"drifts"`
	CheckedAt  time.Time        `json:"checked_at"`
}

// ProjectionReportFromUseCase converts a projection report to a response.
func ProjectionReportFromUseCase(report *usecase.ProjectionReport) *ProjectionReportResponse {
	drifts := make([]*DriftResponse, len(report.Drifts))
	for i, d := range report.Drifts {
		drifts[i] = &DriftResponse{
			ItemID:     d.Key.ItemID,
			LocationID: d.Key.LocationID,
			LotID:      d.Key.LotID,
			Balance:    d.Balance,
			EntrySum:   d.EntrySum,
		}
	}
	return &ProjectionReportResponse{
		Consistent: report.Consistent,
		Drifts:     drifts,
		CheckedAt:  report.CheckedAt,
	}
}

// AuditRecordResponse represents an audit record in API responses.
type AuditRecordResponse struct {
	ID            string             `json:"id"`
	Event         string             `json:"event"`
	ActorID       string             `json:"actor_id"`
	CorrelationID string             `json:"correlation_id"`
	Detail        domain.AuditDetail `json:"detail"`
	IPAddress     string             `json:"ip_address,omitempty"`
	RequestID     string             `json:"request_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// AuditRecordFromDomain converts a domain audit record to a response.
func AuditRecordFromDomain(r *domain.AuditRecord) *AuditRecordResponse {
	return &AuditRecordResponse{
		ID:            r.ID,
		Event:         string(r.Event),
		ActorID:       r.ActorID,
		CorrelationID: r.CorrelationID,
		Detail:        r.Detail,
		IPAddress:     r.IPAddress,
		RequestID:     r.RequestID,
		CreatedAt:     r.CreatedAt,
	}
}

// AuditRecordsFromDomain converts domain audit records to responses.
func AuditRecordsFromDomain(records []*domain.AuditRecord) []*AuditRecordResponse {
	result := make([]*AuditRecordResponse, len(records))
	for i, r := range records {
		result[i] = AuditRecordFromDomain(r)
	}
	return result
}

// ListAuditResponse wraps a page of audit records.
type ListAuditResponse struct {
	Records []*AuditRecordResponse `json:"records"`
	Total   int64                  `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
