package domain

import "time"

// AuditEvent codes every state-changing operation the core performs.
type AuditEvent string

const (
	AuditSheetCreated  AuditEvent = "count_sheet.created"
	AuditSheetApproved AuditEvent = "count_sheet.approved"
	AuditSheetPosted   AuditEvent = "count_sheet.posted"
	AuditSheetVoided   AuditEvent = "count_sheet.voided"

	AuditOrderCreated    AuditEvent = "order.created"
	AuditOrderVoided     AuditEvent = "order.voided"
	AuditDiscountApplied AuditEvent = "order.discount_applied"
	AuditPaymentCaptured AuditEvent = "payment.captured"
	AuditPaymentRefunded AuditEvent = "payment.refunded"

	AuditMovementRecorded AuditEvent = "stock.movement_recorded"
	AuditReorderPointSet  AuditEvent = "stock.reorder_point_set"

	AuditSessionOpened AuditEvent = "session.opened"
	AuditSessionClosed AuditEvent = "session.closed"
)

// AuditDetailVersion is the current AuditDetail schema version.
const AuditDetailVersion = 1

// AuditDetail is the structured payload of an audit record. Consumers branch
// on SchemaVersion instead of parsing free-form text; unused fields are
// omitted per event.
type AuditDetail struct {
	SchemaVersion int    `json:"schema_version"`
	SheetID       string `json:"sheet_id,omitempty"`
	SheetNumber   string `json:"sheet_number,omitempty"`
	LineCount     int    `json:"line_count,omitempty"`
	PostedCount   int    `json:"posted_count,omitempty"`
	OrderID       string `json:"order_id,omitempty"`
	OrderNumber   string `json:"order_number,omitempty"`
	OrderStatus   string `json:"order_status,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	ItemID        string `json:"item_id,omitempty"`
	LocationID    string `json:"location_id,omitempty"`
	LotID         string `json:"lot_id,omitempty"`
	MovementKind  string `json:"movement_kind,omitempty"`
	Quantity      string `json:"quantity,omitempty"`
	Method        string `json:"method,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// AuditRecord documents one committed mutation. It is written in the same
// transaction as the mutation itself, so the trail can never diverge from
// ledger, order or session state. Records are append-only.
type AuditRecord struct {
	ID            string
	TenantID      string
	Event         AuditEvent
	ActorID       string
	CorrelationID string
	Detail        AuditDetail
	IPAddress     string
	RequestID     string
	CreatedAt     time.Time
}

// AuditFilter narrows audit queries. Zero-valued fields are ignored.
type AuditFilter struct {
	TenantID      string
	Event         string
	ActorID       string
	CorrelationID string
	Since         *time.Time
	Until         *time.Time
	Limit         int
	Offset        int
}
