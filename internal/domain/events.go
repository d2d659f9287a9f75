package domain

import "time"

// Event types
const (
	EventTypeCountPosted      = "count.posted"
	EventTypeOrderPaid        = "order.paid"
	EventTypeOrderRefunded    = "order.refunded"
	EventTypeOrderVoided      = "order.voided"
	EventTypeMovementRecorded = "stock.movement_recorded"
	EventTypeReorderAlert     = "stock.reorder_alert"
	EventTypeSessionOpened    = "session.opened"
	EventTypeSessionClosed    = "session.closed"
)

// Aggregate types
const (
	AggregateTypeCountSheet = "count_sheet"
	AggregateTypeOrder      = "order"
	AggregateTypeBalance    = "balance"
	AggregateTypeSession    = "session"
)

// OutboxEvent is a to-be-published notification, written in the same
// transaction as the mutation it describes and delivered asynchronously.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// CountPostedEvent payload
type CountPostedEvent struct {
	SheetID       string `json:"sheet_id"`
	SheetNumber   string `json:"sheet_number"`
	CorrelationID string `json:"correlation_id"`
	PostedLines   int    `json:"posted_lines"`
}

// OrderPaidEvent payload
type OrderPaidEvent struct {
	OrderID   string `json:"order_id"`
	SessionID string `json:"session_id"`
	Total     int64  `json:"total"`
}

// OrderRefundedEvent payload
type OrderRefundedEvent struct {
	OrderID  string `json:"order_id"`
	Refunded int64  `json:"refunded"`
}

// ReorderAlertEvent payload
type ReorderAlertEvent struct {
	ItemID       string `json:"item_id"`
	LocationID   string `json:"location_id"`
	LotID        string `json:"lot_id,omitempty"`
	Quantity     string `json:"quantity"`
	ReorderPoint string `json:"reorder_point"`
}
