package domain

import "time"

// SessionStatus is the lifecycle state of a register session.
type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "open"
	SessionStatusClosed SessionStatus = "closed"
)

// RegisterSession is one cashier shift at a site. Orders belong to a session
// and payments can only be captured while the session is open. Closing is
// terminal.
type RegisterSession struct {
	ID           string
	TenantID     string
	SiteID       string
	OpenedBy     string
	ClosedBy     string
	Status       SessionStatus
	OpeningFloat int64 // starting cash in the drawer, minor units
	OpenedAt     time.Time
	ClosedAt     *time.Time
}

// IsOpen reports whether the session still accepts orders and payments.
func (s *RegisterSession) IsOpen() bool {
	return s.Status == SessionStatusOpen
}

// SessionSummary aggregates the committed money state of one session.
// It is a read model, derived entirely from orders and payments.
type SessionSummary struct {
	SessionID      string           `json:"session_id"`
	OrderCount     int64            `json:"order_count"`
	CapturedTotal  int64            `json:"captured_total"`
	RefundedTotal  int64            `json:"refunded_total"`
	TotalsByMethod map[string]int64 `json:"totals_by_method"`
	GeneratedAt    time.Time        `json:"generated_at"`
}
