package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// MaxSheetLines is the maximum number of lines a single count sheet may
	// carry; posting larger sheets would hold the sheet lock too long.
	MaxSheetLines = 1000

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// SessionSummaryCacheTTL is how long a session summary is cached.
	SessionSummaryCacheTTL = 5 * time.Minute
)
