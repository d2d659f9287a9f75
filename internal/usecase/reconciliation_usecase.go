package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mkarlis/posledger/internal/domain"
)

// ReconciliationUseCase verifies the projection invariant: for every balance
// key, the materialized quantity equals the sum of its ledger entries.
type ReconciliationUseCase struct {
	ledgerRepo  LedgerRepository
	balanceRepo BalanceRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	ledgerRepo LedgerRepository,
	balanceRepo BalanceRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledgerRepo:  ledgerRepo,
		balanceRepo: balanceRepo,
	}
}

// ProjectionReport represents the result of one projection check.
type ProjectionReport struct {
	TenantID   string
	Consistent bool
	Drifts     []ProjectionDrift
	CheckedAt  time.Time
}

// VerifyProjection compares every balance of the tenant against the entry
// sums and reports the keys that drift. A consistent report has no drifts.
func (uc *ReconciliationUseCase) VerifyProjection(ctx context.Context, tenantID string) (*ProjectionReport, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	drifts, err := uc.ledgerRepo.CheckProjection(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &ProjectionReport{
		TenantID:   tenantID,
		Consistent: len(drifts) == 0,
		Drifts:     drifts,
		CheckedAt:  time.Now().UTC(),
	}, nil
}

// CheckProjection is the error-returning form used by operational tooling:
// it fails when any balance key has drifted from its entry sum.
func (uc *ReconciliationUseCase) CheckProjection(ctx context.Context, tenantID string) error {
	report, err := uc.VerifyProjection(ctx, tenantID)
	if err != nil {
		return err
	}

	if !report.Consistent {
		first := report.Drifts[0]
		return fmt.Errorf(
			"balance projection drift: %d keys diverged, first item=%s location=%s balance=%s entry_sum=%s",
			len(report.Drifts),
			first.Key.ItemID,
			first.Key.LocationID,
			first.Balance.String(),
			first.EntrySum.String(),
		)
	}

	return nil
}
