package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkarlis/posledger/internal/domain"
)

func TestSessionRepositoryCreateTxMapsUniqueViolation(t *testing.T) {
	mockPool := newMockPool(t)

	mockPool.ExpectBegin()
	mockPool.ExpectQuery("INSERT INTO register_sessions").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})
	mockPool.ExpectRollback()

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	repo := &SessionRepository{}
	err = repo.CreateTx(context.Background(), tx, &domain.RegisterSession{
		ID:           "ses-1",
		TenantID:     "tenant-1",
		SiteID:       "site-1",
		OpenedBy:     "cashier-1",
		Status:       domain.SessionStatusOpen,
		OpeningFloat: 10000,
		OpenedAt:     time.Now().UTC(),
	})

	if !errors.Is(err, domain.ErrSessionAlreadyOpen) {
		t.Fatalf("expected ErrSessionAlreadyOpen, got %v", err)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestSessionRepositoryCreateTxPassesThroughOtherErrors(t *testing.T) {
	mockPool := newMockPool(t)
	connErr := errors.New("connection reset")

	mockPool.ExpectBegin()
	mockPool.ExpectQuery("INSERT INTO register_sessions").WillReturnError(connErr)
	mockPool.ExpectRollback()

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	repo := &SessionRepository{}
	err = repo.CreateTx(context.Background(), tx, &domain.RegisterSession{
		ID:       "ses-1",
		TenantID: "tenant-1",
		SiteID:   "site-1",
		Status:   domain.SessionStatusOpen,
		OpenedAt: time.Now().UTC(),
	})

	if errors.Is(err, domain.ErrSessionAlreadyOpen) {
		t.Fatalf("plain connection error must not map to ErrSessionAlreadyOpen")
	}
	if !errors.Is(err, connErr) {
		t.Fatalf("expected wrapped connection error, got %v", err)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}

	assertExpectations(t, mockPool)
}
