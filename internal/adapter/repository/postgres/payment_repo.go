package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/postgres/generated"
	"github.com/mkarlis/posledger/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx records a payment within a transaction.
func (r *PaymentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreatePayment(ctx, generated.CreatePaymentParams{
		ID:        payment.ID,
		TenantID:  payment.TenantID,
		OrderID:   payment.OrderID,
		Method:    string(payment.Method),
		Amount:    payment.Amount,
		Status:    string(payment.Status),
		Reference: payment.Reference,
		CreatedAt: timeToPgTimestamptz(payment.CreatedAt),
	})

	return err
}

// SumByOrderTx aggregates payment amounts of one status; callers must hold
// the order lock for the sum to be stable.
func (r *PaymentRepository) SumByOrderTx(ctx context.Context, tx usecase.Transaction, orderID string, status domain.PaymentStatus) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.SumPaymentsByOrder(ctx, generated.SumPaymentsByOrderParams{
		OrderID: orderID,
		Status:  string(status),
	})
}

// ListByOrder retrieves all payments of an order, oldest first.
func (r *PaymentRepository) ListByOrder(ctx context.Context, tenantID, orderID string) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsByOrder(ctx, generated.ListPaymentsByOrderParams{
		TenantID: tenantID,
		OrderID:  orderID,
	})
	if err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, rowToPayment(row))
	}

	return payments, nil
}

func rowToPayment(row generated.Payment) *domain.Payment {
	return &domain.Payment{
		ID:        row.ID,
		TenantID:  row.TenantID,
		OrderID:   row.OrderID,
		Method:    domain.PaymentMethod(row.Method),
		Amount:    row.Amount,
		Status:    domain.PaymentStatus(row.Status),
		Reference: row.Reference,
		CreatedAt: row.CreatedAt.Time,
	}
}
