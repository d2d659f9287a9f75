package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/postgres/generated"
	"github.com/mkarlis/posledger/internal/usecase"
)

// OrderRepository implements usecase.OrderRepository.
type OrderRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx creates a new order within a transaction.
func (r *OrderRepository) CreateTx(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	var paidAt pgtype.Timestamptz
	if order.PaidAt != nil {
		paidAt = timeToPgTimestamptz(*order.PaidAt)
	}

	_, err := queries.CreateOrder(ctx, generated.CreateOrderParams{
		ID:            order.ID,
		TenantID:      order.TenantID,
		SiteID:        order.SiteID,
		SessionID:     order.SessionID,
		Number:        order.Number,
		Status:        string(order.Status),
		Subtotal:      order.Subtotal,
		TaxTotal:      order.TaxTotal,
		DiscountTotal: order.DiscountTotal,
		Total:         order.Total,
		PaidAt:        paidAt,
		CreatedAt:     timeToPgTimestamptz(order.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(order.UpdatedAt),
	})

	return err
}

// GetByID retrieves an order scoped to its tenant.
func (r *OrderRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Order, error) {
	row, err := r.queries.GetOrder(ctx, generated.GetOrderParams{
		TenantID: tenantID,
		ID:       id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return rowToOrder(row), nil
}

// GetByIDForUpdate retrieves an order with a row lock. Every payment and
// status mutation serializes on this lock.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Order, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetOrderForUpdate(ctx, generated.GetOrderForUpdateParams{
		TenantID: tenantID,
		ID:       id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return rowToOrder(row), nil
}

// UpdateStatus transitions an order; callers must hold the row lock.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, tenantID, id string, status domain.OrderStatus, paidAt *time.Time, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	var paidAtPg pgtype.Timestamptz
	if paidAt != nil {
		paidAtPg = timeToPgTimestamptz(*paidAt)
	}

	return queries.UpdateOrderStatus(ctx, generated.UpdateOrderStatusParams{
		TenantID:  tenantID,
		ID:        id,
		Status:    string(status),
		PaidAt:    paidAtPg,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// UpdateTotals persists recomputed order totals; callers must hold the row
// lock.
func (r *OrderRepository) UpdateTotals(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateOrderTotals(ctx, generated.UpdateOrderTotalsParams{
		TenantID:      order.TenantID,
		ID:            order.ID,
		Subtotal:      order.Subtotal,
		TaxTotal:      order.TaxTotal,
		DiscountTotal: order.DiscountTotal,
		Total:         order.Total,
		UpdatedAt:     timeToPgTimestamptz(order.UpdatedAt),
	})
}

// ListBySession retrieves orders of one register session, newest first.
func (r *OrderRepository) ListBySession(ctx context.Context, tenantID, sessionID string, limit, offset int) ([]*domain.Order, error) {
	rows, err := r.queries.ListOrdersBySession(ctx, generated.ListOrdersBySessionParams{
		TenantID:  tenantID,
		SessionID: sessionID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, rowToOrder(row))
	}

	return orders, nil
}

// CreateLineTx adds a line to an order within a transaction.
func (r *OrderRepository) CreateLineTx(ctx context.Context, tx usecase.Transaction, line *domain.OrderLine) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateOrderLine(ctx, generated.CreateOrderLineParams{
		ID:          line.ID,
		OrderID:     line.OrderID,
		LineNo:      line.LineNo,
		Kind:        string(line.Kind),
		ItemID:      line.ItemID,
		Description: line.Description,
		Quantity:    decimalToNumeric(line.Quantity),
		UnitPrice:   line.UnitPrice,
		Subtotal:    line.Subtotal,
		TaxAmount:   line.TaxAmount,
		Total:       line.Total,
		CreatedAt:   timeToPgTimestamptz(line.CreatedAt),
	})

	return err
}

// ListLines returns all lines of an order in line number order.
func (r *OrderRepository) ListLines(ctx context.Context, orderID string) ([]*domain.OrderLine, error) {
	rows, err := r.queries.ListOrderLines(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines := make([]*domain.OrderLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, rowToOrderLine(row))
	}

	return lines, nil
}

// NextLineNo returns the next sequential line number; callers must hold the
// order lock.
func (r *OrderRepository) NextLineNo(ctx context.Context, tx usecase.Transaction, orderID string) (int32, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.NextOrderLineNo(ctx, orderID)
}

func rowToOrder(row generated.Order) *domain.Order {
	var paidAt *time.Time
	if row.PaidAt.Valid {
		t := row.PaidAt.Time
		paidAt = &t
	}

	return &domain.Order{
		ID:            row.ID,
		TenantID:      row.TenantID,
		SiteID:        row.SiteID,
		SessionID:     row.SessionID,
		Number:        row.Number,
		Status:        domain.OrderStatus(row.Status),
		Subtotal:      row.Subtotal,
		TaxTotal:      row.TaxTotal,
		DiscountTotal: row.DiscountTotal,
		Total:         row.Total,
		PaidAt:        paidAt,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

func rowToOrderLine(row generated.OrderLine) *domain.OrderLine {
	return &domain.OrderLine{
		ID:          row.ID,
		OrderID:     row.OrderID,
		LineNo:      row.LineNo,
		Kind:        domain.OrderLineKind(row.Kind),
		ItemID:      row.ItemID,
		Description: row.Description,
		Quantity:    numericToDecimal(row.Quantity),
		UnitPrice:   row.UnitPrice,
		Subtotal:    row.Subtotal,
		TaxAmount:   row.TaxAmount,
		Total:       row.Total,
		CreatedAt:   row.CreatedAt.Time,
	}
}
