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

// CountSheetRepository implements usecase.CountSheetRepository.
type CountSheetRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewCountSheetRepository creates a new CountSheetRepository.
func NewCountSheetRepository(pool *pgxpool.Pool) *CountSheetRepository {
	return &CountSheetRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx creates a new count sheet within a transaction.
func (r *CountSheetRepository) CreateTx(ctx context.Context, tx usecase.Transaction, sheet *domain.CountSheet) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	var postedAt pgtype.Timestamptz
	if sheet.PostedAt != nil {
		postedAt = timeToPgTimestamptz(*sheet.PostedAt)
	}

	_, err := queries.CreateCountSheet(ctx, generated.CreateCountSheetParams{
		ID:        sheet.ID,
		TenantID:  sheet.TenantID,
		Number:    sheet.Number,
		CountDate: timeToPgTimestamptz(sheet.CountDate),
		Status:    string(sheet.Status),
		CountedBy: sheet.CountedBy,
		Notes:     sheet.Notes,
		PostedAt:  postedAt,
		CreatedAt: timeToPgTimestamptz(sheet.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(sheet.UpdatedAt),
	})

	return err
}

// GetByID retrieves a count sheet scoped to its tenant.
func (r *CountSheetRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.CountSheet, error) {
	row, err := r.queries.GetCountSheet(ctx, generated.GetCountSheetParams{
		TenantID: tenantID,
		ID:       id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSheetNotFound
		}
		return nil, err
	}

	return rowToCountSheet(row), nil
}

// GetByIDForUpdate retrieves a count sheet with a row lock.
func (r *CountSheetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.CountSheet, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetCountSheetForUpdate(ctx, generated.GetCountSheetForUpdateParams{
		TenantID: tenantID,
		ID:       id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSheetNotFound
		}
		return nil, err
	}

	return rowToCountSheet(row), nil
}

// UpdateStatus transitions a sheet; callers must hold the row lock.
func (r *CountSheetRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, tenantID, id string, status domain.CountSheetStatus, postedAt *time.Time, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	var postedAtPg pgtype.Timestamptz
	if postedAt != nil {
		postedAtPg = timeToPgTimestamptz(*postedAt)
	}

	return queries.UpdateCountSheetStatus(ctx, generated.UpdateCountSheetStatusParams{
		TenantID:  tenantID,
		ID:        id,
		Status:    string(status),
		PostedAt:  postedAtPg,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// List retrieves count sheets for a tenant, optionally narrowed by status.
func (r *CountSheetRepository) List(ctx context.Context, tenantID string, status domain.CountSheetStatus, limit, offset int) ([]*domain.CountSheet, error) {
	rows, err := r.queries.ListCountSheets(ctx, generated.ListCountSheetsParams{
		TenantID: tenantID,
		Status:   string(status),
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	sheets := make([]*domain.CountSheet, 0, len(rows))
	for _, row := range rows {
		sheets = append(sheets, rowToCountSheet(row))
	}

	return sheets, nil
}

// CreateLineTx adds a line to a sheet within a transaction.
func (r *CountSheetRepository) CreateLineTx(ctx context.Context, tx usecase.Transaction, line *domain.CountLine) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateCountLine(ctx, generated.CreateCountLineParams{
		ID:         line.ID,
		SheetID:    line.SheetID,
		ItemID:     line.ItemID,
		LocationID: line.LocationID,
		LotID:      line.LotID,
		Expected:   decimalToNumeric(line.Expected),
		Counted:    decimalToNumeric(line.Counted),
		Variance:   decimalToNumeric(line.Variance),
		Notes:      line.Notes,
		CreatedAt:  timeToPgTimestamptz(line.CreatedAt),
	})

	return err
}

// ListLines returns all lines of a sheet in ascending line id order.
func (r *CountSheetRepository) ListLines(ctx context.Context, sheetID string) ([]*domain.CountLine, error) {
	rows, err := r.queries.ListCountLines(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	lines := make([]*domain.CountLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, rowToCountLine(row))
	}

	return lines, nil
}

func rowToCountSheet(row generated.CountSheet) *domain.CountSheet {
	var postedAt *time.Time
	if row.PostedAt.Valid {
		t := row.PostedAt.Time
		postedAt = &t
	}

	return &domain.CountSheet{
		ID:        row.ID,
		TenantID:  row.TenantID,
		Number:    row.Number,
		CountDate: row.CountDate.Time,
		Status:    domain.CountSheetStatus(row.Status),
		CountedBy: row.CountedBy,
		Notes:     row.Notes,
		PostedAt:  postedAt,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func rowToCountLine(row generated.CountLine) *domain.CountLine {
	return &domain.CountLine{
		ID:         row.ID,
		SheetID:    row.SheetID,
		ItemID:     row.ItemID,
		LocationID: row.LocationID,
		LotID:      row.LotID,
		Expected:   numericToDecimal(row.Expected),
		Counted:    numericToDecimal(row.Counted),
		Variance:   numericToDecimal(row.Variance),
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt.Time,
	}
}
