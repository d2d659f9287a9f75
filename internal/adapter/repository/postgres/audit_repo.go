package postgres

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/postgres/generated"
	"github.com/mkarlis/posledger/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx appends an audit record within the mutation's transaction, so the
// record commits or rolls back with the change it describes.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, record *domain.AuditRecord) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	detail, err := json.Marshal(record.Detail)
	if err != nil {
		return err
	}

	_, err = queries.CreateAuditRecord(ctx, generated.CreateAuditRecordParams{
		ID:            record.ID,
		TenantID:      record.TenantID,
		Event:         string(record.Event),
		ActorID:       record.ActorID,
		CorrelationID: record.CorrelationID,
		Detail:        detail,
		IpAddress:     record.IPAddress,
		RequestID:     record.RequestID,
		CreatedAt:     timeToPgTimestamptz(record.CreatedAt),
	})

	return err
}

// List retrieves audit records matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	query, args := buildAuditListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*domain.AuditRecord{}
	for rows.Next() {
		var row generated.AuditRecord
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.Event,
			&row.ActorID,
			&row.CorrelationID,
			&row.Detail,
			&row.IpAddress,
			&row.RequestID,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rowToAuditRecord(row))
	}

	return records, rows.Err()
}

// GetByCorrelationID retrieves every record written for one business
// operation, oldest first.
func (r *AuditRepository) GetByCorrelationID(ctx context.Context, tenantID, correlationID string) ([]*domain.AuditRecord, error) {
	rows, err := r.queries.GetAuditRecordsByCorrelation(ctx, generated.GetAuditRecordsByCorrelationParams{
		TenantID:      tenantID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}

	records := make([]*domain.AuditRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowToAuditRecord(row))
	}

	return records, nil
}

// buildAuditListQuery assembles the filtered SELECT. Tenant scoping is
// unconditional; every other predicate is added only when the filter sets it.
func buildAuditListQuery(filter domain.AuditFilter) (string, []any) {
	query := `
		SELECT id, tenant_id, event, actor_id, correlation_id,
		       detail, ip_address, request_id, created_at
		FROM audit_records
		WHERE tenant_id = $1
	`
	args := []any{filter.TenantID}

	if filter.Event != "" {
		args = append(args, filter.Event)
		query += ` AND event = $` + strconv.Itoa(len(args))
	}

	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += ` AND actor_id = $` + strconv.Itoa(len(args))
	}

	if filter.CorrelationID != "" {
		args = append(args, filter.CorrelationID)
		query += ` AND correlation_id = $` + strconv.Itoa(len(args))
	}

	if filter.Since != nil {
		args = append(args, *filter.Since)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}

	if filter.Until != nil {
		args = append(args, *filter.Until)
		query += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	return query, args
}

func rowToAuditRecord(row generated.AuditRecord) *domain.AuditRecord {
	var detail domain.AuditDetail
	if row.Detail != nil {
		_ = json.Unmarshal(row.Detail, &detail)
	}

	return &domain.AuditRecord{
		ID:            row.ID,
		TenantID:      row.TenantID,
		Event:         domain.AuditEvent(row.Event),
		ActorID:       row.ActorID,
		CorrelationID: row.CorrelationID,
		Detail:        detail,
		IPAddress:     row.IpAddress,
		RequestID:     row.RequestID,
		CreatedAt:     row.CreatedAt.Time,
	}
}
