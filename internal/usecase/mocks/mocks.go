package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/usecase"
)

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateTxFunc            func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	ListByKeyFunc           func(ctx context.Context, key domain.BalanceKey, limit, offset int) ([]*domain.LedgerEntry, error)
	ListByTenantFunc        func(ctx context.Context, tenantID string, limit, offset int) ([]*domain.LedgerEntry, error)
	ListByCorrelationIDFunc func(ctx context.Context, tenantID, correlationID string) ([]*domain.LedgerEntry, error)
	CheckProjectionFunc     func(ctx context.Context, tenantID string) ([]usecase.ProjectionDrift, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockLedgerRepository) ListByKey(ctx context.Context, key domain.BalanceKey, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByKeyFunc != nil {
		return m.ListByKeyFunc(ctx, key, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.Key() == key {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockLedgerRepository) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByTenantFunc != nil {
		return m.ListByTenantFunc(ctx, tenantID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.TenantID == tenantID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockLedgerRepository) ListByCorrelationID(ctx context.Context, tenantID, correlationID string) ([]*domain.LedgerEntry, error) {
	if m.ListByCorrelationIDFunc != nil {
		return m.ListByCorrelationIDFunc(ctx, tenantID, correlationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.TenantID == tenantID && e.CorrelationID == correlationID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockLedgerRepository) CheckProjection(ctx context.Context, tenantID string) ([]usecase.ProjectionDrift, error) {
	if m.CheckProjectionFunc != nil {
		return m.CheckProjectionFunc(ctx, tenantID)
	}
	return nil, nil
}

// Entries returns a snapshot of everything appended so far.
func (m *MockLedgerRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockBalanceRepository is a mock implementation of BalanceRepository.
type MockBalanceRepository struct {
	mu       sync.RWMutex
	balances map[domain.BalanceKey]*domain.Balance

	GetByKeyFunc        func(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error)
	ApplyDeltaTxFunc    func(ctx context.Context, tx usecase.Transaction, key domain.BalanceKey, delta decimal.Decimal, updatedAt time.Time) (*domain.Balance, error)
	SetReorderPointFunc func(ctx context.Context, tx usecase.Transaction, key domain.BalanceKey, threshold decimal.Decimal, updatedAt time.Time) (*domain.Balance, error)
	ListFunc            func(ctx context.Context, tenantID, itemID, locationID string, limit, offset int) ([]*domain.Balance, error)
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		balances: make(map[domain.BalanceKey]*domain.Balance),
	}
}

func (m *MockBalanceRepository) GetByKey(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.balances[key]; ok {
		return b, nil
	}
	return nil, domain.ErrBalanceNotFound
}

func (m *MockBalanceRepository) ApplyDeltaTx(ctx context.Context, tx usecase.Transaction, key domain.BalanceKey, delta decimal.Decimal, updatedAt time.Time) (*domain.Balance, error) {
	if m.ApplyDeltaTxFunc != nil {
		return m.ApplyDeltaTxFunc(ctx, tx, key, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[key]
	if !ok {
		b = &domain.Balance{
			TenantID:   key.TenantID,
			ItemID:     key.ItemID,
			LocationID: key.LocationID,
			LotID:      key.LotID,
			Quantity:   decimal.Zero,
			CreatedAt:  updatedAt,
		}
		m.balances[key] = b
	}
	b.Quantity = b.Quantity.Add(delta)
	b.Version++
	b.UpdatedAt = updatedAt
	return b, nil
}

func (m *MockBalanceRepository) SetReorderPoint(ctx context.Context, tx usecase.Transaction, key domain.BalanceKey, threshold decimal.Decimal, updatedAt time.Time) (*domain.Balance, error) {
	if m.SetReorderPointFunc != nil {
		return m.SetReorderPointFunc(ctx, tx, key, threshold, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[key]
	if !ok {
		b = &domain.Balance{
			TenantID:   key.TenantID,
			ItemID:     key.ItemID,
			LocationID: key.LocationID,
			LotID:      key.LotID,
			Quantity:   decimal.Zero,
			CreatedAt:  updatedAt,
		}
		m.balances[key] = b
	}
	b.ReorderPoint = threshold
	b.Version++
	b.UpdatedAt = updatedAt
	return b, nil
}

func (m *MockBalanceRepository) List(ctx context.Context, tenantID, itemID, locationID string, limit, offset int) ([]*domain.Balance, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tenantID, itemID, locationID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var balances []*domain.Balance
	for _, b := range m.balances {
		if b.TenantID != tenantID {
			continue
		}
		if itemID != "" && b.ItemID != itemID {
			continue
		}
		if locationID != "" && b.LocationID != locationID {
			continue
		}
		balances = append(balances, b)
	}
	return balances, nil
}

// MockCountSheetRepository is a mock implementation of CountSheetRepository.
type MockCountSheetRepository struct {
	mu     sync.RWMutex
	sheets map[string]*domain.CountSheet
	lines  map[string][]*domain.CountLine

	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, sheet *domain.CountSheet) error
	GetByIDFunc          func(ctx context.Context, tenantID, id string) (*domain.CountSheet, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.CountSheet, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, tenantID, id string, status domain.CountSheetStatus, postedAt *time.Time, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, tenantID string, status domain.CountSheetStatus, limit, offset int) ([]*domain.CountSheet, error)
	CreateLineTxFunc     func(ctx context.Context, tx usecase.Transaction, line *domain.CountLine) error
	ListLinesFunc        func(ctx context.Context, sheetID string) ([]*domain.CountLine, error)
}

func NewMockCountSheetRepository() *MockCountSheetRepository {
	return &MockCountSheetRepository{
		sheets: make(map[string]*domain.CountSheet),
		lines:  make(map[string][]*domain.CountLine),
	}
}

func (m *MockCountSheetRepository) CreateTx(ctx context.Context, tx usecase.Transaction, sheet *domain.CountSheet) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, sheet)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[sheet.ID] = sheet
	return nil
}

func (m *MockCountSheetRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.CountSheet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sheets[id]; ok && s.TenantID == tenantID {
		return s, nil
	}
	return nil, domain.ErrSheetNotFound
}

func (m *MockCountSheetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.CountSheet, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, tenantID, id)
	}
	return m.GetByID(ctx, tenantID, id)
}

func (m *MockCountSheetRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, tenantID, id string, status domain.CountSheetStatus, postedAt *time.Time, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, tenantID, id, status, postedAt, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sheets[id]
	if !ok || s.TenantID != tenantID {
		return domain.ErrSheetNotFound
	}
	s.Status = status
	s.PostedAt = postedAt
	s.UpdatedAt = updatedAt
	return nil
}

func (m *MockCountSheetRepository) List(ctx context.Context, tenantID string, status domain.CountSheetStatus, limit, offset int) ([]*domain.CountSheet, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tenantID, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sheets []*domain.CountSheet
	for _, s := range m.sheets {
		if s.TenantID != tenantID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

func (m *MockCountSheetRepository) CreateLineTx(ctx context.Context, tx usecase.Transaction, line *domain.CountLine) error {
	if m.CreateLineTxFunc != nil {
		return m.CreateLineTxFunc(ctx, tx, line)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[line.SheetID] = append(m.lines[line.SheetID], line)
	return nil
}

func (m *MockCountSheetRepository) ListLines(ctx context.Context, sheetID string) ([]*domain.CountLine, error) {
	if m.ListLinesFunc != nil {
		return m.ListLinesFunc(ctx, sheetID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines := make([]*domain.CountLine, len(m.lines[sheetID]))
	copy(lines, m.lines[sheetID])
	return lines, nil
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	lines  map[string][]*domain.OrderLine

	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, order *domain.Order) error
	GetByIDFunc          func(ctx context.Context, tenantID, id string) (*domain.Order, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Order, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, tenantID, id string, status domain.OrderStatus, paidAt *time.Time, updatedAt time.Time) error
	UpdateTotalsFunc     func(ctx context.Context, tx usecase.Transaction, order *domain.Order) error
	ListBySessionFunc    func(ctx context.Context, tenantID, sessionID string, limit, offset int) ([]*domain.Order, error)
	CreateLineTxFunc     func(ctx context.Context, tx usecase.Transaction, line *domain.OrderLine) error
	ListLinesFunc        func(ctx context.Context, orderID string) ([]*domain.OrderLine, error)
	NextLineNoFunc       func(ctx context.Context, tx usecase.Transaction, orderID string) (int32, error)
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*domain.Order),
		lines:  make(map[string][]*domain.OrderLine),
	}
}

func (m *MockOrderRepository) CreateTx(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.orders[id]; ok && o.TenantID == tenantID {
		return o, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Order, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, tenantID, id)
	}
	return m.GetByID(ctx, tenantID, id)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, tenantID, id string, status domain.OrderStatus, paidAt *time.Time, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, tenantID, id, status, paidAt, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.TenantID != tenantID {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.PaidAt = paidAt
	o.UpdatedAt = updatedAt
	return nil
}

func (m *MockOrderRepository) UpdateTotals(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	if m.UpdateTotalsFunc != nil {
		return m.UpdateTotalsFunc(ctx, tx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[order.ID]; ok {
		o.Subtotal = order.Subtotal
		o.TaxTotal = order.TaxTotal
		o.DiscountTotal = order.DiscountTotal
		o.Total = order.Total
		o.UpdatedAt = order.UpdatedAt
	}
	return nil
}

func (m *MockOrderRepository) ListBySession(ctx context.Context, tenantID, sessionID string, limit, offset int) ([]*domain.Order, error) {
	if m.ListBySessionFunc != nil {
		return m.ListBySessionFunc(ctx, tenantID, sessionID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var orders []*domain.Order
	for _, o := range m.orders {
		if o.TenantID == tenantID && o.SessionID == sessionID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *MockOrderRepository) CreateLineTx(ctx context.Context, tx usecase.Transaction, line *domain.OrderLine) error {
	if m.CreateLineTxFunc != nil {
		return m.CreateLineTxFunc(ctx, tx, line)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[line.OrderID] = append(m.lines[line.OrderID], line)
	return nil
}

func (m *MockOrderRepository) ListLines(ctx context.Context, orderID string) ([]*domain.OrderLine, error) {
	if m.ListLinesFunc != nil {
		return m.ListLinesFunc(ctx, orderID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines := make([]*domain.OrderLine, len(m.lines[orderID]))
	copy(lines, m.lines[orderID])
	return lines, nil
}

func (m *MockOrderRepository) NextLineNo(ctx context.Context, tx usecase.Transaction, orderID string) (int32, error) {
	if m.NextLineNoFunc != nil {
		return m.NextLineNoFunc(ctx, tx, orderID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int32(len(m.lines[orderID]) + 1), nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments []*domain.Payment

	CreateTxFunc     func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error
	SumByOrderTxFunc func(ctx context.Context, tx usecase.Transaction, orderID string, status domain.PaymentStatus) (int64, error)
	ListByOrderFunc  func(ctx context.Context, tenantID, orderID string) ([]*domain.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func (m *MockPaymentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, payment)
	return nil
}

func (m *MockPaymentRepository) SumByOrderTx(ctx context.Context, tx usecase.Transaction, orderID string, status domain.PaymentStatus) (int64, error) {
	if m.SumByOrderTxFunc != nil {
		return m.SumByOrderTxFunc(ctx, tx, orderID, status)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, p := range m.payments {
		if p.OrderID == orderID && p.Status == status {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (m *MockPaymentRepository) ListByOrder(ctx context.Context, tenantID, orderID string) ([]*domain.Payment, error) {
	if m.ListByOrderFunc != nil {
		return m.ListByOrderFunc(ctx, tenantID, orderID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.Payment
	for _, p := range m.payments {
		if p.TenantID == tenantID && p.OrderID == orderID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

// Payments returns a snapshot of everything captured or refunded so far.
func (m *MockPaymentRepository) Payments() []*domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Payment, len(m.payments))
	copy(out, m.payments)
	return out
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.RegisterSession

	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, session *domain.RegisterSession) error
	GetByIDFunc          func(ctx context.Context, tenantID, id string) (*domain.RegisterSession, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.RegisterSession, error)
	GetOpenBySiteFunc    func(ctx context.Context, tenantID, siteID string) (*domain.RegisterSession, error)
	CloseTxFunc          func(ctx context.Context, tx usecase.Transaction, tenantID, id, closedBy string, closedAt time.Time) error
	SummarizeFunc        func(ctx context.Context, tenantID, id string) (*domain.SessionSummary, error)
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]*domain.RegisterSession),
	}
}

func (m *MockSessionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, session *domain.RegisterSession) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.RegisterSession, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok && s.TenantID == tenantID {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.RegisterSession, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, tenantID, id)
	}
	return m.GetByID(ctx, tenantID, id)
}

func (m *MockSessionRepository) GetOpenBySite(ctx context.Context, tenantID, siteID string) (*domain.RegisterSession, error) {
	if m.GetOpenBySiteFunc != nil {
		return m.GetOpenBySiteFunc(ctx, tenantID, siteID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.TenantID == tenantID && s.SiteID == siteID && s.Status == domain.SessionStatusOpen {
			return s, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) CloseTx(ctx context.Context, tx usecase.Transaction, tenantID, id, closedBy string, closedAt time.Time) error {
	if m.CloseTxFunc != nil {
		return m.CloseTxFunc(ctx, tx, tenantID, id, closedBy, closedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.TenantID != tenantID {
		return domain.ErrSessionNotFound
	}
	s.Status = domain.SessionStatusClosed
	s.ClosedBy = closedBy
	s.ClosedAt = &closedAt
	return nil
}

func (m *MockSessionRepository) Summarize(ctx context.Context, tenantID, id string) (*domain.SessionSummary, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, tenantID, id)
	}
	return &domain.SessionSummary{
		SessionID:      id,
		TotalsByMethod: map[string]int64{},
	}, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu      sync.RWMutex
	records []*domain.AuditRecord

	CreateTxFunc           func(ctx context.Context, tx usecase.Transaction, record *domain.AuditRecord) error
	ListFunc               func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error)
	GetByCorrelationIDFunc func(ctx context.Context, tenantID, correlationID string) ([]*domain.AuditRecord, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, record *domain.AuditRecord) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.AuditRecord
	for _, r := range m.records {
		if r.TenantID != filter.TenantID {
			continue
		}
		if filter.Event != "" && string(r.Event) != filter.Event {
			continue
		}
		if filter.ActorID != "" && r.ActorID != filter.ActorID {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (m *MockAuditRepository) GetByCorrelationID(ctx context.Context, tenantID, correlationID string) ([]*domain.AuditRecord, error) {
	if m.GetByCorrelationIDFunc != nil {
		return m.GetByCorrelationIDFunc(ctx, tenantID, correlationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.AuditRecord
	for _, r := range m.records {
		if r.TenantID == tenantID && r.CorrelationID == correlationID {
			records = append(records, r)
		}
	}
	return records, nil
}

// Records returns a snapshot of everything written so far.
func (m *MockAuditRepository) Records() []*domain.AuditRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditRecord, len(m.records))
	copy(out, m.records)
	return out
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateTxFunc        func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) CreateTx(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
		if len(events) >= limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// Events returns a snapshot of everything queued so far.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once unless overridden.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator. Generated IDs are
// zero-padded so their lexical order matches generation order.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%04d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
