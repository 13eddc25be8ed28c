// Package mocks provides hand-written in-memory fakes for the usecase
// interfaces. Each method can be overridden per test via the *Func fields;
// without an override the fakes behave like a small, correct in-memory
// store, which lets chain semantics be tested end to end without a
// database.
package mocks

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/usecase"
)

// MockEventRepository is an in-memory implementation of EventRepository.
type MockEventRepository struct {
	mu     sync.Mutex
	events []*domain.Event
	nextID int64

	LockOwnerFunc       func(ctx context.Context, tx usecase.Transaction, ownerID string) error
	TailHashFunc        func(ctx context.Context, tx usecase.Transaction, ownerID string) (*string, error)
	InsertFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.Event) (*domain.Event, error)
	GetByIDFunc         func(ctx context.Context, ownerID string, id int64) (*domain.Event, error)
	ListFunc            func(ctx context.Context, ownerID string, filter domain.EventFilter) ([]*domain.Event, error)
	ListChainFunc       func(ctx context.Context, ownerID string) ([]*domain.Event, error)
	ListCorrectionsFunc func(ctx context.Context, ownerID string, originalEventID int64) ([]*domain.Event, error)
	SumQuantityFunc     func(ctx context.Context, ownerID, typeID string, onOrBefore *time.Time) (int64, error)
	ListThroughFunc     func(ctx context.Context, ownerID, typeID string, through time.Time) ([]*domain.Event, error)
	CurrentBalancesFunc func(ctx context.Context, ownerID string) ([]*domain.TypeBalance, error)
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{nextID: 1}
}

// Seed stores an event directly, bypassing the append path. Intended for
// arranging test fixtures, including deliberately tampered ones.
func (m *MockEventRepository) Seed(event *domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if event.ID == 0 {
		event.ID = m.nextID
	}
	if event.ID >= m.nextID {
		m.nextID = event.ID + 1
	}

	m.events = append(m.events, event)
}

// All returns every stored event ordered by id.
func (m *MockEventRepository) All() []*domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Event, len(m.events))
	copy(out, m.events)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func (m *MockEventRepository) LockOwner(ctx context.Context, tx usecase.Transaction, ownerID string) error {
	if m.LockOwnerFunc != nil {
		return m.LockOwnerFunc(ctx, tx, ownerID)
	}
	return nil
}

func (m *MockEventRepository) TailHash(ctx context.Context, tx usecase.Transaction, ownerID string) (*string, error) {
	if m.TailHashFunc != nil {
		return m.TailHashFunc(ctx, tx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var tail *domain.Event
	for _, e := range m.events {
		if e.OwnerID == ownerID && (tail == nil || e.ID > tail.ID) {
			tail = e
		}
	}

	if tail == nil {
		return nil, nil
	}

	hash := tail.RecordHash

	return &hash, nil
}

func (m *MockEventRepository) Insert(ctx context.Context, tx usecase.Transaction, event *domain.Event) (*domain.Event, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, tx, event)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *event
	stored.ID = m.nextID
	m.nextID++
	m.events = append(m.events, &stored)

	return &stored, nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, ownerID string, id int64) (*domain.Event, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.events {
		if e.ID == id && e.OwnerID == ownerID {
			return e, nil
		}
	}

	return nil, domain.ErrEventNotFound
}

func (m *MockEventRepository) List(ctx context.Context, ownerID string, filter domain.EventFilter) ([]*domain.Event, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, filter)
	}

	var out []*domain.Event
	for _, e := range m.All() {
		if e.OwnerID != ownerID {
			continue
		}
		if filter.TypeID != "" && e.TypeID != filter.TypeID {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if filter.DateFrom != nil && e.EventDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.EventDate.After(*filter.DateTo) {
			continue
		}
		out = append(out, e)
	}

	return out, nil
}

func (m *MockEventRepository) ListChain(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if m.ListChainFunc != nil {
		return m.ListChainFunc(ctx, ownerID)
	}

	var out []*domain.Event
	for _, e := range m.All() {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}

	return out, nil
}

func (m *MockEventRepository) ListCorrections(ctx context.Context, ownerID string, originalEventID int64) ([]*domain.Event, error) {
	if m.ListCorrectionsFunc != nil {
		return m.ListCorrectionsFunc(ctx, ownerID, originalEventID)
	}

	var out []*domain.Event
	for _, e := range m.All() {
		if e.OwnerID == ownerID && e.Details.OriginalEventID != nil && *e.Details.OriginalEventID == originalEventID {
			out = append(out, e)
		}
	}

	return out, nil
}

func (m *MockEventRepository) SumQuantity(ctx context.Context, ownerID, typeID string, onOrBefore *time.Time) (int64, error) {
	if m.SumQuantityFunc != nil {
		return m.SumQuantityFunc(ctx, ownerID, typeID, onOrBefore)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var sum int64
	for _, e := range m.events {
		if e.OwnerID != ownerID || e.TypeID != typeID {
			continue
		}
		if onOrBefore != nil && e.EventDate.After(*onOrBefore) {
			continue
		}
		sum += e.Quantity
	}

	return sum, nil
}

func (m *MockEventRepository) ListThrough(ctx context.Context, ownerID, typeID string, through time.Time) ([]*domain.Event, error) {
	if m.ListThroughFunc != nil {
		return m.ListThroughFunc(ctx, ownerID, typeID, through)
	}

	var out []*domain.Event
	for _, e := range m.All() {
		if e.OwnerID == ownerID && e.TypeID == typeID && !e.EventDate.After(through) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (m *MockEventRepository) CurrentBalances(ctx context.Context, ownerID string) ([]*domain.TypeBalance, error) {
	if m.CurrentBalancesFunc != nil {
		return m.CurrentBalancesFunc(ctx, ownerID)
	}
	return nil, nil
}

// MockTypeRepository is an in-memory implementation of TypeRepository.
type MockTypeRepository struct {
	mu    sync.RWMutex
	types map[string]*domain.AmmunitionType

	CreateFunc  func(ctx context.Context, t *domain.AmmunitionType) error
	GetByIDFunc func(ctx context.Context, ownerID, id string) (*domain.AmmunitionType, error)
	ListFunc    func(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.AmmunitionType, error)
	UpdateFunc  func(ctx context.Context, t *domain.AmmunitionType) error
}

func NewMockTypeRepository() *MockTypeRepository {
	return &MockTypeRepository{types: make(map[string]*domain.AmmunitionType)}
}

func (m *MockTypeRepository) Create(ctx context.Context, t *domain.AmmunitionType) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[t.ID] = t

	return nil
}

func (m *MockTypeRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.AmmunitionType, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if t, ok := m.types[id]; ok && t.OwnerID == ownerID {
		return t, nil
	}

	return nil, domain.ErrTypeNotFound
}

func (m *MockTypeRepository) List(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.AmmunitionType, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, activeOnly)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.AmmunitionType
	for _, t := range m.types {
		if t.OwnerID != ownerID {
			continue
		}
		if activeOnly && !t.Active {
			continue
		}
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (m *MockTypeRepository) Update(ctx context.Context, t *domain.AmmunitionType) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.types[t.ID]; !ok || existing.OwnerID != t.OwnerID {
		return domain.ErrTypeNotFound
	}

	m.types[t.ID] = t

	return nil
}

// MockAuditRepository is an in-memory implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
	ListFunc   func(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)

	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.AuditLog
	for _, l := range m.logs {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}

	return out, nil
}

// Logs returns every recorded audit entry.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.AuditLog, len(m.logs))
	copy(out, m.logs)

	return out
}

// MockTransaction is a no-op Transaction that records its outcome.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions. Begin also takes a
// process-wide lock so the in-memory fakes get the same "one append at a
// time per manager" behavior the real store guarantees per owner.
type MockTransactionManager struct {
	mu sync.Mutex

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	m.mu.Lock()

	return &lockedTransaction{MockTransaction: &MockTransaction{}, release: m.mu.Unlock}, nil
}

type lockedTransaction struct {
	*MockTransaction

	once    sync.Once
	release func()
}

func (t *lockedTransaction) Commit(ctx context.Context) error {
	err := t.MockTransaction.Commit(ctx)
	t.once.Do(t.release)
	return err
}

func (t *lockedTransaction) Rollback(ctx context.Context) error {
	err := t.MockTransaction.Rollback(ctx)
	t.once.Do(t.release)
	return err
}

// MockIDGenerator returns queued IDs, or a counter-based default.
type MockIDGenerator struct {
	mu    sync.Mutex
	queue []string
	next  int

	GenerateFunc func() string
}

func NewMockIDGenerator(ids ...string) *MockIDGenerator {
	return &MockIDGenerator{queue: ids}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) > 0 {
		id := m.queue[0]
		m.queue = m.queue[1:]
		return id
	}

	m.next++

	return "mock-id-" + strconv.Itoa(m.next)
}

// MockCache is an in-memory Cache; TTLs are ignored.
type MockCache struct {
	mu    sync.RWMutex
	items map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string]string)}
}

var errCacheMiss = errors.New("cache miss")

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.items[key]; ok {
		return v, nil
	}

	return "", errCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)

	return nil
}
