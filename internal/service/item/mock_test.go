package item

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type itemRepoMock struct {
	CreateFunc                 func(ctx context.Context, item *domain.Item) (*domain.Item, error)
	UpdateFunc                 func(ctx context.Context, id uuid.UUID, changes domain.ItemChanges) (*domain.Item, error)
	MoveFunc                   func(ctx context.Context, id uuid.UUID, to domain.Active, movedAt time.Time) (*domain.Item, error)
	TrashFunc                  func(ctx context.Context, id uuid.UUID, to domain.Trashed) (*domain.Item, error)
	RestoreFunc                func(ctx context.Context, id uuid.UUID, to domain.Active) (*domain.Item, error)
	HardDeleteFunc             func(ctx context.Context, id uuid.UUID) error
	PurgeTrashedBeforeFunc     func(ctx context.Context, threshold time.Time) (int64, error)
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	FindInventoryDuplicateFunc func(ctx context.Context, name string, excludeID uuid.UUID) (*domain.Item, error)
	ListFunc                   func(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	SuggestFunc                func(ctx context.Context, query string, limit int) ([]domain.Suggestion, error)

	mu              sync.Mutex
	hardDeleteCalls []uuid.UUID
}

var _ itemRepo = (*itemRepoMock)(nil)

func (m *itemRepoMock) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return item, nil
}

func (m *itemRepoMock) Update(ctx context.Context, id uuid.UUID, changes domain.ItemChanges) (*domain.Item, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, changes)
	}
	return nil, domain.ErrNotFound
}

func (m *itemRepoMock) Move(ctx context.Context, id uuid.UUID, to domain.Active, movedAt time.Time) (*domain.Item, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, id, to, movedAt)
	}
	return nil, domain.ErrNotFound
}

func (m *itemRepoMock) Trash(ctx context.Context, id uuid.UUID, to domain.Trashed) (*domain.Item, error) {
	if m.TrashFunc != nil {
		return m.TrashFunc(ctx, id, to)
	}
	return nil, domain.ErrNotFound
}

func (m *itemRepoMock) Restore(ctx context.Context, id uuid.UUID, to domain.Active) (*domain.Item, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id, to)
	}
	return nil, domain.ErrNotFound
}

func (m *itemRepoMock) HardDelete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.hardDeleteCalls = append(m.hardDeleteCalls, id)
	m.mu.Unlock()
	if m.HardDeleteFunc != nil {
		return m.HardDeleteFunc(ctx, id)
	}
	return nil
}

func (m *itemRepoMock) HardDeleteCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uuid.UUID(nil), m.hardDeleteCalls...)
}

func (m *itemRepoMock) PurgeTrashedBefore(ctx context.Context, threshold time.Time) (int64, error) {
	if m.PurgeTrashedBeforeFunc != nil {
		return m.PurgeTrashedBeforeFunc(ctx, threshold)
	}
	return 0, nil
}

func (m *itemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *itemRepoMock) FindInventoryDuplicate(ctx context.Context, name string, excludeID uuid.UUID) (*domain.Item, error) {
	if m.FindInventoryDuplicateFunc != nil {
		return m.FindInventoryDuplicateFunc(ctx, name, excludeID)
	}
	return nil, domain.ErrNotFound
}

func (m *itemRepoMock) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *itemRepoMock) Suggest(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, query, limit)
	}
	return nil, nil
}

// activityRecorderMock records events synchronously.
type activityRecorderMock struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (m *activityRecorderMock) Record(_ context.Context, evt domain.ActivityEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
}

func (m *activityRecorderMock) Events() []domain.ActivityEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ActivityEvent(nil), m.events...)
}

func (m *activityRecorderMock) Kinds() []domain.ActivityKind {
	var kinds []domain.ActivityKind
	for _, e := range m.Events() {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type txManagerMock struct {
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// ===========================================================================
// In-memory item store for transition scenarios
// ===========================================================================

// memStore mirrors the guards of the postgres repository: writes on active
// items skip trashed rows and restore only touches trashed rows.
type memStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]domain.Item
}

var _ itemRepo = (*memStore)(nil)

func newMemStore(items ...domain.Item) *memStore {
	s := &memStore{items: map[uuid.UUID]domain.Item{}}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *memStore) get(id uuid.UUID) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	return it, ok
}

func (s *memStore) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; ok {
		return nil, domain.ErrAlreadyExists
	}
	s.items[item.ID] = *item
	out := *item
	return &out, nil
}

func (s *memStore) mutateActive(id uuid.UUID, fn func(*domain.Item)) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok || it.IsTrashed() {
		return nil, domain.ErrNotFound
	}
	fn(&it)
	it.UpdatedAt = time.Now()
	s.items[id] = it
	out := it
	return &out, nil
}

func (s *memStore) Update(_ context.Context, id uuid.UUID, c domain.ItemChanges) (*domain.Item, error) {
	return s.mutateActive(id, func(it *domain.Item) {
		if c.Name != nil {
			it.Name = *c.Name
		}
		if c.Quantity != nil {
			if *c.Quantity == "" {
				it.Quantity = nil
			} else {
				q := *c.Quantity
				it.Quantity = &q
			}
		}
		if c.CategoryID != nil {
			it.CategoryID = c.CategoryID
		}
	})
}

func (s *memStore) Move(_ context.Context, id uuid.UUID, to domain.Active, movedAt time.Time) (*domain.Item, error) {
	return s.mutateActive(id, func(it *domain.Item) {
		it.Placement = to
		it.MovedAt = &movedAt
	})
}

func (s *memStore) Trash(_ context.Context, id uuid.UUID, to domain.Trashed) (*domain.Item, error) {
	return s.mutateActive(id, func(it *domain.Item) {
		it.Placement = to
	})
}

func (s *memStore) Restore(_ context.Context, id uuid.UUID, to domain.Active) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok || !it.IsTrashed() {
		return nil, domain.ErrNotFound
	}
	it.Placement = to
	s.items[id] = it
	out := it
	return &out, nil
}

func (s *memStore) HardDelete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *memStore) PurgeTrashedBefore(_ context.Context, threshold time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, it := range s.items {
		if at := it.DeletedAt(); at != nil && at.Before(threshold) {
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Item, error) {
	it, ok := s.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (s *memStore) FindInventoryDuplicate(_ context.Context, name string, excludeID uuid.UUID) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, it := range s.items {
		if id != excludeID && it.List() == domain.ListInventory && strings.EqualFold(it.Name, name) {
			out := it
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) List(_ context.Context, f domain.ItemFilter) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Item
	for _, it := range s.items {
		if (f.List == nil && !it.IsTrashed()) || (f.List != nil && it.List() == *f.List) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *memStore) Suggest(context.Context, string, int) ([]domain.Suggestion, error) {
	return nil, nil
}
