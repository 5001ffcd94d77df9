package recurring

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// memSchedules keeps schedules and their owners in memory and claims
// firings the same way the postgres repository does.
type memSchedules struct {
	mu        sync.Mutex
	schedules map[uuid.UUID]domain.RecurringSchedule
	owners    map[uuid.UUID]domain.Item

	ListErr error
}

var _ scheduleRepo = (*memSchedules)(nil)

func newMemSchedules() *memSchedules {
	return &memSchedules{
		schedules: map[uuid.UUID]domain.RecurringSchedule{},
		owners:    map[uuid.UUID]domain.Item{},
	}
}

func (m *memSchedules) add(owner domain.Item, days ...time.Weekday) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[owner.ID] = owner
	m.schedules[owner.ID] = domain.RecurringSchedule{ItemID: owner.ID, Days: domain.NewWeekdaySet(days...)}
}

func (m *memSchedules) Upsert(_ context.Context, s domain.RecurringSchedule) (*domain.RecurringSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.schedules[s.ItemID]; ok {
		s.LastTriggeredOn = prev.LastTriggeredOn
	}
	m.schedules[s.ItemID] = s
	out := s
	return &out, nil
}

func (m *memSchedules) Delete(_ context.Context, itemID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.schedules[itemID]
	delete(m.schedules, itemID)
	return ok, nil
}

func (m *memSchedules) MarkTriggered(_ context.Context, itemID uuid.UUID, day time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	if s.LastTriggeredOn != nil && domain.SameDate(*s.LastTriggeredOn, day) {
		return domain.ErrConflict
	}
	d := day
	s.LastTriggeredOn = &d
	m.schedules[itemID] = s
	return nil
}

func (m *memSchedules) ListWithSource(context.Context) ([]domain.RecurringEntry, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RecurringEntry
	for id, s := range m.schedules {
		out = append(out, domain.RecurringEntry{Schedule: s, Source: m.owners[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source.Name < out[j].Source.Name })
	return out, nil
}

type itemRepoMock struct {
	CreateFunc  func(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	mu      sync.Mutex
	created []domain.Item
}

var _ itemRepo = (*itemRepoMock)(nil)

func (m *itemRepoMock) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if m.CreateFunc != nil {
		if _, err := m.CreateFunc(ctx, item); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	m.created = append(m.created, *item)
	m.mu.Unlock()
	out := *item
	return &out, nil
}

func (m *itemRepoMock) Created() []domain.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Item(nil), m.created...)
}

func (m *itemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

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

type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
