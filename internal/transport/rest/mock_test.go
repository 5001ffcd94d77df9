package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/internal/service/activity"
	"github.com/heartmarshall/household-backend/internal/service/item"
	"github.com/heartmarshall/household-backend/internal/service/offline"
	"github.com/heartmarshall/household-backend/internal/service/recurring"
)

var (
	_ itemService      = &itemServiceMock{}
	_ recurringService = &recurringServiceMock{}
	_ reconciler       = &reconcilerMock{}
	_ activityService  = &activityServiceMock{}
)

type itemServiceMock struct {
	CreateItemFunc      func(ctx context.Context, input item.CreateItemInput) (*domain.Item, error)
	UpdateItemFunc      func(ctx context.Context, input item.UpdateItemInput) (*domain.Item, error)
	MoveItemFunc        func(ctx context.Context, input item.MoveItemInput) (*item.MoveResult, error)
	TrashItemFunc       func(ctx context.Context, id uuid.UUID) (*item.MoveResult, error)
	RestoreItemFunc     func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ForceDeleteItemFunc func(ctx context.Context, id uuid.UUID) error
	GetItemFunc         func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListItemsFunc       func(ctx context.Context, list *domain.ListType) ([]domain.Item, error)
	SuggestItemsFunc    func(ctx context.Context, query string) ([]domain.Suggestion, error)

	mu         sync.Mutex
	listCalls  []*domain.ListType
	createArgs []item.CreateItemInput
}

func (m *itemServiceMock) CreateItem(ctx context.Context, input item.CreateItemInput) (*domain.Item, error) {
	m.mu.Lock()
	m.createArgs = append(m.createArgs, input)
	m.mu.Unlock()
	return m.CreateItemFunc(ctx, input)
}

func (m *itemServiceMock) CreateItemCalls() []item.CreateItemInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createArgs
}

func (m *itemServiceMock) UpdateItem(ctx context.Context, input item.UpdateItemInput) (*domain.Item, error) {
	return m.UpdateItemFunc(ctx, input)
}

func (m *itemServiceMock) MoveItem(ctx context.Context, input item.MoveItemInput) (*item.MoveResult, error) {
	return m.MoveItemFunc(ctx, input)
}

func (m *itemServiceMock) TrashItem(ctx context.Context, id uuid.UUID) (*item.MoveResult, error) {
	return m.TrashItemFunc(ctx, id)
}

func (m *itemServiceMock) RestoreItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return m.RestoreItemFunc(ctx, id)
}

func (m *itemServiceMock) ForceDeleteItem(ctx context.Context, id uuid.UUID) error {
	return m.ForceDeleteItemFunc(ctx, id)
}

func (m *itemServiceMock) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return m.GetItemFunc(ctx, id)
}

func (m *itemServiceMock) ListItems(ctx context.Context, list *domain.ListType) ([]domain.Item, error) {
	m.mu.Lock()
	m.listCalls = append(m.listCalls, list)
	m.mu.Unlock()
	return m.ListItemsFunc(ctx, list)
}

func (m *itemServiceMock) ListItemsCalls() []*domain.ListType {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func (m *itemServiceMock) SuggestItems(ctx context.Context, query string) ([]domain.Suggestion, error) {
	return m.SuggestItemsFunc(ctx, query)
}

type recurringServiceMock struct {
	SetScheduleFunc        func(ctx context.Context, input recurring.SetScheduleInput) (*domain.RecurringSchedule, error)
	RemoveScheduleFunc     func(ctx context.Context, itemID uuid.UUID) (bool, error)
	ListRecurringItemsFunc func(ctx context.Context) ([]domain.RecurringEntry, error)
}

func (m *recurringServiceMock) SetSchedule(ctx context.Context, input recurring.SetScheduleInput) (*domain.RecurringSchedule, error) {
	return m.SetScheduleFunc(ctx, input)
}

func (m *recurringServiceMock) RemoveSchedule(ctx context.Context, itemID uuid.UUID) (bool, error) {
	return m.RemoveScheduleFunc(ctx, itemID)
}

func (m *recurringServiceMock) ListRecurringItems(ctx context.Context) ([]domain.RecurringEntry, error) {
	return m.ListRecurringItemsFunc(ctx)
}

type reconcilerMock struct {
	ReconcileFunc func(ctx context.Context, actions []offline.Action) (*offline.Summary, error)
}

func (m *reconcilerMock) Reconcile(ctx context.Context, actions []offline.Action) (*offline.Summary, error) {
	return m.ReconcileFunc(ctx, actions)
}

type activityServiceMock struct {
	ListActivitiesFunc func(ctx context.Context, input activity.ListInput) ([]domain.ActivityEvent, error)
}

func (m *activityServiceMock) ListActivities(ctx context.Context, input activity.ListInput) ([]domain.ActivityEvent, error) {
	return m.ListActivitiesFunc(ctx, input)
}
