package offline

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/internal/service/item"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type itemServiceMock struct {
	CreateItemFunc func(ctx context.Context, input item.CreateItemInput) (*domain.Item, error)
	UpdateItemFunc func(ctx context.Context, input item.UpdateItemInput) (*domain.Item, error)
	MoveItemFunc   func(ctx context.Context, input item.MoveItemInput) (*item.MoveResult, error)
	GetItemFunc    func(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	mu          sync.Mutex
	createCalls []item.CreateItemInput
	updateCalls []item.UpdateItemInput
	moveCalls   []item.MoveItemInput
}

var _ itemService = (*itemServiceMock)(nil)

func (m *itemServiceMock) CreateItem(ctx context.Context, input item.CreateItemInput) (*domain.Item, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, input)
	m.mu.Unlock()
	if m.CreateItemFunc == nil {
		panic("itemServiceMock.CreateItemFunc: method is nil but itemService.CreateItem was just called")
	}
	return m.CreateItemFunc(ctx, input)
}

func (m *itemServiceMock) CreateItemCalls() []item.CreateItemInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]item.CreateItemInput(nil), m.createCalls...)
}

func (m *itemServiceMock) UpdateItem(ctx context.Context, input item.UpdateItemInput) (*domain.Item, error) {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, input)
	m.mu.Unlock()
	if m.UpdateItemFunc == nil {
		panic("itemServiceMock.UpdateItemFunc: method is nil but itemService.UpdateItem was just called")
	}
	return m.UpdateItemFunc(ctx, input)
}

func (m *itemServiceMock) UpdateItemCalls() []item.UpdateItemInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]item.UpdateItemInput(nil), m.updateCalls...)
}

func (m *itemServiceMock) MoveItem(ctx context.Context, input item.MoveItemInput) (*item.MoveResult, error) {
	m.mu.Lock()
	m.moveCalls = append(m.moveCalls, input)
	m.mu.Unlock()
	if m.MoveItemFunc == nil {
		panic("itemServiceMock.MoveItemFunc: method is nil but itemService.MoveItem was just called")
	}
	return m.MoveItemFunc(ctx, input)
}

func (m *itemServiceMock) MoveItemCalls() []item.MoveItemInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]item.MoveItemInput(nil), m.moveCalls...)
}

func (m *itemServiceMock) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if m.GetItemFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetItemFunc(ctx, id)
}

// txManagerMock counts commits and rollbacks the way the postgres
// TxManager decides them: an error or panic from fn rolls back.
type txManagerMock struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.mu.Lock()
			m.rollbacks++
			m.mu.Unlock()
			panic(r)
		}
	}()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.rollbacks++
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.commits++
	m.mu.Unlock()
	return nil
}
