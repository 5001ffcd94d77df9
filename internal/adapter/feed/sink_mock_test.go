package feed

import (
	"context"
	"sync"

	"github.com/heartmarshall/household-backend/internal/domain"
)

var _ Sink = &sinkMock{}

type sinkMock struct {
	ConsumeFunc func(ctx context.Context, evt domain.ActivityEvent) error

	calls struct {
		Consume []struct {
			Ctx context.Context
			Evt domain.ActivityEvent
		}
	}
	lockConsume sync.RWMutex
}

func (mock *sinkMock) Consume(ctx context.Context, evt domain.ActivityEvent) error {
	if mock.ConsumeFunc == nil {
		panic("sinkMock.ConsumeFunc: method is nil but Sink.Consume was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Evt domain.ActivityEvent
	}{Ctx: ctx, Evt: evt}
	mock.lockConsume.Lock()
	mock.calls.Consume = append(mock.calls.Consume, callInfo)
	mock.lockConsume.Unlock()
	return mock.ConsumeFunc(ctx, evt)
}

func (mock *sinkMock) ConsumeCalls() []struct {
	Ctx context.Context
	Evt domain.ActivityEvent
} {
	mock.lockConsume.RLock()
	calls := mock.calls.Consume
	mock.lockConsume.RUnlock()
	return calls
}
