// Package feed delivers activity events to their sinks after the emitting
// transaction has committed. Delivery is best effort: a failing or slow sink
// never affects the business operation that produced the event.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	postgres "github.com/heartmarshall/household-backend/internal/adapter/postgres"
	"github.com/heartmarshall/household-backend/internal/domain"
)

const deliverTimeout = 5 * time.Second

// Sink consumes activity events.
type Sink interface {
	Consume(ctx context.Context, evt domain.ActivityEvent) error
}

// Dispatcher queues events in memory and fans them out to sinks from a
// single worker goroutine started with Run.
type Dispatcher struct {
	log   *slog.Logger
	sinks []Sink

	mu     sync.RWMutex
	closed bool
	events chan domain.ActivityEvent
	done   chan struct{}
}

// NewDispatcher creates a Dispatcher with a queue of bufferSize events.
func NewDispatcher(log *slog.Logger, bufferSize int, sinks ...Sink) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Dispatcher{
		log:    log.With("component", "activity_dispatcher"),
		sinks:  sinks,
		events: make(chan domain.ActivityEvent, bufferSize),
		done:   make(chan struct{}),
	}
}

// Record schedules evt for delivery once the transaction in ctx commits.
// Outside a transaction the event is queued right away. Record never blocks:
// when the queue is full the event is dropped and a warning is logged.
func (d *Dispatcher) Record(ctx context.Context, evt domain.ActivityEvent) {
	postgres.AfterCommit(ctx, func(ctx context.Context) {
		d.enqueue(ctx, evt)
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, evt domain.ActivityEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.WarnContext(ctx, "activity dropped: dispatcher closed",
			slog.String("kind", evt.Kind.String()),
			slog.String("event_id", evt.ID.String()),
		)
		return
	}

	select {
	case d.events <- evt:
	default:
		d.log.WarnContext(ctx, "activity dropped: queue full",
			slog.String("kind", evt.Kind.String()),
			slog.String("event_id", evt.ID.String()),
		)
	}
}

// Run delivers queued events until ctx is cancelled or Close is called, then
// drains what is left in the queue and returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)

	for {
		select {
		case evt, ok := <-d.events:
			if !ok {
				return nil
			}
			d.deliver(evt)
		case <-ctx.Done():
			d.Close()
			for evt := range d.events {
				d.deliver(evt)
			}
			return nil
		}
	}
}

// Close stops accepting events. Already queued events are still delivered by Run.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.closed {
		d.closed = true
		close(d.events)
	}
}

// Shutdown closes the dispatcher and waits until Run has drained the queue
// or ctx expires.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.Close()
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("activity dispatcher shutdown: %w", ctx.Err())
	}
}

func (d *Dispatcher) deliver(evt domain.ActivityEvent) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		err := consume(ctx, sink, evt)
		cancel()

		if err != nil {
			d.log.Warn("activity sink failed",
				slog.String("sink", fmt.Sprintf("%T", sink)),
				slog.String("kind", evt.Kind.String()),
				slog.String("event_id", evt.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

// consume shields the worker from panicking sinks.
func consume(ctx context.Context, sink Sink, evt domain.ActivityEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panic: %v", r)
		}
	}()
	return sink.Consume(ctx, evt)
}
