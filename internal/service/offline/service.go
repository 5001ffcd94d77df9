// Package offline replays actions that a client queued while it had no
// connection. Every action runs in its own transaction, so one failing
// action never undoes the others of the same batch.
package offline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/internal/service/item"
)

// DefaultMaxBatchSize bounds the number of actions accepted per call.
const DefaultMaxBatchSize = 50

type itemService interface {
	CreateItem(ctx context.Context, input item.CreateItemInput) (*domain.Item, error)
	UpdateItem(ctx context.Context, input item.UpdateItemInput) (*domain.Item, error)
	MoveItem(ctx context.Context, input item.MoveItemInput) (*item.MoveResult, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service reconciles offline action batches.
type Service struct {
	log          *slog.Logger
	items        itemService
	tx           txManager
	maxBatchSize int
}

// NewService creates a new offline action reconciler.
func NewService(log *slog.Logger, items itemService, tx txManager, maxBatchSize int) *Service {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &Service{
		log:          log.With("service", "offline"),
		items:        items,
		tx:           tx,
		maxBatchSize: maxBatchSize,
	}
}
