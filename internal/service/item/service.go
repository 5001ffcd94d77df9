// Package item implements the item list operations: creation, editing and
// the list transition rules (trash, restore, inventory deduplication and
// recurring check-off).
package item

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/pkg/clock"
)

type itemRepo interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, id uuid.UUID, changes domain.ItemChanges) (*domain.Item, error)
	Move(ctx context.Context, id uuid.UUID, to domain.Active, movedAt time.Time) (*domain.Item, error)
	Trash(ctx context.Context, id uuid.UUID, to domain.Trashed) (*domain.Item, error)
	Restore(ctx context.Context, id uuid.UUID, to domain.Active) (*domain.Item, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
	PurgeTrashedBefore(ctx context.Context, threshold time.Time) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	FindInventoryDuplicate(ctx context.Context, name string, excludeID uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	Suggest(ctx context.Context, query string, limit int) ([]domain.Suggestion, error)
}

type activityRecorder interface {
	Record(ctx context.Context, evt domain.ActivityEvent)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Options holds the tunables of the item service.
type Options struct {
	// DefaultCategoryID is assigned to new items created without a category.
	// uuid.Nil leaves such items uncategorised.
	DefaultCategoryID uuid.UUID

	SuggestMinQueryLength int
	SuggestMaxResults     int
}

// Service provides item list operations.
type Service struct {
	log      *slog.Logger
	items    itemRepo
	activity activityRecorder
	tx       txManager
	clock    clock.Clock
	opts     Options
}

// NewService creates a new Item service.
func NewService(
	log *slog.Logger,
	items itemRepo,
	activity activityRecorder,
	tx txManager,
	clk clock.Clock,
	opts Options,
) *Service {
	return &Service{
		log:      log.With("service", "item"),
		items:    items,
		activity: activity,
		tx:       tx,
		clock:    clk,
		opts:     opts,
	}
}

func (s *Service) now() time.Time {
	return s.clock.Now().UTC()
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
