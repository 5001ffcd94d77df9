// Package recurring generates to-buy items from weekly schedules and
// manages the schedules themselves.
package recurring

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/pkg/clock"
)

type scheduleRepo interface {
	Upsert(ctx context.Context, s domain.RecurringSchedule) (*domain.RecurringSchedule, error)
	Delete(ctx context.Context, itemID uuid.UUID) (bool, error)
	MarkTriggered(ctx context.Context, itemID uuid.UUID, day time.Time) error
	ListWithSource(ctx context.Context) ([]domain.RecurringEntry, error)
}

type itemRepo interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
}

type activityRecorder interface {
	Record(ctx context.Context, evt domain.ActivityEvent)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs the daily recurring check and edits schedules.
type Service struct {
	log       *slog.Logger
	schedules scheduleRepo
	items     itemRepo
	activity  activityRecorder
	tx        txManager
	clock     clock.Clock
	loc       *time.Location
}

// NewService creates a new Recurring service. "Today" is evaluated in loc.
func NewService(
	log *slog.Logger,
	schedules scheduleRepo,
	items itemRepo,
	activity activityRecorder,
	tx txManager,
	clk clock.Clock,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		log:       log.With("service", "recurring"),
		schedules: schedules,
		items:     items,
		activity:  activity,
		tx:        tx,
		clock:     clk,
		loc:       loc,
	}
}
