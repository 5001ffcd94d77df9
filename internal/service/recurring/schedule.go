package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// SetScheduleInput holds the weekdays of a schedule.
type SetScheduleInput struct {
	ItemID uuid.UUID
	Days   []time.Weekday
}

// Validate checks all fields and collects all errors. An empty Days is
// allowed: the schedule is kept but never fires.
func (i SetScheduleInput) Validate() error {
	var errs []domain.FieldError
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	for _, d := range i.Days {
		if d < time.Sunday || d > time.Saturday {
			errs = append(errs, domain.FieldError{Field: "days", Message: "invalid weekday"})
			break
		}
	}
	return domain.NewValidationErrors(errs)
}

// SetSchedule creates or replaces the schedule of an active inventory item.
func (s *Service) SetSchedule(ctx context.Context, input SetScheduleInput) (*domain.RecurringSchedule, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var sched *domain.RecurringSchedule
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		item, err := s.items.GetByID(ctx, input.ItemID)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		if !isActiveInventory(*item) {
			return domain.NewValidationError("item_id", "only inventory items can be recurring")
		}

		sched, err = s.schedules.Upsert(ctx, domain.RecurringSchedule{
			ItemID: input.ItemID,
			Days:   domain.NewWeekdaySet(input.Days...),
		})
		if err != nil {
			return fmt.Errorf("upsert schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "recurring schedule set",
		slog.String("item_id", input.ItemID.String()),
		slog.String("days", sched.Description()),
	)

	return sched, nil
}

// RemoveSchedule deletes the schedule of an item and reports whether there was one.
func (s *Service) RemoveSchedule(ctx context.Context, itemID uuid.UUID) (bool, error) {
	removed, err := s.schedules.Delete(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("delete schedule: %w", err)
	}
	if removed {
		s.log.InfoContext(ctx, "recurring schedule removed", slog.String("item_id", itemID.String()))
	}
	return removed, nil
}

// ListRecurringItems returns every schedule with its owning item.
func (s *Service) ListRecurringItems(ctx context.Context) ([]domain.RecurringEntry, error) {
	entries, err := s.schedules.ListWithSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recurring items: %w", err)
	}
	return entries, nil
}
