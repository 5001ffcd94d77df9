package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// CheckResult summarises one run of the daily check.
type CheckResult struct {
	Date             time.Time
	CreatedCount     int
	CreatedItemNames []string
	// Failed counts schedules that should have fired but could not be
	// processed. They are retried on the next run of the same day.
	Failed int
}

// RunDailyCheck creates a to-buy copy of every inventory item whose schedule
// fires today and has not fired today yet. Each schedule is claimed and its
// copy created in one transaction, so concurrent runs never fire a schedule
// twice on the same date.
func (s *Service) RunDailyCheck(ctx context.Context) (*CheckResult, error) {
	today := domain.DateOf(s.clock.Now(), s.loc)

	s.log.InfoContext(ctx, "recurring check started", slog.String("date", today.Format(time.DateOnly)))

	entries, err := s.schedules.ListWithSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recurring schedules: %w", err)
	}

	result := &CheckResult{Date: today, CreatedItemNames: []string{}}

	for _, entry := range entries {
		if !isActiveInventory(entry.Source) {
			continue
		}
		if !entry.Schedule.ShouldFire(today) {
			continue
		}

		created, err := s.fire(ctx, entry, today)
		switch {
		case errors.Is(err, domain.ErrConflict):
			s.log.DebugContext(ctx, "recurring schedule already fired",
				slog.String("item_id", entry.Source.ID.String()),
			)
			continue
		case err != nil:
			result.Failed++
			s.log.ErrorContext(ctx, "recurring schedule failed",
				slog.String("item_id", entry.Source.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}

		result.CreatedCount++
		result.CreatedItemNames = append(result.CreatedItemNames, created.Name)
	}

	if result.CreatedCount > 0 {
		s.activity.Record(ctx, domain.NewRecurringTriggeredActivity(result.CreatedItemNames))
	}

	s.log.InfoContext(ctx, "recurring check completed",
		slog.Int("created_count", result.CreatedCount),
		slog.Any("items", result.CreatedItemNames),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}

func (s *Service) fire(ctx context.Context, entry domain.RecurringEntry, today time.Time) (*domain.Item, error) {
	src := entry.Source
	now := s.clock.Now().UTC()

	var created *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.schedules.MarkTriggered(ctx, src.ID, today); err != nil {
			return err
		}

		sourceID := src.ID
		var err error
		created, err = s.items.Create(ctx, &domain.Item{
			ID:                uuid.New(),
			Name:              src.Name,
			Quantity:          src.Quantity,
			CategoryID:        src.CategoryID,
			Placement:         domain.Active{In: domain.ListToBuy},
			RecurringSourceID: &sourceID,
			CreatedBy:         src.CreatedBy,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			return fmt.Errorf("create recurring instance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// isActiveInventory reports whether a schedule owner may fire. Schedules of
// items that left inventory stay stored but dormant.
func isActiveInventory(it domain.Item) bool {
	return !it.IsTrashed() && it.List() == domain.ListInventory
}
