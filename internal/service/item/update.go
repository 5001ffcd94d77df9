package item

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/pkg/ctxutil"
)

// UpdateItem applies a partial update to an active item. Trashed items
// cannot be edited and yield domain.ErrNotFound. An update without any
// field returns the current item untouched.
func (s *Service) UpdateItem(ctx context.Context, input UpdateItemInput) (*domain.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	changes := input.changes()
	if changes.IsEmpty() {
		item, err := s.items.GetByID(ctx, input.ID)
		if err != nil {
			return nil, fmt.Errorf("get item: %w", err)
		}
		if item.IsTrashed() {
			return nil, fmt.Errorf("item %s is in trash: %w", input.ID, domain.ErrNotFound)
		}
		return item, nil
	}

	var updated *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.items.Update(ctx, input.ID, changes)
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		s.activity.Record(ctx, domain.NewItemActivity(domain.ActivityItemEdited, ctxutil.ActorFromCtx(ctx), updated,
			map[string]any{"fields": changes.ChangedFields()},
		))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item updated",
		slog.String("item_id", updated.ID.String()),
		slog.Any("fields", changes.ChangedFields()),
	)

	return updated, nil
}
