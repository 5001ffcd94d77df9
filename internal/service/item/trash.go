package item

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/pkg/ctxutil"
)

// RestoreItem brings a trashed item back to the list it was deleted from.
// Items that are not in trash yield domain.ErrNotFound.
func (s *Service) RestoreItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	var restored *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		item, err := s.items.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}

		trashed, ok := item.Placement.(domain.Trashed)
		if !ok {
			return fmt.Errorf("item %s is not in trash: %w", id, domain.ErrNotFound)
		}

		restored, err = s.items.Restore(ctx, id, trashed.Restore())
		if err != nil {
			return fmt.Errorf("restore item: %w", err)
		}

		s.activity.Record(ctx, domain.NewItemActivity(domain.ActivityItemRestored, ctxutil.ActorFromCtx(ctx), restored,
			map[string]any{"list_type": restored.List().String()},
		))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item restored",
		slog.String("item_id", id.String()),
		slog.String("list_type", restored.List().String()),
	)

	return restored, nil
}

// ForceDeleteItem permanently removes a trashed item.
// Items that are not in trash yield domain.ErrNotFound.
func (s *Service) ForceDeleteItem(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		item, err := s.items.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		if !item.IsTrashed() {
			return fmt.Errorf("item %s is not in trash: %w", id, domain.ErrNotFound)
		}
		if err := s.items.HardDelete(ctx, id); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "item force deleted", slog.String("item_id", id.String()))
	return nil
}

// PurgeTrash permanently removes items that have been in trash longer than
// retention. It returns the number of removed items.
func (s *Service) PurgeTrash(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, domain.NewValidationError("retention", "must be positive")
	}

	threshold := s.now().Add(-retention)

	n, err := s.items.PurgeTrashedBefore(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("purge trash: %w", err)
	}

	s.log.InfoContext(ctx, "trash purged",
		slog.Int64("deleted", n),
		slog.Time("threshold", threshold),
	)

	return n, nil
}
