package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/pkg/ctxutil"
)

// CreateItem creates a new item on an active list. When input.ID names an
// item that already exists, that item is returned unchanged, so replaying
// the same offline create twice is harmless.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	if input.ID != nil {
		id = *input.ID
	}

	categoryID := input.CategoryID
	if categoryID == nil && s.opts.DefaultCategoryID != uuid.Nil {
		def := s.opts.DefaultCategoryID
		categoryID = &def
	}

	actor := ctxutil.ActorFromCtx(ctx)
	now := s.now()

	var created *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if input.ID != nil {
			existing, err := s.items.GetByID(ctx, id)
			switch {
			case err == nil:
				created = existing
				return nil
			case !errors.Is(err, domain.ErrNotFound):
				return fmt.Errorf("check item id: %w", err)
			}
		}

		var err error
		created, err = s.items.Create(ctx, &domain.Item{
			ID:         id,
			Name:       domain.NormalizeName(input.Name),
			Quantity:   trimOrNil(input.Quantity),
			CategoryID: categoryID,
			Placement:  domain.Active{In: input.List},
			CreatedBy:  actor,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("create item: %w", err)
		}

		kind := domain.ActivityItemAdded
		if input.List == domain.ListQuickBuy {
			kind = domain.ActivityQuickBuyAdded
		}
		s.activity.Record(ctx, domain.NewItemActivity(kind, actor, created, map[string]any{
			"list_type": input.List.String(),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item created",
		slog.String("item_id", created.ID.String()),
		slog.String("list_type", created.List().String()),
	)

	return created, nil
}
