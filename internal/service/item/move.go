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

const (
	msgMovedToTrash      = "Item moved to trash"
	msgRecurringComplete = "Recurring item completed"
	msgMoved             = "Item moved successfully"
)

// MoveResult is the outcome of a list transition.
type MoveResult struct {
	// Item is the resulting active item. It is nil when the moved item left
	// the active lists: trashed, or a recurring instance that was checked off.
	Item *domain.Item

	Message string

	// IsDuplicate reports that the moved item was absorbed by an existing
	// inventory item with the same name; Item is then that existing item.
	IsDuplicate bool
}

// MoveItem moves an active item to another list.
//
// Moving to trash soft-deletes the item and remembers its list for restore.
// Moving a recurring instance to inventory checks it off by deleting it.
// Moving a plain item to inventory merges it into an existing inventory item
// with the same name (case-insensitive), hard-deleting the moved item.
// Trashed or missing items yield domain.ErrNotFound.
func (s *Service) MoveItem(ctx context.Context, input MoveItemInput) (*MoveResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *MoveResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		item, err := s.items.GetByID(ctx, input.ID)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		if item.IsTrashed() {
			return fmt.Errorf("item %s is in trash: %w", input.ID, domain.ErrNotFound)
		}

		switch {
		case input.To == domain.ListTrash:
			result, err = s.moveToTrash(ctx, item)
		case input.To == domain.ListInventory && item.IsRecurringInstance():
			result, err = s.completeRecurring(ctx, item)
		case input.To == domain.ListInventory:
			result, err = s.moveToInventory(ctx, item)
		default:
			result, err = s.moveToList(ctx, item, domain.Active{In: input.To})
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item moved",
		slog.String("item_id", input.ID.String()),
		slog.String("to", input.To.String()),
		slog.Bool("is_duplicate", result.IsDuplicate),
	)

	return result, nil
}

// TrashItem moves an active item to trash.
func (s *Service) TrashItem(ctx context.Context, id uuid.UUID) (*MoveResult, error) {
	return s.MoveItem(ctx, MoveItemInput{ID: id, To: domain.ListTrash})
}

func (s *Service) moveToTrash(ctx context.Context, item *domain.Item) (*MoveResult, error) {
	trashed := domain.Trashed{From: item.List(), At: s.now()}

	if _, err := s.items.Trash(ctx, item.ID, trashed); err != nil {
		return nil, fmt.Errorf("trash item: %w", err)
	}

	s.activity.Record(ctx, domain.NewItemActivity(domain.ActivityItemDeleted, ctxutil.ActorFromCtx(ctx), item,
		map[string]any{"from_list": trashed.From.String()},
	))

	return &MoveResult{Message: msgMovedToTrash}, nil
}

func (s *Service) completeRecurring(ctx context.Context, item *domain.Item) (*MoveResult, error) {
	if err := s.items.HardDelete(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("delete recurring instance: %w", err)
	}

	s.activity.Record(ctx, domain.NewItemActivity(domain.ActivityItemChecked, ctxutil.ActorFromCtx(ctx), item,
		map[string]any{"recurring_source_id": item.RecurringSourceID.String()},
	))

	return &MoveResult{Message: msgRecurringComplete}, nil
}

func (s *Service) moveToInventory(ctx context.Context, item *domain.Item) (*MoveResult, error) {
	existing, err := s.items.FindInventoryDuplicate(ctx, item.Name, item.ID)
	switch {
	case err == nil:
		return s.absorb(ctx, item, existing)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find inventory duplicate: %w", err)
	}

	return s.moveToList(ctx, item, domain.Active{In: domain.ListInventory})
}

// absorb removes item in favour of an inventory item with the same name.
// The removal is permanent.
func (s *Service) absorb(ctx context.Context, item, existing *domain.Item) (*MoveResult, error) {
	if err := s.items.HardDelete(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("delete duplicate item: %w", err)
	}

	s.activity.Record(ctx, domain.NewItemActivity(domain.ActivityItemChecked, ctxutil.ActorFromCtx(ctx), existing,
		map[string]any{
			"merged_item_id":   item.ID.String(),
			"merged_item_name": item.Name,
		},
	))

	return &MoveResult{
		Item:        existing,
		Message:     fmt.Sprintf("'%s' already in inventory", item.Name),
		IsDuplicate: true,
	}, nil
}

func (s *Service) moveToList(ctx context.Context, item *domain.Item, to domain.Active) (*MoveResult, error) {
	moved, err := s.items.Move(ctx, item.ID, to, s.now())
	if err != nil {
		return nil, fmt.Errorf("move item: %w", err)
	}

	if to.In == domain.ListInventory {
		s.activity.Record(ctx, domain.NewItemActivity(domain.ActivityItemChecked, ctxutil.ActorFromCtx(ctx), moved,
			map[string]any{"from_list": item.List().String()},
		))
	}

	return &MoveResult{Item: moved, Message: msgMoved}, nil
}
