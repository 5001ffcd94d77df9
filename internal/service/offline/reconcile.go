package offline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/internal/service/item"
	"github.com/heartmarshall/household-backend/pkg/ctxutil"
)

const (
	msgConflict       = "Server version is newer"
	msgAlreadyDeleted = "Item already deleted"
	msgCancelled      = "Request cancelled before the action was applied"
)

// Reconcile applies actions sequentially in submission order. Later actions
// may refer to items created by earlier ones. Each action commits or rolls
// back on its own; failures are reported in the summary and never abort
// the batch. Only an oversized batch is rejected as a whole. When ctx ends
// mid-batch, the actions not yet run are reported as cancelled and the
// summary still lists what was committed.
func (s *Service) Reconcile(ctx context.Context, actions []Action) (*Summary, error) {
	if len(actions) > s.maxBatchSize {
		return nil, domain.NewValidationError("actions", fmt.Sprintf("max %d actions per batch", s.maxBatchSize))
	}

	summary := &Summary{
		Results:   make([]Result, 0, len(actions)),
		SyncedIDs: []string{},
	}

	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			s.log.WarnContext(ctx, "offline batch interrupted",
				slog.String("user_id", ctxutil.UserIDString(ctx)),
				slog.Int("processed", i),
				slog.Int("skipped", len(actions)-i),
				slog.String("error", err.Error()),
			)
			for _, rest := range actions[i:] {
				summary.add(skipped(rest))
			}
			break
		}
		summary.add(s.process(ctx, a))
	}

	s.log.InfoContext(ctx, "offline actions reconciled",
		slog.String("user_id", ctxutil.UserIDString(ctx)),
		slog.Int("total", len(actions)),
		slog.Int("success", summary.SuccessCount),
		slog.Int("conflicts", summary.ConflictCount),
		slog.Int("errors", summary.ErrorCount),
	)

	return summary, nil
}

// process runs a single action in its own transaction. Error outcomes roll
// the transaction back; panics are recovered and reported as unexpected.
func (s *Service) process(ctx context.Context, a Action) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = s.failed(ctx, a, fmt.Errorf("panic: %v", r))
		}
	}()

	var out Result
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.dispatch(ctx, a)
		return err
	})
	if err != nil {
		return s.failed(ctx, a, err)
	}

	out.ActionID = a.ID
	out.Type = a.Type
	return out
}

func skipped(a Action) Result {
	return Result{
		ActionID: a.ID,
		Type:     a.Type,
		Status:   StatusError,
		Kind:     KindCancelled,
		Message:  msgCancelled,
	}
}

func (s *Service) failed(ctx context.Context, a Action, err error) Result {
	kind, msg := classify(err)

	s.log.ErrorContext(ctx, "offline action failed",
		slog.String("user_id", ctxutil.UserIDString(ctx)),
		slog.String("client_action_id", a.ID),
		slog.String("action_type", a.Type),
		slog.String("kind", string(kind)),
		slog.String("error", err.Error()),
	)

	return Result{
		ActionID: a.ID,
		Type:     a.Type,
		Status:   StatusError,
		Kind:     kind,
		Message:  msg,
	}
}

func (s *Service) dispatch(ctx context.Context, a Action) (Result, error) {
	t, ok := ParseActionType(a.Type)
	if !ok {
		return Result{}, fmt.Errorf("action %q: %w", a.Type, domain.ErrUnknownActionType)
	}

	switch t {
	case ActionCreate:
		return s.create(ctx, a)
	case ActionUpdate:
		return s.update(ctx, a)
	case ActionDelete:
		return s.trash(ctx, a)
	default:
		return s.move(ctx, a)
	}
}

func (s *Service) create(ctx context.Context, a Action) (Result, error) {
	var p createPayload
	if err := decode(a.Data, &p); err != nil {
		return Result{}, err
	}

	created, err := s.items.CreateItem(ctx, item.CreateItemInput{
		ID:         p.ID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		CategoryID: p.CategoryID,
		List:       domain.ListType(p.ListType),
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Status: StatusSuccess, ItemID: &created.ID, Item: created}, nil
}

// update applies a partial update unless the server copy changed after the
// client made its edit. Timestamps are compared at whole-second resolution;
// a newer server copy wins and is returned as a conflict.
func (s *Service) update(ctx context.Context, a Action) (Result, error) {
	var p updatePayload
	if err := decode(a.Data, &p); err != nil {
		return Result{}, err
	}
	if err := requireID(p.ID); err != nil {
		return Result{}, err
	}
	clientTime, err := a.clientTime()
	if err != nil {
		return Result{}, err
	}

	current, err := s.items.GetItem(ctx, p.ID)
	if err != nil {
		return Result{}, err
	}
	if current.IsTrashed() {
		return Result{}, fmt.Errorf("item %s is in trash: %w", p.ID, domain.ErrNotFound)
	}

	if !clientTime.IsZero() && current.UpdatedAt.Unix() > clientTime.Unix() {
		return Result{
			Status:  StatusConflict,
			ItemID:  &current.ID,
			Item:    current,
			Message: msgConflict,
		}, nil
	}

	updated, err := s.items.UpdateItem(ctx, item.UpdateItemInput{
		ID:         p.ID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		CategoryID: p.CategoryID,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Status: StatusSuccess, ItemID: &updated.ID, Item: updated}, nil
}

// trash moves the item to trash. An item that is gone or already trashed
// satisfies the client's intent and counts as success.
func (s *Service) trash(ctx context.Context, a Action) (Result, error) {
	var p deletePayload
	if err := decode(a.Data, &p); err != nil {
		return Result{}, err
	}
	if err := requireID(p.ID); err != nil {
		return Result{}, err
	}

	id := p.ID
	current, err := s.items.GetItem(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return Result{Status: StatusSuccess, ItemID: &id, Message: msgAlreadyDeleted}, nil
	case err != nil:
		return Result{}, err
	case current.IsTrashed():
		return Result{Status: StatusSuccess, ItemID: &id, Message: msgAlreadyDeleted}, nil
	}

	from := current.List()
	moved, err := s.items.MoveItem(ctx, item.MoveItemInput{ID: id, To: domain.ListTrash})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Status:  StatusSuccess,
		ItemID:  &id,
		Message: moved.Message,
		From:    from,
		To:      domain.ListTrash,
	}, nil
}

func (s *Service) move(ctx context.Context, a Action) (Result, error) {
	var p movePayload
	if err := decode(a.Data, &p); err != nil {
		return Result{}, err
	}
	if err := requireID(p.ID); err != nil {
		return Result{}, err
	}

	current, err := s.items.GetItem(ctx, p.ID)
	if err != nil {
		return Result{}, err
	}

	// The move may update current in place.
	from, id := current.List(), current.ID

	to := domain.ListType(p.ToList)
	moved, err := s.items.MoveItem(ctx, item.MoveItemInput{ID: p.ID, To: to})
	if err != nil {
		return Result{}, err
	}

	if moved.Item != nil {
		id = moved.Item.ID
	}

	return Result{
		Status:      StatusSuccess,
		ItemID:      &id,
		Item:        moved.Item,
		Message:     moved.Message,
		From:        from,
		To:          to,
		IsDuplicate: moved.IsDuplicate,
	}, nil
}
