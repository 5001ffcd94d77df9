package item

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// GetItem returns an item by id, including trashed items.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListItems returns the items of one list, or of all active lists when list is nil.
func (s *Service) ListItems(ctx context.Context, list *domain.ListType) ([]domain.Item, error) {
	if list != nil && !list.IsValid() {
		return nil, domain.NewValidationError("list_type", "unknown list type")
	}

	items, err := s.items.List(ctx, domain.ItemFilter{List: list})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// SuggestItems returns autocomplete candidates for query. Queries shorter
// than the configured minimum return an empty result.
func (s *Service) SuggestItems(ctx context.Context, query string) ([]domain.Suggestion, error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < s.opts.SuggestMinQueryLength {
		return []domain.Suggestion{}, nil
	}

	limit := s.opts.SuggestMaxResults
	if limit <= 0 {
		limit = 10
	}

	out, err := s.items.Suggest(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest items: %w", err)
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	return out, nil
}
