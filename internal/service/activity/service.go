// Package activity serves the household activity feed.
package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/household-backend/internal/domain"
)

const maxPageSize = 200

type activityRepo interface {
	List(ctx context.Context, limit, offset int) ([]domain.ActivityEvent, error)
}

// Service lists activity events.
type Service struct {
	log         *slog.Logger
	activities  activityRepo
	defaultSize int
}

// NewService creates a new Activity service. pageSize is used when a caller
// does not ask for a specific limit.
func NewService(log *slog.Logger, activities activityRepo, pageSize int) *Service {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = 50
	}
	return &Service{
		log:         log.With("service", "activity"),
		activities:  activities,
		defaultSize: pageSize,
	}
}

// ListInput holds pagination parameters. A zero Limit means the default page size.
type ListInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > maxPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	return domain.NewValidationErrors(errs)
}

// ListActivities returns the newest events first.
func (s *Service) ListActivities(ctx context.Context, input ListInput) ([]domain.ActivityEvent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.defaultSize
	}

	events, err := s.activities.List(ctx, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if events == nil {
		events = []domain.ActivityEvent{}
	}
	return events, nil
}
