package recurring

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

type scheduleRecord struct {
	ItemID          uuid.UUID
	Days            [7]bool
	LastTriggeredAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r *scheduleRecord) dest() []any {
	return []any{
		&r.ItemID, &r.Days[0], &r.Days[1], &r.Days[2], &r.Days[3], &r.Days[4], &r.Days[5], &r.Days[6],
		&r.LastTriggeredAt, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *scheduleRecord) toDomain() *domain.RecurringSchedule {
	s := &domain.RecurringSchedule{
		ItemID:          r.ItemID,
		LastTriggeredOn: r.LastTriggeredAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for i, on := range r.Days {
		if on {
			s.Days = s.Days.With(mondayFirst[i])
		}
	}
	return s
}

// sourceRecord is the owning item row of a schedule.
type sourceRecord struct {
	ID                uuid.UUID
	Name              string
	Quantity          *string
	CategoryID        *uuid.UUID
	ListType          string
	DeletedFrom       *string
	DeletedAt         *time.Time
	RecurringSourceID *uuid.UUID
	CreatedBy         *uuid.UUID
	MovedAt           *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r *sourceRecord) dest() []any {
	return []any{
		&r.ID, &r.Name, &r.Quantity, &r.CategoryID, &r.ListType, &r.DeletedFrom, &r.DeletedAt,
		&r.RecurringSourceID, &r.CreatedBy, &r.MovedAt, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *sourceRecord) toDomain() (*domain.Item, error) {
	var from *domain.ListType
	if r.DeletedFrom != nil {
		l := domain.ListType(*r.DeletedFrom)
		from = &l
	}
	placement, err := domain.PlacementFromColumns(domain.ListType(r.ListType), from, r.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &domain.Item{
		ID:                r.ID,
		Name:              r.Name,
		Quantity:          r.Quantity,
		CategoryID:        r.CategoryID,
		Placement:         placement,
		RecurringSourceID: r.RecurringSourceID,
		CreatedBy:         r.CreatedBy,
		MovedAt:           r.MovedAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}, nil
}
