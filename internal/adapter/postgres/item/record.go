package item

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// itemRecord mirrors a row of the items table.
type itemRecord struct {
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

// dest returns scan targets in the order of columns.
func (r *itemRecord) dest() []any {
	return []any{
		&r.ID, &r.Name, &r.Quantity, &r.CategoryID, &r.ListType, &r.DeletedFrom, &r.DeletedAt,
		&r.RecurringSourceID, &r.CreatedBy, &r.MovedAt, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *itemRecord) toDomain() (*domain.Item, error) {
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

var scheduleColumns = []string{
	"rs.item_id", "rs.monday", "rs.tuesday", "rs.wednesday", "rs.thursday",
	"rs.friday", "rs.saturday", "rs.sunday", "rs.last_triggered_at", "rs.created_at", "rs.updated_at",
}

// scheduleRecord holds the LEFT JOINed schedule columns; all nullable.
type scheduleRecord struct {
	ItemID          *uuid.UUID
	Days            [7]*bool
	LastTriggeredAt *time.Time
	CreatedAt       *time.Time
	UpdatedAt       *time.Time
}

func (r *scheduleRecord) dest() []any {
	return []any{
		&r.ItemID, &r.Days[0], &r.Days[1], &r.Days[2], &r.Days[3], &r.Days[4], &r.Days[5], &r.Days[6],
		&r.LastTriggeredAt, &r.CreatedAt, &r.UpdatedAt,
	}
}

// mondayFirst matches the order of the day columns.
var mondayFirst = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

func (r *scheduleRecord) toDomain(itemID uuid.UUID) *domain.RecurringSchedule {
	if r.ItemID == nil {
		return nil
	}

	s := &domain.RecurringSchedule{
		ItemID:          itemID,
		LastTriggeredOn: r.LastTriggeredAt,
	}
	for i, on := range r.Days {
		if on != nil && *on {
			s.Days = s.Days.With(mondayFirst[i])
		}
	}
	if r.CreatedAt != nil {
		s.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		s.UpdatedAt = *r.UpdatedAt
	}
	return s
}
