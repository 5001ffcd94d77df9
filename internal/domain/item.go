package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxItemNameLength     = 255
	MaxItemQuantityLength = 100
)

// Item is a single household list entry.
type Item struct {
	ID         uuid.UUID
	Name       string
	Quantity   *string
	CategoryID *uuid.UUID
	Placement  Placement

	// RecurringSourceID is set on to-buy items generated from a scheduled
	// inventory item. It never changes after creation.
	RecurringSourceID *uuid.UUID

	CreatedBy *uuid.UUID
	MovedAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Schedule is loaded only by listing reads.
	Schedule *RecurringSchedule
}

// List returns the list the item is currently on.
func (i *Item) List() ListType {
	if i.Placement == nil {
		return ""
	}
	return i.Placement.List()
}

func (i *Item) IsTrashed() bool {
	_, ok := i.Placement.(Trashed)
	return ok
}

func (i *Item) IsRecurringInstance() bool {
	return i.RecurringSourceID != nil
}

// DeletedAt returns the soft-delete time, nil for active items.
func (i *Item) DeletedAt() *time.Time {
	if t, ok := i.Placement.(Trashed); ok {
		at := t.At
		return &at
	}
	return nil
}

// DeletedFrom returns the list a trashed item is restored to, nil for active items.
func (i *Item) DeletedFrom() *ListType {
	if t, ok := i.Placement.(Trashed); ok {
		from := t.From
		return &from
	}
	return nil
}

// ItemChanges holds the editable fields of an item. Nil fields are left as is.
type ItemChanges struct {
	Name       *string
	Quantity   *string
	CategoryID *uuid.UUID
}

func (c ItemChanges) IsEmpty() bool {
	return c.Name == nil && c.Quantity == nil && c.CategoryID == nil
}

// ChangedFields lists the json names of the fields present in c.
func (c ItemChanges) ChangedFields() []string {
	var fields []string
	if c.Name != nil {
		fields = append(fields, "name")
	}
	if c.Quantity != nil {
		fields = append(fields, "quantity")
	}
	if c.CategoryID != nil {
		fields = append(fields, "category_id")
	}
	return fields
}

// ItemFilter narrows item listings.
type ItemFilter struct {
	// List restricts results to one list; nil returns every non-trashed item.
	List *ListType
}

// Suggestion is an autocomplete candidate built from existing item names.
type Suggestion struct {
	Name       string
	CategoryID *uuid.UUID
	Quantity   *string
	List       ListType
}
