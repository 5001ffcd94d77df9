package domain

import (
	"fmt"
	"time"
)

// ListType is the logical list an item currently belongs to.
type ListType string

const (
	ListQuickBuy  ListType = "quick_buy"
	ListToBuy     ListType = "to_buy"
	ListInventory ListType = "inventory"
	ListTrash     ListType = "trash"
)

func (l ListType) String() string { return string(l) }

func (l ListType) IsValid() bool {
	switch l {
	case ListQuickBuy, ListToBuy, ListInventory, ListTrash:
		return true
	}
	return false
}

// IsActive reports whether l is a list an item can live in outside the trash.
func (l ListType) IsActive() bool {
	return l.IsValid() && l != ListTrash
}

// ActiveListTypes returns the non-trash lists in display order.
func ActiveListTypes() []ListType {
	return []ListType{ListQuickBuy, ListToBuy, ListInventory}
}

// Placement describes where an item lives. It is either Active (on one of the
// regular lists) or Trashed (soft-deleted, remembering where it came from).
// The two variants make "deleted_at set iff list is trash iff deleted_from set"
// hold by construction.
type Placement interface {
	List() ListType
	placement()
}

// Active places an item on a non-trash list.
type Active struct {
	In ListType
}

func (a Active) List() ListType { return a.In }
func (Active) placement()       {}

// Trashed places an item in the trash.
type Trashed struct {
	From ListType
	At   time.Time
}

func (Trashed) List() ListType { return ListTrash }
func (Trashed) placement()     {}

// Restore returns the placement a trashed item goes back to. A missing or
// invalid origin falls back to the to-buy list.
func (t Trashed) Restore() Active {
	if !t.From.IsActive() {
		return Active{In: ListToBuy}
	}
	return Active{In: t.From}
}

// ActiveIn returns an Active placement, rejecting trash and unknown lists.
func ActiveIn(list ListType) (Active, error) {
	if !list.IsActive() {
		return Active{}, fmt.Errorf("list %q is not an active list: %w", list, ErrValidation)
	}
	return Active{In: list}, nil
}

// PlacementFromColumns rebuilds a Placement from its stored columns and
// rejects rows that break the trash invariant.
func PlacementFromColumns(list ListType, deletedFrom *ListType, deletedAt *time.Time) (Placement, error) {
	switch {
	case list == ListTrash:
		if deletedAt == nil {
			return nil, fmt.Errorf("trashed item without deleted_at: %w", ErrValidation)
		}
		from := ListToBuy
		if deletedFrom != nil {
			from = *deletedFrom
		}
		return Trashed{From: from, At: *deletedAt}, nil
	case list.IsActive():
		if deletedAt != nil || deletedFrom != nil {
			return nil, fmt.Errorf("item on %s carries trash markers: %w", list, ErrValidation)
		}
		return Active{In: list}, nil
	default:
		return nil, fmt.Errorf("unknown list type %q: %w", list, ErrValidation)
	}
}

// PlacementColumns flattens p into (list_type, deleted_from, deleted_at).
func PlacementColumns(p Placement) (ListType, *ListType, *time.Time) {
	switch v := p.(type) {
	case Trashed:
		from, at := v.From, v.At
		return ListTrash, &from, &at
	case Active:
		return v.In, nil, nil
	default:
		return "", nil, nil
	}
}
