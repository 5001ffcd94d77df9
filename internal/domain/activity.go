package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityKind identifies a loggable household event.
type ActivityKind string

const (
	ActivityItemAdded          ActivityKind = "item_added"
	ActivityQuickBuyAdded      ActivityKind = "quick_buy_added"
	ActivityItemChecked        ActivityKind = "item_checked"
	ActivityItemDeleted        ActivityKind = "item_deleted"
	ActivityItemRestored       ActivityKind = "item_restored"
	ActivityItemEdited         ActivityKind = "item_edited"
	ActivityRecurringTriggered ActivityKind = "recurring_triggered"
)

func (k ActivityKind) String() string { return string(k) }

func (k ActivityKind) IsValid() bool {
	switch k {
	case ActivityItemAdded, ActivityQuickBuyAdded, ActivityItemChecked, ActivityItemDeleted,
		ActivityItemRestored, ActivityItemEdited, ActivityRecurringTriggered:
		return true
	}
	return false
}

// ActivityEvent is an entry of the household activity feed.
type ActivityEvent struct {
	ID          uuid.UUID
	Kind        ActivityKind
	ActorID     *uuid.UUID
	SubjectID   *uuid.UUID
	SubjectName *string
	Metadata    map[string]any
	CreatedAt   time.Time
}

// NewItemActivity builds an event about a single item.
func NewItemActivity(kind ActivityKind, actor *uuid.UUID, item *Item, metadata map[string]any) ActivityEvent {
	evt := ActivityEvent{
		ID:        uuid.New(),
		Kind:      kind,
		ActorID:   actor,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if item != nil {
		id, name := item.ID, item.Name
		evt.SubjectID = &id
		evt.SubjectName = &name
	}
	return evt
}

// NewRecurringTriggeredActivity builds the aggregate event for one generator run.
func NewRecurringTriggeredActivity(names []string) ActivityEvent {
	return ActivityEvent{
		ID:   uuid.New(),
		Kind: ActivityRecurringTriggered,
		Metadata: map[string]any{
			"item_names": names,
			"count":      len(names),
		},
		CreatedAt: time.Now().UTC(),
	}
}
