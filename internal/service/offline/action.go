package offline

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// ActionType is the kind of a queued client mutation.
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
	ActionMove   ActionType = "move"
)

// legacyPrefix is accepted in front of action types sent by older clients.
const legacyPrefix = "item:"

// ParseActionType normalises a wire action type.
func ParseActionType(s string) (ActionType, bool) {
	t := ActionType(strings.TrimPrefix(strings.TrimSpace(s), legacyPrefix))
	switch t {
	case ActionCreate, ActionUpdate, ActionDelete, ActionMove:
		return t, true
	}
	return "", false
}

// Action is one queued client mutation.
type Action struct {
	// ID is opaque to the server. It is echoed back so the client can drop
	// acknowledged actions from its queue.
	ID string

	Type string
	Data json.RawMessage

	// Timestamp is the client time of the action in ISO-8601. Optional.
	Timestamp string
}

// clientTime parses Timestamp. A zero time means no timestamp was sent.
func (a Action) clientTime() (time.Time, error) {
	ts := strings.TrimSpace(a.Timestamp)
	if ts == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, domain.NewValidationError("timestamp", "must be ISO-8601")
	}
	return t, nil
}

type createPayload struct {
	ID         *uuid.UUID `json:"id"`
	Name       string     `json:"name"`
	Quantity   *string    `json:"quantity"`
	CategoryID *uuid.UUID `json:"category_id"`
	ListType   string     `json:"list_type"`
}

type updatePayload struct {
	ID         uuid.UUID  `json:"id"`
	Name       *string    `json:"name"`
	Quantity   *string    `json:"quantity"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type deletePayload struct {
	ID uuid.UUID `json:"id"`
}

type movePayload struct {
	ID     uuid.UUID `json:"id"`
	ToList string    `json:"to_list"`
}

// decode unmarshals the action data into dst. Malformed data is a
// validation error of the action, never of the batch.
func decode(data json.RawMessage, dst any) error {
	if len(data) == 0 {
		return domain.NewValidationError("data", "required")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return domain.NewValidationError("data", "malformed: "+err.Error())
	}
	return nil
}

func requireID(id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return nil
}
