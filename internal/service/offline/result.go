package offline

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// Status classifies the outcome of one action.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusConflict Status = "conflict"
	StatusError    Status = "error"
)

// ErrorKind refines StatusError outcomes.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindValidation        ErrorKind = "validation"
	KindUnknownActionType ErrorKind = "unknown_action_type"
	KindCancelled         ErrorKind = "cancelled"
	KindUnexpected        ErrorKind = "unexpected"
)

// Result is the outcome of one action.
type Result struct {
	ActionID string
	Type     string
	Status   Status

	ItemID *uuid.UUID

	// Item is the resulting state for successes and the current server state
	// for conflicts. It is nil when the action left no active item behind.
	Item *domain.Item

	Message string

	// Move details.
	From        domain.ListType
	To          domain.ListType
	IsDuplicate bool

	Kind ErrorKind
}

// Summary aggregates the results of a batch in submission order.
type Summary struct {
	Results []Result

	// SyncedIDs lists the client action ids that succeeded. Only these may
	// be removed from the client queue.
	SyncedIDs []string

	SuccessCount  int
	ConflictCount int
	ErrorCount    int
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusSuccess:
		s.SuccessCount++
		if r.ActionID != "" {
			s.SyncedIDs = append(s.SyncedIDs, r.ActionID)
		}
	case StatusConflict:
		s.ConflictCount++
	default:
		s.ErrorCount++
	}
}

// Conflicts returns the conflicted results.
func (s *Summary) Conflicts() []Result { return s.filter(StatusConflict) }

// Errors returns the failed results.
func (s *Summary) Errors() []Result { return s.filter(StatusError) }

func (s *Summary) filter(st Status) []Result {
	out := []Result{}
	for _, r := range s.Results {
		if r.Status == st {
			out = append(out, r)
		}
	}
	return out
}

// classify maps an error to its kind and client message.
func classify(err error) (ErrorKind, string) {
	switch {
	case errors.Is(err, domain.ErrUnknownActionType):
		return KindUnknownActionType, "Unknown action type"
	case errors.Is(err, domain.ErrNotFound):
		return KindNotFound, "Item not found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled, msgCancelled
	case errors.Is(err, domain.ErrValidation):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return KindValidation, ve.Error()
		}
		return KindValidation, err.Error()
	default:
		return KindUnexpected, err.Error()
	}
}
