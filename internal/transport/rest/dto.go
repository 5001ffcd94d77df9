package rest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/internal/service/offline"
)

type itemResponse struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Quantity          *string           `json:"quantity"`
	CategoryID        *uuid.UUID        `json:"category_id"`
	ListType          domain.ListType   `json:"list_type"`
	DeletedFrom       *domain.ListType  `json:"deleted_from"`
	DeletedAt         *time.Time        `json:"deleted_at"`
	RecurringSourceID *uuid.UUID        `json:"recurring_source_id"`
	CreatedBy         *uuid.UUID        `json:"created_by"`
	MovedAt           *time.Time        `json:"moved_at"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Schedule          *scheduleResponse `json:"schedule,omitempty"`
}

type scheduleResponse struct {
	ItemID          uuid.UUID `json:"item_id"`
	Days            []string  `json:"days"`
	Description     string    `json:"description"`
	LastTriggeredOn *string   `json:"last_triggered_on"`
}

type recurringItemResponse struct {
	Item     itemResponse     `json:"item"`
	Schedule scheduleResponse `json:"schedule"`
}

type suggestionResponse struct {
	Name       string          `json:"name"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Quantity   *string         `json:"quantity"`
	ListType   domain.ListType `json:"list_type"`
}

type activityResponse struct {
	ID          uuid.UUID           `json:"id"`
	Kind        domain.ActivityKind `json:"kind"`
	ActorID     *uuid.UUID          `json:"actor_id"`
	SubjectID   *uuid.UUID          `json:"subject_id"`
	SubjectName *string             `json:"subject_name"`
	Metadata    map[string]any      `json:"metadata"`
	CreatedAt   time.Time           `json:"created_at"`
}

type moveResponse struct {
	Message     string        `json:"message"`
	IsDuplicate bool          `json:"is_duplicate"`
	Item        *itemResponse `json:"item"`
}

type syncResultResponse struct {
	ActionID    string            `json:"action_id"`
	Type        string            `json:"type"`
	Status      offline.Status    `json:"status"`
	ItemID      *uuid.UUID        `json:"item_id,omitempty"`
	Item        *itemResponse     `json:"item,omitempty"`
	Message     string            `json:"message,omitempty"`
	From        domain.ListType   `json:"from,omitempty"`
	To          domain.ListType   `json:"to,omitempty"`
	IsDuplicate bool              `json:"is_duplicate,omitempty"`
	Kind        offline.ErrorKind `json:"kind,omitempty"`
}

type syncResponse struct {
	SyncedCount   int                  `json:"synced_count"`
	ConflictCount int                  `json:"conflict_count"`
	ErrorCount    int                  `json:"error_count"`
	SyncedIDs     []string             `json:"synced_ids"`
	Conflicts     []syncResultResponse `json:"conflicts"`
	Errors        []syncResultResponse `json:"errors"`
	Results       []syncResultResponse `json:"results"`
}

func toItemResponse(it *domain.Item) itemResponse {
	resp := itemResponse{
		ID:                it.ID,
		Name:              it.Name,
		Quantity:          it.Quantity,
		CategoryID:        it.CategoryID,
		ListType:          it.List(),
		DeletedFrom:       it.DeletedFrom(),
		DeletedAt:         it.DeletedAt(),
		RecurringSourceID: it.RecurringSourceID,
		CreatedBy:         it.CreatedBy,
		MovedAt:           it.MovedAt,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
	if it.Schedule != nil {
		s := toScheduleResponse(it.Schedule)
		resp.Schedule = &s
	}
	return resp
}

func toItemResponsePtr(it *domain.Item) *itemResponse {
	if it == nil {
		return nil
	}
	resp := toItemResponse(it)
	return &resp
}

func toItemsResponse(items []domain.Item) []itemResponse {
	out := make([]itemResponse, len(items))
	for i := range items {
		out[i] = toItemResponse(&items[i])
	}
	return out
}

func toScheduleResponse(s *domain.RecurringSchedule) scheduleResponse {
	days := s.Days.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}
	resp := scheduleResponse{
		ItemID:      s.ItemID,
		Days:        names,
		Description: s.Description(),
	}
	if s.LastTriggeredOn != nil {
		day := s.LastTriggeredOn.Format(time.DateOnly)
		resp.LastTriggeredOn = &day
	}
	return resp
}

func toSuggestionsResponse(in []domain.Suggestion) []suggestionResponse {
	out := make([]suggestionResponse, len(in))
	for i, s := range in {
		out[i] = suggestionResponse{
			Name:       s.Name,
			CategoryID: s.CategoryID,
			Quantity:   s.Quantity,
			ListType:   s.List,
		}
	}
	return out
}

func toActivitiesResponse(in []domain.ActivityEvent) []activityResponse {
	out := make([]activityResponse, len(in))
	for i, e := range in {
		out[i] = activityResponse{
			ID:          e.ID,
			Kind:        e.Kind,
			ActorID:     e.ActorID,
			SubjectID:   e.SubjectID,
			SubjectName: e.SubjectName,
			Metadata:    e.Metadata,
			CreatedAt:   e.CreatedAt,
		}
	}
	return out
}

func toSyncResults(in []offline.Result) []syncResultResponse {
	out := make([]syncResultResponse, len(in))
	for i, r := range in {
		out[i] = syncResultResponse{
			ActionID:    r.ActionID,
			Type:        r.Type,
			Status:      r.Status,
			ItemID:      r.ItemID,
			Item:        toItemResponsePtr(r.Item),
			Message:     r.Message,
			From:        r.From,
			To:          r.To,
			IsDuplicate: r.IsDuplicate,
			Kind:        r.Kind,
		}
	}
	return out
}

func toSyncResponse(s *offline.Summary) syncResponse {
	synced := s.SyncedIDs
	if synced == nil {
		synced = []string{}
	}
	return syncResponse{
		SyncedCount:   s.SuccessCount,
		ConflictCount: s.ConflictCount,
		ErrorCount:    s.ErrorCount,
		SyncedIDs:     synced,
		Conflicts:     toSyncResults(s.Conflicts()),
		Errors:        toSyncResults(s.Errors()),
		Results:       toSyncResults(s.Results),
	}
}
