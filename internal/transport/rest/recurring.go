package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/internal/service/recurring"
)

type recurringService interface {
	SetSchedule(ctx context.Context, input recurring.SetScheduleInput) (*domain.RecurringSchedule, error)
	RemoveSchedule(ctx context.Context, itemID uuid.UUID) (bool, error)
	ListRecurringItems(ctx context.Context) ([]domain.RecurringEntry, error)
}

// RecurringHandler serves the recurring schedule endpoints.
type RecurringHandler struct {
	svc recurringService
	log *slog.Logger
}

// NewRecurringHandler creates a RecurringHandler.
func NewRecurringHandler(svc recurringService, logger *slog.Logger) *RecurringHandler {
	return &RecurringHandler{svc: svc, log: logger.With("handler", "recurring")}
}

type setScheduleRequest struct {
	Days []string `json:"days"`
}

// List handles GET /api/recurring.
func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListRecurringItems(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]recurringItemResponse, len(entries))
	for i := range entries {
		out[i] = recurringItemResponse{
			Item:     toItemResponse(&entries[i].Source),
			Schedule: toScheduleResponse(&entries[i].Schedule),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Set handles PUT /api/items/{id}/recurring. The weekdays replace the
// previous schedule.
func (h *RecurringHandler) Set(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req setScheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	days := make([]time.Weekday, 0, len(req.Days))
	for _, name := range req.Days {
		d, ok := domain.ParseWeekday(name)
		if !ok {
			handleError(h.log, w, r, domain.NewValidationError("days", "unknown weekday "+name))
			return
		}
		days = append(days, d)
	}

	sched, err := h.svc.SetSchedule(r.Context(), recurring.SetScheduleInput{ItemID: id, Days: days})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleResponse(sched))
}

// Remove handles DELETE /api/items/{id}/recurring.
func (h *RecurringHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	removed, err := h.svc.RemoveSchedule(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}
