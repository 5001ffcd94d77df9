package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/internal/service/activity"
)

type activityService interface {
	ListActivities(ctx context.Context, input activity.ListInput) ([]domain.ActivityEvent, error)
}

// ActivityHandler serves the household activity feed.
type ActivityHandler struct {
	svc activityService
	log *slog.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc activityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: logger.With("handler", "activity")}
}

// List handles GET /api/activities?limit=&offset=.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	var input activity.ListInput
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("limit", "must be an integer"))
			return
		}
		input.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("offset", "must be an integer"))
			return
		}
		input.Offset = n
	}

	events, err := h.svc.ListActivities(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivitiesResponse(events))
}
