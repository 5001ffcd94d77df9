package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/household-backend/internal/service/offline"
)

type reconciler interface {
	Reconcile(ctx context.Context, actions []offline.Action) (*offline.Summary, error)
}

// SyncHandler accepts queued offline actions.
type SyncHandler struct {
	svc reconciler
	log *slog.Logger
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(svc reconciler, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{svc: svc, log: logger.With("handler", "sync")}
}

type syncRequest struct {
	Actions []syncAction `json:"actions"`
}

type syncAction struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// Sync handles POST /api/sync. Per-action failures are reported in the body;
// the response is 200 whenever the batch itself was accepted.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	actions := make([]offline.Action, len(req.Actions))
	for i, a := range req.Actions {
		actions[i] = offline.Action{ID: a.ID, Type: a.Type, Data: a.Data, Timestamp: a.Timestamp}
	}

	summary, err := h.svc.Reconcile(r.Context(), actions)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSyncResponse(summary))
}
