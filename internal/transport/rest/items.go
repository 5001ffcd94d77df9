package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/internal/service/item"
)

type itemService interface {
	CreateItem(ctx context.Context, input item.CreateItemInput) (*domain.Item, error)
	UpdateItem(ctx context.Context, input item.UpdateItemInput) (*domain.Item, error)
	MoveItem(ctx context.Context, input item.MoveItemInput) (*item.MoveResult, error)
	TrashItem(ctx context.Context, id uuid.UUID) (*item.MoveResult, error)
	RestoreItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ForceDeleteItem(ctx context.Context, id uuid.UUID) error
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListItems(ctx context.Context, list *domain.ListType) ([]domain.Item, error)
	SuggestItems(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// ItemHandler serves the item REST endpoints.
type ItemHandler struct {
	svc itemService
	log *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(svc itemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: logger.With("handler", "item")}
}

type createItemRequest struct {
	ID         *uuid.UUID `json:"id"`
	Name       string     `json:"name"`
	Quantity   *string    `json:"quantity"`
	CategoryID *uuid.UUID `json:"category_id"`
	ListType   string     `json:"list_type"`
}

type updateItemRequest struct {
	Name       *string    `json:"name"`
	Quantity   *string    `json:"quantity"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type moveItemRequest struct {
	ToList string `json:"to_list"`
}

// List handles GET /api/items?list_type=.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	var list *domain.ListType
	if v := r.URL.Query().Get("list_type"); v != "" {
		l := domain.ListType(v)
		list = &l
	}

	items, err := h.svc.ListItems(r.Context(), list)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemsResponse(items))
}

// Get handles GET /api/items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	it, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(it))
}

// Create handles POST /api/items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	it, err := h.svc.CreateItem(r.Context(), item.CreateItemInput{
		ID:         req.ID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		CategoryID: req.CategoryID,
		List:       domain.ListType(req.ListType),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(it))
}

// Update handles PATCH /api/items/{id}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	it, err := h.svc.UpdateItem(r.Context(), item.UpdateItemInput{
		ID:         id,
		Name:       req.Name,
		Quantity:   req.Quantity,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(it))
}

// Move handles POST /api/items/{id}/move.
func (h *ItemHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req moveItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.MoveItem(r.Context(), item.MoveItemInput{ID: id, To: domain.ListType(req.ToList)})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMoveResponse(res))
}

// Trash handles DELETE /api/items/{id}. The item is soft-deleted.
func (h *ItemHandler) Trash(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.TrashItem(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMoveResponse(res))
}

// Restore handles POST /api/items/{id}/restore.
func (h *ItemHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	it, err := h.svc.RestoreItem(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(it))
}

// ForceDelete handles DELETE /api/items/{id}/force. Only trashed items can
// be removed permanently.
func (h *ItemHandler) ForceDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.ForceDeleteItem(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Suggest handles GET /api/items/suggest?q=.
func (h *ItemHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.svc.SuggestItems(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSuggestionsResponse(suggestions))
}

func toMoveResponse(res *item.MoveResult) moveResponse {
	return moveResponse{
		Message:     res.Message,
		IsDuplicate: res.IsDuplicate,
		Item:        toItemResponsePtr(res.Item),
	}
}
