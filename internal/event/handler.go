package event

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/hostelhub/server/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, createdBy int64, dto CreateEventDTO) (*Event, error)
	Upcoming(ctx context.Context) ([]*Event, error)
	Join(ctx context.Context, eventID, userID int64) (*Event, error)
	Leave(ctx context.Context, eventID, userID int64) (*Event, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	var dto CreateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.Service.Create(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, event)
}

func (h *Handler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	events, err := h.Service.Upcoming(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (h *Handler) eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event id")
		return 0, false
	}
	return id, true
}

func (h *Handler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	event, err := h.Service.Join(r.Context(), id, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, event)
}

func (h *Handler) LeaveEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	event, err := h.Service.Leave(r.Context(), id, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, event)
}
