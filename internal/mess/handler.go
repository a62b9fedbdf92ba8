package mess

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/hostelhub/server/internal/transport"
)

type ServiceAPI interface {
	PublishMenu(ctx context.Context, createdBy int64, dto CreateMenuDTO) (*Menu, error)
	MenuForDate(ctx context.Context, date string) (*Menu, error)
	TodayMenu(ctx context.Context) (*Menu, error)
	RecentMenus(ctx context.Context, limit int) ([]*Menu, error)
	Rate(ctx context.Context, menuID, userID int64, dto RateMenuDTO) (*Menu, error)
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

func (h *Handler) PublishMenu(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	var dto CreateMenuDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	menu, err := h.Service.PublishMenu(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, menu)
}

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	var (
		menu *Menu
		err  error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		menu, err = h.Service.MenuForDate(r.Context(), date)
	} else {
		menu, err = h.Service.TodayMenu(r.Context())
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, menu)
}

func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	menus, err := h.Service.RecentMenus(r.Context(), limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"menus": menus})
}

func (h *Handler) RateMenu(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	menuID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	var dto RateMenuDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	menu, err := h.Service.Rate(r.Context(), menuID, user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, menu)
}
