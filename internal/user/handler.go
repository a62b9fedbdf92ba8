package user

import (
	"encoding/json"
	"net/http"

	"github.com/hostelhub/server/internal/transport"
)

type ServiceAPI interface {
	GetByID(id int64) (*User, error)
	ListAll() ([]*User, error)
	UpdateProfile(id int64, dto UpdateProfileDTO) (*User, error)
	SetNightOwl(id int64, enabled bool) error
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

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	u, err := h.Service.GetByID(authUser.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	users, err := h.Service.ListAll()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	authUser, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdateProfile(authUser.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) SetNightOwl(w http.ResponseWriter, r *http.Request) {
	authUser, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	var dto SetNightOwlDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SetNightOwl(authUser.ID, dto.Enabled); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"is_night_owl": dto.Enabled})
}
