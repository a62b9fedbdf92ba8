package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/hostelhub/server/internal/transport"
	"github.com/hostelhub/server/internal/user"
	"github.com/hostelhub/server/internal/wall"
)

type ServiceAPI interface {
	AuditTrail(ctx context.Context, limit int) ([]*AuditLog, error)
	ListUsers() ([]*user.User, error)
	UpdateRole(ctx context.Context, adminID, targetID int64, dto user.UpdateRoleDTO) (*user.User, error)
	PendingPosts(ctx context.Context) ([]*wall.Post, error)
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

func (h *Handler) GetAuditTrail(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.Service.AuditTrail(r.Context(), limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	users, err := h.Service.ListUsers()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto user.UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateRole(r.Context(), admin.ID, targetID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) ListPendingPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	posts, err := h.Service.PendingPosts(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}
