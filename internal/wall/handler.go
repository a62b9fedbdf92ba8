package wall

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/hostelhub/server/internal/transport"
)

type ServiceAPI interface {
	CreatePost(ctx context.Context, authorID int64, authorIsAdmin bool, dto CreatePostDTO) (*Post, error)
	Feed(ctx context.Context, viewerID int64) ([]*Post, error)
	ToggleLike(ctx context.Context, postID, userID int64) (*Post, error)
	Comment(ctx context.Context, postID, authorID int64, dto CreateCommentDTO) (*Comment, error)
	Approve(ctx context.Context, postID, adminID int64) (*Post, error)
	DeletePost(ctx context.Context, postID, actorID int64, actorIsAdmin bool) error
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

func (h *Handler) postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid post id")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	var dto CreatePostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.Service.CreatePost(r.Context(), user.ID, user.IsAdmin(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	posts, err := h.Service.Feed(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, err := h.Service.ToggleLike(r.Context(), id, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	var dto CreateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.Service.Comment(r.Context(), id, user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, comment)
}

func (h *Handler) ApprovePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, err := h.Service.Approve(r.Context(), id, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeletePost(r.Context(), id, user.ID, user.IsAdmin()); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
