package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/hostelhub/server/internal/transport"
)

type ServiceAPI interface {
	CreateChat(ctx context.Context, creatorID int64, dto CreateChatDTO) (*Chat, error)
	MyChats(ctx context.Context, userID int64) ([]*Chat, error)
	Send(ctx context.Context, chatID, senderID int64, dto SendMessageDTO) (*Message, error)
	Messages(ctx context.Context, chatID, userID int64, limit int) ([]*Message, error)
	MarkRead(ctx context.Context, chatID, userID int64) error
	ToggleReaction(ctx context.Context, messageID, userID int64, dto ReactionDTO) (*Message, error)
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

func (h *Handler) urlID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	var dto CreateChatDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chat, err := h.Service.CreateChat(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, chat)
}

func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	chats, err := h.Service.MyChats(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"chats": chats})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	chatID, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}

	var dto SendMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.Service.Send(r.Context(), chatID, user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, msg)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	chatID, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	msgs, err := h.Service.Messages(r.Context(), chatID, user.ID, limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	chatID, ok := h.urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.MarkRead(r.Context(), chatID, user.ID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}
	messageID, ok := h.urlID(w, r, "messageID")
	if !ok {
		return
	}

	var dto ReactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.Service.ToggleReaction(r.Context(), messageID, user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, msg)
}
