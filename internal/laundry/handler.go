package laundry

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/hostelhub/server/internal/transport"
)

type ServiceAPI interface {
	Book(ctx context.Context, userID int64, dto CreateBookingDTO) (*Booking, error)
	Schedule(ctx context.Context, date string) (*ScheduleResponse, error)
	MyBookings(ctx context.Context, userID int64) ([]*Booking, error)
	UpdateStatus(ctx context.Context, bookingID, actorID int64, status string) (*Booking, error)
	Cancel(ctx context.Context, bookingID, actorID int64) error
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

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	var dto CreateBookingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.Service.Book(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, booking)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.RequireUser(w, r); !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(DateLayout)
	}

	schedule, err := h.Service.Schedule(r.Context(), date)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, schedule)
}

func (h *Handler) MyBookings(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.Service.MyBookings(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

func (h *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.Service.UpdateStatus(r.Context(), id, user.ID, dto.Status)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, booking)
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := h.RequireUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	if err := h.Service.Cancel(r.Context(), id, user.ID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
