package laundry

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/hostelhub/server/internal"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	FindSlot(ctx context.Context, machine, date, timeSlot string) (*Booking, error)
	ListByDate(ctx context.Context, date string) ([]*Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]*Booking, error)
	Update(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Book reserves a slot for the user, rejecting the request when another
// booking already holds the same machine, date and slot.
func (s *Service) Book(ctx context.Context, userID int64, dto CreateBookingDTO) (*Booking, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindSlot(ctx, dto.Machine, dto.Date, dto.TimeSlot)
	if err != nil && err != ErrBookingNotFound {
		return nil, errors.NewInternalError("failed to check slot", err)
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	booking := &Booking{
		Machine:  dto.Machine,
		Date:     dto.Date,
		TimeSlot: dto.TimeSlot,
		UserID:   userID,
		Status:   StatusBooked,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.logger.Error("failed to create booking", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to create booking", err)
	}

	s.logger.Info("laundry slot booked",
		"booking_id", booking.ID,
		"machine", booking.Machine,
		"date", booking.Date,
		"slot", booking.TimeSlot)
	return booking, nil
}

// Schedule returns the full grid for a date.
func (s *Service) Schedule(ctx context.Context, date string) (*ScheduleResponse, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, errors.NewValidationFieldError("date", "date must be YYYY-MM-DD", errors.ErrCodeValidationFailed)
	}

	bookings, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, errors.NewInternalError("failed to load schedule", err)
	}

	return &ScheduleResponse{
		Date:      date,
		Machines:  Machines,
		TimeSlots: TimeSlots,
		Bookings:  bookings,
	}, nil
}

func (s *Service) MyBookings(ctx context.Context, userID int64) ([]*Booking, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list bookings", err)
	}
	return bookings, nil
}

// UpdateStatus advances a booking along its lifecycle. Only the booker
// may do this.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, actorID int64, status string) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actorID {
		return nil, ErrNotBooker
	}

	if err := booking.Advance(status); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		s.logger.Error("failed to update booking", "error", err, "booking_id", bookingID)
		return nil, errors.NewInternalError("failed to update booking", err)
	}
	return booking, nil
}

// Cancel frees the slot by deleting the booking. Only the booker may
// cancel.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != actorID {
		return ErrNotBooker
	}

	if err := s.repo.Delete(ctx, bookingID); err != nil {
		s.logger.Error("failed to cancel booking", "error", err, "booking_id", bookingID)
		return errors.NewInternalError("failed to cancel booking", err)
	}

	s.logger.Info("laundry booking cancelled", "booking_id", bookingID, "user_id", actorID)
	return nil
}
