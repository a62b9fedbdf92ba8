package event

import (
	"context"
	"log/slog"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	ListUpcoming(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
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

// Create records a new event with the organizer already attending.
func (s *Service) Create(ctx context.Context, createdBy int64, dto CreateEventDTO) (*Event, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	eventType := dto.Type
	if eventType == "" {
		eventType = TypeOther
	}

	event := &Event{
		Title:        dto.Title,
		Type:         eventType,
		Description:  dto.Description,
		Location:     dto.Location,
		StartsAt:     dto.StartsAt,
		MaxAttendees: dto.MaxAttendees,
		Attendees:    datamodel.Int64Set{createdBy},
		CreatedBy:    createdBy,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error("failed to create event", "error", err, "created_by", createdBy)
		return nil, errors.NewInternalError("failed to create event", err)
	}

	s.logger.Info("event created", "event_id", event.ID, "title", event.Title)
	return event, nil
}

func (s *Service) Upcoming(ctx context.Context) ([]*Event, error) {
	events, err := s.repo.ListUpcoming(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list events", err)
	}
	return events, nil
}

// Join adds the user to the attendee list. Joining twice is a no-op;
// joining a full event is rejected.
func (s *Service) Join(ctx context.Context, eventID, userID int64) (*Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.Attendees.Contains(userID) {
		return event, nil
	}
	if event.IsFull() {
		return nil, ErrEventFull
	}

	event.Attendees = event.Attendees.Add(userID)
	if err := s.repo.Update(ctx, event); err != nil {
		s.logger.Error("failed to join event", "error", err, "event_id", eventID, "user_id", userID)
		return nil, errors.NewInternalError("failed to join event", err)
	}
	return event, nil
}

// Leave removes the user from the attendee list. The organizer stays on
// the list regardless.
func (s *Service) Leave(ctx context.Context, eventID, userID int64) (*Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.CreatedBy == userID {
		return event, nil
	}
	if !event.Attendees.Contains(userID) {
		return event, nil
	}

	event.Attendees = event.Attendees.Remove(userID)
	if err := s.repo.Update(ctx, event); err != nil {
		s.logger.Error("failed to leave event", "error", err, "event_id", eventID, "user_id", userID)
		return nil, errors.NewInternalError("failed to leave event", err)
	}
	return event, nil
}
