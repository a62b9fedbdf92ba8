package mess

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
	"github.com/hostelhub/server/internal/core/events"
)

type Repository interface {
	Create(ctx context.Context, menu *Menu) error
	GetByDate(ctx context.Context, date string) (*Menu, error)
	GetByID(ctx context.Context, id int64) (*Menu, error)
	ListRecent(ctx context.Context, limit int) ([]*Menu, error)
	Update(ctx context.Context, menu *Menu) error
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// PublishMenu creates the menu for a date. Dates are unique: publishing
// twice for the same date is rejected.
func (s *Service) PublishMenu(ctx context.Context, createdBy int64, dto CreateMenuDTO) (*Menu, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByDate(ctx, dto.Date)
	if err != nil && err != ErrMenuNotFound {
		return nil, errors.NewInternalError("failed to check existing menu", err)
	}
	if existing != nil {
		return nil, ErrMenuExists
	}

	menu := &Menu{
		Date:      dto.Date,
		Breakfast: dto.Breakfast,
		Lunch:     dto.Lunch,
		Dinner:    dto.Dinner,
		Snacks:    dto.Snacks,
		Ratings:   datamodel.IntMap{},
		CreatedBy: createdBy,
	}

	if err := s.repo.Create(ctx, menu); err != nil {
		s.logger.Error("failed to publish menu", "error", err, "date", dto.Date)
		return nil, errors.NewInternalError("failed to publish menu", err)
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewAuditEvent(events.EventMenuPublished, createdBy, menu.ID,
			"published menu for "+menu.Date))
	}

	s.logger.Info("mess menu published", "menu_id", menu.ID, "date", menu.Date)
	return menu, nil
}

func (s *Service) MenuForDate(ctx context.Context, date string) (*Menu, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, errors.NewValidationFieldError("date", "date must be YYYY-MM-DD", errors.ErrCodeValidationFailed)
	}
	return s.repo.GetByDate(ctx, date)
}

func (s *Service) TodayMenu(ctx context.Context) (*Menu, error) {
	return s.repo.GetByDate(ctx, time.Now().Format(DateLayout))
}

func (s *Service) RecentMenus(ctx context.Context, limit int) ([]*Menu, error) {
	if limit <= 0 || limit > 31 {
		limit = 7
	}
	menus, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.NewInternalError("failed to list menus", err)
	}
	return menus, nil
}

// Rate records or replaces the user's vote and recomputes the average.
// A user rating twice keeps only their latest vote.
func (s *Service) Rate(ctx context.Context, menuID, userID int64, dto RateMenuDTO) (*Menu, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	menu, err := s.repo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	if menu.Ratings == nil {
		menu.Ratings = datamodel.IntMap{}
	}
	menu.Ratings[userID] = dto.Rating
	menu.RecomputeRating()

	if err := s.repo.Update(ctx, menu); err != nil {
		s.logger.Error("failed to save rating", "error", err, "menu_id", menuID, "user_id", userID)
		return nil, errors.NewInternalError("failed to save rating", err)
	}
	return menu, nil
}
