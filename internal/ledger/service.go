package ledger

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/shopspring/decimal"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
	"github.com/hostelhub/server/internal/core/events"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id int64) (*Entry, error)
	ListForUser(ctx context.Context, userID int64) ([]*Entry, error)
	// UpdateSettlement reloads the entry, runs apply on it, and persists the
	// settlement columns so that concurrent settlements are never lost.
	UpdateSettlement(ctx context.Context, id int64, apply func(*Entry) error) (*Entry, error)
}

// CategoryChecker reports whether a category name is an active expense
// category. The category module provides the production implementation.
type CategoryChecker interface {
	IsValidCategory(name string) bool
}

type Service struct {
	repo       Repository
	categories CategoryChecker
	eventBus   *events.EventBus
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryChecker, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Create records a new expense entry paid by paidBy. An empty shared_with
// defaults to the payer alone, which leaves every balance untouched.
func (s *Service) Create(ctx context.Context, paidBy int64, dto CreateEntryDTO) (*Entry, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if !s.categories.IsValidCategory(dto.Category) {
		return nil, errors.NewValidationFieldError("category",
			"category must be an active expense category", errors.ErrCodeInvalidCategory)
	}

	sharedWith := dto.SharedWith
	if len(sharedWith) == 0 {
		sharedWith = datamodel.Int64Set{paidBy}
	}

	splitType := dto.SplitType
	if splitType == "" {
		splitType = SplitTypeEqual
	}

	entry := &Entry{
		Description:  dto.Description,
		Amount:       dto.Amount,
		Category:     dto.Category,
		PaidBy:       paidBy,
		SharedWith:   sharedWith,
		SplitType:    splitType,
		CustomSplits: dto.CustomSplits,
		SettledBy:    datamodel.Int64Set{},
	}
	entry.RecomputeSettled()

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to create expense entry", "error", err, "paid_by", paidBy)
		return nil, errors.NewInternalError("failed to create expense entry", err)
	}

	s.logger.Info("expense entry created",
		"entry_id", entry.ID,
		"paid_by", paidBy,
		"amount", entry.Amount.String(),
		"shared_with", len(entry.SharedWith))
	return entry, nil
}

// ListFor returns every entry the user paid or shares, newest first.
func (s *Service) ListFor(ctx context.Context, userID int64) ([]*Entry, error) {
	entries, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list expense entries", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to list expense entries", err)
	}
	return entries, nil
}

// Balance computes the user's net position across all their entries.
func (s *Service) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	entries, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load entries for balance", "error", err, "user_id", userID)
		return decimal.Zero, errors.NewInternalError("failed to compute balance", err)
	}
	return BalanceFor(entries, userID), nil
}

// Settle marks the actor's share of an entry as paid back. Only obligors
// may settle: the payer and outsiders are rejected. Settling twice is a
// no-op.
func (s *Service) Settle(ctx context.Context, entryID, actorID int64) (*Entry, error) {
	var changed bool
	entry, err := s.repo.UpdateSettlement(ctx, entryID, func(e *Entry) error {
		if e.PaidBy == actorID {
			return ErrPayerSettle
		}
		if !e.SharedWith.Contains(actorID) {
			return ErrNotObligor
		}
		changed = !e.SettledBy.Contains(actorID)
		if !changed {
			return nil
		}
		e.SettledBy = e.SettledBy.Add(actorID)
		e.RecomputeSettled()
		return nil
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, err
		}
		s.logger.Error("failed to settle expense entry", "error", err, "entry_id", entryID, "actor_id", actorID)
		return nil, errors.NewInternalError("failed to settle expense entry", err)
	}
	if !changed {
		return entry, nil
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewAuditEvent(events.EventEntrySettled, actorID, entryID,
			"settled share of "+entry.Description))
	}

	s.logger.Info("expense entry settled",
		"entry_id", entryID,
		"actor_id", actorID,
		"fully_settled", entry.IsSettled)
	return entry, nil
}
