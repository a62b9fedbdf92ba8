package admin

import (
	"context"
	"log/slog"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/events"
	"github.com/hostelhub/server/internal/user"
	"github.com/hostelhub/server/internal/wall"
)

type Repository interface {
	CreateLog(ctx context.Context, log *AuditLog) error
	ListLogs(ctx context.Context, limit int) ([]*AuditLog, error)
}

// UserAdmin is the slice of the user service the console needs.
type UserAdmin interface {
	ListAll() ([]*user.User, error)
	UpdateRole(targetID int64, dto user.UpdateRoleDTO) (*user.User, error)
}

// WallModeration is the slice of the wall service the console needs.
type WallModeration interface {
	PendingPosts(ctx context.Context) ([]*wall.Post, error)
}

type Service struct {
	repo     Repository
	users    UserAdmin
	wall     WallModeration
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, users UserAdmin, wallSvc WallModeration, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		wall:     wallSvc,
		eventBus: eventBus,
		logger:   logger,
	}
}

// auditedEvents are the event types the recorder persists.
var auditedEvents = []string{
	events.EventPostApproved,
	events.EventPostDeleted,
	events.EventUserRoleUpdated,
	events.EventMenuPublished,
	events.EventEntrySettled,
}

// RegisterAuditRecorder subscribes the service to every audited event
// type so each one lands in the audit trail.
func (s *Service) RegisterAuditRecorder() {
	for _, eventType := range auditedEvents {
		s.eventBus.Subscribe(eventType, s.recordAudit)
	}
}

func (s *Service) recordAudit(ctx context.Context, event events.Event) error {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		s.logger.Warn("audit event with unexpected payload", "event_type", event.EventType())
		return nil
	}

	log := &AuditLog{
		EventType: event.EventType(),
		ActorID:   asInt64(data["actor_id"]),
		TargetID:  asInt64(data["target_id"]),
		CreatedAt: event.OccurredAt(),
	}
	if details, ok := data["details"].(string); ok {
		log.Details = details
	}

	if err := s.repo.CreateLog(ctx, log); err != nil {
		s.logger.Error("failed to persist audit log", "error", err, "event_type", event.EventType())
		return err
	}
	return nil
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// AuditTrail returns the newest audit entries.
func (s *Service) AuditTrail(ctx context.Context, limit int) ([]*AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	logs, err := s.repo.ListLogs(ctx, limit)
	if err != nil {
		return nil, errors.NewInternalError("failed to load audit trail", err)
	}
	return logs, nil
}

func (s *Service) ListUsers() ([]*user.User, error) {
	return s.users.ListAll()
}

// UpdateRole changes a resident's role and records the change.
func (s *Service) UpdateRole(ctx context.Context, adminID, targetID int64, dto user.UpdateRoleDTO) (*user.User, error) {
	updated, err := s.users.UpdateRole(targetID, dto)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, events.NewAuditEvent(events.EventUserRoleUpdated, adminID, targetID,
		"set role to "+dto.Role))

	s.logger.Info("user role updated", "admin_id", adminID, "target_id", targetID, "role", dto.Role)
	return updated, nil
}

func (s *Service) PendingPosts(ctx context.Context) ([]*wall.Post, error) {
	return s.wall.PendingPosts(ctx)
}
