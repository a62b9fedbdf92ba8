package presence

import (
	"context"
	"log/slog"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/user"
)

// UserDirectory is the slice of the user service presence needs.
type UserDirectory interface {
	NightOwls() ([]*user.User, error)
	TouchLastSeen(id int64) error
}

// NightOwl is a resident who keeps late hours, overlaid with their live
// presence.
type NightOwl struct {
	User     *user.User `json:"user"`
	Presence *Presence  `json:"presence"`
}

type Service struct {
	store  Store
	users  UserDirectory
	logger *slog.Logger
}

func NewService(store Store, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		users:  users,
		logger: logger,
	}
}

// Heartbeat records liveness in the presence store and stamps the
// durable last-seen on the user row.
func (s *Service) Heartbeat(ctx context.Context, userID int64) error {
	if err := s.store.Heartbeat(ctx, userID); err != nil {
		s.logger.Error("heartbeat failed", "error", err, "user_id", userID)
		return errors.NewInternalError("failed to record heartbeat", err)
	}
	if err := s.users.TouchLastSeen(userID); err != nil {
		s.logger.Warn("failed to stamp last seen", "error", err, "user_id", userID)
	}
	return nil
}

// Status resolves one user's presence.
func (s *Service) Status(ctx context.Context, userID int64) (*Presence, error) {
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve presence", err)
	}
	return p, nil
}

// NightOwls lists residents flagged as night owls with their live
// status overlaid.
func (s *Service) NightOwls(ctx context.Context) ([]*NightOwl, error) {
	owls, err := s.users.NightOwls()
	if err != nil {
		return nil, errors.NewInternalError("failed to list night owls", err)
	}

	ids := make([]int64, len(owls))
	for i, u := range owls {
		ids[i] = u.ID
	}

	presences, err := s.store.GetMany(ctx, ids)
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve presence", err)
	}

	result := make([]*NightOwl, len(owls))
	for i, u := range owls {
		p := presences[u.ID]
		if p == nil {
			p = &Presence{UserID: u.ID, Status: StatusOffline}
		}
		result[i] = &NightOwl{User: u, Presence: p}
	}
	return result, nil
}
