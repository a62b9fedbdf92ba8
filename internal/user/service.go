package user

import (
	"log/slog"
	"time"
)

// Repository defines data access for users.
type Repository interface {
	GetByID(id int64) (*User, error)
	GetAll() ([]*User, error)
	GetNightOwls() ([]*User, error)
	Update(u *User) error
	UpdateLastSeen(id int64, t time.Time) error
	UpdateRole(id int64, role string) error
	SetNightOwl(id int64, enabled bool) error
	Create(u *User) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ListAll returns the resident directory used by participant pickers.
func (s *Service) ListAll() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) UpdateProfile(id int64, dto UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.RoomNumber != nil {
		u.RoomNumber = *dto.RoomNumber
	}
	if dto.ProfilePic != nil {
		u.ProfilePic = *dto.ProfilePic
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", id)
		return nil, err
	}

	return u, nil
}

// SetNightOwl toggles the caller's night-owl opt-in flag.
func (s *Service) SetNightOwl(id int64, enabled bool) error {
	if err := s.repo.SetNightOwl(id, enabled); err != nil {
		s.logger.Error("failed to set night owl flag", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("night owl flag updated", "user_id", id, "enabled", enabled)
	return nil
}

// NightOwls returns users who opted into the night-owls view.
func (s *Service) NightOwls() ([]*User, error) {
	owls, err := s.repo.GetNightOwls()
	if err != nil {
		s.logger.Error("failed to list night owls", "error", err)
		return nil, err
	}
	return owls, nil
}

// TouchLastSeen records presence activity on the user record.
func (s *Service) TouchLastSeen(id int64) error {
	return s.repo.UpdateLastSeen(id, time.Now())
}

// UpdateRole changes a user's role. Authorization happens at the transport
// layer; the acting admin ID is carried for the audit trail.
func (s *Service) UpdateRole(targetID int64, dto UpdateRoleDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(targetID); err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.repo.UpdateRole(targetID, dto.Role); err != nil {
		s.logger.Error("failed to update role", "error", err, "user_id", targetID)
		return nil, err
	}

	return s.repo.GetByID(targetID)
}
