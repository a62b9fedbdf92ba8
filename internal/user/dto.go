package user

import "errors"

// UpdateProfileDTO carries the self-service profile fields a resident can
// change.
type UpdateProfileDTO struct {
	Name       *string `json:"name,omitempty"`
	RoomNumber *string `json:"room_number,omitempty"`
	ProfilePic *string `json:"profile_pic,omitempty"`
}

func (dto UpdateProfileDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	if dto.Name != nil && len(*dto.Name) > 100 {
		return errors.New("name must be less than 100 characters")
	}
	return nil
}

type SetNightOwlDTO struct {
	Enabled bool `json:"enabled"`
}

type UpdateRoleDTO struct {
	Role string `json:"role"`
}

func (dto UpdateRoleDTO) Validate() error {
	if dto.Role != RoleUser && dto.Role != RoleAdmin {
		return ErrInvalidRole
	}
	return nil
}
