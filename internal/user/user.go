package user

import (
	"time"

	errors "github.com/hostelhub/server/internal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a hostel resident.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	ProfilePic   string     `json:"profile_pic,omitempty" gorm:"column:profile_pic"`
	Role         string     `json:"role" gorm:"default:user"`
	RoomNumber   string     `json:"room_number,omitempty" gorm:"column:room_number"`
	IsNightOwl   bool       `json:"is_night_owl" gorm:"column:is_night_owl;default:false"`
	JoinedAt     time.Time  `json:"joined_at" gorm:"column:joined_at"`
	LastSeen     *time.Time `json:"last_seen,omitempty" gorm:"column:last_seen"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

var (
	ErrUserNotFound = errors.NewNotFoundError("user not found", errors.ErrCodeUserNotFound)
	ErrInvalidRole  = errors.NewValidationError("role must be 'user' or 'admin'", errors.ErrCodeValidationFailed)
)
