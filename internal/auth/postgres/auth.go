package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/auth"
)

type accountRow struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email"`
	Name         string    `gorm:"column:name"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	RoomNumber   string    `gorm:"column:room_number"`
	JoinedAt     time.Time `gorm:"column:joined_at"`
}

func (accountRow) TableName() string {
	return "users"
}

// AuthRepository implements auth.Repository against the users table.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.Repository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetCredentials(email string) (string, int64, error) {
	var row accountRow
	err := r.db.Select("id", "password_hash").Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, auth.ErrInvalidCredentials
		}
		return "", 0, err
	}
	return row.PasswordHash, row.ID, nil
}

func (r *AuthRepository) GetAccount(userID int64) (*auth.Account, error) {
	var row accountRow
	err := r.db.Where("id = ?", userID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &auth.Account{
		ID:         row.ID,
		Email:      row.Email,
		Name:       row.Name,
		Role:       row.Role,
		RoomNumber: row.RoomNumber,
		JoinedAt:   row.JoinedAt,
	}, nil
}
