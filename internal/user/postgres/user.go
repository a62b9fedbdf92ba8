package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/user"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetNightOwls() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Where("is_night_owl = ?", true).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(u).Error
}

func (r *UserRepository) UpdateLastSeen(id int64, t time.Time) error {
	return r.db.Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_seen":  t,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepository) UpdateRole(id int64, role string) error {
	return r.db.Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepository) SetNightOwl(id int64, enabled bool) error {
	return r.db.Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_night_owl": enabled,
			"updated_at":   time.Now(),
		}).Error
}
