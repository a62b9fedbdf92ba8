package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/mess"
)

type MessRepository struct {
	db *gorm.DB
}

func NewMessRepository(db *gorm.DB) *MessRepository {
	return &MessRepository{db: db}
}

func (r *MessRepository) Create(ctx context.Context, menu *mess.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *MessRepository) GetByDate(ctx context.Context, date string) (*mess.Menu, error) {
	var menu mess.Menu
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&menu).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mess.ErrMenuNotFound
		}
		return nil, err
	}
	return &menu, nil
}

func (r *MessRepository) GetByID(ctx context.Context, id int64) (*mess.Menu, error) {
	var menu mess.Menu
	err := r.db.WithContext(ctx).First(&menu, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mess.ErrMenuNotFound
		}
		return nil, err
	}
	return &menu, nil
}

func (r *MessRepository) ListRecent(ctx context.Context, limit int) ([]*mess.Menu, error) {
	var menus []*mess.Menu
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&menus).Error
	return menus, err
}

func (r *MessRepository) Update(ctx context.Context, menu *mess.Menu) error {
	return r.db.WithContext(ctx).Save(menu).Error
}
