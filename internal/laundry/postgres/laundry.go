package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/laundry"
)

type LaundryRepository struct {
	db *gorm.DB
}

func NewLaundryRepository(db *gorm.DB) *LaundryRepository {
	return &LaundryRepository{db: db}
}

func (r *LaundryRepository) Create(ctx context.Context, booking *laundry.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *LaundryRepository) GetByID(ctx context.Context, id int64) (*laundry.Booking, error) {
	var booking laundry.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, laundry.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *LaundryRepository) FindSlot(ctx context.Context, machine, date, timeSlot string) (*laundry.Booking, error) {
	var booking laundry.Booking
	err := r.db.WithContext(ctx).
		Where("machine = ? AND date = ? AND time_slot = ?", machine, date, timeSlot).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, laundry.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *LaundryRepository) ListByDate(ctx context.Context, date string) ([]*laundry.Booking, error) {
	var bookings []*laundry.Booking
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time_slot ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *LaundryRepository) ListByUser(ctx context.Context, userID int64) ([]*laundry.Booking, error) {
	var bookings []*laundry.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, time_slot ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *LaundryRepository) Update(ctx context.Context, booking *laundry.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *LaundryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&laundry.Booking{}, "id = ?", id).Error
}
