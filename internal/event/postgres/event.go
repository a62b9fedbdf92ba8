package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/event"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*event.Event, error) {
	var e event.Event
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, event.ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context) ([]*event.Event, error) {
	var events []*event.Event
	err := r.db.WithContext(ctx).
		Where("starts_at >= ?", time.Now()).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(ctx context.Context, e *event.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}
