package event

import (
	"time"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/common/validation"
)

type CreateEventDTO struct {
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartsAt     time.Time `json:"starts_at"`
	MaxAttendees int       `json:"max_attendees"`
}

func (d *CreateEventDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).
		Required().
		MaxLength(200)
	if d.Type != "" {
		v.Field("type", d.Type).
			OneOf(EventTypes, errors.ErrCodeValidationFailed)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}

	if d.StartsAt.IsZero() {
		return errors.NewValidationFieldError("starts_at", "starts_at is required", errors.ErrCodeValidationFailed)
	}
	if d.StartsAt.Before(time.Now()) {
		return errors.NewValidationFieldError("starts_at", "starts_at cannot be in the past", errors.ErrCodeValidationFailed)
	}
	if d.MaxAttendees < 0 {
		return errors.NewValidationFieldError("max_attendees", "max_attendees cannot be negative", errors.ErrCodeValidationFailed)
	}
	return nil
}
