package mess

import (
	"time"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
	"github.com/hostelhub/server/internal/core/common/validation"
)

type CreateMenuDTO struct {
	Date      string                `json:"date"`
	Breakfast datamodel.StringSlice `json:"breakfast"`
	Lunch     datamodel.StringSlice `json:"lunch"`
	Dinner    datamodel.StringSlice `json:"dinner"`
	Snacks    datamodel.StringSlice `json:"snacks"`
}

func (d *CreateMenuDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("date", d.Date).Required()
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}

	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return errors.NewValidationFieldError("date", "date must be YYYY-MM-DD", errors.ErrCodeValidationFailed)
	}
	if len(d.Breakfast) == 0 && len(d.Lunch) == 0 && len(d.Dinner) == 0 && len(d.Snacks) == 0 {
		return errors.NewValidationFieldError("meals", "at least one meal is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

type RateMenuDTO struct {
	Rating int `json:"rating"`
}

func (d *RateMenuDTO) Validate() error {
	if d.Rating < 1 || d.Rating > 5 {
		return errors.NewValidationFieldError("rating", "rating must be between 1 and 5", errors.ErrCodeInvalidRating)
	}
	return nil
}
