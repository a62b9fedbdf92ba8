package wall

import (
	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/common/validation"
)

type CreatePostDTO struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
	FileName string `json:"file_name"`
}

func (d *CreatePostDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("content", d.Content).
		Required().
		MaxLength(2000)
	if d.Type != "" {
		v.Field("type", d.Type).
			OneOf(PostTypes, errors.ErrCodeValidationFailed)
	}
	v.Field("file_name", d.FileName).
		MaxLength(255)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type CreateCommentDTO struct {
	Content string `json:"content"`
}

func (d *CreateCommentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("content", d.Content).
		Required().
		MaxLength(1000)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
