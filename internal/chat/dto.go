package chat

import (
	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/common/validation"
	"github.com/hostelhub/server/internal/core/datamodel"
)

type CreateChatDTO struct {
	Name         string             `json:"name"`
	IsGroup      bool               `json:"is_group"`
	Participants datamodel.Int64Set `json:"participants"`
}

func (d *CreateChatDTO) Validate() error {
	if len(d.Participants) == 0 {
		return errors.NewValidationFieldError("participants", "participants are required", errors.ErrCodeValidationFailed)
	}
	if d.IsGroup && d.Name == "" {
		return errors.NewValidationFieldError("name", "group chats need a name", errors.ErrCodeValidationFailed)
	}
	return nil
}

type SendMessageDTO struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
}

func (d *SendMessageDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("content", d.Content).
		Required().
		MaxLength(4000)
	if d.Type != "" {
		v.Field("type", d.Type).
			OneOf(MessageTypes, errors.ErrCodeValidationFailed)
	}
	v.Field("file_name", d.FileName).
		MaxLength(255)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type ReactionDTO struct {
	Emoji string `json:"emoji"`
}

func (d *ReactionDTO) Validate() error {
	if d.Emoji == "" {
		return errors.NewValidationFieldError("emoji", "emoji is required", errors.ErrCodeValidationFailed)
	}
	return nil
}
