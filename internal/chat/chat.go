package chat

import (
	"time"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
)

// Chat is a conversation, either a private pair or a named group. The
// last message is denormalized onto the chat so lists render without
// loading messages.
type Chat struct {
	ID            int64              `json:"id" gorm:"primaryKey"`
	Name          string             `json:"name,omitempty"`
	IsGroup       bool               `json:"is_group" gorm:"column:is_group;default:false"`
	Participants  datamodel.Int64Set `json:"participants" gorm:"type:text;not null"`
	LastMessage   string             `json:"last_message,omitempty" gorm:"column:last_message"`
	LastSenderID  int64              `json:"last_sender_id,omitempty" gorm:"column:last_sender_id"`
	CreatedBy     int64              `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" gorm:"index"`
}

func (Chat) TableName() string {
	return "chats"
}

func (c *Chat) HasParticipant(userID int64) bool {
	return c.Participants.Contains(userID)
}

// Message content kinds. Attachments carry a file URL and the original
// file name alongside the content.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeDoc   = "doc"
	MessageTypeVoice = "voice"
	MessageTypeLink  = "link"
)

var MessageTypes = []string{
	MessageTypeText,
	MessageTypeImage,
	MessageTypeDoc,
	MessageTypeVoice,
	MessageTypeLink,
}

// Message is one chat message. ReadBy tracks who has seen it; Reactions
// maps an emoji to the users who toggled it on.
type Message struct {
	ID        int64                 `json:"id" gorm:"primaryKey"`
	ChatID    int64                 `json:"chat_id" gorm:"column:chat_id;not null;index"`
	SenderID  int64                 `json:"sender_id" gorm:"column:sender_id;not null"`
	Type      string                `json:"type" gorm:"not null;default:text"`
	Content   string                `json:"content" gorm:"not null"`
	FileURL   string                `json:"file_url,omitempty" gorm:"column:file_url"`
	FileName  string                `json:"file_name,omitempty" gorm:"column:file_name"`
	ReadBy    datamodel.Int64Set    `json:"read_by" gorm:"type:text"`
	Reactions datamodel.ReactionMap `json:"reactions" gorm:"type:text"`
	CreatedAt time.Time             `json:"created_at"`
}

func (Message) TableName() string {
	return "chat_messages"
}

var (
	ErrChatNotFound    = errors.NewNotFoundError("chat not found", errors.ErrCodeChatNotFound)
	ErrMessageNotFound = errors.NewNotFoundError("message not found", errors.ErrCodeChatNotFound)
	ErrNotParticipant  = errors.NewForbiddenError("not a participant of this chat", errors.ErrCodeUnauthorizedAccess)
)
