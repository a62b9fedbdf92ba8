package chat

import (
	"context"
	"log/slog"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
)

type Repository interface {
	CreateChat(ctx context.Context, chat *Chat) error
	GetChat(ctx context.Context, id int64) (*Chat, error)
	FindPrivateChat(ctx context.Context, userA, userB int64) (*Chat, error)
	ListChatsFor(ctx context.Context, userID int64) ([]*Chat, error)
	UpdateChat(ctx context.Context, chat *Chat) error
	CreateMessage(ctx context.Context, msg *Message) error
	GetMessage(ctx context.Context, id int64) (*Message, error)
	ListMessages(ctx context.Context, chatID int64, limit int) ([]*Message, error)
	UpdateMessage(ctx context.Context, msg *Message) error
	MarkAllRead(ctx context.Context, chatID, userID int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateChat opens a conversation. A private chat between two users is
// deduplicated: asking again returns the existing chat.
func (s *Service) CreateChat(ctx context.Context, creatorID int64, dto CreateChatDTO) (*Chat, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	participants := dto.Participants
	if !participants.Contains(creatorID) {
		participants = participants.Add(creatorID)
	}

	if !dto.IsGroup && len(participants) == 2 {
		existing, err := s.repo.FindPrivateChat(ctx, participants[0], participants[1])
		if err != nil && err != ErrChatNotFound {
			return nil, errors.NewInternalError("failed to look up chat", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	chat := &Chat{
		Name:         dto.Name,
		IsGroup:      dto.IsGroup,
		Participants: participants,
		CreatedBy:    creatorID,
	}
	if err := s.repo.CreateChat(ctx, chat); err != nil {
		s.logger.Error("failed to create chat", "error", err, "creator_id", creatorID)
		return nil, errors.NewInternalError("failed to create chat", err)
	}

	s.logger.Info("chat created", "chat_id", chat.ID, "is_group", chat.IsGroup)
	return chat, nil
}

// MyChats lists the user's conversations, most recently active first.
func (s *Service) MyChats(ctx context.Context, userID int64) ([]*Chat, error) {
	chats, err := s.repo.ListChatsFor(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list chats", err)
	}
	return chats, nil
}

// loadForParticipant fetches a chat and verifies membership.
func (s *Service) loadForParticipant(ctx context.Context, chatID, userID int64) (*Chat, error) {
	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return chat, nil
}

// Send posts a message and bumps the chat's denormalized last message.
func (s *Service) Send(ctx context.Context, chatID, senderID int64, dto SendMessageDTO) (*Message, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	chat, err := s.loadForParticipant(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}

	msgType := dto.Type
	if msgType == "" {
		msgType = MessageTypeText
	}

	msg := &Message{
		ChatID:    chatID,
		SenderID:  senderID,
		Type:      msgType,
		Content:   dto.Content,
		FileURL:   dto.FileURL,
		FileName:  dto.FileName,
		ReadBy:    datamodel.Int64Set{senderID},
		Reactions: datamodel.ReactionMap{},
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		s.logger.Error("failed to send message", "error", err, "chat_id", chatID)
		return nil, errors.NewInternalError("failed to send message", err)
	}

	chat.LastMessage = msg.Content
	chat.LastSenderID = senderID
	if err := s.repo.UpdateChat(ctx, chat); err != nil {
		s.logger.Warn("failed to bump chat last message", "error", err, "chat_id", chatID)
	}

	return msg, nil
}

// Messages returns the conversation history for a participant.
func (s *Service) Messages(ctx context.Context, chatID, userID int64, limit int) ([]*Message, error) {
	if _, err := s.loadForParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	msgs, err := s.repo.ListMessages(ctx, chatID, limit)
	if err != nil {
		return nil, errors.NewInternalError("failed to load messages", err)
	}
	return msgs, nil
}

// MarkRead stamps the user onto every unread message in the chat.
func (s *Service) MarkRead(ctx context.Context, chatID, userID int64) error {
	if _, err := s.loadForParticipant(ctx, chatID, userID); err != nil {
		return err
	}
	if err := s.repo.MarkAllRead(ctx, chatID, userID); err != nil {
		return errors.NewInternalError("failed to mark messages read", err)
	}
	return nil
}

// ToggleReaction flips the user's emoji reaction on a message. Empty
// reaction sets are dropped.
func (s *Service) ToggleReaction(ctx context.Context, messageID, userID int64, dto ReactionDTO) (*Message, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	msg, err := s.repo.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadForParticipant(ctx, msg.ChatID, userID); err != nil {
		return nil, err
	}

	if msg.Reactions == nil {
		msg.Reactions = datamodel.ReactionMap{}
	}
	set := msg.Reactions[dto.Emoji]
	if set.Contains(userID) {
		set = set.Remove(userID)
	} else {
		set = set.Add(userID)
	}
	if len(set) == 0 {
		delete(msg.Reactions, dto.Emoji)
	} else {
		msg.Reactions[dto.Emoji] = set
	}

	if err := s.repo.UpdateMessage(ctx, msg); err != nil {
		s.logger.Error("failed to update reaction", "error", err, "message_id", messageID)
		return nil, errors.NewInternalError("failed to update reaction", err)
	}
	return msg, nil
}
