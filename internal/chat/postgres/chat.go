package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/chat"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateChat(ctx context.Context, c *chat.Chat) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ChatRepository) GetChat(ctx context.Context, id int64) (*chat.Chat, error) {
	var c chat.Chat
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrChatNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindPrivateChat looks for an existing one-to-one chat between the two
// users. Participants live in a JSON column, so candidates are filtered
// here.
func (r *ChatRepository) FindPrivateChat(ctx context.Context, userA, userB int64) (*chat.Chat, error) {
	var chats []*chat.Chat
	err := r.db.WithContext(ctx).Where("is_group = ?", false).Find(&chats).Error
	if err != nil {
		return nil, err
	}
	for _, c := range chats {
		if len(c.Participants) == 2 && c.HasParticipant(userA) && c.HasParticipant(userB) {
			return c, nil
		}
	}
	return nil, chat.ErrChatNotFound
}

func (r *ChatRepository) ListChatsFor(ctx context.Context, userID int64) ([]*chat.Chat, error) {
	var all []*chat.Chat
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&all).Error
	if err != nil {
		return nil, err
	}

	chats := make([]*chat.Chat, 0, len(all))
	for _, c := range all {
		if c.HasParticipant(userID) {
			chats = append(chats, c)
		}
	}
	return chats, nil
}

func (r *ChatRepository) UpdateChat(ctx context.Context, c *chat.Chat) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *chat.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *ChatRepository) GetMessage(ctx context.Context, id int64) (*chat.Message, error) {
	var msg chat.Message
	err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns the most recent messages of the chat in ascending
// send order. The window is selected newest-first and reversed so that
// limiting keeps the latest messages.
func (r *ChatRepository) ListMessages(ctx context.Context, chatID int64, limit int) ([]*chat.Message, error) {
	var msgs []*chat.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *ChatRepository) UpdateMessage(ctx context.Context, msg *chat.Message) error {
	return r.db.WithContext(ctx).Save(msg).Error
}

func (r *ChatRepository) MarkAllRead(ctx context.Context, chatID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msgs []*chat.Message
		if err := tx.Where("chat_id = ?", chatID).Find(&msgs).Error; err != nil {
			return err
		}
		for _, msg := range msgs {
			if msg.ReadBy.Contains(userID) {
				continue
			}
			msg.ReadBy = msg.ReadBy.Add(userID)
			if err := tx.Save(msg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
