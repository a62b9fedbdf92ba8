package chat_test

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hostelhub/server/internal/chat"
	"github.com/hostelhub/server/internal/core/datamodel"
)

func TestChatService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Chat Service Suite")
}

type mockChatRepository struct {
	chats    map[int64]*chat.Chat
	messages map[int64]*chat.Message
	nextID   int64
}

func newMockChatRepository() *mockChatRepository {
	return &mockChatRepository{
		chats:    make(map[int64]*chat.Chat),
		messages: make(map[int64]*chat.Message),
		nextID:   1,
	}
}

func (m *mockChatRepository) CreateChat(_ context.Context, c *chat.Chat) error {
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.chats[c.ID] = c
	return nil
}

func (m *mockChatRepository) GetChat(_ context.Context, id int64) (*chat.Chat, error) {
	c, exists := m.chats[id]
	if !exists {
		return nil, chat.ErrChatNotFound
	}
	return c, nil
}

func (m *mockChatRepository) FindPrivateChat(_ context.Context, a, b int64) (*chat.Chat, error) {
	for _, c := range m.chats {
		if !c.IsGroup && len(c.Participants) == 2 && c.HasParticipant(a) && c.HasParticipant(b) {
			return c, nil
		}
	}
	return nil, chat.ErrChatNotFound
}

func (m *mockChatRepository) ListChatsFor(_ context.Context, userID int64) ([]*chat.Chat, error) {
	result := make([]*chat.Chat, 0)
	for _, c := range m.chats {
		if c.HasParticipant(userID) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (m *mockChatRepository) UpdateChat(_ context.Context, c *chat.Chat) error {
	c.UpdatedAt = time.Now()
	m.chats[c.ID] = c
	return nil
}

func (m *mockChatRepository) CreateMessage(_ context.Context, msg *chat.Message) error {
	msg.ID = m.nextID
	m.nextID++
	msg.CreatedAt = time.Now()
	m.messages[msg.ID] = msg
	return nil
}

func (m *mockChatRepository) GetMessage(_ context.Context, id int64) (*chat.Message, error) {
	msg, exists := m.messages[id]
	if !exists {
		return nil, chat.ErrMessageNotFound
	}
	return msg, nil
}

func (m *mockChatRepository) ListMessages(_ context.Context, chatID int64, limit int) ([]*chat.Message, error) {
	result := make([]*chat.Message, 0)
	for _, msg := range m.messages {
		if msg.ChatID == chatID {
			result = append(result, msg)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockChatRepository) UpdateMessage(_ context.Context, msg *chat.Message) error {
	m.messages[msg.ID] = msg
	return nil
}

func (m *mockChatRepository) MarkAllRead(_ context.Context, chatID, userID int64) error {
	for _, msg := range m.messages {
		if msg.ChatID == chatID && !msg.ReadBy.Contains(userID) {
			msg.ReadBy = msg.ReadBy.Add(userID)
		}
	}
	return nil
}

var _ = Describe("ChatService", func() {
	var (
		service  *chat.Service
		mockRepo *mockChatRepository
		ctx      context.Context

		alice int64 = 1
		bob   int64 = 2
		carol int64 = 3
	)

	BeforeEach(func() {
		mockRepo = newMockChatRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = chat.NewService(mockRepo, logger)
		ctx = context.Background()
	})

	Describe("CreateChat", func() {
		It("should include the creator as a participant", func() {
			c, err := service.CreateChat(ctx, alice, chat.CreateChatDTO{
				Participants: datamodel.Int64Set{bob},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(c.HasParticipant(alice)).To(BeTrue())
			Expect(c.HasParticipant(bob)).To(BeTrue())
		})

		It("should return the existing private chat for the same pair", func() {
			first, err := service.CreateChat(ctx, alice, chat.CreateChatDTO{
				Participants: datamodel.Int64Set{bob},
			})
			Expect(err).ToNot(HaveOccurred())

			second, err := service.CreateChat(ctx, bob, chat.CreateChatDTO{
				Participants: datamodel.Int64Set{alice},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
		})

		It("should not deduplicate group chats", func() {
			dto := chat.CreateChatDTO{
				Name:         "trip planning",
				IsGroup:      true,
				Participants: datamodel.Int64Set{alice, bob},
			}
			first, err := service.CreateChat(ctx, alice, dto)
			Expect(err).ToNot(HaveOccurred())

			second, err := service.CreateChat(ctx, alice, dto)
			Expect(err).ToNot(HaveOccurred())
			Expect(second.ID).ToNot(Equal(first.ID))
		})

		It("should require a name for group chats", func() {
			_, err := service.CreateChat(ctx, alice, chat.CreateChatDTO{
				IsGroup:      true,
				Participants: datamodel.Int64Set{bob, carol},
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Send", func() {
		var chatID int64

		BeforeEach(func() {
			c, err := service.CreateChat(ctx, alice, chat.CreateChatDTO{
				Participants: datamodel.Int64Set{bob},
			})
			Expect(err).ToNot(HaveOccurred())
			chatID = c.ID
		})

		It("should deliver a message and bump the chat summary", func() {
			msg, err := service.Send(ctx, chatID, alice, chat.SendMessageDTO{Content: "hey"})

			Expect(err).ToNot(HaveOccurred())
			Expect(msg.SenderID).To(Equal(alice))
			Expect(msg.ReadBy.Contains(alice)).To(BeTrue())

			c, err := service.MyChats(ctx, bob)
			Expect(err).ToNot(HaveOccurred())
			Expect(c[0].LastMessage).To(Equal("hey"))
			Expect(c[0].LastSenderID).To(Equal(alice))
		})

		It("should default the message type to text", func() {
			msg, err := service.Send(ctx, chatID, alice, chat.SendMessageDTO{Content: "hey"})

			Expect(err).ToNot(HaveOccurred())
			Expect(msg.Type).To(Equal(chat.MessageTypeText))
		})

		It("should carry an attachment's type and file name", func() {
			msg, err := service.Send(ctx, chatID, alice, chat.SendMessageDTO{
				Type:     chat.MessageTypeDoc,
				Content:  "mess duty roster",
				FileURL:  "https://drive.example/roster.pdf",
				FileName: "roster.pdf",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(msg.Type).To(Equal(chat.MessageTypeDoc))
			Expect(msg.FileName).To(Equal("roster.pdf"))
		})

		It("should reject an unknown message type", func() {
			_, err := service.Send(ctx, chatID, alice, chat.SendMessageDTO{
				Type:    "hologram",
				Content: "hey",
			})
			Expect(err).To(HaveOccurred())
		})

		It("should reject a sender outside the chat", func() {
			_, err := service.Send(ctx, chatID, carol, chat.SendMessageDTO{Content: "hi"})
			Expect(err).To(Equal(chat.ErrNotParticipant))
		})

		It("should reject empty content", func() {
			_, err := service.Send(ctx, chatID, alice, chat.SendMessageDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Messages", func() {
		It("should reject a reader outside the chat", func() {
			c, err := service.CreateChat(ctx, alice, chat.CreateChatDTO{
				Participants: datamodel.Int64Set{bob},
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Messages(ctx, c.ID, carol, 50)
			Expect(err).To(Equal(chat.ErrNotParticipant))
		})
	})

	Describe("MarkRead", func() {
		It("should stamp the reader onto unread messages", func() {
			c, err := service.CreateChat(ctx, alice, chat.CreateChatDTO{
				Participants: datamodel.Int64Set{bob},
			})
			Expect(err).ToNot(HaveOccurred())

			msg, err := service.Send(ctx, c.ID, alice, chat.SendMessageDTO{Content: "hey"})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.MarkRead(ctx, c.ID, bob)).To(Succeed())

			got, err := mockRepo.GetMessage(ctx, msg.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ReadBy.Contains(bob)).To(BeTrue())
		})
	})

	Describe("ToggleReaction", func() {
		var messageID, chatID int64

		BeforeEach(func() {
			c, err := service.CreateChat(ctx, alice, chat.CreateChatDTO{
				Participants: datamodel.Int64Set{bob},
			})
			Expect(err).ToNot(HaveOccurred())
			chatID = c.ID

			msg, err := service.Send(ctx, chatID, alice, chat.SendMessageDTO{Content: "hey"})
			Expect(err).ToNot(HaveOccurred())
			messageID = msg.ID
		})

		It("should add then remove a reaction", func() {
			msg, err := service.ToggleReaction(ctx, messageID, bob, chat.ReactionDTO{Emoji: "🔥"})
			Expect(err).ToNot(HaveOccurred())
			Expect(msg.Reactions["🔥"].Contains(bob)).To(BeTrue())

			msg, err = service.ToggleReaction(ctx, messageID, bob, chat.ReactionDTO{Emoji: "🔥"})
			Expect(err).ToNot(HaveOccurred())
			Expect(msg.Reactions).ToNot(HaveKey("🔥"))
		})

		It("should keep reactions per emoji", func() {
			_, err := service.ToggleReaction(ctx, messageID, bob, chat.ReactionDTO{Emoji: "🔥"})
			Expect(err).ToNot(HaveOccurred())

			msg, err := service.ToggleReaction(ctx, messageID, alice, chat.ReactionDTO{Emoji: "😂"})
			Expect(err).ToNot(HaveOccurred())
			Expect(msg.Reactions).To(HaveLen(2))
		})

		It("should reject a reactor outside the chat", func() {
			_, err := service.ToggleReaction(ctx, messageID, carol, chat.ReactionDTO{Emoji: "🔥"})
			Expect(err).To(Equal(chat.ErrNotParticipant))
		})
	})
})
