package postgres

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/chat"
	"github.com/hostelhub/server/internal/core/datamodel"
)

func TestChatRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Chat Repository Suite")
}

var _ = Describe("ChatRepository", func() {
	var (
		db   *gorm.DB
		repo *ChatRepository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&chat.Chat{}, &chat.Message{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewChatRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	newChat := func(participants ...int64) *chat.Chat {
		c := &chat.Chat{
			Participants: datamodel.Int64Set(participants),
			CreatedBy:    participants[0],
		}
		Expect(repo.CreateChat(ctx, c)).To(Succeed())
		return c
	}

	Describe("ListMessages", func() {
		var chatID int64

		BeforeEach(func() {
			chatID = newChat(1, 2).ID
		})

		sendAt := func(content string, at time.Time) {
			msg := &chat.Message{
				ChatID:    chatID,
				SenderID:  1,
				Type:      chat.MessageTypeText,
				Content:   content,
				ReadBy:    datamodel.Int64Set{1},
				CreatedAt: at,
			}
			Expect(repo.CreateMessage(ctx, msg)).To(Succeed())
		}

		It("should return messages oldest first", func() {
			base := time.Now().Add(-time.Hour)
			sendAt("first", base)
			sendAt("second", base.Add(time.Minute))
			sendAt("third", base.Add(2*time.Minute))

			msgs, err := repo.ListMessages(ctx, chatID, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(3))
			Expect(msgs[0].Content).To(Equal("first"))
			Expect(msgs[2].Content).To(Equal("third"))
		})

		It("should keep the newest messages when limited, still oldest first", func() {
			base := time.Now().Add(-time.Hour)
			sendAt("first", base)
			sendAt("second", base.Add(time.Minute))
			sendAt("third", base.Add(2*time.Minute))

			msgs, err := repo.ListMessages(ctx, chatID, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(2))
			Expect(msgs[0].Content).To(Equal("second"))
			Expect(msgs[1].Content).To(Equal("third"))
		})
	})

	Describe("CreateMessage", func() {
		It("should round-trip an attachment message", func() {
			chatID := newChat(1, 2).ID
			msg := &chat.Message{
				ChatID:   chatID,
				SenderID: 2,
				Type:     chat.MessageTypeImage,
				Content:  "common room after diwali",
				FileURL:  "https://drive.example/diwali.jpg",
				FileName: "diwali.jpg",
				ReadBy:   datamodel.Int64Set{2},
			}
			Expect(repo.CreateMessage(ctx, msg)).To(Succeed())

			got, err := repo.GetMessage(ctx, msg.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Type).To(Equal(chat.MessageTypeImage))
			Expect(got.FileName).To(Equal("diwali.jpg"))
		})
	})

	Describe("FindPrivateChat", func() {
		It("should find the pair regardless of argument order", func() {
			created := newChat(1, 2)

			found, err := repo.FindPrivateChat(ctx, 2, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(created.ID))
		})

		It("should report not found for strangers", func() {
			newChat(1, 2)

			_, err := repo.FindPrivateChat(ctx, 1, 3)
			Expect(err).To(Equal(chat.ErrChatNotFound))
		})
	})
})
