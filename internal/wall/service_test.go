package wall_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hostelhub/server/internal/core/events"
	"github.com/hostelhub/server/internal/wall"
)

func TestWallService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Wall Service Suite")
}

type mockWallRepository struct {
	posts    map[int64]*wall.Post
	comments map[int64][]wall.Comment
	nextID   int64
}

func newMockWallRepository() *mockWallRepository {
	return &mockWallRepository{
		posts:    make(map[int64]*wall.Post),
		comments: make(map[int64][]wall.Comment),
		nextID:   1,
	}
}

func (m *mockWallRepository) Create(_ context.Context, p *wall.Post) error {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	m.posts[p.ID] = p
	return nil
}

func (m *mockWallRepository) GetByID(_ context.Context, id int64) (*wall.Post, error) {
	p, exists := m.posts[id]
	if !exists {
		return nil, wall.ErrPostNotFound
	}
	return p, nil
}

func (m *mockWallRepository) ListVisible(_ context.Context, viewerID int64) ([]*wall.Post, error) {
	result := make([]*wall.Post, 0)
	for _, p := range m.posts {
		if p.IsApproved || p.AuthorID == viewerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockWallRepository) ListPending(_ context.Context) ([]*wall.Post, error) {
	result := make([]*wall.Post, 0)
	for _, p := range m.posts {
		if !p.IsApproved {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockWallRepository) Update(_ context.Context, p *wall.Post) error {
	m.posts[p.ID] = p
	return nil
}

func (m *mockWallRepository) Delete(_ context.Context, id int64) error {
	delete(m.posts, id)
	delete(m.comments, id)
	return nil
}

func (m *mockWallRepository) AddComment(_ context.Context, c *wall.Comment) error {
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	m.comments[c.PostID] = append(m.comments[c.PostID], *c)
	return nil
}

var _ = Describe("WallService", func() {
	var (
		service  *wall.Service
		mockRepo *mockWallRepository
		ctx      context.Context

		admin int64 = 1
		bob   int64 = 2
		carol int64 = 3
	)

	BeforeEach(func() {
		mockRepo = newMockWallRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = wall.NewService(mockRepo, events.NewEventBus(logger), logger)
		ctx = context.Background()
	})

	Describe("CreatePost", func() {
		It("should hold resident posts for review", func() {
			post, err := service.CreatePost(ctx, bob, false, wall.CreatePostDTO{Content: "chai at 5 #chai"})

			Expect(err).ToNot(HaveOccurred())
			Expect(post.IsApproved).To(BeFalse())
			Expect(post.Tags).To(ConsistOf("chai"))
		})

		It("should approve admin posts immediately", func() {
			post, err := service.CreatePost(ctx, admin, true, wall.CreatePostDTO{Content: "water cut tomorrow"})

			Expect(err).ToNot(HaveOccurred())
			Expect(post.IsApproved).To(BeTrue())
		})

		It("should default the post type to text", func() {
			post, err := service.CreatePost(ctx, bob, false, wall.CreatePostDTO{Content: "lost my umbrella"})

			Expect(err).ToNot(HaveOccurred())
			Expect(post.Type).To(Equal(wall.PostTypeText))
		})

		It("should carry an attachment's type and file name", func() {
			post, err := service.CreatePost(ctx, bob, false, wall.CreatePostDTO{
				Type:     wall.PostTypeMeme,
				Content:  "monday mood",
				ImageURL: "https://drive.example/mood.png",
				FileName: "mood.png",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(post.Type).To(Equal(wall.PostTypeMeme))
			Expect(post.FileName).To(Equal("mood.png"))
		})

		It("should reject an unknown post type", func() {
			_, err := service.CreatePost(ctx, bob, false, wall.CreatePostDTO{
				Type:    "billboard",
				Content: "hello",
			})
			Expect(err).To(HaveOccurred())
		})

		It("should reject empty content", func() {
			_, err := service.CreatePost(ctx, bob, false, wall.CreatePostDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Feed", func() {
		BeforeEach(func() {
			_, err := service.CreatePost(ctx, admin, true, wall.CreatePostDTO{Content: "approved post"})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.CreatePost(ctx, bob, false, wall.CreatePostDTO{Content: "pending post"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should show the author their own pending post", func() {
			posts, err := service.Feed(ctx, bob)
			Expect(err).ToNot(HaveOccurred())
			Expect(posts).To(HaveLen(2))
		})

		It("should hide pending posts from other residents", func() {
			posts, err := service.Feed(ctx, carol)
			Expect(err).ToNot(HaveOccurred())
			Expect(posts).To(HaveLen(1))
		})
	})

	Describe("ToggleLike", func() {
		var postID int64

		BeforeEach(func() {
			post, err := service.CreatePost(ctx, admin, true, wall.CreatePostDTO{Content: "hello"})
			Expect(err).ToNot(HaveOccurred())
			postID = post.ID
		})

		It("should add then remove a like", func() {
			post, err := service.ToggleLike(ctx, postID, bob)
			Expect(err).ToNot(HaveOccurred())
			Expect(post.Likes.Contains(bob)).To(BeTrue())

			post, err = service.ToggleLike(ctx, postID, bob)
			Expect(err).ToNot(HaveOccurred())
			Expect(post.Likes.Contains(bob)).To(BeFalse())
		})
	})

	Describe("Approve", func() {
		It("should make a pending post visible", func() {
			post, err := service.CreatePost(ctx, bob, false, wall.CreatePostDTO{Content: "pending"})
			Expect(err).ToNot(HaveOccurred())

			approved, err := service.Approve(ctx, post.ID, admin)
			Expect(err).ToNot(HaveOccurred())
			Expect(approved.IsApproved).To(BeTrue())

			posts, err := service.Feed(ctx, carol)
			Expect(err).ToNot(HaveOccurred())
			Expect(posts).To(HaveLen(1))
		})
	})

	Describe("DeletePost", func() {
		var postID int64

		BeforeEach(func() {
			post, err := service.CreatePost(ctx, bob, false, wall.CreatePostDTO{Content: "mine"})
			Expect(err).ToNot(HaveOccurred())
			postID = post.ID
		})

		It("should let the author delete their own post", func() {
			Expect(service.DeletePost(ctx, postID, bob, false)).To(Succeed())

			_, err := service.ToggleLike(ctx, postID, bob)
			Expect(err).To(Equal(wall.ErrPostNotFound))
		})

		It("should let an admin delete any post", func() {
			Expect(service.DeletePost(ctx, postID, admin, true)).To(Succeed())
		})

		It("should reject another resident", func() {
			err := service.DeletePost(ctx, postID, carol, false)
			Expect(err).To(Equal(wall.ErrNotAuthor))
		})
	})

	Describe("Comment", func() {
		It("should attach a comment to a post", func() {
			post, err := service.CreatePost(ctx, admin, true, wall.CreatePostDTO{Content: "hello"})
			Expect(err).ToNot(HaveOccurred())

			comment, err := service.Comment(ctx, post.ID, bob, wall.CreateCommentDTO{Content: "nice"})
			Expect(err).ToNot(HaveOccurred())
			Expect(comment.PostID).To(Equal(post.ID))
			Expect(comment.AuthorID).To(Equal(bob))
		})

		It("should reject a comment on a missing post", func() {
			_, err := service.Comment(ctx, 404, bob, wall.CreateCommentDTO{Content: "hi"})
			Expect(err).To(Equal(wall.ErrPostNotFound))
		})
	})
})
