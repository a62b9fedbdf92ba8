package wall

import (
	"context"
	"log/slog"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
	"github.com/hostelhub/server/internal/core/events"
)

type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	ListVisible(ctx context.Context, viewerID int64) ([]*Post, error)
	ListPending(ctx context.Context) ([]*Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
	AddComment(ctx context.Context, comment *Comment) error
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreatePost records a post with tags extracted from the content. Posts
// by admins are approved immediately, everyone else waits for review.
func (s *Service) CreatePost(ctx context.Context, authorID int64, authorIsAdmin bool, dto CreatePostDTO) (*Post, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	postType := dto.Type
	if postType == "" {
		postType = PostTypeText
	}

	post := &Post{
		AuthorID:   authorID,
		Type:       postType,
		Content:    dto.Content,
		ImageURL:   dto.ImageURL,
		FileName:   dto.FileName,
		Tags:       ExtractTags(dto.Content),
		Likes:      datamodel.Int64Set{},
		IsApproved: authorIsAdmin,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error("failed to create post", "error", err, "author_id", authorID)
		return nil, errors.NewInternalError("failed to create post", err)
	}

	s.logger.Info("wall post created",
		"post_id", post.ID,
		"author_id", authorID,
		"approved", post.IsApproved)
	return post, nil
}

// Feed returns approved posts plus the viewer's own pending ones.
func (s *Service) Feed(ctx context.Context, viewerID int64) ([]*Post, error) {
	posts, err := s.repo.ListVisible(ctx, viewerID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load feed", err)
	}
	return posts, nil
}

func (s *Service) PendingPosts(ctx context.Context) ([]*Post, error) {
	posts, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list pending posts", err)
	}
	return posts, nil
}

// ToggleLike flips the viewer's like on a post.
func (s *Service) ToggleLike(ctx context.Context, postID, userID int64) (*Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Likes.Contains(userID) {
		post.Likes = post.Likes.Remove(userID)
	} else {
		post.Likes = post.Likes.Add(userID)
	}

	if err := s.repo.Update(ctx, post); err != nil {
		s.logger.Error("failed to toggle like", "error", err, "post_id", postID)
		return nil, errors.NewInternalError("failed to toggle like", err)
	}
	return post, nil
}

// Comment adds a comment to a post.
func (s *Service) Comment(ctx context.Context, postID, authorID int64, dto CreateCommentDTO) (*Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  dto.Content,
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		s.logger.Error("failed to add comment", "error", err, "post_id", postID)
		return nil, errors.NewInternalError("failed to add comment", err)
	}
	return comment, nil
}

// Approve marks a pending post as visible. Approving an already approved
// post is a no-op.
func (s *Service) Approve(ctx context.Context, postID, adminID int64) (*Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.IsApproved {
		return post, nil
	}

	post.IsApproved = true
	if err := s.repo.Update(ctx, post); err != nil {
		s.logger.Error("failed to approve post", "error", err, "post_id", postID)
		return nil, errors.NewInternalError("failed to approve post", err)
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewAuditEvent(events.EventPostApproved, adminID, postID, "approved wall post"))
	}

	s.logger.Info("wall post approved", "post_id", postID, "admin_id", adminID)
	return post, nil
}

// DeletePost removes a post. The author may delete their own, admins may
// delete any.
func (s *Service) DeletePost(ctx context.Context, postID, actorID int64, actorIsAdmin bool) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != actorID && !actorIsAdmin {
		return ErrNotAuthor
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		s.logger.Error("failed to delete post", "error", err, "post_id", postID)
		return errors.NewInternalError("failed to delete post", err)
	}

	if actorIsAdmin && post.AuthorID != actorID && s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewAuditEvent(events.EventPostDeleted, actorID, postID, "deleted wall post"))
	}

	s.logger.Info("wall post deleted", "post_id", postID, "actor_id", actorID)
	return nil
}
