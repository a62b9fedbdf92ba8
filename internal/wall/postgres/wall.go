package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/wall"
)

type WallRepository struct {
	db *gorm.DB
}

func NewWallRepository(db *gorm.DB) *WallRepository {
	return &WallRepository{db: db}
}

func (r *WallRepository) Create(ctx context.Context, post *wall.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *WallRepository) GetByID(ctx context.Context, id int64) (*wall.Post, error) {
	var post wall.Post
	err := r.db.WithContext(ctx).
		Preload("Comments").
		First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wall.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListVisible returns approved posts plus the viewer's own unapproved
// ones, newest first.
func (r *WallRepository) ListVisible(ctx context.Context, viewerID int64) ([]*wall.Post, error) {
	var posts []*wall.Post
	err := r.db.WithContext(ctx).
		Preload("Comments").
		Where("is_approved = ? OR author_id = ?", true, viewerID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *WallRepository) ListPending(ctx context.Context) ([]*wall.Post, error) {
	var posts []*wall.Post
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&posts).Error
	return posts, err
}

func (r *WallRepository) Update(ctx context.Context, post *wall.Post) error {
	return r.db.WithContext(ctx).Omit("Comments").Save(post).Error
}

func (r *WallRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&wall.Comment{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&wall.Post{}, "id = ?", id).Error
	})
}

func (r *WallRepository) AddComment(ctx context.Context, comment *wall.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}
