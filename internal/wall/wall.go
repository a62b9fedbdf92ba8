package wall

import (
	"regexp"
	"strings"
	"time"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
)

// Post kinds. Image, doc, and meme posts carry an attachment; link posts
// carry the URL in the content.
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeDoc   = "doc"
	PostTypeLink  = "link"
	PostTypeMeme  = "meme"
)

var PostTypes = []string{PostTypeText, PostTypeImage, PostTypeDoc, PostTypeLink, PostTypeMeme}

// Post is one wall entry. Posts from regular residents wait for admin
// approval before the rest of the hostel sees them; admin posts go live
// immediately.
type Post struct {
	ID         int64                 `json:"id" gorm:"primaryKey"`
	AuthorID   int64                 `json:"author_id" gorm:"column:author_id;not null;index"`
	Type       string                `json:"type" gorm:"not null;default:text"`
	Content    string                `json:"content" gorm:"not null"`
	ImageURL   string                `json:"image_url,omitempty" gorm:"column:image_url"`
	FileName   string                `json:"file_name,omitempty" gorm:"column:file_name"`
	Tags       datamodel.StringSlice `json:"tags" gorm:"type:text"`
	Likes      datamodel.Int64Set    `json:"likes" gorm:"type:text"`
	IsApproved bool                  `json:"is_approved" gorm:"column:is_approved;default:false"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`

	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}

func (Post) TableName() string {
	return "wall_posts"
}

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    int64     `json:"post_id" gorm:"column:post_id;not null;index"`
	AuthorID  int64     `json:"author_id" gorm:"column:author_id;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "wall_comments"
}

var tagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractTags pulls #hashtags out of post content, lowercased and
// deduplicated in order of first appearance.
func ExtractTags(content string) datamodel.StringSlice {
	matches := tagPattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]bool, len(matches))
	tags := make(datamodel.StringSlice, 0, len(matches))
	for _, m := range matches {
		tag := strings.ToLower(m[1])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

var (
	ErrPostNotFound = errors.NewNotFoundError("post not found", errors.ErrCodePostNotFound)
	ErrNotAuthor    = errors.NewForbiddenError("only the author or an admin can delete this post", errors.ErrCodeUnauthorizedAccess)
)
