package category

import "time"

// Category is one expense category from the fixed roster. The roster is
// seeded at startup; the ledger validates entries against Name.
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Label     string    `json:"label" gorm:"not null"`
	Emoji     string    `json:"emoji"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "expense_categories"
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		Name:  c.Name,
		Label: c.Label,
		Emoji: c.Emoji,
	}
}

// Defaults is the seed roster.
func Defaults() []*Category {
	return []*Category{
		{Name: "food", Label: "Food", Emoji: "🍕", IsActive: true},
		{Name: "utilities", Label: "Utilities", Emoji: "💡", IsActive: true},
		{Name: "entertainment", Label: "Entertainment", Emoji: "🎬", IsActive: true},
		{Name: "groceries", Label: "Groceries", Emoji: "🛒", IsActive: true},
		{Name: "other", Label: "Other", Emoji: "📦", IsActive: true},
	}
}
