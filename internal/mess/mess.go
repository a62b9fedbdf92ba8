package mess

import (
	"time"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
)

const DateLayout = "2006-01-02"

// Menu is the published mess menu for one date. At most one menu exists
// per date; residents rate it 1 to 5 and the average is recomputed on the
// server with every vote.
type Menu struct {
	ID           int64                `json:"id" gorm:"primaryKey"`
	Date         string               `json:"date" gorm:"uniqueIndex;not null"`
	Breakfast    datamodel.StringSlice `json:"breakfast" gorm:"type:text"`
	Lunch        datamodel.StringSlice `json:"lunch" gorm:"type:text"`
	Dinner       datamodel.StringSlice `json:"dinner" gorm:"type:text"`
	Snacks       datamodel.StringSlice `json:"snacks" gorm:"type:text"`
	Ratings      datamodel.IntMap     `json:"ratings" gorm:"type:text"`
	AvgRating    float64              `json:"avg_rating" gorm:"column:avg_rating;default:0"`
	RatingsCount int                  `json:"ratings_count" gorm:"column:ratings_count;default:0"`
	CreatedBy    int64                `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (Menu) TableName() string {
	return "mess_menus"
}

// RecomputeRating refreshes the denormalized average and count from the
// ratings map.
func (m *Menu) RecomputeRating() {
	m.RatingsCount = len(m.Ratings)
	if m.RatingsCount == 0 {
		m.AvgRating = 0
		return
	}
	sum := 0
	for _, r := range m.Ratings {
		sum += r
	}
	m.AvgRating = float64(sum) / float64(m.RatingsCount)
}

var (
	ErrMenuNotFound = errors.NewNotFoundError("no menu published for that date", errors.ErrCodeMenuNotFound)
	ErrMenuExists   = errors.NewConflictError("a menu already exists for that date", errors.ErrCodeMenuExists)
)
