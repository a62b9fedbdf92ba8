package event

import (
	"time"

	errors "github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/core/datamodel"
)

// Event kinds shown as filter chips on the events screen.
const (
	TypeStudy    = "study"
	TypeChill    = "chill"
	TypeSports   = "sports"
	TypeBirthday = "birthday"
	TypeOther    = "other"
)

var EventTypes = []string{TypeStudy, TypeChill, TypeSports, TypeBirthday, TypeOther}

// Event is a resident-organized gathering. The creator is always an
// attendee; MaxAttendees of zero means unlimited.
type Event struct {
	ID           int64              `json:"id" gorm:"primaryKey"`
	Title        string             `json:"title" gorm:"not null"`
	Type         string             `json:"type" gorm:"not null;default:other"`
	Description  string             `json:"description"`
	Location     string             `json:"location"`
	StartsAt     time.Time          `json:"starts_at" gorm:"column:starts_at;not null;index"`
	MaxAttendees int                `json:"max_attendees" gorm:"column:max_attendees;default:0"`
	Attendees    datamodel.Int64Set `json:"attendees" gorm:"type:text"`
	CreatedBy    int64              `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) IsFull() bool {
	return e.MaxAttendees > 0 && len(e.Attendees) >= e.MaxAttendees
}

var (
	ErrEventNotFound = errors.NewNotFoundError("event not found", errors.ErrCodeEventNotFound)
	ErrEventFull     = errors.NewConflictError("event is full", errors.ErrCodeEventFull)
)
