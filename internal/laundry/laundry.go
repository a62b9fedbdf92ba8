package laundry

import (
	"time"

	errors "github.com/hostelhub/server/internal"
)

const DateLayout = "2006-01-02"

// Machines is the fixed roster of bookable machines.
var Machines = []string{
	"washer-1",
	"washer-2",
	"washer-3",
	"dryer-1",
	"dryer-2",
}

// TimeSlots are the fixed two-hour booking windows.
var TimeSlots = []string{
	"06:00-08:00",
	"08:00-10:00",
	"10:00-12:00",
	"12:00-14:00",
	"14:00-16:00",
	"16:00-18:00",
	"18:00-20:00",
	"20:00-22:00",
}

const (
	StatusBooked     = "booked"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Booking reserves one machine for one slot on one date. A slot is free
// when no booking exists for that machine, date and slot; cancelling
// deletes the row.
type Booking struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Machine   string    `json:"machine" gorm:"not null;index:idx_slot,unique"`
	Date      string    `json:"date" gorm:"not null;index:idx_slot,unique"`
	TimeSlot  string    `json:"time_slot" gorm:"column:time_slot;not null;index:idx_slot,unique"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;index"`
	Status    string    `json:"status" gorm:"default:booked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "laundry_bookings"
}

// nextStatus holds the only legal transition from each state.
var nextStatus = map[string]string{
	StatusBooked:     StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// Advance moves the booking one step along booked, in-progress,
// completed. Any other transition is rejected.
func (b *Booking) Advance(to string) error {
	if nextStatus[b.Status] != to {
		return errors.NewValidationError("invalid status transition", errors.ErrCodeValidationFailed)
	}
	b.Status = to
	return nil
}

func validMachine(machine string) bool {
	for _, m := range Machines {
		if m == machine {
			return true
		}
	}
	return false
}

func validTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

var (
	ErrBookingNotFound = errors.NewNotFoundError("booking not found", errors.ErrCodeSlotNotFound)
	ErrSlotTaken       = errors.NewConflictError("that slot is already booked", errors.ErrCodeSlotTaken)
	ErrNotBooker       = errors.NewForbiddenError("only the booker can change this booking", errors.ErrCodeUnauthorizedAccess)
)
