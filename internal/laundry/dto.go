package laundry

import (
	"time"

	errors "github.com/hostelhub/server/internal"
)

type CreateBookingDTO struct {
	Machine  string `json:"machine"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

func (d *CreateBookingDTO) Validate() error {
	if !validMachine(d.Machine) {
		return errors.NewValidationFieldError("machine", "unknown machine", errors.ErrCodeValidationFailed)
	}
	if !validTimeSlot(d.TimeSlot) {
		return errors.NewValidationFieldError("time_slot", "unknown time slot", errors.ErrCodeValidationFailed)
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return errors.NewValidationFieldError("date", "date must be YYYY-MM-DD", errors.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

// ScheduleResponse describes one date's grid: the fixed machines and
// slots plus whatever bookings exist.
type ScheduleResponse struct {
	Date      string     `json:"date"`
	Machines  []string   `json:"machines"`
	TimeSlots []string   `json:"time_slots"`
	Bookings  []*Booking `json:"bookings"`
}
