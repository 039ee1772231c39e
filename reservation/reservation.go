package reservation

import "fmt"

type Reservation struct {
	ID        string    `json:"id"`
	Space     Space     `json:"space"`
	Date      Date      `json:"date"`
	StartTime TimeOfDay `json:"startTime"`
	EndTime   TimeOfDay `json:"endTime"`
}

// NewReservation validates the requested space, date and slot and derives
// the end time from the start.
func NewReservation(id string, space Space, date Date, start TimeOfDay) (Reservation, error) {
	if !space.Valid() {
		return Reservation{}, fmt.Errorf("%w: %q", ErrInvalidSpace, string(space))
	}

	if _, err := ParseDate(string(date)); err != nil {
		return Reservation{}, err
	}

	if !IsSlot(start) {
		return Reservation{}, fmt.Errorf("%w: %v", ErrInvalidSlot, start)
	}

	end, err := SlotEnd(start)
	if err != nil {
		return Reservation{}, err
	}

	return Reservation{
		ID:        id,
		Space:     space,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// Occupies reports whether r holds the given space, date and slot.
func (r Reservation) Occupies(space Space, date Date, start TimeOfDay) bool {
	return r.Space == space && r.Date == date && r.StartTime == start
}
