package reservation

// SlotStatus is the availability of one scheduled slot.
type SlotStatus struct {
	StartTime TimeOfDay `json:"startTime"`
	EndTime   TimeOfDay `json:"endTime"`
	Available bool      `json:"available"`
}

// IsSlotAvailable reports whether no reservation holds the exact
// (space, date, start) triple. It scans the whole list on every call.
func IsSlotAvailable(reservations []Reservation, space Space, date Date, start TimeOfDay) bool {
	for _, r := range reservations {
		if r.Occupies(space, date, start) {
			return false
		}
	}

	return true
}

func SlotAvailability(reservations []Reservation, space Space, date Date) []SlotStatus {
	slots := Slots()
	statuses := make([]SlotStatus, 0, len(slots))

	for _, slot := range slots {
		end, _ := SlotEnd(slot)
		statuses = append(statuses, SlotStatus{
			StartTime: slot,
			EndTime:   end,
			Available: IsSlotAvailable(reservations, space, date, slot),
		})
	}

	return statuses
}

// Upcoming keeps the reservations dated today or later, in stored order.
func Upcoming(reservations []Reservation, today Date) []Reservation {
	upcoming := []Reservation{}
	for _, r := range reservations {
		if !r.Date.Before(today) {
			upcoming = append(upcoming, r)
		}
	}

	return upcoming
}
