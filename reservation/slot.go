package reservation

import (
	"encoding/json"
	"fmt"
	"time"
)

// SlotDuration is the length of every bookable slot.
const SlotDuration = time.Hour

const (
	firstSlotHour = 9
	lastSlotHour  = 20
	minutesPerDay = 24 * 60
)

// TimeOfDay is a wall-clock time expressed in minutes after midnight.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, hour, minute)
	}

	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}

	return t
}

// Add returns t shifted by d. Results outside the same day are rejected.
func (t TimeOfDay) Add(d time.Duration) (TimeOfDay, error) {
	if d%time.Minute != 0 {
		return TimeOfDay{}, fmt.Errorf("%w: duration %v is not a whole number of minutes", ErrInvalidTimeOfDay, d)
	}

	minutes := t.minutes + int(d/time.Minute)
	if minutes < 0 || minutes >= minutesPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: %v + %v leaves the day", ErrInvalidTimeOfDay, t, d)
	}

	return TimeOfDay{minutes: minutes}, nil
}

func (t TimeOfDay) Hour() int   { return t.minutes / 60 }
func (t TimeOfDay) Minute() int { return t.minutes % 60 }

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}

	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// Slots returns the daily schedule of bookable start times, 09:00 to 20:00.
func Slots() []TimeOfDay {
	slots := make([]TimeOfDay, 0, lastSlotHour-firstSlotHour+1)
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		slots = append(slots, TimeOfDay{minutes: hour * 60})
	}

	return slots
}

func IsSlot(t TimeOfDay) bool {
	return t.Minute() == 0 && t.Hour() >= firstSlotHour && t.Hour() <= lastSlotHour
}

// ParseSlot parses s and checks it is one of the scheduled start times.
func ParseSlot(s string) (TimeOfDay, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}

	if !IsSlot(t) {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}

	return t, nil
}

func SlotEnd(start TimeOfDay) (TimeOfDay, error) {
	return start.Add(SlotDuration)
}
