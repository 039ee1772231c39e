package reservation

import "errors"

var ErrReservationNotFound = errors.New("reservation not found")

var ErrSlotUnavailable = errors.New("slot already reserved")

var ErrInvalidSpace = errors.New("invalid space")

var ErrInvalidDate = errors.New("invalid date")

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

var ErrInvalidSlot = errors.New("invalid slot")

var ErrDateInPast = errors.New("date is in the past")

var ErrNoDateSelected = errors.New("no date selected")

var ErrInvalidTransition = errors.New("invalid transition")
