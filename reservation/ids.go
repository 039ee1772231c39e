package reservation

import (
	"strconv"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_reservation.go -package=mocks github.com/hanksha/amenity-booking-backend/reservation Store,Notifier,Navigator,IDGenerator,Clock

type IDGenerator interface {
	NewID() string
}

// TimestampIDs derives ids from the clock in milliseconds. Two reservations
// created within the same millisecond get the same id.
type TimestampIDs struct {
	Clock Clock
}

func (g TimestampIDs) NewID() string {
	clock := g.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	return strconv.FormatInt(clock.Now().UnixMilli(), 10)
}

type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.NewString()
}
