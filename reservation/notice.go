package reservation

import (
	"context"
	"fmt"
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Notice is a transient message shown to the user after a mutation.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Notifier interface {
	Notify(ctx context.Context, notice Notice) error
}

type Navigator interface {
	Navigate(route string)
}

const RouteDashboard = "dashboard"

func confirmedNotice(r Reservation) Notice {
	return Notice{
		Title: "Reservation confirmed",
		Description: fmt.Sprintf("%v booked for %v at %v",
			r.Space.Name(), r.Date.Time().Format("Monday, January 2, 2006"), r.StartTime),
	}
}

func cancelledNotice() Notice {
	return Notice{
		Title:       "Reservation cancelled",
		Description: "The reservation was cancelled successfully",
	}
}
