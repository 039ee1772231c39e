package reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type State string

const (
	StateIdle          State = "idle"
	StatePendingCreate State = "pending-create"
	StatePendingDelete State = "pending-delete"
)

// Flow is the booking view of one user: the reservations loaded when it
// was opened, the current space and date selection, and the two-step
// confirmation of reserve and cancel.
//
//	Idle --RequestReservation--> PendingCreate --Confirm/Decline--> Idle
//	Idle --RequestCancellation--> PendingDelete --Confirm/Decline--> Idle
type Flow struct {
	mu        sync.Mutex
	service   *Service
	navigator Navigator

	state        State
	space        Space
	date         Date
	reservations []Reservation
	pending      *Reservation
	cancelID     string
}

// FlowView is a point-in-time copy of a flow for rendering.
type FlowView struct {
	State    State         `json:"state"`
	Space    Space         `json:"space"`
	Date     Date          `json:"date,omitempty"`
	Slots    []SlotStatus  `json:"slots"`
	Upcoming []Reservation `json:"upcoming"`
	Pending  *Reservation  `json:"pending,omitempty"`
	CancelID string        `json:"cancelId,omitempty"`
}

// NewFlow opens a booking view, loading the stored reservations once.
func NewFlow(ctx context.Context, service *Service, navigator Navigator) (*Flow, error) {
	reservations, err := service.ListReservations(ctx)

	if err != nil {
		return nil, err
	}

	return &Flow{
		service:      service,
		navigator:    navigator,
		state:        StateIdle,
		space:        SpaceEventHall,
		reservations: reservations,
	}, nil
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

func (f *Flow) SelectSpace(space Space) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return f.invalid("select space")
	}

	if !space.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSpace, string(space))
	}

	f.space = space
	return nil
}

// SelectDate picks the calendar day. Days before today cannot be chosen.
func (f *Flow) SelectDate(date Date) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return f.invalid("select date")
	}

	if _, err := ParseDate(string(date)); err != nil {
		return err
	}

	if date.Before(f.service.Today()) {
		return fmt.Errorf("%w: %v", ErrDateInPast, date)
	}

	f.date = date
	return nil
}

// IsSlotAvailable checks the slot for the current selection. Without a
// selected date every slot is reported available.
func (f *Flow) IsSlotAvailable(start TimeOfDay) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.slotAvailable(start)
}

func (f *Flow) slotAvailable(start TimeOfDay) bool {
	if f.date == "" {
		return true
	}

	return IsSlotAvailable(f.reservations, f.space, f.date, start)
}

// RequestReservation stages a reservation for the selected space and
// date. Nothing is persisted until Confirm.
func (f *Flow) RequestReservation(start TimeOfDay) (Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return Reservation{}, f.invalid("request reservation")
	}

	if f.date == "" {
		return Reservation{}, ErrNoDateSelected
	}

	if !f.slotAvailable(start) {
		return Reservation{}, fmt.Errorf("%w: %v on %v at %v", ErrSlotUnavailable, f.space, f.date, start)
	}

	pending, err := f.service.NewPending(f.space, f.date, start)
	if err != nil {
		return Reservation{}, err
	}

	f.pending = &pending
	f.state = StatePendingCreate

	return pending, nil
}

func (f *Flow) RequestCancellation(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return f.invalid("request cancellation")
	}

	found := false
	for _, r := range f.reservations {
		if r.ID == id {
			found = true
			break
		}
	}

	if !found {
		return fmt.Errorf("%w: %v", ErrReservationNotFound, id)
	}

	f.cancelID = id
	f.state = StatePendingDelete

	return nil
}

// Confirm commits the pending reservation or cancellation. When the store
// fails the flow stays pending so the user may retry or decline.
func (f *Flow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StatePendingCreate:
		updated, err := f.service.Reserve(ctx, *f.pending)

		if errors.Is(err, ErrSlotUnavailable) {
			f.reset()
			f.refresh(ctx)
			return err
		}

		if err != nil {
			return err
		}

		f.reservations = updated
		f.reset()
		return nil

	case StatePendingDelete:
		updated, err := f.service.Cancel(ctx, f.cancelID)

		if errors.Is(err, ErrReservationNotFound) {
			f.reset()
			f.refresh(ctx)
			return err
		}

		if err != nil {
			return err
		}

		f.reservations = updated
		f.reset()
		return nil

	default:
		return f.invalid("confirm")
	}
}

// Decline discards whatever is pending.
func (f *Flow) Decline() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateIdle {
		return f.invalid("decline")
	}

	f.reset()
	return nil
}

// Leave navigates away from the booking view.
func (f *Flow) Leave() {
	if f.navigator != nil {
		f.navigator.Navigate(RouteDashboard)
	}
}

func (f *Flow) View() FlowView {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots := make([]SlotStatus, 0, len(Slots()))
	for _, slot := range Slots() {
		end, _ := SlotEnd(slot)
		slots = append(slots, SlotStatus{StartTime: slot, EndTime: end, Available: f.slotAvailable(slot)})
	}

	view := FlowView{
		State:    f.state,
		Space:    f.space,
		Date:     f.date,
		Slots:    slots,
		Upcoming: Upcoming(f.reservations, f.service.Today()),
		CancelID: f.cancelID,
	}

	if f.pending != nil {
		pending := *f.pending
		view.Pending = &pending
	}

	return view
}

func (f *Flow) reset() {
	f.state = StateIdle
	f.pending = nil
	f.cancelID = ""
}

// refresh reloads the snapshot after another writer changed the store.
// A failed reload keeps the old snapshot.
func (f *Flow) refresh(ctx context.Context) {
	if reservations, err := f.service.ListReservations(ctx); err == nil {
		f.reservations = reservations
	}
}

func (f *Flow) invalid(event string) error {
	return fmt.Errorf("%w: cannot %v while %v", ErrInvalidTransition, event, f.state)
}
