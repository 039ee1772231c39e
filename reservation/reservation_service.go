package reservation

import (
	"context"
	"fmt"

	"github.com/hanksha/amenity-booking-backend/monitoring"
	"go.uber.org/zap"
)

// Store persists the whole reservation collection under a single key.
// There is no partial update and no locking: callers read, modify and
// write back the full list.
type Store interface {
	GetReservations(ctx context.Context) ([]Reservation, error)
	SetReservations(ctx context.Context, reservations []Reservation) error
}

type Service struct {
	store    Store
	notifier Notifier
	ids      IDGenerator
	clock    Clock
	logger   *zap.Logger
}

func NewService(store Store, notifier Notifier, ids IDGenerator, clock Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = SystemClock{}
	}

	if ids == nil {
		ids = TimestampIDs{Clock: clock}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{store: store, notifier: notifier, ids: ids, clock: clock, logger: logger}
}

func (s *Service) Today() Date {
	return DateOf(s.clock.Now())
}

func (s *Service) ListReservations(ctx context.Context) ([]Reservation, error) {
	reservations, err := s.store.GetReservations(ctx)
	monitoring.RecordStoreOperation("get", err)

	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	return reservations, nil
}

func (s *Service) UpcomingReservations(ctx context.Context) ([]Reservation, error) {
	reservations, err := s.ListReservations(ctx)

	if err != nil {
		return nil, err
	}

	return Upcoming(reservations, s.Today()), nil
}

func (s *Service) Availability(ctx context.Context, space Space, date Date) ([]SlotStatus, error) {
	reservations, err := s.ListReservations(ctx)

	if err != nil {
		return nil, err
	}

	return SlotAvailability(reservations, space, date), nil
}

// NewPending builds a reservation that is not persisted yet.
func (s *Service) NewPending(space Space, date Date, start TimeOfDay) (Reservation, error) {
	return NewReservation(s.ids.NewID(), space, date, start)
}

// Reserve appends r to the stored collection and returns the collection
// as written. The slot is checked against the list just loaded, so two
// writers racing on the same key can still both succeed.
func (s *Service) Reserve(ctx context.Context, r Reservation) ([]Reservation, error) {
	reservations, err := s.ListReservations(ctx)

	if err != nil {
		return nil, err
	}

	if !IsSlotAvailable(reservations, r.Space, r.Date, r.StartTime) {
		monitoring.RecordSlotConflict(r.Space.String())
		return nil, fmt.Errorf("%w: %v on %v at %v", ErrSlotUnavailable, r.Space, r.Date, r.StartTime)
	}

	updated := make([]Reservation, 0, len(reservations)+1)
	updated = append(updated, reservations...)
	updated = append(updated, r)

	if err := s.persist(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	monitoring.RecordConfirmed(r.Space.String())
	s.logger.Info("reservation confirmed",
		zap.String("id", r.ID),
		zap.String("space", r.Space.String()),
		zap.String("date", r.Date.String()),
		zap.String("start", r.StartTime.String()),
	)
	s.sendNotification(ctx, confirmedNotice(r))

	return updated, nil
}

// Cancel removes the reservation with the given id. Every other record
// keeps its relative order.
func (s *Service) Cancel(ctx context.Context, id string) ([]Reservation, error) {
	reservations, err := s.ListReservations(ctx)

	if err != nil {
		return nil, err
	}

	updated := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.ID != id {
			updated = append(updated, r)
		}
	}

	if len(updated) == len(reservations) {
		return nil, fmt.Errorf("%w: %v", ErrReservationNotFound, id)
	}

	if err := s.persist(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	monitoring.RecordCancelled()
	s.logger.Info("reservation cancelled", zap.String("id", id))
	s.sendNotification(ctx, cancelledNotice())

	return updated, nil
}

func (s *Service) persist(ctx context.Context, reservations []Reservation) error {
	err := s.store.SetReservations(ctx, reservations)
	monitoring.RecordStoreOperation("set", err)

	return err
}

func (s *Service) sendNotification(ctx context.Context, notice Notice) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.Notify(ctx, notice); err != nil {
		s.logger.Warn("failed to send notification", zap.String("title", notice.Title), zap.Error(err))
	}
}
