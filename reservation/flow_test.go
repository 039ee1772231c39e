package reservation_test

import (
	"context"
	"errors"
	"testing"

	rv "github.com/hanksha/amenity-booking-backend/reservation"
	rv_mocks "github.com/hanksha/amenity-booking-backend/reservation/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeStore struct {
	reservations []rv.Reservation
	writes       int
	setErr       error
}

func (s *fakeStore) GetReservations(ctx context.Context) ([]rv.Reservation, error) {
	return append([]rv.Reservation(nil), s.reservations...), nil
}

func (s *fakeStore) SetReservations(ctx context.Context, reservations []rv.Reservation) error {
	if s.setErr != nil {
		return s.setErr
	}

	s.writes++
	s.reservations = append([]rv.Reservation(nil), reservations...)
	return nil
}

type sequenceIDs struct{ next int }

func (g *sequenceIDs) NewID() string {
	g.next++
	return string(rune('a' + g.next - 1))
}

func newTestFlow(t *testing.T, store *fakeStore, navigator rv.Navigator) *rv.Flow {
	t.Helper()

	svc := rv.NewService(store, nil, &sequenceIDs{}, fixedClock{now: today}, nil)
	flow, err := rv.NewFlow(context.Background(), svc, navigator)
	require.NoError(t, err)

	return flow
}

func TestFlowReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm appends exactly one record", func(t *testing.T) {
		store := &fakeStore{reservations: []rv.Reservation{storedReservations[0]}}
		flow := newTestFlow(t, store, nil)

		require.Equal(t, rv.StateIdle, flow.State())
		require.Equal(t, rv.SpaceEventHall, flow.View().Space)

		require.NoError(t, flow.SelectSpace(rv.SpacePool))
		require.NoError(t, flow.SelectDate("2024-06-01"))
		require.False(t, flow.IsSlotAvailable(rv.MustTimeOfDay("10:00")))

		pending, err := flow.RequestReservation(rv.MustTimeOfDay("11:00"))
		require.NoError(t, err)
		require.Equal(t, rv.StatePendingCreate, flow.State())
		require.Equal(t, "12:00", pending.EndTime.String())
		require.Equal(t, 0, store.writes)

		require.NoError(t, flow.Confirm(ctx))
		require.Equal(t, rv.StateIdle, flow.State())
		require.Equal(t, 1, store.writes)
		require.Equal(t, []rv.Reservation{storedReservations[0], pending}, store.reservations)
		require.False(t, flow.IsSlotAvailable(rv.MustTimeOfDay("11:00")))
		require.Nil(t, flow.View().Pending)
	})

	t.Run("decline discards the pending reservation", func(t *testing.T) {
		store := &fakeStore{}
		flow := newTestFlow(t, store, nil)

		require.NoError(t, flow.SelectDate("2024-06-03"))
		_, err := flow.RequestReservation(rv.MustTimeOfDay("09:00"))
		require.NoError(t, err)

		require.NoError(t, flow.Decline())
		require.Equal(t, rv.StateIdle, flow.State())
		require.Equal(t, 0, store.writes)
		require.True(t, flow.IsSlotAvailable(rv.MustTimeOfDay("09:00")))
	})

	t.Run("no date selected", func(t *testing.T) {
		flow := newTestFlow(t, &fakeStore{reservations: storedReservations}, nil)

		for _, slot := range flow.View().Slots {
			require.True(t, slot.Available)
		}

		_, err := flow.RequestReservation(rv.MustTimeOfDay("09:00"))
		require.ErrorIs(t, err, rv.ErrNoDateSelected)
		require.Equal(t, rv.StateIdle, flow.State())
	})

	t.Run("past date rejected", func(t *testing.T) {
		flow := newTestFlow(t, &fakeStore{}, nil)

		require.ErrorIs(t, flow.SelectDate("2024-05-31"), rv.ErrDateInPast)
		require.ErrorIs(t, flow.SelectDate("not-a-date"), rv.ErrInvalidDate)
		require.NoError(t, flow.SelectDate("2024-06-01"))
	})

	t.Run("taken slot cannot be requested", func(t *testing.T) {
		flow := newTestFlow(t, &fakeStore{reservations: storedReservations}, nil)

		require.NoError(t, flow.SelectSpace(rv.SpacePool))
		require.NoError(t, flow.SelectDate("2024-06-01"))

		_, err := flow.RequestReservation(rv.MustTimeOfDay("10:00"))
		require.ErrorIs(t, err, rv.ErrSlotUnavailable)
	})

	t.Run("off-schedule slot", func(t *testing.T) {
		flow := newTestFlow(t, &fakeStore{}, nil)
		require.NoError(t, flow.SelectDate("2024-06-01"))

		_, err := flow.RequestReservation(rv.MustTimeOfDay("07:00"))
		require.ErrorIs(t, err, rv.ErrInvalidSlot)
		require.Equal(t, rv.StateIdle, flow.State())
	})

	t.Run("slot taken by another writer before confirm", func(t *testing.T) {
		store := &fakeStore{}
		flow := newTestFlow(t, store, nil)

		require.NoError(t, flow.SelectSpace(rv.SpacePool))
		require.NoError(t, flow.SelectDate("2024-06-01"))
		_, err := flow.RequestReservation(rv.MustTimeOfDay("10:00"))
		require.NoError(t, err)

		store.reservations = []rv.Reservation{storedReservations[0]}

		require.ErrorIs(t, flow.Confirm(ctx), rv.ErrSlotUnavailable)
		require.Equal(t, rv.StateIdle, flow.State())
		require.False(t, flow.IsSlotAvailable(rv.MustTimeOfDay("10:00")))
	})

	t.Run("store failure keeps the reservation pending", func(t *testing.T) {
		store := &fakeStore{setErr: errors.New("quota exceeded")}
		flow := newTestFlow(t, store, nil)

		require.NoError(t, flow.SelectDate("2024-06-01"))
		_, err := flow.RequestReservation(rv.MustTimeOfDay("12:00"))
		require.NoError(t, err)

		require.ErrorContains(t, flow.Confirm(ctx), "quota exceeded")
		require.Equal(t, rv.StatePendingCreate, flow.State())

		store.setErr = nil
		require.NoError(t, flow.Confirm(ctx))
		require.Len(t, store.reservations, 1)
	})
}

func TestFlowCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm removes the record", func(t *testing.T) {
		store := &fakeStore{reservations: storedReservations}
		flow := newTestFlow(t, store, nil)

		require.NoError(t, flow.RequestCancellation("1"))
		require.Equal(t, rv.StatePendingDelete, flow.State())
		require.Equal(t, "1", flow.View().CancelID)

		require.NoError(t, flow.Confirm(ctx))
		require.Equal(t, rv.StateIdle, flow.State())
		require.Equal(t, []rv.Reservation{storedReservations[1]}, store.reservations)
		require.Equal(t, []rv.Reservation{storedReservations[1]}, flow.View().Upcoming)
	})

	t.Run("decline keeps the record", func(t *testing.T) {
		store := &fakeStore{reservations: storedReservations}
		flow := newTestFlow(t, store, nil)

		require.NoError(t, flow.RequestCancellation("2"))
		require.NoError(t, flow.Decline())
		require.Equal(t, rv.StateIdle, flow.State())
		require.Equal(t, 0, store.writes)
		require.Equal(t, storedReservations, store.reservations)
	})

	t.Run("unknown id", func(t *testing.T) {
		flow := newTestFlow(t, &fakeStore{reservations: storedReservations}, nil)

		require.ErrorIs(t, flow.RequestCancellation("42"), rv.ErrReservationNotFound)
		require.Equal(t, rv.StateIdle, flow.State())
	})

	t.Run("removed by another writer before confirm", func(t *testing.T) {
		store := &fakeStore{reservations: storedReservations}
		flow := newTestFlow(t, store, nil)

		require.NoError(t, flow.RequestCancellation("1"))
		store.reservations = []rv.Reservation{storedReservations[1]}

		require.ErrorIs(t, flow.Confirm(ctx), rv.ErrReservationNotFound)
		require.Equal(t, rv.StateIdle, flow.State())
		require.Equal(t, []rv.Reservation{storedReservations[1]}, flow.View().Upcoming)
	})
}

func TestFlowInvalidTransitions(t *testing.T) {
	ctx := context.Background()
	flow := newTestFlow(t, &fakeStore{reservations: storedReservations}, nil)

	require.ErrorIs(t, flow.Confirm(ctx), rv.ErrInvalidTransition)
	require.ErrorIs(t, flow.Decline(), rv.ErrInvalidTransition)

	require.NoError(t, flow.SelectDate("2024-06-04"))
	_, err := flow.RequestReservation(rv.MustTimeOfDay("09:00"))
	require.NoError(t, err)

	_, err = flow.RequestReservation(rv.MustTimeOfDay("10:00"))
	require.ErrorIs(t, err, rv.ErrInvalidTransition)
	require.ErrorIs(t, flow.RequestCancellation("1"), rv.ErrInvalidTransition)
	require.ErrorIs(t, flow.SelectSpace(rv.SpacePool), rv.ErrInvalidTransition)
	require.ErrorIs(t, flow.SelectDate("2024-06-05"), rv.ErrInvalidTransition)
	require.Equal(t, rv.StatePendingCreate, flow.State())
}

func TestFlowLeave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	navigator := rv_mocks.NewMockNavigator(ctrl)
	navigator.EXPECT().Navigate(rv.RouteDashboard).Times(1)

	flow := newTestFlow(t, &fakeStore{}, navigator)
	flow.Leave()
}
