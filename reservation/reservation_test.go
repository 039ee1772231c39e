package reservation_test

import (
	"encoding/json"
	"testing"
	"time"

	rv "github.com/hanksha/amenity-booking-backend/reservation"
	"github.com/stretchr/testify/require"
)

func TestParseSpace(t *testing.T) {
	for _, s := range []string{"event-hall", "pool", "terrace"} {
		space, err := rv.ParseSpace(s)
		require.NoError(t, err)
		require.Equal(t, s, space.String())
	}

	_, err := rv.ParseSpace("gym")
	require.ErrorIs(t, err, rv.ErrInvalidSpace)

	_, err = rv.ParseSpace("")
	require.ErrorIs(t, err, rv.ErrInvalidSpace)

	require.Equal(t, "Event Hall", rv.SpaceEventHall.Name())
	require.Equal(t, []rv.Space{rv.SpaceEventHall, rv.SpacePool, rv.SpaceTerrace}, rv.Spaces())
}

func TestTimeOfDay(t *testing.T) {
	t.Run("parse and format", func(t *testing.T) {
		tod, err := rv.ParseTimeOfDay("09:00")
		require.NoError(t, err)
		require.Equal(t, "09:00", tod.String())
		require.Equal(t, 9, tod.Hour())
	})

	t.Run("add", func(t *testing.T) {
		end, err := rv.MustTimeOfDay("20:00").Add(time.Hour)
		require.NoError(t, err)
		require.Equal(t, "21:00", end.String())

		end, err = rv.MustTimeOfDay("09:30").Add(45 * time.Minute)
		require.NoError(t, err)
		require.Equal(t, "10:15", end.String())
	})

	t.Run("add past midnight", func(t *testing.T) {
		_, err := rv.MustTimeOfDay("23:30").Add(time.Hour)
		require.ErrorIs(t, err, rv.ErrInvalidTimeOfDay)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := rv.ParseTimeOfDay("25:00")
		require.ErrorIs(t, err, rv.ErrInvalidTimeOfDay)

		_, err = rv.NewTimeOfDay(10, 60)
		require.ErrorIs(t, err, rv.ErrInvalidTimeOfDay)
	})
}

func TestSlots(t *testing.T) {
	slots := rv.Slots()
	require.Len(t, slots, 12)
	require.Equal(t, "09:00", slots[0].String())
	require.Equal(t, "20:00", slots[len(slots)-1].String())

	_, err := rv.ParseSlot("08:00")
	require.ErrorIs(t, err, rv.ErrInvalidSlot)

	_, err = rv.ParseSlot("10:30")
	require.ErrorIs(t, err, rv.ErrInvalidSlot)

	slot, err := rv.ParseSlot("14:00")
	require.NoError(t, err)
	require.True(t, rv.IsSlot(slot))
}

func TestParseDate(t *testing.T) {
	d, err := rv.ParseDate("2024-06-01")
	require.NoError(t, err)
	require.Equal(t, rv.Date("2024-06-01"), d)

	_, err = rv.ParseDate("2024-13-01")
	require.ErrorIs(t, err, rv.ErrInvalidDate)

	_, err = rv.ParseDate("01/06/2024")
	require.ErrorIs(t, err, rv.ErrInvalidDate)

	require.True(t, rv.Date("2024-05-31").Before("2024-06-01"))
	require.False(t, rv.Date("2024-06-01").Before("2024-06-01"))
}

func TestNewReservation(t *testing.T) {
	t.Run("derives end time", func(t *testing.T) {
		r, err := rv.NewReservation("1", rv.SpacePool, "2024-06-01", rv.MustTimeOfDay("10:00"))
		require.NoError(t, err)
		require.Equal(t, "11:00", r.EndTime.String())
	})

	t.Run("rejects unknown space", func(t *testing.T) {
		_, err := rv.NewReservation("1", rv.Space("gym"), "2024-06-01", rv.MustTimeOfDay("10:00"))
		require.ErrorIs(t, err, rv.ErrInvalidSpace)
	})

	t.Run("rejects off-schedule slot", func(t *testing.T) {
		_, err := rv.NewReservation("1", rv.SpacePool, "2024-06-01", rv.MustTimeOfDay("21:00"))
		require.ErrorIs(t, err, rv.ErrInvalidSlot)
	})

	t.Run("rejects bad date", func(t *testing.T) {
		_, err := rv.NewReservation("1", rv.SpacePool, "tomorrow", rv.MustTimeOfDay("10:00"))
		require.ErrorIs(t, err, rv.ErrInvalidDate)
	})
}

func TestReservationJSON(t *testing.T) {
	r, err := rv.NewReservation("1717236000000", rv.SpaceTerrace, "2024-06-01", rv.MustTimeOfDay("09:00"))
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"1717236000000","space":"terrace","date":"2024-06-01","startTime":"09:00","endTime":"10:00"}`, string(data))

	var invalid rv.Reservation
	err = json.Unmarshal([]byte(`{"id":"1","space":"gym","date":"2024-06-01","startTime":"09:00","endTime":"10:00"}`), &invalid)
	require.ErrorIs(t, err, rv.ErrInvalidSpace)
}

func TestIsSlotAvailable(t *testing.T) {
	reservations := []rv.Reservation{
		{ID: "1", Space: rv.SpacePool, Date: "2024-06-01", StartTime: rv.MustTimeOfDay("10:00"), EndTime: rv.MustTimeOfDay("11:00")},
	}

	require.False(t, rv.IsSlotAvailable(reservations, rv.SpacePool, "2024-06-01", rv.MustTimeOfDay("10:00")))
	require.True(t, rv.IsSlotAvailable(reservations, rv.SpacePool, "2024-06-01", rv.MustTimeOfDay("11:00")))
	require.True(t, rv.IsSlotAvailable(reservations, rv.SpaceTerrace, "2024-06-01", rv.MustTimeOfDay("10:00")))
	require.True(t, rv.IsSlotAvailable(reservations, rv.SpacePool, "2024-06-02", rv.MustTimeOfDay("10:00")))
	require.True(t, rv.IsSlotAvailable(nil, rv.SpacePool, "2024-06-01", rv.MustTimeOfDay("10:00")))
}

func TestSlotAvailability(t *testing.T) {
	reservations := []rv.Reservation{
		{ID: "1", Space: rv.SpacePool, Date: "2024-06-01", StartTime: rv.MustTimeOfDay("10:00"), EndTime: rv.MustTimeOfDay("11:00")},
		{ID: "2", Space: rv.SpacePool, Date: "2024-06-01", StartTime: rv.MustTimeOfDay("20:00"), EndTime: rv.MustTimeOfDay("21:00")},
	}

	statuses := rv.SlotAvailability(reservations, rv.SpacePool, "2024-06-01")
	require.Len(t, statuses, 12)

	taken := []string{}
	for _, s := range statuses {
		if !s.Available {
			taken = append(taken, s.StartTime.String())
		}
	}

	require.Equal(t, []string{"10:00", "20:00"}, taken)
	require.Equal(t, "21:00", statuses[11].EndTime.String())
}

func TestUpcoming(t *testing.T) {
	reservations := []rv.Reservation{
		{ID: "past", Date: "2024-05-31"},
		{ID: "today", Date: "2024-06-01"},
		{ID: "future", Date: "2024-07-01"},
	}

	upcoming := rv.Upcoming(reservations, "2024-06-01")
	require.Equal(t, []rv.Reservation{reservations[1], reservations[2]}, upcoming)
	require.Empty(t, rv.Upcoming(nil, "2024-06-01"))
}

func TestTimestampIDs(t *testing.T) {
	clock := fixedClock{now: time.UnixMilli(1717236000123)}
	ids := rv.TimestampIDs{Clock: clock}

	require.Equal(t, "1717236000123", ids.NewID())
	require.Equal(t, ids.NewID(), ids.NewID())
	require.NotEqual(t, rv.UUIDs{}.NewID(), rv.UUIDs{}.NewID())
}
