package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	rv "github.com/hanksha/amenity-booking-backend/reservation"
)

const DefaultReservationsKey = "reservations"

// ReservationStore keeps the whole reservation list as one JSON array
// under a single key.
type ReservationStore struct {
	blobs BlobStore
	key   string
}

func NewReservationStore(blobs BlobStore, key string) *ReservationStore {
	if key == "" {
		key = DefaultReservationsKey
	}

	return &ReservationStore{blobs: blobs, key: key}
}

func (s *ReservationStore) GetReservations(ctx context.Context) ([]rv.Reservation, error) {
	data, err := s.blobs.Get(ctx, s.key)

	if errors.Is(err, ErrKeyNotFound) {
		return []rv.Reservation{}, nil
	}

	if err != nil {
		return nil, err
	}

	reservations := []rv.Reservation{}
	if err := json.Unmarshal(data, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (s *ReservationStore) SetReservations(ctx context.Context, reservations []rv.Reservation) error {
	if reservations == nil {
		reservations = []rv.Reservation{}
	}

	data, err := json.Marshal(reservations)

	if err != nil {
		return fmt.Errorf("failed to encode reservations: %w", err)
	}

	return s.blobs.Set(ctx, s.key, data)
}
