package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reservationsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amenity_reservations_confirmed_total",
			Help: "Reservations confirmed per space",
		},
		[]string{"space"},
	)

	reservationsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "amenity_reservations_cancelled_total",
			Help: "Reservations cancelled",
		},
	)

	slotConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amenity_slot_conflicts_total",
			Help: "Reservation attempts rejected because the slot was taken",
		},
		[]string{"space"},
	)

	storeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amenity_store_operations_total",
			Help: "Reservation store reads and writes",
		},
		[]string{"operation", "status"},
	)
)

func RecordConfirmed(space string) {
	reservationsConfirmed.WithLabelValues(space).Inc()
}

func RecordCancelled() {
	reservationsCancelled.Inc()
}

func RecordSlotConflict(space string) {
	slotConflicts.WithLabelValues(space).Inc()
}

func RecordStoreOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	storeOperations.WithLabelValues(operation, status).Inc()
}
