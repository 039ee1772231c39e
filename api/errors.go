package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	rv "github.com/hanksha/amenity-booking-backend/reservation"
)

var errViewNotFound = errors.New("booking view not found")

// writeError maps domain errors onto status codes. Anything unknown is a
// server-side failure, reported with fallback as message.
func writeError(c *gin.Context, err error, fallback string) {
	c.Error(err)

	switch {
	case errors.Is(err, rv.ErrInvalidSpace),
		errors.Is(err, rv.ErrInvalidDate),
		errors.Is(err, rv.ErrInvalidSlot),
		errors.Is(err, rv.ErrInvalidTimeOfDay),
		errors.Is(err, rv.ErrDateInPast),
		errors.Is(err, rv.ErrNoDateSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, rv.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
	case errors.Is(err, errViewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking view not found"})
	case errors.Is(err, rv.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "slot already reserved"})
	case errors.Is(err, rv.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
