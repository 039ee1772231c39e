package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	rv "github.com/hanksha/amenity-booking-backend/reservation"
)

//go:generate mockgen -destination=mocks/mock_reservation_service.go -package=mock_api github.com/hanksha/amenity-booking-backend/api ReservationService

type ReservationService interface {
	ListReservations(ctx context.Context) ([]rv.Reservation, error)
	UpcomingReservations(ctx context.Context) ([]rv.Reservation, error)
	Availability(ctx context.Context, space rv.Space, date rv.Date) ([]rv.SlotStatus, error)
}

type ReservationHandler struct {
	service ReservationService
}

func NewReservationHandler(service ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

type spaceResponse struct {
	ID   rv.Space `json:"id"`
	Name string   `json:"name"`
}

func (h *ReservationHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/spaces", h.ListSpaces)
	rg.GET("/slots", h.ListSlots)
	rg.GET("/availability", h.Availability)
	rg.GET("/reservations", h.ListAll)
	rg.GET("/reservations/upcoming", h.ListUpcoming)
}

func (h *ReservationHandler) ListSpaces(c *gin.Context) {
	spaces := []spaceResponse{}
	for _, space := range rv.Spaces() {
		spaces = append(spaces, spaceResponse{ID: space, Name: space.Name()})
	}

	c.IndentedJSON(http.StatusOK, spaces)
}

func (h *ReservationHandler) ListSlots(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, rv.Slots())
}

func (h *ReservationHandler) ListAll(c *gin.Context) {
	if reservations, err := h.service.ListReservations(c.Request.Context()); err != nil {
		writeError(c, err, "failed to retrieve reservations")
	} else {
		c.IndentedJSON(http.StatusOK, reservations)
	}
}

func (h *ReservationHandler) ListUpcoming(c *gin.Context) {
	if reservations, err := h.service.UpcomingReservations(c.Request.Context()); err != nil {
		writeError(c, err, "failed to retrieve reservations")
	} else {
		c.IndentedJSON(http.StatusOK, reservations)
	}
}

func (h *ReservationHandler) Availability(c *gin.Context) {
	space, err := rv.ParseSpace(c.Query("space"))

	if err != nil {
		writeError(c, err, "")
		return
	}

	date, err := rv.ParseDate(c.Query("date"))

	if err != nil {
		writeError(c, err, "")
		return
	}

	slots, err := h.service.Availability(c.Request.Context(), space, date)

	if err != nil {
		writeError(c, err, "failed to check availability")
		return
	}

	c.IndentedJSON(http.StatusOK, slots)
}
