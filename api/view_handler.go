package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	rv "github.com/hanksha/amenity-booking-backend/reservation"
	"github.com/patrickmn/go-cache"
)

// ViewHandler exposes booking views over HTTP. Each view is a
// reservation.Flow kept in memory until it is left or idles past ttl.
type ViewHandler struct {
	service   *rv.Service
	navigator rv.Navigator
	views     *cache.Cache
}

func NewViewHandler(service *rv.Service, navigator rv.Navigator, ttl time.Duration) *ViewHandler {
	return &ViewHandler{
		service:   service,
		navigator: navigator,
		views:     cache.New(ttl, ttl),
	}
}

type viewResponse struct {
	ID string `json:"id"`
	rv.FlowView
}

type selectSpaceRequest struct {
	Space string `json:"space"`
}

type selectDateRequest struct {
	Date string `json:"date"`
}

type reserveRequest struct {
	StartTime string `json:"startTime"`
}

type cancelRequest struct {
	ID string `json:"id"`
}

func (h *ViewHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Open)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id/space", h.SelectSpace)
	rg.PUT("/:id/date", h.SelectDate)
	rg.POST("/:id/reserve", h.Reserve)
	rg.POST("/:id/cancel", h.Cancel)
	rg.POST("/:id/confirm", h.Confirm)
	rg.POST("/:id/decline", h.Decline)
	rg.POST("/:id/leave", h.Leave)
}

func (h *ViewHandler) Open(c *gin.Context) {
	flow, err := rv.NewFlow(c.Request.Context(), h.service, h.navigator)

	if err != nil {
		writeError(c, err, "failed to load reservations")
		return
	}

	id := uuid.NewString()
	h.views.Set(id, flow, cache.DefaultExpiration)

	c.JSON(http.StatusCreated, viewResponse{ID: id, FlowView: flow.View()})
}

func (h *ViewHandler) Get(c *gin.Context) {
	id, flow, ok := h.lookup(c)
	if !ok {
		return
	}

	c.IndentedJSON(http.StatusOK, viewResponse{ID: id, FlowView: flow.View()})
}

func (h *ViewHandler) SelectSpace(c *gin.Context) {
	id, flow, ok := h.lookup(c)
	if !ok {
		return
	}

	var body selectSpaceRequest
	if err := c.BindJSON(&body); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	space, err := rv.ParseSpace(body.Space)
	if err == nil {
		err = flow.SelectSpace(space)
	}

	h.respond(c, id, flow, err, "failed to select space")
}

func (h *ViewHandler) SelectDate(c *gin.Context) {
	id, flow, ok := h.lookup(c)
	if !ok {
		return
	}

	var body selectDateRequest
	if err := c.BindJSON(&body); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	date, err := rv.ParseDate(body.Date)
	if err == nil {
		err = flow.SelectDate(date)
	}

	h.respond(c, id, flow, err, "failed to select date")
}

func (h *ViewHandler) Reserve(c *gin.Context) {
	id, flow, ok := h.lookup(c)
	if !ok {
		return
	}

	var body reserveRequest
	if err := c.BindJSON(&body); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	slot, err := rv.ParseSlot(body.StartTime)
	if err == nil {
		_, err = flow.RequestReservation(slot)
	}

	h.respond(c, id, flow, err, "failed to request reservation")
}

func (h *ViewHandler) Cancel(c *gin.Context) {
	id, flow, ok := h.lookup(c)
	if !ok {
		return
	}

	var body cancelRequest
	if err := c.BindJSON(&body); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	h.respond(c, id, flow, flow.RequestCancellation(body.ID), "failed to request cancellation")
}

func (h *ViewHandler) Confirm(c *gin.Context) {
	id, flow, ok := h.lookup(c)
	if !ok {
		return
	}

	h.respond(c, id, flow, flow.Confirm(c.Request.Context()), "failed to save reservations")
}

func (h *ViewHandler) Decline(c *gin.Context) {
	id, flow, ok := h.lookup(c)
	if !ok {
		return
	}

	h.respond(c, id, flow, flow.Decline(), "failed to decline")
}

func (h *ViewHandler) Leave(c *gin.Context) {
	id, flow, ok := h.lookup(c)
	if !ok {
		return
	}

	flow.Leave()
	h.views.Delete(id)

	c.JSON(http.StatusOK, gin.H{"route": rv.RouteDashboard})
}

// lookup finds the view named in the path and extends its lifetime.
func (h *ViewHandler) lookup(c *gin.Context) (string, *rv.Flow, bool) {
	id := c.Param("id")
	cached, found := h.views.Get(id)

	if !found {
		writeError(c, fmt.Errorf("%w: %v", errViewNotFound, id), "")
		return "", nil, false
	}

	flow := cached.(*rv.Flow)
	h.views.Set(id, flow, cache.DefaultExpiration)

	return id, flow, true
}

func (h *ViewHandler) respond(c *gin.Context, id string, flow *rv.Flow, err error, fallback string) {
	if err != nil {
		writeError(c, err, fallback)
		return
	}

	c.IndentedJSON(http.StatusOK, viewResponse{ID: id, FlowView: flow.View()})
}
