// Package handler implements the HTTP endpoints of the reservation
// service: the public booking surface and the staff-facing admin
// surface.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ingri/reservations/internal/availability"
	"github.com/ingri/reservations/internal/feed"
	"github.com/ingri/reservations/internal/model"
	"github.com/ingri/reservations/internal/notify"
	"github.com/ingri/reservations/internal/queue"
)

// ReservationStore is the slice of the repository the handlers depend
// on.  *repository.ReservationRepo satisfies it.
type ReservationStore interface {
	Create(ctx context.Context, in model.CreateReservationInput) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Reservation, error)
	List(ctx context.Context, date string) ([]model.Reservation, error)
}

// EventPublisher pushes reservation events onto the broker.  Publishing
// is best-effort; handlers log and ignore its errors.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ReservationEvent) error
}

// BookingHandler serves the public booking flow: slot availability for
// the time step and the single creation request a completed draft
// submits.
type BookingHandler struct {
	store      ReservationStore
	checker    *availability.Checker
	dispatcher *notify.Dispatcher
	hub        *feed.Hub
	publisher  EventPublisher
	catalog    model.SlotCatalog
}

// NewBookingHandler constructs a BookingHandler.  store, checker,
// dispatcher and hub must be non-nil; publisher may be nil to disable
// the event stream.
func NewBookingHandler(store ReservationStore, checker *availability.Checker,
	dispatcher *notify.Dispatcher, hub *feed.Hub, publisher EventPublisher,
	catalog model.SlotCatalog) *BookingHandler {
	if store == nil || checker == nil || dispatcher == nil || hub == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		store:      store,
		checker:    checker,
		dispatcher: dispatcher,
		hub:        hub,
		publisher:  publisher,
		catalog:    catalog,
	}
}

// Create handles POST /api/reservations.  It validates the payload,
// persists the reservation with status pending and a server-assigned
// timestamp, fires both creation notifications and waits for them to
// settle, then responds with the stored record.  The response depends
// solely on the store write; notification failures are logged only.
func (h *BookingHandler) Create(c echo.Context) error {
	var in model.CreateReservationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := in.Validate(h.catalog); err != nil {
		if errors.Is(err, model.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	res, err := h.store.Create(ctx, in)
	if err != nil {
		logrus.WithError(err).Error("create reservation failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	// Both notification attempts settle before the response goes out,
	// but their outcome never affects it.
	h.dispatcher.ReservationCreated(ctx, res)

	h.hub.Publish(feed.Event{Type: feed.EventCreated, Reservation: *res})
	if h.publisher != nil {
		_ = h.publisher.Publish(ctx, queue.NewEvent(queue.TypeCreated, res))
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":     true,
		"reservation": res,
	})
}

// Availability handles GET /api/availability?date=YYYY-MM-DD.  It
// returns every catalog slot for the date with its occupancy count and
// full flag.  The picture is advisory: it is not re-verified when the
// draft is submitted.
func (h *BookingHandler) Availability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	day, err := h.checker.Check(c.Request().Context(), date)
	if err != nil {
		if _, parseErr := model.ParseDate(date); parseErr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": parseErr.Error()})
		}
		logrus.WithError(err).WithField("date", date).Error("availability check failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong, try again"})
	}
	return c.JSON(http.StatusOK, day)
}
