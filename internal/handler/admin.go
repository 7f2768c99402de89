package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ingri/reservations/internal/feed"
	"github.com/ingri/reservations/internal/model"
	"github.com/ingri/reservations/internal/queue"
	"github.com/ingri/reservations/internal/repository"
)

// Feed filter modes accepted by the admin surface.
const (
	FilterToday = "today"
	FilterAll   = "all"
)

// AdminHandler serves the staff dashboard: the reservation list, single
// records, status transitions and the live feed.  Authentication is
// applied by the router; every method assumes the Basic-auth gate has
// already passed.
type AdminHandler struct {
	store     ReservationStore
	hub       *feed.Hub
	publisher EventPublisher

	// now is swappable for tests; it decides what "today" means.
	now func() time.Time
}

// NewAdminHandler constructs an AdminHandler.  publisher may be nil to
// disable the event stream.
func NewAdminHandler(store ReservationStore, hub *feed.Hub, publisher EventPublisher) *AdminHandler {
	if store == nil || hub == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{store: store, hub: hub, publisher: publisher, now: time.Now}
}

// resolveFilter maps a filter query parameter to the exact-date filter
// the store understands: "today" filters on the current local civil
// date, "all" (the empty date) returns everything.
func (h *AdminHandler) resolveFilter(param string) (date string, err error) {
	switch param {
	case "", FilterToday:
		return model.CivilDate(h.now()), nil
	case FilterAll:
		return "", nil
	}
	return "", fmt.Errorf("unknown filter %q", param)
}

// List handles GET /admin/reservations?filter=today|all.  Reservations
// are ordered by date ascending then time ascending; the default filter
// is today.
func (h *AdminHandler) List(c echo.Context) error {
	date, err := h.resolveFilter(c.QueryParam("filter"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	items, err := h.store.List(c.Request().Context(), date)
	if err != nil {
		logrus.WithError(err).Error("list reservations failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong, try again"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /admin/reservations/:id.
func (h *AdminHandler) Get(c echo.Context) error {
	res, err := h.store.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		logrus.WithError(err).Error("get reservation failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong, try again"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// UpdateStatus handles PATCH /admin/reservations/:id/status with body
// {"status": "..."}.  The status must be a known value and the move
// must be a legal lifecycle edge from the record's current status;
// terminal states accept no further transitions.  On success the
// refreshed record is returned.  A failed write leaves state unchanged
// and is retried only by the operator re-clicking.
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status, err := model.ParseStatus(body.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	current, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		logrus.WithError(err).Error("load reservation for status update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong, try again"})
	}
	if !model.CanTransition(current.Status, status) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": fmt.Sprintf("illegal status transition %s -> %s", current.Status, status),
		})
	}

	res, err := h.store.UpdateStatus(ctx, id, status)
	if err != nil {
		logrus.WithError(err).WithField("reservation_id", id).Error("status update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}

	h.hub.Publish(feed.Event{Type: feed.EventStatusChanged, Reservation: *res})
	if h.publisher != nil {
		_ = h.publisher.Publish(ctx, queue.NewEvent(queue.TypeStatusChanged, res))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"reservation": res,
	})
}

// Feed handles GET /admin/feed?filter=today|all as a server-sent event
// stream.  The connection first receives a snapshot event with the
// ordered current view, then one change event per store write matching
// the filter, with no polling.  The subscription lives exactly as long
// as the request: switching filters means the client reconnects, which
// cancels the old subscription before the new one is registered.
func (h *AdminHandler) Feed(c echo.Context) error {
	date, err := h.resolveFilter(c.QueryParam("filter"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	filter := feed.FilterAll
	if date != "" {
		filter = feed.FilterDate(date)
	}

	ctx := c.Request().Context()
	snapshot, err := h.store.List(ctx, date)
	if err != nil {
		logrus.WithError(err).Error("feed snapshot failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong, try again"})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeSSE(res, "snapshot", snapshot); err != nil {
		return err
	}

	// Slow consumers are dropped-from, not blocked-on: the buffer
	// absorbs bursts and anything beyond it is lost to this connection.
	events := make(chan feed.Event, 32)
	cancel := h.hub.Subscribe(filter, func(ev feed.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	defer cancel()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := writeSSE(res, "change", ev); err != nil {
				return nil
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeSSE(res *echo.Response, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
