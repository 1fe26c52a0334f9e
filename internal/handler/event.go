package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"ticketr/internal/model"
	"ticketr/internal/purchase"
	"ticketr/internal/repository"
	"ticketr/internal/utils"
)

// EventHandler exposes the event catalog: CRUD over events and the
// ticket projection. The purchase endpoint lives in ticket.go; the
// engine reference here only releases purchase locks when an event is
// deleted.
type EventHandler struct {
	Store  repository.EventStore
	Engine *purchase.Engine
}

func NewEventHandler(store repository.EventStore, engine *purchase.Engine) *EventHandler {
	return &EventHandler{Store: store, Engine: engine}
}

// eventReq is the typed body of POST /v1/events and PUT /v1/events/:id.
type eventReq struct {
	Name         string             `json:"name"`
	Organization string             `json:"organization"`
	Venue        string             `json:"venue"`
	Date         string             `json:"date"`
	Tickets      []model.TicketTier `json:"tickets"`
}

// validate checks every field and collects all failures instead of
// stopping at the first, so the client sees the complete list. On
// success it returns the normalized event (trimmed strings, canonical
// date).
func (r eventReq) validate() (model.Event, []string) {
	errs := make([]string, 0)

	name := strings.TrimSpace(r.Name)
	org := strings.TrimSpace(r.Organization)
	venue := strings.TrimSpace(r.Venue)
	if name == "" {
		errs = append(errs, "name is required")
	}
	if org == "" {
		errs = append(errs, "organization is required")
	}
	if venue == "" {
		errs = append(errs, "venue is required")
	}

	date, err := utils.NormalizeDate(r.Date)
	if err != nil {
		errs = append(errs, "invalid date format, try dd/mm/yyyy")
	}

	if r.Tickets == nil {
		errs = append(errs, "tickets is required")
	}
	for i, t := range r.Tickets {
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, "tickets["+strconv.Itoa(i)+"]: name is required")
		}
		if t.Price.IsNegative() {
			errs = append(errs, "tickets["+strconv.Itoa(i)+"]: price must not be negative")
		}
		if t.Quantity < 0 {
			errs = append(errs, "tickets["+strconv.Itoa(i)+"]: quantity must not be negative")
		}
	}
	if len(errs) > 0 {
		return model.Event{}, errs
	}
	return model.Event{
		Name:         name,
		Organization: org,
		Venue:        venue,
		Date:         date,
		Tickets:      r.Tickets,
	}, nil
}

// eventID parses the :id path parameter.
func eventID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// Create handles POST /v1/events (authenticated).
func (h *EventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	ev, errs := req.validate()
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation failed", "errors": errs})
	}
	if err := h.Store.Create(c.Request().Context(), &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create event failed"})
	}
	return c.JSON(http.StatusCreated, ev)
}

// Update handles PUT /v1/events/:id (authenticated). The record is
// replaced wholesale, tickets included; the id never changes.
func (h *EventHandler) Update(c echo.Context) error {
	id, ok := eventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	ev, errs := req.validate()
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation failed", "errors": errs})
	}
	updated, err := h.Store.Replace(c.Request().Context(), id, ev)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update event failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/events/:id (authenticated).
func (h *EventHandler) Delete(c echo.Context) error {
	id, ok := eventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Store.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete event failed"})
	}
	h.Engine.Forget(id)
	return c.JSON(http.StatusOK, echo.Map{"message": "event deleted"})
}

// Get handles GET /v1/events/:id (public).
func (h *EventHandler) Get(c echo.Context) error {
	id, ok := eventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ev, err := h.Store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "load event failed"})
	}
	return c.JSON(http.StatusOK, ev)
}

// GetTickets handles GET /v1/events/:id/tickets (public): the name and
// tier snapshot without the rest of the event record.
func (h *EventHandler) GetTickets(c echo.Context) error {
	id, ok := eventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ev, err := h.Store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "load event failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": ev.ID, "name": ev.Name, "tickets": ev.Tickets})
}

// List handles GET /v1/events (public). Query parameters narrow the
// result to exact matches; absent parameters are ignored.
func (h *EventHandler) List(c echo.Context) error {
	filter := repository.EventFilter{
		Name:         c.QueryParam("name"),
		Organization: c.QueryParam("organization"),
		Venue:        c.QueryParam("venue"),
		Date:         c.QueryParam("date"),
	}
	events, err := h.Store.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "list events failed"})
	}
	return c.JSON(http.StatusOK, events)
}
