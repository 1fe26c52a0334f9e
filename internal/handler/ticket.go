package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"ticketr/internal/monitoring"
	"ticketr/internal/purchase"
	"ticketr/internal/queue"
	"ticketr/internal/repository"
	queue_publisher "ticketr/internal/service"
)

// TicketHandler exposes the purchase endpoint. It is deliberately
// unauthenticated: anyone may buy tickets for a published event.
type TicketHandler struct {
	Engine *purchase.Engine
}

func NewTicketHandler(engine *purchase.Engine) *TicketHandler {
	return &TicketHandler{Engine: engine}
}

// purchaseReq is the typed body of POST /v1/events/:id/tickets.
type purchaseReq struct {
	Tickets []purchase.Line `json:"tickets"`
}

// Purchase handles POST /v1/events/:id/tickets. Success answers 201
// with the updated event and the computed total; an unsatisfiable
// basket answers 404 with the current tier snapshot under "available".
func (h *TicketHandler) Purchase(c echo.Context) error {
	id, ok := eventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if len(req.Tickets) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tickets is required"})
	}
	for _, line := range req.Tickets {
		if strings.TrimSpace(line.Name) == "" || line.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "each ticket line needs a name and a positive quantity"})
		}
	}

	ctx := c.Request().Context()
	receipt, err := h.Engine.Purchase(ctx, id, req.Tickets)
	if err != nil {
		var insufficient *purchase.InsufficientInventoryError
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			monitoring.RecordPurchase(monitoring.OutcomeNotFound, 0)
			return c.JSON(http.StatusNotFound, echo.Map{"message": "event not found"})
		case errors.As(err, &insufficient):
			monitoring.RecordPurchase(monitoring.OutcomeInsufficient, 0)
			return c.JSON(http.StatusNotFound, echo.Map{
				"message":   "not enough tickets",
				"available": insufficient.Available,
			})
		default:
			monitoring.RecordPurchase(monitoring.OutcomeError, 0)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "purchase failed"})
		}
	}
	monitoring.RecordPurchase(monitoring.OutcomeSuccess, receipt.Sold)

	lines := make([]queue.TicketLine, 0, len(req.Tickets))
	for _, l := range req.Tickets {
		lines = append(lines, queue.TicketLine{Name: l.Name, Quantity: l.Quantity})
	}
	// best-effort: analytics must never fail a committed purchase
	_ = queue_publisher.PublishTicketPurchased(ctx, queue.TicketPurchasedEvent{
		EventID:     receipt.Event.ID,
		EventName:   receipt.Event.Name,
		Lines:       lines,
		TotalPrice:  receipt.Total.String(),
		PurchasedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"event":      receipt.Event,
		"totalPrice": receipt.Total,
	})
}
