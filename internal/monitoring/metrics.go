// Package monitoring exposes prometheus instrumentation for the
// ticketing core. The /metrics endpoint is registered by the router.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	purchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketr_purchases_total",
			Help: "Purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	ticketsSoldTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketr_tickets_sold_total",
			Help: "Total number of tickets sold across all events",
		},
	)

	signupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketr_signups_total",
			Help: "Total number of successful signups",
		},
	)
)

// Purchase outcomes recorded on the purchases counter.
const (
	OutcomeSuccess      = "success"
	OutcomeInsufficient = "insufficient_inventory"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// RecordPurchase counts one purchase attempt and, on success, the
// number of tickets it sold.
func RecordPurchase(outcome string, ticketsSold int64) {
	purchasesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess && ticketsSold > 0 {
		ticketsSoldTotal.Add(float64(ticketsSold))
	}
}

// RecordSignup counts one successful signup.
func RecordSignup() { signupsTotal.Inc() }
