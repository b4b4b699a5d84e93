// Package metrics exposes the fare engine's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the engine's metrics behind one registry.
type Collector struct {
	reg *prometheus.Registry

	Taps          *prometheus.CounterVec // labels: direction, outcome
	TapRefusals   *prometheus.CounterVec // label: reason
	FaresCharged  prometheus.Counter
	FinesCharged  prometheus.Counter
	AmountCharged prometheus.Counter

	PaymentsCreated  *prometheus.CounterVec // label: kind
	PaymentsResolved *prometheus.CounterVec // labels: kind, status
	PaymentsPending  prometheus.Gauge

	CardsIssued   prometheus.Counter
	PassesSold    *prometheus.CounterVec // label: type
	PlanRequests  prometheus.Counter
	GraphRebuilds prometheus.Counter
}

// NewCollector registers every metric on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Taps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farecard_taps_total",
			Help: "Taps processed, by direction and outcome.",
		}, []string{"direction", "outcome"}),
		TapRefusals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farecard_tap_refusals_total",
			Help: "Taps refused before any state change, by reason.",
		}, []string{"reason"}),
		FaresCharged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farecard_fares_total",
			Help: "Fare settlements recorded.",
		}),
		FinesCharged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farecard_fines_total",
			Help: "Fines charged for abnormal card use.",
		}),
		AmountCharged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farecard_amount_charged_total",
			Help: "Total money charged across all settlements.",
		}),
		PaymentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farecard_payments_created_total",
			Help: "Money-movement requests enqueued, by kind.",
		}, []string{"kind"}),
		PaymentsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farecard_payments_resolved_total",
			Help: "Money-movement requests finalized, by kind and status.",
		}, []string{"kind", "status"}),
		PaymentsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "farecard_payments_pending",
			Help: "Requests currently awaiting approval.",
		}),
		CardsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farecard_cards_issued_total",
			Help: "Cards materialized from confirmed purchases.",
		}),
		PassesSold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farecard_passes_sold_total",
			Help: "Transit passes sold, by type.",
		}, []string{"type"}),
		PlanRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farecard_plan_requests_total",
			Help: "Route-plan queries served.",
		}),
		GraphRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farecard_graph_rebuilds_total",
			Help: "Route graph rebuilds from table edits.",
		}),
	}

	reg.MustRegister(
		c.Taps, c.TapRefusals, c.FaresCharged, c.FinesCharged, c.AmountCharged,
		c.PaymentsCreated, c.PaymentsResolved, c.PaymentsPending,
		c.CardsIssued, c.PassesSold, c.PlanRequests, c.GraphRebuilds,
	)
	return c
}

// Handler serves the registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
