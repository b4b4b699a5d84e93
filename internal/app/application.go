package app

import (
	"log/slog"

	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/fares"
	"farecard.opentransit.org/internal/metrics"
	"farecard.opentransit.org/internal/payments"
	"farecard.opentransit.org/internal/transit"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware: the fare schedule, the route network, the card store, the
// payment workflow, and the ambient logger and metrics.
type Application struct {
	Config   Config
	Logger   *slog.Logger
	Schedule *fares.Schedule
	Network  *transit.Network
	Cards    *cards.Store
	Payments *payments.Workflow
	Metrics  *metrics.Collector
}

// Config holds all the configuration settings for our Application: the
// network port that we want the server to listen on, the name of the current
// operating environment (development, staging, production, etc.), the API
// keys that unlock the admin endpoints, and where the route tables come from.
// These are read from command-line flags and the environment when the
// Application starts.
type Config struct {
	Port       int
	Env        string
	ApiKeys    []string
	GTFSSource string
	RateLimit  int
}
