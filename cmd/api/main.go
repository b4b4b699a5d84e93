package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"farecard.opentransit.org/internal/app"
	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/fares"
	"farecard.opentransit.org/internal/logging"
	"farecard.opentransit.org/internal/metrics"
	"farecard.opentransit.org/internal/payments"
	"farecard.opentransit.org/internal/restapi"
	"farecard.opentransit.org/internal/routesource"
	"farecard.opentransit.org/internal/transit"
)

func main() {
	// Values from .env lose to real environment variables, which lose to
	// flags.
	_ = godotenv.Load()

	var cfg app.Config
	var apiKeysFlag, gtfsSource, routesFile string

	flag.IntVar(&cfg.Port, "port", envInt("PORT", 4000), "API server port")
	flag.StringVar(&cfg.Env, "env", envStr("ENV", "development"), "Environment (development|staging|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", envStr("API_KEYS", "test"), "Comma Separated API Keys (test, etc)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", envInt("RATE_LIMIT", 100), "Requests per second per API key (negative disables)")
	flag.StringVar(&gtfsSource, "gtfs-source", envStr("GTFS_SOURCE", ""), "URL or path of a static GTFS zip to derive route tables from")
	flag.StringVar(&routesFile, "routes-file", envStr("ROUTES_FILE", ""), "Path of a JSON route-tables document")
	flag.Parse()

	if apiKeysFlag != "" {
		cfg.ApiKeys = strings.Split(apiKeysFlag, ",")
		for i := range cfg.ApiKeys {
			cfg.ApiKeys[i] = strings.TrimSpace(cfg.ApiKeys[i])
		}
	}
	cfg.GTFSSource = gtfsSource

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	bus, subway, err := loadRouteTables(gtfsSource, routesFile)
	if err != nil {
		logger.Error("failed to load route tables", "error", err)
		os.Exit(1)
	}
	logger.Info("route tables loaded", "busRoutes", len(bus), "subwayRoutes", len(subway))

	schedule := fares.NewSchedule()
	store := cards.NewStore()

	application := &app.Application{
		Config:   cfg,
		Logger:   logger,
		Schedule: schedule,
		Network:  transit.NewNetwork(bus, subway),
		Cards:    store,
		Payments: payments.NewWorkflow(store, schedule, logger),
		Metrics:  metrics.NewCollector(),
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}

// loadRouteTables builds the initial route tables. A GTFS feed wins over a
// JSON document; with neither the engine starts empty and waits for the
// route-editing API.
func loadRouteTables(gtfsSource, routesFile string) (bus, subway transit.RouteMap, err error) {
	switch {
	case gtfsSource != "":
		return routesource.LoadGTFS(gtfsSource)
	case routesFile != "":
		b, err := os.ReadFile(routesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error reading routes file: %w", err)
		}
		var doc routesource.Document
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, nil, fmt.Errorf("error parsing routes file: %w", err)
		}
		if err := doc.Validate(); err != nil {
			return nil, nil, err
		}
		bus, subway = doc.Tables()
		return bus, subway, nil
	default:
		return transit.RouteMap{}, transit.RouteMap{}, nil
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
