// Package restapi exposes the fare engine over HTTP: tap processing, card
// service, the payment approval workflow, itinerary planning, and the admin
// surface for fare schedule and route-table edits.
package restapi

import (
	"net/http"
	"time"

	"farecard.opentransit.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}
