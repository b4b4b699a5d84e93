package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

// validateAPIKey guards the admin surface: schedule and route edits, and
// payment resolution.
func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers every endpoint on the router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	// Fare gates
	router.HandlerFunc(http.MethodPost, "/api/fare/tap", api.tapHandler)

	// Card service
	router.HandlerFunc(http.MethodGet, "/api/fare/card/:number", api.cardHandler)
	router.HandlerFunc(http.MethodGet, "/api/fare/card/:number/trips", api.cardTripsHandler)
	router.HandlerFunc(http.MethodGet, "/api/fare/card/:number/transactions", api.cardTransactionsHandler)
	router.HandlerFunc(http.MethodGet, "/api/fare/card/:number/cost", api.cardCostHandler)
	router.HandlerFunc(http.MethodGet, "/api/fare/card/:number/passes", api.cardPassesHandler)
	router.HandlerFunc(http.MethodPost, "/api/fare/card/:number/passes", api.buyPassHandler)
	router.HandlerFunc(http.MethodPost, "/api/fare/card/:number/activate", api.cardActivateHandler)
	router.HandlerFunc(http.MethodPost, "/api/fare/card/:number/deactivate", api.cardDeactivateHandler)
	router.HandlerFunc(http.MethodPost, "/api/fare/card/:number/remove", api.cardRemoveHandler)

	// Rider accounts
	router.HandlerFunc(http.MethodPost, "/api/fare/accounts", api.createAccountHandler)
	router.HandlerFunc(http.MethodGet, "/api/fare/accounts/:id", api.accountHandler)
	router.HandlerFunc(http.MethodGet, "/api/fare/accounts/:id/cost", api.accountCostHandler)

	// Payments
	router.HandlerFunc(http.MethodPost, "/api/fare/payments/load-value", api.createLoadValueHandler)
	router.HandlerFunc(http.MethodPost, "/api/fare/payments/buy-card", api.createBuyCardHandler)
	router.Handler(http.MethodGet, "/api/fare/payments/pending", validateAPIKey(api, api.pendingPaymentsHandler))
	router.Handler(http.MethodGet, "/api/fare/payments/resolved", validateAPIKey(api, api.resolvedPaymentsHandler))
	router.Handler(http.MethodPost, "/api/fare/payment/:id/confirm", validateAPIKey(api, api.confirmPaymentHandler))
	router.Handler(http.MethodPost, "/api/fare/payment/:id/reject", validateAPIKey(api, api.rejectPaymentHandler))

	// Network
	router.HandlerFunc(http.MethodGet, "/api/fare/route-plan", api.routePlanHandler)
	router.HandlerFunc(http.MethodGet, "/api/fare/routes", api.routeTablesHandler)
	router.Handler(http.MethodPut, "/api/fare/routes", validateAPIKey(api, api.updateRouteTablesHandler))

	// Fare schedule
	router.HandlerFunc(http.MethodGet, "/api/fare/schedule", api.scheduleHandler)
	router.Handler(http.MethodPut, "/api/fare/schedule", validateAPIKey(api, api.updateScheduleHandler))

	router.HandlerFunc(http.MethodGet, "/api/fare/current-time.json", api.currentTimeHandler)

	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
}

// Handler wires the router into the full middleware chain.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var h http.Handler = router
	h = NewRequestLoggingMiddleware(api.Logger)(h)
	if api.rateLimiter != nil {
		h = api.rateLimiter(h)
	}
	h = CompressionMiddleware(h)
	h = api.WithSecurityHeaders(h)
	return h
}
