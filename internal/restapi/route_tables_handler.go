package restapi

import (
	"encoding/json"
	"net/http"

	"farecard.opentransit.org/internal/models"
	"farecard.opentransit.org/internal/routesource"
)

// routeTablesHandler returns the route tables the fare engine is currently
// charging against.
func (api *RestAPI) routeTablesHandler(w http.ResponseWriter, r *http.Request) {
	bus, subway := api.Network.Current().RouteTables()
	api.sendResponse(w, r, models.NewEntryResponse(routesource.Document{
		BusRoutes:    bus,
		SubwayRoutes: subway,
	}))
}

// updateRouteTablesHandler swaps in a new set of route tables. Taps already
// in flight keep the index they started with; the next tap sees the new
// network.
func (api *RestAPI) updateRouteTablesHandler(w http.ResponseWriter, r *http.Request) {
	var doc routesource.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}
	if err := doc.Validate(); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"routes": {err.Error()}})
		return
	}

	bus, subway := doc.Tables()
	api.Network.Rebuild(bus, subway)
	api.Metrics.GraphRebuilds.Inc()
	api.Logger.Info("route tables rebuilt", "busRoutes", len(bus), "subwayRoutes", len(subway))

	api.sendResponse(w, r, models.NewEntryResponse(doc))
}
