package restapi

import (
	"errors"
	"net/http"

	"farecard.opentransit.org/internal/models"
	"farecard.opentransit.org/internal/transit"
	"farecard.opentransit.org/internal/utils"
)

// routePlanHandler computes the shortest itinerary between two stations.
// The "scope" parameter chooses the graph: "subway" (default) plans over
// subway lines only, "all" plans over every route.
func (api *RestAPI) routePlanHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	from := params.Get("from")
	to := params.Get("to")

	fieldErrors := make(map[string][]string)
	if err := utils.ValidateName(from); err != nil {
		fieldErrors["from"] = append(fieldErrors["from"], err.Error())
	}
	if err := utils.ValidateName(to); err != nil {
		fieldErrors["to"] = append(fieldErrors["to"], err.Error())
	}
	scope := transit.ScopeSubway
	switch params.Get("scope") {
	case "", "subway":
	case "all":
		scope = transit.ScopeAll
	default:
		fieldErrors["scope"] = append(fieldErrors["scope"], `scope must be "subway" or "all"`)
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.Metrics.PlanRequests.Inc()

	plan, err := api.Network.Current().Graph(scope).PlanRoute(from, to)
	if err != nil {
		if errors.Is(err, transit.ErrRouteNotFound) {
			api.errorResponse(w, r, http.StatusNotFound, "no route between these stations")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(map[string]interface{}{
		"plan":       plan,
		"directions": plan.Directions(),
	}))
}
