package restapi

import (
	"encoding/json"
	"net/http"

	"farecard.opentransit.org/internal/fares"
	"farecard.opentransit.org/internal/models"
)

// scheduleHandler returns the current fare schedule.
func (api *RestAPI) scheduleHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(api.Schedule.Snapshot()))
}

type updateScheduleRequest struct {
	Rates map[fares.Rate]float64 `json:"rates"`
}

// updateScheduleHandler applies rate changes. All-or-nothing: one bad rate
// rejects the whole request before anything is applied.
func (api *RestAPI) updateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	var req updateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}
	if len(req.Rates) == 0 {
		api.validationErrorResponse(w, r, map[string][]string{"rates": {"no rates given"}})
		return
	}

	current := api.Schedule.Snapshot()
	fieldErrors := make(map[string][]string)
	for rate, amount := range req.Rates {
		if _, known := current[rate]; !known {
			fieldErrors[string(rate)] = append(fieldErrors[string(rate)], "unknown rate")
		}
		if amount < 0 {
			fieldErrors[string(rate)] = append(fieldErrors[string(rate)], "rate must be non-negative")
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	for rate, amount := range req.Rates {
		if err := api.Schedule.Set(rate, amount); err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		api.Logger.Info("fare rate changed", "rate", string(rate), "amount", amount)
	}

	api.sendResponse(w, r, models.NewEntryResponse(api.Schedule.Snapshot()))
}
