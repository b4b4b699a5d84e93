package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/logging"
	"farecard.opentransit.org/internal/models"
	"farecard.opentransit.org/internal/utils"
)

type tapRequest struct {
	CardNumber string `json:"cardNumber"`
	Station    string `json:"station"`
	Route      string `json:"route"`
	Direction  string `json:"direction"`
	// Time is optional; fare gates that batch events upload the tap time,
	// everything else defaults to now.
	Time string `json:"time,omitempty"`
}

// tapHandler processes one fare-gate tap event.
func (api *RestAPI) tapHandler(w http.ResponseWriter, r *http.Request) {
	var req tapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}

	fieldErrors := make(map[string][]string)
	if err := utils.ValidateCardNumber(req.CardNumber); err != nil {
		fieldErrors["cardNumber"] = append(fieldErrors["cardNumber"], err.Error())
	}
	if err := utils.ValidateName(req.Station); err != nil {
		fieldErrors["station"] = append(fieldErrors["station"], err.Error())
	}
	if err := utils.ValidateName(req.Route); err != nil {
		fieldErrors["route"] = append(fieldErrors["route"], err.Error())
	}
	dir := cards.Direction(req.Direction)
	if dir != cards.DirectionIn && dir != cards.DirectionOut {
		fieldErrors["direction"] = append(fieldErrors["direction"], `direction must be "in" or "out"`)
	}
	now := time.Now()
	if req.Time != "" {
		parsed, err := time.Parse(time.RFC3339, req.Time)
		if err != nil {
			fieldErrors["time"] = append(fieldErrors["time"], "time must be RFC 3339")
		} else {
			now = parsed
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	card, err := api.Cards.Card(req.CardNumber)
	if err != nil {
		api.Metrics.TapRefusals.WithLabelValues("cardNotFound").Inc()
		api.sendNotFound(w, r)
		return
	}

	result, err := card.Tap(now, req.Station, req.Route, dir, api.Network.Current(), api.Schedule)
	if err != nil {
		api.refuseTap(w, r, err)
		return
	}

	api.recordTap(req, result)
	logging.LogTap(api.Logger, req.CardNumber, req.Station, req.Route, string(dir), string(result.Outcome), result.Charged)

	api.sendResponse(w, r, models.NewEntryResponse(result))
}

func (api *RestAPI) refuseTap(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cards.ErrLowBalance):
		api.Metrics.TapRefusals.WithLabelValues("lowBalance").Inc()
		api.errorResponse(w, r, http.StatusPaymentRequired, "balance too low")
	case errors.Is(err, cards.ErrCardSuspended):
		api.Metrics.TapRefusals.WithLabelValues("suspended").Inc()
		api.errorResponse(w, r, http.StatusForbidden, "card is suspended")
	case errors.Is(err, cards.ErrUnknownRoute):
		api.Metrics.TapRefusals.WithLabelValues("unknownRoute").Inc()
		api.errorResponse(w, r, http.StatusBadRequest, "unknown route")
	default:
		api.serverErrorResponse(w, r, err)
	}
}

func (api *RestAPI) recordTap(req tapRequest, result cards.TapResult) {
	api.Metrics.Taps.WithLabelValues(req.Direction, string(result.Outcome)).Inc()
	api.Metrics.AmountCharged.Add(result.Charged)
	switch result.Outcome {
	case cards.OutcomeForceSettled, cards.OutcomeUnmatchedExit, cards.OutcomeWrongRouteExit:
		api.Metrics.FinesCharged.Inc()
	default:
		if result.Charged > 0 {
			api.Metrics.FaresCharged.Inc()
		}
	}
}
