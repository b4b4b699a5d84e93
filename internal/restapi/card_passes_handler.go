package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/models"
)

// cardPassesHandler lists the passes currently covering the card.
func (api *RestAPI) cardPassesHandler(w http.ResponseWriter, r *http.Request) {
	card, ok := api.lookupCard(w, r)
	if !ok {
		return
	}

	passes := card.ValidPasses(time.Now())
	api.sendResponse(w, r, models.NewListResponse(models.NewPassModels(passes)))
}

type buyPassRequest struct {
	Days int `json:"days"`
}

// buyPassHandler sells a weekly or monthly pass, charging the card balance.
func (api *RestAPI) buyPassHandler(w http.ResponseWriter, r *http.Request) {
	card, ok := api.lookupCard(w, r)
	if !ok {
		return
	}

	var req buyPassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}

	now := time.Now()
	pass, err := cards.NewTransitPass(now, req.Days, api.Schedule)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"days": {"pass duration must be 7 or 30 days, got " + strconv.Itoa(req.Days)},
		})
		return
	}

	if err := card.AddPass(now, pass); err != nil {
		if errors.Is(err, cards.ErrLowBalance) {
			api.errorResponse(w, r, http.StatusPaymentRequired, "balance too low")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.Metrics.PassesSold.WithLabelValues(string(pass.Type)).Inc()
	api.Logger.Info("pass sold", "card", card.Number(), "type", string(pass.Type), "price", pass.Price)

	api.sendResponse(w, r, models.NewCreatedResponse(map[string]interface{}{
		"pass":    models.NewPassModels([]*cards.TransitPass{pass})[0],
		"balance": card.Balance(),
	}))
}
