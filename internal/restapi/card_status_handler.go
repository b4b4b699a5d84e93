package restapi

import (
	"net/http"

	"farecard.opentransit.org/internal/models"
)

// cardActivateHandler reinstates a suspended card.
func (api *RestAPI) cardActivateHandler(w http.ResponseWriter, r *http.Request) {
	api.setCardStatus(w, r, true)
}

// cardDeactivateHandler suspends a card, typically reported lost or stolen.
// A suspended card refuses every tap until reinstated.
func (api *RestAPI) cardDeactivateHandler(w http.ResponseWriter, r *http.Request) {
	api.setCardStatus(w, r, false)
}

func (api *RestAPI) setCardStatus(w http.ResponseWriter, r *http.Request, active bool) {
	card, ok := api.lookupCard(w, r)
	if !ok {
		return
	}

	card.SetActivated(active)
	api.Logger.Info("card status changed", "card", card.Number(), "activated", active)

	api.sendResponse(w, r, models.NewEntryResponse(models.NewCardSummary(card)))
}
