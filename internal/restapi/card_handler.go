package restapi

import (
	"net/http"
	"time"

	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/models"
	"farecard.opentransit.org/internal/utils"
)

// cardHandler returns the card summary: balance, status, pass coverage.
func (api *RestAPI) cardHandler(w http.ResponseWriter, r *http.Request) {
	card, ok := api.lookupCard(w, r)
	if !ok {
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewCardSummary(card)))
}

// cardTripsHandler returns the card's most recent trips, newest first. The
// "n" query parameter bounds the count; riders usually want their last three.
func (api *RestAPI) cardTripsHandler(w http.ResponseWriter, r *http.Request) {
	card, ok := api.lookupCard(w, r)
	if !ok {
		return
	}

	n, fieldErrors := utils.ParseIntParam(r.URL.Query(), "n", 3, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if n < 0 {
		n = 0
	}

	trips := card.LastTrips(n)
	api.sendResponse(w, r, models.NewListResponse(models.NewTripModels(trips)))
}

// cardTransactionsHandler returns fare and pass ledger entries in a time
// range.
func (api *RestAPI) cardTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	card, ok := api.lookupCard(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	fieldErrors := make(map[string][]string)
	start, fieldErrors := utils.ParseTimeParam(params, "start", time.Time{}, fieldErrors)
	end, fieldErrors := utils.ParseTimeParam(params, "end", time.Now(), fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	fareTx, passTx := card.Transactions(start, end)
	api.sendResponse(w, r, models.NewOKResponse(map[string]interface{}{
		"fares":  models.NewTransactionModels(fareTx),
		"passes": models.NewTransactionModels(passTx),
	}))
}

// cardCostHandler returns the total spend between the calendar month of
// "start" and the calendar month of "end", inclusive.
func (api *RestAPI) cardCostHandler(w http.ResponseWriter, r *http.Request) {
	card, ok := api.lookupCard(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	fieldErrors := make(map[string][]string)
	now := time.Now()
	start, fieldErrors := utils.ParseTimeParam(params, "start", now, fieldErrors)
	end, fieldErrors := utils.ParseTimeParam(params, "end", now, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	total := card.TotalCostBetweenMonths(start, end)
	api.sendResponse(w, r, models.NewEntryResponse(map[string]interface{}{
		"cardNumber": card.Number(),
		"total":      total,
	}))
}

// lookupCard resolves the :number path parameter to a card, writing the
// error response itself when it cannot.
func (api *RestAPI) lookupCard(w http.ResponseWriter, r *http.Request) (*cards.Card, bool) {
	number := utils.ExtractParam(r, "number")
	if err := utils.ValidateCardNumber(number); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"number": {err.Error()}})
		return nil, false
	}

	c, err := api.Cards.Card(number)
	if err != nil {
		api.sendNotFound(w, r)
		return nil, false
	}
	return c, true
}
