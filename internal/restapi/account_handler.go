package restapi

import (
	"encoding/json"
	"net/http"
	"time"

	"farecard.opentransit.org/internal/models"
	"farecard.opentransit.org/internal/utils"
)

type createAccountRequest struct {
	ID string `json:"id"`
}

// createAccountHandler registers a rider account. Creating an existing
// account is a no-op and returns it unchanged.
func (api *RestAPI) createAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}
	if err := utils.ValidateName(req.ID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	account := api.Cards.EnsureAccount(req.ID)
	api.sendResponse(w, r, models.NewCreatedResponse(map[string]interface{}{
		"entry": models.AccountModel{ID: account.ID, CardNumbers: account.CardNumbers},
	}))
}

// accountHandler returns an account and summaries of its cards.
func (api *RestAPI) accountHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractParam(r, "id")
	if err := utils.ValidateName(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	account, err := api.Cards.Account(id)
	if err != nil {
		api.sendNotFound(w, r)
		return
	}

	accountCards, err := api.Cards.CardsForAccount(id)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	summaries := make([]models.CardSummary, 0, len(accountCards))
	for _, c := range accountCards {
		summaries = append(summaries, models.NewCardSummary(c))
	}

	api.sendResponse(w, r, models.NewEntryResponse(map[string]interface{}{
		"account": models.AccountModel{ID: account.ID, CardNumbers: account.CardNumbers},
		"cards":   summaries,
	}))
}

// accountCostHandler sums fare and pass spend across all of an account's
// cards between the calendar month of "start" and the calendar month of
// "end", inclusive, and averages it per month.
func (api *RestAPI) accountCostHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractParam(r, "id")
	if err := utils.ValidateName(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
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

	accountCards, err := api.Cards.CardsForAccount(id)
	if err != nil {
		api.sendNotFound(w, r)
		return
	}

	var total float64
	for _, c := range accountCards {
		total += c.TotalCostBetweenMonths(start, end)
	}
	months := monthSpan(start, end)
	average := 0.0
	if months > 0 {
		average = total / float64(months)
	}

	api.sendResponse(w, r, models.NewEntryResponse(map[string]interface{}{
		"accountId":      id,
		"total":          total,
		"months":         months,
		"monthlyAverage": average,
	}))
}

// monthSpan counts calendar months from the month of start through the month
// of end, inclusive. Zero when end's month precedes start's.
func monthSpan(start, end time.Time) int {
	n := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if n < 0 {
		return 0
	}
	return n
}
