package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/models"
	"farecard.opentransit.org/internal/utils"
)

type removeCardRequest struct {
	AccountID  string `json:"accountId"`
	TransferTo string `json:"transferTo"`
}

// cardRemoveHandler removes a card from its account, moving its balance (or
// debt) onto another card the account holds. An account keeps at least one
// card, and only the owner can remove one.
func (api *RestAPI) cardRemoveHandler(w http.ResponseWriter, r *http.Request) {
	number := utils.ExtractParam(r, "number")

	var req removeCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}

	fieldErrors := make(map[string][]string)
	if err := utils.ValidateCardNumber(number); err != nil {
		fieldErrors["number"] = append(fieldErrors["number"], err.Error())
	}
	if err := utils.ValidateCardNumber(req.TransferTo); err != nil {
		fieldErrors["transferTo"] = append(fieldErrors["transferTo"], err.Error())
	}
	if err := utils.ValidateName(req.AccountID); err != nil {
		fieldErrors["accountId"] = append(fieldErrors["accountId"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	err := api.Cards.RemoveCard(req.AccountID, number, req.TransferTo)
	switch {
	case err == nil:
	case errors.Is(err, cards.ErrAccountNotFound), errors.Is(err, cards.ErrCardNotFound):
		api.sendNotFound(w, r)
		return
	case errors.Is(err, cards.ErrNotCardOwner):
		api.errorResponse(w, r, http.StatusForbidden, "card does not belong to this account")
		return
	case errors.Is(err, cards.ErrSingleCard):
		api.errorResponse(w, r, http.StatusConflict, "cannot remove an account's only card")
		return
	default:
		api.serverErrorResponse(w, r, err)
		return
	}

	api.Logger.Info("card removed", "card", number, "account", req.AccountID, "transferTo", req.TransferTo)

	account, err := api.Cards.Account(req.AccountID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.AccountModel{
		ID:          account.ID,
		CardNumbers: account.CardNumbers,
	}))
}
