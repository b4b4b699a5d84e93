package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/models"
	"farecard.opentransit.org/internal/payments"
	"farecard.opentransit.org/internal/utils"
)

type loadValueRequest struct {
	CardNumber string              `json:"cardNumber"`
	Amount     float64             `json:"amount"`
	Instrument payments.Instrument `json:"instrument"`
}

// createLoadValueHandler queues a load-value request. Money moves only when
// an approver confirms it.
func (api *RestAPI) createLoadValueHandler(w http.ResponseWriter, r *http.Request) {
	var req loadValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}
	if err := utils.ValidateCardNumber(req.CardNumber); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"cardNumber": {err.Error()}})
		return
	}

	payment, err := api.Payments.CreateLoadValue(time.Now(), req.CardNumber, req.Amount, req.Instrument)
	if err != nil {
		api.refusePayment(w, r, err)
		return
	}

	api.Metrics.PaymentsCreated.WithLabelValues(string(payment.Kind)).Inc()
	api.Metrics.PaymentsPending.Inc()
	api.sendResponse(w, r, models.NewCreatedResponse(map[string]interface{}{"entry": payment}))
}

type buyCardRequest struct {
	AccountID  string              `json:"accountId"`
	Instrument payments.Instrument `json:"instrument"`
}

// createBuyCardHandler queues a new-card purchase for an account. On
// confirmation the account gets a fresh card with the standard opening
// balance.
func (api *RestAPI) createBuyCardHandler(w http.ResponseWriter, r *http.Request) {
	var req buyCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"invalid JSON body"}})
		return
	}
	if err := utils.ValidateName(req.AccountID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"accountId": {err.Error()}})
		return
	}

	payment, err := api.Payments.CreateBuyCard(time.Now(), req.AccountID, req.Instrument)
	if err != nil {
		api.refusePayment(w, r, err)
		return
	}

	api.Metrics.PaymentsCreated.WithLabelValues(string(payment.Kind)).Inc()
	api.Metrics.PaymentsPending.Inc()
	api.sendResponse(w, r, models.NewCreatedResponse(map[string]interface{}{"entry": payment}))
}

// pendingPaymentsHandler lists unresolved payments, oldest first.
func (api *RestAPI) pendingPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(api.Payments.Pending()))
}

// resolvedPaymentsHandler lists resolved payments in resolution order.
func (api *RestAPI) resolvedPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(api.Payments.Resolved()))
}

// confirmPaymentHandler accepts a pending payment and applies its effect.
func (api *RestAPI) confirmPaymentHandler(w http.ResponseWriter, r *http.Request) {
	api.resolvePayment(w, r, api.Payments.Confirm)
}

// rejectPaymentHandler rejects a pending payment; nothing moves.
func (api *RestAPI) rejectPaymentHandler(w http.ResponseWriter, r *http.Request) {
	api.resolvePayment(w, r, api.Payments.Reject)
}

func (api *RestAPI) resolvePayment(w http.ResponseWriter, r *http.Request, resolve func(string, time.Time) (*payments.Payment, error)) {
	id := utils.ExtractParam(r, "id")

	payment, err := resolve(id, time.Now())
	switch {
	case err == nil:
	case errors.Is(err, payments.ErrPaymentNotFound):
		api.sendNotFound(w, r)
		return
	case errors.Is(err, cards.ErrCardNotFound):
		// The card vanished while the payment waited; it stays pending so
		// the approver can reject it instead.
		api.errorResponse(w, r, http.StatusConflict, "card no longer exists")
		return
	default:
		api.serverErrorResponse(w, r, err)
		return
	}

	api.Metrics.PaymentsResolved.WithLabelValues(string(payment.Kind), string(payment.Status)).Inc()
	api.Metrics.PaymentsPending.Dec()
	if payment.Kind == payments.KindBuyCard && payment.Status == payments.StatusAccepted {
		api.Metrics.CardsIssued.Inc()
	}

	api.sendResponse(w, r, models.NewEntryResponse(payment))
}

func (api *RestAPI) refusePayment(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, payments.ErrInvalidLoadAmount):
		api.validationErrorResponse(w, r, map[string][]string{"amount": {err.Error()}})
	case errors.Is(err, payments.ErrInvalidInstrument):
		api.validationErrorResponse(w, r, map[string][]string{"instrument": {err.Error()}})
	case errors.Is(err, cards.ErrCardNotFound):
		api.sendNotFound(w, r)
	default:
		api.serverErrorResponse(w, r, err)
	}
}
