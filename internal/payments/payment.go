// Package payments implements the pending/confirmed/rejected approval
// workflow for money movement: loading value onto a card and buying a new
// card. Requests take effect only when an external approver confirms them.
package payments

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPaymentNotFound reports a confirm/reject for an id that is not
	// pending: unknown, or already resolved. Resolution happens exactly
	// once.
	ErrPaymentNotFound = errors.New("no pending payment with this transaction id")
	// ErrInvalidLoadAmount restricts load-value requests to the sold
	// denominations.
	ErrInvalidLoadAmount = errors.New("load amount must be 10, 20, 50 or 100")
	// ErrInvalidInstrument reports unusable payment-instrument data.
	ErrInvalidInstrument = errors.New("invalid payment instrument")
)

// Kind is the closed set of money-movement request types.
type Kind string

const (
	KindLoadValue Kind = "loadValue"
	KindBuyCard   Kind = "buyCard"
)

// Status tracks a payment through its lifecycle. Pending transitions to
// exactly one of Accepted or Rejected, driven externally.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Instrument is the payment-instrument data supplied with a request. Only
// the masked form is ever retained or exposed.
type Instrument struct {
	Holder string `json:"holder"`
	Number string `json:"number"`
	CVV    string `json:"cvv"`
}

// Masked renders the instrument with all but the last four digits hidden.
func (i Instrument) Masked() (string, error) {
	if len(i.Number) < 4 {
		return "", fmt.Errorf("%w: card number too short", ErrInvalidInstrument)
	}
	return "xxxx-xxxx-xxxx-" + i.Number[len(i.Number)-4:], nil
}

// Payment is one money-movement request.
type Payment struct {
	TransactionID string    `json:"transactionId"`
	Kind          Kind      `json:"kind"`
	Status        Status    `json:"status"`
	Amount        float64   `json:"amount"`
	Instrument    string    `json:"instrument"` // masked
	CardNumber    string    `json:"cardNumber,omitempty"`
	AccountID     string    `json:"accountId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	ResolvedAt    time.Time `json:"resolvedAt,omitempty"`
}
