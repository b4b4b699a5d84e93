package payments

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/fares"
)

// Workflow owns the pending-payment queue. Enqueue and resolution are
// serialized; a given transaction id resolves exactly once.
type Workflow struct {
	mu       sync.Mutex
	pending  map[string]*Payment
	resolved []*Payment

	store    *cards.Store
	schedule *fares.Schedule
	logger   *slog.Logger
}

// NewWorkflow wires the workflow to the card store it mutates on confirmed
// payments.
func NewWorkflow(store *cards.Store, schedule *fares.Schedule, logger *slog.Logger) *Workflow {
	return &Workflow{
		pending:  make(map[string]*Payment),
		store:    store,
		schedule: schedule,
		logger:   logger,
	}
}

// CreateLoadValue enqueues a pending request to load value onto a card.
// Only the sold denominations are accepted.
func (w *Workflow) CreateLoadValue(now time.Time, cardNumber string, amount float64, instrument Instrument) (*Payment, error) {
	if amount != 10 && amount != 20 && amount != 50 && amount != 100 {
		return nil, ErrInvalidLoadAmount
	}
	if _, err := w.store.Card(cardNumber); err != nil {
		return nil, err
	}
	masked, err := instrument.Masked()
	if err != nil {
		return nil, err
	}

	p := &Payment{
		TransactionID: uuid.NewString(),
		Kind:          KindLoadValue,
		Status:        StatusPending,
		Amount:        amount,
		Instrument:    masked,
		CardNumber:    cardNumber,
		CreatedAt:     now,
	}
	w.enqueue(p)
	return p, nil
}

// CreateBuyCard enqueues a pending request to buy a new card for an
// account. The amount covers the card itself plus its opening balance.
func (w *Workflow) CreateBuyCard(now time.Time, accountID string, instrument Instrument) (*Payment, error) {
	masked, err := instrument.Masked()
	if err != nil {
		return nil, err
	}

	p := &Payment{
		TransactionID: uuid.NewString(),
		Kind:          KindBuyCard,
		Status:        StatusPending,
		Amount:        w.schedule.Get(fares.RateNewCard) + w.schedule.Get(fares.RateCardInitValue),
		Instrument:    masked,
		AccountID:     accountID,
		CreatedAt:     now,
	}
	w.enqueue(p)
	return p, nil
}

func (w *Workflow) enqueue(p *Payment) {
	w.mu.Lock()
	w.pending[p.TransactionID] = p
	w.mu.Unlock()
	w.logger.Info("payment created",
		"transaction_id", p.TransactionID,
		"kind", string(p.Kind),
		"amount", p.Amount)
}

// Confirm resolves a pending payment as accepted and applies its side
// effect: a load-value credits the card, a buy-card issues a new card for
// the account. Unknown or already-resolved ids return ErrPaymentNotFound.
func (w *Workflow) Confirm(transactionID string, now time.Time) (*Payment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.pending[transactionID]
	if !ok {
		return nil, ErrPaymentNotFound
	}

	switch p.Kind {
	case KindLoadValue:
		card, err := w.store.Card(p.CardNumber)
		if err != nil {
			// The card was removed while the payment waited; leave the
			// request pending for the approver to reject.
			return nil, err
		}
		card.AddBalance(p.Amount)
	case KindBuyCard:
		card := w.store.IssueCard(p.AccountID, w.schedule.Get(fares.RateCardInitValue))
		p.CardNumber = card.Number()
	}

	delete(w.pending, transactionID)
	p.Status = StatusAccepted
	p.ResolvedAt = now
	w.resolved = append(w.resolved, p)
	w.logger.Info("payment accepted",
		"transaction_id", p.TransactionID,
		"kind", string(p.Kind),
		"amount", p.Amount)
	return p, nil
}

// Reject resolves a pending payment as rejected. No side effect runs.
func (w *Workflow) Reject(transactionID string, now time.Time) (*Payment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.pending[transactionID]
	if !ok {
		return nil, ErrPaymentNotFound
	}

	delete(w.pending, transactionID)
	p.Status = StatusRejected
	p.ResolvedAt = now
	w.resolved = append(w.resolved, p)
	w.logger.Info("payment rejected",
		"transaction_id", p.TransactionID,
		"kind", string(p.Kind))
	return p, nil
}

// Pending lists the queue in creation order.
func (w *Workflow) Pending() []*Payment {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Payment, 0, len(w.pending))
	for _, p := range w.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Resolved lists finalized payments in resolution order.
func (w *Workflow) Resolved() []*Payment {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Payment, len(w.resolved))
	copy(out, w.resolved)
	return out
}
