// Package cards implements the per-rider fare card: balance, passes,
// transaction ledgers, and the tap state machine that turns tap events into
// trips and settlements.
package cards

import (
	"errors"
	"sync"
	"time"

	"farecard.opentransit.org/internal/fares"
	"farecard.opentransit.org/internal/transit"
	"farecard.opentransit.org/internal/trips"
)

var (
	// ErrLowBalance refuses a tap-in (or pass purchase) the balance cannot
	// support.
	ErrLowBalance = errors.New("balance too low")
	// ErrCardSuspended refuses every tap on a deactivated card.
	ErrCardSuspended = errors.New("card is suspended")
	// ErrUnknownRoute refuses a tap naming a route no table knows.
	ErrUnknownRoute = errors.New("unknown route")
)

// Direction is the side of the fare gate a tap happened on.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Outcome says what a tap did. Refusals are errors; every Outcome is a tap
// that went through, possibly with a penalty.
type Outcome string

const (
	// OutcomeEntered: tap-in opened the first leg of a new trip.
	OutcomeEntered Outcome = "entered"
	// OutcomeContinued: tap-in extended the current trip.
	OutcomeContinued Outcome = "continued"
	// OutcomeStartedNew: the current trip could not continue here, a fresh
	// trip started.
	OutcomeStartedNew Outcome = "startedNew"
	// OutcomeForceSettled: rider tapped in twice without tapping out; the
	// abandoned leg settled at the fine and a fresh trip started.
	OutcomeForceSettled Outcome = "forceSettled"
	// OutcomeExited: tap-out closed the open leg normally.
	OutcomeExited Outcome = "exited"
	// OutcomeUnmatchedExit: tap-out with nothing to close; fined.
	OutcomeUnmatchedExit Outcome = "unmatchedExit"
	// OutcomeWrongRouteExit: tap-out on an incompatible route; fined and
	// the trip force-closed.
	OutcomeWrongRouteExit Outcome = "wrongRouteExit"
)

// TapResult reports what a tap charged and where it left the card.
type TapResult struct {
	Outcome Outcome `json:"outcome"`
	Charged float64 `json:"charged"`
	Balance float64 `json:"balance"`
}

// Transaction is one timestamped ledger entry.
type Transaction struct {
	Time   time.Time `json:"time"`
	Amount float64   `json:"amount"`
}

// Card is a rider's fare card. All mutation happens under the card's own
// mutex; a tap reads and writes the open trip, the balance, and the ledger
// as one atomic unit.
type Card struct {
	mu sync.Mutex

	number    string
	accountID string
	balance   float64
	activated bool

	current  *trips.Trip
	allTrips []*trips.Trip

	fareLog []Transaction
	passLog []Transaction
	passes  []*TransitPass
}

// NewCard creates an activated card with the given opening balance.
func NewCard(number, accountID string, balance float64) *Card {
	return &Card{
		number:    number,
		accountID: accountID,
		balance:   balance,
		activated: true,
	}
}

// Number returns the card's unique number.
func (c *Card) Number() string { return c.number }

// AccountID returns the owning rider account.
func (c *Card) AccountID() string { return c.accountID }

// Balance returns the current balance. It may be negative: fares and fines
// are allowed to overdraft, and the debt blocks the next tap-in.
func (c *Card) Balance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance
}

// Activated reports whether the card accepts taps.
func (c *Card) Activated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activated
}

// SetActivated suspends or reinstates the card.
func (c *Card) SetActivated(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activated = active
}

// AddBalance credits the card (confirmed load-value payments, balance
// transfers from removed cards).
func (c *Card) AddBalance(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance += amount
}

// Tap runs the tap state machine for one tap event.
//
// Preconditions are checked in order and refuse the tap outright, mutating
// nothing: a negative balance refuses tap-ins with ErrLowBalance, a
// suspended card refuses everything with ErrCardSuspended, and a route no
// table knows refuses with ErrUnknownRoute.
func (c *Card) Tap(now time.Time, station, route string, dir Direction, ix *transit.Index, schedule *fares.Schedule) (TapResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.balance < 0 {
		return TapResult{}, ErrLowBalance
	}
	if !c.activated {
		return TapResult{}, ErrCardSuspended
	}

	var kind trips.Kind
	switch {
	case ix.IsBusRoute(route):
		kind = trips.KindBus
	case ix.IsSubwayRoute(route):
		kind = trips.KindSubway
	default:
		return TapResult{}, ErrUnknownRoute
	}

	if dir == DirectionIn {
		return c.tapIn(now, station, route, kind, schedule), nil
	}
	return c.tapOut(now, station, route, ix, schedule), nil
}

// tapIn opens a new leg and decides how it relates to the current trip.
// Bus fares are flat and known now, so bus legs settle immediately; subway
// fares depend on the exit station and wait for tap-out.
func (c *Card) tapIn(now time.Time, station, route string, kind trips.Kind, schedule *fares.Schedule) TapResult {
	leg := trips.NewSubTrip(kind, now, station, route)
	result := TapResult{Outcome: OutcomeEntered}

	switch {
	case c.current == nil:
		c.startTrip(leg)
	default:
		err := c.current.Append(leg)
		switch {
		case err == nil:
			result.Outcome = OutcomeContinued
		case errors.Is(err, trips.ErrCannotContinue):
			// Different station or stale window: the old journey is done.
			c.startTrip(leg)
			result.Outcome = OutcomeStartedNew
		case errors.Is(err, trips.ErrLegEnRoute):
			// Re-entry without exit. The abandoned leg settles at the fine
			// (whatever the ride would have cost) and a fresh trip begins.
			open := c.current.Tail()
			open.Fare = c.pay(schedule.Get(fares.RateFine), now)
			result.Charged += open.Fare
			c.startTrip(leg)
			result.Outcome = OutcomeForceSettled
		}
	}

	if kind == trips.KindBus {
		fare := c.capFare(schedule.Get(fares.RateBusFare), schedule)
		leg.Fare = c.pay(fare, now)
		result.Charged += leg.Fare
	}

	result.Balance = c.balance
	return result
}

// tapOut closes the open leg, or charges the fine when there is nothing
// coherent to close.
func (c *Card) tapOut(now time.Time, station, route string, ix *transit.Index, schedule *fares.Schedule) TapResult {
	result := TapResult{}

	if c.current == nil {
		result.Outcome = OutcomeUnmatchedExit
		result.Charged = c.pay(schedule.Get(fares.RateFine), now)
		result.Balance = c.balance
		return result
	}

	tail := c.current.Tail()
	err := tail.Finish(now, station, route, ix)
	switch {
	case err == nil:
		result.Outcome = OutcomeExited
		if tail.Kind == trips.KindSubway {
			fare, _ := tail.ComputeFare(schedule)
			fare = c.capFare(fare, schedule)
			tail.Fare = c.pay(fare, now)
			result.Charged = tail.Fare
		}
	case errors.Is(err, trips.ErrLegNotEnRoute):
		// Tail already closed: this exit matches no entry.
		result.Outcome = OutcomeUnmatchedExit
		result.Charged = c.pay(schedule.Get(fares.RateFine), now)
	case errors.Is(err, trips.ErrExitWrongRoute):
		// Fine the leg and close the whole trip so the next tap-in starts
		// fresh instead of continuing a corrupted chain.
		result.Outcome = OutcomeWrongRouteExit
		tail.Fare = c.pay(schedule.Get(fares.RateFine), now)
		result.Charged = tail.Fare
		c.current = nil
	}

	result.Balance = c.balance
	return result
}

// startTrip makes leg the head of a new current trip. The old trip, if any,
// stays in the history as-is.
func (c *Card) startTrip(leg *trips.SubTrip) {
	c.current = trips.NewTrip(leg)
	c.allTrips = append(c.allTrips, c.current)
}

// capFare clips a candidate fare so the current trip's settled total never
// exceeds the cap.
func (c *Card) capFare(candidate float64, schedule *fares.Schedule) float64 {
	if c.current == nil {
		return candidate
	}
	max := schedule.Get(fares.RateMaxFare)
	if total := c.current.TotalFare(); total+candidate > max {
		candidate = max - total
		if candidate < 0 {
			candidate = 0
		}
	}
	return candidate
}

// pay charges the amount against the balance and records it in the fare
// ledger. A valid pass reduces any settlement, fines included, to zero.
// Returns the amount actually charged. Callers hold c.mu.
func (c *Card) pay(amount float64, now time.Time) float64 {
	if c.hasValidPass(now) {
		amount = 0
	}
	c.balance -= amount
	c.fareLog = append(c.fareLog, Transaction{Time: now, Amount: amount})
	return amount
}

// hasValidPass reports whether any pass covers now, pruning expired passes
// as a side effect. Callers hold c.mu.
func (c *Card) hasValidPass(now time.Time) bool {
	kept := c.passes[:0]
	valid := false
	for _, p := range c.passes {
		if p.Expired(now) {
			continue
		}
		kept = append(kept, p)
		if p.Valid(now) {
			valid = true
		}
	}
	c.passes = kept
	return valid
}

// HasValidPass reports whether the card rides free at the given time.
func (c *Card) HasValidPass(at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasValidPass(at)
}

// AddPass sells a pass to this card, charging its price against the balance
// and recording the purchase in the pass ledger.
func (c *Card) AddPass(now time.Time, pass *TransitPass) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pass.Price > c.balance {
		return ErrLowBalance
	}
	c.balance -= pass.Price
	c.passLog = append(c.passLog, Transaction{Time: now, Amount: pass.Price})
	c.passes = append(c.passes, pass)
	return nil
}

// ValidPasses returns the passes covering the given time.
func (c *Card) ValidPasses(at time.Time) []*TransitPass {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*TransitPass
	for _, p := range c.passes {
		if p.Valid(at) {
			out = append(out, p)
		}
	}
	return out
}

// LastTrips returns up to n most recent trips, newest first. The trips are
// snapshots: later taps on the card do not show through them.
func (c *Card) LastTrips(n int) []*trips.Trip {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > len(c.allTrips) {
		n = len(c.allTrips)
	}
	out := make([]*trips.Trip, 0, n)
	for i := len(c.allTrips) - 1; i >= len(c.allTrips)-n; i-- {
		out = append(out, c.allTrips[i].Snapshot())
	}
	return out
}

// Transactions returns fare and pass ledger entries between the two
// timestamps, inclusive.
func (c *Card) Transactions(start, end time.Time) (fareTx, passTx []Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tx := range c.fareLog {
		if !tx.Time.Before(start) && !tx.Time.After(end) {
			fareTx = append(fareTx, tx)
		}
	}
	for _, tx := range c.passLog {
		if !tx.Time.Before(start) && !tx.Time.After(end) {
			passTx = append(passTx, tx)
		}
	}
	return fareTx, passTx
}

// TotalCostBetweenMonths sums fares and pass purchases between the calendar
// month containing start and the calendar month containing end, inclusive.
func (c *Card) TotalCostBetweenMonths(start, end time.Time) float64 {
	from := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	// First instant of the month after end.
	to := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location()).AddDate(0, 1, 0)

	c.mu.Lock()
	defer c.mu.Unlock()
	var sum float64
	for _, tx := range c.fareLog {
		if !tx.Time.Before(from) && tx.Time.Before(to) {
			sum += tx.Amount
		}
	}
	for _, tx := range c.passLog {
		if !tx.Time.Before(from) && tx.Time.Before(to) {
			sum += tx.Amount
		}
	}
	return sum
}
