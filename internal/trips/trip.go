package trips

import (
	"time"
)

// MaxContinuation is the window within which appended legs still count as
// one fare-capped journey, measured from the trip's very first tap-in.
const MaxContinuation = 120 * time.Minute

// Trip is an ordered chain of legs treated as one continuous journey for
// fare capping.
type Trip struct {
	legs []*SubTrip
}

// NewTrip starts a journey with its first leg.
func NewTrip(first *SubTrip) *Trip {
	return &Trip{legs: []*SubTrip{first}}
}

// Append extends the journey with the next leg.
//
// Returns ErrLegEnRoute when the current tail was never closed: the rider
// tapped in twice without tapping out, which the caller penalizes. Returns
// ErrCannotContinue when the new leg starts somewhere other than where the
// tail ended, or outside the continuation window; the caller starts a fresh
// trip.
func (t *Trip) Append(next *SubTrip) error {
	tail := t.Tail()
	if !tail.Finished {
		return ErrLegEnRoute
	}
	if next.StartStation != tail.EndStation {
		return ErrCannotContinue
	}
	if next.StartTime.Sub(t.StartTime()) > MaxContinuation {
		return ErrCannotContinue
	}
	t.legs = append(t.legs, next)
	return nil
}

// Head returns the first leg.
func (t *Trip) Head() *SubTrip {
	return t.legs[0]
}

// Tail returns the most recent leg.
func (t *Trip) Tail() *SubTrip {
	return t.legs[len(t.legs)-1]
}

// Legs returns the chain in order.
func (t *Trip) Legs() []*SubTrip {
	return t.legs
}

// Snapshot deep-copies the trip, legs included. The copy stays consistent
// while further taps mutate the original.
func (t *Trip) Snapshot() *Trip {
	legs := make([]*SubTrip, len(t.legs))
	for i, leg := range t.legs {
		cp := *leg
		legs[i] = &cp
	}
	return &Trip{legs: legs}
}

// StartTime is the first tap-in of the journey, the anchor for the
// continuation window.
func (t *Trip) StartTime() time.Time {
	return t.legs[0].StartTime
}

// TotalFare sums the settled fares across the chain. Open legs have not
// settled anything yet and contribute zero.
func (t *Trip) TotalFare() float64 {
	var sum float64
	for _, leg := range t.legs {
		sum += leg.Fare
	}
	return sum
}

// TotalStops sums stops traversed over legs of the given kind.
func (t *Trip) TotalStops(kind Kind) int {
	var sum int
	for _, leg := range t.legs {
		if leg.Kind == kind {
			sum += leg.Stops
		}
	}
	return sum
}
