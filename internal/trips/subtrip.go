// Package trips models one fare-capped journey as an ordered chain of
// tap-in/tap-out legs.
package trips

import (
	"errors"
	"time"

	"farecard.opentransit.org/internal/fares"
	"farecard.opentransit.org/internal/transit"
)

var (
	// ErrLegEnRoute reports an operation that needs a closed leg while the
	// leg is still open.
	ErrLegEnRoute = errors.New("leg is still en route")
	// ErrLegNotEnRoute reports a close attempt on an already-closed leg.
	ErrLegNotEnRoute = errors.New("leg is not en route")
	// ErrExitWrongRoute reports a close attempt on an incompatible route.
	ErrExitWrongRoute = errors.New("exit on incompatible route")
	// ErrCannotContinue reports that a leg does not extend the trip; the
	// caller starts a new trip instead. This is an expected outcome, not a
	// failure.
	ErrCannotContinue = errors.New("trip cannot continue")
)

// Kind distinguishes the two leg variants. The set is closed: buses charge a
// flat fare known at entry, subways charge by distance known only at exit.
type Kind string

const (
	KindBus    Kind = "bus"
	KindSubway Kind = "subway"
)

// NoPathHops is the hop count billed when a subway entry and exit are in
// disconnected components. A finite charge instead of a refusal is the
// operator's policy for riders the network cannot explain.
const NoPathHops = 12

// SubTrip is one uninterrupted tap-in to tap-out span on a single route.
type SubTrip struct {
	Kind         Kind      `json:"kind"`
	Route        string    `json:"route"`
	StartStation string    `json:"startStation"`
	StartTime    time.Time `json:"startTime"`
	EndStation   string    `json:"endStation,omitempty"`
	EndTime      time.Time `json:"endTime,omitempty"`
	// Fare is the amount actually charged for this leg, set at settlement.
	// It can differ from the computed fare under capping, passes, or fines.
	Fare float64 `json:"fare"`
	// Stops is the number of stops traversed, set once the leg closes.
	Stops    int  `json:"stops"`
	Finished bool `json:"finished"`
}

// NewSubTrip opens a leg of the given kind at a station on a route.
func NewSubTrip(kind Kind, start time.Time, station, route string) *SubTrip {
	return &SubTrip{
		Kind:         kind,
		Route:        route,
		StartStation: station,
		StartTime:    start,
	}
}

// Finish closes the leg, transitioning it en-route to finished exactly once.
//
// A bus leg must exit on the route it entered; buses run one linear route.
// A subway leg may exit on any known subway route, because interlined
// stations make it legitimate to leave via a different line than the one
// tapped into. The asymmetry is deliberate.
func (s *SubTrip) Finish(end time.Time, station, route string, ix *transit.Index) error {
	if s.Finished {
		return ErrLegNotEnRoute
	}
	switch s.Kind {
	case KindBus:
		if route != s.Route {
			return ErrExitWrongRoute
		}
	case KindSubway:
		if !ix.IsSubwayRoute(route) {
			return ErrExitWrongRoute
		}
	}
	s.EndTime = end
	s.EndStation = station
	s.Finished = true
	s.Stops = s.countStops(ix)
	return nil
}

// countStops measures the closed leg. Bus legs use the index distance along
// the one route they ran. Subway legs use the shortest subway hop count
// between entry and exit; interlining makes raw indices on the entry route
// meaningless.
func (s *SubTrip) countStops(ix *transit.Index) int {
	if s.Kind == KindBus {
		seq := ix.BusRoute(s.Route)
		start, end := -1, -1
		for i, name := range seq {
			if name == s.StartStation {
				start = i
			}
			if name == s.EndStation {
				end = i
			}
		}
		if start < 0 || end < 0 {
			return 0
		}
		if start > end {
			return start - end
		}
		return end - start
	}

	hops, ok := ix.Graph(transit.ScopeSubway).ShortestHopCount(s.StartStation, s.EndStation)
	if !ok {
		return NoPathHops
	}
	return hops
}

// ComputeFare prices the leg before capping and passes are applied. Bus legs
// price at the flat rate regardless of state; subway legs cannot be priced
// until they close.
func (s *SubTrip) ComputeFare(schedule *fares.Schedule) (float64, error) {
	switch s.Kind {
	case KindBus:
		return schedule.Get(fares.RateBusFare), nil
	default:
		if !s.Finished {
			return 0, ErrLegEnRoute
		}
		return schedule.Get(fares.RateSubwayFare) * float64(s.Stops), nil
	}
}
