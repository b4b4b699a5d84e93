package transit

import (
	"fmt"
	"strings"
)

// Leg is a maximal run of consecutive path steps on a single route.
type Leg struct {
	Route    string   `json:"route"`
	Stations []string `json:"stations"`
}

// Plan is a rider-facing itinerary between two stations.
type Plan struct {
	From string `json:"from"`
	To   string `json:"to"`
	Hops int    `json:"hops"`
	Legs []Leg  `json:"legs"`
}

// PlanRoute computes the shortest itinerary from start to end, merging
// consecutive steps that share a route into one leg. A route change between
// steps begins a new leg, which readers render as a transfer.
func (g *Graph) PlanRoute(start, end string) (*Plan, error) {
	path, err := g.ShortestPath(start, end)
	if err != nil {
		return nil, err
	}
	if len(path) < 2 {
		// Already there; no legs to ride.
		return &Plan{From: start, To: end}, nil
	}

	plan := &Plan{From: start, To: end, Hops: len(path) - 1}
	for _, step := range path {
		n := len(plan.Legs)
		if n == 0 || plan.Legs[n-1].Route != step.Route {
			// A transfer re-lists the interchange station on the new leg.
			leg := Leg{Route: step.Route}
			if n > 0 {
				prev := plan.Legs[n-1]
				leg.Stations = append(leg.Stations, prev.Stations[len(prev.Stations)-1])
			}
			plan.Legs = append(plan.Legs, leg)
			n++
		}
		plan.Legs[n-1].Stations = append(plan.Legs[n-1].Stations, step.Station)
	}
	return plan, nil
}

// Directions renders the plan as step-by-step text with transfer markers.
func (p *Plan) Directions() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Start at %s\n", p.From)
	for i, leg := range p.Legs {
		if i == 0 {
			fmt.Fprintf(&b, "Take %s\n", leg.Route)
		} else {
			fmt.Fprintf(&b, "Transfer to %s\n", leg.Route)
		}
		b.WriteString(strings.Join(leg.Stations, " --> "))
		b.WriteString("\n")
	}
	return b.String()
}
