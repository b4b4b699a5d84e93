package transit

import (
	"sync/atomic"
)

// Scope selects which part of the network a path query runs over.
type Scope string

const (
	// ScopeSubway covers subway routes only. Fare computation uses this
	// scope: subway fares are priced on subway hops alone.
	ScopeSubway Scope = "subway"
	// ScopeAll covers bus and subway routes together, for trip planning.
	ScopeAll Scope = "all"
)

// Index is one immutable build of the route tables and their derived
// graphs. Readers obtain an Index once and use it for a whole operation so
// a concurrent rebuild cannot change the ground under them.
type Index struct {
	busRoutes    RouteMap
	subwayRoutes RouteMap
	subway       *Graph
	all          *Graph
}

// NewIndex builds the derived graphs for the given route tables.
func NewIndex(bus, subway RouteMap) *Index {
	merged := make(RouteMap, len(bus)+len(subway))
	for name, seq := range bus {
		merged[name] = seq
	}
	for name, seq := range subway {
		merged[name] = seq
	}
	return &Index{
		busRoutes:    bus,
		subwayRoutes: subway,
		subway:       BuildGraph(subway),
		all:          BuildGraph(merged),
	}
}

// Graph returns the graph for the given scope.
func (ix *Index) Graph(scope Scope) *Graph {
	if scope == ScopeSubway {
		return ix.subway
	}
	return ix.all
}

// IsBusRoute reports whether name is a known bus route.
func (ix *Index) IsBusRoute(name string) bool {
	_, ok := ix.busRoutes[name]
	return ok
}

// IsSubwayRoute reports whether name is a known subway route.
func (ix *Index) IsSubwayRoute(name string) bool {
	_, ok := ix.subwayRoutes[name]
	return ok
}

// BusRoute returns the ordered stop list of a bus route, or nil.
func (ix *Index) BusRoute(name string) []string {
	return ix.busRoutes[name]
}

// RouteTables returns the current tables, for the route-editing API.
func (ix *Index) RouteTables() (bus, subway RouteMap) {
	return ix.busRoutes, ix.subwayRoutes
}

// Network holds the current Index and swaps it atomically on rebuild.
// Queries against an already-obtained Index keep running against that
// version; there is no read-side locking.
type Network struct {
	current atomic.Pointer[Index]
}

// NewNetwork builds the initial Index from the given route tables.
func NewNetwork(bus, subway RouteMap) *Network {
	n := &Network{}
	n.current.Store(NewIndex(bus, subway))
	return n
}

// Current returns the live Index.
func (n *Network) Current() *Index {
	return n.current.Load()
}

// Rebuild replaces the route tables wholesale and publishes the new Index.
func (n *Network) Rebuild(bus, subway RouteMap) *Index {
	ix := NewIndex(bus, subway)
	n.current.Store(ix)
	return ix
}
