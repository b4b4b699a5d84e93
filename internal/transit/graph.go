// Package transit builds the station adjacency graph from ordered route
// station lists and answers shortest-path queries over it. The graph is
// immutable once built; route-table edits produce a whole new graph via
// Network.Rebuild.
package transit

import (
	"fmt"
	"sort"
)

// ErrRouteNotFound is returned when two stations live in disconnected
// components (or one of them is not in the graph at all).
var ErrRouteNotFound = fmt.Errorf("no route between stations")

// Station is a node in the graph: a subway station or bus stop, possibly
// shared by several routes (a transfer point).
type Station struct {
	Name   string
	Routes []string
	edges  []edge
}

type edge struct {
	to    string
	route string
}

// Graph is an undirected station adjacency structure. Edges carry the name
// of the route that connects the two stations.
type Graph struct {
	stations map[string]*Station
}

// RouteMap maps a route name to its ordered station list.
type RouteMap map[string][]string

// BuildGraph links every station to its immediate predecessor and successor
// within each route's ordered sequence. Stations appearing on several routes
// merge into a single node, accumulating route memberships.
func BuildGraph(routes RouteMap) *Graph {
	g := &Graph{stations: make(map[string]*Station)}

	// Deterministic edge ordering regardless of map iteration order.
	names := make([]string, 0, len(routes))
	for name := range routes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, route := range names {
		seq := routes[route]
		for i, name := range seq {
			st := g.stations[name]
			if st == nil {
				st = &Station{Name: name}
				g.stations[name] = st
			}
			st.Routes = append(st.Routes, route)
			if i > 0 {
				g.link(seq[i-1], name, route)
			}
		}
	}
	return g
}

// link adds the symmetric pair of edges between a and b.
func (g *Graph) link(a, b, route string) {
	g.stations[a].edges = append(g.stations[a].edges, edge{to: b, route: route})
	g.stations[b].edges = append(g.stations[b].edges, edge{to: a, route: route})
}

// Station returns the named node, or nil if it is not in the graph.
func (g *Graph) Station(name string) *Station {
	return g.stations[name]
}

// Len reports the number of stations in the graph.
func (g *Graph) Len() int {
	return len(g.stations)
}

// ShortestHopCount runs a breadth-first search and returns the number of
// edges on the shortest path from start to end. A station is zero hops from
// itself. ok is false when no path exists, including when either endpoint is
// unknown; callers decide what an unreachable pair costs.
func (g *Graph) ShortestHopCount(start, end string) (hops int, ok bool) {
	if g.stations[start] == nil || g.stations[end] == nil {
		return 0, false
	}
	if start == end {
		return 0, true
	}
	dist, found := g.bfs(start, end)
	if !found {
		return 0, false
	}
	return dist[end], true
}

// bfs expands layer by layer from origin, recording hop distances. It stops
// early once target is reached; found reports whether it was.
func (g *Graph) bfs(origin, target string) (dist map[string]int, found bool) {
	dist = map[string]int{origin: 0}
	frontier := []string{origin}
	for len(frontier) > 0 {
		var next []string
		for _, name := range frontier {
			for _, e := range g.stations[name].edges {
				if _, seen := dist[e.to]; seen {
					continue
				}
				dist[e.to] = dist[name] + 1
				if e.to == target {
					return dist, true
				}
				next = append(next, e.to)
			}
		}
		frontier = next
	}
	return dist, false
}

// Step is one station on a reconstructed path together with the route used
// to reach it. The first step carries the route used to leave it.
type Step struct {
	Station string
	Route   string
}

// ShortestPath reconstructs a full shortest path from start to end. It runs
// the search backward from end to build a distance tree, then walks forward
// from start, at each hop picking a neighbor exactly one layer closer to the
// destination. Ties break by edge insertion order. Returns ErrRouteNotFound
// when the two stations are disconnected.
func (g *Graph) ShortestPath(start, end string) ([]Step, error) {
	if g.stations[start] == nil || g.stations[end] == nil {
		return nil, fmt.Errorf("%w: %s to %s", ErrRouteNotFound, start, end)
	}
	if start == end {
		return []Step{{Station: start}}, nil
	}

	dist, found := g.bfs(end, start)
	if !found {
		return nil, fmt.Errorf("%w: %s to %s", ErrRouteNotFound, start, end)
	}

	path := make([]Step, 0, dist[start]+1)
	path = append(path, Step{Station: start})
	cur := start
	for cur != end {
		st := g.stations[cur]
		for _, e := range st.edges {
			d, seen := dist[e.to]
			if seen && d == dist[cur]-1 {
				path = append(path, Step{Station: e.to, Route: e.route})
				cur = e.to
				break
			}
		}
	}
	// The origin leaves on the same route the first hop arrives by.
	path[0].Route = path[1].Route
	return path, nil
}
