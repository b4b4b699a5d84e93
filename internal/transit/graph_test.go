package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutes() RouteMap {
	return RouteMap{
		"Red":  {"StationA", "StationB", "StationC", "StationD"},
		"Blue": {"StationE", "StationB", "StationF"},
	}
}

func TestBuildGraphMergesTransferStations(t *testing.T) {
	g := BuildGraph(testRoutes())

	require.Equal(t, 6, g.Len())
	st := g.Station("StationB")
	require.NotNil(t, st)
	assert.ElementsMatch(t, []string{"Red", "Blue"}, st.Routes)
}

func TestShortestHopCountToSelfIsZero(t *testing.T) {
	g := BuildGraph(testRoutes())

	for _, name := range []string{"StationA", "StationB", "StationF"} {
		hops, ok := g.ShortestHopCount(name, name)
		require.True(t, ok)
		assert.Zero(t, hops)
	}
}

func TestShortestHopCountIsSymmetric(t *testing.T) {
	g := BuildGraph(testRoutes())

	pairs := [][2]string{
		{"StationA", "StationD"},
		{"StationE", "StationC"},
		{"StationA", "StationF"},
	}
	for _, p := range pairs {
		forward, ok := g.ShortestHopCount(p[0], p[1])
		require.True(t, ok)
		backward, ok := g.ShortestHopCount(p[1], p[0])
		require.True(t, ok)
		assert.Equal(t, forward, backward, "%s <-> %s", p[0], p[1])
	}
}

func TestShortestHopCountCrossesRoutes(t *testing.T) {
	g := BuildGraph(testRoutes())

	// StationE -> StationB (Blue) -> StationC (Red)
	hops, ok := g.ShortestHopCount("StationE", "StationC")
	require.True(t, ok)
	assert.Equal(t, 2, hops)
}

func TestShortestHopCountDisconnected(t *testing.T) {
	routes := testRoutes()
	routes["Ghost"] = []string{"StationX", "StationY"}
	g := BuildGraph(routes)

	_, ok := g.ShortestHopCount("StationA", "StationX")
	assert.False(t, ok)

	_, ok = g.ShortestHopCount("StationA", "Nowhere")
	assert.False(t, ok)
}

func TestShortestPathLengthMatchesHopCount(t *testing.T) {
	g := BuildGraph(testRoutes())

	pairs := [][2]string{
		{"StationA", "StationD"},
		{"StationE", "StationF"},
		{"StationF", "StationD"},
		{"StationA", "StationA"},
	}
	for _, p := range pairs {
		path, err := g.ShortestPath(p[0], p[1])
		require.NoError(t, err)
		hops, ok := g.ShortestHopCount(p[0], p[1])
		require.True(t, ok)
		assert.Equal(t, hops, len(path)-1, "%s -> %s", p[0], p[1])
	}
}

func TestShortestPathDisconnected(t *testing.T) {
	routes := testRoutes()
	routes["Ghost"] = []string{"StationX", "StationY"}
	g := BuildGraph(routes)

	_, err := g.ShortestPath("StationA", "StationY")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestShortestPathLabelsRoutes(t *testing.T) {
	g := BuildGraph(testRoutes())

	path, err := g.ShortestPath("StationA", "StationD")
	require.NoError(t, err)
	require.Len(t, path, 4)
	assert.Equal(t, "StationA", path[0].Station)
	assert.Equal(t, "StationD", path[3].Station)
	for _, step := range path {
		assert.Equal(t, "Red", step.Route)
	}
}

func TestPlanRouteMergesLegsAndMarksTransfers(t *testing.T) {
	g := BuildGraph(testRoutes())

	plan, err := g.PlanRoute("StationE", "StationC")
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Hops)
	require.Len(t, plan.Legs, 2)
	assert.Equal(t, "Blue", plan.Legs[0].Route)
	assert.Equal(t, []string{"StationE", "StationB"}, plan.Legs[0].Stations)
	assert.Equal(t, "Red", plan.Legs[1].Route)
	assert.Equal(t, []string{"StationB", "StationC"}, plan.Legs[1].Stations)

	directions := plan.Directions()
	assert.Contains(t, directions, "Start at StationE")
	assert.Contains(t, directions, "Transfer to Red")
	assert.Contains(t, directions, "StationB --> StationC")
}

func TestPlanRouteSingleRoute(t *testing.T) {
	g := BuildGraph(testRoutes())

	plan, err := g.PlanRoute("StationA", "StationC")
	require.NoError(t, err)
	require.Len(t, plan.Legs, 1)
	assert.Equal(t, []string{"StationA", "StationB", "StationC"}, plan.Legs[0].Stations)
}

func TestPlanRouteSameStation(t *testing.T) {
	g := BuildGraph(testRoutes())

	plan, err := g.PlanRoute("StationA", "StationA")
	require.NoError(t, err)
	assert.Zero(t, plan.Hops)
	assert.Empty(t, plan.Legs)

	directions := plan.Directions()
	assert.Equal(t, "Start at StationA\n", directions)
}
