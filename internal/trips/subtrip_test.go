package trips

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farecard.opentransit.org/internal/fares"
	"farecard.opentransit.org/internal/transit"
)

var t0 = time.Date(2019, 3, 18, 8, 0, 0, 0, time.UTC)

func testIndex() *transit.Index {
	return transit.NewIndex(
		transit.RouteMap{
			"B12": {"Stop1", "Stop2", "Stop3", "Stop4", "Stop5"},
			"B9":  {"Stop9", "Stop5"},
		},
		transit.RouteMap{
			"Red":   {"StationA", "StationB", "StationC", "StationD"},
			"Blue":  {"StationE", "StationB", "StationF"},
			"Ghost": {"StationX", "StationY"},
		},
	)
}

func TestBusLegFinish(t *testing.T) {
	ix := testIndex()
	leg := NewSubTrip(KindBus, t0, "Stop1", "B12")

	err := leg.Finish(t0.Add(10*time.Minute), "Stop4", "B12", ix)
	require.NoError(t, err)
	assert.True(t, leg.Finished)
	assert.Equal(t, 3, leg.Stops)
}

func TestBusLegFinishBackwards(t *testing.T) {
	ix := testIndex()
	leg := NewSubTrip(KindBus, t0, "Stop4", "B12")

	err := leg.Finish(t0.Add(5*time.Minute), "Stop2", "B12", ix)
	require.NoError(t, err)
	assert.Equal(t, 2, leg.Stops)
}

func TestBusLegRejectsExitOnDifferentRoute(t *testing.T) {
	ix := testIndex()
	leg := NewSubTrip(KindBus, t0, "Stop1", "B12")

	err := leg.Finish(t0.Add(5*time.Minute), "Stop5", "B9", ix)
	assert.ErrorIs(t, err, ErrExitWrongRoute)
	assert.False(t, leg.Finished)
}

func TestSubwayLegAllowsExitOnAnySubwayRoute(t *testing.T) {
	ix := testIndex()
	leg := NewSubTrip(KindSubway, t0, "StationA", "Red")

	// Exit via the Blue line: StationF is interlined reachable.
	err := leg.Finish(t0.Add(12*time.Minute), "StationF", "Blue", ix)
	require.NoError(t, err)
	// A -> B -> F, counted over the subway graph, not the entry route.
	assert.Equal(t, 2, leg.Stops)
}

func TestSubwayLegRejectsExitOnBusRoute(t *testing.T) {
	ix := testIndex()
	leg := NewSubTrip(KindSubway, t0, "StationA", "Red")

	err := leg.Finish(t0.Add(5*time.Minute), "Stop3", "B12", ix)
	assert.ErrorIs(t, err, ErrExitWrongRoute)
}

func TestFinishTwice(t *testing.T) {
	ix := testIndex()
	leg := NewSubTrip(KindSubway, t0, "StationA", "Red")

	require.NoError(t, leg.Finish(t0.Add(5*time.Minute), "StationB", "Red", ix))
	err := leg.Finish(t0.Add(9*time.Minute), "StationC", "Red", ix)
	assert.ErrorIs(t, err, ErrLegNotEnRoute)
}

func TestSubwayDisconnectedExitBillsSentinelHops(t *testing.T) {
	ix := testIndex()
	leg := NewSubTrip(KindSubway, t0, "StationA", "Red")

	require.NoError(t, leg.Finish(t0.Add(30*time.Minute), "StationX", "Ghost", ix))
	assert.Equal(t, NoPathHops, leg.Stops)
}

func TestComputeFareBusIsFlat(t *testing.T) {
	ix := testIndex()
	schedule := fares.NewSchedule()

	// Flat whether or not the leg is closed, and whatever the distance.
	open := NewSubTrip(KindBus, t0, "Stop1", "B12")
	fare, err := open.ComputeFare(schedule)
	require.NoError(t, err)
	assert.Equal(t, 2.0, fare)

	long := NewSubTrip(KindBus, t0, "Stop1", "B12")
	require.NoError(t, long.Finish(t0.Add(20*time.Minute), "Stop5", "B12", ix))
	short := NewSubTrip(KindBus, t0, "Stop1", "B12")
	require.NoError(t, short.Finish(t0.Add(3*time.Minute), "Stop2", "B12", ix))

	longFare, err := long.ComputeFare(schedule)
	require.NoError(t, err)
	shortFare, err := short.ComputeFare(schedule)
	require.NoError(t, err)
	assert.Equal(t, longFare, shortFare)
}

func TestComputeFareSubwayByShortestHops(t *testing.T) {
	ix := testIndex()
	schedule := fares.NewSchedule()
	leg := NewSubTrip(KindSubway, t0, "StationA", "Red")

	_, err := leg.ComputeFare(schedule)
	assert.ErrorIs(t, err, ErrLegEnRoute)

	require.NoError(t, leg.Finish(t0.Add(10*time.Minute), "StationC", "Red", ix))
	fare, err := leg.ComputeFare(schedule)
	require.NoError(t, err)
	assert.Equal(t, 1.0, fare) // 2 hops at 0.5
}
