package trips

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedLeg(t *testing.T, kind Kind, start time.Time, from, to, route string) *SubTrip {
	t.Helper()
	ix := testIndex()
	leg := NewSubTrip(kind, start, from, route)
	require.NoError(t, leg.Finish(start.Add(10*time.Minute), to, route, ix))
	return leg
}

func TestTripAppendContinues(t *testing.T) {
	first := finishedLeg(t, KindSubway, t0, "StationA", "StationC", "Red")
	trip := NewTrip(first)

	next := NewSubTrip(KindBus, t0.Add(20*time.Minute), "StationC", "B12")
	require.NoError(t, trip.Append(next))
	assert.Len(t, trip.Legs(), 2)
	assert.Same(t, next, trip.Tail())
}

func TestTripAppendRejectsOpenTail(t *testing.T) {
	trip := NewTrip(NewSubTrip(KindSubway, t0, "StationA", "Red"))

	err := trip.Append(NewSubTrip(KindSubway, t0.Add(5*time.Minute), "StationD", "Blue"))
	assert.ErrorIs(t, err, ErrLegEnRoute)
	assert.Len(t, trip.Legs(), 1)
}

func TestTripAppendRejectsDifferentStation(t *testing.T) {
	trip := NewTrip(finishedLeg(t, KindSubway, t0, "StationA", "StationC", "Red"))

	err := trip.Append(NewSubTrip(KindSubway, t0.Add(20*time.Minute), "StationE", "Blue"))
	assert.ErrorIs(t, err, ErrCannotContinue)
}

func TestTripAppendRejectsStaleContinuation(t *testing.T) {
	trip := NewTrip(finishedLeg(t, KindSubway, t0, "StationA", "StationC", "Red"))

	// Window is anchored at the trip's first tap-in, not the tail's.
	late := NewSubTrip(KindSubway, t0.Add(121*time.Minute), "StationC", "Red")
	err := trip.Append(late)
	assert.ErrorIs(t, err, ErrCannotContinue)

	onTime := NewSubTrip(KindSubway, t0.Add(120*time.Minute), "StationC", "Red")
	assert.NoError(t, trip.Append(onTime))
}

func TestTripTotalFareCountsOnlySettledLegs(t *testing.T) {
	first := finishedLeg(t, KindSubway, t0, "StationA", "StationC", "Red")
	first.Fare = 1.0
	trip := NewTrip(first)

	open := NewSubTrip(KindSubway, t0.Add(30*time.Minute), "StationC", "Red")
	require.NoError(t, trip.Append(open))

	assert.Equal(t, 1.0, trip.TotalFare())
}

func TestTripTotalStopsByKind(t *testing.T) {
	subwayLeg := finishedLeg(t, KindSubway, t0, "StationA", "StationC", "Red")
	trip := NewTrip(subwayLeg)

	busLeg := NewSubTrip(KindBus, t0.Add(15*time.Minute), "StationC", "B12")
	busLeg.Finished = true
	busLeg.EndStation = "StationC"
	busLeg.Stops = 4
	trip.legs = append(trip.legs, busLeg)

	assert.Equal(t, 2, trip.TotalStops(KindSubway))
	assert.Equal(t, 4, trip.TotalStops(KindBus))
}
