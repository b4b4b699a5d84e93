// Package routesource supplies route tables (route name to ordered station
// list) to the fare engine, either from a GTFS static feed or from a plain
// JSON document submitted through the route-editing API.
package routesource

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/jamespfennell/gtfs"

	"farecard.opentransit.org/internal/transit"
)

// LoadGTFS reads a GTFS static feed from a URL or local zip and derives the
// bus and subway route tables from it.
func LoadGTFS(source string) (bus, subway transit.RouteMap, err error) {
	isLocalFile := !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")

	b, err := rawFeedData(source, isLocalFile)
	if err != nil {
		return nil, nil, err
	}

	static, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	bus, subway = RouteTablesFromStatic(static)
	return bus, subway, nil
}

func rawFeedData(source string, isLocalFile bool) ([]byte, error) {
	if isLocalFile {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	resp, err := http.Get(source)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer resp.Body.Close() // nolint

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// RouteTablesFromStatic picks, for every route, the scheduled trip with the
// most stop times as the route's canonical station sequence. Routes the
// fare model has no mode for (ferries, aerial lifts) are dropped.
func RouteTablesFromStatic(static *gtfs.Static) (bus, subway transit.RouteMap) {
	bus = make(transit.RouteMap)
	subway = make(transit.RouteMap)

	longest := make(map[string]*gtfs.ScheduledTrip)
	for i := range static.Trips {
		trip := &static.Trips[i]
		if trip.Route == nil || len(trip.StopTimes) == 0 {
			continue
		}
		cur := longest[trip.Route.Id]
		if cur == nil || len(trip.StopTimes) > len(cur.StopTimes) {
			longest[trip.Route.Id] = trip
		}
	}

	for _, route := range static.Routes {
		trip := longest[route.Id]
		if trip == nil {
			continue
		}
		stations := make([]string, 0, len(trip.StopTimes))
		for _, st := range trip.StopTimes {
			if st.Stop == nil {
				continue
			}
			name := st.Stop.Name
			if name == "" {
				name = st.Stop.Id
			}
			stations = append(stations, name)
		}
		if len(stations) < 2 {
			continue
		}

		name := route.ShortName
		if name == "" {
			name = route.Id
		}

		// GTFS route types: tram/subway/rail and their cousins ride the
		// distance-based tariff, buses and trolleybuses the flat one.
		switch int(route.Type) {
		case 3, 11:
			bus[name] = stations
		case 0, 1, 2, 5, 12:
			subway[name] = stations
		}
	}
	return bus, subway
}
