package routesource

import (
	"errors"
	"fmt"

	"farecard.opentransit.org/internal/transit"
)

var ErrEmptyDocument = errors.New("route document defines no routes")

// Document is the JSON form of the route tables accepted by the route
// editing endpoint.
type Document struct {
	BusRoutes    map[string][]string `json:"busRoutes"`
	SubwayRoutes map[string][]string `json:"subwayRoutes"`
}

// Validate checks the document is a usable set of route tables: at least one
// route, every route with at least two named stations, and no route name
// appearing in both tables.
func (d Document) Validate() error {
	if len(d.BusRoutes)+len(d.SubwayRoutes) == 0 {
		return ErrEmptyDocument
	}
	for name, stations := range d.BusRoutes {
		if err := validateRoute(name, stations); err != nil {
			return err
		}
		if _, dup := d.SubwayRoutes[name]; dup {
			return fmt.Errorf("route %q appears in both bus and subway tables", name)
		}
	}
	for name, stations := range d.SubwayRoutes {
		if err := validateRoute(name, stations); err != nil {
			return err
		}
	}
	return nil
}

func validateRoute(name string, stations []string) error {
	if name == "" {
		return errors.New("route with empty name")
	}
	if len(stations) < 2 {
		return fmt.Errorf("route %q has fewer than two stations", name)
	}
	for _, s := range stations {
		if s == "" {
			return fmt.Errorf("route %q has an empty station name", name)
		}
	}
	return nil
}

// Tables returns the document's contents as route maps.
func (d Document) Tables() (bus, subway transit.RouteMap) {
	bus = make(transit.RouteMap, len(d.BusRoutes))
	for name, stations := range d.BusRoutes {
		bus[name] = append([]string(nil), stations...)
	}
	subway = make(transit.RouteMap, len(d.SubwayRoutes))
	for name, stations := range d.SubwayRoutes {
		subway[name] = append([]string(nil), stations...)
	}
	return bus, subway
}
