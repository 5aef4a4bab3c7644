/*
   Copyright 2026 Network Monitor authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package transportnet models an underground network as an in-memory
// multigraph: stations are nodes, each route contributes one directed edge
// per consecutive pair of stops. The graph carries per-edge travel times and
// per-station passenger tallies fed by the live events feed.
package transportnet

import (
	"sort"

	"github.com/pkg/errors"
)

// ID identifies a station, line or route. Ids are unique within their kind
// across the whole network.
type ID string

// Station is one underground station.
type Station struct {
	ID   ID
	Name string
}

// Route is a single possible journey across a set of stops in one
// direction. There may or may not be a corresponding route in the opposite
// direction of travel.
//
// A route is well formed if its id is unique across all lines, it has at
// least two stops, every stop exists and appears only once, and the start
// and end stations match the first and last stop.
type Route struct {
	ID             ID
	Name           string
	LineID         ID
	StartStationID ID
	EndStationID   ID
	Stops          []ID
}

// Line is a named group of routes.
type Line struct {
	ID     ID
	Name   string
	Routes []Route
}

// PassengerEvent is one entry or exit at a station.
type PassengerEvent int

const (
	PassengerIn PassengerEvent = iota
	PassengerOut
)

type graphEdge struct {
	route      *routeInternal
	nextStop   *graphNode
	travelTime int
}

type graphNode struct {
	station        Station
	passengerCount int64
	edges          []*graphEdge
}

func (n *graphNode) findEdgeForRoute(route *routeInternal) *graphEdge {
	for _, edge := range n.edges {
		if edge.route == route {
			return edge
		}
	}
	return nil
}

type routeInternal struct {
	id    ID
	name  string
	line  *lineInternal
	stops []*graphNode
}

type lineInternal struct {
	id     ID
	name   string
	routes map[ID]*routeInternal
}

// TransportNetwork is the multigraph. The zero value is not usable; create
// instances with New.
type TransportNetwork struct {
	stations map[ID]*graphNode
	lines    map[ID]*lineInternal
}

// New creates an empty network.
func New() *TransportNetwork {
	return &TransportNetwork{
		stations: map[ID]*graphNode{},
		lines:    map[ID]*lineInternal{},
	}
}

// AddStation adds one station. The station id must not already be in the
// network.
func (n *TransportNetwork) AddStation(station Station) error {
	if _, ok := n.stations[station.ID]; ok {
		return errors.Wrapf(ErrAlreadyExists, "station %s", station.ID)
	}
	n.stations[station.ID] = &graphNode{station: station}
	return nil
}

// AddLine adds one line with all its routes and creates the graph edges the
// routes contribute. Every station served by the line must already be in the
// network.
func (n *TransportNetwork) AddLine(line Line) error {
	if _, ok := n.lines[line.ID]; ok {
		return errors.Wrapf(ErrAlreadyExists, "line %s", line.ID)
	}
	routeIDs := map[ID]bool{}
	for _, existing := range n.lines {
		for id := range existing.routes {
			routeIDs[id] = true
		}
	}
	for _, route := range line.Routes {
		if routeIDs[route.ID] {
			return errors.Wrapf(ErrAlreadyExists, "line %s route %s", line.ID, route.ID)
		}
		routeIDs[route.ID] = true
		if err := n.checkRoute(route); err != nil {
			return errors.Wrapf(err, "line %s", line.ID)
		}
	}

	internal := n.makeInternalLine(line)
	n.lines[line.ID] = internal
	n.updateGraphEdges(internal)
	return nil
}

func (n *TransportNetwork) checkRoute(route Route) error {
	if len(route.Stops) < 2 {
		return errors.Wrapf(ErrMalformedLine, "route %s has %d stops", route.ID, len(route.Stops))
	}
	if route.Stops[0] != route.StartStationID {
		return errors.Wrapf(ErrMalformedLine, "route %s does not start at %s", route.ID, route.StartStationID)
	}
	if route.Stops[len(route.Stops)-1] != route.EndStationID {
		return errors.Wrapf(ErrMalformedLine, "route %s does not end at %s", route.ID, route.EndStationID)
	}
	seen := map[ID]bool{}
	for _, stop := range route.Stops {
		if _, ok := n.stations[stop]; !ok {
			return errors.Wrapf(ErrUnknownStation, "route %s stop %s", route.ID, stop)
		}
		if seen[stop] {
			return errors.Wrapf(ErrMalformedLine, "route %s visits %s twice", route.ID, stop)
		}
		seen[stop] = true
	}
	return nil
}

func (n *TransportNetwork) makeInternalLine(line Line) *lineInternal {
	internal := &lineInternal{
		id:     line.ID,
		name:   line.Name,
		routes: map[ID]*routeInternal{},
	}
	for _, route := range line.Routes {
		internalRoute := &routeInternal{
			id:   route.ID,
			name: route.Name,
			line: internal,
		}
		for _, stop := range route.Stops {
			internalRoute.stops = append(internalRoute.stops, n.stations[stop])
		}
		internal.routes[route.ID] = internalRoute
	}
	return internal
}

func (n *TransportNetwork) updateGraphEdges(line *lineInternal) {
	for _, route := range line.routes {
		for i := 0; i+1 < len(route.stops); i++ {
			current := route.stops[i]
			current.edges = append(current.edges, &graphEdge{
				route:    route,
				nextStop: route.stops[i+1],
			})
		}
	}
}

// RecordPassengerEvent bumps the passenger tally of a station: up on an
// entry, down on an exit. The tally may go negative; it is a running balance
// relative to the moment the monitor started, not an absolute occupancy.
func (n *TransportNetwork) RecordPassengerEvent(station ID, event PassengerEvent) error {
	node, ok := n.stations[station]
	if !ok {
		return errors.Wrapf(ErrUnknownStation, "%s", station)
	}
	switch event {
	case PassengerIn:
		node.passengerCount++
	case PassengerOut:
		node.passengerCount--
	default:
		return errors.Errorf("unknown passenger event %d", event)
	}
	return nil
}

// PassengerCount returns the running passenger balance of a station.
func (n *TransportNetwork) PassengerCount(station ID) (int64, error) {
	node, ok := n.stations[station]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownStation, "%s", station)
	}
	return node.passengerCount, nil
}

// RoutesServingStation returns the ids of all routes with the station among
// their stops, sorted for deterministic output.
func (n *TransportNetwork) RoutesServingStation(station ID) ([]ID, error) {
	if _, ok := n.stations[station]; !ok {
		return nil, errors.Wrapf(ErrUnknownStation, "%s", station)
	}
	var routes []ID
	for _, line := range n.lines {
		for _, route := range line.routes {
			for _, stop := range route.stops {
				if stop.station.ID == station {
					routes = append(routes, route.id)
					break
				}
			}
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i] < routes[j] })
	return routes, nil
}

// SetTravelTime records the travel time between two adjacent stations on
// every edge connecting them, in both directions of travel.
func (n *TransportNetwork) SetTravelTime(stationA, stationB ID, travelTime int) error {
	nodeA, ok := n.stations[stationA]
	if !ok {
		return errors.Wrapf(ErrUnknownStation, "%s", stationA)
	}
	nodeB, ok := n.stations[stationB]
	if !ok {
		return errors.Wrapf(ErrUnknownStation, "%s", stationB)
	}

	adjacent := false
	for _, edge := range nodeA.edges {
		if edge.nextStop.station.ID == stationB {
			edge.travelTime = travelTime
			adjacent = true
		}
	}
	for _, edge := range nodeB.edges {
		if edge.nextStop.station.ID == stationA {
			edge.travelTime = travelTime
			adjacent = true
		}
	}
	if !adjacent {
		return errors.Wrapf(ErrNotAdjacent, "%s and %s", stationA, stationB)
	}
	return nil
}

// TravelTime returns the direct travel time between two adjacent stations,
// in either direction, or 0 when the stations share no edge.
func (n *TransportNetwork) TravelTime(stationA, stationB ID) int {
	nodeA, ok := n.stations[stationA]
	if !ok {
		return 0
	}
	nodeB, ok := n.stations[stationB]
	if !ok {
		return 0
	}

	for _, edge := range nodeA.edges {
		if edge.nextStop.station.ID == stationB {
			return edge.travelTime
		}
	}
	for _, edge := range nodeB.edges {
		if edge.nextStop.station.ID == stationA {
			return edge.travelTime
		}
	}
	return 0
}

// RouteTravelTime returns the cumulative travel time between two stations
// along one route, following the route's direction of travel from stationA
// to stationB.
func (n *TransportNetwork) RouteTravelTime(lineID, routeID, stationA, stationB ID) (int, error) {
	line, ok := n.lines[lineID]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownLine, "%s", lineID)
	}
	route, ok := line.routes[routeID]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownRoute, "%s on line %s", routeID, lineID)
	}
	nodeA, ok := n.stations[stationA]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownStation, "%s", stationA)
	}
	nodeB, ok := n.stations[stationB]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownStation, "%s", stationB)
	}

	edge := nodeA.findEdgeForRoute(route)
	total := 0
	for edge != nil {
		total += edge.travelTime
		if edge.nextStop == nodeB {
			return total, nil
		}
		edge = edge.nextStop.findEdgeForRoute(route)
	}
	return 0, errors.Wrapf(ErrNotAdjacent, "%s does not reach %s on route %s", stationA, stationB, routeID)
}
