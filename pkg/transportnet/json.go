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

package transportnet

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// networkLayout mirrors the network-layout document served next to the
// events feed.
type networkLayout struct {
	Stations []struct {
		StationID ID     `json:"station_id"`
		Name      string `json:"name"`
	} `json:"stations"`
	Lines []struct {
		LineID ID     `json:"line_id"`
		Name   string `json:"name"`
		Routes []struct {
			RouteID        ID   `json:"route_id"`
			StartStationID ID   `json:"start_station_id"`
			EndStationID   ID   `json:"end_station_id"`
			RouteStops     []ID `json:"route_stops"`
		} `json:"routes"`
	} `json:"lines"`
	TravelTimes []struct {
		StartStationID ID  `json:"start_station_id"`
		EndStationID   ID  `json:"end_station_id"`
		TravelTime     int `json:"travel_time"`
	} `json:"travel_times"`
}

// FromJSON builds a network from a network-layout document: stations first,
// then lines with their routes, then the travel times of all adjacent pairs.
func FromJSON(data []byte) (*TransportNetwork, error) {
	var layout networkLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, errors.Wrap(err, "parsing network layout")
	}

	network := New()
	for _, station := range layout.Stations {
		err := network.AddStation(Station{ID: station.StationID, Name: station.Name})
		if err != nil {
			return nil, errors.Wrapf(err, "adding station %s", station.StationID)
		}
	}
	for _, line := range layout.Lines {
		routes := make([]Route, 0, len(line.Routes))
		for _, route := range line.Routes {
			routes = append(routes, Route{
				ID:             route.RouteID,
				Name:           string(route.RouteID),
				LineID:         line.LineID,
				StartStationID: route.StartStationID,
				EndStationID:   route.EndStationID,
				Stops:          route.RouteStops,
			})
		}
		err := network.AddLine(Line{ID: line.LineID, Name: line.Name, Routes: routes})
		if err != nil {
			return nil, errors.Wrapf(err, "adding line %s", line.LineID)
		}
	}
	for _, travelTime := range layout.TravelTimes {
		err := network.SetTravelTime(travelTime.StartStationID, travelTime.EndStationID, travelTime.TravelTime)
		if err != nil {
			return nil, errors.Wrap(err, "setting travel time")
		}
	}
	return network, nil
}
