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

package monitor

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/pbielenia/network-monitor/pkg/transportnet"
)

// passengerEvent is one entry of the events feed, as published by the
// server.
type passengerEvent struct {
	StationID transportnet.ID `json:"station_id"`
	Kind      string          `json:"passenger_event"`
	DateTime  string          `json:"datetime"`
}

// decodeEvent parses one feed message body.
func decodeEvent(body string) (transportnet.ID, transportnet.PassengerEvent, error) {
	var event passengerEvent
	if err := json.Unmarshal([]byte(body), &event); err != nil {
		return "", 0, errors.Wrap(err, "parsing passenger event")
	}
	switch event.Kind {
	case "in":
		return event.StationID, transportnet.PassengerIn, nil
	case "out":
		return event.StationID, transportnet.PassengerOut, nil
	default:
		return "", 0, errors.Errorf("unknown passenger event kind %q", event.Kind)
	}
}
