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

package stompclient

// State tracks where the client is in its connection lifecycle. StateClosed
// is terminal: a client is not reusable after disconnection or close.
type State int

const (
	StateIdle State = iota
	StateWsConnecting
	StateWsConnected
	StateStompConnecting
	StateStompConnected
	StateClosing
	StateClosed
)

var stateNames = map[State]string{
	StateIdle:            "Idle",
	StateWsConnecting:    "WsConnecting",
	StateWsConnected:     "WsConnected",
	StateStompConnecting: "StompConnecting",
	StateStompConnected:  "StompConnected",
	StateClosing:         "Closing",
	StateClosed:          "Closed",
}

func (s State) String() string {
	name, ok := stateNames[s]
	if !ok {
		return "Unknown"
	}
	return name
}

// connected reports whether the underlying transport link is up in this
// state.
func (s State) connected() bool {
	switch s {
	case StateWsConnected, StateStompConnecting, StateStompConnected:
		return true
	default:
		return false
	}
}
