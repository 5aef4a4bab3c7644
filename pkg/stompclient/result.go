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

// Result is the outcome delivered to a user callback. Protocol and transport
// failures never surface as Go errors from the client's methods; each
// asynchronous operation reports exactly one Result through its callback.
type Result int

const (
	ResultOk Result = iota
	ResultErrorConnectingWebSocket
	ResultErrorConnectingStomp
	ResultWebSocketServerDisconnected
	ResultCouldNotSendSubscribeFrame
	ResultCouldNotCloseWebSocketConnection
	ResultErrorNotConnected
	ResultUndefinedError
)

var resultNames = map[Result]string{
	ResultOk:                               "Ok",
	ResultErrorConnectingWebSocket:         "ErrorConnectingWebSocket",
	ResultErrorConnectingStomp:             "ErrorConnectingStomp",
	ResultWebSocketServerDisconnected:      "WebSocketServerDisconnected",
	ResultCouldNotSendSubscribeFrame:       "CouldNotSendSubscribeFrame",
	ResultCouldNotCloseWebSocketConnection: "CouldNotCloseWebSocketConnection",
	ResultErrorNotConnected:                "ErrorNotConnected",
	ResultUndefinedError:                   "UndefinedError",
}

func (r Result) String() string {
	name, ok := resultNames[r]
	if !ok {
		return resultNames[ResultUndefinedError]
	}
	return name
}
