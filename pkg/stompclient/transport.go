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

import (
	"github.com/pkg/errors"
)

// ErrNotConnected is reported by a Transport when Send or Close is called
// while the link is not established.
var ErrNotConnected = errors.New("not connected")

// IsNotConnectedError returns true if the unwrapped error is ErrNotConnected.
func IsNotConnectedError(err error) bool {
	return errors.Is(err, ErrNotConnected)
}

// Transport is the asynchronous text-message channel the STOMP client rides
// on: a WebSocket connection in production, a scripted fake in tests.
//
// Callbacks may run on any goroutine. Each completion callback fires exactly
// once per operation; onMessage fires once per received message, in arrival
// order; onDisconnected fires exactly once if the link drops after a
// successful connect.
type Transport interface {
	// Connect begins connection establishment. onConnected receives nil on
	// success or the failure reason. A nil error on onDisconnected means the
	// link was shut down locally rather than dropped by the peer.
	Connect(onConnected func(error), onMessage func(message string), onDisconnected func(error))

	// Send queues one text message. Sending while not connected reports
	// ErrNotConnected through onSent.
	Send(message string, onSent func(error))

	// Close initiates a graceful shutdown. Closing while not connected
	// reports ErrNotConnected through onClosed.
	Close(onClosed func(error))

	// ServerURL returns the host the transport connects to. It populates the
	// host header of the CONNECT frame.
	ServerURL() string
}
