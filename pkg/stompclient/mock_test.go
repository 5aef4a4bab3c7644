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
	"sync"

	"github.com/pkg/errors"

	"github.com/pbielenia/network-monitor/pkg/stomp"
)

// mockTransport scripts the far side of the link: it answers a CONNECT frame
// carrying the expected credentials with CONNECTED, drops the link on wrong
// credentials, and confirms every SUBSCRIBE with a RECEIPT. Messages are
// injected with deliver. Completion callbacks run on their own goroutines,
// like a real transport's would; deliver and dropLink call onMessage and
// onDisconnected on the caller's goroutine.
type mockTransport struct {
	url      string
	username string
	password string

	connectErr error
	sendErr    error
	closeErr   error

	mu             sync.Mutex
	connected      bool
	sent           []string
	closeCalls     int
	onMessage      func(string)
	onDisconnected func(error)
}

func newMockTransport(username, password string) *mockTransport {
	return &mockTransport{
		url:      "stomp.example.com",
		username: username,
		password: password,
	}
}

func (m *mockTransport) Connect(onConnected func(error), onMessage func(string), onDisconnected func(error)) {
	if m.connectErr != nil {
		go onConnected(m.connectErr)
		return
	}
	m.mu.Lock()
	m.connected = true
	m.onMessage = onMessage
	m.onDisconnected = onDisconnected
	m.mu.Unlock()
	go onConnected(nil)
}

func (m *mockTransport) Send(message string, onSent func(error)) {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		go onSent(ErrNotConnected)
		return
	}
	m.sent = append(m.sent, message)
	m.mu.Unlock()

	if m.sendErr != nil {
		err := m.sendErr
		go onSent(err)
		return
	}
	go func() {
		onSent(nil)
		m.respond(message)
	}()
}

func (m *mockTransport) Close(onClosed func(error)) {
	m.mu.Lock()
	m.closeCalls++
	if !m.connected {
		m.mu.Unlock()
		go onClosed(ErrNotConnected)
		return
	}
	m.connected = false
	m.mu.Unlock()
	go onClosed(m.closeErr)
}

func (m *mockTransport) ServerURL() string {
	return m.url
}

// deliver injects one message as if the server had sent it.
func (m *mockTransport) deliver(message string) {
	m.mu.Lock()
	onMessage := m.onMessage
	connected := m.connected
	m.mu.Unlock()
	if connected && onMessage != nil {
		onMessage(message)
	}
}

// dropLink simulates the server closing the connection.
func (m *mockTransport) dropLink(err error) {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return
	}
	m.connected = false
	onDisconnected := m.onDisconnected
	m.mu.Unlock()
	if onDisconnected != nil {
		onDisconnected(err)
	}
}

func (m *mockTransport) sentFrames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func (m *mockTransport) respond(message string) {
	frame := stomp.NewFrame(message)
	if frame.ParseStatus() != stomp.ParseOk {
		return
	}
	switch frame.Command() {
	case stomp.CommandConnect:
		if frame.HeaderValue(stomp.HeaderLogin) != m.username ||
			frame.HeaderValue(stomp.HeaderPasscode) != m.password {
			// A STOMP server rejecting credentials drops the connection
			// without sending CONNECTED.
			m.dropLink(errors.New("authentication failed"))
			return
		}
		m.deliver("CONNECTED\nversion:1.2\n\n\x00")
	case stomp.CommandSubscribe:
		receipt := frame.HeaderValue(stomp.HeaderReceipt)
		if receipt != "" {
			m.deliver("RECEIPT\nreceipt-id:" + receipt + "\n\n\x00")
		}
	}
}
