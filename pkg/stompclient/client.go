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

// Package stompclient implements the STOMP 1.2 client used to consume the
// network-events feed. The client drives the CONNECT handshake, correlates
// SUBSCRIBE frames with their RECEIPTs and dispatches MESSAGE frames to
// per-subscription callbacks. It does not reconnect: link loss is surfaced
// to the user, who decides what to do next.
package stompclient

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pbielenia/network-monitor/pkg/stomp"
)

// Callback signatures for the asynchronous client operations. Every callback
// is invoked at most once per logical operation, sequentially, off the
// transport's goroutines.
type (
	OnConnected    func(Result)
	OnDisconnected func(Result)
	OnSubscribed   func(result Result, subscriptionID string)
	OnMessage      func(result Result, body string)
	OnClosed       func(Result)
)

type subscription struct {
	destination  string
	onSubscribed OnSubscribed
	onMessage    OnMessage
}

// Client is a STOMP 1.2 client over an asynchronous Transport. A Client
// serves one connection: once closed or disconnected it stays closed.
type Client struct {
	transport Transport
	callbacks strand

	mu             sync.Mutex
	state          State
	username       string
	password       string
	onConnected    OnConnected
	onDisconnected OnDisconnected
	subscriptions  map[string]subscription
}

// New creates a client over the given transport. No connection is initiated.
func New(transport Transport) *Client {
	return &Client{
		transport:     transport,
		subscriptions: map[string]subscription{},
	}
}

// Connect establishes the transport link and then the STOMP session with the
// given credentials. onConnected receives ResultOk once the server confirms
// the session, or the reason the handshake could not start. onDisconnected
// fires if the server drops the link afterwards; a server rejecting the
// credentials drops the link without confirming, so an authentication
// failure surfaces there and onConnected is never invoked.
//
// Calling Connect on a client that already left StateIdle has no effect.
func (c *Client) Connect(username, password string, onConnected OnConnected, onDisconnected OnDisconnected) {
	c.mu.Lock()
	if c.state != StateIdle {
		state := c.state
		c.mu.Unlock()
		logrus.Debugf("stomp client: connect ignored in state %s", state)
		return
	}
	c.state = StateWsConnecting
	c.username = username
	c.password = password
	c.onConnected = onConnected
	c.onDisconnected = onDisconnected
	c.mu.Unlock()

	logrus.Debugf("stomp client: connecting to %s", c.transport.ServerURL())
	c.transport.Connect(c.handleTransportConnected, c.handleTransportMessage, c.handleTransportDisconnected)
}

// Subscribe asks the server to deliver messages published to destination.
// It returns the generated subscription id immediately; the outcome arrives
// through onSubscribed once the frame is sent and the server's RECEIPT comes
// back. onMessage then fires once per matching MESSAGE frame.
func (c *Client) Subscribe(destination string, onSubscribed OnSubscribed, onMessage OnMessage) string {
	subscriptionID := uuid.NewString()
	logrus.Debugf("stomp client: subscribing to %s as %s", destination, subscriptionID)

	frame := stomp.NewSubscribeFrame(destination, subscriptionID, "auto", subscriptionID)
	sub := subscription{
		destination:  destination,
		onSubscribed: onSubscribed,
		onMessage:    onMessage,
	}
	c.transport.Send(frame.String(), func(err error) {
		c.handleSubscribeFrameSent(err, subscriptionID, sub)
	})
	return subscriptionID
}

// Close shuts the connection down. When the transport is not connected,
// onClosed receives ResultErrorNotConnected and no transport call is made.
func (c *Client) Close(onClosed OnClosed) {
	c.mu.Lock()
	if !c.state.connected() {
		c.mu.Unlock()
		logrus.Debugf("stomp client: close requested while not connected")
		if onClosed != nil {
			c.callbacks.post(func() { onClosed(ResultErrorNotConnected) })
		}
		return
	}
	c.state = StateClosing
	c.mu.Unlock()

	logrus.Debugf("stomp client: closing connection to STOMP server")
	c.transport.Close(func(err error) { c.handleTransportClosed(err, onClosed) })
}

// State returns the client's current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) handleTransportConnected(err error) {
	if err != nil {
		logrus.Debugf("stomp client: could not connect to server: %v", err)
		c.mu.Lock()
		c.state = StateClosed
		c.mu.Unlock()
		c.notifyConnected(ResultErrorConnectingWebSocket)
		return
	}

	c.mu.Lock()
	c.state = StateWsConnected
	username := c.username
	password := c.password
	c.mu.Unlock()

	frame := stomp.NewConnectFrame(c.transport.ServerURL(), username, password)
	if frame.ParseStatus() != stomp.ParseOk {
		// Credentials carrying frame delimiters break the grammar.
		logrus.Warnf("stomp client: could not build a valid CONNECT frame: %s", frame.ParseStatus())
		c.mu.Lock()
		c.state = StateClosed
		c.mu.Unlock()
		c.notifyConnected(ResultErrorConnectingStomp)
		return
	}

	c.mu.Lock()
	c.state = StateStompConnecting
	c.mu.Unlock()
	c.transport.Send(frame.String(), c.handleConnectFrameSent)
}

func (c *Client) handleConnectFrameSent(err error) {
	if err == nil {
		return
	}
	logrus.Debugf("stomp client: could not send CONNECT frame: %v", err)
	c.mu.Lock()
	c.state = StateClosed
	c.mu.Unlock()
	c.notifyConnected(ResultErrorConnectingStomp)
}

func (c *Client) handleTransportMessage(message string) {
	frame := stomp.NewFrame(message)
	if frame.ParseStatus() != stomp.ParseOk {
		logrus.Debugf("stomp client: dropping message that does not parse as a STOMP frame: %s", frame.ParseStatus())
		return
	}

	switch frame.Command() {
	case stomp.CommandConnected:
		c.handleStompConnected(frame)
	case stomp.CommandReceipt:
		c.handleStompReceipt(frame)
	case stomp.CommandMessage:
		c.handleStompMessage(frame)
	case stomp.CommandError:
		// The server closes the link right after an ERROR frame; the drop is
		// reported through onDisconnected, not here.
		logrus.Warnf("stomp client: server reported an error: %s", frame.Body())
	default:
		logrus.Debugf("stomp client: dropping unexpected %s frame", frame.Command())
	}
}

func (c *Client) handleTransportDisconnected(err error) {
	c.mu.Lock()
	c.state = StateClosed
	onDisconnected := c.onDisconnected
	c.onDisconnected = nil
	// The server never confirmed the session if this fires before CONNECTED;
	// bad credentials surface here and only here.
	c.onConnected = nil
	c.subscriptions = map[string]subscription{}
	c.mu.Unlock()

	logrus.Debugf("stomp client: transport disconnected: %v", err)
	if onDisconnected == nil {
		return
	}
	result := ResultOk
	if err != nil {
		result = ResultWebSocketServerDisconnected
	}
	c.callbacks.post(func() { onDisconnected(result) })
}

func (c *Client) handleTransportClosed(err error, onClosed OnClosed) {
	c.mu.Lock()
	c.state = StateClosed
	c.subscriptions = map[string]subscription{}
	c.mu.Unlock()

	if onClosed == nil {
		return
	}
	result := ResultOk
	if err != nil {
		logrus.Debugf("stomp client: could not close the connection: %v", err)
		result = ResultCouldNotCloseWebSocketConnection
	}
	c.callbacks.post(func() { onClosed(result) })
}

func (c *Client) handleSubscribeFrameSent(err error, subscriptionID string, sub subscription) {
	if err != nil {
		logrus.Debugf("stomp client: could not subscribe to %s: %v", sub.destination, err)
		if sub.onSubscribed != nil {
			c.callbacks.post(func() { sub.onSubscribed(ResultCouldNotSendSubscribeFrame, "") })
		}
		return
	}
	c.mu.Lock()
	c.subscriptions[subscriptionID] = sub
	c.mu.Unlock()
}

func (c *Client) handleStompConnected(frame stomp.Frame) {
	c.mu.Lock()
	if c.state == StateStompConnecting {
		c.state = StateStompConnected
	}
	c.mu.Unlock()

	logrus.Debugf("stomp client: connected, server version %s", frame.HeaderValue(stomp.HeaderVersion))
	c.notifyConnected(ResultOk)
}

func (c *Client) handleStompReceipt(frame stomp.Frame) {
	receiptID := frame.HeaderValue(stomp.HeaderReceiptID)

	c.mu.Lock()
	sub, ok := c.subscriptions[receiptID]
	c.mu.Unlock()
	if !ok {
		logrus.Debugf("stomp client: no subscription matches receipt %s", receiptID)
		return
	}

	logrus.Debugf("stomp client: subscription %s confirmed", receiptID)
	if sub.onSubscribed != nil {
		c.callbacks.post(func() { sub.onSubscribed(ResultOk, receiptID) })
	}
}

func (c *Client) handleStompMessage(frame stomp.Frame) {
	destination := frame.HeaderValue(stomp.HeaderDestination)
	subscriptionID := frame.HeaderValue(stomp.HeaderSubscription)

	c.mu.Lock()
	sub, ok := c.subscriptions[subscriptionID]
	c.mu.Unlock()
	if !ok {
		logrus.Debugf("stomp client: dropping message for unknown subscription %s", subscriptionID)
		return
	}
	if sub.destination != destination {
		logrus.Debugf("stomp client: dropping message for %s: destination %s does not match %s",
			subscriptionID, destination, sub.destination)
		return
	}

	if sub.onMessage != nil {
		body := frame.Body()
		c.callbacks.post(func() { sub.onMessage(ResultOk, body) })
	}
}

// notifyConnected delivers the handshake outcome at most once.
func (c *Client) notifyConnected(result Result) {
	c.mu.Lock()
	onConnected := c.onConnected
	c.onConnected = nil
	c.mu.Unlock()

	if onConnected != nil {
		c.callbacks.post(func() { onConnected(result) })
	}
}
