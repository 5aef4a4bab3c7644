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

// Package websocket provides the production transport of the STOMP client:
// a text-message WebSocket connection over TLS.
package websocket

import (
	"context"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/docker/go-connections/tlsconfig"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/pbielenia/network-monitor/pkg/stompclient"
)

const defaultConnectTimeout = 30 * time.Second

// closeWriteTimeout bounds the write of the close control frame.
const closeWriteTimeout = 5 * time.Second

// Options configure a Client.
type Options struct {
	// ServerURL is the server host name, without scheme or port.
	ServerURL string
	// Endpoint is the path of the events feed on the server.
	Endpoint string
	// Port is the TLS port, usually 443.
	Port string
	// CACertFile optionally points at a PEM bundle used to verify the
	// server certificate instead of the system pool.
	CACertFile string
	// InsecureSkipVerify disables server certificate verification. Tests
	// only.
	InsecureSkipVerify bool
	// ConnectTimeout bounds connection establishment. Zero means the
	// default of 30 seconds.
	ConnectTimeout time.Duration
	// Clock drives the connect watchdog. Nil means the real clock.
	Clock clockwork.Clock
}

// Client is a WebSocket implementation of stompclient.Transport. A Client
// serves one connection.
type Client struct {
	opts   Options
	dialer *websocket.Dialer
	clock  clockwork.Clock

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// NewClient creates a client. No connection is initiated.
func NewClient(opts Options) (*Client, error) {
	tlsConfig, err := tlsconfig.Client(tlsconfig.Options{
		CAFile:             opts.CACertFile,
		ExclusiveRootPools: true,
		InsecureSkipVerify: opts.InsecureSkipVerify,
	})
	if err != nil {
		return nil, err
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Client{
		opts:  opts,
		clock: clock,
		dialer: &websocket.Dialer{
			Proxy:           websocket.DefaultDialer.Proxy,
			TLSClientConfig: tlsConfig,
		},
	}, nil
}

// Connect dials the server and starts the receive loop. onConnected fires
// exactly once; onMessage fires once per received text message while the
// connection lasts; onDisconnected fires once when the link goes down after
// a successful connect, with a nil error when the shutdown was local.
func (c *Client) Connect(onConnected func(error), onMessage func(string), onDisconnected func(error)) {
	go func() {
		target := url.URL{
			Scheme: "wss",
			Host:   net.JoinHostPort(c.opts.ServerURL, c.opts.Port),
			Path:   c.opts.Endpoint,
		}
		logrus.Debugf("websocket: connecting to %s", target.String())

		ctx, cancel := context.WithCancel(context.Background())
		dialDone := make(chan struct{})
		go func() {
			// The watchdog cancels a dial that outlives the connect timeout.
			select {
			case <-c.clock.After(c.opts.ConnectTimeout):
				cancel()
			case <-dialDone:
			}
		}()

		conn, resp, err := c.dialer.DialContext(ctx, target.String(), nil)
		close(dialDone)
		cancel()
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			logrus.Debugf("websocket: could not connect to %s: %v", target.String(), err)
			onConnected(err)
			return
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		onConnected(nil)

		c.readPump(conn, onMessage, onDisconnected)
	}()
}

// Send writes one text message. onSent fires exactly once with the write
// outcome; sending while not connected reports stompclient.ErrNotConnected.
func (c *Client) Send(message string, onSent func(error)) {
	c.mu.Lock()
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		onSent(stompclient.ErrNotConnected)
		return
	}
	// The mutex serializes concurrent writers; gorilla allows only one.
	err := conn.WriteMessage(websocket.TextMessage, []byte(message))
	c.mu.Unlock()
	onSent(err)
}

// Close performs the closing handshake and tears the connection down.
// Closing while not connected reports stompclient.ErrNotConnected.
func (c *Client) Close(onClosed func(error)) {
	c.mu.Lock()
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		onClosed(stompclient.ErrNotConnected)
		return
	}
	c.closed = true
	c.conn = nil
	c.mu.Unlock()

	logrus.Debugf("websocket: closing connection to %s", c.opts.ServerURL)
	err := conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeWriteTimeout))
	if closeErr := conn.Close(); err == nil {
		err = closeErr
	}
	onClosed(err)
}

// ServerURL returns the host name the client connects to.
func (c *Client) ServerURL() string {
	return c.opts.ServerURL
}

func (c *Client) readPump(conn *websocket.Conn, onMessage func(string), onDisconnected func(error)) {
	for {
		_, data, err := conn.ReadMessage()
		if err == nil {
			onMessage(string(data))
			continue
		}

		c.mu.Lock()
		closedLocally := c.closed
		c.conn = nil
		c.mu.Unlock()

		if closedLocally {
			logrus.Debugf("websocket: connection closed")
			onDisconnected(nil)
		} else {
			logrus.Debugf("websocket: connection dropped: %v", err)
			onDisconnected(err)
		}
		return
	}
}
