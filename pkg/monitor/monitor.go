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

// Package monitor ties the pieces together: it downloads the network
// layout, builds the transport network, connects the STOMP client to the
// live events feed and keeps the passenger tallies current.
package monitor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pbielenia/network-monitor/internal/download"
	"github.com/pbielenia/network-monitor/internal/websocket"
	"github.com/pbielenia/network-monitor/pkg/stompclient"
	"github.com/pbielenia/network-monitor/pkg/transportnet"
)

// eventBuffer bounds how far the feed may run ahead of the recorder.
const eventBuffer = 64

// Monitor is one run of the network monitor.
type Monitor struct {
	cfg       Config
	clock     clockwork.Clock
	transport stompclient.Transport
	network   *transportnet.TransportNetwork
	eventHook func(transportnet.ID, transportnet.PassengerEvent)
}

// Option adjusts a Monitor, mainly for tests.
type Option func(*Monitor)

// WithTransport substitutes the WebSocket transport.
func WithTransport(transport stompclient.Transport) Option {
	return func(m *Monitor) { m.transport = transport }
}

// WithClock substitutes the clock driving the periodic crowding report.
func WithClock(clock clockwork.Clock) Option {
	return func(m *Monitor) { m.clock = clock }
}

// WithEventHook registers a function called after every recorded passenger
// event.
func WithEventHook(hook func(transportnet.ID, transportnet.PassengerEvent)) Option {
	return func(m *Monitor) { m.eventHook = hook }
}

// New creates a monitor. Nothing runs until Run.
func New(cfg Config, opts ...Option) *Monitor {
	m := &Monitor{
		cfg:   cfg,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Network returns the transport network once Run has built it.
func (m *Monitor) Network() *transportnet.TransportNetwork {
	return m.network
}

// Run executes the monitor until the context is cancelled or the server
// drops the connection. A cancelled context is a normal shutdown and is not
// reported as an error.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.buildNetwork(ctx); err != nil {
		return err
	}

	transport := m.transport
	if transport == nil {
		var err error
		transport, err = websocket.NewClient(websocket.Options{
			ServerURL:  m.cfg.Server.URL,
			Endpoint:   m.cfg.Server.Endpoint,
			Port:       m.cfg.Server.Port,
			CACertFile: m.cfg.Server.CACertFile,
		})
		if err != nil {
			return errors.Wrap(err, "creating the WebSocket transport")
		}
	}
	client := stompclient.New(transport)

	connected := make(chan stompclient.Result, 1)
	disconnected := make(chan stompclient.Result, 1)
	client.Connect(m.cfg.Credentials.Username, m.cfg.Credentials.Password,
		func(result stompclient.Result) { connected <- result },
		func(result stompclient.Result) { disconnected <- result })

	select {
	case <-ctx.Done():
		return m.shutdown(client, nil)
	case result := <-disconnected:
		return errors.Errorf("server disconnected during the handshake: %s", result)
	case result := <-connected:
		if result != stompclient.ResultOk {
			return errors.Errorf("could not connect to the STOMP server: %s", result)
		}
	}

	subscribed := make(chan stompclient.Result, 1)
	events := make(chan string, eventBuffer)
	client.Subscribe(m.cfg.Destination,
		func(result stompclient.Result, _ string) { subscribed <- result },
		func(_ stompclient.Result, body string) { events <- body })

	select {
	case <-ctx.Done():
		return m.shutdown(client, nil)
	case result := <-disconnected:
		return errors.Errorf("server disconnected before confirming the subscription: %s", result)
	case result := <-subscribed:
		if result != stompclient.ResultOk {
			return m.shutdown(client, errors.Errorf("could not subscribe to %s: %s", m.cfg.Destination, result))
		}
	}
	logrus.Infof("monitor: recording passenger events from %s", m.cfg.Destination)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return m.recordEvents(groupCtx, events, disconnected) })
	group.Go(func() error { return m.reportCrowding(groupCtx) })

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return m.shutdown(client, err)
}

func (m *Monitor) buildNetwork(ctx context.Context) error {
	layoutFile := m.cfg.Layout.File
	if layoutFile == "" {
		layoutFile = filepath.Join(os.TempDir(), "network-layout.json")
	}
	if err := download.File(ctx, m.cfg.Layout.URL, layoutFile, m.cfg.Server.CACertFile); err != nil {
		return errors.Wrap(err, "downloading the network layout")
	}
	var layout json.RawMessage
	if err := download.ParseJSONFile(layoutFile, &layout); err != nil {
		return errors.Wrap(err, "reading the network layout")
	}
	network, err := transportnet.FromJSON(layout)
	if err != nil {
		return errors.Wrap(err, "building the transport network")
	}
	m.network = network
	return nil
}

func (m *Monitor) recordEvents(ctx context.Context, events <-chan string, disconnected <-chan stompclient.Result) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result := <-disconnected:
			return errors.Errorf("server disconnected: %s", result)
		case body := <-events:
			station, event, err := decodeEvent(body)
			if err != nil {
				logrus.Warnf("monitor: dropping event: %v", err)
				continue
			}
			if err := m.network.RecordPassengerEvent(station, event); err != nil {
				logrus.Warnf("monitor: dropping event for %s: %v", station, err)
				continue
			}
			if m.eventHook != nil {
				m.eventHook(station, event)
			}
		}
	}
}

// reportCrowding periodically logs that events from the destination are
// still being recorded. The line carries no per-station counts.
func (m *Monitor) reportCrowding(ctx context.Context) error {
	ticker := m.clock.NewTicker(time.Duration(m.cfg.ReportInterval))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			logrus.Infof("monitor: still recording events from %s", m.cfg.Destination)
		}
	}
}

// shutdown closes the client and folds its outcome into runErr.
func (m *Monitor) shutdown(client *stompclient.Client, runErr error) error {
	result := new(multierror.Error)
	result = multierror.Append(result, runErr)

	closed := make(chan stompclient.Result, 1)
	client.Close(func(r stompclient.Result) { closed <- r })
	switch r := <-closed; r {
	case stompclient.ResultOk, stompclient.ResultErrorNotConnected:
		// Already gone counts as closed.
	default:
		result = multierror.Append(result, errors.Errorf("could not close the connection: %s", r))
	}
	return result.ErrorOrNil()
}
