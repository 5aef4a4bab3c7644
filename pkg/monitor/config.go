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
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from the "30s" / "1m" YAML
// notation.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Wrapf(err, "parsing duration %q", raw)
	}
	*d = Duration(parsed)
	return nil
}

// Config describes one monitor run.
type Config struct {
	Server struct {
		// URL is the server host name, without scheme or port.
		URL string `yaml:"url"`
		// Endpoint is the path of the events feed.
		Endpoint string `yaml:"endpoint"`
		Port     string `yaml:"port"`
		// CACertFile optionally points at a PEM bundle used to verify the
		// server certificate.
		CACertFile string `yaml:"ca_cert_file"`
	} `yaml:"server"`

	Credentials struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"credentials"`

	Layout struct {
		// URL points at the network-layout document.
		URL string `yaml:"url"`
		// File is where the downloaded document is stored. Empty means a
		// file in the system temporary directory.
		File string `yaml:"file"`
	} `yaml:"layout"`

	// Destination is the STOMP destination of the passenger events feed.
	Destination string `yaml:"destination"`

	// ReportInterval is how often the monitor logs a crowding report.
	ReportInterval Duration `yaml:"report_interval"`
}

// LoadConfig reads a YAML configuration file and applies defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing %s", path)
	}
	cfg.applyDefaults()
	return cfg, cfg.validate()
}

func (c *Config) applyDefaults() {
	if c.Server.Endpoint == "" {
		c.Server.Endpoint = "/network-events"
	}
	if c.Server.Port == "" {
		c.Server.Port = "443"
	}
	if c.Destination == "" {
		c.Destination = "/passengers"
	}
	if c.ReportInterval == 0 {
		c.ReportInterval = Duration(30 * time.Second)
	}
}

func (c *Config) validate() error {
	if c.Server.URL == "" {
		return errors.New("server.url is required")
	}
	if c.Layout.URL == "" {
		return errors.New("layout.url is required")
	}
	return nil
}
