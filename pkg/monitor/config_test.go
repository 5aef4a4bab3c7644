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
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  url: ltnm.learncppthroughprojects.com
  endpoint: /network-events
  port: "443"
credentials:
  username: monitor
  password: secret
layout:
  url: https://ltnm.learncppthroughprojects.com/network-layout.json
destination: /passengers
report_interval: 1m
`)

	cfg, err := LoadConfig(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Server.URL, "ltnm.learncppthroughprojects.com")
	assert.Equal(t, cfg.Credentials.Username, "monitor")
	assert.Equal(t, cfg.Destination, "/passengers")
	assert.Equal(t, cfg.ReportInterval, Duration(time.Minute))
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  url: ltnm.learncppthroughprojects.com
layout:
  url: https://ltnm.learncppthroughprojects.com/network-layout.json
`)

	cfg, err := LoadConfig(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Server.Endpoint, "/network-events")
	assert.Equal(t, cfg.Server.Port, "443")
	assert.Equal(t, cfg.Destination, "/passengers")
	assert.Equal(t, cfg.ReportInterval, Duration(30*time.Second))
}

func TestLoadConfigRejectsIncomplete(t *testing.T) {
	path := writeConfig(t, `
layout:
  url: https://ltnm.learncppthroughprojects.com/network-layout.json
`)
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "server.url is required")

	path = writeConfig(t, `
server:
  url: ltnm.learncppthroughprojects.com
`)
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "layout.url is required")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Assert(t, err != nil)
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := writeConfig(t, `
server:
  url: ltnm.learncppthroughprojects.com
layout:
  url: https://ltnm.learncppthroughprojects.com/network-layout.json
report_interval: soon
`)
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parsing duration")
}

func TestLoadConfigBrokenYAML(t *testing.T) {
	path := writeConfig(t, "server: [")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parsing")
}
