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

// Package download fetches the network-layout document the monitor boots
// from.
package download

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/docker/go-connections/tlsconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// File downloads fileURL to destination. When caCertFile is not empty the
// server certificate is verified against that PEM bundle instead of the
// system pool.
func File(ctx context.Context, fileURL, destination, caCertFile string) error {
	tlsConfig, err := tlsconfig.Client(tlsconfig.Options{CAFile: caCertFile, ExclusiveRootPools: true})
	if err != nil {
		return errors.Wrap(err, "building TLS configuration")
	}
	client := &http.Client{
		Transport: &http.Transport{TLSClientConfig: tlsConfig},
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return errors.Wrapf(err, "requesting %s", fileURL)
	}

	logrus.Debugf("download: fetching %s", fileURL)
	response, err := client.Do(request)
	if err != nil {
		return errors.Wrapf(err, "fetching %s", fileURL)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return errors.Errorf("fetching %s: unexpected status %s", fileURL, response.Status)
	}

	file, err := os.Create(destination)
	if err != nil {
		return errors.Wrapf(err, "creating %s", destination)
	}
	defer file.Close()

	if _, err := io.Copy(file, response.Body); err != nil {
		return errors.Wrapf(err, "writing %s", destination)
	}
	return file.Close()
}

// ParseJSONFile reads one JSON document from disk into v.
func ParseJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}
