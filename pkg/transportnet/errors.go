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

package transportnet

import (
	"github.com/pkg/errors"
)

var (
	// ErrAlreadyExists is returned when a station, line or route with the same
	// id is already in the network.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnknownStation is returned when an operation names a station the
	// network does not contain.
	ErrUnknownStation = errors.New("unknown station")
	// ErrUnknownLine is returned when an operation names a line the network
	// does not contain.
	ErrUnknownLine = errors.New("unknown line")
	// ErrUnknownRoute is returned when an operation names a route its line
	// does not have.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrNotAdjacent is returned when two stations share no direct edge, or
	// when a route does not lead from one station to the other.
	ErrNotAdjacent = errors.New("stations are not adjacent")
	// ErrMalformedLine is returned when a line or one of its routes breaks a
	// well-formedness rule.
	ErrMalformedLine = errors.New("malformed line")
)

// IsAlreadyExistsError returns true if the unwrapped error is ErrAlreadyExists.
func IsAlreadyExistsError(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsUnknownStationError returns true if the unwrapped error is ErrUnknownStation.
func IsUnknownStationError(err error) bool {
	return errors.Is(err, ErrUnknownStation)
}
