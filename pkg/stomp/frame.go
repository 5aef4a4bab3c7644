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

package stomp

import (
	"strconv"
	"strings"
)

const (
	newlineCharacter = '\n'
	colonCharacter   = ':'
	nullCharacter    = '\x00'
)

// HeaderEntry is one (name, value) pair of a frame's header map.
type HeaderEntry struct {
	Name  Header
	Value string
}

// Frame is one parsed STOMP 1.2 frame. The raw wire message is kept as the
// backing storage; the command token, header values and body are substrings
// sharing it. A Frame is created once and never mutated.
//
// When ParseStatus is not ParseOk no other accessor is defined for reading.
type Frame struct {
	content string
	command Command
	headers []HeaderEntry
	body    string
	status  ParseError
}

// NewFrame parses and validates one wire message. It never fails: every
// input, valid or not, yields a Frame carrying the outcome in ParseStatus.
func NewFrame(content string) Frame {
	frame := Frame{content: content}
	frame.status = frame.parse()
	if frame.status == ParseOk {
		frame.status = frame.validate()
	}
	return frame
}

// Command returns the frame command.
func (f Frame) Command() Command {
	return f.command
}

// ParseStatus reports the parse and validation outcome of the frame.
func (f Frame) ParseStatus() ParseError {
	return f.status
}

// HasHeader reports whether the header appears in the frame.
func (f Frame) HasHeader(header Header) bool {
	for _, entry := range f.headers {
		if entry.Name == header {
			return true
		}
	}
	return false
}

// HeaderValue returns the value of the header, or the empty string when the
// header is absent. When the same header appears multiple times on the wire
// the first occurrence wins.
func (f Frame) HeaderValue(header Header) string {
	for _, entry := range f.headers {
		if entry.Name == header {
			return entry.Value
		}
	}
	return ""
}

// AllHeaders returns the header map in insertion order, first occurrence of
// each name only. The returned slice must not be modified.
func (f Frame) AllHeaders() []HeaderEntry {
	return f.headers
}

// Body returns the frame body.
func (f Frame) Body() string {
	return f.body
}

// String serializes the frame back to its wire representation. The output
// re-parses to a frame equal to this one.
func (f Frame) String() string {
	var builder Builder
	builder.SetCommand(f.command)
	for _, entry := range f.headers {
		builder.AddHeader(entry.Name, entry.Value)
	}
	builder.SetBody(f.body)
	return builder.String()
}

// Equal reports whether both frames carry the same parse status and, when
// parsed successfully, the same command, header map and body.
func (f Frame) Equal(other Frame) bool {
	if f.status != other.status {
		return false
	}
	if f.status != ParseOk {
		return true
	}
	if f.command != other.command || f.body != other.body {
		return false
	}
	if len(f.headers) != len(other.headers) {
		return false
	}
	for _, entry := range f.headers {
		if !other.HasHeader(entry.Name) || other.HeaderValue(entry.Name) != entry.Value {
			return false
		}
	}
	return true
}

func (f *Frame) parse() ParseError {
	content := f.content

	// Pre-checks, in order.
	if len(content) == 0 {
		return ParseNoData
	}
	if content[0] == newlineCharacter {
		return ParseMissingCommand
	}
	if content[len(content)-1] != nullCharacter {
		return ParseMissingClosingNullCharacter
	}
	commandEnd := strings.IndexByte(content, newlineCharacter)
	if commandEnd < 0 {
		return ParseNoNewlineCharacters
	}
	if !strings.Contains(content, "\n\n") {
		return ParseMissingBodyNewline
	}

	command, ok := commandFromToken(content[:commandEnd])
	if !ok {
		return ParseInvalidCommand
	}
	f.command = command

	cursor, status := f.parseHeaders(commandEnd + 1)
	if status != ParseOk {
		return status
	}

	return f.parseBody(cursor)
}

// parseHeaders scans the header lines starting at cursor. On success it
// returns the position of the empty line separating headers from the body.
func (f *Frame) parseHeaders(cursor int) (int, ParseError) {
	content := f.content

	for {
		if cursor >= len(content) {
			return 0, ParseMissingBodyNewline
		}
		switch content[cursor] {
		case newlineCharacter:
			// Empty line: no more headers.
			return cursor, ParseOk
		case colonCharacter:
			return 0, ParseNoHeaderName
		case nullCharacter:
			return 0, ParseMissingBodyNewline
		}

		colon := strings.IndexByte(content[cursor:], colonCharacter)
		newline := strings.IndexByte(content[cursor:], newlineCharacter)
		if colon < 0 {
			return 0, ParseNoHeaderValue
		}
		if newline < 0 {
			return 0, ParseMissingLastHeaderNewline
		}
		if newline < colon {
			return 0, ParseNoHeaderValue
		}
		colon += cursor
		newline += cursor
		if content[colon+1] == content[newline] {
			return 0, ParseEmptyHeaderValue
		}

		header, ok := headerFromToken(content[cursor:colon])
		if !ok {
			return 0, ParseInvalidHeader
		}

		// First occurrence wins; later duplicates are discarded.
		if !f.HasHeader(header) {
			f.headers = append(f.headers, HeaderEntry{Name: header, Value: content[colon+1 : newline]})
		}
		cursor = newline + 1
	}
}

func (f *Frame) parseBody(cursor int) ParseError {
	content := f.content

	if content[cursor] != newlineCharacter {
		return ParseMissingBodyNewline
	}
	cursor++

	if cursor >= len(content) {
		return ParseMissingClosingNullCharacter
	}
	null := strings.IndexByte(content[cursor:], nullCharacter)
	if null < 0 {
		return ParseMissingClosingNullCharacter
	}
	null += cursor

	if f.HasHeader(HeaderContentLength) {
		// The declared length owns the body; null bytes inside it are data.
		// The last byte is the closing null.
		f.body = content[cursor : len(content)-1]
		return ParseOk
	}
	if null+1 != len(content) {
		return ParseJunkAfterBody
	}
	f.body = content[cursor:null]
	return ParseOk
}

func (f *Frame) validate() ParseError {
	if f.HasHeader(HeaderContentLength) {
		declared, err := strconv.Atoi(f.HeaderValue(HeaderContentLength))
		if err != nil || declared < 0 {
			return ParseInvalidHeaderValue
		}
		if declared != len(f.body) {
			return ParseContentLengthsDontMatch
		}
	}

	for _, required := range requiredHeaders(f.command) {
		if !f.HasHeader(required) {
			return ParseMissingRequiredHeader
		}
	}
	return ParseOk
}

var (
	requireHostAndVersion = []Header{HeaderAcceptVersion, HeaderHost}
	requireVersion        = []Header{HeaderVersion}
	requireDestination    = []Header{HeaderDestination}
	requireSubscribe      = []Header{HeaderDestination, HeaderID}
	requireMessage        = []Header{HeaderDestination, HeaderMessageID, HeaderSubscription}
	requireReceiptID      = []Header{HeaderReceiptID}
	requireID             = []Header{HeaderID}
	requireTransaction    = []Header{HeaderTransaction}
)

// requiredHeaders returns the headers a command cannot appear without.
func requiredHeaders(command Command) []Header {
	switch command {
	case CommandConnect, CommandStomp:
		return requireHostAndVersion
	case CommandConnected:
		return requireVersion
	case CommandSend:
		return requireDestination
	case CommandSubscribe:
		return requireSubscribe
	case CommandMessage:
		return requireMessage
	case CommandReceipt:
		return requireReceiptID
	case CommandUnsubscribe, CommandAck, CommandNack:
		return requireID
	case CommandBegin, CommandCommit, CommandAbort:
		return requireTransaction
	default:
		return nil
	}
}
