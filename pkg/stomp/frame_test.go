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
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestParseWellFormedFrame(t *testing.T) {
	frame := NewFrame("CONNECT\naccept-version:42\nhost:host.com\n\nFrame body\x00")

	assert.Equal(t, frame.ParseStatus(), ParseOk)
	assert.Equal(t, frame.Command(), CommandConnect)
	assert.Equal(t, frame.HeaderValue(HeaderAcceptVersion), "42")
	assert.Equal(t, frame.HeaderValue(HeaderHost), "host.com")
	assert.Equal(t, frame.Body(), "Frame body")
}

func TestParseEmptyBody(t *testing.T) {
	frame := NewFrame("CONNECT\naccept-version:42\nhost:host.com\n\n\x00")

	assert.Equal(t, frame.ParseStatus(), ParseOk)
	assert.Equal(t, frame.Body(), "")
}

func TestParseNoHeaders(t *testing.T) {
	frame := NewFrame("DISCONNECT\n\nFrame body\x00")

	assert.Equal(t, frame.ParseStatus(), ParseOk)
	assert.Equal(t, frame.Command(), CommandDisconnect)
	assert.Equal(t, len(frame.AllHeaders()), 0)
	assert.Equal(t, frame.Body(), "Frame body")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    ParseError
	}{
		{
			name:    "empty input",
			content: "",
			want:    ParseNoData,
		},
		{
			name:    "newline before command",
			content: "\nCONNECT\naccept-version:42\nhost:host.com\n\nFrame body\x00",
			want:    ParseMissingCommand,
		},
		{
			name:    "missing closing null",
			content: "CONNECT\naccept-version:42\nhost:host.com\n\nFrame body",
			want:    ParseMissingClosingNullCharacter,
		},
		{
			name:    "no newline characters",
			content: "CONNECT\x00",
			want:    ParseNoNewlineCharacters,
		},
		{
			name:    "no empty line before body",
			content: "CONNECT\naccept-version:42\nhost:host.com\nFrame body\x00",
			want:    ParseMissingBodyNewline,
		},
		{
			name:    "unknown command",
			content: "KONNECT\naccept-version:42\nhost:host.com\n\nFrame body\x00",
			want:    ParseInvalidCommand,
		},
		{
			name:    "lower-case command",
			content: "connect\naccept-version:42\nhost:host.com\n\nFrame body\x00",
			want:    ParseInvalidCommand,
		},
		{
			name:    "header line starts with colon",
			content: "CONNECT\n:42\nhost:host.com\n\nFrame body\x00",
			want:    ParseNoHeaderName,
		},
		{
			name:    "null in the headers block",
			content: "CONNECT\nhost:host.com\n\x00\n\n\x00",
			want:    ParseMissingBodyNewline,
		},
		{
			name:    "header line without colon",
			content: "CONNECT\naccept-version\nhost:host.com\n\nFrame body\x00",
			want:    ParseNoHeaderValue,
		},
		{
			name:    "empty header value",
			content: "CONNECT\naccept-version:\nhost:host.com\n\nFrame body\x00",
			want:    ParseEmptyHeaderValue,
		},
		{
			name:    "unknown header name",
			content: "CONNECT\nnot-a-header:42\nhost:host.com\n\nFrame body\x00",
			want:    ParseInvalidHeader,
		},
		{
			name:    "junk after the body null",
			content: "CONNECT\naccept-version:42\nhost:host.com\n\nFrame body\x00\n\njunk\n\x00",
			want:    ParseJunkAfterBody,
		},
		{
			name:    "content length does not match the body",
			content: "CONNECT\naccept-version:42\nhost:host.com\ncontent-length:9\n\nFrame body\x00",
			want:    ParseContentLengthsDontMatch,
		},
		{
			name:    "content length is not a number",
			content: "CONNECT\naccept-version:42\nhost:host.com\ncontent-length:ten\n\nFrame body\x00",
			want:    ParseInvalidHeaderValue,
		},
		{
			name:    "content length is negative",
			content: "CONNECT\naccept-version:42\nhost:host.com\ncontent-length:-10\n\nFrame body\x00",
			want:    ParseInvalidHeaderValue,
		},
		{
			name:    "connect without host",
			content: "CONNECT\naccept-version:42\n\nFrame body\x00",
			want:    ParseMissingRequiredHeader,
		},
		{
			name:    "stomp without accept-version",
			content: "STOMP\nhost:host.com\n\nFrame body\x00",
			want:    ParseMissingRequiredHeader,
		},
		{
			name:    "subscribe without id",
			content: "SUBSCRIBE\ndestination:/queue/a\n\n\x00",
			want:    ParseMissingRequiredHeader,
		},
		{
			name:    "message without subscription",
			content: "MESSAGE\ndestination:/queue/a\nmessage-id:m-001\n\n\x00",
			want:    ParseMissingRequiredHeader,
		},
		{
			name:    "receipt without receipt-id",
			content: "RECEIPT\n\n\x00",
			want:    ParseMissingRequiredHeader,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			frame := NewFrame(test.content)
			assert.Equal(t, frame.ParseStatus(), test.want)
		})
	}
}

func TestParseFirstHeaderOccurrenceWins(t *testing.T) {
	frame := NewFrame("CONNECT\naccept-version:42\naccept-version:43\nhost:host.com\n\nFrame body\x00")

	assert.Equal(t, frame.ParseStatus(), ParseOk)
	assert.Equal(t, frame.HeaderValue(HeaderAcceptVersion), "42")
}

func TestParseMatchingContentLength(t *testing.T) {
	frame := NewFrame("CONNECT\naccept-version:42\nhost:host.com\ncontent-length:10\n\nFrame body\x00")

	assert.Equal(t, frame.ParseStatus(), ParseOk)
	assert.Equal(t, frame.Body(), "Frame body")
}

func TestParseNullBytesInBodyWithContentLength(t *testing.T) {
	frame := NewFrame("MESSAGE\ndestination:/queue/a\nmessage-id:m-001\nsubscription:s-001\ncontent-length:5\n\nab\x00cd\x00")

	assert.Equal(t, frame.ParseStatus(), ParseOk)
	assert.Equal(t, frame.Body(), "ab\x00cd")
}

func TestParseRequiredHeadersPresent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		command Command
	}{
		{
			name:    "connected",
			content: "CONNECTED\nversion:1.2\n\n\x00",
			command: CommandConnected,
		},
		{
			name:    "send",
			content: "SEND\ndestination:/queue/a\n\nhello\x00",
			command: CommandSend,
		},
		{
			name:    "unsubscribe",
			content: "UNSUBSCRIBE\nid:s-001\n\n\x00",
			command: CommandUnsubscribe,
		},
		{
			name:    "ack",
			content: "ACK\nid:s-001\n\n\x00",
			command: CommandAck,
		},
		{
			name:    "nack",
			content: "NACK\nid:s-001\n\n\x00",
			command: CommandNack,
		},
		{
			name:    "begin",
			content: "BEGIN\ntransaction:tx1\n\n\x00",
			command: CommandBegin,
		},
		{
			name:    "commit",
			content: "COMMIT\ntransaction:tx1\n\n\x00",
			command: CommandCommit,
		},
		{
			name:    "abort",
			content: "ABORT\ntransaction:tx1\n\n\x00",
			command: CommandAbort,
		},
		{
			name:    "error",
			content: "ERROR\nmessage:malformed frame\n\n\x00",
			command: CommandError,
		},
		{
			name:    "message",
			content: "MESSAGE\ndestination:/queue/a\nmessage-id:m-001\nsubscription:s-001\n\n\x00",
			command: CommandMessage,
		},
		{
			name:    "receipt",
			content: "RECEIPT\nreceipt-id:s-001\n\n\x00",
			command: CommandReceipt,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			frame := NewFrame(test.content)
			assert.Equal(t, frame.ParseStatus(), ParseOk)
			assert.Equal(t, frame.Command(), test.command)
		})
	}
}

func TestHeaderValueAbsent(t *testing.T) {
	frame := NewFrame("DISCONNECT\n\n\x00")

	assert.Equal(t, frame.ParseStatus(), ParseOk)
	assert.Assert(t, !frame.HasHeader(HeaderReceipt))
	assert.Equal(t, frame.HeaderValue(HeaderReceipt), "")
}

func TestAllHeadersKeepsInsertionOrder(t *testing.T) {
	frame := NewFrame("SUBSCRIBE\ndestination:/queue/a\nid:s-001\nack:auto\n\n\x00")

	assert.Equal(t, frame.ParseStatus(), ParseOk)
	headers := frame.AllHeaders()
	assert.Equal(t, len(headers), 3)
	assert.Equal(t, headers[0].Name, HeaderDestination)
	assert.Equal(t, headers[1].Name, HeaderID)
	assert.Equal(t, headers[2].Name, HeaderAck)
}

func TestFrameStringRoundTrip(t *testing.T) {
	contents := []string{
		"CONNECT\naccept-version:42\nhost:host.com\n\nFrame body\x00",
		"CONNECTED\nversion:1.2\nsession:sess-0\n\n\x00",
		"MESSAGE\ndestination:/queue/a\nmessage-id:m-001\nsubscription:s-001\n\n{\"k\":1}\x00",
		"RECEIPT\nreceipt-id:s-001\n\n\x00",
	}
	for _, content := range contents {
		frame := NewFrame(content)
		assert.Equal(t, frame.ParseStatus(), ParseOk)

		reparsed := NewFrame(frame.String())
		assert.Assert(t, reparsed.Equal(frame), "round trip of %q", content)
		assert.DeepEqual(t, reparsed, frame, cmp.AllowUnexported(Frame{}))
	}
}

func TestCommandTokens(t *testing.T) {
	assert.Equal(t, CommandNack.String(), "NACK")
	assert.Equal(t, CommandUnsubscribe.String(), "UNSUBSCRIBE")
	assert.Equal(t, Command(999).String(), "INVALID_COMMAND")
}

func TestHeaderTokens(t *testing.T) {
	assert.Equal(t, HeaderAcceptVersion.String(), "accept-version")
	assert.Equal(t, HeaderContentLength.String(), "content-length")
	assert.Equal(t, HeaderMessageID.String(), "message-id")
	assert.Equal(t, Header(999).String(), "invalid-header")
}

func TestParseErrorNames(t *testing.T) {
	assert.Equal(t, ParseOk.String(), "Ok")
	assert.Equal(t, ParseContentLengthsDontMatch.String(), "ContentLengthsDontMatch")
	assert.Equal(t, ParseError(999).String(), "UndefinedError")
}
