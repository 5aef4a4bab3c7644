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

// Header is a recognized STOMP 1.2 header name. Header tokens outside the
// recognized set make the whole frame fail to parse.
type Header int

const (
	HeaderInvalid Header = iota
	HeaderAcceptVersion
	HeaderAck
	HeaderContentLength
	HeaderContentType
	HeaderDestination
	HeaderHeartBeat
	HeaderHost
	HeaderID
	HeaderLogin
	HeaderMessage
	HeaderMessageID
	HeaderPasscode
	HeaderReceipt
	HeaderReceiptID
	HeaderServer
	HeaderSession
	HeaderSubscription
	HeaderTransaction
	HeaderVersion
)

var headerTokens = map[Header]string{
	HeaderInvalid:       "invalid-header",
	HeaderAcceptVersion: "accept-version",
	HeaderAck:           "ack",
	HeaderContentLength: "content-length",
	HeaderContentType:   "content-type",
	HeaderDestination:   "destination",
	HeaderHeartBeat:     "heart-beat",
	HeaderHost:          "host",
	HeaderID:            "id",
	HeaderLogin:         "login",
	HeaderMessage:       "message",
	HeaderMessageID:     "message-id",
	HeaderPasscode:      "passcode",
	HeaderReceipt:       "receipt",
	HeaderReceiptID:     "receipt-id",
	HeaderServer:        "server",
	HeaderSession:       "session",
	HeaderSubscription:  "subscription",
	HeaderTransaction:   "transaction",
	HeaderVersion:       "version",
}

var headersByToken = func() map[string]Header {
	m := make(map[string]Header, len(headerTokens))
	for header, token := range headerTokens {
		m[token] = header
	}
	return m
}()

// String returns the wire token of the header name.
func (h Header) String() string {
	token, ok := headerTokens[h]
	if !ok {
		return headerTokens[HeaderInvalid]
	}
	return token
}

func headerFromToken(token string) (Header, bool) {
	header, ok := headersByToken[token]
	return header, ok
}
