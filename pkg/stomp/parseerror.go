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

// ParseError is the outcome of parsing and validating one frame. It is a
// status tag attached to the Frame, not a Go error: ParseOk marks a usable
// frame, every other value marks the first grammar or validation rule the
// input broke.
type ParseError int

const (
	ParseOk ParseError = iota
	ParseNoData
	ParseMissingCommand
	ParseNoNewlineCharacters
	ParseInvalidCommand
	ParseNoHeaderName
	ParseInvalidHeader
	ParseNoHeaderValue
	ParseEmptyHeaderValue
	ParseMissingLastHeaderNewline
	ParseMissingBodyNewline
	ParseMissingClosingNullCharacter
	ParseJunkAfterBody
	ParseContentLengthsDontMatch
	ParseInvalidHeaderValue
	ParseMissingRequiredHeader
	ParseUndefinedError
)

var parseErrorNames = map[ParseError]string{
	ParseOk:                          "Ok",
	ParseNoData:                      "NoData",
	ParseMissingCommand:              "MissingCommand",
	ParseNoNewlineCharacters:         "NoNewlineCharacters",
	ParseInvalidCommand:              "InvalidCommand",
	ParseNoHeaderName:                "NoHeaderName",
	ParseInvalidHeader:               "InvalidHeader",
	ParseNoHeaderValue:               "NoHeaderValue",
	ParseEmptyHeaderValue:            "EmptyHeaderValue",
	ParseMissingLastHeaderNewline:    "MissingLastHeaderNewline",
	ParseMissingBodyNewline:          "MissingBodyNewline",
	ParseMissingClosingNullCharacter: "MissingClosingNullCharacter",
	ParseJunkAfterBody:               "JunkAfterBody",
	ParseContentLengthsDontMatch:     "ContentLengthsDontMatch",
	ParseInvalidHeaderValue:          "InvalidHeaderValue",
	ParseMissingRequiredHeader:       "MissingRequiredHeader",
	ParseUndefinedError:              "UndefinedError",
}

func (e ParseError) String() string {
	name, ok := parseErrorNames[e]
	if !ok {
		return parseErrorNames[ParseUndefinedError]
	}
	return name
}
