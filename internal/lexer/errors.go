// Copyright 2026 Matcha Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexer

import "fmt"

// DelimiterKind names which of the four opening delimiters was left
// unterminated, for use in UnterminatedDelimiterError messages.
type DelimiterKind int

const (
	DelimiterIdentifier DelimiterKind = iota // {{
	DelimiterBuilder                         // {[
	DelimiterControl                         // {%
	DelimiterDeclaration                     // {>
)

func (k DelimiterKind) String() string {
	switch k {
	case DelimiterIdentifier:
		return "{{"
	case DelimiterBuilder:
		return "{["
	case DelimiterControl:
		return "{%"
	case DelimiterDeclaration:
		return "{>"
	default:
		return "?"
	}
}

// UnterminatedDelimiterError reports an opening delimiter with no matching
// close before the end of the source.
type UnterminatedDelimiterError struct {
	Kind DelimiterKind
	Open Cursor
}

func (e *UnterminatedDelimiterError) Error() string {
	return fmt.Sprintf("%s: unterminated %q delimiter", e.Open, e.Kind)
}

// UnknownKeywordError reports a {% %} or {> EOL body whose leading token is
// not one of the recognized keywords.
type UnknownKeywordError struct {
	Span Span
	Got  string
}

func (e *UnknownKeywordError) Error() string {
	return fmt.Sprintf("%s: unknown keyword %q", e.Span, e.Got)
}

// MalformedDirectiveError reports a recognized keyword whose body does not
// match the expected shape (e.g. `for` without `in`).
type MalformedDirectiveError struct {
	Span     Span
	Expected string
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("%s: malformed directive, expected %s", e.Span, e.Expected)
}
