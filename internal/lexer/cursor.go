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

// Package lexer tokenizes Matcha template source into a stream of Tokens
// with source spans, preserving literal whitespace exactly as written.
package lexer

import (
	"fmt"
	"strings"
)

// Cursor is a position in the template source. Line and Column are 1-based;
// Offset is the 0-based byte offset, kept alongside Line/Column because span
// invariants (monotonic, no gaps) are naturally stated in byte terms.
type Cursor struct {
	Offset, Line, Column int
}

// CursorInit is the position at the beginning of a source string.
var CursorInit = Cursor{Offset: 0, Line: 1, Column: 1}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Line, c.Column)
}

// AdvancedBy returns a new Cursor advanced past consumed, which must be the
// bytes of the source immediately following c. Newlines in consumed increment
// the line number and reset the column; other bytes increment the column.
func (c Cursor) AdvancedBy(consumed string) Cursor {
	c.Offset += len(consumed)
	if newlines := strings.Count(consumed, "\n"); newlines > 0 {
		c.Line += newlines
		c.Column = len(consumed) - strings.LastIndex(consumed, "\n")
		return c
	}
	c.Column += len(consumed)
	return c
}

// Span is a half-open byte range in the template source, used for error
// reporting and for the monotonic-coverage invariant over a token stream.
type Span struct {
	Start, End Cursor
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
