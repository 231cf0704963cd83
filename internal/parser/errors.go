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

package parser

import (
	"fmt"

	"github.com/joeshaw/matchac/internal/lexer"
)

// UnmatchedCloserError reports a closer (else/endif/endfor/endfn) with no
// open construct on the block stack to close.
type UnmatchedCloserError struct {
	Span   lexer.Span
	Closer string
}

func (e *UnmatchedCloserError) Error() string {
	return fmt.Sprintf("%s: %q has no matching opener", e.Span, e.Closer)
}

// MismatchedCloserError reports a closer that doesn't match the innermost
// open construct, e.g. endfor closing an if.
type MismatchedCloserError struct {
	Span     lexer.Span
	Expected string
	Got      string
}

func (e *MismatchedCloserError) Error() string {
	return fmt.Sprintf("%s: expected %q, found %q", e.Span, e.Expected, e.Got)
}

// UnclosedBlockError reports end of input reached with a non-empty block
// stack; Open is the innermost unclosed construct's opening span.
type UnclosedBlockError struct {
	Open      lexer.Span
	Construct string
}

func (e *UnclosedBlockError) Error() string {
	return fmt.Sprintf("%s: unclosed %q at end of input", e.Open, e.Construct)
}

// TopLevelOnlyError reports with/import/fn appearing where only the template
// top level is legal: inside an if/for or inside a fn (so a fn inside a fn is
// rejected too).
type TopLevelOnlyError struct {
	Span      lexer.Span
	Construct string
}

func (e *TopLevelOnlyError) Error() string {
	return fmt.Sprintf("%s: %q is only legal at the top level", e.Span, e.Construct)
}

// DuplicateFunctionNameError reports a second {> fn / {> pub fn declaring a
// name already used by an earlier function in the same template.
type DuplicateFunctionNameError struct {
	Name   string
	First  lexer.Span
	Second lexer.Span
}

func (e *DuplicateFunctionNameError) Error() string {
	return fmt.Sprintf("%s: function %q already defined at %s", e.Second, e.Name, e.First)
}
