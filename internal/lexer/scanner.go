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

import (
	"strings"
)

// the four delimiter openers recognized anywhere in the source; any other
// sequence starting with '{' is an ordinary Text byte.
var delimiterOpens = [...]string{"{{", "{[", "{%", "{>"}

func hasDelimiterStartAt(src string, i int) bool {
	for _, open := range delimiterOpens {
		if strings.HasPrefix(src[i:], open) {
			return true
		}
	}
	return false
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}

// findWord returns the byte index of a standalone occurrence of word in s
// (bounded by whitespace or the edges of s), or -1 if none exists. Used to
// split the `as` and `in` keywords out of `for`/`with` bodies without
// mistaking them for a substring of an identifier.
func findWord(s, word string) int {
	for i := 0; i+len(word) <= len(s); i++ {
		if s[i:i+len(word)] != word {
			continue
		}
		leftOK := i == 0 || isSpaceByte(s[i-1])
		rightOK := i+len(word) == len(s) || isSpaceByte(s[i+len(word)])
		if leftOK && rightOK {
			return i
		}
	}
	return -1
}

// Scanner tokenizes Matcha template source in a single left-to-right pass.
type Scanner struct {
	src    string
	pos    int
	cursor Cursor
}

// New returns a Scanner positioned at the start of src.
func New(src string) *Scanner {
	return &Scanner{src: src, cursor: CursorInit}
}

// Tokenize consumes the entire source and returns the ordered token stream,
// terminated by a TokenEOF token, or the first scanner error encountered.
func Tokenize(src string) ([]Token, error) {
	return New(src).tokenize()
}

func (sc *Scanner) tokenize() ([]Token, error) {
	var tokens []Token
	for sc.pos < len(sc.src) {
		var (
			tok Token
			err error
		)
		switch {
		case sc.hasPrefix("{{"):
			tok, err = sc.scanDelimited(DelimiterIdentifier, "{{", "}}", TokenIdentifier)
		case sc.hasPrefix("{["):
			tok, err = sc.scanDelimited(DelimiterBuilder, "{[", "]}", TokenBuilder)
		case sc.hasPrefix("{%"):
			tok, err = sc.scanControl()
		case sc.hasPrefix("{>"):
			tok, err = sc.scanDeclaration()
		default:
			tok = sc.scanText()
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	tokens = append(tokens, Token{Kind: TokenEOF, Span: Span{Start: sc.cursor, End: sc.cursor}})
	return tokens, nil
}

func (sc *Scanner) hasPrefix(s string) bool {
	return strings.HasPrefix(sc.src[sc.pos:], s)
}

// advance moves the scanner past consumed (which must start at sc.pos) and
// returns the cursor span [start, end) it occupied.
func (sc *Scanner) advance(consumed string) Span {
	start := sc.cursor
	end := sc.cursor.AdvancedBy(consumed)
	sc.pos += len(consumed)
	sc.cursor = end
	return Span{Start: start, End: end}
}

// scanText consumes a run of Text extending up to (but not including) the
// next delimiter opener, or to the end of input. Every byte is preserved
// verbatim, including whitespace.
func (sc *Scanner) scanText() Token {
	start := sc.pos
	i := sc.pos + 1
	for i < len(sc.src) && !hasDelimiterStartAt(sc.src, i) {
		i++
	}
	text := sc.src[start:i]
	span := sc.advance(text)
	return Token{Kind: TokenText, Text: text, Span: span}
}

// scanDelimited consumes an `open ... close` block, used for {{ }} and {[ ]}.
// The inner expression text is trimmed of leading/trailing ASCII whitespace.
func (sc *Scanner) scanDelimited(kind DelimiterKind, open, close string, tokKind TokenKind) (Token, error) {
	openCursor := sc.cursor
	innerStart := sc.pos + len(open)
	rel := strings.Index(sc.src[innerStart:], close)
	if rel < 0 {
		return Token{}, &UnterminatedDelimiterError{Kind: kind, Open: openCursor}
	}
	innerEnd := innerStart + rel
	inner := strings.TrimSpace(sc.src[innerStart:innerEnd])
	consumed := sc.src[sc.pos : innerEnd+len(close)]
	span := sc.advance(consumed)
	return Token{Kind: tokKind, Text: inner, Span: span}, nil
}

// scanControl consumes a {% ... %} block and classifies its trimmed inner
// text against the if/else/endif/for/endfor keyword shapes.
func (sc *Scanner) scanControl() (Token, error) {
	openCursor := sc.cursor
	innerStart := sc.pos + len("{%")
	rel := strings.Index(sc.src[innerStart:], "%}")
	if rel < 0 {
		return Token{}, &UnterminatedDelimiterError{Kind: DelimiterControl, Open: openCursor}
	}
	innerEnd := innerStart + rel
	inner := strings.TrimSpace(sc.src[innerStart:innerEnd])
	consumed := sc.src[sc.pos : innerEnd+len("%}")]

	keyword, rest := splitFirstWord(inner)

	var tok Token
	var err error
	switch keyword {
	case "if":
		if rest == "" {
			err = &MalformedDirectiveError{Expected: "condition expression after 'if'"}
			break
		}
		tok = Token{Kind: TokenIf, Text: rest}
	case "else":
		if rest != "" {
			err = &MalformedDirectiveError{Expected: "'else' with no trailing text"}
			break
		}
		tok = Token{Kind: TokenElse}
	case "endif":
		if rest != "" {
			err = &MalformedDirectiveError{Expected: "'endif' with no trailing text"}
			break
		}
		tok = Token{Kind: TokenEndIf}
	case "endfor":
		if rest != "" {
			err = &MalformedDirectiveError{Expected: "'endfor' with no trailing text"}
			break
		}
		tok = Token{Kind: TokenEndFor}
	case "for":
		var name, typ, iterable string
		var hasType bool
		name, typ, hasType, iterable, err = parseForShape(rest)
		if err == nil {
			tok = Token{Kind: TokenFor, Name: name, Type: typ, HasType: hasType, Text: iterable}
		}
	default:
		err = &UnknownKeywordError{Got: keyword}
	}
	if err != nil {
		setSpan(err, sc.spanFor(consumed))
		return Token{}, err
	}
	tok.Span = sc.advance(consumed)
	return tok, nil
}

// scanDeclaration consumes a {> ... EOL block; the terminating newline (if
// any) is consumed as part of the token, not emitted as surrounding Text.
func (sc *Scanner) scanDeclaration() (Token, error) {
	innerStart := sc.pos + len("{>")
	rel := strings.IndexByte(sc.src[innerStart:], '\n')
	var innerEnd, consumedEnd int
	if rel < 0 {
		innerEnd = len(sc.src)
		consumedEnd = len(sc.src)
	} else {
		innerEnd = innerStart + rel
		consumedEnd = innerStart + rel + 1
	}
	inner := strings.TrimSpace(sc.src[innerStart:innerEnd])
	consumed := sc.src[sc.pos:consumedEnd]

	var tok Token
	var err error
	switch {
	case inner == "endfn":
		tok = Token{Kind: TokenFnEnd}
	case strings.HasPrefix(inner, "with "):
		rest := strings.TrimSpace(inner[len("with "):])
		var name, typ string
		name, typ, err = parseWithShape(rest)
		if err == nil {
			tok = Token{Kind: TokenWith, Name: name, Type: typ}
		}
	case strings.HasPrefix(inner, "import "):
		rest := strings.TrimSpace(inner[len("import "):])
		if rest == "" {
			err = &MalformedDirectiveError{Expected: "module reference after 'import'"}
			break
		}
		tok = Token{Kind: TokenImport, Text: rest}
	case strings.HasPrefix(inner, "pub fn "):
		rest := strings.TrimSpace(inner[len("pub fn "):])
		var name, params string
		name, params, err = parseFnShape(rest)
		if err == nil {
			tok = Token{Kind: TokenFnStart, Visibility: Public, Name: name, Params: params}
		}
	case strings.HasPrefix(inner, "fn "):
		rest := strings.TrimSpace(inner[len("fn "):])
		var name, params string
		name, params, err = parseFnShape(rest)
		if err == nil {
			tok = Token{Kind: TokenFnStart, Visibility: Private, Name: name, Params: params}
		}
	default:
		word, _ := splitFirstWord(inner)
		switch word {
		case "with":
			err = &MalformedDirectiveError{Expected: "with NAME as TYPE"}
		case "import":
			err = &MalformedDirectiveError{Expected: "module reference after 'import'"}
		case "fn", "pub":
			err = &MalformedDirectiveError{Expected: "fn NAME(PARAMS)"}
		case "endfn":
			err = &MalformedDirectiveError{Expected: "'endfn' with no trailing text"}
		default:
			err = &UnknownKeywordError{Got: word}
		}
	}
	if err != nil {
		setSpan(err, sc.spanFor(consumed))
		return Token{}, err
	}
	tok.Span = sc.advance(consumed)
	return tok, nil
}

// spanFor reports the span consumed would occupy if advanced now, without
// mutating scanner state; used to stamp a span onto an error before the
// caller decides whether to commit the advance.
func (sc *Scanner) spanFor(consumed string) Span {
	return Span{Start: sc.cursor, End: sc.cursor.AdvancedBy(consumed)}
}

func setSpan(err error, span Span) {
	switch e := err.(type) {
	case *UnknownKeywordError:
		e.Span = span
	case *MalformedDirectiveError:
		e.Span = span
	}
}

func splitFirstWord(s string) (word, rest string) {
	i := strings.IndexAny(s, " \t\r\n\v\f")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func parseWithShape(rest string) (name, typ string, err error) {
	asIdx := findWord(rest, "as")
	if asIdx < 0 {
		return "", "", &MalformedDirectiveError{Expected: "with NAME as TYPE"}
	}
	name = strings.TrimSpace(rest[:asIdx])
	typ = strings.TrimSpace(rest[asIdx+len("as"):])
	if name == "" || typ == "" {
		return "", "", &MalformedDirectiveError{Expected: "with NAME as TYPE"}
	}
	return name, typ, nil
}

func parseFnShape(rest string) (name, params string, err error) {
	open := strings.IndexByte(rest, '(')
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return "", "", &MalformedDirectiveError{Expected: "fn NAME(PARAMS)"}
	}
	name = strings.TrimSpace(rest[:open])
	if name == "" {
		return "", "", &MalformedDirectiveError{Expected: "fn NAME(PARAMS)"}
	}
	params = strings.TrimSpace(rest[open+1 : len(rest)-1])
	return name, params, nil
}

func parseForShape(rest string) (name, typ string, hasType bool, iterable string, err error) {
	inIdx := findWord(rest, "in")
	if inIdx < 0 {
		return "", "", false, "", &MalformedDirectiveError{Expected: "for NAME [as TYPE] in EXPR"}
	}
	before := strings.TrimSpace(rest[:inIdx])
	iterable = strings.TrimSpace(rest[inIdx+len("in"):])
	if before == "" || iterable == "" {
		return "", "", false, "", &MalformedDirectiveError{Expected: "for NAME [as TYPE] in EXPR"}
	}

	asIdx := findWord(before, "as")
	if asIdx < 0 {
		if strings.ContainsAny(before, " \t\r\n") {
			return "", "", false, "", &MalformedDirectiveError{Expected: "for NAME [as TYPE] in EXPR"}
		}
		return before, "", false, iterable, nil
	}
	name = strings.TrimSpace(before[:asIdx])
	typ = strings.TrimSpace(before[asIdx+len("as"):])
	if name == "" || typ == "" {
		return "", "", false, "", &MalformedDirectiveError{Expected: "for NAME [as TYPE] in EXPR"}
	}
	return name, typ, true, iterable, nil
}
