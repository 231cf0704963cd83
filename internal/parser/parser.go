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
	"github.com/joeshaw/matchac/internal/lexer"
)

// scopeKind identifies which construct a block-stack entry is accumulating
// the body of.
type scopeKind int

const (
	scopeIfThen scopeKind = iota
	scopeIfElse
	scopeForBody
	scopeFnBody
)

func (k scopeKind) closer() string {
	switch k {
	case scopeIfThen, scopeIfElse:
		return "endif"
	case scopeForBody:
		return "endfor"
	case scopeFnBody:
		return "endfn"
	default:
		return "?"
	}
}

func (k scopeKind) label() string {
	switch k {
	case scopeIfThen, scopeIfElse:
		return "if"
	case scopeForBody:
		return "for"
	case scopeFnBody:
		return "fn"
	default:
		return "?"
	}
}

// scope is one entry on the parser's block stack: the accumulated node list
// for the construct currently open, plus whatever payload its closing token
// needs to build the finished AST node.
type scope struct {
	kind     scopeKind
	openSpan lexer.Span
	nodes    []Node

	cond      string // If
	thenNodes []Node // If, once {% else %} has been seen

	binding  string // For
	typ      string
	hasType  bool
	iterable string

	visibility lexer.Visibility // FnDef
	name       string
	params     string
}

// parser assembles a Module from a token stream via an explicit block stack,
// generalizing the teacher's single-construct #if/#elif/#else/#endif stack
// to three independent construct kinds (if, for, fn).
type parser struct {
	stack   []*scope
	module  Module
	fnSpans map[string]lexer.Span
}

// Parse consumes a token stream (as produced by lexer.Tokenize, including
// its trailing TokenEOF) and returns the assembled Module, or the first
// parse error encountered.
func Parse(tokens []lexer.Token) (*Module, error) {
	p := &parser{fnSpans: make(map[string]lexer.Span)}
	if err := p.run(tokens); err != nil {
		return nil, err
	}
	return &p.module, nil
}

func (p *parser) top() *scope {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) push(s *scope) { p.stack = append(p.stack, s) }

func (p *parser) pop() *scope {
	s := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	return s
}

// ifForDepth counts open If/For scopes on the stack, ignoring Fn scopes.
func (p *parser) ifForDepth() int {
	depth := 0
	for _, s := range p.stack {
		if s.kind == scopeIfThen || s.kind == scopeIfElse || s.kind == scopeForBody {
			depth++
		}
	}
	return depth
}

func (p *parser) insideFn() bool {
	for _, s := range p.stack {
		if s.kind == scopeFnBody {
			return true
		}
	}
	return false
}

// appendNode adds n to whatever scope is currently accumulating: the
// innermost open If/For/Fn body, or the module's top-level Body.
func (p *parser) appendNode(n Node) {
	if s := p.top(); s != nil {
		s.nodes = append(s.nodes, n)
		return
	}
	p.module.Body = append(p.module.Body, n)
}

func (p *parser) run(tokens []lexer.Token) error {
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.TokenEOF:
			if s := p.top(); s != nil {
				return &UnclosedBlockError{Open: s.openSpan, Construct: s.kind.label()}
			}
			return nil

		case lexer.TokenText:
			p.appendNode(Text{Value: tok.Text})
		case lexer.TokenIdentifier:
			p.appendNode(Identifier{Expr: tok.Text})
		case lexer.TokenBuilder:
			p.appendNode(Builder{Expr: tok.Text})

		case lexer.TokenWith:
			if p.ifForDepth() > 0 || p.insideFn() {
				return &TopLevelOnlyError{Span: tok.Span, Construct: "with"}
			}
			p.module.Withs = append(p.module.Withs, With{Name: tok.Name, Type: tok.Type})

		case lexer.TokenImport:
			if p.ifForDepth() > 0 || p.insideFn() {
				return &TopLevelOnlyError{Span: tok.Span, Construct: "import"}
			}
			p.module.Imports = append(p.module.Imports, Import{Text: tok.Text})

		case lexer.TokenFnStart:
			if p.ifForDepth() > 0 || p.insideFn() {
				return &TopLevelOnlyError{Span: tok.Span, Construct: "fn"}
			}
			p.push(&scope{
				kind:       scopeFnBody,
				openSpan:   tok.Span,
				visibility: tok.Visibility,
				name:       tok.Name,
				params:     tok.Params,
			})

		case lexer.TokenFnEnd:
			s := p.top()
			if s == nil {
				return &UnmatchedCloserError{Span: tok.Span, Closer: "endfn"}
			}
			if s.kind != scopeFnBody {
				return &MismatchedCloserError{Span: tok.Span, Expected: s.kind.closer(), Got: "endfn"}
			}
			p.pop()
			if first, dup := p.fnSpans[s.name]; dup {
				return &DuplicateFunctionNameError{Name: s.name, First: first, Second: s.openSpan}
			}
			p.fnSpans[s.name] = s.openSpan
			p.module.Functions = append(p.module.Functions, FnDef{
				Visibility: s.visibility,
				Name:       s.name,
				Params:     s.params,
				Body:       s.nodes,
			})

		case lexer.TokenIf:
			p.push(&scope{kind: scopeIfThen, openSpan: tok.Span, cond: tok.Text})

		case lexer.TokenElse:
			s := p.top()
			if s == nil {
				return &UnmatchedCloserError{Span: tok.Span, Closer: "else"}
			}
			if s.kind != scopeIfThen {
				return &MismatchedCloserError{Span: tok.Span, Expected: s.kind.closer(), Got: "else"}
			}
			s.thenNodes = s.nodes
			s.nodes = nil
			s.kind = scopeIfElse

		case lexer.TokenEndIf:
			s := p.top()
			if s == nil {
				return &UnmatchedCloserError{Span: tok.Span, Closer: "endif"}
			}
			if s.kind != scopeIfThen && s.kind != scopeIfElse {
				return &MismatchedCloserError{Span: tok.Span, Expected: s.kind.closer(), Got: "endif"}
			}
			p.pop()
			thenNodes, elseNodes := s.nodes, []Node(nil)
			if s.kind == scopeIfElse {
				thenNodes, elseNodes = s.thenNodes, s.nodes
			}
			p.appendNode(If{Cond: s.cond, Then: thenNodes, Else: elseNodes})

		case lexer.TokenFor:
			p.push(&scope{
				kind:     scopeForBody,
				openSpan: tok.Span,
				binding:  tok.Name,
				typ:      tok.Type,
				hasType:  tok.HasType,
				iterable: tok.Text,
			})

		case lexer.TokenEndFor:
			s := p.top()
			if s == nil {
				return &UnmatchedCloserError{Span: tok.Span, Closer: "endfor"}
			}
			if s.kind != scopeForBody {
				return &MismatchedCloserError{Span: tok.Span, Expected: s.kind.closer(), Got: "endfor"}
			}
			p.pop()
			p.appendNode(For{
				Binding:  s.binding,
				Type:     s.typ,
				HasType:  s.hasType,
				Iterable: s.iterable,
				Body:     s.nodes,
			})
		}
	}
	// Tokenize always appends a trailing TokenEOF, so the loop above returns
	// before falling out here; this guards callers that hand-build a token
	// slice without one.
	if s := p.top(); s != nil {
		return &UnclosedBlockError{Open: s.openSpan, Construct: s.kind.label()}
	}
	return nil
}
