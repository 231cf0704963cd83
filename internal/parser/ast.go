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

// Package parser assembles a Matcha token stream into a Module: an AST with
// strict nesting rules for conditionals, loops, and function definitions.
package parser

import (
	"fmt"
	"strings"

	"github.com/joeshaw/matchac/internal/lexer"
)

// Node is a single AST element produced by the parser and consumed by the
// generator. Concrete types: Text, Identifier, Builder, If, For, FnDef,
// Import, With.
type Node interface {
	fmt.Stringer
}

// Text is a literal run of characters outside any delimited block.
type Text struct {
	Value string
}

func (n Text) String() string { return fmt.Sprintf("Text(%q)", n.Value) }

// Identifier is the contents of {{ ... }}, rendered via string append.
type Identifier struct {
	Expr string
}

func (n Identifier) String() string { return fmt.Sprintf("Identifier(%s)", n.Expr) }

// Builder is the contents of {[ ... ]}, rendered via string-tree append.
type Builder struct {
	Expr string
}

func (n Builder) String() string { return fmt.Sprintf("Builder(%s)", n.Expr) }

// If is a conditional; Else may be empty.
type If struct {
	Cond string
	Then []Node
	Else []Node
}

func (n If) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "If(%s){%s}", n.Cond, joinNodes(n.Then))
	if len(n.Else) > 0 {
		fmt.Fprintf(&b, "else{%s}", joinNodes(n.Else))
	}
	return b.String()
}

// For is a loop over Iterable, binding each element to Binding (typed as
// Type when HasType is set).
type For struct {
	Binding  string
	Type     string
	HasType  bool
	Iterable string
	Body     []Node
}

func (n For) String() string {
	binding := n.Binding
	if n.HasType {
		binding = fmt.Sprintf("%s as %s", n.Binding, n.Type)
	}
	return fmt.Sprintf("For(%s in %s){%s}", binding, n.Iterable, joinNodes(n.Body))
}

// FnDef is a named function, legal only at the top level; FnDefs do not
// nest.
type FnDef struct {
	Visibility lexer.Visibility
	Name       string
	Params     string
	Body       []Node
}

func (n FnDef) String() string {
	return fmt.Sprintf("FnDef(%s %s(%s)){%s}", n.Visibility, n.Name, n.Params, joinNodes(n.Body))
}

// Import is a top-level-only declaration that floats to the module header.
type Import struct {
	Text string
}

func (n Import) String() string { return fmt.Sprintf("Import(%s)", n.Text) }

// With is a top-level-only declaration that floats to the render/render_tree
// parameter list.
type With struct {
	Name string
	Type string
}

func (n With) String() string { return fmt.Sprintf("With(%s, %s)", n.Name, n.Type) }

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ";")
}

// Module is the parser's output: the declarations and body of one template.
type Module struct {
	// Imports is the ordered sequence of import texts; duplicates preserved.
	Imports []Import
	// Withs is the ordered parameter list for render/render_tree.
	Withs []With
	// Functions is the ordered sequence of top-level FnDefs.
	Functions []FnDef
	// Body is the ordered sequence of nodes outside any FnDef.
	Body []Node
}

// LibraryOnly reports whether Body is empty or consists exclusively of Text
// nodes that are entirely ASCII whitespace. It says nothing about whether
// any Functions exist; the generator combines the two to decide whether to
// suppress render/render_tree.
func (m *Module) LibraryOnly() bool {
	for _, n := range m.Body {
		text, ok := n.(Text)
		if !ok || !isASCIIWhitespaceOnly(text.Value) {
			return false
		}
	}
	return true
}

func isASCIIWhitespaceOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			return false
		}
	}
	return true
}
