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

// Package generator lowers a parsed Module into Gleam source. Generation is
// total: given a valid Module it always produces syntactically well-formed
// output, even if that output references names the downstream Gleam
// compiler will reject.
package generator

import (
	"fmt"
	"strings"

	"github.com/joeshaw/matchac/internal/collections"
	"github.com/joeshaw/matchac/internal/lexer"
	"github.com/joeshaw/matchac/internal/parser"
)

const indentUnit = "  "

// Generate walks mod and returns the Gleam source it lowers to.
func Generate(mod *parser.Module) string {
	var lines []string
	lines = append(lines, "import gleam/list")
	lines = append(lines, "import gleam/string_tree.{type StringTree}")

	if len(mod.Imports) > 0 {
		lines = append(lines, "")
		for _, imp := range mod.Imports {
			lines = append(lines, fmt.Sprintf("import %s", imp.Text))
		}
	}

	for _, fn := range mod.Functions {
		lines = append(lines, "")
		lines = append(lines, genFnDef(fn)...)
	}

	if !(mod.LibraryOnly() && len(mod.Functions) > 0) {
		lines = append(lines, "")
		lines = append(lines, genRenderTree(mod)...)
		lines = append(lines, "")
		lines = append(lines, genRender(mod)...)
	}

	return strings.Join(lines, "\n") + "\n"
}

func genFnDef(fn parser.FnDef) []string {
	vis := "fn"
	if fn.Visibility == lexer.Public {
		vis = "pub fn"
	}
	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s(%s) -> StringTree {", vis, fn.Name, fn.Params))
	lines = append(lines, genFunctionBody(trimTrailingNewline(fn.Body), 1)...)
	lines = append(lines, "}")
	return lines
}

func genRenderTree(mod *parser.Module) []string {
	var lines []string
	lines = append(lines, fmt.Sprintf("pub fn render_tree(%s) -> StringTree {", paramList(mod.Withs)))
	lines = append(lines, genFunctionBody(mod.Body, 1)...)
	lines = append(lines, "}")
	return lines
}

func genRender(mod *parser.Module) []string {
	return []string{
		fmt.Sprintf("pub fn render(%s) -> String {", paramList(mod.Withs)),
		indentUnit + fmt.Sprintf("string_tree.to_string(render_tree(%s))", forwardArgs(mod.Withs)),
		"}",
	}
}

// paramList renders withs as Gleam's doubled label/name parameter form, so
// render/render_tree are callable with named arguments whose labels equal
// the with-declared parameter names.
func paramList(withs []parser.With) string {
	return strings.Join(collections.MapSlice(withs, func(w parser.With) string {
		return fmt.Sprintf("%s %s: %s", w.Name, w.Name, w.Type)
	}), ", ")
}

func forwardArgs(withs []parser.With) string {
	return strings.Join(collections.MapSlice(withs, func(w parser.With) string {
		return fmt.Sprintf("%s: %s", w.Name, w.Name)
	}), ", ")
}

// genFunctionBody threads an accumulator through nodes, returning the lines
// of a full function body (accumulator init through final return).
func genFunctionBody(nodes []parser.Node, indent int) []string {
	lines := []string{indentLine(indent, "let acc = string_tree.new()")}
	lines = append(lines, genNodes(nodes, indent)...)
	lines = append(lines, indentLine(indent, "acc"))
	return lines
}

// genNodes lowers nodes in order, each rebinding the "acc" accumulator.
func genNodes(nodes []parser.Node, indent int) []string {
	var lines []string
	for _, n := range nodes {
		switch v := n.(type) {
		case parser.Text:
			lines = append(lines, indentLine(indent,
				fmt.Sprintf(`let acc = string_tree.append(acc, "%s")`, escapeTextLiteral(v.Value))))

		case parser.Identifier:
			lines = append(lines, indentLine(indent,
				fmt.Sprintf("let acc = string_tree.append(acc, %s)", v.Expr)))

		case parser.Builder:
			lines = append(lines, indentLine(indent,
				fmt.Sprintf("let acc = string_tree.append_tree(acc, %s)", v.Expr)))

		case parser.If:
			lines = append(lines, indentLine(indent, fmt.Sprintf("let acc = case %s {", v.Cond)))
			lines = append(lines, indentLine(indent+1, "True -> {"))
			lines = append(lines, genNodes(v.Then, indent+2)...)
			lines = append(lines, indentLine(indent+2, "acc"))
			lines = append(lines, indentLine(indent+1, "}"))
			if len(v.Else) > 0 {
				lines = append(lines, indentLine(indent+1, "False -> {"))
				lines = append(lines, genNodes(v.Else, indent+2)...)
				lines = append(lines, indentLine(indent+2, "acc"))
				lines = append(lines, indentLine(indent+1, "}"))
			} else {
				lines = append(lines, indentLine(indent+1, "False -> acc"))
			}
			lines = append(lines, indentLine(indent, "}"))

		case parser.For:
			binding := v.Binding
			if v.HasType {
				binding = fmt.Sprintf("%s: %s", v.Binding, v.Type)
			}
			lines = append(lines, indentLine(indent,
				fmt.Sprintf("let acc = list.fold(%s, acc, fn(acc, %s) {", v.Iterable, binding)))
			lines = append(lines, genNodes(v.Body, indent+1)...)
			lines = append(lines, indentLine(indent+1, "acc"))
			lines = append(lines, indentLine(indent, "})"))
		}
	}
	return lines
}

func indentLine(indent int, s string) string {
	return strings.Repeat(indentUnit, indent) + s
}

// trimTrailingNewline implements the FnDef body trimming rule: if the last
// node is Text ending in "\n", exactly one trailing "\n" is stripped (n
// trailing newlines become n-1); an emptied Text node is dropped entirely.
func trimTrailingNewline(nodes []parser.Node) []parser.Node {
	if len(nodes) == 0 {
		return nodes
	}
	last, ok := nodes[len(nodes)-1].(parser.Text)
	if !ok || !strings.HasSuffix(last.Value, "\n") {
		return nodes
	}
	out := make([]parser.Node, len(nodes))
	copy(out, nodes)
	trimmed := strings.TrimSuffix(last.Value, "\n")
	if trimmed == "" {
		return out[:len(out)-1]
	}
	out[len(out)-1] = parser.Text{Value: trimmed}
	return out
}

// escapeTextLiteral escapes backslashes, quotes, and newlines for embedding
// in a Gleam string literal; the generator never otherwise inspects text.
func escapeTextLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
