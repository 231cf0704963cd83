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

// Package matchac wires the scanner, parser, and generator into the
// compiler's pure core: (source text) -> (output text or error). No shared
// state, no suspension, no I/O beyond the thin file-reading wrapper.
package matchac

import (
	"fmt"
	"os"

	"github.com/joeshaw/matchac/internal/generator"
	"github.com/joeshaw/matchac/internal/lexer"
	"github.com/joeshaw/matchac/internal/parser"
)

// Compile lowers Matcha template source to Gleam source, or returns the
// first scanner or parser error encountered.
func Compile(source string) (string, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return "", fmt.Errorf("scan: %w", err)
	}
	mod, err := parser.Parse(tokens)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	return generator.Generate(mod), nil
}

// CompileFile reads path and compiles its contents, keeping file I/O at the
// edge of the pipeline.
func CompileFile(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	out, err := Compile(string(source))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
