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

package matchac

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileEndToEnd(t *testing.T) {
	out, err := Compile("{> with name as String\nHello {{ name }}\n")
	require.NoError(t, err)
	assert.Contains(t, out, "pub fn render_tree(name name: String) -> StringTree {")
	assert.Contains(t, out, "pub fn render(name name: String) -> String {")
}

func TestCompilePropagatesScanError(t *testing.T) {
	_, err := Compile("{{ unterminated")
	require.Error(t, err)
}

func TestCompilePropagatesParseError(t *testing.T) {
	_, err := Compile("{% endif %}")
	require.Error(t, err)
}

func TestCompileIsDeterministic(t *testing.T) {
	src := "{> with x as Int\n{% if x %}yes{% endif %}"
	a, err := Compile(src)
	require.NoError(t, err)
	b, err := Compile(src)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompileFileReadsAndCompiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.matcha")
	require.NoError(t, os.WriteFile(path, []byte("{> with name as String\nHi {{ name }}\n"), 0o644))

	out, err := CompileFile(path)
	require.NoError(t, err)
	assert.Contains(t, out, "render_tree")
}

func TestCompileFileMissingReturnsError(t *testing.T) {
	_, err := CompileFile(filepath.Join(t.TempDir(), "nope.matcha"))
	require.Error(t, err)
}
