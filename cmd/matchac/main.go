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

// Command matchac discovers .matcha templates under a directory, compiles
// each to Gleam, and writes the result to a sibling .gleam file. Every
// decision with semantic weight lives in the internal packages; this
// command is only the file-discovery and parallel-compilation boundary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/joeshaw/matchac/internal/collections"
	"github.com/joeshaw/matchac/internal/matchac"
)

func main() {
	dir := flag.String("dir", ".", "root directory to search recursively for .matcha templates")
	flag.Parse()

	matches, err := doublestar.Glob(os.DirFS(*dir), "**/*.matcha")
	if err != nil {
		log.Fatalf("walking %s: %v", *dir, err)
	}
	if len(matches) == 0 {
		log.Printf("no .matcha files found under %s", *dir)
		return
	}

	paths := collections.MapSlice(matches, func(rel string) string {
		return filepath.Join(*dir, rel)
	})

	var (
		mu       sync.Mutex
		failures []string
	)
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		g.Go(func() error {
			out, err := matchac.CompileFile(path)
			if err != nil {
				mu.Lock()
				failures = append(failures, err.Error())
				mu.Unlock()
				return nil
			}
			outPath := strings.TrimSuffix(path, ".matcha") + ".gleam"
			if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: writing %s: %v", path, outPath, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) > 0 {
		for _, f := range failures {
			log.Printf("%s", f)
		}
		os.Exit(1)
	}
}
