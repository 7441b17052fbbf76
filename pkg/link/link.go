// Copyright Saturnus Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package link combines many compiled objects (pkg/compile.Object) into one
// of the four output shapes of spec.md §4.8 (the Link Pipeline, L8).
package link

import (
	"sort"
	"strings"

	"github.com/saturnus-lang/saturnusc/pkg/compile"
	"github.com/saturnus-lang/saturnusc/pkg/link/binpack"
	"github.com/saturnus-lang/saturnusc/pkg/srcerr"
)

// Format selects one of the four output shapes.
type Format int

// Output formats.
const (
	Collect Format = iota
	Directory
	FlatDirectory
	Binary
)

// Input is one object to be linked, plus whether it is an entry file (run
// inline rather than preloaded as a lazily-required module).
type Input struct {
	Object  compile.Object
	IsEntry bool
}

// Config controls one Link invocation.
type Config struct {
	// NoStd suppresses the stdlib preamble in Collect/Binary output.
	NoStd bool
	// MainPath names the output file for Collect/Binary; for Directory it
	// names the output root.
	MainPath string
	Format   Format
	// Stdlib is the preamble chunk prepended to Collect/Binary output unless
	// NoStd is set.
	Stdlib string
}

// File is one emitted output artifact: a path relative to the invocation's
// output root, plus its content.
type File struct {
	Path string
	Data []byte
}

// Link combines inputs into the set of output Files named by cfg.Format.
func Link(inputs []Input, cfg Config) ([]File, error) {
	if err := checkCollisions(inputs); err != nil {
		return nil, err
	}

	switch cfg.Format {
	case Collect:
		data, err := buildCollect(inputs, cfg)
		if err != nil {
			return nil, err
		}

		return []File{{Path: cfg.MainPath, Data: data}}, nil
	case Directory:
		return buildDirectory(inputs, cfg), nil
	case FlatDirectory:
		return nil, &srcerr.NotImplementedError{Feature: "FlatDirectory link format"}
	case Binary:
		collected, err := buildCollect(inputs, cfg)
		if err != nil {
			return nil, err
		}

		data := binpack.Pack(collected)

		return []File{{Path: cfg.MainPath, Data: data}}, nil
	default:
		return nil, &srcerr.SystemError{Message: "link: unrecognised output format"}
	}
}

// checkCollisions rejects any set of inputs carrying two objects under the
// same logical name; such a collision would silently clobber one object's
// preload/entry slot (a supplemented check, not present in the distilled
// core description, recovered from the linker's original behavior).
func checkCollisions(inputs []Input) error {
	seen := make(map[string]bool, len(inputs))

	for _, in := range inputs {
		if seen[in.Object.Name] {
			return &srcerr.SystemError{Message: "link: duplicate object name '" + in.Object.Name + "'"}
		}

		seen[in.Object.Name] = true
	}

	return nil
}

// sortedInputs returns inputs ordered by logical name. It orders the preload
// section of Collect/Binary output and the Directory file list; entry files
// keep the caller's order.
func sortedInputs(inputs []Input) []Input {
	out := append([]Input(nil), inputs...)

	sort.Slice(out, func(i, j int) bool { return out[i].Object.Name < out[j].Object.Name })

	return out
}

// modName derives the `package.preload` key for a non-entry object: its
// name with path separators replaced by `.` and a trailing `.init` component
// dropped.
func modName(name string) string {
	n := strings.ReplaceAll(name, "\\", "/")
	n = strings.ReplaceAll(n, "/", ".")
	n = strings.TrimSuffix(n, ".init")

	return n
}

func buildCollect(inputs []Input, cfg Config) ([]byte, error) {
	var sb strings.Builder

	if !cfg.NoStd && cfg.Stdlib != "" {
		sb.WriteString(cfg.Stdlib)
		sb.WriteByte('\n')
	}

	// Entries are pulled from the caller-supplied order, not the sorted
	// order: link order is caller-controlled (spec.md's entry-concatenation
	// requirement), while preloaded modules are sorted for a deterministic
	// package.preload table regardless of discovery order.
	var preloads, entries []Input

	for _, in := range inputs {
		if in.IsEntry {
			entries = append(entries, in)
		} else {
			preloads = append(preloads, in)
		}
	}

	preloads = sortedInputs(preloads)

	for _, in := range preloads {
		sb.WriteString("package.preload[\"" + modName(in.Object.Name) + "\"] = function()\n")
		sb.WriteString("do\n")
		sb.WriteString(in.Object.IR)
		sb.WriteString("\nend\nend;\n")
	}

	for _, in := range entries {
		sb.WriteString("do\n")
		sb.WriteString(in.Object.IR)
		sb.WriteString("\nend;\n")
	}

	return []byte(sb.String()), nil
}

func buildDirectory(inputs []Input, cfg Config) []File {
	ordered := sortedInputs(inputs)
	files := make([]File, 0, len(ordered))

	for _, in := range ordered {
		path := in.Object.Name

		if cfg.MainPath != "" {
			path = strings.TrimSuffix(cfg.MainPath, "/") + "/" + path
		}

		files = append(files, File{Path: path, Data: []byte(in.Object.IR)})
	}

	return files
}
