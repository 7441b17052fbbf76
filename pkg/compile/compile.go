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

// Package compile orchestrates one source file through the parser and
// emitter (spec.md's L7, the Compile Driver). It holds no state beyond the
// read-only options passed to it, so callers may drive many Sources
// concurrently provided each uses its own Source value (spec.md §5).
package compile

import (
	"github.com/saturnus-lang/saturnusc/pkg/ast"
	"github.com/saturnus-lang/saturnusc/pkg/codegen/emitter"
	"github.com/saturnus-lang/saturnusc/pkg/diag"
	"github.com/saturnus-lang/saturnusc/pkg/options"
	"github.com/saturnus-lang/saturnusc/pkg/parser"
)

// Object is one file's compiled output: its Lua IR plus the logical name
// used to address it from the link pipeline (relative path, `/`-joined,
// without the source extension).
type Object struct {
	IR   string
	Name string
}

// Compiler drives a sequence of File calls against a fixed set of options.
type Compiler struct {
	opts options.Options
}

// New constructs a Compiler over opts.
func New(opts options.Options) *Compiler {
	return &Compiler{opts: opts}
}

// Options returns the options this Compiler was constructed with.
func (c *Compiler) Options() options.Options { return c.opts }

// File parses and emits a single Source, returning its compiled Object.
func (c *Compiler) File(src ast.Source, logicalName string) (Object, error) {
	diag.Debugf("compiling %s", logicalName)

	stmts, err := parser.Parse(src.Body)
	if err != nil {
		return Object{}, err
	}

	ir, err := emitter.Emit(stmts, src.Path, c.opts)
	if err != nil {
		return Object{}, err
	}

	return Object{IR: ir, Name: logicalName}, nil
}
