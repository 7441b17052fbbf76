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

// Package modpath resolves a source's logical path into a chain of member
// accesses rooted at the emitted program's `__modules__` table, and produces
// the idempotent "ensure-table" statements required before the chain can be
// safely assigned through (spec.md §4.4).
package modpath

import (
	"strings"
)

// Root is the identifier under which every module's table chain is rooted.
const Root = "__modules__"

// Sanitize applies the two-rule segment sanitizer: replace every character
// outside [A-Za-z0-9_] with '_', then prefix with '_' if the result does not
// start with a letter or underscore.
func Sanitize(segment string) string {
	var sb strings.Builder

	for _, r := range segment {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}

	out := sb.String()
	if out == "" {
		return "_"
	}

	first := out[0]
	if !((first >= 'A' && first <= 'Z') || (first >= 'a' && first <= 'z') || first == '_') {
		out = "_" + out
	}

	return out
}

// Chain holds a resolved module path: its sanitized segments and the list of
// member-access prefixes (including the Root) that must exist before the
// full path can be dereferenced.
type Chain struct {
	Segments []string
}

// Resolve sanitizes every path segment and returns the resulting Chain.
func Resolve(path []string) Chain {
	segs := make([]string, len(path))
	for i, p := range path {
		segs[i] = Sanitize(p)
	}

	return Chain{Segments: segs}
}

// Expr renders the full member-access expression for this chain, e.g.
// `__modules__.a.b`.
func (c Chain) Expr() string {
	var sb strings.Builder

	sb.WriteString(Root)

	for _, s := range c.Segments {
		sb.WriteByte('.')
		sb.WriteString(s)
	}

	return sb.String()
}

// Prefixes returns every ensure-table target along the chain, in
// root-to-leaf order, starting with Root itself: `__modules__`,
// `__modules__.a`, `__modules__.a.b`, ...
func (c Chain) Prefixes() []string {
	prefixes := make([]string, 0, len(c.Segments)+1)
	cur := Root
	prefixes = append(prefixes, cur)

	for _, s := range c.Segments {
		cur = cur + "." + s
		prefixes = append(prefixes, cur)
	}

	return prefixes
}

// EnsureStatements renders one idempotent "ensure-table" statement per
// prefix: `<prefix> = <prefix> or {};`. Emitting them in order guarantees
// parent tables exist regardless of file load order.
func (c Chain) EnsureStatements() []string {
	prefixes := c.Prefixes()
	stmts := make([]string, len(prefixes))

	for i, p := range prefixes {
		stmts[i] = p + " = " + p + " or {};"
	}

	return stmts
}
