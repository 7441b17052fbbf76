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

// Package identifier translates Saturnus identifiers (bare or
// backtick-escaped) into names safe to emit as Lua source (spec.md §4.5).
package identifier

import "strings"

// reserved is the fixed list of Lua keywords that are not themselves
// Saturnus keywords, and therefore can collide with a bare Saturnus
// identifier.
var reserved = map[string]bool{
	"then": true, "elseif": true, "do": true, "local": true,
	"end": true, "until": true, "repeat": true, "nil": true,
	"function": true, "not": true, "goto": true,
}

// escapeTokens maps a single rune to its descriptive token for the escaped
// identifier mangling scheme.
var escapeTokens = map[rune]string{
	' ':  "space",
	'+':  "plus",
	'-':  "minus",
	'*':  "times",
	'/':  "divide",
	'^':  "power",
	'?':  "question",
	'!':  "exclamation",
	'&':  "ampersand",
	'%':  "percent",
	'$':  "dollar",
	'#':  "hashbang",
	'"':  "double_quote",
	'@':  "at",
	'|':  "pipe",
	'.':  "stop",
	',':  "comma",
	':':  "double_dot",
	';':  "semi",
	'(':  "lbracket",
	')':  "rbracket",
	'[':  "lbrace",
	']':  "rbrace",
	'{':  "lcurly",
	'}':  "rcurly",
	'=':  "eq",
	'<':  "lt",
	'>':  "gt",
	'\\': "backlash",
	'á':  "aacute",
	'é':  "eacute",
	'í':  "iacute",
	'ó':  "oacute",
	'ú':  "uacute",
	'ñ':  "ntilde",
}

// Bare translates a plain Saturnus identifier to its Lua-safe form: verbatim
// unless it collides with a reserved Lua word, in which case it is wrapped
// `__word__`.
func Bare(name string) string {
	if reserved[name] {
		return "__" + name + "__"
	}

	return name
}

// Escaped translates a backtick-escaped identifier (a captured operator
// token or an arbitrary synthetic name) into its mangled bare-word form:
// every character maps to a descriptive token via escapeTokens (passed
// through unchanged when unmapped), tokens are joined with `_`, and the
// whole is wrapped `__…__`.
func Escaped(name string) string {
	var tokens []string

	for _, r := range name {
		if tok, ok := escapeTokens[r]; ok {
			tokens = append(tokens, tok)
		} else {
			tokens = append(tokens, string(r))
		}
	}

	return "__" + strings.Join(tokens, "_") + "__"
}

// Translate dispatches to Bare or Escaped according to isEscaped, matching
// the two identifier modes of ast.Identifier.
func Translate(name string, isEscaped bool) string {
	if isEscaped {
		return Escaped(name)
	}

	return Bare(name)
}
