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

package parser

import (
	"strings"

	"github.com/saturnus-lang/saturnusc/pkg/ast"
	"github.com/saturnus-lang/saturnusc/pkg/lexer"
)

// Binary operator precedence, lowest to highest, matching spec.md §4.1:
//
//	?? / ?:  <  pipelines (<|, |>)  <  logic (and/or/xor/nand/nor)  <
//	comparison  <  bitwise  <  shift (rotate)  <  ++/..  <  additive  <
//	multiplicative  <  ** (right-assoc)  <  %
//
// Each tier's ops maps matched token text to the resulting ast.Operator.
// Keyword-tiers (logic) are matched against lexer.Keyword tokens instead of
// lexer.Operator tokens — see the isKeyword field below.
type tier struct {
	ops       map[string]ast.Operator
	rightAssoc bool
	isKeyword bool
}

var precedenceTiers = []tier{
	// 1: coalesce — not a fixed primitive (spec.md's Operator enum has no
	// Coalesce kind), so these lower via the generic Custom path exactly
	// like any other user-defined operator (spec.md §4.6's default rule).
	{ops: map[string]ast.Operator{
		"??": ast.NewCustomOperator("??"),
		"?:": ast.NewCustomOperator("?:"),
	}},
	// 2: pipelines — given a dedicated fixed kind because the emitter
	// special-cases them as a direct call rewrite rather than an
	// escaped-function call (see SPEC_FULL.md §4.6).
	{ops: map[string]ast.Operator{
		"|>": ast.NewOperator(ast.OpPipeInto),
		"<|": ast.NewOperator(ast.OpPipeFrom),
	}},
	// 3: logic keywords
	{isKeyword: true, ops: map[string]ast.Operator{
		"and":  ast.NewOperator(ast.OpAnd),
		"or":   ast.NewOperator(ast.OpOr),
		"xor":  ast.NewOperator(ast.OpXorKw),
		"nand": ast.NewOperator(ast.OpNand),
		"nor":  ast.NewOperator(ast.OpNor),
	}},
	// 4: comparison
	{ops: map[string]ast.Operator{
		"==": ast.NewOperator(ast.OpEq),
		"!=": ast.NewOperator(ast.OpNeq),
		"<=": ast.NewOperator(ast.OpLte),
		">=": ast.NewOperator(ast.OpGte),
		"<":  ast.NewOperator(ast.OpLt),
		">":  ast.NewOperator(ast.OpGt),
	}},
	// 5: bitwise
	{ops: map[string]ast.Operator{
		"&": ast.NewOperator(ast.OpBitAnd),
		"|": ast.NewOperator(ast.OpBitOr),
		"^": ast.NewOperator(ast.OpBitXor),
	}},
	// 6: rotate-shift — spec.md's Operator enum carries only the rotate
	// forms (LShiftRot/RShiftRot), not a plain non-rotating shift.
	{ops: map[string]ast.Operator{
		"<<<": ast.NewOperator(ast.OpLShiftRot),
		">>>": ast.NewOperator(ast.OpRShiftRot),
	}},
	// 7: concat / range. StrCat is spelled `++`; `~` is accepted as an
	// alternative spelling of the same operator.
	{ops: map[string]ast.Operator{
		"++": ast.NewOperator(ast.OpStrCat),
		"~":  ast.NewOperator(ast.OpStrCat),
		"..": ast.NewOperator(ast.OpRange),
	}},
	// 8: additive
	{ops: map[string]ast.Operator{
		"+": ast.NewOperator(ast.OpAdd),
		"-": ast.NewOperator(ast.OpSub),
	}},
	// 9: multiplicative
	{ops: map[string]ast.Operator{
		"*": ast.NewOperator(ast.OpMul),
		"/": ast.NewOperator(ast.OpDiv),
	}},
	// 10: power, right associative
	{rightAssoc: true, ops: map[string]ast.Operator{
		"**": ast.NewOperator(ast.OpPow),
	}},
	// 11: modulo
	{ops: map[string]ast.Operator{
		"%": ast.NewOperator(ast.OpMod),
	}},
}

// unaryOps maps a prefix operator token to its ast.Operator: `-`, `!` and
// `~`. There is no keyword-form negation.
var unaryOps = map[string]ast.Operator{
	"-": ast.NewOperator(ast.OpSub),
	"!": ast.NewOperator(ast.OpNot),
	"~": ast.NewOperator(ast.OpBitNot),
}

// compoundAssignOps maps the non-`=` prefix of a compound-assignment token
// (e.g. "+" out of "+=") to its ast.Operator, used to rewrite `x += y` into
// `x = x + y` at emission time.
var compoundAssignOps = map[string]ast.Operator{
	"+": ast.NewOperator(ast.OpAdd),
	"-": ast.NewOperator(ast.OpSub),
	"*": ast.NewOperator(ast.OpMul),
	"/": ast.NewOperator(ast.OpDiv),
	"%": ast.NewOperator(ast.OpMod),
	"~": ast.NewOperator(ast.OpStrCat),
}

// fixedComparisonTokens lists the operator texts that must never be
// misread as a compound-assignment prefix, despite ending in `=`.
var fixedComparisonTokens = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true,
}

// isCustomOperatorToken reports whether text is a user-defined operator per
// spec.md §4.1's generic rule: any run of the lexer's operator-character
// alphabet not ending in `=`. Every fixed tier's token is itself drawn from
// that same alphabet, so this is checked only as the tier-0 (lowest
// precedence) fallback once every fixed tier has already had a chance to
// claim the token — it never shadows `==`, `+=`, or any other named form.
func isCustomOperatorToken(text string) bool {
	if text == "" || strings.HasSuffix(text, "=") {
		return false
	}

	for _, r := range text {
		if !lexer.IsOperatorChar(r) {
			return false
		}
	}

	return true
}
