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
	"testing"

	"github.com/saturnus-lang/saturnusc/pkg/ast"
)

func parseOne(t *testing.T, src string) ast.Statement {
	t.Helper()

	stmts, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}

	if len(stmts) != 1 {
		t.Fatalf("Parse(%q) produced %d statements, want 1", src, len(stmts))
	}

	return stmts[0]
}

func TestParseLet(t *testing.T) {
	stmt := parseOne(t, `let x = "hi";`)

	let, ok := stmt.(*ast.Let)
	if !ok {
		t.Fatalf("got %T, want *ast.Let", stmt)
	}

	if let.Target.Kind != ast.DestructureIdentifier || let.Target.Identifier.Value != "x" {
		t.Errorf("let target = %+v, want identifier \"x\"", let.Target)
	}

	str, ok := let.Init.(*ast.String)
	if !ok || str.Value != "hi" {
		t.Errorf("let init = %+v, want String \"hi\"", let.Init)
	}
}

func TestParseFnWithExpressionBody(t *testing.T) {
	stmt := parseOne(t, `fn add(a, b) = a + b;`)

	fn, ok := stmt.(*ast.Fn)
	if !ok {
		t.Fatalf("got %T, want *ast.Fn", stmt)
	}

	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("fn = %+v", fn)
	}

	if len(fn.Body) != 1 {
		t.Fatalf("fn body has %d statements, want 1 (normalized Return)", len(fn.Body))
	}

	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("fn body[0] = %T, want *ast.Return", fn.Body[0])
	}

	bin, ok := ret.Expr.(*ast.Binary)
	if !ok || bin.Op.Kind() != ast.OpAdd {
		t.Errorf("return expr = %+v, want Binary(OpAdd)", ret.Expr)
	}
}

func TestParseCustomOperator(t *testing.T) {
	stmt := parseOne(t, "let r = a <|> b;")

	let := stmt.(*ast.Let)

	bin, ok := let.Init.(*ast.Binary)
	if !ok {
		t.Fatalf("init = %T, want *ast.Binary", let.Init)
	}

	if !bin.Op.IsCustom() {
		t.Fatalf("operator %q was not classified as custom", bin.Op.Token())
	}

	if bin.Op.Token() != "<|>" {
		t.Errorf("operator token = %q, want \"<|>\"", bin.Op.Token())
	}
}

func TestParseArbitraryCustomOperatorNotInAnyFixedTier(t *testing.T) {
	// "<+>" is not a token any precedence tier names explicitly, exercising
	// the tier-0 fallback that classifies any leftover operator-alphabet
	// run (not ending in "=") as Operator::Custom (spec.md §4.1).
	stmt := parseOne(t, "let r = a <+> b;")

	let := stmt.(*ast.Let)

	bin, ok := let.Init.(*ast.Binary)
	if !ok {
		t.Fatalf("init = %T, want *ast.Binary", let.Init)
	}

	if !bin.Op.IsCustom() || bin.Op.Token() != "<+>" {
		t.Errorf("operator = %+v, want custom \"<+>\"", bin.Op)
	}
}

func TestParseDestructuringLet(t *testing.T) {
	stmt := parseOne(t, "let [a, _, b] = xs;")

	let := stmt.(*ast.Let)

	if let.Target.Kind != ast.DestructureArray {
		t.Fatalf("target kind = %v, want DestructureArray", let.Target.Kind)
	}

	leaves := let.Target.Leaves()
	if len(leaves) != 2 || leaves[0] != "a" || leaves[1] != "b" {
		t.Errorf("Leaves() = %v, want [a b] (void never binds)", leaves)
	}
}

func TestParseMapLiteralColon(t *testing.T) {
	// Regression test: parseMapEntry's colon handling previously double-
	// consumed tokens on a malformed entry. A well-formed map with several
	// entries exercises the fixed single-token-consumption path.
	stmt := parseOne(t, `let m = { a: 1, b: 2, c: 3 };`)

	let := stmt.(*ast.Let)

	m, ok := let.Init.(*ast.MapLiteral)
	if !ok {
		t.Fatalf("init = %T, want *ast.MapLiteral", let.Init)
	}

	if len(m.Entries) != 3 {
		t.Fatalf("map has %d entries, want 3", len(m.Entries))
	}
}

func TestParseRangeFor(t *testing.T) {
	stmt := parseOne(t, "for i in 1..10 { print(i); }")

	f, ok := stmt.(*ast.For)
	if !ok {
		t.Fatalf("got %T, want *ast.For", stmt)
	}

	bin, ok := f.IterExpr.(*ast.Binary)
	if !ok || bin.Op.Kind() != ast.OpRange {
		t.Fatalf("iter expr = %+v, want Binary(OpRange)", f.IterExpr)
	}
}

func TestParseUnaryOperators(t *testing.T) {
	cases := map[string]ast.OpKind{
		"let x = -1;": ast.OpSub,
		"let x = !1;": ast.OpNot,
		"let x = ~1;": ast.OpBitNot,
	}

	for src, want := range cases {
		stmt := parseOne(t, src)
		let := stmt.(*ast.Let)

		u, ok := let.Init.(*ast.Unary)
		if !ok {
			t.Fatalf("%q: init = %T, want *ast.Unary", src, let.Init)
		}

		if u.Op.Kind() != want {
			t.Errorf("%q: op = %v, want %v", src, u.Op.Kind(), want)
		}
	}
}

func TestParseUseTree(t *testing.T) {
	stmt := parseOne(t, "use a::{ b, c };")

	u, ok := stmt.(*ast.Use)
	if !ok {
		t.Fatalf("got %T, want *ast.Use", stmt)
	}

	if len(u.Path) != 1 || u.Path[0] != "a" {
		t.Errorf("path = %v, want [a]", u.Path)
	}

	if len(u.Tree) != 2 || len(u.Tree[0].Path) != 1 || u.Tree[0].Path[0] != "b" || len(u.Tree[1].Path) != 1 || u.Tree[1].Path[0] != "c" {
		t.Errorf("tree = %+v, want [b c]", u.Tree)
	}

	if u.Tree[0].Children != nil || u.Tree[1].Children != nil {
		t.Errorf("tree entries should have no children, got %+v", u.Tree)
	}
}

func TestParseUseTreeWithNestedAndMultiSegmentEntries(t *testing.T) {
	stmt := parseOne(t, "use std::{ ops::{ `|>`, `..` }, string::utils, math };")

	u := stmt.(*ast.Use)

	if len(u.Path) != 1 || u.Path[0] != "std" {
		t.Fatalf("path = %v, want [std]", u.Path)
	}

	if len(u.Tree) != 3 {
		t.Fatalf("tree has %d entries, want 3", len(u.Tree))
	}

	ops := u.Tree[0]
	if len(ops.Path) != 1 || ops.Path[0] != "ops" || len(ops.Children) != 2 {
		t.Errorf("tree[0] = %+v, want ops with 2 children", ops)
	}

	if len(ops.Children) == 2 {
		pipeInto, rangeOp := ops.Children[0], ops.Children[1]

		if !pipeInto.IsEscaped || len(pipeInto.Path) != 1 || pipeInto.Path[0] != "|>" {
			t.Errorf("ops.Children[0] = %+v, want escaped leaf \"|>\"", pipeInto)
		}

		if !rangeOp.IsEscaped || len(rangeOp.Path) != 1 || rangeOp.Path[0] != ".." {
			t.Errorf("ops.Children[1] = %+v, want escaped leaf \"..\"", rangeOp)
		}
	}

	stringUtils := u.Tree[1]
	if len(stringUtils.Path) != 2 || stringUtils.Path[0] != "string" || stringUtils.Path[1] != "utils" || stringUtils.Children != nil {
		t.Errorf("tree[1] = %+v, want [string utils] with no children", stringUtils)
	}

	math := u.Tree[2]
	if len(math.Path) != 1 || math.Path[0] != "math" || math.Children != nil {
		t.Errorf("tree[2] = %+v, want [math] with no children", math)
	}
}

func TestParseClassWithMethod(t *testing.T) {
	stmt := parseOne(t, "class P { let n = 0; fn tick(self) = self.n + 1; }")

	c, ok := stmt.(*ast.ClassDef)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassDef", stmt)
	}

	if c.Name != "P" || len(c.Fields) != 2 {
		t.Fatalf("class = %+v", c)
	}

	if c.Fields[0].IsMethod {
		t.Error("field 0 (n) should not be a method")
	}

	if !c.Fields[1].IsMethod || c.Fields[1].Name != "tick" {
		t.Errorf("field 1 = %+v, want method \"tick\"", c.Fields[1])
	}
}

func TestParseMalformedMapEntryReturnsErrorWithoutPanicking(t *testing.T) {
	if _, err := Parse("let m = { a 1 };"); err == nil {
		t.Fatal("expected a parse error for a map entry missing its colon")
	}
}

func TestParsePipelineOperators(t *testing.T) {
	stmt := parseOne(t, "let r = x |> f;")

	let := stmt.(*ast.Let)
	bin := let.Init.(*ast.Binary)

	if bin.Op.Kind() != ast.OpPipeInto {
		t.Errorf("op = %v, want OpPipeInto", bin.Op.Kind())
	}
}
