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

// Package emitter walks a parsed AST and writes equivalent Lua source text,
// implementing every lowering of spec.md §4.6-§4.7. It is the single largest
// component of the compiler (spec.md's L5, ~40% of the core).
package emitter

import (
	"strconv"
	"strings"

	"github.com/saturnus-lang/saturnusc/pkg/ast"
	"github.com/saturnus-lang/saturnusc/pkg/codegen/builder"
	"github.com/saturnus-lang/saturnusc/pkg/codegen/identifier"
	"github.com/saturnus-lang/saturnusc/pkg/modpath"
	"github.com/saturnus-lang/saturnusc/pkg/options"
	"github.com/saturnus-lang/saturnusc/pkg/srcerr"
)

// Emitter holds the state of one compile call: the output builder, the
// resolved compiler options, and the current module-root chain. Both are
// scoped to a single Emit invocation and never shared across calls
// (spec.md §9 — "no process-global state").
type Emitter struct {
	b     *builder.Builder
	opts  options.Options
	chain modpath.Chain
}

// Emit lowers stmts (as parsed from one Source) into Lua source text. path is
// the source's logical location used to resolve the module root, unless
// opts.OverrideModPath is set.
func Emit(stmts []ast.Statement, path []string, opts options.Options) (string, error) {
	root := path
	if override := opts.OverrideModPath(); override != nil {
		root = override
	}

	e := &Emitter{
		b:     builder.New(),
		opts:  opts,
		chain: modpath.Resolve(root),
	}

	for _, stmt := range e.chain.EnsureStatements() {
		e.b.WriteLine(stmt)
	}

	if err := e.emitStmts(stmts); err != nil {
		return "", err
	}

	return e.b.String(), nil
}

// unitText renders the platform value used for Saturnus's Unit, per
// unit_interop.
func (e *Emitter) unitText() string {
	if e.opts.UnitInterop() {
		return "nil"
	}

	return "std.Unit()"
}

// declarePrefix renders the `local ` keyword prefix for a top-level
// declaration, omitted exactly when the binding is pub under
// ModulePubAsGlobal (spec.md §4.7).
func (e *Emitter) declarePrefix(mods ast.Modifiers) string {
	if mods.Has(ast.ModPub) && e.opts.ModuleKind() == options.ModulePubAsGlobal {
		return ""
	}

	return "local "
}

// exportIfPub emits the export statement for a pub top-level binding named
// name, per the selected export strategy.
func (e *Emitter) exportIfPub(name string, mods ast.Modifiers) error {
	if !mods.Has(ast.ModPub) {
		return nil
	}

	switch e.opts.ModuleKind() {
	case options.ModuleSaturnus:
		e.b.Line().Write(e.chain.Expr() + "." + name + " = " + name + ";")
	case options.ModulePubAsGlobal:
		// local was already omitted at declaration time; nothing further to do.
	case options.ModuleLocalModuleReturn:
		return &srcerr.NotImplementedError{Feature: "LocalModuleReturn export strategy"}
	case options.ModuleCustom:
		e.b.Line().Write(e.opts.CustomModuleName() + "." + name + " = " + name + ";")
	}

	return nil
}

// ===========================================================================
// Expressions
// ===========================================================================

func (e *Emitter) emitExpr(expr ast.Expression) error {
	switch n := expr.(type) {
	case *ast.Number:
		return e.emitNumber(n)
	case *ast.String:
		e.b.Write(luaStringLiteral(n.Value))
		return nil
	case *ast.Boolean:
		if n.Value {
			e.b.Write("true")
		} else {
			e.b.Write("false")
		}

		return nil
	case *ast.Unit:
		e.b.Write(e.unitText())
		return nil
	case *ast.Identifier:
		e.b.Write(identifier.Translate(n.Value, n.IsEscaped))
		return nil
	case *ast.MapLiteral:
		return e.emitMapLiteral(n)
	case *ast.ArrayLiteral:
		return e.emitArrayLiteral(n)
	case *ast.TupleLiteral:
		return e.emitTupleLiteral(n)
	case *ast.Lambda:
		return e.emitLambda(n)
	case *ast.Binary:
		return e.emitBinary(n)
	case *ast.Unary:
		return e.emitUnary(n)
	case *ast.Call:
		return e.emitCall(n)
	case *ast.ArrayAccess:
		return e.emitArrayAccess(n)
	case *ast.Member:
		return e.emitMember(n, false)
	default:
		return &srcerr.SystemError{Message: "emitter: unhandled expression node"}
	}
}

func (e *Emitter) emitNumber(n *ast.Number) error {
	if n.Kind == ast.IntNumber {
		e.b.Write(strconv.FormatInt(n.Int, 10))
	} else {
		e.b.Write(strconv.FormatFloat(n.Float, 'g', -1, 64))
	}

	return nil
}

func (e *Emitter) emitMapLiteral(m *ast.MapLiteral) error {
	wrap := e.opts.UseStdCollections()

	if wrap {
		e.b.Write("std.Map(")
	}

	e.b.Write("{")

	for i, entry := range m.Entries {
		if i > 0 {
			e.b.Write(", ")
		}

		switch entry.KeyKind {
		case ast.IdentifierKey:
			e.b.Write(identifier.Bare(entry.KeyName) + " = ")
		case ast.StringKey:
			e.b.Write("[" + luaStringLiteral(entry.KeyName) + "] = ")
		case ast.ExprKey:
			e.b.Write("[")

			if err := e.emitExpr(entry.KeyExpr); err != nil {
				return err
			}

			e.b.Write("] = ")
		}

		if err := e.emitExpr(entry.Value); err != nil {
			return err
		}
	}

	e.b.Write("}")

	if wrap {
		e.b.Write(")")
	}

	return nil
}

func (e *Emitter) emitArrayLiteral(a *ast.ArrayLiteral) error {
	wrap := e.opts.UseStdCollections()

	if wrap {
		e.b.Write("std.Array(")
	}

	e.b.Write("{")

	for i, el := range a.Elements {
		if i > 0 {
			e.b.Write(", ")
		}

		if err := e.emitExpr(el); err != nil {
			return err
		}
	}

	e.b.Write("}")

	if wrap {
		e.b.Write(")")
	}

	return nil
}

func (e *Emitter) emitTupleLiteral(t *ast.TupleLiteral) error {
	if t.IsUnit() {
		e.b.Write(e.unitText())
		return nil
	}

	wrap := e.opts.UseStdCollections()

	if wrap {
		e.b.Write("std.Tuple(")
	}

	e.b.Write("{")

	for i, el := range t.Elements {
		if i > 0 {
			e.b.Write(", ")
		}

		e.b.Write("__" + strconv.Itoa(i) + " = ")

		if err := e.emitExpr(el); err != nil {
			return err
		}
	}

	e.b.Write("}")

	if wrap {
		e.b.Write(")")
	}

	return nil
}

func (e *Emitter) emitLambda(l *ast.Lambda) error {
	e.b.Write("function(")
	writeParamList(e.b, l.Params)
	e.b.Write(")")
	e.b.Push().Line()

	if err := e.emitStmts(l.Body); err != nil {
		return err
	}

	e.b.Pop().Line()
	e.b.Write("end")

	return nil
}

func writeParamList(b *builder.Builder, params []*ast.Identifier) {
	for i, p := range params {
		if i > 0 {
			b.Write(", ")
		}

		b.Write(identifier.Translate(p.Value, p.IsEscaped))
	}
}

func (e *Emitter) emitBinary(bin *ast.Binary) error {
	switch {
	case bin.Op.Kind() == ast.OpPipeInto:
		// left |> f  ≡  f(left)
		if err := e.emitExpr(bin.Right); err != nil {
			return err
		}

		e.b.Write("(")

		if err := e.emitExpr(bin.Left); err != nil {
			return err
		}

		e.b.Write(")")

		return nil
	case bin.Op.Kind() == ast.OpPipeFrom:
		// f <| right  ≡  f(right)
		if err := e.emitExpr(bin.Left); err != nil {
			return err
		}

		e.b.Write("(")

		if err := e.emitExpr(bin.Right); err != nil {
			return err
		}

		e.b.Write(")")

		return nil
	case bin.Op.IsCustom():
		e.b.Write(identifier.Escaped(bin.Op.Token()) + "(")

		if err := e.emitExpr(bin.Left); err != nil {
			return err
		}

		e.b.Write(", ")

		if err := e.emitExpr(bin.Right); err != nil {
			return err
		}

		e.b.Write(")")

		return nil
	}

	if tok, ok := nativeBinaryToken[bin.Op.Kind()]; ok {
		if err := e.emitExpr(bin.Left); err != nil {
			return err
		}

		e.b.Write(" " + tok + " ")

		if err := e.emitExpr(bin.Right); err != nil {
			return err
		}

		return nil
	}

	fallback, ok := fallbackBinaryToken[bin.Op.Kind()]
	if !ok {
		return &srcerr.SystemError{Message: "emitter: binary operator has neither a native form nor a fallback token"}
	}

	e.b.Write(identifier.Escaped(fallback) + "(")

	if err := e.emitExpr(bin.Left); err != nil {
		return err
	}

	e.b.Write(", ")

	if err := e.emitExpr(bin.Right); err != nil {
		return err
	}

	e.b.Write(")")

	return nil
}

func (e *Emitter) emitUnary(u *ast.Unary) error {
	if u.Op.IsCustom() {
		e.b.Write(identifier.Escaped(u.Op.Token()) + "(")

		if err := e.emitExpr(u.Expr); err != nil {
			return err
		}

		e.b.Write(")")

		return nil
	}

	tok, ok := nativeUnaryToken[u.Op.Kind()]
	if !ok {
		return &srcerr.SystemError{Message: "emitter: unary operator has no native Lua form"}
	}

	e.b.Write(tok)

	if err := e.emitExpr(u.Expr); err != nil {
		return err
	}

	return nil
}

func (e *Emitter) emitMember(m *ast.Member, asCallTarget bool) error {
	switch m.Op {
	case ast.MemberDot:
		if err := e.emitExpr(m.Target); err != nil {
			return err
		}

		if asCallTarget {
			e.b.Write(":" + identifier.Bare(m.Field))
		} else {
			e.b.Write("." + identifier.Bare(m.Field))
		}

		return nil
	case ast.MemberStatic:
		if err := e.emitExpr(m.Target); err != nil {
			return err
		}

		e.b.Write("." + identifier.Bare(m.Field))

		return nil
	case ast.MemberDispatch:
		if err := e.emitExpr(m.Target); err != nil {
			return err
		}

		e.b.Write(":" + identifier.Bare(m.Field))

		return nil
	case ast.MemberCoalesce:
		e.b.Write("(")

		if err := e.emitExpr(m.Target); err != nil {
			return err
		}

		e.b.Write(" ~= " + e.unitText() + " and ")

		if err := e.emitExpr(m.Target); err != nil {
			return err
		}

		e.b.Write("." + identifier.Bare(m.Field))
		e.b.Write(")")

		return nil
	default:
		return &srcerr.SystemError{Message: "emitter: unhandled member access form"}
	}
}

// emitCallee writes target as the callee of a Call, rewriting a plain-dot
// Member into dispatch (`:`) form per spec.md §4.6.
//
// A MemberCoalesce target (`a?.b(x)`) is special-cased the same way: its
// guard is written unparenthesized, exactly as emitMember writes it when
// used alone, EXCEPT without the wrapping `(...)`. A trailing call binds
// tighter than `and` in Lua, so `a ~= nil and a.b(x)` short-circuits to the
// boolean `false` whenever `a` is nil instead of attempting `(a ~= nil and
// a.b)(x)`, which would try to call a boolean. Parenthesizing the guard
// here would undo that and reintroduce the "attempt to call a boolean
// value" failure for every null-safe call.
func (e *Emitter) emitCallee(target ast.Expression) error {
	m, ok := target.(*ast.Member)
	if !ok {
		return e.emitExpr(target)
	}

	switch m.Op {
	case ast.MemberDot:
		return e.emitMember(m, true)
	case ast.MemberCoalesce:
		if err := e.emitExpr(m.Target); err != nil {
			return err
		}

		e.b.Write(" ~= " + e.unitText() + " and ")

		if err := e.emitExpr(m.Target); err != nil {
			return err
		}

		e.b.Write("." + identifier.Bare(m.Field))

		return nil
	default:
		return e.emitExpr(target)
	}
}

func (e *Emitter) emitCall(c *ast.Call) error {
	if c.IsNullSafe {
		e.b.Write("(")

		if err := e.emitExpr(c.Target); err != nil {
			return err
		}

		e.b.Write(" ~= " + e.unitText() + " and ")

		if err := e.emitCallee(c.Target); err != nil {
			return err
		}

		if err := e.emitArgs(c.Args); err != nil {
			return err
		}

		e.b.Write(")")

		return nil
	}

	if err := e.emitCallee(c.Target); err != nil {
		return err
	}

	return e.emitArgs(c.Args)
}

func (e *Emitter) emitArgs(args []ast.Expression) error {
	e.b.Write("(")

	for i, a := range args {
		if i > 0 {
			e.b.Write(", ")
		}

		if err := e.emitExpr(a); err != nil {
			return err
		}
	}

	e.b.Write(")")

	return nil
}

func (e *Emitter) emitArrayAccess(a *ast.ArrayAccess) error {
	if a.IsNullSafe {
		e.b.Write("(")

		if err := e.emitExpr(a.Target); err != nil {
			return err
		}

		e.b.Write(" ~= " + e.unitText() + " and ")

		if err := e.emitExpr(a.Target); err != nil {
			return err
		}

		if err := e.writeIndices(a.Args); err != nil {
			return err
		}

		e.b.Write(")")

		return nil
	}

	if err := e.emitExpr(a.Target); err != nil {
		return err
	}

	return e.writeIndices(a.Args)
}

func (e *Emitter) writeIndices(args []ast.Expression) error {
	for _, a := range args {
		e.b.Write("[")

		if err := e.emitExpr(a); err != nil {
			return err
		}

		e.b.Write("]")
	}

	return nil
}

// luaStringLiteral renders a string literal, using Lua's long-bracket form
// for any body containing a raw newline (spec.md §4.1).
func luaStringLiteral(v string) string {
	if strings.Contains(v, "\n") {
		return "[[" + v + "]]"
	}

	var sb strings.Builder

	sb.WriteByte('"')

	for _, r := range v {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
