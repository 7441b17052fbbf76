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

package emitter

import (
	"strconv"
	"strings"

	"github.com/saturnus-lang/saturnusc/pkg/ast"
	"github.com/saturnus-lang/saturnusc/pkg/codegen/identifier"
	"github.com/saturnus-lang/saturnusc/pkg/srcerr"
)

// emitStmts writes every statement in stmts, joining consecutive statements
// with exactly one line break. It never writes a leading or trailing line
// break of its own, so callers control the blank line before/after a nested
// block (see emitIf, emitFn, etc. for the surrounding Push/Pop/Line dance).
func (e *Emitter) emitStmts(stmts []ast.Statement) error {
	for i, s := range stmts {
		if i > 0 {
			e.b.Line()
		}

		if err := e.emitStmt(s); err != nil {
			return err
		}
	}

	return nil
}

func (e *Emitter) emitStmt(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Let:
		return e.emitLet(s)
	case *ast.Assignment:
		return e.emitAssignment(s)
	case *ast.Fn:
		return e.emitFn(s)
	case *ast.ClassDef:
		return e.emitClassDef(s)
	case *ast.If:
		return e.emitIf(s)
	case *ast.For:
		return e.emitFor(s)
	case *ast.While:
		return e.emitWhile(s)
	case *ast.Loop:
		return e.emitLoop(s)
	case *ast.Return:
		return e.emitReturn(s)
	case *ast.Break:
		e.b.Write("break;")
		return nil
	case *ast.Skip:
		e.b.Write("goto loop_end;")
		return nil
	case *ast.Use:
		return e.emitUse(s)
	case *ast.ExprStmt:
		if err := e.emitExpr(s.Expr); err != nil {
			return err
		}

		e.b.Write(";")

		return nil
	default:
		return &srcerr.SystemError{Message: "emitter: unhandled statement node"}
	}
}

func (e *Emitter) emitLet(l *ast.Let) error {
	if l.Target.Kind == ast.DestructureIdentifier {
		return e.emitSimpleLet(l)
	}

	return e.emitDestructuringLet(l)
}

func (e *Emitter) emitSimpleLet(l *ast.Let) error {
	id := l.Target.Identifier

	if id.IsVoid() {
		// A void binding has nowhere to go; only the initializer's side
		// effect, if any, survives.
		if l.Init == nil {
			return nil
		}

		if err := e.emitExpr(l.Init); err != nil {
			return err
		}

		e.b.Write(";")

		return nil
	}

	name := identifier.Translate(id.Value, id.IsEscaped)

	e.b.Write(e.declarePrefix(l.Modifiers) + name + " = ")

	if l.Init != nil {
		if err := e.emitExpr(l.Init); err != nil {
			return err
		}
	} else {
		e.b.Write(e.unitText())
	}

	e.b.Write(";")

	if err := e.exportIfPub(name, l.Modifiers); err != nil {
		return err
	}

	return nil
}

func (e *Emitter) emitDestructuringLet(l *ast.Let) error {
	leaves := l.Target.Leaves()

	names := make([]string, len(leaves))
	for i, n := range leaves {
		names[i] = identifier.Bare(n)
	}

	declare := e.declarePrefix(l.Modifiers)

	if len(names) > 0 && declare != "" {
		e.b.Write(declare + strings.Join(names, ", ") + ";")
		e.b.Line()
	}

	e.b.Write("do")
	e.b.Push().Line()
	e.b.Write("local __destructure_target__ = ")

	if l.Init != nil {
		if err := e.emitExpr(l.Init); err != nil {
			return err
		}
	} else {
		e.b.Write(e.unitText())
	}

	e.b.Write(";")
	e.b.Line()

	if err := e.assignDestructureLeaves(l.Target, "__destructure_target__"); err != nil {
		return err
	}

	e.b.Pop().Line()
	e.b.Write("end")

	for _, n := range names {
		if err := e.exportIfPub(n, l.Modifiers); err != nil {
			return err
		}
	}

	return nil
}

// declareAndAssignDestructure declares a local for every leaf of d and
// assigns each from rootText, used by the For-loop destructuring paths (the
// bindings there are never pub, so no export step applies).
func (e *Emitter) declareAndAssignDestructure(d ast.Destructure, rootText string) error {
	leaves := d.Leaves()

	if len(leaves) > 0 {
		names := make([]string, len(leaves))
		for i, n := range leaves {
			names[i] = identifier.Bare(n)
		}

		e.b.Write("local " + strings.Join(names, ", ") + ";")
		e.b.Line()
	}

	return e.assignDestructureLeaves(d, rootText)
}

// assignDestructureLeaves recursively assigns every non-void leaf of d from
// rootText, indexing arrays 1-based, tuples by their synthetic `__i` field,
// and maps by field name; aliasing simply descends into the aliased pattern
// without rebinding the outer name (spec.md §4.6).
func (e *Emitter) assignDestructureLeaves(d ast.Destructure, rootText string) error {
	switch d.Kind {
	case ast.DestructureIdentifier:
		if d.Identifier.IsVoid() {
			return nil
		}

		e.b.Write(identifier.Translate(d.Identifier.Value, d.Identifier.IsEscaped) + " = " + rootText + ";")
		e.b.Line()

		return nil
	case ast.DestructureArray:
		for i, entry := range d.Entries {
			child := rootText + "[" + strconv.Itoa(i+1) + "]"

			if err := e.assignDestructureLeaves(entry.Pattern, child); err != nil {
				return err
			}
		}

		return nil
	case ast.DestructureTuple:
		for i, entry := range d.Entries {
			child := rootText + ".__" + strconv.Itoa(i)

			if err := e.assignDestructureLeaves(entry.Pattern, child); err != nil {
				return err
			}
		}

		return nil
	case ast.DestructureMap:
		for _, entry := range d.Entries {
			child := rootText + "." + identifier.Bare(entry.Name)

			if err := e.assignDestructureLeaves(entry.Pattern, child); err != nil {
				return err
			}
		}

		return nil
	default:
		return &srcerr.SystemError{Message: "emitter: unhandled destructure pattern kind"}
	}
}

func (e *Emitter) emitAssignment(a *ast.Assignment) error {
	if a.CompoundOp != nil {
		rewritten := ast.NewBinary(a.Span(), a.Target.(ast.Expression), *a.CompoundOp, a.Right)
		return e.emitAssignment(ast.NewAssignment(a.Span(), a.Target, nil, rewritten))
	}

	if err := e.emitExpr(a.Target.(ast.Expression)); err != nil {
		return err
	}

	e.b.Write(" = ")

	if err := e.emitExpr(a.Right); err != nil {
		return err
	}

	e.b.Write(";")

	return nil
}

func (e *Emitter) emitFn(f *ast.Fn) error {
	name := identifier.Bare(f.Name)

	e.b.Write(e.declarePrefix(f.Modifiers) + "function " + name + "(")
	writeParamList(e.b, f.Params)
	e.b.Write(")")
	e.b.Push().Line()

	if err := e.emitStmts(f.Body); err != nil {
		return err
	}

	e.b.Pop().Line()
	e.b.Write("end")

	return e.exportIfPub(name, f.Modifiers)
}

func (e *Emitter) emitIf(i *ast.If) error {
	e.b.Write("if ")

	if err := e.emitExpr(i.Cond); err != nil {
		return err
	}

	e.b.Write(" then")
	e.b.Push().Line()

	if err := e.emitStmts(i.Body); err != nil {
		return err
	}

	e.b.Pop().Line()

	for _, ei := range i.ElseIfs {
		e.b.Write("elseif ")

		if err := e.emitExpr(ei.Cond); err != nil {
			return err
		}

		e.b.Write(" then")
		e.b.Push().Line()

		if err := e.emitStmts(ei.Body); err != nil {
			return err
		}

		e.b.Pop().Line()
	}

	if i.Else != nil {
		e.b.Write("else")
		e.b.Push().Line()

		if err := e.emitStmts(i.Else); err != nil {
			return err
		}

		e.b.Pop().Line()
	}

	e.b.Write("end")

	return nil
}

func (e *Emitter) emitReturn(r *ast.Return) error {
	if r.Expr == nil {
		e.b.Write("return;")
		return nil
	}

	e.b.Write("return ")

	if err := e.emitExpr(r.Expr); err != nil {
		return err
	}

	e.b.Write(";")

	return nil
}

// emitUse translates a `use` statement into one or more Let-style bindings
// off the __modules__ table (spec.md §4.6).
func (e *Emitter) emitUse(u *ast.Use) error {
	base := strings.Join(u.Path, ".")

	if u.Tree == nil {
		last := u.Path[len(u.Path)-1]
		e.b.Write("local " + identifier.Bare(last) + " = __modules__." + base + ";")

		return nil
	}

	return e.emitUseTree(base, u.Tree)
}

func (e *Emitter) emitUseTree(prefix string, entries []ast.UseEntry) error {
	for i, entry := range entries {
		if i > 0 {
			e.b.Line()
		}

		// A backtick-escaped leaf (e.g. `|>`) is never valid as a bare `.`
		// member-access segment, so its final path segment is mangled the
		// same way any other escaped identifier reference is.
		segs := entry.Path
		if entry.IsEscaped {
			segs = append(append([]string{}, entry.Path[:len(entry.Path)-1]...), identifier.Escaped(entry.Path[len(entry.Path)-1]))
		}

		path := prefix + "." + strings.Join(segs, ".")

		if entry.Children != nil {
			if err := e.emitUseTree(path, entry.Children); err != nil {
				return err
			}

			continue
		}

		last := identifier.Translate(entry.Path[len(entry.Path)-1], entry.IsEscaped)
		e.b.Write("local " + last + " = __modules__." + path + ";")
	}

	return nil
}
