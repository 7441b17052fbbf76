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
	"github.com/saturnus-lang/saturnusc/pkg/ast"
	"github.com/saturnus-lang/saturnusc/pkg/codegen/identifier"
)

// emitFor tries the two loop-optimized forms of spec.md §4.6 before falling
// back to the generic destructuring iteration.
func (e *Emitter) emitFor(f *ast.For) error {
	if !e.opts.SkipLoopInterop() {
		if ok, err := e.tryRangeLoop(f); err != nil {
			return err
		} else if ok {
			return nil
		}

		if ok, err := e.tryPairsLoop(f); err != nil {
			return err
		} else if ok {
			return nil
		}
	}

	return e.emitGenericFor(f)
}

// tryRangeLoop fires when the iterator is `a..b` and the binder is a single
// identifier, emitting Lua's native numeric for.
func (e *Emitter) tryRangeLoop(f *ast.For) (bool, error) {
	bin, ok := f.IterExpr.(*ast.Binary)
	if !ok || bin.Op.Kind() != ast.OpRange {
		return false, nil
	}

	if f.Destructure.Kind != ast.DestructureIdentifier {
		return false, nil
	}

	name := identifierBareOrVoid(f.Destructure.Identifier)

	e.b.Write("for " + name + " = ")

	if err := e.emitExpr(bin.Left); err != nil {
		return false, err
	}

	e.b.Write(", ")

	if err := e.emitExpr(bin.Right); err != nil {
		return false, err
	}

	e.b.Write(" do")
	e.b.Push().Line()

	if err := e.emitStmts(f.Body); err != nil {
		return false, err
	}

	e.b.Line()
	e.b.Write("::loop_end::")
	e.b.Pop().Line()
	e.b.Write("end")

	return true, nil
}

// tryPairsLoop fires when the iterator is a bare call to pairs/ipairs and
// the binder is a 2-tuple pattern.
func (e *Emitter) tryPairsLoop(f *ast.For) (bool, error) {
	call, ok := f.IterExpr.(*ast.Call)
	if !ok {
		return false, nil
	}

	id, ok := call.Target.(*ast.Identifier)
	if !ok || id.IsEscaped || (id.Value != "pairs" && id.Value != "ipairs") {
		return false, nil
	}

	if f.Destructure.Kind != ast.DestructureTuple || len(f.Destructure.Entries) != 2 {
		return false, nil
	}

	keyName, keyOk := simpleIdentName(f.Destructure.Entries[0].Pattern)
	if !keyOk {
		return false, nil
	}

	valName, valOk := simpleIdentName(f.Destructure.Entries[1].Pattern)

	binderExpr := "__destructure_value__"
	if valOk {
		binderExpr = valName
	}

	e.b.Write("for " + keyName + ", " + binderExpr + " in ")

	if err := e.emitExpr(f.IterExpr); err != nil {
		return false, err
	}

	e.b.Write(" do")
	e.b.Push().Line()

	if !valOk {
		if err := e.declareAndAssignDestructure(f.Destructure.Entries[1].Pattern, "__destructure_value__"); err != nil {
			return false, err
		}

		e.b.Line()
	}

	if err := e.emitStmts(f.Body); err != nil {
		return false, err
	}

	e.b.Line()
	e.b.Write("::loop_end::")
	e.b.Pop().Line()
	e.b.Write("end")

	return true, nil
}

func (e *Emitter) emitGenericFor(f *ast.For) error {
	e.b.Write("for __destructure_value__ in ")

	if err := e.emitExpr(f.IterExpr); err != nil {
		return err
	}

	e.b.Write(" do")
	e.b.Push().Line()

	if err := e.declareAndAssignDestructure(f.Destructure, "__destructure_value__"); err != nil {
		return err
	}

	e.b.Line()

	if err := e.emitStmts(f.Body); err != nil {
		return err
	}

	e.b.Line()
	e.b.Write("::loop_end::")
	e.b.Pop().Line()
	e.b.Write("end")

	return nil
}

func (e *Emitter) emitWhile(w *ast.While) error {
	e.b.Write("while ")

	if err := e.emitExpr(w.Cond); err != nil {
		return err
	}

	e.b.Write(" do")
	e.b.Push().Line()

	if err := e.emitStmts(w.Body); err != nil {
		return err
	}

	e.b.Line()
	e.b.Write("::loop_end::")
	e.b.Pop().Line()
	e.b.Write("end")

	return nil
}

func (e *Emitter) emitLoop(l *ast.Loop) error {
	e.b.Write("while true do")
	e.b.Push().Line()

	if err := e.emitStmts(l.Body); err != nil {
		return err
	}

	e.b.Line()
	e.b.Write("::loop_end::")
	e.b.Pop().Line()
	e.b.Write("end")

	return nil
}

// simpleIdentName reports the bare emitted name of d when it is a plain
// (non-void) identifier pattern.
func simpleIdentName(d ast.Destructure) (string, bool) {
	if d.Kind != ast.DestructureIdentifier || d.Identifier == nil {
		return "", false
	}

	if d.Identifier.IsVoid() {
		return "_", true
	}

	return identifierBareOrVoid(d.Identifier), true
}

func identifierBareOrVoid(id *ast.Identifier) string {
	if id.IsVoid() {
		return "_"
	}

	return identifier.Translate(id.Value, id.IsEscaped)
}
