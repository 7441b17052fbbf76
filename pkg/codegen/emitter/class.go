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

// emitClassDef lowers a class declaration to a plain table plus a
// metatable-driven constructor, per spec.md §4.6's five-step recipe.
func (e *Emitter) emitClassDef(c *ast.ClassDef) error {
	name := identifier.Bare(c.Name)

	e.b.Write(e.declarePrefix(c.Modifiers) + name + " = {};")
	e.b.Line()

	for _, field := range c.Fields {
		if !field.IsMethod {
			continue
		}

		if err := e.emitMethod(name, field); err != nil {
			return err
		}

		e.b.Line()
	}

	if err := e.emitClassIndex(name, c.Parent); err != nil {
		return err
	}

	e.b.Line()

	if err := e.emitClassConstructor(name, c.Fields); err != nil {
		return err
	}

	return e.exportIfPub(name, c.Modifiers)
}

// emitMethod emits one field's method as `function Name.m(...)` (static) or
// `function Name:m(...)` (instance, first declared parameter dropped since
// `:` supplies it implicitly as `self`).
func (e *Emitter) emitMethod(className string, field ast.Field) error {
	sep := ":"

	params := field.MethodParam
	if field.Modifiers.Has(ast.ModStatic) {
		sep = "."
	} else if len(params) > 0 {
		params = params[1:]
	}

	e.b.Write("function " + className + sep + identifier.Bare(field.Name) + "(")
	writeParamList(e.b, params)
	e.b.Write(")")
	e.b.Push().Line()

	if err := e.emitStmts(field.MethodBody); err != nil {
		return err
	}

	e.b.Pop().Line()
	e.b.Write("end")

	return nil
}

// emitClassIndex synthesizes `Name.__meta__ = { __index = function(self,
// key) ... end }`: the index closure tries the instance's own raw slot,
// then the class table (for methods), then the parent class if present.
func (e *Emitter) emitClassIndex(name, parent string) error {
	e.b.Write(name + ".__meta__ = { __index = function(self, key)")
	e.b.Push().Line()
	e.b.Write("local v = rawget(self, key);")
	e.b.Line()
	e.b.Write("if v ~= nil then return v; end")
	e.b.Line()
	e.b.Write("v = " + name + "[key];")
	e.b.Line()
	e.b.Write("if v ~= nil then return v; end")
	e.b.Line()

	if parent != "" {
		e.b.Write("return " + identifier.Bare(parent) + "[key];")
	} else {
		e.b.Write("return nil;")
	}

	e.b.Pop().Line()
	e.b.Write("end };")

	return nil
}

// emitClassConstructor synthesizes `setmetatable(Name, { __call = ... })` so
// that `Name(values)` builds an instance: an absent (Unit) values table
// becomes empty, every field with an initializer fills its slot when absent
// from values, and the result is stamped with Name's metatable.
func (e *Emitter) emitClassConstructor(name string, fields []ast.Field) error {
	e.b.Write("setmetatable(" + name + ", { __call = function(Self, values)")
	e.b.Push().Line()
	e.b.Write("if values == " + e.unitText() + " then values = {}; end")

	for _, field := range fields {
		if field.IsMethod || field.Init == nil {
			continue
		}

		fieldName := identifier.Bare(field.Name)

		e.b.Line()
		e.b.Write("if values." + fieldName + " == nil then values." + fieldName + " = ")

		if err := e.emitExpr(field.Init); err != nil {
			return err
		}

		e.b.Write("; end")
	}

	e.b.Line()
	e.b.Write("return setmetatable(values, Self.__meta__);")
	e.b.Pop().Line()
	e.b.Write("end });")

	return nil
}
