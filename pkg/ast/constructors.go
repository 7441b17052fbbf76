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

package ast

import "github.com/saturnus-lang/saturnusc/pkg/srcerr"

// This file gathers the constructors for node kinds not already covered
// in-line in ast.go/statement.go (pkg/parser builds every node through one of
// these; `base` is deliberately unexported so a node's span can never be
// mutated after construction).

// NewString constructs a string literal node.
func NewString(at srcerr.Span, value string) *String { return &String{base{at}, value} }

// NewBoolean constructs a boolean literal node.
func NewBoolean(at srcerr.Span, value bool) *Boolean { return &Boolean{base{at}, value} }

// NewUnit constructs the Unit literal node.
func NewUnit(at srcerr.Span) *Unit { return &Unit{base{at}} }

// NewMapLiteral constructs a map literal node.
func NewMapLiteral(at srcerr.Span, entries []MapEntry) *MapLiteral {
	return &MapLiteral{base{at}, entries}
}

// NewArrayLiteral constructs an array literal node.
func NewArrayLiteral(at srcerr.Span, elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{base{at}, elements}
}

// NewTupleLiteral constructs a tuple literal node. An empty elements slice
// denotes the canonical Unit value.
func NewTupleLiteral(at srcerr.Span, elements []Expression) *TupleLiteral {
	return &TupleLiteral{base{at}, elements}
}

// NewLambda constructs a lambda node.
func NewLambda(at srcerr.Span, params []*Identifier, body []Statement) *Lambda {
	return &Lambda{base{at}, params, body}
}

// NewBinary constructs a binary expression node.
func NewBinary(at srcerr.Span, left Expression, op Operator, right Expression) *Binary {
	return &Binary{base{at}, left, op, right}
}

// NewUnary constructs a unary expression node.
func NewUnary(at srcerr.Span, op Operator, expr Expression) *Unary {
	return &Unary{base{at}, op, expr}
}

// NewCall constructs a call expression node.
func NewCall(at srcerr.Span, target Expression, args []Expression, nullSafe bool) *Call {
	return &Call{base{at}, target, args, nullSafe}
}

// NewArrayAccess constructs an array-access expression node.
func NewArrayAccess(at srcerr.Span, target Expression, args []Expression, nullSafe bool) *ArrayAccess {
	return &ArrayAccess{base{at}, target, args, nullSafe}
}

// NewMember constructs a member-access expression node.
func NewMember(at srcerr.Span, target Expression, op MemberOp, field string) *Member {
	return &Member{base{at}, target, op, field}
}

// NewLet constructs a Let statement node.
func NewLet(at srcerr.Span, target Destructure, typ string, init Expression, mods Modifiers) *Let {
	return &Let{base{at}, target, typ, init, mods}
}

// NewAssignment constructs an Assignment statement node.
func NewAssignment(at srcerr.Span, target AssignTarget, compoundOp *Operator, right Expression) *Assignment {
	return &Assignment{base{at}, target, compoundOp, right}
}

// NewFn constructs an Fn statement node.
func NewFn(at srcerr.Span, name string, mods Modifiers, params []*Identifier, body []Statement) *Fn {
	return &Fn{base{at}, name, mods, params, body}
}

// NewClassDef constructs a ClassDef statement node.
func NewClassDef(at srcerr.Span, name, parent string, fields []Field, mods Modifiers) *ClassDef {
	return &ClassDef{base{at}, name, parent, fields, mods}
}

// NewIf constructs an If statement node.
func NewIf(at srcerr.Span, cond Expression, body []Statement, elseIfs []ElseIf, els []Statement) *If {
	return &If{base{at}, cond, body, elseIfs, els}
}

// NewFor constructs a For statement node.
func NewFor(at srcerr.Span, d Destructure, iter Expression, body []Statement) *For {
	return &For{base{at}, d, iter, body}
}

// NewWhile constructs a While statement node.
func NewWhile(at srcerr.Span, cond Expression, body []Statement) *While {
	return &While{base{at}, cond, body}
}

// NewLoop constructs a Loop statement node.
func NewLoop(at srcerr.Span, body []Statement) *Loop { return &Loop{base{at}, body} }

// NewReturn constructs a Return statement node.
func NewReturn(at srcerr.Span, expr Expression) *Return { return &Return{base{at}, expr} }

// NewBreak constructs a Break statement node.
func NewBreak(at srcerr.Span) *Break { return &Break{base{at}} }

// NewSkip constructs a Skip statement node.
func NewSkip(at srcerr.Span) *Skip { return &Skip{base{at}} }

// NewUse constructs a Use statement node.
func NewUse(at srcerr.Span, path []string, tree []UseEntry) *Use {
	return &Use{base{at}, path, tree}
}

// NewExprStmt constructs an ExprStmt node.
func NewExprStmt(at srcerr.Span, expr Expression) *ExprStmt { return &ExprStmt{base{at}, expr} }
