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

import "github.com/saturnus-lang/saturnusc/pkg/ast"

// nativeBinaryToken lists every fixed Operator kind that has a direct Lua
// infix form. Kinds absent here either lack a Lua equivalent (fall back to
// fallbackBinaryToken) or are handled as a special rewrite (the two pipeline
// kinds, in emitBinary).
var nativeBinaryToken = map[ast.OpKind]string{
	ast.OpAdd:    "+",
	ast.OpSub:    "-",
	ast.OpMul:    "*",
	ast.OpDiv:    "/",
	ast.OpMod:    "%",
	ast.OpPow:    "^",
	ast.OpAnd:    "and",
	ast.OpOr:     "or",
	ast.OpEq:     "==",
	ast.OpNeq:    "~=",
	ast.OpLt:     "<",
	ast.OpLte:    "<=",
	ast.OpGt:     ">",
	ast.OpGte:    ">=",
	ast.OpBitAnd: "&",
	ast.OpBitOr:  "|",
	ast.OpBitXor: "~",
	ast.OpStrCat: "..",
	ast.OpLShift: "<<",
	ast.OpRShift: ">>",
}

// fallbackBinaryToken names the escaped-call token used for a fixed Operator
// kind that Lua has no infix form for: Range (Lua has no range primitive) and
// the two rotate-shift forms (Lua 5.3's << / >> do not rotate), plus the
// keyword logic forms Lua itself does not define (xor/nand/nor).
var fallbackBinaryToken = map[ast.OpKind]string{
	ast.OpRange:      "..",
	ast.OpLShiftRot:  "<<<",
	ast.OpRShiftRot:  ">>>",
	ast.OpXorKw:      "xor",
	ast.OpNand:       "nand",
	ast.OpNor:        "nor",
}

// nativeUnaryToken lists the fixed unary Operator kinds with a direct Lua
// prefix form. Every unary kind in the current enum has one.
var nativeUnaryToken = map[ast.OpKind]string{
	ast.OpSub:    "-",
	ast.OpNot:    "not ",
	ast.OpBitNot: "~",
}
