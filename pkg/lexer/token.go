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

// Package lexer turns Saturnus source text into a flat token stream for
// pkg/parser.  Comments (`//...` and `/* ... */`) are skipped as whitespace
// and never produce tokens.
package lexer

import "github.com/saturnus-lang/saturnusc/pkg/srcerr"

// Kind identifies the lexical category of a Token.
type Kind int

// Token kinds.
const (
	EOF Kind = iota
	Ident
	EscapedIdent // backtick-quoted operator or arbitrary name
	IntLit
	FloatLit
	CharLit // single-quoted single character, value is the character itself
	StringLit
	Keyword
	// Operator is any run of the custom-operator character class, including
	// the ones with a fixed, well-known meaning (+, -, .., etc). The parser
	// decides fixed-vs-custom based on Text.
	Operator
	// Punct covers structural punctuation that is never part of a custom
	// operator run: ( ) [ ] { } , ; and similar. `:`, `::` and `=` are
	// operator characters and lex as Operator.
	Punct
)

// Token is one lexical unit, tagged with its source span.
type Token struct {
	Kind Kind
	Text string
	At   srcerr.Span
}

// keywords is the fixed set of reserved words recognised by the lexer.
// Reserved Lua words are a distinct, disjoint list owned by
// pkg/codegen/identifier — a word being a Saturnus keyword does not make it a
// Lua reserved word and vice versa.
var keywords = map[string]bool{
	"let": true, "fn": true, "class": true, "if": true, "else": true,
	"for": true, "in": true, "while": true, "loop": true, "return": true,
	"break": true, "skip": true, "use": true, "pub": true, "static": true,
	"partial": true, "and": true, "or": true, "xor": true, "nand": true,
	"nor": true, "true": true, "false": true,
}

// IsKeyword reports whether word is a reserved Saturnus keyword.
func IsKeyword(word string) bool {
	return keywords[word]
}
