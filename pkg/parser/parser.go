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

// Package parser implements a single-pass, precedence-climbing recursive
// descent parser from Saturnus source text to pkg/ast.  There is no error
// recovery: the first malformed construct aborts the parse with a
// *srcerr.ParseError (spec.md §4.1 — "recovery is not attempted").
package parser

import (
	"strconv"

	"github.com/saturnus-lang/saturnusc/pkg/ast"
	"github.com/saturnus-lang/saturnusc/pkg/lexer"
	"github.com/saturnus-lang/saturnusc/pkg/srcerr"
)

// Parse parses a complete Saturnus source body into a sequence of top-level
// statements.
func Parse(body string) ([]ast.Statement, error) {
	p := &Parser{lex: lexer.New(body)}

	var stmts []ast.Statement

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}

		if tok.Kind == lexer.EOF {
			break
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

// Parser holds the lexer and implements every grammar rule of spec.md §4.1
// as one method.
type Parser struct {
	lex *lexer.Lexer
}

func (p *Parser) peek() (lexer.Token, error) { return p.lex.Peek() }
func (p *Parser) next() (lexer.Token, error) { return p.lex.Next() }

func (p *Parser) expectPunct(text string) (lexer.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	if (tok.Kind != lexer.Punct && tok.Kind != lexer.Operator) || tok.Text != text {
		return tok, &srcerr.ParseError{At: tok.At, Expected: []string{text}, Message: "unexpected token '" + tok.Text + "'"}
	}

	return tok, nil
}

func (p *Parser) expectKeyword(word string) (lexer.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	if tok.Kind != lexer.Keyword || tok.Text != word {
		return tok, &srcerr.ParseError{At: tok.At, Expected: []string{word}, Message: "unexpected token '" + tok.Text + "'"}
	}

	return tok, nil
}

func (p *Parser) expectIdent() (lexer.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	if tok.Kind != lexer.Ident {
		return tok, &srcerr.ParseError{At: tok.At, Expected: []string{"identifier"}, Message: "unexpected token '" + tok.Text + "'"}
	}

	return tok, nil
}

func (p *Parser) atPunct(text string) bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == lexer.Punct && tok.Text == text
}

func (p *Parser) atOperator(text string) bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == lexer.Operator && tok.Text == text
}

func (p *Parser) atKeyword(word string) bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == lexer.Keyword && tok.Text == word
}

// ===========================================================================
// Statements
// ===========================================================================

func (p *Parser) parseStatement() (ast.Statement, error) {
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == lexer.Keyword {
		switch tok.Text {
		case "let":
			return p.parseLet(mods)
		case "fn":
			return p.parseFn(mods)
		case "class":
			return p.parseClass(mods)
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			return p.parseWhile()
		case "loop":
			return p.parseLoop()
		case "return":
			return p.parseReturn()
		case "break":
			next, _ := p.next()
			if _, err := p.expectPunct(";"); err != nil {
				return nil, err
			}

			return ast.NewBreak(next.At), nil
		case "skip":
			next, _ := p.next()
			if _, err := p.expectPunct(";"); err != nil {
				return nil, err
			}

			return ast.NewSkip(next.At), nil
		case "use":
			return p.parseUse()
		}
	}

	return p.parseExprOrAssignment()
}

// parseModifiers consumes any leading run of `pub`/`static`/`partial`
// keywords preceding a declaration.
func (p *Parser) parseModifiers() (ast.Modifiers, error) {
	var mods ast.Modifiers

	for {
		tok, err := p.peek()
		if err != nil {
			return mods, err
		}

		if tok.Kind != lexer.Keyword {
			return mods, nil
		}

		switch tok.Text {
		case "pub":
			mods |= ast.ModPub
		case "static":
			mods |= ast.ModStatic
		case "partial":
			mods |= ast.ModPartial
		default:
			return mods, nil
		}

		if _, err := p.next(); err != nil {
			return mods, err
		}
	}
}

func (p *Parser) parseLet(mods ast.Modifiers) (ast.Statement, error) {
	start, err := p.expectKeyword("let")
	if err != nil {
		return nil, err
	}

	target, err := p.parseDestructure()
	if err != nil {
		return nil, err
	}

	var typ string

	if p.atPunct(":") || p.atOperator(":") {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		typeTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		typ = typeTok.Text
	}

	var init ast.Expression

	if p.atOperator("=") {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return ast.NewLet(start.At, target, typ, init, mods), nil
}

// parseDestructure parses a (possibly nested) binding pattern: a bare
// identifier, or an Array/Map/Tuple pattern.
func (p *Parser) parseDestructure() (ast.Destructure, error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Destructure{}, err
	}

	switch {
	case tok.Kind == lexer.Ident:
		idTok, _ := p.next()
		return ast.NewIdentifierDestructure(ast.NewIdentifier(idTok.At, idTok.Text)), nil
	case tok.Kind == lexer.Punct && tok.Text == "[":
		return p.parseArrayDestructure()
	case tok.Kind == lexer.Punct && tok.Text == "{":
		return p.parseMapDestructure()
	case tok.Kind == lexer.Punct && tok.Text == "(":
		return p.parseTupleDestructure()
	default:
		return ast.Destructure{}, &srcerr.ParseError{At: tok.At, Message: "expected a binding pattern", Expected: []string{"identifier", "[", "{", "("}}
	}
}

func (p *Parser) parseArrayDestructure() (ast.Destructure, error) {
	if _, err := p.expectPunct("["); err != nil {
		return ast.Destructure{}, err
	}

	var entries []ast.Entry

	for !p.atPunct("]") {
		inner, err := p.parseDestructure()
		if err != nil {
			return ast.Destructure{}, err
		}

		entries = append(entries, ast.Entry{Pattern: inner})

		if p.atPunct(",") {
			if _, err := p.next(); err != nil {
				return ast.Destructure{}, err
			}
		} else {
			break
		}
	}

	if _, err := p.expectPunct("]"); err != nil {
		return ast.Destructure{}, err
	}

	return ast.Destructure{Kind: ast.DestructureArray, Entries: entries}, nil
}

func (p *Parser) parseTupleDestructure() (ast.Destructure, error) {
	if _, err := p.expectPunct("("); err != nil {
		return ast.Destructure{}, err
	}

	var entries []ast.Entry

	for !p.atPunct(")") {
		inner, err := p.parseDestructure()
		if err != nil {
			return ast.Destructure{}, err
		}

		entries = append(entries, ast.Entry{Pattern: inner})

		if p.atPunct(",") {
			if _, err := p.next(); err != nil {
				return ast.Destructure{}, err
			}
		} else {
			break
		}
	}

	if _, err := p.expectPunct(")"); err != nil {
		return ast.Destructure{}, err
	}

	return ast.Destructure{Kind: ast.DestructureTuple, Entries: entries}, nil
}

// parseMapDestructure parses `{ a, b: [c, d], e: name }`, where a bare name
// binds itself, and `name: pattern` aliases an inner pattern to field name.
func (p *Parser) parseMapDestructure() (ast.Destructure, error) {
	if _, err := p.expectPunct("{"); err != nil {
		return ast.Destructure{}, err
	}

	var entries []ast.Entry

	for !p.atPunct("}") {
		nameTok, err := p.expectIdent()
		if err != nil {
			return ast.Destructure{}, err
		}

		entry := ast.Entry{Name: nameTok.Text}

		if p.atPunct(":") || p.atOperator(":") {
			if _, err := p.next(); err != nil {
				return ast.Destructure{}, err
			}

			inner, err := p.parseDestructure()
			if err != nil {
				return ast.Destructure{}, err
			}

			entry.IsAliasing = true
			entry.Pattern = inner
		} else {
			entry.Pattern = ast.NewIdentifierDestructure(ast.NewIdentifier(nameTok.At, nameTok.Text))
		}

		entries = append(entries, entry)

		if p.atPunct(",") {
			if _, err := p.next(); err != nil {
				return ast.Destructure{}, err
			}
		} else {
			break
		}
	}

	if _, err := p.expectPunct("}"); err != nil {
		return ast.Destructure{}, err
	}

	return ast.Destructure{Kind: ast.DestructureMap, Entries: entries}, nil
}

func (p *Parser) parseParamList() ([]*ast.Identifier, error) {
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}

	var params []*ast.Identifier

	for !p.atPunct(")") {
		tok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		params = append(params, ast.NewIdentifier(tok.At, tok.Text))

		if p.atPunct(",") {
			if _, err := p.next(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	return params, nil
}

// parseBody parses either a brace-enclosed block, or a `= expr;` single
// expression body normalised to a single Return statement.
func (p *Parser) parseBody() ([]ast.Statement, error) {
	if p.atOperator("=") {
		eq, err := p.next()
		if err != nil {
			return nil, err
		}

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}

		return []ast.Statement{ast.NewReturn(eq.At, expr)}, nil
	}

	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var stmts []ast.Statement

	for !p.atPunct("}") {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	return stmts, nil
}

func (p *Parser) parseFn(mods ast.Modifiers) (ast.Statement, error) {
	start, err := p.expectKeyword("fn")
	if err != nil {
		return nil, err
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return ast.NewFn(start.At, nameTok.Text, mods, params, body), nil
}

func (p *Parser) parseClass(mods ast.Modifiers) (ast.Statement, error) {
	start, err := p.expectKeyword("class")
	if err != nil {
		return nil, err
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var parent string

	if p.atPunct(":") || p.atOperator(":") {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		parentTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		parent = parentTok.Text
	}

	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var fields []ast.Field

	for !p.atPunct("}") {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}

		fields = append(fields, field)
	}

	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	return ast.NewClassDef(start.At, nameTok.Text, parent, fields, mods), nil
}

func (p *Parser) parseField() (ast.Field, error) {
	fmods, err := p.parseModifiers()
	if err != nil {
		return ast.Field{}, err
	}

	tok, err := p.peek()
	if err != nil {
		return ast.Field{}, err
	}

	if tok.Kind == lexer.Keyword && tok.Text == "fn" {
		if _, err := p.next(); err != nil {
			return ast.Field{}, err
		}

		nameTok, err := p.expectIdent()
		if err != nil {
			return ast.Field{}, err
		}

		params, err := p.parseParamList()
		if err != nil {
			return ast.Field{}, err
		}

		body, err := p.parseBody()
		if err != nil {
			return ast.Field{}, err
		}

		return ast.Field{Name: nameTok.Text, Modifiers: fmods, IsMethod: true, MethodParam: params, MethodBody: body}, nil
	}

	if tok.Kind == lexer.Keyword && tok.Text == "let" {
		if _, err := p.next(); err != nil {
			return ast.Field{}, err
		}
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return ast.Field{}, err
	}

	var init ast.Expression

	if p.atOperator("=") {
		if _, err := p.next(); err != nil {
			return ast.Field{}, err
		}

		init, err = p.parseExpr()
		if err != nil {
			return ast.Field{}, err
		}
	}

	if _, err := p.expectPunct(";"); err != nil {
		return ast.Field{}, err
	}

	return ast.Field{Name: nameTok.Text, Init: init, Modifiers: fmods}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	start, err := p.expectKeyword("if")
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	var elseIfs []ast.ElseIf

	var elseBody []ast.Statement

	for p.atKeyword("else") {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		if p.atKeyword("if") {
			if _, err := p.next(); err != nil {
				return nil, err
			}

			c, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			b, err := p.parseBody()
			if err != nil {
				return nil, err
			}

			elseIfs = append(elseIfs, ast.ElseIf{Cond: c, Body: b})

			continue
		}

		elseBody, err = p.parseBody()
		if err != nil {
			return nil, err
		}

		break
	}

	return ast.NewIf(start.At, cond, body, elseIfs, elseBody), nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	start, err := p.expectKeyword("for")
	if err != nil {
		return nil, err
	}

	target, err := p.parseDestructure()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectKeyword("in"); err != nil {
		return nil, err
	}

	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return ast.NewFor(start.At, target, iter, body), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	start, err := p.expectKeyword("while")
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return ast.NewWhile(start.At, cond, body), nil
}

func (p *Parser) parseLoop() (ast.Statement, error) {
	start, err := p.expectKeyword("loop")
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return ast.NewLoop(start.At, body), nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	start, err := p.expectKeyword("return")
	if err != nil {
		return nil, err
	}

	if p.atPunct(";") {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		return ast.NewReturn(start.At, nil), nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return ast.NewReturn(start.At, expr), nil
}

func (p *Parser) parseUse() (ast.Statement, error) {
	start, err := p.expectKeyword("use")
	if err != nil {
		return nil, err
	}

	var path []string

	for {
		tok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		path = append(path, tok.Text)

		if p.atOperator("::") {
			if _, err := p.next(); err != nil {
				return nil, err
			}

			if p.atPunct("{") {
				tree, err := p.parseUseTree()
				if err != nil {
					return nil, err
				}

				if _, err := p.expectPunct(";"); err != nil {
					return nil, err
				}

				return ast.NewUse(start.At, path, tree), nil
			}

			continue
		}

		break
	}

	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return ast.NewUse(start.At, path, nil), nil
}

// parseUseTree parses a brace-enclosed, comma-separated list of tree
// entries. Each entry is one or more `::`-joined identifiers (e.g.
// `string::utils`), optionally terminated by its own brace-tree
// (e.g. `ops::{ ... }`) instead of being a terminal binding.
func (p *Parser) parseUseTree() ([]ast.UseEntry, error) {
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var entries []ast.UseEntry

	for !p.atPunct("}") {
		entry, err := p.parseUseTreeEntry()
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)

		if p.atPunct(",") {
			if _, err := p.next(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	return entries, nil
}

func (p *Parser) parseUseTreeEntry() (ast.UseEntry, error) {
	tok, err := p.next()
	if err != nil {
		return ast.UseEntry{}, err
	}

	if tok.Kind != lexer.Ident && tok.Kind != lexer.EscapedIdent {
		return ast.UseEntry{}, &srcerr.ParseError{At: tok.At, Expected: []string{"identifier"}, Message: "unexpected token '" + tok.Text + "'"}
	}

	segs := []string{tok.Text}
	isEscaped := tok.Kind == lexer.EscapedIdent

	for p.atOperator("::") {
		if _, err := p.next(); err != nil {
			return ast.UseEntry{}, err
		}

		if p.atPunct("{") {
			children, err := p.parseUseTree()
			if err != nil {
				return ast.UseEntry{}, err
			}

			return ast.UseEntry{Path: segs, IsEscaped: isEscaped, Children: children}, nil
		}

		next, err := p.expectIdent()
		if err != nil {
			return ast.UseEntry{}, err
		}

		segs = append(segs, next.Text)
		isEscaped = false
	}

	return ast.UseEntry{Path: segs, IsEscaped: isEscaped}, nil
}

func (p *Parser) parseExprOrAssignment() (ast.Statement, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == lexer.Operator && isAssignToken(tok.Text) {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		target, ok := expr.(ast.AssignTarget)
		if !ok {
			return nil, &srcerr.ParseError{At: tok.At, Message: "invalid assignment target"}
		}

		var compound *ast.Operator

		if tok.Text != "=" {
			prefix := tok.Text[:len(tok.Text)-1]

			op, ok := compoundAssignOps[prefix]
			if !ok {
				return nil, &srcerr.ParseError{At: tok.At, Message: "unknown compound assignment operator '" + tok.Text + "'"}
			}

			compound = &op
		}

		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}

		return ast.NewAssignment(tok.At, target, compound, right), nil
	}

	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return ast.NewExprStmt(expr.Span(), expr), nil
}

// isAssignToken reports whether text is a plain or compound assignment
// operator — an operator-char run ending in `=` that is not one of the
// fixed comparison tokens.
func isAssignToken(text string) bool {
	if fixedComparisonTokens[text] {
		return false
	}

	return len(text) > 0 && text[len(text)-1] == '='
}

// ===========================================================================
// Expressions
// ===========================================================================

func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseTier(0)
}

func (p *Parser) parseTier(level int) (ast.Expression, error) {
	if level >= len(precedenceTiers) {
		return p.parseUnary()
	}

	t := precedenceTiers[level]

	left, err := p.parseTier(level + 1)
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		var (
			op    ast.Operator
			found bool
		)

		if t.isKeyword && tok.Kind == lexer.Keyword {
			op, found = t.ops[tok.Text]
		} else if !t.isKeyword && tok.Kind == lexer.Operator {
			op, found = t.ops[tok.Text]

			if !found && level == 0 && isCustomOperatorToken(tok.Text) {
				op, found = ast.NewCustomOperator(tok.Text), true
			}
		}

		if !found {
			return left, nil
		}

		if _, err := p.next(); err != nil {
			return nil, err
		}

		var right ast.Expression

		if t.rightAssoc {
			right, err = p.parseTier(level)
		} else {
			right, err = p.parseTier(level + 1)
		}

		if err != nil {
			return nil, err
		}

		left = ast.NewBinary(left.Span(), left, op, right)

		if t.rightAssoc {
			return left, nil
		}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == lexer.Operator {
		if op, ok := unaryOps[tok.Text]; ok {
			if _, err := p.next(); err != nil {
				return nil, err
			}

			expr, err := p.parseUnary()
			if err != nil {
				return nil, err
			}

			return ast.NewUnary(tok.At, op, expr), nil
		}

		if tok.Text == "..." {
			// Spread: only meaningful inside a call-argument or array-literal
			// list. parseArgList handles it explicitly; everywhere else,
			// array-literal elements included, it reaches this branch and is
			// parsed as a unary wrapper around the following expression using
			// a Custom operator so the emitter/library can give it meaning.
			if _, err := p.next(); err != nil {
				return nil, err
			}

			expr, err := p.parseUnary()
			if err != nil {
				return nil, err
			}

			return ast.NewUnary(tok.At, ast.NewCustomOperator("..."), expr), nil
		}
	}

	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// call/index/member suffixes, including the `?.`/`?.(` null-safe forms.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		switch {
		case tok.Kind == lexer.Punct && tok.Text == "(":
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}

			expr = ast.NewCall(expr.Span(), expr, args, false)
		case tok.Kind == lexer.Punct && tok.Text == "[":
			if _, err := p.next(); err != nil {
				return nil, err
			}

			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expectPunct("]"); err != nil {
				return nil, err
			}

			expr = ast.NewArrayAccess(expr.Span(), expr, []ast.Expression{idx}, false)
		case tok.Kind == lexer.Operator && tok.Text == ".":
			if _, err := p.next(); err != nil {
				return nil, err
			}

			field, err := p.expectIdent()
			if err != nil {
				return nil, err
			}

			expr = ast.NewMember(expr.Span(), expr, ast.MemberDot, field.Text)
		case tok.Kind == lexer.Operator && tok.Text == "::":
			if _, err := p.next(); err != nil {
				return nil, err
			}

			field, err := p.expectIdent()
			if err != nil {
				return nil, err
			}

			expr = ast.NewMember(expr.Span(), expr, ast.MemberStatic, field.Text)
		case tok.Kind == lexer.Operator && tok.Text == "?.":
			if _, err := p.next(); err != nil {
				return nil, err
			}

			if p.atPunct("(") {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}

				expr = ast.NewCall(expr.Span(), expr, args, true)

				continue
			}

			field, err := p.expectIdent()
			if err != nil {
				return nil, err
			}

			expr = ast.NewMember(expr.Span(), expr, ast.MemberCoalesce, field.Text)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() ([]ast.Expression, error) {
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}

	var args []ast.Expression

	for !p.atPunct(")") {
		if p.atOperator("...") {
			tok, _ := p.next()

			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, ast.NewUnary(tok.At, ast.NewCustomOperator("..."), inner))
		} else {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}

		if p.atPunct(",") {
			if _, err := p.next(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.IntLit:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, &srcerr.ParseError{At: tok.At, Message: "malformed integer literal '" + tok.Text + "'"}
		}

		return ast.NewIntNumber(tok.At, v), nil
	case lexer.FloatLit:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &srcerr.ParseError{At: tok.At, Message: "malformed float literal '" + tok.Text + "'"}
		}

		return ast.NewFloatNumber(tok.At, v), nil
	case lexer.CharLit:
		r := []rune(tok.Text)[0]
		return ast.NewIntNumber(tok.At, int64(r)), nil
	case lexer.StringLit:
		return ast.NewString(tok.At, tok.Text), nil
	case lexer.Keyword:
		switch tok.Text {
		case "true":
			return ast.NewBoolean(tok.At, true), nil
		case "false":
			return ast.NewBoolean(tok.At, false), nil
		case "fn":
			return p.parseLambdaAfterFn(tok)
		}

		return nil, &srcerr.ParseError{At: tok.At, Message: "unexpected keyword '" + tok.Text + "' in expression position"}
	case lexer.Ident:
		return ast.NewIdentifier(tok.At, tok.Text), nil
	case lexer.EscapedIdent:
		return ast.NewEscapedIdentifier(tok.At, tok.Text), nil
	case lexer.Punct:
		switch tok.Text {
		case "(":
			return p.parseParenOrTuple(tok)
		case "[":
			return p.parseArrayLiteral(tok)
		case "{":
			return p.parseMapLiteral(tok)
		}
	}

	return nil, &srcerr.ParseError{At: tok.At, Message: "unexpected token '" + tok.Text + "'"}
}

// parseLambdaAfterFn parses an anonymous `fn(params) body` expression; the
// leading `fn` keyword has already been consumed.
func (p *Parser) parseLambdaAfterFn(start lexer.Token) (ast.Expression, error) {
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return ast.NewLambda(start.At, params, body), nil
}

// parseParenOrTuple disambiguates `(expr)` grouping from a tuple literal
// `(a, b, ...)`. `()` is the empty tuple, i.e. Unit.
func (p *Parser) parseParenOrTuple(start lexer.Token) (ast.Expression, error) {
	if p.atPunct(")") {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		return ast.NewUnit(start.At), nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.atPunct(")") {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		return first, nil // parenthesised grouping, not a tuple
	}

	elements := []ast.Expression{first}

	for p.atPunct(",") {
		if _, err := p.next(); err != nil {
			return nil, err
		}

		if p.atPunct(")") {
			break // trailing comma
		}

		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elements = append(elements, el)
	}

	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	return ast.NewTupleLiteral(start.At, elements), nil
}

func (p *Parser) parseArrayLiteral(start lexer.Token) (ast.Expression, error) {
	var elements []ast.Expression

	for !p.atPunct("]") {
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elements = append(elements, el)

		if p.atPunct(",") {
			if _, err := p.next(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if _, err := p.expectPunct("]"); err != nil {
		return nil, err
	}

	return ast.NewArrayLiteral(start.At, elements), nil
}

func (p *Parser) parseMapLiteral(start lexer.Token) (ast.Expression, error) {
	var entries []ast.MapEntry

	for !p.atPunct("}") {
		entry, err := p.parseMapEntry()
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)

		if p.atPunct(",") {
			if _, err := p.next(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	return ast.NewMapLiteral(start.At, entries), nil
}

func (p *Parser) parseMapEntry() (ast.MapEntry, error) {
	tok, err := p.peek()
	if err != nil {
		return ast.MapEntry{}, err
	}

	var entry ast.MapEntry

	switch {
	case tok.Kind == lexer.Ident:
		idTok, _ := p.next()
		entry.KeyKind = ast.IdentifierKey
		entry.KeyName = idTok.Text
	case tok.Kind == lexer.StringLit:
		sTok, _ := p.next()
		entry.KeyKind = ast.StringKey
		entry.KeyName = sTok.Text
	case tok.Kind == lexer.Punct && tok.Text == "[":
		if _, err := p.next(); err != nil {
			return ast.MapEntry{}, err
		}

		keyExpr, err := p.parseExpr()
		if err != nil {
			return ast.MapEntry{}, err
		}

		if _, err := p.expectPunct("]"); err != nil {
			return ast.MapEntry{}, err
		}

		entry.KeyKind = ast.ExprKey
		entry.KeyExpr = keyExpr
	default:
		return ast.MapEntry{}, &srcerr.ParseError{At: tok.At, Message: "expected a map key"}
	}

	// `:` lexes as an Operator token (the custom-operator character class
	// includes `:`), not Punct; expectPunct accepts either kind by text.
	if _, err := p.expectPunct(":"); err != nil {
		return ast.MapEntry{}, err
	}

	val, err := p.parseExpr()
	if err != nil {
		return ast.MapEntry{}, err
	}

	entry.Value = val

	return entry, nil
}
