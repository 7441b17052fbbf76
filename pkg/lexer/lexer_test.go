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

package lexer

import "testing"

func scanAll(t *testing.T, body string) []Token {
	t.Helper()

	l := New(body)

	var toks []Token

	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}

		toks = append(toks, tok)

		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestScanWordsAndKeywords(t *testing.T) {
	toks := scanAll(t, "let x fn")

	want := []Token{
		{Keyword, "let", toks[0].At},
		{Ident, "x", toks[1].At},
		{Keyword, "fn", toks[2].At},
		{EOF, "", toks[3].At},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}

	for i := range want {
		if toks[i].Kind != want[i].Kind || toks[i].Text != want[i].Text {
			t.Errorf("token %d = %+v, want kind=%v text=%q", i, toks[i], want[i].Kind, want[i].Text)
		}
	}
}

func TestScanStringEscapes(t *testing.T) {
	toks := scanAll(t, `"a\nb\tc\"d\\e"`)

	if toks[0].Kind != StringLit {
		t.Fatalf("kind = %v, want StringLit", toks[0].Kind)
	}

	want := "a\nb\tc\"d\\e"
	if toks[0].Text != want {
		t.Errorf("text = %q, want %q", toks[0].Text, want)
	}
}

func TestScanStringHexByteEscape(t *testing.T) {
	toks := scanAll(t, `"\x41\x42\x43"`)

	if toks[0].Kind != StringLit || toks[0].Text != "ABC" {
		t.Errorf("got %+v, want StringLit \"ABC\"", toks[0])
	}
}

func TestScanStringHexByteEscapeRejectsShortSequence(t *testing.T) {
	l := New(`"\x4"`)

	if _, err := l.Next(); err == nil {
		t.Fatal("expected an error for a \\x escape with fewer than two hex digits")
	}
}

func TestScanEscapedIdentifier(t *testing.T) {
	toks := scanAll(t, "`+`")

	if toks[0].Kind != EscapedIdent || toks[0].Text != "+" {
		t.Errorf("got %+v, want EscapedIdent \"+\"", toks[0])
	}
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll(t, "42 3.14 10 .5")

	if toks[0].Kind != IntLit || toks[0].Text != "42" {
		t.Errorf("toks[0] = %+v, want IntLit 42", toks[0])
	}

	if toks[1].Kind != FloatLit || toks[1].Text != "3.14" {
		t.Errorf("toks[1] = %+v, want FloatLit 3.14", toks[1])
	}

	if toks[2].Kind != IntLit || toks[2].Text != "10" {
		t.Errorf("toks[2] = %+v, want IntLit 10", toks[2])
	}

	// ".5" has no digit before the dot, so it lexes as an Operator "." then
	// an IntLit "5" rather than a float.
	if toks[3].Kind != Operator || toks[3].Text != "." {
		t.Errorf("toks[3] = %+v, want Operator \".\"", toks[3])
	}
}

func TestScanNumberRejectsTrailingIdentifierChar(t *testing.T) {
	l := New("10x")

	if _, err := l.Next(); err == nil {
		t.Fatal("expected a ParseError for a numeric literal directly followed by an identifier character")
	}
}

func TestScanOperatorMaximalMunch(t *testing.T) {
	toks := scanAll(t, "<<< >>> <| |> ??")

	want := []string{"<<<", ">>>", "<|", "|>", "??"}

	for i, w := range want {
		if toks[i].Kind != Operator || toks[i].Text != w {
			t.Errorf("toks[%d] = %+v, want Operator %q", i, toks[i], w)
		}
	}
}

func TestScanPunctuation(t *testing.T) {
	toks := scanAll(t, "( ) [ ] { } , ;")

	want := []string{"(", ")", "[", "]", "{", "}", ",", ";"}

	for i, w := range want {
		if toks[i].Kind != Punct || toks[i].Text != w {
			t.Errorf("toks[%d] = %+v, want Punct %q", i, toks[i], w)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := scanAll(t, "let // line comment\nx /* block\ncomment */ = 1;")

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	want := []Kind{Keyword, Ident, Operator, IntLit, Punct, EOF}

	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(kinds), kinds, len(want))
	}

	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("let x")

	first, err := l.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}

	second, err := l.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}

	if first != second {
		t.Errorf("Peek is not idempotent: %+v != %+v", first, second)
	}

	consumed, err := l.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}

	if consumed != first {
		t.Errorf("Next() = %+v, want the previously peeked token %+v", consumed, first)
	}
}

func TestIsKeyword(t *testing.T) {
	if !IsKeyword("let") {
		t.Error("IsKeyword(\"let\") = false, want true")
	}

	if IsKeyword("not") {
		t.Error(`IsKeyword("not") = true, want false (Unary has no keyword form)`)
	}

	if IsKeyword("x") {
		t.Error("IsKeyword(\"x\") = true, want false")
	}
}
