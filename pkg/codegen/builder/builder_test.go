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

package builder

import "testing"

func TestWriteLine(t *testing.T) {
	b := New()
	b.WriteLine("local x = 1;")
	b.Write("local y = 2;")

	got := b.String()
	want := "local x = 1;\nlocal y = 2;"

	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPushIndentsSubsequentLines(t *testing.T) {
	b := New()
	b.Write("if x then")
	b.Push().Line()
	b.Write("y = 1;")
	b.Pop().Line()
	b.Write("end")

	want := "if x then\n  y = 1;\nend"

	if got := b.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNestedPush(t *testing.T) {
	b := New()
	b.Write("a")
	b.Push()
	b.Line()
	b.Write("b")
	b.Push()
	b.Line()
	b.Write("c")
	b.Pop()
	b.Pop()

	want := "a\n  b\n    c"

	if got := b.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPopAtZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Pop at level zero to panic")
		}
	}()

	New().Pop()
}

func TestLevel(t *testing.T) {
	b := New()

	if b.Level() != 0 {
		t.Fatalf("new builder level = %d, want 0", b.Level())
	}

	b.Push().Push()

	if b.Level() != 2 {
		t.Fatalf("level after two pushes = %d, want 2", b.Level())
	}

	b.Pop()

	if b.Level() != 1 {
		t.Fatalf("level after one pop = %d, want 1", b.Level())
	}
}
