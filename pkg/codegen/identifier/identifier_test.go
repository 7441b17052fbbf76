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

package identifier

import (
	"regexp"
	"testing"
)

func TestBarePassesThroughOrdinaryNames(t *testing.T) {
	for _, name := range []string{"x", "add", "P", "_private"} {
		if got := Bare(name); got != name {
			t.Errorf("Bare(%q) = %q, want unchanged", name, got)
		}
	}
}

func TestBareWrapsLuaKeywordCollisions(t *testing.T) {
	cases := map[string]string{
		"end":      "__end__",
		"function": "__function__",
		"then":     "__then__",
		"local":    "__local__",
		"goto":     "__goto__",
	}

	for name, want := range cases {
		if got := Bare(name); got != want {
			t.Errorf("Bare(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestEscapedMatchesMangledIdentifierShape(t *testing.T) {
	re := regexp.MustCompile(`^__[A-Za-z_][A-Za-z0-9_]*__$`)

	for _, op := range []string{"+", "-", "<|", "|>", "<=>", "??"} {
		got := Escaped(op)
		if !re.MatchString(got) {
			t.Errorf("Escaped(%q) = %q, does not match mangled-identifier shape", op, got)
		}
	}
}

func TestEscapedKnownMapping(t *testing.T) {
	if got, want := Escaped("+"), "__plus__"; got != want {
		t.Errorf("Escaped(\"+\") = %q, want %q", got, want)
	}

	if got, want := Escaped("<|"), "__lt_pipe__"; got != want {
		t.Errorf("Escaped(\"<|\") = %q, want %q", got, want)
	}
}

func TestTranslateDispatchesOnEscapedFlag(t *testing.T) {
	if got := Translate("end", false); got != "__end__" {
		t.Errorf("Translate(\"end\", false) = %q, want __end__", got)
	}

	if got := Translate("+", true); got != "__plus__" {
		t.Errorf("Translate(\"+\", true) = %q, want __plus__", got)
	}
}
