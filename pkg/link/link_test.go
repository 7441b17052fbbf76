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

package link

import (
	"strings"
	"testing"

	"github.com/saturnus-lang/saturnusc/pkg/compile"
)

func TestBuildCollectPreservesEntryInputOrder(t *testing.T) {
	// Entry names are chosen so that alphabetical order ("z_entry" before
	// "a_entry") would disagree with caller-supplied order, catching a
	// regression to sorting entries the way preloaded modules are sorted.
	inputs := []Input{
		{Object: compile.Object{Name: "z_entry", IR: "--z--"}, IsEntry: true},
		{Object: compile.Object{Name: "a_entry", IR: "--a--"}, IsEntry: true},
		{Object: compile.Object{Name: "b_entry", IR: "--b--"}, IsEntry: true},
	}

	out, err := buildCollect(inputs, Config{NoStd: true})
	if err != nil {
		t.Fatalf("buildCollect: %v", err)
	}

	src := string(out)

	zIdx := strings.Index(src, "--z--")
	aIdx := strings.Index(src, "--a--")
	bIdx := strings.Index(src, "--b--")

	if zIdx == -1 || aIdx == -1 || bIdx == -1 {
		t.Fatalf("missing entry body in output: %s", src)
	}

	if !(zIdx < aIdx && aIdx < bIdx) {
		t.Errorf("entries out of caller order: z=%d a=%d b=%d, want z < a < b", zIdx, aIdx, bIdx)
	}
}

func TestBuildCollectSortsPreloadedModulesDeterministically(t *testing.T) {
	inputs := []Input{
		{Object: compile.Object{Name: "z/mod", IR: "--z--"}},
		{Object: compile.Object{Name: "a/mod", IR: "--a--"}},
	}

	out, err := buildCollect(inputs, Config{NoStd: true})
	if err != nil {
		t.Fatalf("buildCollect: %v", err)
	}

	src := string(out)

	aIdx := strings.Index(src, `package.preload["a.mod"]`)
	zIdx := strings.Index(src, `package.preload["z.mod"]`)

	if aIdx == -1 || zIdx == -1 {
		t.Fatalf("missing preload entry in output: %s", src)
	}

	if aIdx > zIdx {
		t.Errorf("preloaded modules not sorted: a.mod at %d, z.mod at %d", aIdx, zIdx)
	}
}

func TestBuildCollectEntriesFollowAllPreloadedModules(t *testing.T) {
	inputs := []Input{
		{Object: compile.Object{Name: "main", IR: "--entry--"}, IsEntry: true},
		{Object: compile.Object{Name: "lib", IR: "--lib--"}},
	}

	out, err := buildCollect(inputs, Config{NoStd: true})
	if err != nil {
		t.Fatalf("buildCollect: %v", err)
	}

	src := string(out)

	libIdx := strings.Index(src, "--lib--")
	entryIdx := strings.Index(src, "--entry--")

	if libIdx == -1 || entryIdx == -1 || libIdx > entryIdx {
		t.Errorf("entry body must follow preloaded module body, got lib=%d entry=%d", libIdx, entryIdx)
	}
}

func TestLinkRejectsDuplicateObjectNames(t *testing.T) {
	inputs := []Input{
		{Object: compile.Object{Name: "dup", IR: "--1--"}},
		{Object: compile.Object{Name: "dup", IR: "--2--"}},
	}

	if _, err := Link(inputs, Config{Format: Collect}); err == nil {
		t.Fatal("expected an error for duplicate object names")
	}
}

func TestLinkBuildsDirectoryFormat(t *testing.T) {
	inputs := []Input{
		{Object: compile.Object{Name: "a/mod", IR: "return {}"}},
	}

	files, err := Link(inputs, Config{Format: Directory, MainPath: "out"})
	if err != nil {
		t.Fatalf("Link: %v", err)
	}

	if len(files) != 1 || files[0].Path != "out/a/mod" {
		t.Fatalf("files = %+v, want one file at out/a/mod", files)
	}
}
