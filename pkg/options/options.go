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

// Package options carries the per-invocation flags that control how
// pkg/codegen/emitter lowers an AST. Values are immutable once constructed;
// every With* method returns a modified copy, the same builder idiom used
// throughout this corpus's CLI view layer.
package options

// ModuleKind selects the export strategy used for `pub` top-level bindings
// (spec.md §4.7).
type ModuleKind int

// Module export strategies.
const (
	// ModuleSaturnus emits `<module_root>.x = x;` for every pub binding.
	ModuleSaturnus ModuleKind = iota
	// ModulePubAsGlobal omits `local` on a pub declaration and emits no
	// export statement.
	ModulePubAsGlobal
	// ModuleLocalModuleReturn is reserved; the emitter must fail closed with
	// srcerr.NotImplementedError when this is selected.
	ModuleLocalModuleReturn
	// ModuleCustom names an external export convention, whose name is
	// returned by Options.CustomModuleName.
	ModuleCustom
)

// Options is the full set of compiler options for one invocation.
type Options struct {
	useStdCollections bool
	unitInterop       bool
	skipLoopInterop   bool
	moduleKind        ModuleKind
	customModuleName  string
	overrideModPath   []string
}

// Default returns the baseline Options: no std-collection wrapping, Unit
// interop enabled, loop optimizations enabled, Saturnus export strategy, and
// no module-path override.
func Default() Options {
	return Options{unitInterop: true, moduleKind: ModuleSaturnus}
}

// UseStdCollections reports whether collection literals should be wrapped
// with std.Map/std.Array/std.Tuple constructors.
func (o Options) UseStdCollections() bool { return o.useStdCollections }

// WithUseStdCollections returns a copy with UseStdCollections set to v.
func (o Options) WithUseStdCollections(v bool) Options {
	o.useStdCollections = v
	return o
}

// UnitInterop reports whether Unit should emit as the platform null (true) or
// as a std.Unit() call (false).
func (o Options) UnitInterop() bool { return o.unitInterop }

// WithUnitInterop returns a copy with UnitInterop set to v.
func (o Options) WithUnitInterop(v bool) Options {
	o.unitInterop = v
	return o
}

// SkipLoopInterop reports whether the range-loop and pairs-loop
// optimizations (§4.6) are disabled.
func (o Options) SkipLoopInterop() bool { return o.skipLoopInterop }

// WithSkipLoopInterop returns a copy with SkipLoopInterop set to v.
func (o Options) WithSkipLoopInterop(v bool) Options {
	o.skipLoopInterop = v
	return o
}

// ModuleKind reports the selected export strategy.
func (o Options) ModuleKind() ModuleKind { return o.moduleKind }

// CustomModuleName returns the name passed to WithCustomModule; meaningful
// only when ModuleKind() == ModuleCustom.
func (o Options) CustomModuleName() string { return o.customModuleName }

// WithModuleKind returns a copy selecting the given non-Custom export
// strategy.
func (o Options) WithModuleKind(k ModuleKind) Options {
	o.moduleKind = k
	o.customModuleName = ""

	return o
}

// WithCustomModule returns a copy selecting ModuleCustom with the given
// convention name.
func (o Options) WithCustomModule(name string) Options {
	o.moduleKind = ModuleCustom
	o.customModuleName = name

	return o
}

// OverrideModPath returns the forced module-root path segments, or nil when
// the source's own logical path should be used.
func (o Options) OverrideModPath() []string { return o.overrideModPath }

// WithOverrideModPath returns a copy with the module-root prefix forced to
// path, ignoring the source's own logical location.
func (o Options) WithOverrideModPath(path []string) Options {
	o.overrideModPath = append([]string(nil), path...)
	return o
}
