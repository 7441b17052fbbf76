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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saturnus-lang/saturnusc/internal/cli"
	"github.com/saturnus-lang/saturnusc/pkg/ast"
	"github.com/saturnus-lang/saturnusc/pkg/compile"
	"github.com/saturnus-lang/saturnusc/pkg/link"
	"github.com/saturnus-lang/saturnusc/pkg/options"
)

var compileCmd = &cobra.Command{
	Use:   "compile --input <path> [flags]",
	Short: "compile a Saturnus source file into Lua.",
	Long:  "Compile a single Saturnus source file into its equivalent Lua source text.",
	Run: func(cmd *cobra.Command, args []string) {
		input := cli.GetString(cmd, "input")
		if input == "" {
			fmt.Println("saturnusc compile: --input is required")
			os.Exit(2)
		}

		output := cli.GetString(cmd, "output")
		if output == "" {
			output = defaultOutputPath(input)
		}

		opts := buildOptions(cmd)

		body, err := os.ReadFile(input)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		src := ast.Source{Body: string(body), Path: splitPath(input)}

		obj, err := compile.New(opts).File(src, logicalName(input))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := link.WriteAtomic(output, []byte(obj.IR)); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// buildOptions reads the compile subcommand's lowering flags into an
// options.Options.
func buildOptions(cmd *cobra.Command) options.Options {
	opts := options.Default()

	opts = opts.WithUseStdCollections(cli.GetFlag(cmd, "use-std-collections"))
	opts = opts.WithSkipLoopInterop(cli.GetFlag(cmd, "disable-loop-interop"))
	opts = opts.WithUnitInterop(!cli.GetFlag(cmd, "disable-unit-interop"))

	switch cli.GetString(cmd, "module-resolution") {
	case "", "saturnus":
		opts = opts.WithModuleKind(options.ModuleSaturnus)
	case "native":
		opts = opts.WithModuleKind(options.ModulePubAsGlobal)
	case "globals":
		opts = opts.WithCustomModule("globals")
	default:
		fmt.Printf("saturnusc: unknown --module-resolution %q\n", cli.GetString(cmd, "module-resolution"))
		os.Exit(2)
	}

	if modPath := cli.GetString(cmd, "mod-path"); modPath != "" {
		opts = opts.WithOverrideModPath(splitPath(modPath))
	}

	return opts
}

func defaultOutputPath(input string) string {
	if dot := strings.LastIndexByte(input, '.'); dot > strings.LastIndexByte(input, '/') {
		return input[:dot] + ".lua"
	}

	return input + ".lua"
}

func splitPath(p string) []string {
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")

	out := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

func logicalName(input string) string {
	name := strings.Join(splitPath(input), "/")
	name = strings.TrimSuffix(name, ".sat")
	name = strings.TrimSuffix(name, ".srn")

	return name
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().String("input", "", "Saturnus source file to compile")
	compileCmd.Flags().StringP("output", "o", "", "output path (default: input with extension replaced by .lua)")
	compileCmd.Flags().String("target", "lua", "target platform (only \"lua\" is supported)")
	compileCmd.Flags().String("module-resolution", "saturnus", "export strategy: saturnus|native|globals")
	compileCmd.Flags().Bool("use-std-collections", false, "wrap collection literals in std.Map/std.Array/std.Tuple")
	compileCmd.Flags().Bool("disable-loop-interop", false, "disable the range/pairs loop lowerings")
	compileCmd.Flags().Bool("disable-unit-interop", false, "emit std.Unit() instead of nil for Unit values")
	compileCmd.Flags().String("mod-path", "", "force the module-root path instead of deriving it from --input")
}
