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
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/saturnus-lang/saturnusc/internal/cli"
	"github.com/saturnus-lang/saturnusc/pkg/ast"
	"github.com/saturnus-lang/saturnusc/pkg/compile"
	"github.com/saturnus-lang/saturnusc/pkg/link"
	"github.com/saturnus-lang/saturnusc/pkg/options"
)

var runCmd = &cobra.Command{
	Use:   "run --input <path> [flags]",
	Short: "compile a Saturnus program and execute it with the external Lua runtime.",
	Long: `Compile a Saturnus entry file (and any --lib files) and hand the
result to the external "lua" interpreter. Native library loading, beyond the
libs this compiler itself links in, is outside this compiler's scope.`,
	Run: func(cmd *cobra.Command, args []string) {
		input := cli.GetString(cmd, "input")
		if input == "" {
			fmt.Println("saturnusc run: --input is required")
			os.Exit(2)
		}

		opts := options.Default()
		libs := cli.GetStringArray(cmd, "lib")

		inputs, err := compileInputs(opts, input, libs)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		files, err := link.Link(inputs, link.Config{Format: link.Collect})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		collected := string(files[0].Data)

		if cli.GetFlag(cmd, "dump-ir") {
			dumpIR(collected)
		}

		if err := execLua(collected); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// compileInputs compiles the entry file and every --lib file into
// link.Input values, the entry marked IsEntry so it runs inline.
func compileInputs(opts options.Options, input string, libs []string) ([]link.Input, error) {
	c := compile.New(opts)

	inputs := make([]link.Input, 0, len(libs)+1)

	for _, lib := range libs {
		body, err := os.ReadFile(lib)
		if err != nil {
			return nil, err
		}

		obj, err := c.File(ast.Source{Body: string(body), Path: splitPath(lib)}, logicalName(lib))
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, link.Input{Object: obj})
	}

	body, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}

	entryObj, err := c.File(ast.Source{Body: string(body), Path: splitPath(input)}, logicalName(input))
	if err != nil {
		return nil, err
	}

	inputs = append(inputs, link.Input{Object: entryObj, IsEntry: true})

	return inputs, nil
}

// dumpIR prints the generated source, capping line width to the terminal
// width when stdout is a real terminal; otherwise it streams the text as-is.
func dumpIR(src string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			fmt.Println(wrapForWidth(src, w))
			return
		}
	}

	fmt.Println(src)
}

// wrapForWidth hard-wraps each line of src to width columns, so a long
// generated line (common after collection-literal lowering) doesn't run off
// a narrow terminal.
func wrapForWidth(src string, width int) string {
	if width <= 0 {
		return src
	}

	lines := strings.Split(src, "\n")
	var sb strings.Builder

	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}

		for len(line) > width {
			sb.WriteString(line[:width])
			sb.WriteByte('\n')
			line = line[width:]
		}

		sb.WriteString(line)
	}

	return sb.String()
}

// execLua writes src to a uniquely-named temp file and runs it under the
// external "lua" interpreter, inheriting this process's stdio.
func execLua(src string) error {
	tmp := filepath.Join(os.TempDir(), "saturnusc-run-"+uuid.NewString()+".lua")

	if err := os.WriteFile(tmp, []byte(src), 0o644); err != nil {
		return err
	}
	defer os.Remove(tmp)

	cmd := exec.Command("lua", tmp)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("input", "", "Saturnus entry file to compile and run")
	runCmd.Flags().Bool("dump-ir", false, "print the generated Lua source before executing it")
	runCmd.Flags().StringArray("lib", nil, "additional Saturnus source file to link in as a preloaded module")
}
