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

// Package main implements saturnusc, the Saturnus-to-Lua compiler's command
// line front end.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saturnus-lang/saturnusc/internal/cli"
)

// Version is filled in by the release build; left blank for "go install".
var Version string

var rootCmd = &cobra.Command{
	Use:   "saturnusc",
	Short: "A compiler for the Saturnus language.",
	Long:  "A compiler (and small toolbox) that lowers Saturnus source to Lua.",
	Run: func(cmd *cobra.Command, args []string) {
		if cli.GetFlag(cmd, "version") {
			fmt.Print("saturnusc ")

			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Print("(unknown version)")
			}

			fmt.Println()
		}
	},
}

// Execute runs the root command; it is called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")

	cobra.OnInitialize(func() {
		if GetPersistentVerbose() {
			log.SetLevel(log.DebugLevel)
		}
	})
}

// GetPersistentVerbose reads the root --verbose flag; subcommands call this
// instead of re-declaring their own copy of the flag.
func GetPersistentVerbose() bool {
	v, err := rootCmd.PersistentFlags().GetBool("verbose")
	if err != nil {
		return false
	}

	return v
}
