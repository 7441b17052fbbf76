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

// Package diag provides the compiler's leveled diagnostic logging.  Warnings
// (e.g. "native library loading is not implemented") are informational and
// non-fatal; they are always logged at WarnLevel and never abort a
// compilation.
package diag

import (
	log "github.com/sirupsen/logrus"
)

// SetVerbose switches the package-level logger between Info and Debug level,
// mirroring the CLI's --verbose flag.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// Debugf logs a debug-level diagnostic, typically emitted per pipeline stage
// (parse, resolve, emit, link) when --verbose is set.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// Warnf logs a non-fatal warning, e.g. "native library loading is not
// implemented".  Warnings never stop compilation.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

// Errorf logs a fatal condition immediately before the caller unwinds with an
// error.  It does not itself terminate the process.
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
