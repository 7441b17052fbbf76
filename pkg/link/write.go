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
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/saturnus-lang/saturnusc/pkg/srcerr"
)

// WriteAtomic writes data to path via a uniquely-named temporary sibling
// file followed by a rename, so a failure mid-write leaves path either
// absent or unchanged (spec.md §5's resource-model invariant).
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp := filepath.Join(dir, filepath.Base(path)+"."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &srcerr.IOError{Path: tmp, Err: err}
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &srcerr.IOError{Path: path, Err: err}
	}

	return nil
}

// WriteAll writes every File under root, creating parent directories as
// needed, each via WriteAtomic.
func WriteAll(files []File, root string) error {
	for _, f := range files {
		path := f.Path
		if root != "" {
			path = filepath.Join(root, f.Path)
		}

		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return &srcerr.IOError{Path: dir, Err: err}
			}
		}

		if err := WriteAtomic(path, f.Data); err != nil {
			return err
		}
	}

	return nil
}
