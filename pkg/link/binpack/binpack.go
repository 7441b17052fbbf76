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

// Package binpack produces the self-extracting Binary link format of
// spec.md §4.8: a fixed Lua launcher, followed by the Collect-form source,
// followed by an 8-byte little-endian length trailer naming the source's
// size. The on-disk layout is hand-rolled over a bytes.Buffer, the same
// convention pkg/binfile uses for its fixed-layout Header.
package binpack

import (
	"bytes"
	"encoding/binary"
)

// launcherTemplate is prepended to every Binary artifact. At run time it
// reopens its own executable, reads the trailing 8-byte length, seeks back
// by length+8 bytes from the end, and loads/executes the recovered source
// with argv bound to globals.
const launcherTemplate = `local function __saturnus_launch(...)
  local self_path = arg[0]
  local handle = io.open(self_path, "rb")
  if handle == nil then
    error("saturnus: cannot reopen '" .. tostring(self_path) .. "' to read embedded source")
  end
  handle:seek("end", -8)
  local length_bytes = handle:read(8)
  local length = 0
  for i = 8, 1, -1 do
    length = length * 256 + string.byte(length_bytes, i)
  end
  handle:seek("end", -(length + 8))
  local source = handle:read(length)
  handle:close()
  local chunk, err = load(source, "=saturnus-embedded")
  if chunk == nil then
    error("saturnus: failed to load embedded source: " .. tostring(err))
  end
  return chunk(...)
end
return __saturnus_launch(...)
`

// trailerSize is the fixed width of the little-endian length trailer.
const trailerSize = 8

// Pack wraps collected (the Collect-form source bytes) in the launcher
// template and appends the length trailer.
func Pack(collected []byte) []byte {
	var buf bytes.Buffer

	buf.WriteString(launcherTemplate)
	buf.Write(collected)

	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint64(trailer[:], uint64(len(collected)))
	buf.Write(trailer[:])

	return buf.Bytes()
}

// Unpack recovers the embedded Collect-form source from a previously Packed
// artifact. It is the inverse of Pack, used by tests to assert the round
// trip rather than by the compiler itself (the embedded launcher performs
// the equivalent recovery at Lua run time).
func Unpack(artifact []byte) ([]byte, bool) {
	if len(artifact) < trailerSize {
		return nil, false
	}

	trailer := artifact[len(artifact)-trailerSize:]
	length := binary.LittleEndian.Uint64(trailer)

	body := artifact[:len(artifact)-trailerSize]
	if uint64(len(body)) < length {
		return nil, false
	}

	start := uint64(len(body)) - length

	return body[start:], true
}
