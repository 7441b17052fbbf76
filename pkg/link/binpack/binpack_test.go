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

package binpack

import (
	"bytes"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	collected := []byte("package.preload[\"a\"] = function() end;\ndo\nprint(1)\nend;\n")

	artifact := Pack(collected)

	recovered, ok := Unpack(artifact)
	if !ok {
		t.Fatal("Unpack reported failure on an artifact produced by Pack")
	}

	if !bytes.Equal(recovered, collected) {
		t.Errorf("recovered = %q, want %q", recovered, collected)
	}
}

func TestPackUnpackRoundTripEmptySource(t *testing.T) {
	artifact := Pack(nil)

	recovered, ok := Unpack(artifact)
	if !ok {
		t.Fatal("Unpack reported failure for an empty embedded source")
	}

	if len(recovered) != 0 {
		t.Errorf("recovered = %q, want empty", recovered)
	}
}

func TestUnpackRejectsArtifactShorterThanTrailer(t *testing.T) {
	if _, ok := Unpack([]byte("short")); ok {
		t.Fatal("expected Unpack to reject an artifact shorter than the trailer")
	}
}

func TestUnpackRejectsTruncatedBody(t *testing.T) {
	artifact := Pack([]byte("0123456789"))

	// Chop bytes out of the middle of the launcher+body so the trailer's
	// claimed length no longer fits in what remains, without disturbing the
	// trailer itself (the last 8 bytes).
	trailer := artifact[len(artifact)-trailerSize:]
	truncated := append(append([]byte(nil), artifact[:5]...), trailer...)

	if _, ok := Unpack(truncated); ok {
		t.Fatal("expected Unpack to reject a truncated artifact")
	}
}
