// Copyright The btrdb-go Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package btrdb

// Time bounds and ring constants, unchanged from the wire protocol: a
// stream's timestamps are nanoseconds since the epoch, clamped to a
// range that leaves headroom in the power-of-two windowing scheme used
// by AlignedWindows/Windows.
const (
	// MinimumTime is the earliest timestamp any stream may hold.
	MinimumTime = -(16 << 56)

	// MaximumTime is the latest timestamp any stream may hold.
	MaximumTime = (48 << 56) - 1

	// MaximumPointWidthExponent bounds AlignedWindows' pointWidth
	// parameter: windows are 2^pointWidth nanoseconds wide, and 63 is
	// the largest exponent accepted (a 2^63 ns window is already wider
	// than the whole MinimumTime..MaximumTime range).
	MaximumPointWidthExponent = 63

	// UUIDNumBytes is the length in bytes of every stream identifier.
	UUIDNumBytes = 16
)

// endpointDelimiter separates addresses within one routing-map member's
// advertised endpoint list on the wire.
const endpointDelimiter = ";"
