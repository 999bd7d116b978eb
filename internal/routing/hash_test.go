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

package routing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureUUIDs = []string{
	"00000000-0000-0000-0000-000000000000",
	"ffffffff-ffff-ffff-ffff-ffffffffffff",
	"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	"6ba7b811-9dad-11d1-80b4-00c04fd430c8",
	"01234567-89ab-cdef-0123-456789abcdef",
}

// TestMurmur3Deterministic pins the property that matters operationally:
// the same bytes always hash to the same ring position, on every run and
// every process, since the cluster and the client must agree without
// exchanging any state beyond the UUID itself.
func TestMurmur3Deterministic(t *testing.T) {
	for _, s := range fixtureUUIDs {
		u, err := uuid.Parse(s)
		require.NoError(t, err)
		b, err := u.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, b, 16)

		h1 := Murmur3(b)
		h2 := Murmur3(b)
		assert.Equal(t, h1, h2, "hash of %s must be stable across calls", s)
	}
}

// TestMurmur3DistinctUUIDs is not a collision guarantee, just a sanity
// check that the fixture set doesn't degenerate to a single bucket.
func TestMurmur3DistinctUUIDs(t *testing.T) {
	seen := make(map[uint32]int)
	for _, s := range fixtureUUIDs {
		u := uuid.MustParse(s)
		b, err := u.MarshalBinary()
		require.NoError(t, err)
		seen[Murmur3(b)]++
	}
	assert.Greater(t, len(seen), 1)
}

// TestMurmur3EmptyKeyBaseline pins the result for a zero-length key:
// every mixing step is skipped and only the final avalanche runs on the
// unmodified seed (1) xored with length 0.
func TestMurmur3EmptyKeyBaseline(t *testing.T) {
	h := uint32(1)
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	assert.Equal(t, h, Murmur3(nil))
}

// murmur3GoldenVectors pins Murmur3(seed=1) against the outputs of the
// reference MurmurHash3_x86_32 (4-byte blocks, seed 1) for 16-byte UUID
// inputs, so that a regression in the mixing constants or rotation
// amounts is caught even though the only property exercised elsewhere
// is determinism.
var murmur3GoldenVectors = []struct {
	uuid string
	hash uint32
}{
	{"00000000-0000-0000-0000-000000000000", 0x90052b18},
	{"ffffffff-ffff-ffff-ffff-ffffffffffff", 0x8331e551},
	{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", 0x2a075a70},
	{"6ba7b811-9dad-11d1-80b4-00c04fd430c8", 0xb43202a5},
	{"01234567-89ab-cdef-0123-456789abcdef", 0x07a723f6},
	{"123e4567-e89b-12d3-a456-426614174000", 0x67c4b301},
	{"a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", 0xcce1a3e2},
	{"ffffffff-0000-0000-0000-000000000001", 0x7faa666b},
}

func TestMurmur3GoldenVectors(t *testing.T) {
	for _, tc := range murmur3GoldenVectors {
		u, err := uuid.Parse(tc.uuid)
		require.NoError(t, err)
		b, err := u.MarshalBinary()
		require.NoError(t, err)

		assert.Equal(t, tc.hash, Murmur3(b), "Murmur3(%s)", tc.uuid)
	}
}

// TestMurmur3TailBytes exercises the reversed tail-byte fold on inputs
// whose length is not a multiple of 4 — the one code path a 16-byte
// UUID never takes, since it always has tail-bytes-remaining == 0.
func TestMurmur3TailBytes(t *testing.T) {
	cases := [][]byte{
		{0x01},
		{0x01, 0x02},
		{0x01, 0x02, 0x03},
		{0x01, 0x02, 0x03, 0x04, 0x05},
	}
	seen := make(map[uint32]bool)
	for _, c := range cases {
		h := Murmur3(c)
		assert.False(t, seen[h], "expected distinct hashes across fixture inputs")
		seen[h] = true
	}
}
