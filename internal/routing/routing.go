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

// Package routing resolves a stream UUID to the cluster node currently
// responsible for it. It holds no network state of its own; it is a
// pure function over the most recently received Mash broadcast, kept
// deliberately free of any gRPC dependency so the hash ring logic is
// trivially unit-testable in isolation.
package routing

import "strings"

// Member is one partition of the hash ring: the half-open range
// [Start, End) of ring positions it owns, and the addresses of the
// gRPC endpoints that currently serve it.
type Member struct {
	Hash       uint32
	Start      uint32
	End        uint32
	Endpoints  []string
	In         bool
	Up         bool
}

// active reports whether a member currently participates in routing.
// Mirrors the C++ driver's precalculate() filter: a member with
// Start == End owns no ring positions and can never match a lookup.
func (m Member) active() bool {
	return m.In && m.Up && m.Start != m.End
}

// Map is an immutable snapshot of the cluster's hash ring, built from
// one Mash broadcast. Replacing the ring on every broadcast (rather
// than mutating it in place) means a lookup in progress against an
// older Map is never disturbed by a concurrent refresh.
type Map struct {
	members []Member
}

// NewMap parses a Mash's raw member list into a routing Map, splitting
// each member's semicolon-delimited endpoint string the same way the
// C++ driver's split_string helper does.
func NewMap(members []RawMember) *Map {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		out = append(out, Member{
			Hash:      m.Hash,
			Start:     m.Start,
			End:       m.End,
			Endpoints: splitEndpoints(m.GRPCEndpoints),
			In:        m.In,
			Up:        m.Up,
		})
	}
	return &Map{members: out}
}

// RawMember is the subset of the wire Member message NewMap needs,
// decoupling this package from internal/rpc.
type RawMember struct {
	Hash          uint32
	Start         uint32
	End           uint32
	GRPCEndpoints string
	In            bool
	Up            bool
}

func splitEndpoints(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

// EndpointFor returns the gRPC addresses and ring hash of the member
// that currently owns uuid, scanning members in order exactly as the
// C++ driver does (first matching active member wins; member lists
// from the cluster are never large enough to warrant a binary search).
func (r *Map) EndpointFor(uuid []byte) (addrs []string, hash uint32, ok bool) {
	h := Murmur3(uuid)
	for _, m := range r.members {
		if !m.active() {
			continue
		}
		if m.Start <= h && h < m.End {
			return m.Endpoints, m.Hash, true
		}
	}
	return nil, 0, false
}

// Members returns every active member of the ring, in list order.
func (r *Map) Members() []Member {
	out := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		if m.active() {
			out = append(out, m)
		}
	}
	return out
}
