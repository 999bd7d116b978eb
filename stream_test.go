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

package btrdb_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btrdb/btrdb-go"
	"github.com/btrdb/btrdb-go/internal/rpc"
)

func TestStreamRawValuesReturnsDecodedPoints(t *testing.T) {
	ctx := context.Background()
	srv := &fakeServer{
		mash: singleMemberMash("bufnet"),
		rawValues: []*rpc.RawPoint{
			{Time: 100, Value: 1.5},
			{Time: 200, Value: 2.5},
		},
	}
	client := connectToFake(ctx, t, srv)

	stream := client.Stream([btrdb.UUIDNumBytes]byte(uuid.New()))
	points, version, err := stream.RawValues(ctx, 0, 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	assert.Equal(t, []btrdb.RawPoint{{Time: 100, Value: 1.5}, {Time: 200, Value: 2.5}}, points)
}

func TestStreamRawValuesAsyncDeliversOneBatchThenCloses(t *testing.T) {
	ctx := context.Background()
	srv := &fakeServer{
		mash:      singleMemberMash("bufnet"),
		rawValues: []*rpc.RawPoint{{Time: 1, Value: 1}},
	}
	client := connectToFake(ctx, t, srv)
	stream := client.Stream([btrdb.UUIDNumBytes]byte(uuid.New()))

	var batches []btrdb.RawValuesBatch
	for b := range stream.RawValuesAsync(ctx, 0, 1000, 0) {
		batches = append(batches, b)
	}
	require.Len(t, batches, 1)
	assert.NoError(t, batches[0].Err)
	assert.Equal(t, []btrdb.RawPoint{{Time: 1, Value: 1}}, batches[0].Values)
}

func TestStreamRawValuesEmptyRangeReturnsNoPoints(t *testing.T) {
	ctx := context.Background()
	srv := &fakeServer{mash: singleMemberMash("bufnet")}
	client := connectToFake(ctx, t, srv)
	stream := client.Stream([btrdb.UUIDNumBytes]byte(uuid.New()))

	points, _, err := stream.RawValues(ctx, 0, 1000, 0)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestStreamRawValuesRetriesTransparentlyAfterWrongEndpoint(t *testing.T) {
	ctx := context.Background()
	inner := &fakeServer{
		mash:      singleMemberMash("bufnet"),
		rawValues: []*rpc.RawPoint{{Time: 42, Value: 9}},
	}
	srv := &redirectOnceServer{fakeServer: inner}
	client := connectToFake(ctx, t, srv)
	stream := client.Stream([btrdb.UUIDNumBytes]byte(uuid.New()))

	// The first attempt against this node is redirected with a 405; the
	// dispatcher must evict the stale cache entry and retry against a
	// freshly resolved node (the same node, in this single-member
	// fixture) without surfacing the 405 to the caller.
	points, _, err := stream.RawValues(ctx, 0, 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, []btrdb.RawPoint{{Time: 42, Value: 9}}, points)
}

func TestStreamVersionReturnsServerVersion(t *testing.T) {
	ctx := context.Background()
	srv := &fakeServer{mash: singleMemberMash("bufnet")}
	client := connectToFake(ctx, t, srv)

	u := uuid.New()
	_, err := client.Create(ctx, [btrdb.UUIDNumBytes]byte(u), "/v", nil, nil)
	require.NoError(t, err)

	stream := client.Stream([btrdb.UUIDNumBytes]byte(u))
	v, err := stream.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestStreamExistsTreatsNoSuchStreamAsFalseNotError(t *testing.T) {
	ctx := context.Background()
	srv := &fakeServer{mash: singleMemberMash("bufnet")}
	client := connectToFake(ctx, t, srv)

	stream := client.Stream([btrdb.UUIDNumBytes]byte(uuid.New()))
	exists, err := stream.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}
