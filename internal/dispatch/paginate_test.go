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

package dispatch

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCollectionServer partitions a fixed collection set into pages
// the way the real server's ListCollections RPC does: up to pageSize
// entries starting at (and including) cursor.
func fakeCollectionServer(all []string) FetchPage {
	return func(_ context.Context, cursor string, pageSize uint64) ([]string, error) {
		start := 0
		if cursor != "" {
			for i, c := range all {
				if c == cursor {
					start = i
					break
				}
			}
		}
		end := start + int(pageSize)
		if end > len(all) {
			end = len(all)
		}
		return append([]string{}, all[start:end]...), nil
	}
}

func collectionNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("collection-%03d", i)
	}
	return out
}

func TestListCollectionsExactMultipleOfPageSize(t *testing.T) {
	want := collectionNames(20)
	got, err := ListCollections(context.Background(), fakeCollectionServer(want), 10)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListCollectionsNotAMultiple(t *testing.T) {
	want := collectionNames(25)
	got, err := ListCollections(context.Background(), fakeCollectionServer(want), 10)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListCollectionsEmpty(t *testing.T) {
	got, err := ListCollections(context.Background(), fakeCollectionServer(nil), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListCollectionsFewerThanOnePage(t *testing.T) {
	want := collectionNames(3)
	got, err := ListCollections(context.Background(), fakeCollectionServer(want), 10)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListCollectionsCallbackFinalFlagExactMultiple(t *testing.T) {
	want := collectionNames(20)
	var seen []string
	var finishedCalls int
	err := ListCollectionsCallback(context.Background(), fakeCollectionServer(want), AsyncPageSize, func(page []string, finished bool) error {
		seen = append(seen, page...)
		if finished {
			finishedCalls++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, seen)
	assert.Equal(t, 1, finishedCalls)
}

func TestListCollectionsCallbackEmptyStillTerminates(t *testing.T) {
	var finished bool
	err := ListCollectionsCallback(context.Background(), fakeCollectionServer(nil), AsyncPageSize, func(page []string, fin bool) error {
		finished = fin
		assert.Empty(t, page)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, finished)
}
