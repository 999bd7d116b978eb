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

import "context"

// Default page sizes for ListCollections pagination: 10 for the
// synchronous walk, 2 for the callback-driven async one. The async
// value is kept deliberately small, matching the original driver's own
// choice, purely so pagination-boundary bugs show up in a handful of
// pages instead of needing a huge collection count to trigger.
const (
	SyncPageSize  = 10
	AsyncPageSize = 2
)

// FetchPage performs one page of a collection listing: up to pageSize
// entries starting at cursor. If exactly pageSize entries come back,
// the last one is withheld and becomes the cursor for the next call,
// since it will be the first entry of that next page; fewer than
// pageSize entries means this is the final page.
type FetchPage func(ctx context.Context, cursor string, pageSize uint64) ([]string, error)

// ListCollections walks every page of a prefix listing via fetch,
// returning the concatenation of every page with no cursor entries
// duplicated and no extra empty page when the total count is an exact
// multiple of pageSize.
func ListCollections(ctx context.Context, fetch FetchPage, pageSize uint64) ([]string, error) {
	var all []string
	cursor := ""
	for {
		page, err := fetch(ctx, cursor, pageSize)
		if err != nil {
			return all, err
		}

		if uint64(len(page)) < pageSize {
			all = append(all, page...)
			return all, nil
		}

		// Exactly pageSize entries: withhold the last as the next
		// cursor so it isn't duplicated when it reappears as that
		// page's first entry.
		all = append(all, page[:len(page)-1]...)
		cursor = page[len(page)-1]
	}
}

// ListCollectionsCallback mirrors ListCollections but delivers each
// page to onPage as it arrives instead of accumulating the whole
// result, matching the async listCollectionsAsync shape: the final
// invocation of onPage always carries finished=true, even when the
// collection set is empty.
func ListCollectionsCallback(ctx context.Context, fetch FetchPage, pageSize uint64, onPage func(page []string, finished bool) error) error {
	cursor := ""
	for {
		page, err := fetch(ctx, cursor, pageSize)
		if err != nil {
			return err
		}

		if uint64(len(page)) < pageSize {
			return onPage(page, true)
		}

		if err := onPage(page[:len(page)-1], false); err != nil {
			return err
		}
		cursor = page[len(page)-1]
	}
}
