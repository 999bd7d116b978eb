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
	"errors"
	"io"

	"github.com/btrdb/btrdb-go/internal/status"
)

// Batch is one delivery from a streaming RPC: either a non-empty slice
// of decoded values, or a terminal Err (nil Err with a nil/empty
// Values means a clean end of stream).
type Batch[T any] struct {
	Values  []T
	Version uint64
	Err     error
}

// Recv is satisfied by every generated server-streaming client
// (rpc.BTrDB_RawValuesClient and friends); Go's lack of covariant
// generic methods means callers close over the concrete Recv instead
// of passing the interface value directly to Drive.
type Recv[R any] func() (R, error)

// Drive runs a streaming RPC's Recv loop on its own goroutine and
// republishes each decoded batch on the returned channel, playing the
// per-response state machine from the original driver's
// AsyncRequestImpl::process_batch directly:
//
//   - Recv() returns io.EOF: the stream ended normally, the gRPC
//     equivalent of btrdb_endpoint.h's end_request delivering
//     (finished=true, OK, []); the channel is closed with no error.
//   - Recv() returns any other error: one final Batch carrying that
//     error, then the channel is closed.
//   - the decoded response carries a nonzero application status: one
//     final Batch carrying that status as Err, then closed.
//   - the response carries zero values and no metadata batch has been
//     seen yet: treated as the metadata-only first batch, not
//     terminal; keep reading.
//   - the response carries zero values and a metadata batch has
//     already been seen: clean end of stream, channel closed with no
//     final error.
//   - the response carries one or more values: published as a Batch,
//     loop continues.
//
// The channel is unbuffered; Go's "blocking send on a channel with no
// buffer" in place of a CompletionQueue tag is how this driver
// replaces the original's explicit completion-queue pump entirely —
// there is no tag to dispatch, the goroutine *is* the continuation.
func Drive[R any, T any](ctx context.Context, recv Recv[R], extract func(R) ([]T, uint64, *status.Status)) <-chan Batch[T] {
	out := make(chan Batch[T])
	go func() {
		defer close(out)
		gotMetadata := false
		for {
			resp, err := recv()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				sendOrAbort(ctx, out, Batch[T]{Err: status.FromGRPCError(err)})
				return
			}

			values, version, stat := extract(resp)
			if stat.IsError() {
				sendOrAbort(ctx, out, Batch[T]{Version: version, Err: stat})
				return
			}

			if len(values) == 0 {
				if gotMetadata {
					return
				}
				gotMetadata = true
				continue
			}

			if !sendOrAbort(ctx, out, Batch[T]{Values: values, Version: version}) {
				return
			}
		}
	}()
	return out
}

// sendOrAbort delivers b unless ctx is done first, reporting whether
// the send happened. A receiver that is already waiting gets b even
// when ctx is done, so an error caused by ctx expiry still reaches it.
func sendOrAbort[T any](ctx context.Context, out chan<- Batch[T], b Batch[T]) bool {
	select {
	case out <- b:
		return true
	default:
	}
	select {
	case out <- b:
		return true
	case <-ctx.Done():
		return false
	}
}

// Collect is the async_to_sync bridge: it drains ch to completion and
// returns the concatenation of every delivered batch, the version
// reported by the last one, and the first error encountered. Unlike
// the original's mutex/condvar pair guarding a single "done" flag —
// which can miss a wakeup if the signal arrives between the waiter's
// unlock and its wait call — a channel receive cannot miss a send that
// already happened, so the same guarantee holds by construction
// without a condition variable at all.
func Collect[T any](ch <-chan Batch[T]) ([]T, uint64, error) {
	var all []T
	var version uint64
	for b := range ch {
		if b.Err != nil {
			return all, version, b.Err
		}
		all = append(all, b.Values...)
		version = b.Version
	}
	return all, version, nil
}
