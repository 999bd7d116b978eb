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

import (
	"context"
	"sync"

	"github.com/btrdb/btrdb-go/internal/dispatch"
	"github.com/btrdb/btrdb-go/internal/endpoint"
	"github.com/btrdb/btrdb-go/internal/rpc"
	"github.com/btrdb/btrdb-go/internal/status"
)

// RawPoint is one (time, value) sample.
type RawPoint struct {
	Time  int64
	Value float64
}

// StatisticalPoint is one statistical summary over a time window.
type StatisticalPoint struct {
	Time  int64
	Min   float64
	Mean  float64
	Max   float64
	Count uint64
}

// ChangedRange is one half-open [Start, End) interval reported by
// Stream.Changes.
type ChangedRange struct {
	Start int64
	End   int64
}

// StreamDescriptor is a stream's identity and metadata as returned by
// LookupStreams.
type StreamDescriptor struct {
	UUID              [UUIDNumBytes]byte
	Collection        string
	Tags              map[string]string
	Annotations       map[string]string
	AnnotationVersion uint64
}

// KeyOptValue is one tag/annotation filter term for LookupStreams:
// Present=true matches Key with exactly Value (an empty Value matches
// the empty string); Present=false matches any value of Key.
type KeyOptValue struct {
	Key     string
	Value   string
	Present bool
}

func toEndpointFilters(kvs []KeyOptValue) []endpoint.KeyOptValue {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]endpoint.KeyOptValue, len(kvs))
	for i, kv := range kvs {
		out[i] = endpoint.KeyOptValue{Key: kv.Key, Value: kv.Value, Present: kv.Present}
	}
	return out
}

func descriptorsFromWire(wire []*rpc.StreamDescriptor) []StreamDescriptor {
	out := make([]StreamDescriptor, 0, len(wire))
	for _, d := range wire {
		var sd StreamDescriptor
		copy(sd.UUID[:], d.Uuid)
		sd.Collection = d.Collection
		sd.AnnotationVersion = d.AnnotationVersion
		if len(d.Tags) > 0 {
			sd.Tags = make(map[string]string, len(d.Tags))
			for _, kv := range d.Tags {
				sd.Tags[kv.Key] = kv.Value
			}
		}
		if len(d.Annotations) > 0 {
			sd.Annotations = make(map[string]string, len(d.Annotations))
			for _, kv := range d.Annotations {
				sd.Annotations[kv.Key] = kv.Value
			}
		}
		out = append(out, sd)
	}
	return out
}

// Stream is a per-UUID facade over one stream's data and metadata RPCs.
// Metadata fields are cached per the rules in each accessor's doc
// comment; a zero Stream is never valid, only one returned by
// Client.Stream or Client.Create.
//
// Metadata refresh and data operations are not serialized against each
// other: a concurrent Collection() and Annotations() call may observe
// a torn view, matching the upstream driver's own concurrency
// contract. Callers needing a consistent snapshot should serialize
// their own access to one Stream.
type Stream struct {
	client *Client
	uuid   [UUIDNumBytes]byte

	mu                sync.Mutex
	knownToExist      bool
	hasCollection     bool
	collection        string
	hasTags           bool
	tags              map[string]string
	hasAnnotations    bool
	annotations       map[string]string
	annotationVersion uint64
}

// UUID returns the stream's identifier.
func (s *Stream) UUID() [UUIDNumBytes]byte { return s.uuid }

func (s *Stream) call(ctx context.Context, fn func(*endpoint.Endpoint) error) error {
	return s.client.dispatcher.Call(ctx, s.uuid[:], fn)
}

// refreshMetadata issues StreamInfo with omit_version=true,
// omit_descriptor=false and repopulates every cached metadata field on
// success, per spec's metadata-refresh rule.
func (s *Stream) refreshMetadata(ctx context.Context) error {
	var desc endpoint.StreamDescriptor
	err := s.call(ctx, func(ep *endpoint.Endpoint) error {
		var err error
		desc, _, err = ep.StreamInfo(ctx, s.uuid[:], true, false)
		return err
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.knownToExist = true
	s.hasCollection = true
	s.collection = desc.Collection
	s.hasTags = true
	s.tags = desc.Tags
	s.hasAnnotations = true
	s.annotations = desc.Annotations
	s.annotationVersion = desc.AnnotationVersion
	return nil
}

// Exists reports whether the stream is registered on the cluster.
// Sticky-true: once any successful descriptor load has happened, this
// returns true without another RPC. Until then it forces a refresh and
// treats a 404 (No Such Stream) as (false, nil) rather than an error.
func (s *Stream) Exists(ctx context.Context) (bool, error) {
	s.mu.Lock()
	known := s.knownToExist
	s.mu.Unlock()
	if known {
		return true, nil
	}

	err := s.refreshMetadata(ctx)
	if err == nil {
		return true, nil
	}
	if IsNoSuchStream(err) {
		return false, nil
	}
	return false, err
}

// Collection returns the stream's collection path, served from cache
// when present and refreshed only on a cache miss.
func (s *Stream) Collection(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.hasCollection {
		c := s.collection
		s.mu.Unlock()
		return c, nil
	}
	s.mu.Unlock()

	if err := s.refreshMetadata(ctx); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection, nil
}

// Tags returns the stream's tag set, served from cache when present
// and refreshed only on a cache miss.
func (s *Stream) Tags(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	if s.hasTags {
		t := s.tags
		s.mu.Unlock()
		return t, nil
	}
	s.mu.Unlock()

	if err := s.refreshMetadata(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags, nil
}

// Annotations always refreshes from the cluster, since annotations
// carry their own version that advances independently of the
// collection/tags the rest of a stream's metadata belongs to.
func (s *Stream) Annotations(ctx context.Context) (map[string]string, uint64, error) {
	if err := s.refreshMetadata(ctx); err != nil {
		return nil, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.annotations, s.annotationVersion, nil
}

// CachedAnnotations returns the last-fetched annotation set, refreshing
// only if none has ever been fetched. Unlike Annotations, repeated
// calls against a freshly constructed Stream perform at most one RPC.
func (s *Stream) CachedAnnotations(ctx context.Context) (map[string]string, uint64, error) {
	s.mu.Lock()
	if s.hasAnnotations {
		a, v := s.annotations, s.annotationVersion
		s.mu.Unlock()
		return a, v, nil
	}
	s.mu.Unlock()
	return s.Annotations(ctx)
}

// Version returns the stream's current major version. It is never
// cached: every call issues a fresh StreamInfo RPC.
func (s *Stream) Version(ctx context.Context) (uint64, error) {
	var version uint64
	err := s.call(ctx, func(ep *endpoint.Endpoint) error {
		var err error
		_, version, err = ep.StreamInfo(ctx, s.uuid[:], false, true)
		return err
	})
	return version, err
}

// Insert appends values to the stream. If sync is true, the server
// fsyncs before acknowledging. Returns the stream's new major version.
func (s *Stream) Insert(ctx context.Context, values []RawPoint, sync bool) (uint64, error) {
	wire := make([]endpoint.RawPoint, len(values))
	for i, v := range values {
		wire[i] = endpoint.RawPoint{Time: v.Time, Value: v.Value}
	}
	var version uint64
	err := s.call(ctx, func(ep *endpoint.Endpoint) error {
		var err error
		version, err = ep.Insert(ctx, s.uuid[:], wire, sync)
		return err
	})
	return version, err
}

// DeleteRange removes points in [start, end) from the stream, returning
// its new major version.
func (s *Stream) DeleteRange(ctx context.Context, start, end int64) (uint64, error) {
	var version uint64
	err := s.call(ctx, func(ep *endpoint.Endpoint) error {
		var err error
		version, err = ep.DeleteRange(ctx, s.uuid[:], start, end)
		return err
	})
	return version, err
}

// Obliterate permanently destroys the stream and all of its data.
func (s *Stream) Obliterate(ctx context.Context) error {
	return s.call(ctx, func(ep *endpoint.Endpoint) error {
		return ep.Obliterate(ctx, s.uuid[:])
	})
}

// Nearest finds the point nearest to t, searching backward (toward
// earlier timestamps) or forward.
func (s *Stream) Nearest(ctx context.Context, t int64, version uint64, backward bool) (RawPoint, uint64, error) {
	var point RawPoint
	var ver uint64
	err := s.call(ctx, func(ep *endpoint.Endpoint) error {
		p, v, err := ep.Nearest(ctx, s.uuid[:], t, version, backward)
		point, ver = RawPoint{Time: p.Time, Value: p.Value}, v
		return err
	})
	return point, ver, err
}

// Batch is one delivery from a range query's Async method: a slice of
// decoded values plus the stream version they were read at, or a
// terminal error. RawValuesBatch, WindowsBatch, and ChangesBatch are
// this type specialized to each range query's element type.
type Batch[T any] struct {
	Values  []T
	Version uint64
	Err     error
}

type (
	// RawValuesBatch is one delivery from RawValuesAsync.
	RawValuesBatch = Batch[RawPoint]
	// WindowsBatch is one delivery from AlignedWindowsAsync or WindowsAsync.
	WindowsBatch = Batch[StatisticalPoint]
	// ChangesBatch is one delivery from ChangesAsync.
	ChangesBatch = Batch[ChangedRange]
)

// driveRange runs one range query's streaming RPC to completion,
// converting each wire value with convert and republishing it on the
// returned channel. The empty metadata-only first batch the wire
// protocol sends is never surfaced to the caller; draining the channel
// to closure is the terminal signal.
//
// A wrong-endpoint response is never forwarded here: open/extract run
// inside s.call, so the dispatcher retries the whole stream against a
// freshly resolved node. Batches already sent to out before a mid-stream
// wrong-endpoint response stay delivered, and the retried stream sends
// the range again from its start. Only a retry budget exhausted on one,
// or a genuine mid-stream error, is sent to out, and it is sent exactly
// once, after s.call returns.
func driveRange[R any, W any, T any](ctx context.Context, s *Stream, open func(*endpoint.Endpoint) (dispatch.Recv[R], error), extract func(R) ([]W, uint64, *status.Status), convert func(W) T) <-chan Batch[T] {
	out := make(chan Batch[T])
	go func() {
		defer close(out)
		err := s.call(ctx, func(ep *endpoint.Endpoint) error {
			recv, err := open(ep)
			if err != nil {
				return err
			}
			ch := dispatch.Drive(ctx, recv, extract)
			for b := range ch {
				if b.Err != nil {
					return b.Err
				}
				values := make([]T, len(b.Values))
				for i, w := range b.Values {
					values[i] = convert(w)
				}
				select {
				case out <- Batch[T]{Values: values, Version: b.Version}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
		if err != nil {
			// A reader already waiting gets the error even when ctx is
			// done (e.g. the deadline that caused it).
			select {
			case out <- Batch[T]{Err: err}:
				return
			default:
			}
			select {
			case out <- Batch[T]{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return out
}

// collectRange drains an Async channel into one slice plus the version
// reported by the last batch, stopping at the first error.
func collectRange[T any](ch <-chan Batch[T]) ([]T, uint64, error) {
	var values []T
	var ver uint64
	for b := range ch {
		if b.Err != nil {
			return values, ver, b.Err
		}
		values = append(values, b.Values...)
		ver = b.Version
	}
	return values, ver, nil
}

func rawPointFromWire(p *rpc.RawPoint) RawPoint { return RawPoint{Time: p.Time, Value: p.Value} }

func statPointFromWire(p *rpc.StatPoint) StatisticalPoint {
	return StatisticalPoint{Time: p.Time, Min: p.Min, Mean: p.Mean, Max: p.Max, Count: p.Count}
}

func changedRangeFromWire(r *rpc.ChangedRange) ChangedRange {
	return ChangedRange{Start: r.Start, End: r.End}
}

func extractRawValues(resp *rpc.RawValuesResponse) ([]*rpc.RawPoint, uint64, *status.Status) {
	return resp.Values, resp.VersionMajor, status.FromResponse(resp)
}

func extractAlignedWindows(resp *rpc.AlignedWindowsResponse) ([]*rpc.StatPoint, uint64, *status.Status) {
	return resp.Values, resp.VersionMajor, status.FromResponse(resp)
}

func extractWindows(resp *rpc.WindowsResponse) ([]*rpc.StatPoint, uint64, *status.Status) {
	return resp.Values, resp.VersionMajor, status.FromResponse(resp)
}

func extractChanges(resp *rpc.ChangesResponse) ([]*rpc.ChangedRange, uint64, *status.Status) {
	return resp.Values, resp.VersionMajor, status.FromResponse(resp)
}

// RawValuesAsync opens a streaming read of raw points in [start, end)
// and returns a channel of incrementally delivered batches.
func (s *Stream) RawValuesAsync(ctx context.Context, start, end int64, version uint64) <-chan RawValuesBatch {
	return driveRange(ctx, s,
		func(ep *endpoint.Endpoint) (dispatch.Recv[*rpc.RawValuesResponse], error) {
			stream, err := ep.RawValues(ctx, s.uuid[:], start, end, version)
			if err != nil {
				return nil, err
			}
			return stream.Recv, nil
		},
		extractRawValues, rawPointFromWire)
}

// RawValues reads every raw point in [start, end), blocking until the
// stream completes.
func (s *Stream) RawValues(ctx context.Context, start, end int64, version uint64) ([]RawPoint, uint64, error) {
	return collectRange(s.RawValuesAsync(ctx, start, end, version))
}

// RawValuesCollect is an alias for RawValues kept for symmetry with the
// async/sync/sync-collect naming trio the other range queries use.
func (s *Stream) RawValuesCollect(ctx context.Context, start, end int64, version uint64) ([]RawPoint, uint64, error) {
	return s.RawValues(ctx, start, end, version)
}

// AlignedWindowsAsync opens a streaming read of power-of-two aligned
// statistical windows over [start, end) at the given pointWidth
// exponent, returning a channel of incrementally delivered batches.
func (s *Stream) AlignedWindowsAsync(ctx context.Context, start, end int64, pointWidth uint32, version uint64) <-chan WindowsBatch {
	return driveRange(ctx, s,
		func(ep *endpoint.Endpoint) (dispatch.Recv[*rpc.AlignedWindowsResponse], error) {
			stream, err := ep.AlignedWindows(ctx, s.uuid[:], start, end, pointWidth, version)
			if err != nil {
				return nil, err
			}
			return stream.Recv, nil
		},
		extractAlignedWindows, statPointFromWire)
}

// AlignedWindows reads power-of-two aligned statistical windows over
// [start, end) at the given pointWidth exponent, blocking until the
// stream completes.
func (s *Stream) AlignedWindows(ctx context.Context, start, end int64, pointWidth uint32, version uint64) ([]StatisticalPoint, uint64, error) {
	return collectRange(s.AlignedWindowsAsync(ctx, start, end, pointWidth, version))
}

// AlignedWindowsCollect is an alias for AlignedWindows kept for
// symmetry with the async/sync/sync-collect naming trio.
func (s *Stream) AlignedWindowsCollect(ctx context.Context, start, end int64, pointWidth uint32, version uint64) ([]StatisticalPoint, uint64, error) {
	return s.AlignedWindows(ctx, start, end, pointWidth, version)
}

// WindowsAsync opens a streaming read of statistical windows of a
// caller-chosen width, recursively subdivided to depth, over
// [start, end), returning a channel of incrementally delivered batches.
func (s *Stream) WindowsAsync(ctx context.Context, start, end int64, width uint64, depth uint32, version uint64) <-chan WindowsBatch {
	return driveRange(ctx, s,
		func(ep *endpoint.Endpoint) (dispatch.Recv[*rpc.WindowsResponse], error) {
			stream, err := ep.Windows(ctx, s.uuid[:], start, end, width, depth, version)
			if err != nil {
				return nil, err
			}
			return stream.Recv, nil
		},
		extractWindows, statPointFromWire)
}

// Windows reads statistical windows of a caller-chosen width,
// recursively subdivided to depth, over [start, end), blocking until
// the stream completes.
func (s *Stream) Windows(ctx context.Context, start, end int64, width uint64, depth uint32, version uint64) ([]StatisticalPoint, uint64, error) {
	return collectRange(s.WindowsAsync(ctx, start, end, width, depth, version))
}

// WindowsCollect is an alias for Windows kept for symmetry with the
// async/sync/sync-collect naming trio.
func (s *Stream) WindowsCollect(ctx context.Context, start, end int64, width uint64, depth uint32, version uint64) ([]StatisticalPoint, uint64, error) {
	return s.Windows(ctx, start, end, width, depth, version)
}

// ChangesAsync opens a streaming read of the ranges that differ between
// two versions of the stream, resolved to the given tree-depth
// resolution, returning a channel of incrementally delivered batches.
func (s *Stream) ChangesAsync(ctx context.Context, fromVersion, toVersion uint64, resolution uint32) <-chan ChangesBatch {
	return driveRange(ctx, s,
		func(ep *endpoint.Endpoint) (dispatch.Recv[*rpc.ChangesResponse], error) {
			stream, err := ep.Changes(ctx, s.uuid[:], fromVersion, toVersion, resolution)
			if err != nil {
				return nil, err
			}
			return stream.Recv, nil
		},
		extractChanges, changedRangeFromWire)
}

// Changes reports the ranges that differ between two versions of the
// stream, resolved to the given tree-depth resolution, blocking until
// the stream completes.
func (s *Stream) Changes(ctx context.Context, fromVersion, toVersion uint64, resolution uint32) ([]ChangedRange, error) {
	values, _, err := collectRange(s.ChangesAsync(ctx, fromVersion, toVersion, resolution))
	return values, err
}

// ChangesCollect is an alias for Changes kept for symmetry with the
// async/sync/sync-collect naming trio.
func (s *Stream) ChangesCollect(ctx context.Context, fromVersion, toVersion uint64, resolution uint32) ([]ChangedRange, error) {
	return s.Changes(ctx, fromVersion, toVersion, resolution)
}
