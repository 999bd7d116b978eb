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

// Package endpoint wraps a single gRPC connection to one cluster node
// and every RPC BTrDB exposes over it. It holds no routing knowledge;
// callers decide which Endpoint to use for a given UUID via
// internal/routing and internal/endpoint's own Cache.
package endpoint

import (
	"context"

	"google.golang.org/grpc"

	"github.com/btrdb/btrdb-go/internal/rpc"
	"github.com/btrdb/btrdb-go/internal/status"
)

// RawPoint mirrors btrdb.RawPoint without importing the root package,
// which would create an import cycle (the root package imports
// internal/endpoint, not the other way around).
type RawPoint struct {
	Time  int64
	Value float64
}

// StatPoint mirrors btrdb.StatisticalPoint.
type StatPoint struct {
	Time  int64
	Min   float64
	Mean  float64
	Max   float64
	Count uint64
}

// ChangedRange mirrors btrdb.ChangedRange.
type ChangedRange struct {
	Start int64
	End   int64
}

// StreamDescriptor is the subset of stream metadata an endpoint can
// hand back without the caller needing internal/rpc types.
type StreamDescriptor struct {
	UUID              []byte
	Collection        string
	Tags              map[string]string
	Annotations       map[string]string
	AnnotationVersion uint64
}

// Endpoint wraps one *grpc.ClientConn and the generated client stub.
// It is safe for concurrent use; grpc.ClientConn already is, and this
// type adds no further mutable state.
type Endpoint struct {
	conn   *grpc.ClientConn
	client rpc.BTrDBClient

	// addr is the dial target, kept for diagnostics and logging only.
	addr string
}

// New wraps an already-dialed connection. Most callers should go
// through Cache/dialAndProbe instead of calling this directly.
func New(conn *grpc.ClientConn, addr string) *Endpoint {
	return &Endpoint{conn: conn, client: rpc.NewBTrDBClient(conn), addr: addr}
}

// Addr returns the dial target this endpoint was created from.
func (e *Endpoint) Addr() string { return e.addr }

// Close releases the underlying connection. Callers sharing an
// Endpoint via the Cache should not call this directly; the Cache
// owns the lifecycle.
func (e *Endpoint) Close() error { return e.conn.Close() }

// Conn exposes the underlying connection for connectivity-state
// polling (dialAndProbe) and test bufconn wiring.
func (e *Endpoint) Conn() *grpc.ClientConn { return e.conn }

func keyValues(m map[string]string) []*rpc.KeyValue {
	if len(m) == 0 {
		return nil
	}
	out := make([]*rpc.KeyValue, 0, len(m))
	for k, v := range m {
		out = append(out, &rpc.KeyValue{Key: k, Value: v})
	}
	return out
}

// KeyOptValue is one tag/annotation filter term: Present=true sends
// Value as the value to match (an empty Value matches the empty
// string); Present=false sends no value, which matches any stream that
// has Key, whatever its value.
type KeyOptValue struct {
	Key     string
	Value   string
	Present bool
}

func keyOptValues(kvs []KeyOptValue) []*rpc.KeyOptValue {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]*rpc.KeyOptValue, 0, len(kvs))
	for _, kv := range kvs {
		pb := &rpc.KeyOptValue{Key: kv.Key}
		if kv.Present {
			pb.Val = &rpc.OptValue{Value: kv.Value}
		}
		out = append(out, pb)
	}
	return out
}

func descriptorFromWire(d *rpc.StreamDescriptor) StreamDescriptor {
	out := StreamDescriptor{
		UUID:              d.Uuid,
		Collection:        d.Collection,
		AnnotationVersion: d.AnnotationVersion,
	}
	if len(d.Tags) > 0 {
		out.Tags = make(map[string]string, len(d.Tags))
		for _, kv := range d.Tags {
			out.Tags[kv.Key] = kv.Value
		}
	}
	if len(d.Annotations) > 0 {
		out.Annotations = make(map[string]string, len(d.Annotations))
		for _, kv := range d.Annotations {
			out.Annotations[kv.Key] = kv.Value
		}
	}
	return out
}

// Info queries the node's Mash and build metadata.
func (e *Endpoint) Info(ctx context.Context) (mash []*rpc.Member, err error) {
	resp, err := e.client.Info(ctx, &rpc.InfoParams{})
	if err != nil {
		return nil, status.FromGRPCError(err)
	}
	if st := status.FromResponse(resp); st.IsError() {
		return nil, st
	}
	if resp.Mash == nil {
		return nil, nil
	}
	return resp.Mash.Members, nil
}

// StreamInfo fetches stream metadata, optionally omitting the version
// or descriptor fields the caller doesn't need.
func (e *Endpoint) StreamInfo(ctx context.Context, uuid []byte, omitVersion, omitDescriptor bool) (StreamDescriptor, uint64, error) {
	resp, err := e.client.StreamInfo(ctx, &rpc.StreamInfoParams{
		Uuid:           uuid,
		OmitVersion:    omitVersion,
		OmitDescriptor: omitDescriptor,
	})
	if err != nil {
		return StreamDescriptor{}, 0, status.FromGRPCError(err)
	}
	if st := status.FromResponse(resp); st.IsError() {
		return StreamDescriptor{}, 0, st
	}
	var desc StreamDescriptor
	if resp.StreamDescriptor != nil {
		desc = descriptorFromWire(resp.StreamDescriptor)
	}
	return desc, resp.VersionMajor, nil
}

// Create registers a new stream under the given UUID.
func (e *Endpoint) Create(ctx context.Context, uuid []byte, collection string, tags, annotations map[string]string) error {
	resp, err := e.client.Create(ctx, &rpc.CreateParams{
		Uuid:        uuid,
		Collection:  collection,
		Tags:        keyValues(tags),
		Annotations: keyValues(annotations),
	})
	if err != nil {
		return status.FromGRPCError(err)
	}
	if st := status.FromResponse(resp); st.IsError() {
		return st
	}
	return nil
}

// Insert appends points to a stream. Every point in values is sent;
// the original driver constructed each wire RawPoint but never
// appended it to the request, so every insert silently became a
// no-op. That defect is not reproduced here.
func (e *Endpoint) Insert(ctx context.Context, uuid []byte, values []RawPoint, sync bool) (uint64, error) {
	wire := make([]*rpc.RawPoint, len(values))
	for i, v := range values {
		wire[i] = &rpc.RawPoint{Time: v.Time, Value: v.Value}
	}
	resp, err := e.client.Insert(ctx, &rpc.InsertParams{Uuid: uuid, Sync: sync, Values: wire})
	if err != nil {
		return 0, status.FromGRPCError(err)
	}
	if st := status.FromResponse(resp); st.IsError() {
		return 0, st
	}
	return resp.VersionMajor, nil
}

// DeleteRange removes points in [start, end) from a stream.
func (e *Endpoint) DeleteRange(ctx context.Context, uuid []byte, start, end int64) (uint64, error) {
	resp, err := e.client.Delete(ctx, &rpc.DeleteParams{Uuid: uuid, Start: start, End: end})
	if err != nil {
		return 0, status.FromGRPCError(err)
	}
	if st := status.FromResponse(resp); st.IsError() {
		return 0, st
	}
	return resp.VersionMajor, nil
}

// Obliterate permanently destroys a stream and all of its data.
func (e *Endpoint) Obliterate(ctx context.Context, uuid []byte) error {
	resp, err := e.client.Obliterate(ctx, &rpc.ObliterateParams{Uuid: uuid})
	if err != nil {
		return status.FromGRPCError(err)
	}
	if st := status.FromResponse(resp); st.IsError() {
		return st
	}
	return nil
}

// ListCollections returns up to limit collection names starting at
// startWith with the given prefix, a single page of the pagination
// scheme internal/dispatch drives to walk the full set.
func (e *Endpoint) ListCollections(ctx context.Context, prefix, startWith string, limit uint64) ([]string, error) {
	resp, err := e.client.ListCollections(ctx, &rpc.ListCollectionsParams{
		Prefix:    prefix,
		StartWith: startWith,
		Limit:     limit,
	})
	if err != nil {
		return nil, status.FromGRPCError(err)
	}
	if st := status.FromResponse(resp); st.IsError() {
		return nil, st
	}
	return resp.Collections, nil
}

// Nearest finds the point in a stream nearest to time, searching
// backward (toward earlier time) or forward.
func (e *Endpoint) Nearest(ctx context.Context, uuid []byte, t int64, version uint64, backward bool) (RawPoint, uint64, error) {
	resp, err := e.client.Nearest(ctx, &rpc.NearestParams{
		Uuid:         uuid,
		Time:         t,
		VersionMajor: version,
		Backward:     backward,
	})
	if err != nil {
		return RawPoint{}, 0, status.FromGRPCError(err)
	}
	if st := status.FromResponse(resp); st.IsError() {
		return RawPoint{}, 0, st
	}
	var p RawPoint
	if resp.Value != nil {
		p = RawPoint{Time: resp.Value.Time, Value: resp.Value.Value}
	}
	return p, resp.VersionMajor, nil
}

// LookupStreams opens a server-streaming search over stream
// descriptors matching collection/tags/annotations.
func (e *Endpoint) LookupStreams(ctx context.Context, collection string, isPrefix bool, tags, annotations []KeyOptValue) (rpc.BTrDB_LookupStreamsClient, error) {
	stream, err := e.client.LookupStreams(ctx, &rpc.LookupStreamsParams{
		Collection:         collection,
		IsCollectionPrefix: isPrefix,
		Tags:               keyOptValues(tags),
		Annotations:        keyOptValues(annotations),
	})
	if err != nil {
		return nil, status.FromGRPCError(err)
	}
	return stream, nil
}

// RawValues opens a server-streaming read of raw points in [start, end).
func (e *Endpoint) RawValues(ctx context.Context, uuid []byte, start, end int64, version uint64) (rpc.BTrDB_RawValuesClient, error) {
	stream, err := e.client.RawValues(ctx, &rpc.RawValuesParams{
		Uuid:         uuid,
		Start:        start,
		End:          end,
		VersionMajor: version,
	})
	if err != nil {
		return nil, status.FromGRPCError(err)
	}
	return stream, nil
}

// AlignedWindows opens a server-streaming read of power-of-two
// aligned statistical windows.
func (e *Endpoint) AlignedWindows(ctx context.Context, uuid []byte, start, end int64, pointWidth uint32, version uint64) (rpc.BTrDB_AlignedWindowsClient, error) {
	stream, err := e.client.AlignedWindows(ctx, &rpc.AlignedWindowsParams{
		Uuid:         uuid,
		Start:        start,
		End:          end,
		PointWidth:   pointWidth,
		VersionMajor: version,
	})
	if err != nil {
		return nil, status.FromGRPCError(err)
	}
	return stream, nil
}

// Windows opens a server-streaming read of arbitrary-width statistical
// windows, recursively subdivided to depth.
func (e *Endpoint) Windows(ctx context.Context, uuid []byte, start, end int64, width uint64, depth uint32, version uint64) (rpc.BTrDB_WindowsClient, error) {
	stream, err := e.client.Windows(ctx, &rpc.WindowsParams{
		Uuid:         uuid,
		Start:        start,
		End:          end,
		Width:        width,
		Depth:        depth,
		VersionMajor: version,
	})
	if err != nil {
		return nil, status.FromGRPCError(err)
	}
	return stream, nil
}

// Changes opens a server-streaming read of the ranges that differ
// between two versions of a stream.
func (e *Endpoint) Changes(ctx context.Context, uuid []byte, fromMajor, toMajor uint64, resolution uint32) (rpc.BTrDB_ChangesClient, error) {
	stream, err := e.client.Changes(ctx, &rpc.ChangesParams{
		Uuid:      uuid,
		FromMajor: fromMajor,
		ToMajor:   toMajor,
		Resolution: resolution,
	})
	if err != nil {
		return nil, status.FromGRPCError(err)
	}
	return stream, nil
}
