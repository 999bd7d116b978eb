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
	"bytes"
	"context"
	"net"
	"sort"
	"strings"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/btrdb/btrdb-go"
	"github.com/btrdb/btrdb-go/internal/rpc"
)

const bufSize = 1 << 20

// fakeServer is a bufconn-backed stand-in for a single cluster node,
// just enough of rpc.BTrDBServer for the root package's exported API
// to be driven end to end without a real BTrDB cluster.
type fakeServer struct {
	rpc.UnimplementedBTrDBServer

	mash *rpc.Mash

	mu               sync.Mutex
	collections      []string
	streams          []*rpc.StreamDescriptor
	rawValues        []*rpc.RawPoint
	wrongEndpointHit bool // once true, the next RawValues call has already redirected
}

func (f *fakeServer) Info(context.Context, *rpc.InfoParams) (*rpc.InfoResponse, error) {
	return &rpc.InfoResponse{Mash: f.mash}, nil
}

func (f *fakeServer) StreamInfo(_ context.Context, in *rpc.StreamInfoParams) (*rpc.StreamInfoResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sd := range f.streams {
		if bytes.Equal(sd.Uuid, in.Uuid) {
			return &rpc.StreamInfoResponse{StreamDescriptor: sd, VersionMajor: 1}, nil
		}
	}
	return &rpc.StreamInfoResponse{Stat: &rpc.Status{Code: 404, Msg: "no such stream"}}, nil
}

func (f *fakeServer) Create(_ context.Context, in *rpc.CreateParams) (*rpc.CreateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.streams = append(f.streams, &rpc.StreamDescriptor{
		Uuid:        in.Uuid,
		Collection:  in.Collection,
		Tags:        in.Tags,
		Annotations: in.Annotations,
	})
	return &rpc.CreateResponse{}, nil
}

func (f *fakeServer) ListCollections(_ context.Context, in *rpc.ListCollectionsParams) (*rpc.ListCollectionsResponse, error) {
	f.mu.Lock()
	all := append([]string(nil), f.collections...)
	f.mu.Unlock()
	sort.Strings(all)

	var matches []string
	for _, c := range all {
		if strings.HasPrefix(c, in.Prefix) && c >= in.StartWith {
			matches = append(matches, c)
		}
	}
	if in.Limit > 0 && uint64(len(matches)) > in.Limit {
		matches = matches[:in.Limit]
	}
	return &rpc.ListCollectionsResponse{Collections: matches}, nil
}

func (f *fakeServer) LookupStreams(in *rpc.LookupStreamsParams, stream rpc.BTrDB_LookupStreamsServer) error {
	f.mu.Lock()
	var matches []*rpc.StreamDescriptor
	for _, sd := range f.streams {
		if in.IsCollectionPrefix {
			if strings.HasPrefix(sd.Collection, in.Collection) {
				matches = append(matches, sd)
			}
		} else if sd.Collection == in.Collection {
			matches = append(matches, sd)
		}
	}
	f.mu.Unlock()

	if err := stream.Send(&rpc.LookupStreamsResponse{}); err != nil {
		return err
	}
	if len(matches) > 0 {
		if err := stream.Send(&rpc.LookupStreamsResponse{StreamDescriptors: matches, VersionMajor: 1}); err != nil {
			return err
		}
	}
	return stream.Send(&rpc.LookupStreamsResponse{VersionMajor: 1})
}

func (f *fakeServer) RawValues(in *rpc.RawValuesParams, stream rpc.BTrDB_RawValuesServer) error {
	f.mu.Lock()
	values := f.rawValues
	f.mu.Unlock()

	if err := stream.Send(&rpc.RawValuesResponse{}); err != nil {
		return err
	}
	if len(values) > 0 {
		if err := stream.Send(&rpc.RawValuesResponse{Values: values, VersionMajor: 1}); err != nil {
			return err
		}
	}
	return stream.Send(&rpc.RawValuesResponse{VersionMajor: 1})
}

// redirectOnceServer wraps fakeServer.RawValues so the first
// call ever made returns a 405 (wrong endpoint), exercising the
// dispatcher's cache-evict-and-retry path; every subsequent call
// behaves normally.
type redirectOnceServer struct {
	*fakeServer
	mu    sync.Mutex
	asked bool
}

func (f *redirectOnceServer) RawValues(in *rpc.RawValuesParams, stream rpc.BTrDB_RawValuesServer) error {
	f.mu.Lock()
	first := !f.asked
	f.asked = true
	f.mu.Unlock()
	if first {
		return stream.Send(&rpc.RawValuesResponse{Stat: &rpc.Status{Code: 405, Msg: "wrong endpoint"}})
	}
	return f.fakeServer.RawValues(in, stream)
}

// startFakeServer registers srv on a fresh in-memory bufconn listener
// and returns a grpc.DialOption dialing it, plus a teardown func.
func startFakeServer(t *testing.T, srv rpc.BTrDBServer) (grpc.DialOption, func()) {
	t.Helper()
	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer()
	rpc.RegisterBTrDBServer(s, srv)
	go func() { _ = s.Serve(lis) }()

	dialer := grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
	return dialer, s.Stop
}

// singleMemberMash builds a Mash with one active member covering the
// entire hash ring, addressed at addr.
func singleMemberMash(addr string) *rpc.Mash {
	return &rpc.Mash{
		Members: []*rpc.Member{
			{Hash: 1, Start: 0, End: 0xFFFFFFFF, GRPCEndpoints: addr, In: true, Up: true},
		},
	}
}

func connectToFake(ctx context.Context, t *testing.T, srv rpc.BTrDBServer, opts ...btrdb.Option) *btrdb.Client {
	t.Helper()
	dialer, stop := startFakeServer(t, srv)
	t.Cleanup(stop)

	allOpts := append([]btrdb.Option{btrdb.WithDialOptions(dialer)}, opts...)
	client, err := btrdb.Connect(ctx, []string{"bufnet"}, allOpts...)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
