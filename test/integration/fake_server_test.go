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

package integration

import (
	"context"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/btrdb/btrdb-go/internal/rpc"
)

const bufSize = 1 << 20

// fakeNode is an in-process stand-in for one cluster member, serving
// rpc.BTrDBServer over a bufconn listener.
type fakeNode struct {
	rpc.UnimplementedBTrDBServer

	mash *rpc.Mash

	mu          sync.Mutex
	collections []string
	createHits  int
	createOK    func(hits int) bool // nil means always OK

	// acceptDelay, when set, is slept before the listener that serves
	// this node hands back a connection, simulating a slow candidate
	// address in the concurrent-connect-probe scenario.
	acceptDelay time.Duration

	rawBatches []rawBatchPlan
}

// rawBatchPlan is one scripted delivery for fakeNode.RawValues: wait
// delay, then send values (the client reads an empty slice as the end
// of the stream).
type rawBatchPlan struct {
	delay  time.Duration
	values []*rpc.RawPoint
}

func (n *fakeNode) Info(context.Context, *rpc.InfoParams) (*rpc.InfoResponse, error) {
	return &rpc.InfoResponse{Mash: n.mash}, nil
}

func (n *fakeNode) Create(context.Context, *rpc.CreateParams) (*rpc.CreateResponse, error) {
	n.mu.Lock()
	n.createHits++
	hits := n.createHits
	ok := n.createOK == nil || n.createOK(hits)
	n.mu.Unlock()

	if !ok {
		return &rpc.CreateResponse{Stat: &rpc.Status{Code: 405, Msg: "wrong endpoint"}}, nil
	}
	return &rpc.CreateResponse{}, nil
}

func (n *fakeNode) ListCollections(_ context.Context, in *rpc.ListCollectionsParams) (*rpc.ListCollectionsResponse, error) {
	n.mu.Lock()
	all := append([]string(nil), n.collections...)
	n.mu.Unlock()
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

func (n *fakeNode) RawValues(_ *rpc.RawValuesParams, stream rpc.BTrDB_RawValuesServer) error {
	if err := stream.Send(&rpc.RawValuesResponse{}); err != nil {
		return err
	}
	for _, plan := range n.rawBatches {
		select {
		case <-time.After(plan.delay):
		case <-stream.Context().Done():
			return stream.Context().Err()
		}
		if err := stream.Send(&rpc.RawValuesResponse{Values: plan.values, VersionMajor: 1}); err != nil {
			return err
		}
	}
	return nil
}

// delayedListener wraps a bufconn.Listener so Accept (and therefore the
// client's dial) does not complete until after delay, simulating a
// cluster member that is slow to become ready.
type delayedListener struct {
	*bufconn.Listener
	delay time.Duration
}

func (d *delayedListener) Accept() (net.Conn, error) {
	time.Sleep(d.delay)
	return d.Listener.Accept()
}

// startFakeNode serves node on a fresh in-memory listener (delayed by
// node.acceptDelay if set) and returns a dialer reaching it plus a
// teardown func.
func startFakeNode(node *fakeNode) (dial func(context.Context, string) (net.Conn, error), stop func()) {
	base := bufconn.Listen(bufSize)
	var lis net.Listener = base
	if node.acceptDelay > 0 {
		lis = &delayedListener{Listener: base, delay: node.acceptDelay}
	}

	s := grpc.NewServer()
	rpc.RegisterBTrDBServer(s, node)
	go func() { _ = s.Serve(lis) }()

	return func(ctx context.Context, _ string) (net.Conn, error) {
		return base.DialContext(ctx)
	}, s.Stop
}

// routingDialer multiplexes a single grpc.WithContextDialer option over
// several fake nodes, routing by the gRPC dial target string so one
// Client can see multiple distinct advertised addresses.
func routingDialer(byAddr map[string]func(context.Context, string) (net.Conn, error)) grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, target string) (net.Conn, error) {
		dial, ok := byAddr[target]
		if !ok {
			return nil, &net.AddrError{Err: "no fake node for address", Addr: target}
		}
		return dial(ctx, target)
	})
}
