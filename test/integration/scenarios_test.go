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
	"math"
	"net"
	"time"

	"google.golang.org/grpc"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/btrdb/btrdb-go"
	"github.com/btrdb/btrdb-go/internal/endpoint"
	"github.com/btrdb/btrdb-go/internal/log"
	"github.com/btrdb/btrdb-go/internal/rpc"
)

// fullRangeMember covers the entire ring behind one advertised address,
// the shape every single-node scenario below bootstraps from.
func fullRangeMember(addr string) *rpc.Member {
	return &rpc.Member{Hash: 1, Start: 0, End: math.MaxUint32, GRPCEndpoints: addr, In: true, Up: true}
}

func uuidWithLastByte(b byte) [btrdb.UUIDNumBytes]byte {
	var u [btrdb.UUIDNumBytes]byte
	u[len(u)-1] = b
	return u
}

var _ = Describe("cold connect", func() {
	It("lists exactly the collections the bootstrap node holds", func() {
		node := &fakeNode{collections: []string{"a", "b", "c"}}
		node.mash = &rpc.Mash{Members: []*rpc.Member{fullRangeMember("h1:4410")}}
		dial, stop := startFakeNode(node)
		defer stop()

		ctx := context.Background()
		client, err := btrdb.Connect(ctx, []string{"h1:4410"},
			btrdb.WithDialOptions(grpc.WithContextDialer(dial)))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		var pages [][]string
		finishedCount := 0
		err = client.ListCollectionsCallback(ctx, "", func(page []string, finished bool) error {
			pages = append(pages, page)
			if finished {
				finishedCount++
			}
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(finishedCount).To(Equal(1))

		var all []string
		for _, p := range pages {
			all = append(all, p...)
		}
		Expect(all).To(ConsistOf("a", "b", "c"))
	})
})

var _ = Describe("wrong-endpoint redirect", func() {
	It("retries transparently and the caller observes one OK status", func() {
		node := &fakeNode{
			createOK: func(hits int) bool { return hits != 1 }, // first attempt is a 405
		}
		node.mash = &rpc.Mash{Members: []*rpc.Member{fullRangeMember("h1:4410")}}
		dial, stop := startFakeNode(node)
		defer stop()

		ctx := context.Background()
		client, err := btrdb.Connect(ctx, []string{"h1:4410"},
			btrdb.WithDialOptions(grpc.WithContextDialer(dial)))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		uuid := uuidWithLastByte(1)
		stream, err := client.Create(ctx, uuid, "a/collection", nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(stream).NotTo(BeNil())

		node.mu.Lock()
		hits := node.createHits
		node.mu.Unlock()
		Expect(hits).To(Equal(2), "one 405 then one successful attempt")
	})
})

var _ = Describe("streaming cancel via deadline", func() {
	It("delivers the first batch then one terminal error, nothing after", func() {
		node := &fakeNode{
			rawBatches: []rawBatchPlan{
				{delay: 50 * time.Millisecond, values: []*rpc.RawPoint{{Time: 1, Value: 1}}},
				{delay: 300 * time.Millisecond, values: []*rpc.RawPoint{{Time: 2, Value: 2}}},
			},
		}
		node.mash = &rpc.Mash{Members: []*rpc.Member{fullRangeMember("h1:4410")}}
		dial, stop := startFakeNode(node)
		defer stop()

		bg := context.Background()
		client, err := btrdb.Connect(bg, []string{"h1:4410"},
			btrdb.WithDialOptions(grpc.WithContextDialer(dial)))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		ctx, cancel := context.WithTimeout(bg, 100*time.Millisecond)
		defer cancel()

		stream := client.Stream(uuidWithLastByte(2))
		ch := stream.RawValuesAsync(ctx, 0, 100, 0)

		first, ok := <-ch
		Expect(ok).To(BeTrue())
		Expect(first.Err).NotTo(HaveOccurred())
		Expect(first.Values).To(HaveLen(1))

		second, ok := <-ch
		Expect(ok).To(BeTrue())
		Expect(second.Err).To(HaveOccurred())

		_, ok = <-ch
		Expect(ok).To(BeFalse(), "no deliveries after the terminal error")
	})
})

var _ = Describe("paginated listing boundary", func() {
	DescribeTable("walks every page to completion regardless of the exact-multiple boundary",
		func(count int) {
			collections := make([]string, count)
			for i := range collections {
				collections[i] = string(rune('a' + i%26))
				if i >= 26 {
					collections[i] = collections[i] + string(rune('a'+i/26))
				}
			}
			node := &fakeNode{collections: collections}
			node.mash = &rpc.Mash{Members: []*rpc.Member{fullRangeMember("h1:4410")}}
			dial, stop := startFakeNode(node)
			defer stop()

			ctx := context.Background()
			client, err := btrdb.Connect(ctx, []string{"h1:4410"},
				btrdb.WithDialOptions(grpc.WithContextDialer(dial)))
			Expect(err).NotTo(HaveOccurred())
			defer client.Close()

			got, err := client.ListCollections(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(count))
		},
		Entry("exact multiple of the page size", 20),
		Entry("not a multiple of the page size", 25),
	)
})

var _ = Describe("concurrent connect probe", func() {
	It("installs only the first candidate to become ready", func() {
		fast := &fakeNode{}
		slow := &fakeNode{acceptDelay: 50 * time.Millisecond}

		fastDial, fastStop := startFakeNode(fast)
		defer fastStop()
		slowDial, slowStop := startFakeNode(slow)
		defer slowStop()

		dialer := routingDialer(map[string]func(context.Context, string) (net.Conn, error){
			"fast-addr": fastDial,
			"slow-addr": slowDial,
		})
		cache := endpoint.NewCache(log.Discard, endpoint.CacheConfig{ConnectRetries: 1}, dialer)

		ep, err := cache.ConnectConcurrent(context.Background(), endpoint.NodeIdentity(1), []string{"slow-addr", "fast-addr"})
		Expect(err).NotTo(HaveOccurred())
		Expect(ep.Addr()).To(Equal("fast-addr"))
		Expect(cache.Len()).To(Equal(1))
	})
})

var _ = Describe("degraded cluster", func() {
	It("rejects a uuid hashing into a routing gap without issuing any RPC", func() {
		node := &fakeNode{}
		// Start == End: Member.active() excludes this member from every
		// lookup, so the whole ring is one big gap.
		node.mash = &rpc.Mash{Members: []*rpc.Member{
			{Hash: 1, Start: 0, End: 0, GRPCEndpoints: "h1:4410", In: true, Up: true},
		}}
		dial, stop := startFakeNode(node)
		defer stop()

		ctx := context.Background()
		client, err := btrdb.Connect(ctx, []string{"h1:4410"},
			btrdb.WithDialOptions(grpc.WithContextDialer(dial)))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		_, err = client.Create(ctx, uuidWithLastByte(9), "a/collection", nil, nil)
		Expect(err).To(HaveOccurred())
		Expect(btrdb.IsClusterDegraded(err)).To(BeTrue())

		node.mu.Lock()
		hits := node.createHits
		node.mu.Unlock()
		Expect(hits).To(Equal(0), "no RPC should reach the node")
	})
})
