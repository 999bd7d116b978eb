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

// Package btrdb is a client for a clustered, versioned time-series
// database. A Client holds the cluster's routing map and a pool of
// connections to its member nodes; Stream is a per-UUID facade over
// the data and metadata RPCs a stream supports.
package btrdb

import (
	"context"
	"fmt"
	"sync/atomic"

	"google.golang.org/grpc"

	"github.com/btrdb/btrdb-go/internal/conf"
	"github.com/btrdb/btrdb-go/internal/dispatch"
	"github.com/btrdb/btrdb-go/internal/endpoint"
	"github.com/btrdb/btrdb-go/internal/routing"
	"github.com/btrdb/btrdb-go/internal/rpc"
	"github.com/btrdb/btrdb-go/internal/status"
)

// Client is the cluster-aware entry point: it owns the connection pool
// shared by every Stream obtained through it and the routing map those
// connections are resolved against. A Client is safe for concurrent
// use by multiple goroutines.
type Client struct {
	opts conf.ClientOptions

	cache      *endpoint.Cache
	dispatcher *dispatch.Dispatcher

	routingMap atomic.Pointer[routing.Map]
	closed     atomic.Bool
}

// Current implements dispatch.RoutingSource.
func (c *Client) Current() *routing.Map {
	return c.routingMap.Load()
}

// Connect dials the cluster via bootstrapAddrs, probing each in order
// (per spec: the bootstrap loop adopts the first Mash received) and
// adopting the resulting routing map. At least one bootstrap address
// must be reachable and return a Mash for Connect to succeed.
func Connect(ctx context.Context, bootstrapAddrs []string, opts ...Option) (*Client, error) {
	if len(bootstrapAddrs) == 0 {
		return nil, fmt.Errorf("btrdb: at least one bootstrap address is required")
	}

	o := conf.DefaultClientOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dialOpts := o.DialOptions
	if o.Metrics != nil {
		dialOpts = append(append([]grpc.DialOption{}, o.Metrics.DialOptions()...), dialOpts...)
	}

	cache := endpoint.NewCache(o.Logger, endpoint.CacheConfig{
		DialTimeout:    o.DialTimeout,
		ConnectRetries: o.ConnectRetries,
		Metrics:        o.Metrics,
	}, dialOpts...)

	c := &Client{
		opts:  o,
		cache: cache,
		dispatcher: &dispatch.Dispatcher{
			Cache:        cache,
			MaxRedirects: o.MaxRedirects,
			Logger:       o.Logger,
			Metrics:      o.Metrics,
		},
	}
	c.dispatcher.Routing = c

	var lastErr error
	for _, addr := range bootstrapAddrs {
		ep, err := cache.ConnectConcurrent(ctx, endpoint.NodeIdentity(routing.Murmur3([]byte(addr))), []string{addr})
		if err != nil {
			lastErr = err
			continue
		}
		members, err := ep.Info(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if members == nil {
			lastErr = fmt.Errorf("btrdb: bootstrap address %s returned no routing map", addr)
			continue
		}
		c.routingMap.Store(routing.NewMap(rawMembers(members)))
		return c, nil
	}

	_ = cache.Close()
	if lastErr == nil {
		lastErr = fmt.Errorf("btrdb: no bootstrap address reachable")
	}
	return nil, status.Wrap(status.ErrDisconnected, lastErr.Error())
}

// Close releases every connection the Client has opened. Streams
// obtained from a closed Client will fail their next call.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.routingMap.Store(nil)
	return c.cache.Close()
}

// Stream returns a facade for the stream identified by uuid. No RPC is
// made until the facade's methods are called; metadata is fetched and
// cached lazily per spec's sticky-metadata rules.
func (c *Client) Stream(uuid [UUIDNumBytes]byte) *Stream {
	return &Stream{client: c, uuid: uuid}
}

// Create registers a new stream under uuid with the given collection,
// tags, and annotations.
func (c *Client) Create(ctx context.Context, uuid [UUIDNumBytes]byte, collection string, tags, annotations map[string]string) (*Stream, error) {
	err := c.dispatcher.Call(ctx, uuid[:], func(ep *endpoint.Endpoint) error {
		return ep.Create(ctx, uuid[:], collection, tags, annotations)
	})
	if err != nil {
		return nil, err
	}
	return c.Stream(uuid), nil
}

// ListCollections returns every collection name with the given prefix,
// walking the full result set page by page.
func (c *Client) ListCollections(ctx context.Context, prefix string) ([]string, error) {
	return dispatch.ListCollections(ctx, c.fetchCollectionsPage(prefix), dispatch.SyncPageSize)
}

// ListCollectionsCallback behaves like ListCollections but delivers
// each page to onPage as it arrives instead of accumulating the whole
// result set in memory.
func (c *Client) ListCollectionsCallback(ctx context.Context, prefix string, onPage func(page []string, finished bool) error) error {
	return dispatch.ListCollectionsCallback(ctx, c.fetchCollectionsPage(prefix), dispatch.AsyncPageSize, onPage)
}

func (c *Client) fetchCollectionsPage(prefix string) dispatch.FetchPage {
	return func(ctx context.Context, cursor string, pageSize uint64) ([]string, error) {
		var page []string
		err := c.dispatcher.CallAny(ctx, func(ep *endpoint.Endpoint) error {
			var err error
			page, err = ep.ListCollections(ctx, prefix, cursor, pageSize)
			return err
		})
		return page, err
	}
}

// LookupStreams searches for streams matching collection and the given
// tag/annotation filters, returning every matching descriptor.
func (c *Client) LookupStreams(ctx context.Context, collection string, isPrefix bool, tags, annotations []KeyOptValue) ([]StreamDescriptor, error) {
	var result []StreamDescriptor
	err := c.dispatcher.CallAny(ctx, func(ep *endpoint.Endpoint) error {
		stream, err := ep.LookupStreams(ctx, collection, isPrefix, toEndpointFilters(tags), toEndpointFilters(annotations))
		if err != nil {
			return err
		}
		ch := dispatch.Drive(ctx, stream.Recv, extractLookupStreams)
		values, _, err := dispatch.Collect(ch)
		result = descriptorsFromWire(values)
		return err
	})
	return result, err
}

func extractLookupStreams(resp *rpc.LookupStreamsResponse) ([]*rpc.StreamDescriptor, uint64, *status.Status) {
	return resp.StreamDescriptors, resp.VersionMajor, status.FromResponse(resp)
}

func rawMembers(members []*rpc.Member) []routing.RawMember {
	out := make([]routing.RawMember, 0, len(members))
	for _, m := range members {
		out = append(out, routing.RawMember{
			Hash:          m.Hash,
			Start:         m.Start,
			End:           m.End,
			GRPCEndpoints: m.GRPCEndpoints,
			In:            m.In,
			Up:            m.Up,
		})
	}
	return out
}
