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

package endpoint

import (
	"context"
	"crypto/rand"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/btrdb/btrdb-go/internal/log"
	"github.com/btrdb/btrdb-go/internal/metrics"
	"github.com/btrdb/btrdb-go/internal/routing"
)

// NodeIdentity is a cluster-assigned identifier for one logical node,
// stable across the node's re-addressing to a new host/port. It is the
// cache key for connections: two Members with the same NodeIdentity
// share one Endpoint even if their advertised address list changes.
type NodeIdentity uint32

// Cache maps NodeIdentity to a shared *Endpoint, mutated exclusively
// under one mutex. Lookup is O(1); both the read and insert paths hold
// the mutex only briefly, the actual (potentially slow) dial happens
// outside the lock.
type Cache struct {
	mu      sync.Mutex
	entries map[NodeIdentity]*Endpoint

	dialOpts       []grpc.DialOption
	logger         log.Logger
	metrics        *metrics.Metrics
	dialTimeout    time.Duration
	connectRetries int
}

// CacheConfig carries the Cache's tunables and optional Metrics
// instrumentation, kept separate from NewCache's positional
// parameters since both are expected to grow.
type CacheConfig struct {
	// DialTimeout bounds how long a single candidate address may take
	// to reach connectivity.Ready before the next candidate is tried.
	// <= 0 means no bound beyond the caller's context.
	DialTimeout time.Duration

	// ConnectRetries bounds how many additional candidate addresses
	// are tried for one node identity before giving up. < 0 means
	// unbounded; the zero value tries only the first candidate.
	ConnectRetries int

	// Metrics, if non-nil, receives cache-eviction, cache-size, and
	// connect-duration observations.
	Metrics *metrics.Metrics
}

// NewCache constructs an empty Cache. dialOpts are appended to every
// grpc.NewClient call the cache makes.
func NewCache(logger log.Logger, cfg CacheConfig, dialOpts ...grpc.DialOption) *Cache {
	if logger == nil {
		logger = log.Discard
	}
	opts := append([]grpc.DialOption{loggingDialOption(logger), loggingStreamDialOption(logger)}, dialOpts...)
	return &Cache{
		entries:        make(map[NodeIdentity]*Endpoint),
		dialOpts:       opts,
		logger:         logger,
		metrics:        cfg.Metrics,
		dialTimeout:    cfg.DialTimeout,
		connectRetries: cfg.ConnectRetries,
	}
}

// boundAddrs caps addrs to the first candidate plus c.connectRetries
// additional ones, a negative ConnectRetries leaving addrs untouched.
func (c *Cache) boundAddrs(addrs []string) []string {
	if c.connectRetries < 0 {
		return addrs
	}
	limit := c.connectRetries + 1
	if len(addrs) > limit {
		return addrs[:limit]
	}
	return addrs
}

// Get returns the cached Endpoint for id, if any, without dialing.
func (c *Cache) Get(id NodeIdentity) (*Endpoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ep, ok := c.entries[id]
	return ep, ok
}

// Evict removes the cache entry for id, closing its connection. Called
// after a 405 (wrong endpoint) response, since it means the cluster no
// longer considers this node responsible for the hash range the cache
// associated with it — the original driver never evicted on 405 at
// all, which this corrects per the routing map's invalidation rule.
func (c *Cache) Evict(id NodeIdentity) {
	c.mu.Lock()
	ep, ok := c.entries[id]
	if ok {
		delete(c.entries, id)
	}
	c.mu.Unlock()

	if ok {
		_ = ep.Close()
		c.logger.WithPrefix("endpoint-cache").Infof("evicted node %d after wrong-endpoint response", id)
		if c.metrics != nil {
			c.metrics.CacheEvictionsTotal.WithLabelValues(strconv.FormatUint(uint64(id), 10)).Inc()
			c.metrics.CacheSizeGauge.Set(float64(c.Len()))
		}
	}
}

// Any returns a connection to an arbitrary active member of the ring,
// used when no UUID is yet known (e.g. the very first connect before
// any stream has been looked up). It fabricates a random 16-byte UUID
// with crypto/rand and routes it through the normal lookup path, the
// same trick the original anyEndpoint used.
func (c *Cache) Any(ctx context.Context, rm *routing.Map) (*Endpoint, error) {
	var uuid [16]byte
	if _, err := rand.Read(uuid[:]); err != nil {
		return nil, fmt.Errorf("generate random uuid: %w", err)
	}
	return c.ForUUID(ctx, rm, uuid[:])
}

// ForUUID resolves uuid against rm and returns a connected, cached
// Endpoint for the member responsible for it, dialing on a cache miss.
func (c *Cache) ForUUID(ctx context.Context, rm *routing.Map, uuid []byte) (*Endpoint, error) {
	addrs, hash, ok := rm.EndpointFor(uuid)
	if !ok {
		return nil, fmt.Errorf("no member owns this uuid's ring position")
	}
	return c.forMember(ctx, NodeIdentity(hash), addrs)
}

func (c *Cache) forMember(ctx context.Context, id NodeIdentity, addrs []string) (*Endpoint, error) {
	// Warm path: the cached entry for id is returned with no freshness
	// check. A stale entry is only discovered when an RPC
	// against it comes back with a wrong-endpoint status; see
	// internal/dispatch.
	if ep, ok := c.Get(id); ok {
		return ep, nil
	}
	return c.connectSequential(ctx, id, addrs)
}

// connectSequential dials each candidate address in order, the same
// shape as the original connectBlocking loop, and installs the first
// one to become ready into the cache.
func (c *Cache) connectSequential(ctx context.Context, id NodeIdentity, addrs []string) (*Endpoint, error) {
	start := time.Now()
	ep, err := dialAndProbeAny(ctx, c.boundAddrs(addrs), c.dialTimeout, c.dialOpts...)
	if c.metrics != nil {
		c.metrics.ConnectDurationSummary.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, err
	}
	return c.install(id, ep), nil
}

// ConnectConcurrent races a dial against every candidate address at
// once and installs whichever succeeds first, closing every other
// connection that finishes afterward. This realizes spec.md §4.3's
// cold-connect fan-out: one goroutine per address under an
// errgroup.Group, a shared delivered flag ensuring exactly one winner,
// later successes discarded rather than surfaced or leaked.
func (c *Cache) ConnectConcurrent(ctx context.Context, id NodeIdentity, addrs []string) (*Endpoint, error) {
	if ep, ok := c.Get(id); ok {
		return ep, nil
	}
	addrs = c.boundAddrs(addrs)

	var delivered atomic.Bool
	winner := make(chan *Endpoint, 1)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for _, addr := range addrs {
		addr := addr
		g.Go(func() error {
			ep, err := dialAndProbe(gctx, addr, c.dialTimeout, c.dialOpts...)
			if err != nil {
				return nil // one failed candidate does not fail the group
			}
			if delivered.CompareAndSwap(false, true) {
				winner <- ep
				return nil
			}
			// Another goroutine already delivered; this connection is
			// surplus and must not leak.
			_ = ep.Close()
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	observe := func() {
		if c.metrics != nil {
			c.metrics.ConnectDurationSummary.Observe(time.Since(start).Seconds())
		}
	}

	select {
	case ep := <-winner:
		observe()
		return c.install(id, ep), nil
	case err := <-done:
		observe()
		select {
		case ep := <-winner:
			return c.install(id, ep), nil
		default:
		}
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("no candidate address for node %d became ready", id)
	}
}

func (c *Cache) install(id NodeIdentity, ep *Endpoint) *Endpoint {
	c.mu.Lock()
	if existing, ok := c.entries[id]; ok {
		// Lost a race with a concurrent installer for the same id;
		// keep the entry already there and close the surplus.
		c.mu.Unlock()
		_ = ep.Close()
		return existing
	}
	c.entries[id] = ep
	size := len(c.entries)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.CacheSizeGauge.Set(float64(size))
	}
	return ep
}

// Len reports the number of live cache entries, exposed for metrics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close closes every cached connection. Intended for Client.Close.
func (c *Cache) Close() error {
	c.mu.Lock()
	var firstErr error
	for id, ep := range c.entries {
		if err := ep.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.entries, id)
	}
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.CacheSizeGauge.Set(0)
	}
	return firstErr
}
