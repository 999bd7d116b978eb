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
	"time"

	"google.golang.org/grpc"

	"github.com/btrdb/btrdb-go/internal/conf"
	"github.com/btrdb/btrdb-go/internal/log"
	"github.com/btrdb/btrdb-go/internal/metrics"
)

// Option configures a Client at construction time. Options are applied
// in order over conf.DefaultClientOptions, so later options override
// earlier ones.
type Option func(*conf.ClientOptions)

// WithLogger replaces the default logrus-backed logger with one that
// forwards dial, retry, and cache-eviction diagnostics to l.
func WithLogger(l log.Logger) Option {
	return func(o *conf.ClientOptions) { o.Logger = l }
}

// WithDialTimeout bounds how long a single candidate address may take
// to reach connectivity.Ready before the next candidate is tried.
func WithDialTimeout(d time.Duration) Option {
	return func(o *conf.ClientOptions) { o.DialTimeout = d }
}

// WithConnectRetries bounds how many additional candidate addresses
// the endpoint cache tries for one node identity before giving up.
func WithConnectRetries(n int) Option {
	return func(o *conf.ClientOptions) { o.ConnectRetries = n }
}

// WithMaxRedirects bounds how many times one request may be retried
// after a wrong-endpoint response before the error is surfaced to the
// caller.
func WithMaxRedirects(n int) Option {
	return func(o *conf.ClientOptions) { o.MaxRedirects = n }
}

// WithDialOptions appends grpc.DialOptions to every connection the
// client opens, e.g. for TLS transport credentials or keepalive
// parameters.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *conf.ClientOptions) { o.DialOptions = append(o.DialOptions, opts...) }
}

// WithMetrics instruments the client's RPCs and endpoint cache with m.
// m must already be registered with a prometheus.Registry (see
// metrics.NewMetrics).
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *conf.ClientOptions) { o.Metrics = m }
}
