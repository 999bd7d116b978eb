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

// Package conf holds the client's configuration struct. It is
// populated by functional options at the btrdb package boundary and
// then passed down unchanged, a flat struct threaded through
// constructors rather than an options object each layer re-derives.
package conf

import (
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/btrdb/btrdb-go/internal/log"
	"github.com/btrdb/btrdb-go/internal/log/logrusadapter"
	"github.com/btrdb/btrdb-go/internal/metrics"
)

// ClientOptions carries every tunable of the dispatcher and endpoint
// cache. Its defaults come from DefaultClientOptions, never from zero
// values, so a Client built with no options behaves sanely.
type ClientOptions struct {
	// DialTimeout bounds how long a single node dial/probe may take
	// before the cache tries the next candidate address.
	DialTimeout time.Duration

	// ConnectRetries bounds how many additional candidate addresses the
	// cache will try for one node identity before giving up.
	ConnectRetries int

	// MaxRedirects bounds how many times a single request may be
	// retried after a 405 (wrong endpoint) response before the
	// dispatcher surfaces the error to the caller.
	MaxRedirects int

	// Logger receives connection lifecycle and retry diagnostics.
	Logger log.Logger

	// DialOptions are appended to every grpc.Dial call, letting callers
	// add TLS credentials, interceptors, or keepalive parameters.
	DialOptions []grpc.DialOption

	// Metrics, if non-nil, instruments every RPC and the endpoint cache
	// with the counters and summaries it carries.
	Metrics *metrics.Metrics
}

// DefaultClientOptions returns the baseline configuration every Client
// starts from before functional options are applied.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		DialTimeout:    5 * time.Second,
		ConnectRetries: 3,
		MaxRedirects:   5,
		Logger:         logrusadapter.New(logrus.StandardLogger()),
	}
}
