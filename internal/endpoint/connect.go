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
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
)

// dialAndProbe dials addr and blocks until the channel reaches
// connectivity.Ready, ctx is done, or timeout elapses (whichever comes
// first), returning a usable *Endpoint only in the Ready case. timeout
// <= 0 means no per-candidate bound beyond ctx itself.
//
// The original driver's connectBlocking had a fallthrough bug: its
// switch over GRPC_CHANNEL_IDLE/CONNECTING/READY returned success for
// all three, including IDLE and CONNECTING, neither of which means the
// channel can actually carry a request yet. This realization waits
// specifically for Ready, using GetState(true)/WaitForStateChange to
// drive the channel forward instead of grpc.WithBlock(), which has no
// way to bound the wait with an arbitrary caller deadline once dialing
// has started.
func dialAndProbe(ctx context.Context, addr string, timeout time.Duration, opts ...grpc.DialOption) (*Endpoint, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	// passthrough hands addr to the dialer unchanged; NewClient's default
	// dns resolver would instead try to resolve it before dialing.
	conn, err := grpc.NewClient("passthrough:///"+addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	conn.Connect()

	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return New(conn, addr), nil
		}
		if state == connectivity.Shutdown {
			_ = conn.Close()
			return nil, fmt.Errorf("dial %s: channel shut down before becoming ready", addr)
		}
		if !conn.WaitForStateChange(ctx, state) {
			_ = conn.Close()
			return nil, ctx.Err()
		}
	}
}

// dialAndProbeAny tries each address in order, returning the first
// Endpoint that reaches Ready before ctx is done. This is the
// sequential realization of connectBlocking iterating a member's
// endpoint list; internal/endpoint.Cache's concurrent variant races
// all addresses at once instead.
func dialAndProbeAny(ctx context.Context, addrs []string, timeout time.Duration, opts ...grpc.DialOption) (*Endpoint, error) {
	var lastErr error
	for _, addr := range addrs {
		ep, err := dialAndProbe(ctx, addr, timeout, opts...)
		if err == nil {
			return ep, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no endpoints to dial")
	}
	return nil, lastErr
}
