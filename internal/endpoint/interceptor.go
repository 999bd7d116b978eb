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
	"time"

	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"google.golang.org/grpc"

	"github.com/btrdb/btrdb-go/internal/log"
)

// loggingDialOption chains a unary and stream interceptor that log
// every RPC attempt's method, duration, and outcome through logger.
// go-grpc-middleware's Chain helpers are used even though this cache
// only ever installs one interceptor of each kind, so a second one
// (tracing, auth) slots in later without touching call sites.
func loggingDialOption(logger log.Logger) grpc.DialOption {
	return grpc.WithChainUnaryInterceptor(grpcmiddleware.ChainUnaryClient(unaryLogInterceptor(logger)))
}

func loggingStreamDialOption(logger log.Logger) grpc.DialOption {
	return grpc.WithChainStreamInterceptor(grpcmiddleware.ChainStreamClient(streamLogInterceptor(logger)))
}

func unaryLogInterceptor(logger log.Logger) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		logger.V(2).Infof("%s (%s): %v", method, time.Since(start), err)
		return err
	}
}

func streamLogInterceptor(logger log.Logger) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		start := time.Now()
		cs, err := streamer(ctx, desc, cc, method, opts...)
		logger.V(2).Infof("%s opened (%s): %v", method, time.Since(start), err)
		return cs, err
	}
}
