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
	"github.com/btrdb/btrdb-go/internal/status"
)

// Sentinel errors a caller can compare against with errors.Is, mirroring
// the C++ driver's named Status constants.
var (
	// ErrNoSuchStream is returned when a stream UUID has no registered
	// descriptor on the cluster.
	ErrNoSuchStream = status.ErrNoSuchStream

	// ErrClusterDegraded is returned when the cluster cannot currently
	// guarantee consistent reads/writes.
	ErrClusterDegraded = status.ErrClusterDegraded

	// ErrWrongArgs is returned when a call's arguments fail server-side
	// validation.
	ErrWrongArgs = status.ErrWrongArgs

	// ErrDisconnected is returned when a call is made against a Client
	// that has already had Close called on it, and by Connect when no
	// bootstrap address yields a routing map.
	ErrDisconnected = status.ErrDisconnected
)

// IsNoSuchStream reports whether err indicates the requested stream
// does not exist.
func IsNoSuchStream(err error) bool {
	return status.Code(err) == status.CodeNoSuchStream
}

// IsClusterDegraded reports whether err indicates the cluster cannot
// currently serve consistent requests.
func IsClusterDegraded(err error) bool {
	return status.IsClusterDegraded(err)
}
