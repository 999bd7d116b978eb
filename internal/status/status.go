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

// Package status carries the BTrDB status taxonomy across the client:
// plain application status codes returned inline in RPC responses, and
// gRPC transport errors surfaced by the channel itself. Both are folded
// into a single Status type so call sites never need to type-switch.
package status

import (
	"fmt"

	"github.com/pkg/errors"
	grpccodes "google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/btrdb/btrdb-go/internal/rpc"
)

// kind distinguishes how a Status came to exist.
type kind int

const (
	kindOK kind = iota
	kindGRPCError
	kindCodedError
)

// Status is the uniform error/success value threaded through every RPC
// wrapper. A nil *Status (or one with kind == kindOK) means success.
type Status struct {
	kind    kind
	code    uint32
	message string
}

// Well-known application status codes. Numbers and text match the wire
// protocol, not anything chosen for this client.
const (
	CodeNoSuchStream     uint32 = 404
	CodeWrongEndpoint    uint32 = 405
	CodeClusterDegraded  uint32 = 419
	CodeWrongArgs        uint32 = 421
)

// Sentinel Status values for conditions the client itself detects,
// mirroring the const Status objects of the C++ driver.
var (
	ErrClusterDegraded = New(CodeClusterDegraded, "cluster is degraded")
	ErrNoSuchStream    = New(CodeNoSuchStream, "no such stream")
	ErrWrongArgs       = New(CodeWrongArgs, "invalid arguments")
	ErrDisconnected    = New(CodeWrongArgs, "client is disconnected")
)

// OK is the zero value success status.
var OK = &Status{kind: kindOK}

// New builds a coded application-level status. code 0 always collapses
// to success, matching the original driver's constructor behavior.
func New(code uint32, message string) *Status {
	if code == 0 {
		return OK
	}
	return &Status{kind: kindCodedError, code: code, message: message}
}

// FromGRPCError wraps a transport-level error returned by a gRPC call.
// A nil err yields OK.
func FromGRPCError(err error) *Status {
	if err == nil {
		return OK
	}
	st, ok := grpcstatus.FromError(err)
	msg := err.Error()
	if ok {
		msg = st.Message()
	}
	return &Status{kind: kindGRPCError, code: uint32(grpccodes.Unknown), message: msg}
}

// IsError reports whether s represents anything other than success. A
// nil Status is treated as OK so callers need not special-case it.
func (s *Status) IsError() bool {
	return s != nil && s.kind != kindOK
}

// Code returns the application status code, or 0 for gRPC-transport and
// OK statuses.
func (s *Status) Code() uint32 {
	if s == nil || s.kind != kindCodedError {
		return 0
	}
	return s.code
}

// Error implements the error interface so a *Status can be returned
// and compared anywhere Go code expects an error.
func (s *Status) Error() string {
	if s == nil {
		return "success"
	}
	switch s.kind {
	case kindOK:
		return "success"
	case kindGRPCError:
		return fmt.Sprintf("grpc: %s", s.message)
	case kindCodedError:
		return fmt.Sprintf("[%d] %s", s.code, s.message)
	default:
		return s.message
	}
}

// responseStatus is satisfied by every RPC response type generated in
// internal/rpc; it lets FromResponse extract a Status without a type
// switch over every response message.
type responseStatus interface {
	HasStat() bool
	GetStat() *rpc.Status
}

// FromResponse extracts the embedded application Status from any RPC
// response, defaulting to OK when the field is absent (which the wire
// format treats as success).
func FromResponse(resp responseStatus) *Status {
	if resp == nil || !resp.HasStat() {
		return OK
	}
	st := resp.GetStat()
	if st == nil {
		return OK
	}
	return New(st.Code, st.Msg)
}

// Wrap attaches additional context to a Status error the way pkg/errors
// wraps any other error, preserving Code()/IsError() on the result via
// errors.Cause.
func Wrap(s *Status, context string) error {
	if !s.IsError() {
		return nil
	}
	return errors.Wrap(s, context)
}

// IsWrongEndpoint reports whether err (a *Status or a wrapped one)
// indicates the contacted node is not responsible for the requested
// stream, i.e. the client's routing cache is stale.
func IsWrongEndpoint(err error) bool {
	s, ok := errors.Cause(err).(*Status)
	return ok && s.Code() == CodeWrongEndpoint
}

// IsClusterDegraded reports whether err indicates the cluster cannot
// currently serve consistent reads.
func IsClusterDegraded(err error) bool {
	s, ok := errors.Cause(err).(*Status)
	return ok && s.Code() == CodeClusterDegraded
}

// Code extracts the application status code from err, or 0 if err is
// nil or not a *Status (wrapped or otherwise).
func Code(err error) uint32 {
	if err == nil {
		return 0
	}
	s, ok := errors.Cause(err).(*Status)
	if !ok {
		return 0
	}
	return s.Code()
}
