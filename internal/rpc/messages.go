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

// Package rpc holds the wire messages for the BTrDB gRPC service. It is
// hand-maintained in place of a protoc run (no .proto compiler is available
// in this build), but mirrors the shape protoc-gen-go would emit: plain
// structs satisfying the classic proto.Message trio (Reset/String/ProtoMessage).
package rpc

import "fmt"

// Status is the application-level status every response carries.
type Status struct {
	Code uint32
	Msg  string
}

func (*Status) Reset()         {}
func (*Status) ProtoMessage()  {}
func (s *Status) String() string {
	return fmt.Sprintf("Status{Code: %d, Msg: %q}", s.Code, s.Msg)
}

// KeyValue is a single tag or annotation entry.
type KeyValue struct {
	Key   string
	Value string
}

func (*KeyValue) Reset()        {}
func (*KeyValue) ProtoMessage()  {}
func (k *KeyValue) String() string { return fmt.Sprintf("%s=%s", k.Key, k.Value) }

// OptValue distinguishes an absent value from an empty-string value in
// LookupStreams' tag/annotation filters.
type OptValue struct {
	Value string
}

func (*OptValue) Reset()        {}
func (*OptValue) ProtoMessage()  {}
func (v *OptValue) String() string { return v.Value }

// KeyOptValue is a filter entry: a key plus an optional value to match.
type KeyOptValue struct {
	Key string
	Val *OptValue // nil means "any value", i.e. filter on key presence only
}

func (*KeyOptValue) Reset()       {}
func (*KeyOptValue) ProtoMessage() {}
func (k *KeyOptValue) String() string {
	if k.Val == nil {
		return k.Key
	}
	return fmt.Sprintf("%s=%s", k.Key, k.Val.Value)
}

// StreamDescriptor carries everything the client caches about a stream.
type StreamDescriptor struct {
	Uuid              []byte
	Collection        string
	Tags              []*KeyValue
	Annotations       []*KeyValue
	AnnotationVersion uint64
}

func (*StreamDescriptor) Reset()       {}
func (*StreamDescriptor) ProtoMessage() {}
func (d *StreamDescriptor) String() string {
	return fmt.Sprintf("StreamDescriptor{Collection: %q}", d.Collection)
}

// RawPoint is one (time, value) sample on the wire.
type RawPoint struct {
	Time  int64
	Value float64
}

func (*RawPoint) Reset()       {}
func (*RawPoint) ProtoMessage() {}
func (p *RawPoint) String() string {
	return fmt.Sprintf("RawPoint{%d, %f}", p.Time, p.Value)
}

// StatPoint is one statistical window on the wire.
type StatPoint struct {
	Time  int64
	Min   float64
	Mean  float64
	Max   float64
	Count uint64
}

func (*StatPoint) Reset()       {}
func (*StatPoint) ProtoMessage() {}
func (p *StatPoint) String() string {
	return fmt.Sprintf("StatPoint{%d, min=%f, mean=%f, max=%f, count=%d}", p.Time, p.Min, p.Mean, p.Max, p.Count)
}

// ChangedRange is one [Start, End) interval on the wire.
type ChangedRange struct {
	Start int64
	End   int64
}

func (*ChangedRange) Reset()       {}
func (*ChangedRange) ProtoMessage() {}
func (r *ChangedRange) String() string {
	return fmt.Sprintf("ChangedRange{%d, %d}", r.Start, r.End)
}

// Member is one routing-map entry.
type Member struct {
	Hash          uint32 // node identity
	Start         uint32
	End           uint32
	GRPCEndpoints string // semicolon-delimited address list
	In            bool
	Up            bool
}

func (*Member) Reset()       {}
func (*Member) ProtoMessage() {}
func (m *Member) String() string {
	return fmt.Sprintf("Member{hash=%d, [%d,%d)}", m.Hash, m.Start, m.End)
}

// Mash ("membership and sharding") is the routing-map snapshot.
type Mash struct {
	Members []*Member
}

func (*Mash) Reset()       {}
func (*Mash) ProtoMessage() {}
func (m *Mash) String() string { return fmt.Sprintf("Mash{%d members}", len(m.Members)) }

// --- request/response pairs, one per RPC ---

type InfoParams struct{}

func (*InfoParams) Reset()       {}
func (*InfoParams) ProtoMessage() {}
func (*InfoParams) String() string { return "InfoParams{}" }

type InfoResponse struct {
	Stat *Status
	Mash *Mash // present only on the bootstrap probe that wins
}

func (*InfoResponse) Reset()       {}
func (*InfoResponse) ProtoMessage() {}
func (r *InfoResponse) String() string { return "InfoResponse{}" }
func (r *InfoResponse) HasStat() bool  { return r.Stat != nil }
func (r *InfoResponse) GetStat() *Status { return r.Stat }
func (r *InfoResponse) HasMash() bool  { return r.Mash != nil }

type StreamInfoParams struct {
	Uuid           []byte
	OmitVersion    bool
	OmitDescriptor bool
}

func (*StreamInfoParams) Reset()       {}
func (*StreamInfoParams) ProtoMessage() {}
func (*StreamInfoParams) String() string { return "StreamInfoParams{}" }

type StreamInfoResponse struct {
	Stat             *Status
	VersionMajor     uint64
	StreamDescriptor *StreamDescriptor
}

func (*StreamInfoResponse) Reset()       {}
func (*StreamInfoResponse) ProtoMessage() {}
func (r *StreamInfoResponse) String() string { return "StreamInfoResponse{}" }
func (r *StreamInfoResponse) HasStat() bool  { return r.Stat != nil }
func (r *StreamInfoResponse) GetStat() *Status { return r.Stat }

type CreateParams struct {
	Uuid        []byte
	Collection  string
	Tags        []*KeyValue
	Annotations []*KeyValue
}

func (*CreateParams) Reset()       {}
func (*CreateParams) ProtoMessage() {}
func (*CreateParams) String() string { return "CreateParams{}" }

type CreateResponse struct {
	Stat *Status
}

func (*CreateResponse) Reset()       {}
func (*CreateResponse) ProtoMessage() {}
func (r *CreateResponse) String() string { return "CreateResponse{}" }
func (r *CreateResponse) HasStat() bool  { return r.Stat != nil }
func (r *CreateResponse) GetStat() *Status { return r.Stat }

type InsertParams struct {
	Uuid   []byte
	Sync   bool
	Values []*RawPoint
}

func (*InsertParams) Reset()       {}
func (*InsertParams) ProtoMessage() {}
func (*InsertParams) String() string { return "InsertParams{}" }

type InsertResponse struct {
	Stat         *Status
	VersionMajor uint64
}

func (*InsertResponse) Reset()       {}
func (*InsertResponse) ProtoMessage() {}
func (r *InsertResponse) String() string { return "InsertResponse{}" }
func (r *InsertResponse) HasStat() bool  { return r.Stat != nil }
func (r *InsertResponse) GetStat() *Status { return r.Stat }

type DeleteParams struct {
	Uuid  []byte
	Start int64
	End   int64
}

func (*DeleteParams) Reset()       {}
func (*DeleteParams) ProtoMessage() {}
func (*DeleteParams) String() string { return "DeleteParams{}" }

type DeleteResponse struct {
	Stat         *Status
	VersionMajor uint64
}

func (*DeleteResponse) Reset()       {}
func (*DeleteResponse) ProtoMessage() {}
func (r *DeleteResponse) String() string { return "DeleteResponse{}" }
func (r *DeleteResponse) HasStat() bool  { return r.Stat != nil }
func (r *DeleteResponse) GetStat() *Status { return r.Stat }

type ObliterateParams struct {
	Uuid []byte
}

func (*ObliterateParams) Reset()       {}
func (*ObliterateParams) ProtoMessage() {}
func (*ObliterateParams) String() string { return "ObliterateParams{}" }

type ObliterateResponse struct {
	Stat *Status
}

func (*ObliterateResponse) Reset()       {}
func (*ObliterateResponse) ProtoMessage() {}
func (r *ObliterateResponse) String() string { return "ObliterateResponse{}" }
func (r *ObliterateResponse) HasStat() bool  { return r.Stat != nil }
func (r *ObliterateResponse) GetStat() *Status { return r.Stat }

type ListCollectionsParams struct {
	Prefix    string
	StartWith string
	Limit     uint64
}

func (*ListCollectionsParams) Reset()       {}
func (*ListCollectionsParams) ProtoMessage() {}
func (*ListCollectionsParams) String() string { return "ListCollectionsParams{}" }

type ListCollectionsResponse struct {
	Stat        *Status
	Collections []string
}

func (*ListCollectionsResponse) Reset()       {}
func (*ListCollectionsResponse) ProtoMessage() {}
func (r *ListCollectionsResponse) String() string { return "ListCollectionsResponse{}" }
func (r *ListCollectionsResponse) HasStat() bool  { return r.Stat != nil }
func (r *ListCollectionsResponse) GetStat() *Status { return r.Stat }

type LookupStreamsParams struct {
	Collection         string
	IsCollectionPrefix bool
	Tags               []*KeyOptValue
	Annotations        []*KeyOptValue
}

func (*LookupStreamsParams) Reset()       {}
func (*LookupStreamsParams) ProtoMessage() {}
func (*LookupStreamsParams) String() string { return "LookupStreamsParams{}" }

type LookupStreamsResponse struct {
	Stat             *Status
	VersionMajor     uint64
	StreamDescriptors []*StreamDescriptor
}

func (*LookupStreamsResponse) Reset()       {}
func (*LookupStreamsResponse) ProtoMessage() {}
func (r *LookupStreamsResponse) String() string { return "LookupStreamsResponse{}" }
func (r *LookupStreamsResponse) HasStat() bool  { return r.Stat != nil }
func (r *LookupStreamsResponse) GetStat() *Status { return r.Stat }

type RawValuesParams struct {
	Uuid         []byte
	Start        int64
	End          int64
	VersionMajor uint64
}

func (*RawValuesParams) Reset()       {}
func (*RawValuesParams) ProtoMessage() {}
func (*RawValuesParams) String() string { return "RawValuesParams{}" }

type RawValuesResponse struct {
	Stat         *Status
	VersionMajor uint64
	Values       []*RawPoint
}

func (*RawValuesResponse) Reset()       {}
func (*RawValuesResponse) ProtoMessage() {}
func (r *RawValuesResponse) String() string { return "RawValuesResponse{}" }
func (r *RawValuesResponse) HasStat() bool  { return r.Stat != nil }
func (r *RawValuesResponse) GetStat() *Status { return r.Stat }

type AlignedWindowsParams struct {
	Uuid         []byte
	Start        int64
	End          int64
	PointWidth   uint32
	VersionMajor uint64
}

func (*AlignedWindowsParams) Reset()       {}
func (*AlignedWindowsParams) ProtoMessage() {}
func (*AlignedWindowsParams) String() string { return "AlignedWindowsParams{}" }

type AlignedWindowsResponse struct {
	Stat         *Status
	VersionMajor uint64
	Values       []*StatPoint
}

func (*AlignedWindowsResponse) Reset()       {}
func (*AlignedWindowsResponse) ProtoMessage() {}
func (r *AlignedWindowsResponse) String() string { return "AlignedWindowsResponse{}" }
func (r *AlignedWindowsResponse) HasStat() bool  { return r.Stat != nil }
func (r *AlignedWindowsResponse) GetStat() *Status { return r.Stat }

type WindowsParams struct {
	Uuid         []byte
	Start        int64
	End          int64
	Width        uint64
	Depth        uint32
	VersionMajor uint64
}

func (*WindowsParams) Reset()       {}
func (*WindowsParams) ProtoMessage() {}
func (*WindowsParams) String() string { return "WindowsParams{}" }

type WindowsResponse struct {
	Stat         *Status
	VersionMajor uint64
	Values       []*StatPoint
}

func (*WindowsResponse) Reset()       {}
func (*WindowsResponse) ProtoMessage() {}
func (r *WindowsResponse) String() string { return "WindowsResponse{}" }
func (r *WindowsResponse) HasStat() bool  { return r.Stat != nil }
func (r *WindowsResponse) GetStat() *Status { return r.Stat }

type ChangesParams struct {
	Uuid       []byte
	FromMajor  uint64
	ToMajor    uint64
	Resolution uint32
}

func (*ChangesParams) Reset()       {}
func (*ChangesParams) ProtoMessage() {}
func (*ChangesParams) String() string { return "ChangesParams{}" }

type ChangesResponse struct {
	Stat         *Status
	VersionMajor uint64
	Values       []*ChangedRange
}

func (*ChangesResponse) Reset()       {}
func (*ChangesResponse) ProtoMessage() {}
func (r *ChangesResponse) String() string { return "ChangesResponse{}" }
func (r *ChangesResponse) HasStat() bool  { return r.Stat != nil }
func (r *ChangesResponse) GetStat() *Status { return r.Stat }

type NearestParams struct {
	Uuid         []byte
	Time         int64
	VersionMajor uint64
	Backward     bool
}

func (*NearestParams) Reset()       {}
func (*NearestParams) ProtoMessage() {}
func (*NearestParams) String() string { return "NearestParams{}" }

type NearestResponse struct {
	Stat         *Status
	VersionMajor uint64
	Value        *RawPoint
}

func (*NearestResponse) Reset()       {}
func (*NearestResponse) ProtoMessage() {}
func (r *NearestResponse) String() string { return "NearestResponse{}" }
func (r *NearestResponse) HasStat() bool  { return r.Stat != nil }
func (r *NearestResponse) GetStat() *Status { return r.Stat }
