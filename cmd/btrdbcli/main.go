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

// Command btrdbcli is a thin demonstration client for a BTrDB cluster,
// in the spirit of cmd/contourcli: a handful of subcommands over one
// gRPC connection, with global flags only for the bootstrap endpoint
// and an optional metrics listener.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	_ "go.uber.org/automaxprocs"

	"github.com/btrdb/btrdb-go"
	"github.com/btrdb/btrdb-go/internal/metrics"
)

func main() {
	app := kingpin.New("btrdbcli", "A CLI client for a BTrDB cluster.")
	endpoint := app.Flag("endpoint", "cluster bootstrap host:port.").Default("127.0.0.1:4410").String()
	metricsAddr := app.Flag("metrics-addr", "address to serve Prometheus metrics on; empty disables it.").Default("").String()

	listCollections := app.Command("list-collections", "list collections under a prefix.")
	listCollectionsPrefix := listCollections.Arg("prefix", "collection path prefix.").Default("").String()

	lookup := app.Command("lookup", "find streams in a collection.")
	lookupCollection := lookup.Arg("collection", "collection path.").Required().String()
	lookupPrefix := lookup.Flag("prefix", "treat collection as a prefix rather than an exact match.").Bool()

	rawValues := app.Command("raw-values", "print raw points in a time range.")
	rawValuesUUID := rawValues.Arg("uuid", "stream UUID.").Required().String()
	rawValuesStart := rawValues.Arg("start", "range start, nanoseconds since epoch.").Required().Int64()
	rawValuesEnd := rawValues.Arg("end", "range end, nanoseconds since epoch.").Required().Int64()

	create := app.Command("create", "register a new stream.")
	createUUID := create.Arg("uuid", "stream UUID.").Required().String()
	createCollection := create.Arg("collection", "collection path.").Required().String()
	createTags := create.Flag("tag", "tag in key=value form, may be repeated.").Strings()

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	clientMetrics := metrics.NewMetrics(registry)
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(registry))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
	}

	client, err := btrdb.Connect(ctx, []string{*endpoint}, btrdb.WithMetrics(clientMetrics))
	check(err)
	defer client.Close()

	switch cmd {
	case listCollections.FullCommand():
		cols, err := client.ListCollections(ctx, *listCollectionsPrefix)
		check(err)
		for _, c := range cols {
			fmt.Println(c)
		}

	case lookup.FullCommand():
		streams, err := client.LookupStreams(ctx, *lookupCollection, *lookupPrefix, nil, nil)
		check(err)
		for _, s := range streams {
			fmt.Printf("%s\t%s\t%v\n", uuid.UUID(s.UUID), s.Collection, s.Tags)
		}

	case rawValues.FullCommand():
		u := parseUUID(*rawValuesUUID)
		stream := client.Stream(u)
		values, version, err := stream.RawValues(ctx, *rawValuesStart, *rawValuesEnd, 0)
		check(err)
		for _, v := range values {
			fmt.Printf("%d\t%g\n", v.Time, v.Value)
		}
		fmt.Fprintf(os.Stderr, "version %d\n", version)

	case create.FullCommand():
		u := parseUUID(*createUUID)
		tags := parseKeyValues(*createTags)
		_, err := client.Create(ctx, u, *createCollection, tags, nil)
		check(err)

	default:
		app.Usage(os.Args[1:])
		os.Exit(2)
	}
}

func parseUUID(s string) [btrdb.UUIDNumBytes]byte {
	u, err := uuid.Parse(s)
	check(err)
	return [btrdb.UUIDNumBytes]byte(u)
}

func parseKeyValues(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			check(fmt.Errorf("invalid --tag %q, expected key=value", p))
		}
		out[k] = v
	}
	return out
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
