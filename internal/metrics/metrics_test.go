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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, r *prometheus.Registry, name string) []*io_prometheus_client.Metric {
	t.Helper()
	mfs, err := r.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf.Metric
		}
	}
	return nil
}

func TestNewMetricsRegistersEverything(t *testing.T) {
	r := prometheus.NewRegistry()
	m := NewMetrics(r)

	mfs, err := r.Gather()
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{CacheSizeGauge, ConnectDurationSummary} {
		if !names[want] {
			t.Errorf("expected %s to be registered, gathered: %v", want, names)
		}
	}

	m.RedirectsTotal.Inc()
	if got := gather(t, r, RedirectsTotal); len(got) != 1 {
		t.Fatalf("expected one RedirectsTotal series after Inc, got %d", len(got))
	}
}

func TestCacheSizeGaugeTracksSetValue(t *testing.T) {
	r := prometheus.NewRegistry()
	m := NewMetrics(r)

	m.CacheSizeGauge.Set(3)
	got := gather(t, r, CacheSizeGauge)
	if len(got) != 1 {
		t.Fatalf("expected one CacheSizeGauge series, got %d", len(got))
	}
	if got[0].GetGauge().GetValue() != 3 {
		t.Fatalf("want gauge value 3, got %v", got[0].GetGauge().GetValue())
	}
}

func TestCacheEvictionsTotalLabeledByNode(t *testing.T) {
	r := prometheus.NewRegistry()
	m := NewMetrics(r)

	m.CacheEvictionsTotal.WithLabelValues("1234").Inc()
	m.CacheEvictionsTotal.WithLabelValues("1234").Inc()
	m.CacheEvictionsTotal.WithLabelValues("5678").Inc()

	got := gather(t, r, CacheEvictionsTotal)
	if len(got) != 2 {
		t.Fatalf("expected two distinct node label series, got %d", len(got))
	}
}

func TestDialOptionsInstrumentsConnection(t *testing.T) {
	r := prometheus.NewRegistry()
	m := NewMetrics(r)

	opts := m.DialOptions()
	if len(opts) != 2 {
		t.Fatalf("expected unary and stream client interceptor dial options, got %d", len(opts))
	}
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	r := prometheus.NewRegistry()
	NewMetrics(r)

	h := Handler(r)
	if h == nil {
		t.Fatal("Handler returned nil")
	}
}
