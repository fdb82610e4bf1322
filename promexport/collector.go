/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package promexport exposes intern store statistics to Prometheus.
package promexport

import (
	"reflect"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/intern/apis"
)

// Source lists the stores to export. *intern.Pool implements it.
type Source interface {
	Stores() []apis.Entry
}

// Collector is a prometheus.Collector reporting, per element type, the
// number of live values and the hit, miss and eviction counters.
type Collector struct {
	src Source

	live      *prometheus.Desc
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector reading src on every scrape.
// Metric names are prefixed with namespace when it is not empty.
func NewCollector(src Source, namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", name),
			help, []string{"type"}, nil)
	}
	return &Collector{
		src:       src,
		live:      desc("live_values", "Distinct values currently interned."),
		hits:      desc("hits_total", "Interns that reused an existing canonical value."),
		misses:    desc("misses_total", "Interns that inserted a new canonical value."),
		evictions: desc("evictions_total", "Canonical values removed after their last release."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.live
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
}

// Collect implements prometheus.Collector.
//
// Stores whose types share a label (two local types of the same name in one
// package) are summed into a single series.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	var order []string
	byLabel := make(map[string]apis.Stats)
	for _, e := range c.src.Stores() {
		label := TypeLabel(e.Type)
		st, seen := byLabel[label]
		if !seen {
			order = append(order, label)
		}
		add := e.Store.Stats()
		st.Live += add.Live
		st.Hits += add.Hits
		st.Misses += add.Misses
		st.Evictions += add.Evictions
		byLabel[label] = st
	}

	for _, label := range order {
		st := byLabel[label]
		ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(st.Live), label)
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(st.Hits), label)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(st.Misses), label)
		ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(st.Evictions), label)
	}
}

// TypeLabel is the value of the "type" label for t: the full package path
// and name for named types, t.String() for everything else.
func TypeLabel(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
