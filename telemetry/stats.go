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

// Package telemetry keeps the per-store counters and exposes them through
// go-metrics.
package telemetry

import (
	"github.com/rcrowley/go-metrics"

	"dirpx.dev/intern/apis"
)

// Stats holds the activity counters of one store.
//
// The counters behind Snapshot belong to the store alone. When a registry is
// given, every event is also mirrored into counters registered there. Stores
// of different pools that share a registry and prefix share those registered
// counters, so the registry reports their sum while each Snapshot stays
// per store.
//
// All methods are safe for concurrent use; a nil *Stats is a no-op.
type Stats struct {
	hits      metrics.Counter
	misses    metrics.Counter
	evictions metrics.Counter

	export *export
}

// export is the registered mirror of a store's counters. live goes up on
// every insert and down on every eviction.
type export struct {
	hits      metrics.Counter
	misses    metrics.Counter
	evictions metrics.Counter
	live      metrics.Counter
}

// New creates the counters for the store labelled label. When r is non-nil
// they are mirrored into counters registered (or reused, if already present)
// under "<prefix>.<label>.hits|misses|evictions|live".
func New(r metrics.Registry, prefix, label string) *Stats {
	s := &Stats{
		hits:      new(metrics.StandardCounter),
		misses:    new(metrics.StandardCounter),
		evictions: new(metrics.StandardCounter),
	}
	if r != nil {
		base := Key(prefix, label)
		s.export = &export{
			hits:      metrics.GetOrRegisterCounter(base+".hits", r),
			misses:    metrics.GetOrRegisterCounter(base+".misses", r),
			evictions: metrics.GetOrRegisterCounter(base+".evictions", r),
			live:      metrics.GetOrRegisterCounter(base+".live", r),
		}
	}
	return s
}

// Key joins the metric prefix and a store label.
func Key(prefix, label string) string {
	if prefix == "" {
		return label
	}
	return prefix + "." + label
}

// Hit records an intern that reused an existing canonical value.
func (s *Stats) Hit() {
	if s == nil {
		return
	}
	s.hits.Inc(1)
	if s.export != nil {
		s.export.hits.Inc(1)
	}
}

// Miss records an intern that inserted a canonical value.
func (s *Stats) Miss() {
	if s == nil {
		return
	}
	s.misses.Inc(1)
	if s.export != nil {
		s.export.misses.Inc(1)
		s.export.live.Inc(1)
	}
}

// Evict records the removal of a canonical value.
func (s *Stats) Evict() {
	if s == nil {
		return
	}
	s.evictions.Inc(1)
	if s.export != nil {
		s.export.evictions.Inc(1)
		s.export.live.Dec(1)
	}
}

// Snapshot returns the store's own counters together with the given live
// count.
func (s *Stats) Snapshot(live int) apis.Stats {
	if s == nil {
		return apis.Stats{Live: live}
	}
	return apis.Stats{
		Live:      live,
		Hits:      s.hits.Count(),
		Misses:    s.misses.Count(),
		Evictions: s.evictions.Count(),
	}
}
