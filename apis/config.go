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

package apis

import (
	"github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
)

// Config carries the knobs of an interning pool.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Store selects the store implementation used for element types seen
	// for the first time. Existing stores keep the kind they were built with.
	Store StoreKind

	// ReleaseUnreachable attaches a runtime cleanup to every handle so that a
	// handle which becomes unreachable without Release still gives its
	// reference back to the store.
	ReleaseUnreachable bool

	// Logger receives store lifecycle events. Nil disables logging.
	Logger log.FieldLogger

	// Metrics is the go-metrics registry per-store counters are registered in.
	// Nil keeps counters private to the store (still visible through Stats).
	Metrics metrics.Registry

	// MetricsPrefix is prepended to every metric name registered in Metrics.
	MetricsPrefix string
}
