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

import "reflect"

// Store is the type-erased view of a per-type store. The typed operations
// live on store.Store[T]; callers that know T downcast to it.
type Store interface {
	// Type returns the element type of the store.
	Type() reflect.Type
	// Label returns the human-readable name used in logs and metrics.
	Label() string
	// Kind reports which implementation backs the store.
	Kind() StoreKind
	// Count returns the number of live distinct values.
	Count() int
	// Stats returns a point-in-time snapshot of the store counters.
	Stats() Stats
}

// Stats is a snapshot of store activity.
type Stats struct {
	// Live is the number of distinct values currently interned.
	Live int
	// Hits counts interns that reused an existing canonical value.
	Hits int64
	// Misses counts interns that created a new canonical value.
	Misses int64
	// Evictions counts canonical values removed after their last release.
	Evictions int64
}
