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

package store

import (
	"reflect"
	"sync"

	"dirpx.dev/intern/apis"
	"dirpx.dev/intern/telemetry"
)

// NewLocked returns a Store backed by a mutex-guarded map.
func NewLocked[T comparable](label string, stats *telemetry.Stats) Store[T] {
	return &locked[T]{
		label: label,
		stats: stats,
		m:     make(map[T]*Owner[T]),
	}
}

// locked keeps every owner in a plain map guarded by mu.
//
// Inserts and last-reference releases hold mu. Releases that leave other
// clients behind only decrement the owner's counter: they cannot race with
// the removal because removal requires refs == 2, which the releasing
// client's own reference rules out.
type locked[T comparable] struct {
	label string
	stats *telemetry.Stats

	mu sync.Mutex
	m  map[T]*Owner[T]
}

var _ Store[string] = (*locked[string])(nil)

func (s *locked[T]) GetOrInsert(v T) *Owner[T] {
	if !storable(v) {
		return newDetached(v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if o, ok := s.m[v]; ok {
		o.Retain()
		s.stats.Hit()
		return o
	}
	o := newOwner(v)
	s.m[v] = o
	s.stats.Miss()
	return o
}

func (s *locked[T]) Release(o *Owner[T]) bool {
	// Fast path: other clients remain, the entry stays.
	if o.dropShared() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under lock: a GetOrInsert may have added a client meanwhile.
	for {
		n := o.refs.Load()
		if n > 2 {
			if o.refs.CompareAndSwap(n, n-1) {
				return false
			}
			continue
		}
		if n < 2 {
			// Already dead: a double release is a caller bug, nothing to undo.
			return false
		}
		// Only the store and this client remain.
		o.refs.Store(0)
		if o.detached {
			return true
		}
		if cur, ok := s.m[o.value]; ok && cur == o {
			delete(s.m, o.value)
		}
		s.stats.Evict()
		return true
	}
}

func (s *locked[T]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func (s *locked[T]) Stats() apis.Stats { return s.stats.Snapshot(s.Count()) }

func (s *locked[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

func (s *locked[T]) Label() string { return s.label }

func (s *locked[T]) Kind() apis.StoreKind { return apis.Locked }
