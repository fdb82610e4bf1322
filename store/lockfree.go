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
	"sync/atomic"

	"dirpx.dev/intern/apis"
	"dirpx.dev/intern/telemetry"
)

// NewLockFree returns a Store backed by sync.Map and CAS reference counting.
func NewLockFree[T comparable](label string, stats *telemetry.Stats) Store[T] {
	return &lockFree[T]{label: label, stats: stats}
}

// lockFree never blocks on a mutex of its own.
//
// An owner is live while refs >= 2. The last release moves refs from 2 to 0
// in one CAS; that CAS is the point at which the value stops being present.
// The entry is deleted afterwards with CompareAndDelete, and any GetOrInsert
// that finds the dead owner in the meantime deletes it itself and retries.
type lockFree[T comparable] struct {
	label string
	stats *telemetry.Stats

	m    sync.Map // map[T]*Owner[T]
	live atomic.Int64
}

var _ Store[string] = (*lockFree[string])(nil)

func (s *lockFree[T]) GetOrInsert(v T) *Owner[T] {
	if !storable(v) {
		return newDetached(v)
	}

	var fresh *Owner[T]
	for {
		if cur, ok := s.m.Load(v); ok {
			o := cur.(*Owner[T])
			if o.tryAcquire() {
				s.stats.Hit()
				return o
			}
			s.m.CompareAndDelete(v, o)
			continue
		}

		// Allocate at most once per call, however often we lose races.
		if fresh == nil {
			fresh = newOwner(v)
		}
		cur, loaded := s.m.LoadOrStore(v, fresh)
		if !loaded {
			s.live.Add(1)
			s.stats.Miss()
			return fresh
		}
		o := cur.(*Owner[T])
		if o.tryAcquire() {
			s.stats.Hit()
			return o
		}
		s.m.CompareAndDelete(v, o)
	}
}

func (s *lockFree[T]) Release(o *Owner[T]) bool {
	for {
		n := o.refs.Load()
		if n > 2 {
			if o.refs.CompareAndSwap(n, n-1) {
				return false
			}
			continue
		}
		if n != 2 {
			// Already dead: a double release is a caller bug, nothing to undo.
			return false
		}
		if o.refs.CompareAndSwap(2, 0) {
			if o.detached {
				return true
			}
			s.live.Add(-1)
			s.m.CompareAndDelete(o.value, o)
			s.stats.Evict()
			return true
		}
	}
}

func (s *lockFree[T]) Count() int { return int(s.live.Load()) }

func (s *lockFree[T]) Stats() apis.Stats { return s.stats.Snapshot(s.Count()) }

func (s *lockFree[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

func (s *lockFree[T]) Label() string { return s.label }

func (s *lockFree[T]) Kind() apis.StoreKind { return apis.LockFree }
