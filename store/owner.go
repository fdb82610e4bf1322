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

import "sync/atomic"

// Owner is the shared owner of one canonical value.
//
// While the owner is in its store, refs == client handles + 1 (the store's
// own reference). A dead owner has refs == 0 and is never handed out again.
type Owner[T comparable] struct {
	value T
	refs  atomic.Int32
	// detached owners hold a value that is not equal to itself (a NaN, or
	// anything containing one). Such a value can never be found again, so
	// it is never put in a store and every intern of it gets its own owner.
	detached bool
}

func newOwner[T comparable](v T) *Owner[T] {
	o := &Owner[T]{value: v}
	// One reference for the store, one for the caller.
	o.refs.Store(2)
	return o
}

// newDetached returns an owner for a value the store does not keep.
func newDetached[T comparable](v T) *Owner[T] {
	o := newOwner(v)
	o.detached = true
	return o
}

// storable reports whether v can be looked up again, which fails when v != v.
func storable[T comparable](v T) bool {
	return v == v
}

// Value returns the canonical value.
func (o *Owner[T]) Value() T { return o.value }

// Refs returns the total number of strong references, the store's included.
func (o *Owner[T]) Refs() int { return int(o.refs.Load()) }

// Clients returns the number of client references (store reference excluded).
func (o *Owner[T]) Clients() int {
	if n := o.refs.Load(); n > 1 {
		return int(n - 1)
	}
	return 0
}

// Retain adds a client reference. The caller must already hold one, which
// keeps the owner alive across the increment.
func (o *Owner[T]) Retain() { o.refs.Add(1) }

// tryAcquire adds a client reference unless the owner is dead.
func (o *Owner[T]) tryAcquire() bool {
	for {
		n := o.refs.Load()
		if n < 2 {
			return false
		}
		if o.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// dropShared releases one client reference while at least one other client
// remains. It reports false, without changing anything, when the caller
// holds the last client reference.
func (o *Owner[T]) dropShared() bool {
	for {
		n := o.refs.Load()
		if n <= 2 {
			return false
		}
		if o.refs.CompareAndSwap(n, n-1) {
			return true
		}
	}
}
