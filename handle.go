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

package intern

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync/atomic"

	"github.com/twmb/murmur3"

	"dirpx.dev/intern/store"
)

// ErrReleased is raised when a released handle is cloned.
var ErrReleased = errors.New("intern: handle already released")

// Handle is a client's claim on a canonical value.
//
// Handles are obtained from Make/MakeIn or Clone and given back with Release.
// A Handle must not be copied by value; pass *Handle around.
//
// Equal and Hash work on the identity of the canonical owner and are O(1).
// This is only meaningful because a pool keeps at most one owner per
// distinct value. Hash is therefore NOT the hash of the value: two handles
// for equal values hash equal because they share an owner, and the number
// has nothing to do with the value's bytes.
//
// A value that is not equal to itself, such as a float NaN or a struct
// holding one, is never shared: each Make of it returns a handle with its
// own owner, and it does not count towards Live.
type Handle[T comparable] struct {
	owner    *store.Owner[T]
	store    store.Store[T]
	released atomic.Bool
	cleanup  runtime.Cleanup
	tracked  bool
}

// release is what a runtime cleanup needs to give a reference back.
// It must not point at the Handle, or the Handle would never be unreachable.
type release[T comparable] struct {
	owner *store.Owner[T]
	store store.Store[T]
}

func newHandle[T comparable](s store.Store[T], o *store.Owner[T], track bool) *Handle[T] {
	h := &Handle[T]{owner: o, store: s}
	if track {
		h.track()
	}
	return h
}

// track attaches the cleanup that releases h if it becomes unreachable.
func (h *Handle[T]) track() {
	h.cleanup = runtime.AddCleanup(h, func(r release[T]) {
		r.store.Release(r.owner)
	}, release[T]{owner: h.owner, store: h.store})
	h.tracked = true
}

// Value returns the canonical value. Values are immutable once interned.
func (h *Handle[T]) Value() T {
	return h.owner.Value()
}

// RefCount returns how many client handles currently share h's canonical
// value, h included. The store's own reference is not counted.
func (h *Handle[T]) RefCount() int {
	return h.owner.Clients()
}

// Released reports whether Release has been called on h.
func (h *Handle[T]) Released() bool {
	return h.released.Load()
}

// Clone returns a new handle for the same canonical value.
// It panics with ErrReleased if h was released.
func (h *Handle[T]) Clone() *Handle[T] {
	if h.released.Load() {
		panic(ErrReleased)
	}
	h.owner.Retain()
	c := &Handle[T]{owner: h.owner, store: h.store}
	if h.tracked {
		c.track()
	}
	return c
}

// Release gives h's reference back. When it was the last client reference
// the canonical value is removed from its store. Only the first call has an
// effect. Value keeps working on a released handle, but the value is no
// longer canonical once evicted.
func (h *Handle[T]) Release() {
	if h.owner == nil || h.released.Swap(true) {
		return
	}
	if h.tracked {
		h.cleanup.Stop()
	}
	h.store.Release(h.owner)
}

// Equal reports whether h and o refer to the same canonical owner.
func (h *Handle[T]) Equal(o *Handle[T]) bool {
	if h == nil || o == nil {
		return h == o
	}
	return h.owner == o.owner
}

// Hash returns an identity hash of the canonical owner. See Handle for why
// it differs from any hash of the value.
func (h *Handle[T]) Hash() uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(reflect.ValueOf(h.owner).Pointer()))
	return murmur3.Sum64(b[:])
}

// String formats the canonical value with %v.
func (h *Handle[T]) String() string {
	return fmt.Sprint(h.Value())
}

// Format forwards every fmt verb and flag to the canonical value.
func (h *Handle[T]) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, fmt.FormatString(f, verb), h.Value())
}
