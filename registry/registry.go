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

package registry

import (
	"errors"
	"reflect"
	"sort"
	"sync"

	"dirpx.dev/intern/apis"
)

var (
	// ErrNilType is raised when a nil reflect.Type is used as a key.
	ErrNilType = errors.New("intern(registry): nil reflect.Type provided")
	// ErrNilStore is raised when a store constructor returns nil.
	ErrNilStore = errors.New("intern(registry): store constructor returned nil")
)

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is a Registry backed by sync.Map for lock-free reads.
// Stores are only ever added.
type registry struct {
	// mu serializes store creation and guards count.
	mu sync.Mutex
	// m maps reflect.Type to apis.Store.
	m sync.Map
	// count tracks the number of stores.
	count int
}

// LoadOrCreate returns the store for t, creating it with create on first use.
// create runs at most once per type, under the creation lock; it must not
// call back into the registry.
func (r *registry) LoadOrCreate(t reflect.Type, create func() apis.Store) apis.Store {
	if t == nil {
		panic(ErrNilType)
	}

	// Fast read path.
	if s, ok := r.m.Load(t); ok {
		return s.(apis.Store)
	}

	// Write path: guard with a mutex so create runs once per type.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if s, ok := r.m.Load(t); ok {
		return s.(apis.Store)
	}

	s := create()
	if s == nil {
		panic(ErrNilStore)
	}
	r.m.Store(t, s)
	r.count++
	return s
}

// Lookup returns the store for t if present. It never creates one.
func (r *registry) Lookup(t reflect.Type) (apis.Store, bool) {
	if t == nil {
		return nil, false
	}
	if s, ok := r.m.Load(t); ok {
		return s.(apis.Store), true
	}
	return nil, false
}

// Entries returns a snapshot of all stores ordered by label, then type string.
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:  key.(reflect.Type),
			Store: value.(apis.Store),
		})
		return true
	})
	sort.Slice(entries, func(i, j int) bool {
		li, lj := entries[i].Store.Label(), entries[j].Store.Label()
		if li == lj {
			return entries[i].Type.String() < entries[j].Type.String()
		}
		return li < lj
	})
	return entries
}

// Count returns the number of stores.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
