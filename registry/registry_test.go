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

package registry_test

import (
	"reflect"
	"testing"

	"dirpx.dev/intern/apis"
	"dirpx.dev/intern/config"
	"dirpx.dev/intern/registry"
	"dirpx.dev/intern/store"
)

func quietConfig() apis.Config {
	return config.NewConfig(config.WithLogger(nil), config.WithMetrics(nil))
}

func storeOf[T comparable]() func() apis.Store {
	return func() apis.Store { return store.New[T](quietConfig()) }
}

func TestLoadOrCreate_CreatesOncePerType(t *testing.T) {
	reg := registry.New()

	calls := 0
	create := func() apis.Store {
		calls++
		return store.New[T1](quietConfig())
	}

	s1 := reg.LoadOrCreate(reflect.TypeFor[T1](), create)
	s2 := reg.LoadOrCreate(reflect.TypeFor[T1](), create)
	if s1 != s2 {
		t.Fatalf("LoadOrCreate returned two stores for the same type")
	}
	if calls != 1 {
		t.Fatalf("create called %d times, want 1", calls)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}

	// The erased store downcasts back to the typed one.
	if _, ok := s1.(store.Store[T1]); !ok {
		t.Fatalf("store for T1 is %T, not store.Store[T1]", s1)
	}
}

func TestLoadOrCreate_DistinctTypesDistinctStores(t *testing.T) {
	reg := registry.New()

	a := reg.LoadOrCreate(reflect.TypeFor[T1](), storeOf[T1]())
	b := reg.LoadOrCreate(reflect.TypeFor[T2](), storeOf[T2]())
	c := reg.LoadOrCreate(reflect.TypeFor[*T1](), storeOf[*T1]())
	if a == b || a == c || b == c {
		t.Fatalf("distinct types must not share a store")
	}
	if reg.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", reg.Count())
	}
}

func TestLookup_NeverCreates(t *testing.T) {
	reg := registry.New()

	if s, ok := reg.Lookup(reflect.TypeFor[T1]()); ok || s != nil {
		t.Fatalf("Lookup on empty registry: got (%v,%v), want (nil,false)", s, ok)
	}
	if reg.Count() != 0 {
		t.Fatalf("Lookup must not create stores")
	}
	if _, ok := reg.Lookup(nil); ok {
		t.Fatalf("Lookup(nil) must miss")
	}

	want := reg.LoadOrCreate(reflect.TypeFor[T1](), storeOf[T1]())
	if got, ok := reg.Lookup(reflect.TypeFor[T1]()); !ok || got != want {
		t.Fatalf("Lookup after create: got (%v,%v)", got, ok)
	}
}

func TestLoadOrCreate_Panics(t *testing.T) {
	reg := registry.New()

	func() {
		defer func() {
			if r := recover(); r != registry.ErrNilType {
				t.Fatalf("nil type: want panic ErrNilType, got %v", r)
			}
		}()
		reg.LoadOrCreate(nil, storeOf[T1]())
	}()

	func() {
		defer func() {
			if r := recover(); r != registry.ErrNilStore {
				t.Fatalf("nil store: want panic ErrNilStore, got %v", r)
			}
		}()
		reg.LoadOrCreate(reflect.TypeFor[T2](), func() apis.Store { return nil })
	}()

	if reg.Count() != 0 {
		t.Fatalf("failed creations must not be counted, got %d", reg.Count())
	}
}

func TestEntries_SortedByLabel(t *testing.T) {
	reg := registry.New()
	reg.LoadOrCreate(reflect.TypeFor[T2](), storeOf[T2]())
	reg.LoadOrCreate(reflect.TypeFor[T0](), storeOf[T0]())
	reg.LoadOrCreate(reflect.TypeFor[T1](), storeOf[T1]())

	entries := reg.Entries()
	if len(entries) != 3 {
		t.Fatalf("len(Entries()) = %d, want 3", len(entries))
	}
	want := []string{"registry_test.T0", "registry_test.T1", "registry_test.T2"}
	for i, e := range entries {
		if e.Store.Label() != want[i] {
			t.Fatalf("entry %d: label %q, want %q", i, e.Store.Label(), want[i])
		}
		if e.Store.Type() != e.Type {
			t.Fatalf("entry %d: store type %v, key %v", i, e.Store.Type(), e.Type)
		}
	}
}
