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

// Registry maps element types to their stores.
// Stores are created at most once per type and are never removed.
type Registry interface {
	// LoadOrCreate returns the store registered for t, calling create
	// exactly once per type if none exists yet.
	LoadOrCreate(t reflect.Type, create func() Store) Store
	// Lookup returns the store for t if one was created.
	Lookup(t reflect.Type) (Store, bool)
	// Entries returns a snapshot for diagnostics, ordered by label.
	Entries() []Entry
	// Count returns the number of stores.
	Count() int
}

// Entry is a single (type, store) association in a Registry snapshot.
type Entry struct {
	// Type is the element type.
	Type reflect.Type
	// Store is the type-erased store for Type.
	Store Store
}
