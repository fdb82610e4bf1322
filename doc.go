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

// Package intern provides a process-wide, reference-counted value interning
// pool.
//
// Interning keeps a single canonical copy of each distinct value. Callers
// hold handles to that copy; comparing two handles is a pointer comparison
// and hashing one is O(1). Unlike a plain intern table, the pool gives a
// value's storage back as soon as the last handle for it is released.
//
//	a := intern.Make("hello")
//	b := intern.Make("hello")
//	a.Equal(b)              // true: same canonical owner
//	a.Value()               // "hello"
//	intern.Live[string]()   // 1
//	a.Release()
//	b.Release()
//	intern.Live[string]()   // 0
//
// # Design
//
// Each element type T gets its own store, created the first time a T is
// interned and kept for the life of the pool. Stores are kept in a registry
// keyed by reflect.Type, so one pool serves any number of types without
// declaring them up front. The registry holds stores behind the type-erased
// apis.Store interface; Make resolves the store and immediately downcasts it
// back to store.Store[T].
//
// A store maps a value to a store.Owner, which carries an atomic reference
// count. While the value is stored, the count is the number of client
// handles plus one for the store itself. Releasing a handle when the count
// is exactly two (the store and that handle) removes the value; any other
// count just drops the handle's reference. That check and the removal are a
// single atomic step with respect to concurrent interns of an equal value,
// so a value is never both present with no clients and absent, and two live
// owners for equal values never exist.
//
// Two store kinds are available (apis.StoreKind):
//
//   - Locked: a mutex-guarded map. Inserts and last releases take the
//     store mutex.
//   - LockFree: a sync.Map with CAS reference counting; the last release
//     marks the owner dead and then deletes it with CompareAndDelete.
//
// # Releasing
//
// Go has no destructors, so handles are given back with Release. With
// Config.ReleaseUnreachable (the default) a runtime cleanup is also attached
// to every handle; if a handle becomes unreachable without Release, the
// cleanup releases it after a garbage collection. Explicit Release is still
// the way to get deterministic reclamation.
//
// When Make hits an existing value, the argument passed to Make is simply
// dropped. Nothing about it is retained, and anything its finalizers or
// cleanups do happens whenever the garbage collector gets to it.
//
// # Equality, hashing, ordering
//
// Handle.Equal and Handle.Hash use owner identity. Hash is deliberately not
// the hash of the value. Compare, Less and CompareFunc order handles by value.
// String, Format and the JSON, YAML and MessagePack codecs all operate on the
// value; decoding interns into the process-wide pool.
//
// # Pools and configuration
//
// The package-level functions use a process-wide pool created at init.
// New builds isolated pools with their own registry. Configuration is an
// atomically published snapshot: changing it affects stores and handles
// created afterwards. Store activity is exported through go-metrics
// (Config.Metrics) and, via the promexport package, Prometheus.
//
// Element types must have a stable ==. A value that is not equal to itself
// (a NaN) is handed its own unshared owner and never enters a store. Any
// other non-deterministic equality is undefined. Interface element types
// holding non-comparable dynamic values panic, as any Go map key would.
package intern
