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
	"fmt"
	"strings"
)

// StoreKind selects the synchronization scheme of a per-type store.
//
// # Values
//
//   - Locked: a mutex-guarded map. Every insert and every final release
//     takes the store mutex; releases that are not the last one only touch
//     the owner's atomic counter.
//   - LockFree: a sync.Map with compare-and-swap reference counting. No
//     mutex is held on any path; the last release marks the owner dead and
//     then deletes the entry with CompareAndDelete.
//
// Both kinds satisfy the same contract: at most one live owner per distinct
// value, and the check-and-remove on last release is a single atomic step
// with respect to concurrent inserts of an equal value.
//
// StoreKind implements pflag.Value, encoding.TextMarshaler and
// encoding.TextUnmarshaler so it can be set from flags and config files.
type StoreKind int

const (
	// Locked selects the mutex-guarded map store. This is the default.
	Locked StoreKind = iota
	// LockFree selects the sync.Map store with CAS reference counting.
	LockFree
)

// String returns the canonical token for the kind.
// Unknown values render as "Unknown(<n>)" and never panic.
func (k StoreKind) String() string {
	switch k {
	case Locked:
		return "locked"
	case LockFree:
		return "lockfree"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseStoreKind parses a textual store kind, case-insensitively.
// "lock-free" and "lock_free" are accepted as aliases of "lockfree".
func ParseStoreKind(s string) (StoreKind, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Locked, fmt.Errorf("intern: empty store kind")
	}

	switch strings.ToLower(trimmed) {
	case "locked", "mutex":
		return Locked, nil
	case "lockfree", "lock-free", "lock_free":
		return LockFree, nil
	default:
		return Locked, fmt.Errorf("intern: unknown store kind %q", s)
	}
}

// MustParseStoreKind is like ParseStoreKind but panics on error.
func MustParseStoreKind(s string) StoreKind {
	k, err := ParseStoreKind(s)
	if err != nil {
		panic(err)
	}
	return k
}

// MarshalText implements encoding.TextMarshaler.
func (k StoreKind) MarshalText() ([]byte, error) {
	switch k {
	case Locked, LockFree:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("intern: cannot marshal unknown store kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StoreKind) UnmarshalText(text []byte) error {
	v, err := ParseStoreKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler (gopkg.in/yaml.v2).
func (k *StoreKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return k.UnmarshalText([]byte(s))
}

// Set implements pflag.Value.
func (k *StoreKind) Set(value string) error {
	return k.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.
func (k StoreKind) Type() string {
	return "storeKind"
}
