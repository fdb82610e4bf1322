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

// Package store implements the per-type stores that map a value to its
// shared, reference-counted canonical owner.
package store

import (
	"reflect"

	log "github.com/sirupsen/logrus"

	"dirpx.dev/intern/apis"
	"dirpx.dev/intern/naming"
	"dirpx.dev/intern/telemetry"
)

// Store is the typed store for element type T.
//
// Implementations guarantee that at most one live Owner exists per distinct
// value, and that the last-reference check in Release is atomic with respect
// to GetOrInsert of an equal value.
type Store[T comparable] interface {
	apis.Store

	// GetOrInsert returns the canonical owner for v with one new client
	// reference. On a hit v itself is discarded.
	GetOrInsert(v T) *Owner[T]

	// Release gives back one client reference of o. If that was the last
	// client reference, the entry is removed and Release reports true.
	Release(o *Owner[T]) (evicted bool)
}

// New builds the store kind selected by cfg for element type T and, when
// cfg.Metrics is set, mirrors its counters into that registry.
func New[T comparable](cfg apis.Config) Store[T] {
	t := reflect.TypeFor[T]()
	label := naming.Label(t)
	stats := telemetry.New(cfg.Metrics, cfg.MetricsPrefix, label)

	var s Store[T]
	switch cfg.Store {
	case apis.LockFree:
		s = NewLockFree[T](label, stats)
	default:
		s = NewLocked[T](label, stats)
	}

	if cfg.Logger != nil {
		cfg.Logger.WithFields(log.Fields{
			"type":  label,
			"store": s.Kind().String(),
		}).Debug("Created intern store")
	}
	return s
}
