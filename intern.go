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
	"reflect"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"dirpx.dev/intern/apis"
	"dirpx.dev/intern/config"
	"dirpx.dev/intern/registry"
	"dirpx.dev/intern/store"
)

// init creates the process-wide default pool.
func init() {
	std = New()
}

// std is the process-wide default pool used by the package-level functions.
var std *Pool

// Pool is an independent interning space: its own type registry and its own
// configuration. Equal values interned in different pools are distinct.
type Pool struct {
	// reg maps element types to stores. It is never replaced.
	reg apis.Registry
	// cfg is the current configuration snapshot. Readers load it without
	// locking; writers publish a new one.
	cfg atomic.Pointer[apis.Config]
	// mu serializes configuration writers (read-modify-write in Update).
	mu sync.Mutex
}

// New creates a pool configured by opts on top of config.DefaultConfig().
func New(opts ...config.Option) *Pool {
	p := &Pool{reg: registry.New()}
	cfg := config.NewConfig(opts...)
	p.cfg.Store(&cfg)
	return p
}

// Config returns the pool configuration.
func (p *Pool) Config() apis.Config {
	return *p.cfg.Load()
}

// SetConfig replaces the pool configuration. Stores and handles created
// afterwards use cfg; existing stores keep their kind.
func (p *Pool) SetConfig(cfg apis.Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publish(cfg)
}

// Update applies opts to the current configuration and publishes the result.
func (p *Pool) Update(opts ...config.Option) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cfg := *p.cfg.Load()
	for _, opt := range opts {
		opt(&cfg)
	}
	p.publish(cfg)
}

// publish stores cfg. Callers hold p.mu.
func (p *Pool) publish(cfg apis.Config) {
	if cfg.MetricsPrefix == "" {
		cfg.MetricsPrefix = config.DefaultMetricsPrefix
	}
	p.cfg.Store(&cfg)
	if cfg.Logger != nil {
		cfg.Logger.WithFields(log.Fields{
			"store":              cfg.Store.String(),
			"releaseUnreachable": cfg.ReleaseUnreachable,
			"stores":             p.reg.Count(),
		}).Info("Intern pool reconfigured")
	}
}

// Registry returns the type registry of the pool.
func (p *Pool) Registry() apis.Registry {
	return p.reg
}

// Stores returns a snapshot of the per-type stores, ordered by label.
func (p *Pool) Stores() []apis.Entry {
	return p.reg.Entries()
}

// MakeIn interns v in p and returns a handle to the canonical copy.
// On a hit v itself is dropped; nothing of it is retained.
func MakeIn[T comparable](p *Pool, v T) *Handle[T] {
	cfg := p.cfg.Load()
	s := storeFor[T](p, cfg)
	return newHandle(s, s.GetOrInsert(v), cfg.ReleaseUnreachable)
}

// MakeZeroIn interns the zero value of T in p.
func MakeZeroIn[T comparable](p *Pool) *Handle[T] {
	var zero T
	return MakeIn(p, zero)
}

// LiveIn returns how many distinct values of T are currently interned in p.
// It is a snapshot that may be stale by the time it returns.
func LiveIn[T comparable](p *Pool) int {
	s, ok := p.reg.Lookup(reflect.TypeFor[T]())
	if !ok {
		return 0
	}
	return s.Count()
}

// storeFor resolves the store for T, creating it with cfg on first use.
// This is the one place the erased store is turned back into a typed one.
func storeFor[T comparable](p *Pool, cfg *apis.Config) store.Store[T] {
	s := p.reg.LoadOrCreate(reflect.TypeFor[T](), func() apis.Store {
		return store.New[T](*cfg)
	})
	return s.(store.Store[T])
}

// Default returns the process-wide pool.
func Default() *Pool {
	return std
}

// Make interns v in the process-wide pool.
func Make[T comparable](v T) *Handle[T] {
	return MakeIn(std, v)
}

// MakeZero interns the zero value of T in the process-wide pool.
func MakeZero[T comparable]() *Handle[T] {
	return MakeZeroIn[T](std)
}

// Live returns how many distinct values of T are interned in the
// process-wide pool.
func Live[T comparable]() int {
	return LiveIn[T](std)
}

// Config returns the configuration of the process-wide pool.
func Config() apis.Config {
	return std.Config()
}

// SetConfig replaces the configuration of the process-wide pool.
func SetConfig(cfg apis.Config) {
	std.SetConfig(cfg)
}

// Update applies opts to the configuration of the process-wide pool.
func Update(opts ...config.Option) {
	std.Update(opts...)
}

// Registry returns the type registry of the process-wide pool.
func Registry() apis.Registry {
	return std.reg
}

// Stores returns a snapshot of the stores of the process-wide pool.
func Stores() []apis.Entry {
	return std.Stores()
}
