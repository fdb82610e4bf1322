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

package config

import (
	"github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"

	"dirpx.dev/intern/apis"
)

const (
	// DefaultStore is the store implementation used when none is configured.
	DefaultStore = apis.Locked
	// DefaultReleaseUnreachable represents the default for ReleaseUnreachable.
	// When true, handles dropped without Release are reclaimed by the runtime.
	DefaultReleaseUnreachable = true
	// DefaultMetricsPrefix is the prefix of every registered metric name.
	DefaultMetricsPrefix = "intern"
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MetricsPrefix == "" {
		cfg.MetricsPrefix = DefaultMetricsPrefix
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
// Counters are registered in metrics.DefaultRegistry and lifecycle events go
// to the standard logrus logger.
func DefaultConfig() apis.Config {
	return apis.Config{
		Store:              DefaultStore,
		ReleaseUnreachable: DefaultReleaseUnreachable,
		Logger:             log.StandardLogger(),
		Metrics:            metrics.DefaultRegistry,
		MetricsPrefix:      DefaultMetricsPrefix,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithStore sets the store kind used for newly seen element types.
func WithStore(kind apis.StoreKind) Option {
	return func(c *apis.Config) {
		c.Store = kind
	}
}

// WithReleaseUnreachable sets the ReleaseUnreachable option.
func WithReleaseUnreachable(enabled bool) Option {
	return func(c *apis.Config) {
		c.ReleaseUnreachable = enabled
	}
}

// WithLogger sets the lifecycle logger. Nil disables logging.
func WithLogger(logger log.FieldLogger) Option {
	return func(c *apis.Config) {
		c.Logger = logger
	}
}

// WithMetrics sets the go-metrics registry counters are registered in.
// Nil keeps counters private to each store.
func WithMetrics(r metrics.Registry) Option {
	return func(c *apis.Config) {
		c.Metrics = r
	}
}

// WithMetricsPrefix sets the metric name prefix.
// An empty prefix resets to the default.
func WithMetricsPrefix(prefix string) Option {
	return func(c *apis.Config) {
		if prefix == "" {
			prefix = DefaultMetricsPrefix
		}
		c.MetricsPrefix = prefix
	}
}
