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

package stress

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"dirpx.dev/intern/apis"
)

// ErrInvalidOptions is returned by Validate for out-of-range settings.
var ErrInvalidOptions = errors.New("invalid options")

// Options configures a stress run.
type Options struct {
	Workers     int
	Iterations  int
	Distinct    int
	CloneEvery  int
	Store       apis.StoreKind
	ConfigFile  string
	LogLevel    string
	MetricsAddr string
	Report      bool
}

// NewOptions returns options with defaults filled in.
func NewOptions() *Options {
	return &Options{
		Workers:    runtime.GOMAXPROCS(0) * 4,
		Iterations: 10000,
		Distinct:   64,
		CloneEvery: 7,
		Store:      apis.Locked,
		LogLevel:   "info",
	}
}

// Parse registers the flags on fs and parses args.
func (o *Options) Parse(fs *pflag.FlagSet, args []string) error {
	fs.IntVarP(&o.Workers, "workers", "w", o.Workers, "number of concurrent workers")
	fs.IntVarP(&o.Iterations, "iterations", "n", o.Iterations, "intern/release rounds per worker")
	fs.IntVar(&o.Distinct, "distinct", o.Distinct, "number of distinct values shared by the workers")
	fs.IntVar(&o.CloneEvery, "clone-every", o.CloneEvery, "clone the handle every N rounds (0 disables)")
	fs.Var(&o.Store, "store", "store kind (locked, lockfree)")
	fs.StringVar(&o.ConfigFile, "config-file", "", "optional YAML pool configuration")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "one of trace, debug, info, warn or error")
	fs.StringVar(&o.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	fs.BoolVar(&o.Report, "report", false, "print the go-metrics registry when done")

	if err := fs.Parse(args); err != nil {
		return err
	}
	return o.Validate()
}

// Validate checks the option ranges.
func (o *Options) Validate() error {
	switch {
	case o.Workers < 1:
		return errors.Wrapf(ErrInvalidOptions, "workers must be positive, got %d", o.Workers)
	case o.Iterations < 1:
		return errors.Wrapf(ErrInvalidOptions, "iterations must be positive, got %d", o.Iterations)
	case o.Distinct < 1:
		return errors.Wrapf(ErrInvalidOptions, "distinct must be positive, got %d", o.Distinct)
	case o.CloneEvery < 0:
		return errors.Wrapf(ErrInvalidOptions, "clone-every must not be negative, got %d", o.CloneEvery)
	}
	return nil
}
