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
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"dirpx.dev/intern/apis"
)

// File is the on-disk YAML form of a pool configuration.
//
//	store: lockfree
//	releaseUnreachable: false
//	metricsPrefix: myapp.intern
//	logLevel: debug
type File struct {
	Store              *apis.StoreKind `yaml:"store"`
	ReleaseUnreachable *bool           `yaml:"releaseUnreachable"`
	MetricsPrefix      string          `yaml:"metricsPrefix"`
	LogLevel           string          `yaml:"logLevel"`
}

// Parse decodes a YAML configuration. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return File{}, errors.Wrap(err, "intern: invalid configuration")
	}
	return f, nil
}

// Load reads and parses the YAML configuration at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrapf(err, "intern: reading configuration %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, errors.Wrapf(err, "intern: parsing configuration %s", path)
	}
	return f, nil
}

// Options converts the settings present in the file to options.
// Absent settings produce no option, so defaults (or earlier options) win.
func (f File) Options() ([]Option, error) {
	var opts []Option
	if f.Store != nil {
		opts = append(opts, WithStore(*f.Store))
	}
	if f.ReleaseUnreachable != nil {
		opts = append(opts, WithReleaseUnreachable(*f.ReleaseUnreachable))
	}
	if f.MetricsPrefix != "" {
		opts = append(opts, WithMetricsPrefix(f.MetricsPrefix))
	}
	if f.LogLevel != "" {
		lvl, err := log.ParseLevel(f.LogLevel)
		if err != nil {
			return nil, errors.Wrap(err, "intern: invalid logLevel")
		}
		logger := log.New()
		logger.SetLevel(lvl)
		opts = append(opts, WithLogger(logger))
	}
	return opts, nil
}
