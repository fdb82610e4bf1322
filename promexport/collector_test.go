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

package promexport_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/intern"
	"dirpx.dev/intern/config"
	"dirpx.dev/intern/promexport"
)

func TestCollector(t *testing.T) {
	p := intern.New(config.WithLogger(nil), config.WithMetrics(nil))

	a := intern.MakeIn(p, "a")
	b := intern.MakeIn(p, "a")
	c := intern.MakeIn(p, "c")
	c.Release()
	n := intern.MakeIn(p, 1)
	defer a.Release()
	defer b.Release()
	defer n.Release()

	col := promexport.NewCollector(p, "intern")

	expected := `
# HELP intern_evictions_total Canonical values removed after their last release.
# TYPE intern_evictions_total counter
intern_evictions_total{type="int"} 0
intern_evictions_total{type="string"} 1
# HELP intern_hits_total Interns that reused an existing canonical value.
# TYPE intern_hits_total counter
intern_hits_total{type="int"} 0
intern_hits_total{type="string"} 1
# HELP intern_live_values Distinct values currently interned.
# TYPE intern_live_values gauge
intern_live_values{type="int"} 1
intern_live_values{type="string"} 1
# HELP intern_misses_total Interns that inserted a new canonical value.
# TYPE intern_misses_total counter
intern_misses_total{type="int"} 1
intern_misses_total{type="string"} 2
`
	require.NoError(t, testutil.CollectAndCompare(col, strings.NewReader(expected)))
}

func TestCollector_Register(t *testing.T) {
	p := intern.New(config.WithLogger(nil), config.WithMetrics(nil))
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(promexport.NewCollector(p, "")))

	h := intern.MakeIn(p, 3.5)
	defer h.Release()

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{"live_values", "hits_total", "misses_total", "evictions_total"}, names)
	assert.Equal(t, 4, testutil.CollectAndCount(promexport.NewCollector(p, "x")))
}

func TestCollector_SameNamedTypes(t *testing.T) {
	type label string
	p := intern.New(config.WithLogger(nil), config.WithMetrics(nil))

	a := intern.MakeIn(p, label("a"))
	defer a.Release()
	b := intern.MakeIn(p, label("b"))
	defer b.Release()
	func() {
		type label string
		c := intern.MakeIn(p, label("c"))
		defer c.Release()
		require.Len(t, p.Stores(), 2)

		reg := prometheus.NewPedanticRegistry()
		require.NoError(t, reg.Register(promexport.NewCollector(p, "intern")))
		_, err := reg.Gather()
		require.NoError(t, err)

		expected := `
# HELP intern_live_values Distinct values currently interned.
# TYPE intern_live_values gauge
intern_live_values{type="dirpx.dev/intern/promexport_test.label"} 3
`
		require.NoError(t, testutil.CollectAndCompare(promexport.NewCollector(p, "intern"),
			strings.NewReader(expected), "intern_live_values"))
	}()
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "int", promexport.TypeLabel(reflect.TypeFor[int]()))
	assert.Equal(t, "[]string", promexport.TypeLabel(reflect.TypeFor[[]string]()))
	assert.Equal(t, "dirpx.dev/intern/promexport.Collector",
		promexport.TypeLabel(reflect.TypeFor[promexport.Collector]()))
}

func TestCollector_Empty(t *testing.T) {
	p := intern.New(config.WithLogger(nil), config.WithMetrics(nil))
	assert.Equal(t, 0, testutil.CollectAndCount(promexport.NewCollector(p, "intern")))
}
