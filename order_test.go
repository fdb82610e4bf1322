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
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_SortsByValue(t *testing.T) {
	p := quietPool()

	var hs []*Handle[int]
	for _, v := range []int{4, 2, 5, 0, 1, 3} {
		hs = append(hs, MakeIn(p, v))
	}
	defer releaseAll(hs...)

	slices.SortFunc(hs, Compare[int])

	parts := make([]string, len(hs))
	for i, h := range hs {
		parts[i] = h.String()
	}
	assert.Equal(t, "0,1,2,3,4,5", strings.Join(parts, ","))
}

func TestLess(t *testing.T) {
	p := quietPool()
	a, b := MakeIn(p, "a"), MakeIn(p, "b")
	defer releaseAll(a, b)

	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))
	assert.False(t, Less(a, a))
	assert.Equal(t, 0, Compare(a, a))
}

func TestCompareFunc(t *testing.T) {
	type version struct{ Major, Minor int }
	byVersion := func(x, y version) int {
		if c := x.Major - y.Major; c != 0 {
			return c
		}
		return x.Minor - y.Minor
	}
	p := quietPool()

	hs := []*Handle[version]{
		MakeIn(p, version{2, 0}),
		MakeIn(p, version{1, 9}),
		MakeIn(p, version{1, 2}),
	}
	defer releaseAll(hs...)

	slices.SortFunc(hs, func(a, b *Handle[version]) int {
		return CompareFunc(a, b, byVersion)
	})
	assert.Equal(t, version{1, 2}, hs[0].Value())
	assert.Equal(t, version{1, 9}, hs[1].Value())
	assert.Equal(t, version{2, 0}, hs[2].Value())
}
