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

package apis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/intern/apis"
)

func TestStoreKind_String(t *testing.T) {
	assert.Equal(t, "locked", apis.Locked.String())
	assert.Equal(t, "lockfree", apis.LockFree.String())
	assert.Equal(t, "Unknown(42)", apis.StoreKind(42).String())
}

func TestParseStoreKind(t *testing.T) {
	cases := []struct {
		in   string
		want apis.StoreKind
	}{
		{"locked", apis.Locked},
		{" LOCKED ", apis.Locked},
		{"mutex", apis.Locked},
		{"lockfree", apis.LockFree},
		{"Lock-Free", apis.LockFree},
		{"lock_free", apis.LockFree},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := apis.ParseStoreKind(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := apis.ParseStoreKind("")
	assert.Error(t, err)
	_, err = apis.ParseStoreKind("sharded")
	assert.Error(t, err)
	assert.Panics(t, func() { apis.MustParseStoreKind("sharded") })
}

func TestStoreKind_Text(t *testing.T) {
	b, err := apis.LockFree.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "lockfree", string(b))

	_, err = apis.StoreKind(9).MarshalText()
	assert.Error(t, err)

	var k apis.StoreKind
	require.NoError(t, k.UnmarshalText([]byte("lockfree")))
	assert.Equal(t, apis.LockFree, k)
	assert.Error(t, k.UnmarshalText([]byte("nope")))
	assert.Equal(t, apis.LockFree, k, "failed unmarshal must not change the value")
}

func TestStoreKind_FlagValue(t *testing.T) {
	k := apis.Locked
	require.NoError(t, k.Set("lockfree"))
	assert.Equal(t, apis.LockFree, k)
	assert.Equal(t, "storeKind", k.Type())
	assert.Error(t, k.Set("bogus"))
}
