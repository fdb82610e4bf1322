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
	"context"
	"testing"

	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/intern"
	"dirpx.dev/intern/apis"
	"dirpx.dev/intern/config"
)

func TestRun(t *testing.T) {
	for _, kind := range []apis.StoreKind{apis.Locked, apis.LockFree} {
		t.Run(kind.String(), func(t *testing.T) {
			p := intern.New(config.WithStore(kind), config.WithLogger(nil), config.WithMetrics(nil))
			opts := NewOptions()
			opts.Workers = 8
			opts.Iterations = 500
			opts.Distinct = 4
			r := metrics.NewRegistry()

			res, err := Run(context.Background(), p, opts, r)
			require.NoError(t, err)
			assert.Equal(t, int64(8*500), res.Rounds)
			assert.Positive(t, res.Clones)
			assert.Equal(t, 0, res.Leftover)

			meter, ok := r.Get("stress.rounds").(metrics.Meter)
			require.True(t, ok)
			assert.Equal(t, int64(8*500), meter.Count())
		})
	}
}

func TestRun_Canceled(t *testing.T) {
	p := intern.New(config.WithLogger(nil), config.WithMetrics(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, p, NewOptions(), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Rounds)
	assert.Equal(t, 0, res.Leftover)
}

func TestRun_InvalidOptions(t *testing.T) {
	p := intern.New(config.WithLogger(nil), config.WithMetrics(nil))
	opts := NewOptions()
	opts.Workers = 0

	_, err := Run(context.Background(), p, opts, nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestRun_DetectsLeak(t *testing.T) {
	p := intern.New(config.WithLogger(nil), config.WithMetrics(nil), config.WithReleaseUnreachable(false))
	held := intern.MakeIn(p, Key("key-0"))
	defer held.Release()

	opts := NewOptions()
	opts.Workers = 2
	opts.Iterations = 10

	res, err := Run(context.Background(), p, opts, nil)
	assert.ErrorIs(t, err, ErrLeak)
	assert.Equal(t, 1, res.Leftover)
}
