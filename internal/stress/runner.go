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

// Package stress hammers an intern pool from many goroutines and checks that
// canonical values stay unique and are all reclaimed at the end.
package stress

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/intern"
)

// ErrLeak is returned when values are still interned after every handle was
// released.
var ErrLeak = errors.New("interned values leaked")

// ErrDuplicate is returned when two handles for equal values do not share a
// canonical owner.
var ErrDuplicate = errors.New("duplicate canonical owner")

// Key is the element type interned by a run. A dedicated type keeps the run's
// store apart from any other strings in the pool.
type Key string

// Result summarizes a finished run.
type Result struct {
	Rounds   int64
	Clones   int64
	Elapsed  time.Duration
	Leftover int
}

// Run drives opts.Workers goroutines against p until each has done
// opts.Iterations rounds or ctx is done. Every round interns a key twice,
// checks both handles share an owner, optionally clones, and releases all.
func Run(ctx context.Context, p *intern.Pool, opts *Options, r metrics.Registry) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if r == nil {
		r = metrics.NewRegistry()
	}
	rounds := metrics.GetOrRegisterMeter("stress.rounds", r)
	timer := metrics.GetOrRegisterTimer("stress.duration", r)

	keys := make([]Key, opts.Distinct)
	for i := range keys {
		keys[i] = Key("key-" + strconv.Itoa(i))
	}

	var done, clones atomic.Int64
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			for i := 0; i < opts.Iterations; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				k := keys[(w+i)%len(keys)]
				if err := round(p, k, opts.CloneEvery > 0 && i%opts.CloneEvery == 0, &clones); err != nil {
					return errors.Wrapf(err, "worker %d round %d", w, i)
				}
				done.Add(1)
				rounds.Mark(1)
			}
			return nil
		})
	}
	err := g.Wait()
	res := Result{
		Rounds:   done.Load(),
		Clones:   clones.Load(),
		Elapsed:  time.Since(start),
		Leftover: intern.LiveIn[Key](p),
	}
	timer.Update(res.Elapsed)

	logger := log.WithFields(log.Fields{
		"rounds":   res.Rounds,
		"clones":   res.Clones,
		"elapsed":  res.Elapsed,
		"leftover": res.Leftover,
	})
	if err != nil {
		logger.WithError(err).Error("Stress run failed")
		return res, err
	}
	if res.Leftover != 0 {
		logger.Error("Stress run leaked values")
		return res, errors.Wrapf(ErrLeak, "%d values of %T", res.Leftover, Key(""))
	}
	logger.Info("Stress run finished")
	return res, nil
}

func round(p *intern.Pool, k Key, clone bool, clones *atomic.Int64) error {
	a := intern.MakeIn(p, k)
	defer a.Release()
	b := intern.MakeIn(p, k)
	defer b.Release()

	if !a.Equal(b) {
		return errors.Wrap(ErrDuplicate, string(k))
	}
	if a.Value() != k {
		return fmt.Errorf("interned %q, got %q", k, a.Value())
	}
	if clone {
		c := a.Clone()
		defer c.Release()
		clones.Add(1)
		if !c.Equal(b) {
			return errors.Wrap(ErrDuplicate, "clone of "+string(k))
		}
	}
	return nil
}
