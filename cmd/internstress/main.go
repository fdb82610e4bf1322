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

// Command internstress runs a concurrent intern/release workload against a
// pool and exits non-zero if a canonical value is duplicated or leaked.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"dirpx.dev/intern"
	"dirpx.dev/intern/config"
	"dirpx.dev/intern/internal/stress"
	"dirpx.dev/intern/promexport"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)

	opts := stress.NewOptions()
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	if err := opts.Parse(fs, os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		log.Error(err)
		os.Exit(2)
	}

	if err := run(opts, fs); err != nil {
		log.WithError(err).Fatal("internstress failed")
	}
}

func run(opts *stress.Options, fs *pflag.FlagSet) error {
	lvl, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid --log-level")
	}
	log.SetLevel(lvl)

	reg := metrics.NewRegistry()
	var poolOpts []config.Option
	if opts.ConfigFile != "" {
		f, err := config.Load(opts.ConfigFile)
		if err != nil {
			return err
		}
		fileOpts, err := f.Options()
		if err != nil {
			return err
		}
		poolOpts = append(poolOpts, fileOpts...)
	}
	// Flags given explicitly win over the file.
	if opts.ConfigFile == "" || fs.Changed("store") {
		poolOpts = append(poolOpts, config.WithStore(opts.Store))
	}
	poolOpts = append(poolOpts, config.WithMetrics(reg), config.WithReleaseUnreachable(false))
	p := intern.New(poolOpts...)

	log.WithFields(log.Fields{
		"workers":    opts.Workers,
		"iterations": opts.Iterations,
		"distinct":   opts.Distinct,
		"store":      p.Config().Store.String(),
	}).Info("Starting stress run")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.MetricsAddr != "" {
		srv := serveMetrics(opts.MetricsAddr, p)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	_, err = stress.Run(ctx, p, opts, reg)
	if opts.Report {
		metrics.WriteOnce(reg, os.Stdout)
	}
	return err
}

func serveMetrics(addr string, p *intern.Pool) *http.Server {
	pr := prometheus.NewRegistry()
	pr.MustRegister(promexport.NewCollector(p, "intern"))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(pr, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("Serving Prometheus metrics")
	return srv
}
