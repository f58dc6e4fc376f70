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

// Command rtti is an interactive inspector for the runtime type registry.
//
// It declares a small demo model, then reads commands:
//
//	:types             list registered types
//	:type <name>       describe a type (full name, simple name or id)
//	:derived <name>    list direct and transitive descendants
//	:quit              exit
//
// With -metrics, registry and resolver metrics are served for Prometheus.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dirpx.dev/rtti"
	promadapter "dirpx.dev/rtti/adapters/prometheus"
	"dirpx.dev/rtti/config"
)

const historyFile = ".rtti_history"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("rtti", flag.ContinueOnError)
	metricsAddr := fs.String("metrics", "", "serve Prometheus metrics on `addr` (e.g. :9090)")
	verbose := fs.Bool("v", false, "log registrations at debug level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	opts := []config.Option{config.WithLogger(log)}
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, config.WithMetrics(promadapter.NewRegistryMetrics(reg)))
		go serveMetrics(log, *metricsAddr, reg)
	}
	rtti.SetConfig(config.NewConfig(opts...))

	if err := declareDemo(); err != nil {
		log.Error("declaring demo types", slog.Any("error", err))
		return 1
	}

	home, _ := os.UserHomeDir()
	return repl(os.Stdout, filepath.Join(home, historyFile))
}

func serveMetrics(log *slog.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.Info("serving metrics", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server stopped", slog.Any("error", err))
	}
}

func usage() string {
	return "commands: :types, :type <name>, :derived <name>, :quit"
}
