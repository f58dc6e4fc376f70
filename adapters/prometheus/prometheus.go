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

// Package prometheus provides a Prometheus implementation of the
// metrics.Registry interface.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/rtti/metrics"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Resolutions are in-process reflection work: microseconds to milliseconds.
var defaultBuckets = []float64{
	.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .1,
}

// registryMetrics implements metrics.Registry using Prometheus.
type registryMetrics struct {
	typesRegistered *prometheus.CounterVec
	conflicts       *prometheus.CounterVec
	lookups         *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec
	resolveFailures prometheus.Counter
}

// NewRegistryMetrics creates a new Prometheus implementation of
// metrics.Registry and registers its collectors with reg.
func NewRegistryMetrics(reg prometheus.Registerer) metrics.Registry {
	m := &registryMetrics{
		typesRegistered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtti_types_registered_total",
			Help: "Total number of types registered",
		}, []string{"namespace"}),

		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtti_registration_conflicts_total",
			Help: "Total number of rejected conflicting registrations",
		}, []string{"namespace"}),

		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtti_lookups_total",
			Help: "Total number of registry lookups",
		}, []string{"hit"}),

		resolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rtti_resolve_duration_seconds",
			Help:    "Time spent in a resolution strategy in seconds",
			Buckets: defaultBuckets,
		}, []string{"strategy"}),

		resolveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rtti_resolve_failures_total",
			Help: "Total number of types no strategy could resolve",
		}),
	}

	reg.MustRegister(
		m.typesRegistered,
		m.conflicts,
		m.lookups,
		m.resolveDuration,
		m.resolveFailures,
	)

	return m
}

func (m *registryMetrics) TypeRegistered(namespace string) {
	m.typesRegistered.WithLabelValues(namespace).Inc()
}

func (m *registryMetrics) RegistrationConflict(namespace string) {
	m.conflicts.WithLabelValues(namespace).Inc()
}

func (m *registryMetrics) Lookup(hit bool) {
	m.lookups.WithLabelValues(boolToStr(hit)).Inc()
}

func (m *registryMetrics) ResolveDuration(strategy string) metrics.Timer {
	return newTimer(m.resolveDuration.WithLabelValues(strategy))
}

func (m *registryMetrics) ResolveFailed() {
	m.resolveFailures.Inc()
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
