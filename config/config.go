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
	"log/slog"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/metrics"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultBuiltinNamespace represents the default for BuiltinNamespace.
	DefaultBuiltinNamespace = "System"
	// DefaultWarnDuplicateMembers represents the default for WarnDuplicateMembers.
	DefaultWarnDuplicateMembers = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.BuiltinNamespace == "" {
		cfg.BuiltinNamespace = DefaultBuiltinNamespace
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
// Logger and Metrics are left nil and resolve to slog.Default() and
// metrics.Nop() at the point of use.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:            DefaultMaxUnwrap,
		BuiltinNamespace:     DefaultBuiltinNamespace,
		WarnDuplicateMembers: DefaultWarnDuplicateMembers,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithBuiltinNamespace sets the namespace of builtin types.
// An empty namespace resets to the default.
func WithBuiltinNamespace(ns string) Option {
	return func(c *apis.Config) {
		c.BuiltinNamespace = ns
	}
}

// WithWarnDuplicateMembers sets the WarnDuplicateMembers option.
func WithWarnDuplicateMembers(warn bool) Option {
	return func(c *apis.Config) {
		c.WarnDuplicateMembers = warn
	}
}

// WithLogger sets the Logger option.
func WithLogger(l *slog.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = l
	}
}

// WithMetrics sets the Metrics option.
func WithMetrics(m metrics.Registry) Option {
	return func(c *apis.Config) {
		c.Metrics = m
	}
}
