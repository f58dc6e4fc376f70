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

package apis

import (
	"log/slog"

	"dirpx.dev/rtti/metrics"
)

// Config carries read-only knobs shared by the registry, the resolver and
// the strategies. It is passed by value and should be treated as immutable by
// implementations.
type Config struct {
	// MaxUnwrap limits how many pointer levels are stripped before a Go type
	// is resolved. Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// BuiltinNamespace is the namespace of builtin types ("System").
	BuiltinNamespace string

	// WarnDuplicateMembers logs a warning when a built type carries two
	// methods or two fields with the same name.
	WarnDuplicateMembers bool

	// Logger receives registration warnings and debug records.
	// A nil Logger means slog.Default().
	Logger *slog.Logger

	// Metrics receives registry and resolver events.
	// A nil Metrics means metrics.Nop().
	Metrics metrics.Registry
}

// Log returns the configured logger, falling back to slog.Default().
func (c Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Observer returns the configured metrics, falling back to metrics.Nop().
func (c Config) Observer() metrics.Registry {
	if c.Metrics == nil {
		return metrics.Nop()
	}
	return c.Metrics
}
