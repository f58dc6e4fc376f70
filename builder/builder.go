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

package builder

import (
	"log/slog"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/registry"
	"dirpx.dev/rtti/resolver"
	"dirpx.dev/rtti/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration. If a previous registry is provided, its types are
// re-registered in registration order, which rebuilds the derived index.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			if _, err := nreg.Register(e.Type); err != nil {
				cfg.Log().Warn("rtti: type dropped during registry migration",
					slog.String("name", e.Name), slog.Any("error", err))
			}
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver over reg. The previous
// resolver holds no state worth migrating.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver) apis.Resolver {
	return resolver.New(
		strategy.NewRegistryStrategy(reg),
		strategy.NewDeclarerStrategy(reg),
		strategy.NewBuiltinStrategy(reg),
	)
}
