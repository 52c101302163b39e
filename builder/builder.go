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
	"dirpx.dev/opx/apis"
	"dirpx.dev/opx/registry"
	"dirpx.dev/opx/resolver"
	"dirpx.dev/opx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry. If a pre-existing
// registry is provided, its entries are copied into the new registry.
func (b *builder) BuildRegistry(_ apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Key, e.Namespace)
		}
	}
	return nreg
}

// BuildKinds builds and returns a new apis.KindRegistry. If a pre-existing
// registry is provided, its overrides are copied into the new one.
func (b *builder) BuildKinds(_ apis.Config, prev apis.KindRegistry) apis.KindRegistry {
	nk := registry.NewKinds()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nk.Register(e.Kind, e.Key)
		}
	}
	return nk
}

// BuildResolver builds the default chain: kind overrides first, then the
// device table.
func (b *builder) BuildResolver(_ apis.Config, kinds apis.KindRegistry) apis.Resolver {
	return resolver.New(
		strategy.NewKindStrategy(kinds),
		strategy.NewDeviceStrategy(),
	)
}
