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

package strategy

import (
	"dirpx.dev/opx/apis"
)

// NewKindStrategy creates an apis.Strategy that consults a KindRegistry.
// A column whose kind is registered is dispatched to the forced key no
// matter which device it lives on.
func NewKindStrategy(kinds apis.KindRegistry) apis.Strategy {
	return &kindStrategy{kinds: kinds}
}

// kindStrategy is the override fast path.
type kindStrategy struct {
	kinds apis.KindRegistry
}

// Ensure kindStrategy implements apis.Strategy.
var _ apis.Strategy = (*kindStrategy)(nil)

// TryResolve looks up col's kind in the registry.
func (s *kindStrategy) TryResolve(col apis.Column, _ apis.Config) (apis.Key, bool) {
	if col == nil || s.kinds == nil {
		return "", false
	}
	return s.kinds.Lookup(col.Kind())
}
