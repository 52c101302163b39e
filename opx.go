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

package opx

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/opx/apis"
	"dirpx.dev/opx/backend/dense"
	"dirpx.dev/opx/config"
	"dirpx.dev/opx/functional"
)

// init publishes the canonical dispatcher with the bundled dense backend.
func init() {
	f := functional.New(functional.WithConfig(config.DefaultConfig()))
	if err := dense.Register(f); err != nil {
		panic(err)
	}
	st.Store(&state{fn: f})
}

// ErrNilFunctional is returned by SetDefault when given nil.
var ErrNilFunctional = errors.New("opx: nil functional")

// Default returns the canonical dispatcher.
func Default() *functional.Functional {
	return st.Load().fn
}

// SetDefault replaces the canonical dispatcher. Wrappers obtained from the
// previous one keep dispatching through it.
// This is mainly used by tests to get a clean deterministic state.
func SetDefault(f *functional.Functional) error {
	if f == nil {
		return ErrNilFunctional
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(&state{fn: f})
	return nil
}

// Config returns the resolution tables of the canonical dispatcher.
func Config() apis.Config {
	return st.Load().fn.Config()
}

// SetConfig rebuilds the canonical dispatcher with cfg, migrating every
// registered backend, kind override and factory method name. Wrappers are
// rebuilt lazily on the new dispatcher.
func SetConfig(cfg apis.Config) {
	Rebuild(functional.WithConfig(cfg))
}

// Rebuild replaces the canonical dispatcher with a child of the current one
// built with opts. Registrations made through this package either land in
// the parent before it is copied or in the child after it is published.
func Rebuild(opts ...functional.Option) *functional.Functional {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	f := functional.New(append([]functional.Option{functional.WithParent(old.fn)}, opts...)...)
	st.Store(&state{fn: f})
	return f
}

// Op returns the wrapper for name on the canonical dispatcher.
func Op(name string) apis.Wrapper {
	return st.Load().fn.Op(name)
}

// RegisterBackend registers ns under key on the canonical dispatcher.
func RegisterBackend(key apis.Key, ns apis.Namespace) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	return st.Load().fn.RegisterBackend(key, ns)
}

// RegisterKind forces columns of kind onto key on the canonical dispatcher.
func RegisterKind(kind apis.Kind, key apis.Key) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	return st.Load().fn.RegisterKind(kind, key)
}

// RegisterFactoryMethods marks names as factory operations on the canonical
// dispatcher.
func RegisterFactoryMethods(names ...string) {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Load().fn.RegisterFactoryMethods(names...)
}

// ScaleToUnitRange scales col to [0,1] through the canonical dispatcher.
func ScaleToUnitRange(col apis.Column) (apis.Value, error) {
	return st.Load().fn.ScaleToUnitRange(col)
}

// buildMu serializes writers (swaps and registrations) so we never publish
// partially-built snapshots or register into one that is being replaced.
var buildMu sync.Mutex

// st is the global opx state.
var st atomic.Pointer[state]

// state is the global opx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// fn is the canonical dispatcher.
	fn *functional.Functional
}
