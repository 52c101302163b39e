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

package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"dirpx.dev/opx/apis"
)

var (
	// ErrEmptyKey is returned when an empty dispatch key is provided.
	ErrEmptyKey = errors.New("opx(registry): empty dispatch key provided")
	// ErrNilNamespace is returned when a nil namespace is provided.
	ErrNilNamespace = errors.New("opx(registry): nil namespace provided")
	// ErrDuplicateBackend indicates an attempt to register a dispatch key twice.
	ErrDuplicateBackend = errors.New("opx(registry): backend already registered")
	// ErrBackendNotRegistered is returned when no namespace is registered
	// under the requested key.
	ErrBackendNotRegistered = errors.New("opx(registry): backend not registered")
)

// New constructs an empty backend Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is a Registry implementation backed by sync.Map.
type registry struct {
	// mu serializes writers so the duplicate check and insert are atomic.
	mu sync.Mutex
	// m maps apis.Key to apis.Namespace.
	m sync.Map
	// count tracks the number of registered entries.
	count int
}

// Register stores ns under key. A second registration of the same key fails
// and keeps the first namespace.
func (r *registry) Register(key apis.Key, ns apis.Namespace) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ns == nil {
		return ErrNilNamespace
	}

	// Fast read path: reject duplicates without locking.
	if _, ok := r.m.Load(key); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBackend, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, ok := r.m.Load(key); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBackend, key)
	}

	r.m.Store(key, ns)
	r.count++
	return nil
}

// Lookup returns the namespace for key.
func (r *registry) Lookup(key apis.Key) (apis.Namespace, error) {
	if v, ok := r.m.Load(key); ok {
		return v.(apis.Namespace), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBackendNotRegistered, key)
}

// Entries returns a snapshot sorted by key.
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Key:       key.(apis.Key),
			Namespace: value.(apis.Namespace),
		})
		return true
	})
	slices.SortFunc(entries, func(a, b apis.Entry) int { return cmp.Compare(a.Key, b.Key) })
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
