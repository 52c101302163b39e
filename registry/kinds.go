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
	// ErrEmptyKind is returned when an empty column kind is provided.
	ErrEmptyKind = errors.New("opx(registry): empty column kind provided")
	// ErrDuplicateKind indicates an attempt to register a kind that is
	// already mapped.
	ErrDuplicateKind = errors.New("opx(registry): column kind already registered")
)

// NewKinds constructs an empty KindRegistry.
func NewKinds() apis.KindRegistry {
	return &kinds{}
}

// kinds is a KindRegistry backed by sync.Map.
type kinds struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps apis.Kind to apis.Key.
	m sync.Map
	// count tracks the number of registered entries.
	count int
}

// Register forces kind onto key. A kind is registered at most once.
func (r *kinds) Register(kind apis.Kind, key apis.Key) error {
	if kind == "" {
		return ErrEmptyKind
	}
	if key == "" {
		return ErrEmptyKey
	}

	// Fast read path: duplicate check without locking.
	if old, ok := r.m.Load(kind); ok {
		return r.check(kind, old.(apis.Key), key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.m.Load(kind); ok {
		return r.check(kind, old.(apis.Key), key)
	}

	r.m.Store(kind, key)
	r.count++
	return nil
}

func (*kinds) check(kind apis.Kind, old, key apis.Key) error {
	return fmt.Errorf("%w: %q is already mapped to %q, refusing %q", ErrDuplicateKind, kind, old, key)
}

// Lookup returns the forced key for kind.
func (r *kinds) Lookup(kind apis.Kind) (apis.Key, bool) {
	if v, ok := r.m.Load(kind); ok {
		return v.(apis.Key), true
	}
	return "", false
}

// Entries returns a snapshot sorted by kind.
func (r *kinds) Entries() []apis.KindEntry {
	entries := make([]apis.KindEntry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.KindEntry{
			Kind: key.(apis.Kind),
			Key:  value.(apis.Key),
		})
		return true
	})
	slices.SortFunc(entries, func(a, b apis.KindEntry) int { return cmp.Compare(a.Kind, b.Kind) })
	return entries
}

// Count returns the number of registered entries.
func (r *kinds) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
