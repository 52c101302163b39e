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

// Package namespace provides a map-backed apis.Namespace for backends.
//
// A backend builds its table once during initialization and hands it to
// the registry:
//
//	ns := namespace.New("dense").
//		Def("add", add).
//		Def("sigmoid", sigmoid)
//	_ = reg.Register(ns.Key(), ns)
//
// Tables are meant to be complete before registration; Def after the table
// is shared is safe but only visible to lookups that start afterwards.
package namespace

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"dirpx.dev/opx/apis"
)

// Table is a named operation table.
type Table struct {
	key apis.Key
	mu  sync.RWMutex
	ops map[string]apis.Func
}

// Ensure Table implements apis.Namespace.
var _ apis.Namespace = (*Table)(nil)

// New returns an empty table for the backend key.
func New(key apis.Key) *Table {
	return &Table{key: key, ops: make(map[string]apis.Func)}
}

// Def adds or replaces the implementation of op and returns t for chaining.
// A nil fn is ignored.
func (t *Table) Def(op string, fn apis.Func) *Table {
	if fn == nil {
		return t
	}
	t.mu.Lock()
	t.ops[op] = fn
	t.mu.Unlock()
	return t
}

// Key implements apis.Namespace.
func (t *Table) Key() apis.Key { return t.key }

// Lookup implements apis.Namespace.
func (t *Table) Lookup(op string) (apis.Func, error) {
	t.mu.RLock()
	fn, ok := t.ops[op]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: backend %q has no %q", apis.ErrOperationNotFound, t.key, op)
	}
	return fn, nil
}

// Ops returns the sorted operation names.
func (t *Table) Ops() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.ops))
}
