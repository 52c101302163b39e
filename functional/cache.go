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

package functional

import (
	"maps"
	"slices"
	"sync"

	"dirpx.dev/opx/apis"
)

// wrapperCache memoizes one wrapper per operation name. Entries are never
// replaced or evicted.
type wrapperCache struct {
	// mu serializes creation so exactly one wrapper is committed per name.
	mu sync.Mutex
	// m maps operation name to apis.Wrapper.
	m sync.Map
}

func newWrapperCache() *wrapperCache {
	return &wrapperCache{}
}

// getOrCreate returns the cached wrapper for name, calling build under the
// write lock if there is none yet. created reports whether build ran.
func (c *wrapperCache) getOrCreate(name string, build func(string) apis.Wrapper) (w apis.Wrapper, created bool) {
	// Fast read path.
	if v, ok := c.m.Load(name); ok {
		return v.(apis.Wrapper), false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if v, ok := c.m.Load(name); ok {
		return v.(apis.Wrapper), false
	}

	w = build(name)
	c.m.Store(name, w)
	return w, true
}

func (c *wrapperCache) names() []string {
	var out []string
	c.m.Range(func(key, _ any) bool {
		out = append(out, key.(string))
		return true
	})
	slices.Sort(out)
	return out
}

// factorySet is the set of operation names dispatched on the factory path.
type factorySet struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func newFactorySet() *factorySet {
	return &factorySet{names: make(map[string]struct{})}
}

// add inserts names and returns the ones that were not present yet.
func (s *factorySet) add(names ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	for _, n := range names {
		if _, ok := s.names[n]; ok {
			continue
		}
		s.names[n] = struct{}{}
		added = append(added, n)
	}
	return added
}

func (s *factorySet) has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[name]
	return ok
}

func (s *factorySet) list() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.names))
}
