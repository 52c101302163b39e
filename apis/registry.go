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

// Registry maps dispatch keys to backend namespaces. Entries are added once
// and never replaced or removed.
type Registry interface {
	// Register inserts ns under key. Registering a key twice is an error and
	// leaves the first namespace in place.
	Register(key Key, ns Namespace) error
	// Lookup returns the namespace registered under key.
	Lookup(key Key) (Namespace, error)
	// Entries returns a snapshot ordered by key.
	Entries() []Entry
	// Count returns the number of registered backends.
	Count() int
}

// Entry is a single (key, namespace) association in a Registry snapshot.
type Entry struct {
	Key       Key
	Namespace Namespace
}

// KindRegistry maps column kinds to the key that must serve them,
// regardless of device.
type KindRegistry interface {
	// Register forces kind onto key. Registering a kind that already has
	// a key is an error, even when the key is the same.
	Register(kind Kind, key Key) error
	// Lookup returns the forced key for kind, if any.
	Lookup(kind Kind) (Key, bool)
	// Entries returns a snapshot ordered by kind.
	Entries() []KindEntry
	// Count returns the number of overrides.
	Count() int
}

// KindEntry is a single (kind, key) override in a KindRegistry snapshot.
type KindEntry struct {
	Kind Kind
	Key  Key
}
