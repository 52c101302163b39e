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

import "errors"

// ErrOperationNotFound is returned by a Namespace that has no implementation
// for the requested operation name.
var ErrOperationNotFound = errors.New("opx: operation not found in backend namespace")

// Func is a backend implementation of one operation. It receives the
// positional arguments and named parameters exactly as the caller gave them
// (factory calls additionally carry Size and Device).
type Func func(params Params, args ...Value) (Value, error)

// Namespace is a backend's table of operation name -> implementation.
// Registries hold namespaces by reference and never construct them.
type Namespace interface {
	// Key is the dispatch key the backend expects to be registered under.
	Key() Key
	// Lookup returns the implementation of op, or an error wrapping
	// ErrOperationNotFound.
	Lookup(op string) (Func, error)
}

// Wrapper is the cached callable for one operation name. It resolves the
// target backend on every invocation.
type Wrapper interface {
	// Name is the operation name the wrapper forwards to.
	Name() string
	// Path is the resolution path fixed when the wrapper was created.
	Path() Path
	// Call invokes the operation with no named parameters.
	Call(args ...Value) (Value, error)
	// Invoke invokes the operation with named parameters.
	Invoke(params Params, args ...Value) (Value, error)
}
