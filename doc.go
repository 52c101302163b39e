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

// Package opx provides a process-wide operation dispatch service.
//
// opx routes a named data-processing operation ("add", "sigmoid", "full")
// to one of several interchangeable backends. The backend is picked on
// every call from the data the call operates on, so the same operation
// name can run on an in-memory CPU column in one call and on a GPU column
// in the next.
//
// # Design
//
// The dispatcher (functional.Functional) holds:
//
//   - Registry: dispatch key -> backend namespace. A backend registers its
//     namespace once; registering a key twice is an error and the first
//     namespace stays in place.
//
//   - Kind overrides: column kind -> dispatch key. A container flavour that
//     only one backend understands can force that backend regardless of
//     the device it reports.
//
//   - Config: the device table (device label -> dispatch key) and the
//     default device used by factory calls.
//
//   - Factory method set: operation names that construct columns from an
//     explicit size and device rather than from a column argument.
//
//   - Wrapper cache: one wrapper per operation name, built on first use
//     and reused forever after.
//
// # Resolution
//
// A default wrapper resolves its dispatch key on every call:
//
//  1. Take the first column among the arguments, left to right. Calls
//     without any column fail with resolver.ErrNoColumnArgument.
//  2. If the column's kind has an override, use it.
//  3. Otherwise map the column's device through the device table, failing
//     with resolver.ErrUnsupportedDevice when unmapped.
//
// The namespace registered under the key is then asked for the operation,
// which is invoked with the original arguments. The result is returned
// verbatim.
//
// A factory wrapper ignores its arguments for resolution. It requires an
// integer size (apis.WithSize) and routes on the device parameter
// (apis.WithDevice, defaulting to Config.DefaultDevice). Both are forwarded
// to the backend.
//
// Whether a name gets a default or factory wrapper is decided when the
// wrapper is first created. Registering the name as a factory method later
// does not change the wrapper already handed out.
//
// # Global API
//
// The package keeps one canonical dispatcher, initialised with the bundled
// dense backend (package backend/dense) serving device "cpu":
//
//	out, err := opx.Op("sigmoid").Call(apis.Col(dense.FromFloats(1, 2, 3)))
//	ones, err := opx.Op("ones").Invoke(apis.NewParams(apis.WithSize(3)))
//	scaled, err := opx.ScaleToUnitRange(dense.FromFloats(2, 4, 6))
//
// Reads are lock-free: the dispatcher is published through an atomic
// pointer and its registries are sync.Map backed. Registration is
// serialized per registry so duplicate detection is atomic with the
// insert. SetConfig and SetDefault swap the whole dispatcher under a build
// mutex.
//
// # Concurrency model
//
// Registration is expected to happen during initialization, before
// dispatch. Interleaving the two is race-free: a call observes a
// registration if and only if the registration completed before the call
// looked up the table in question. No further ordering is promised.
//
// # Scope
//
// opx does not compute anything itself. Beyond reading min and max for
// ScaleToUnitRange it never looks at column contents.
package opx
