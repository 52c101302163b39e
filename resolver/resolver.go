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

package resolver

import (
	"errors"
	"fmt"

	"dirpx.dev/opx/apis"
)

var (
	// ErrNoColumnArgument is returned when a default-path call carries no
	// column to dispatch on. Scalar-only calls are not dispatchable.
	ErrNoColumnArgument = errors.New("opx(resolver): none of the arguments is a column")
	// ErrUnsupportedDevice is returned when a device has no mapped key.
	ErrUnsupportedDevice = errors.New("opx(resolver): unsupported device")
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryResolve calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Resolve dispatches on the first column in args; later columns are only
// forwarded. Strategies run in order until one handles it.
func (r chain) Resolve(args []apis.Value, cfg apis.Config) (apis.Key, error) {
	col, ok := apis.FirstColumn(args)
	if !ok {
		return "", ErrNoColumnArgument
	}
	for _, s := range r.strats {
		if key, ok := s.TryResolve(col, cfg); ok {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %q (column kind %q)", ErrUnsupportedDevice, col.Device(), col.Kind())
}

// ResolveDevice consults only the device table.
func (chain) ResolveDevice(device string, cfg apis.Config) (apis.Key, error) {
	if key, ok := cfg.DeviceKey(device); ok {
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDevice, device)
}
