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
	"errors"
	"fmt"

	"dirpx.dev/opx/apis"
)

var (
	// ErrMissingSize is returned when a factory call carries no size.
	ErrMissingSize = errors.New("opx(functional): factory method call requires an explicit size")
	// ErrUnsupportedSize is returned when a factory call's size is not a
	// plain integer.
	ErrUnsupportedSize = errors.New("opx(functional): unsupported size specification")
)

// defaultWrapper resolves from the first column argument.
type defaultWrapper struct {
	fn   *Functional
	name string
}

// Ensure defaultWrapper implements apis.Wrapper.
var _ apis.Wrapper = (*defaultWrapper)(nil)

func (w *defaultWrapper) Name() string    { return w.name }
func (w *defaultWrapper) Path() apis.Path { return apis.Default }

func (w *defaultWrapper) Call(args ...apis.Value) (apis.Value, error) {
	return w.Invoke(apis.Params{}, args...)
}

// Invoke forwards args and params unchanged and returns the backend result
// verbatim.
func (w *defaultWrapper) Invoke(params apis.Params, args ...apis.Value) (apis.Value, error) {
	key, err := w.fn.res.Resolve(args, w.fn.cfg)
	if err != nil {
		return apis.Value{}, fmt.Errorf("%s: %w", w.name, err)
	}
	op, err := w.fn.lookup(key, w.name)
	if err != nil {
		return apis.Value{}, err
	}
	return op(params, args...)
}

// factoryWrapper resolves from the device parameter and never inspects args.
type factoryWrapper struct {
	fn   *Functional
	name string
}

// Ensure factoryWrapper implements apis.Wrapper.
var _ apis.Wrapper = (*factoryWrapper)(nil)

func (w *factoryWrapper) Name() string    { return w.name }
func (w *factoryWrapper) Path() apis.Path { return apis.Factory }

// Call always fails with ErrMissingSize; factory calls go through Invoke.
func (w *factoryWrapper) Call(args ...apis.Value) (apis.Value, error) {
	return w.Invoke(apis.Params{}, args...)
}

// Invoke requires an integer params.Size, fills in the default device when
// params.Device is empty, and forwards both to the backend.
func (w *factoryWrapper) Invoke(params apis.Params, args ...apis.Value) (apis.Value, error) {
	if !params.Size.IsSet() {
		return apis.Value{}, fmt.Errorf("%w: %q", ErrMissingSize, w.name)
	}
	if _, ok := params.Size.Int(); !ok {
		return apis.Value{}, fmt.Errorf("%w: %s for %q", ErrUnsupportedSize, params.Size, w.name)
	}
	if params.Device == "" {
		params.Device = w.fn.cfg.DefaultDevice
	}

	key, err := w.fn.res.ResolveDevice(params.Device, w.fn.cfg)
	if err != nil {
		return apis.Value{}, fmt.Errorf("%s: %w", w.name, err)
	}
	op, err := w.fn.lookup(key, w.name)
	if err != nil {
		return apis.Value{}, err
	}
	return op(params, args...)
}
