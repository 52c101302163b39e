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

import "strconv"

type sizeKind uint8

const (
	sizeUnset sizeKind = iota
	sizeInt
	sizeSymbolic
)

// Size is the output size of a factory operation. The zero Size is unset.
// Only integer sizes are dispatchable today; symbolic sizes exist so that
// callers can express them and receive a precise rejection.
type Size struct {
	kind sizeKind
	n    int
	expr string
}

// IntSize returns a plain integer size.
func IntSize(n int) Size {
	return Size{kind: sizeInt, n: n}
}

// SymbolicSize returns a size described by an expression (e.g. "len(x)").
func SymbolicSize(expr string) Size {
	return Size{kind: sizeSymbolic, expr: expr}
}

// IsSet reports whether a size was given.
func (s Size) IsSet() bool { return s.kind != sizeUnset }

// Int returns the size as an integer when it is one.
func (s Size) Int() (int, bool) {
	return s.n, s.kind == sizeInt
}

// String implements fmt.Stringer.
func (s Size) String() string {
	switch s.kind {
	case sizeInt:
		return strconv.Itoa(s.n)
	case sizeSymbolic:
		return "symbolic(" + s.expr + ")"
	default:
		return "unset"
	}
}

// Params are the named parameters of a call. The default dispatch path
// forwards them untouched; the factory path requires Size and fills in
// Device.
type Params struct {
	Size   Size
	Device string
}

// CallOption mutates Params.
type CallOption func(*Params)

// WithSize sets an integer size.
func WithSize(n int) CallOption {
	return func(p *Params) { p.Size = IntSize(n) }
}

// WithSizeSpec sets an arbitrary size.
func WithSizeSpec(s Size) CallOption {
	return func(p *Params) { p.Size = s }
}

// WithDevice sets the target device.
func WithDevice(device string) CallOption {
	return func(p *Params) { p.Device = device }
}

// NewParams applies opts over the zero Params.
func NewParams(opts ...CallOption) Params {
	var p Params
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}
