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

package dense

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"

	"dirpx.dev/opx/apis"
)

var (
	// ErrArgument is returned when an operation gets the wrong number or
	// kind of arguments.
	ErrArgument = errors.New("opx(dense): invalid argument")
	// ErrLengthMismatch is returned when two columns differ in length.
	ErrLengthMismatch = errors.New("opx(dense): column length mismatch")
)

func numeric(v apis.Value) (*Float64, bool) {
	c, ok := v.Column()
	if !ok {
		return nil, false
	}
	f, ok := c.(*Float64)
	return f, ok
}

func text(v apis.Value) (*Strings, bool) {
	c, ok := v.Column()
	if !ok {
		return nil, false
	}
	s, ok := c.(*Strings)
	return s, ok
}

// unary lifts an element-wise kernel over a Float64 column.
func unary(op string, kernel func(float64) float64) apis.Func {
	return func(_ apis.Params, args ...apis.Value) (apis.Value, error) {
		if len(args) != 1 {
			return apis.Value{}, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArgument, op, len(args))
		}
		c, ok := numeric(args[0])
		if !ok {
			return apis.Value{}, fmt.Errorf("%w: %s needs a %s column, got %s", ErrArgument, op, KindFloat64, args[0])
		}
		out := make([]float64, len(c.data))
		for i, x := range c.data {
			out[i] = kernel(x)
		}
		return apis.Col(&Float64{data: out, device: c.device}), nil
	}
}

// binary lifts column/column and column/scalar kernels. vec computes
// dst = a op b in place; scal computes a op b for one element.
func binary(op string, vec func(dst, a, b []float64), scal func(a, b float64) float64) apis.Func {
	return func(_ apis.Params, args ...apis.Value) (apis.Value, error) {
		if len(args) != 2 {
			return apis.Value{}, fmt.Errorf("%w: %s takes 2 arguments, got %d", ErrArgument, op, len(args))
		}
		lc, lcol := numeric(args[0])
		rc, rcol := numeric(args[1])
		ls, lsc := args[0].Scalar()
		rs, rsc := args[1].Scalar()

		switch {
		case lcol && rcol:
			if len(lc.data) != len(rc.data) {
				return apis.Value{}, fmt.Errorf("%w: %s of %d and %d elements", ErrLengthMismatch, op, len(lc.data), len(rc.data))
			}
			out := make([]float64, len(lc.data))
			vec(out, lc.data, rc.data)
			return apis.Col(&Float64{data: out, device: lc.device}), nil
		case lcol && rsc:
			out := make([]float64, len(lc.data))
			for i, x := range lc.data {
				out[i] = scal(x, rs)
			}
			return apis.Col(&Float64{data: out, device: lc.device}), nil
		case lsc && rcol:
			out := make([]float64, len(rc.data))
			for i, x := range rc.data {
				out[i] = scal(ls, x)
			}
			return apis.Col(&Float64{data: out, device: rc.device}), nil
		default:
			return apis.Value{}, fmt.Errorf("%w: %s(%s, %s)", ErrArgument, op, args[0], args[1])
		}
	}
}

// reduce lifts a slice reduction to a scalar-valued operation.
func reduce(op string, kernel func([]float64) float64) apis.Func {
	return func(_ apis.Params, args ...apis.Value) (apis.Value, error) {
		if len(args) != 1 {
			return apis.Value{}, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArgument, op, len(args))
		}
		c, ok := numeric(args[0])
		if !ok {
			return apis.Value{}, fmt.Errorf("%w: %s needs a %s column, got %s", ErrArgument, op, KindFloat64, args[0])
		}
		if len(c.data) == 0 {
			return apis.Scalar(math.NaN()), nil
		}
		return apis.Scalar(kernel(c.data)), nil
	}
}

func mapStrings(op string, kernel func(string) string) apis.Func {
	return func(_ apis.Params, args ...apis.Value) (apis.Value, error) {
		if len(args) != 1 {
			return apis.Value{}, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArgument, op, len(args))
		}
		c, ok := text(args[0])
		if !ok {
			return apis.Value{}, fmt.Errorf("%w: %s needs a %s column, got %s", ErrArgument, op, KindString, args[0])
		}
		out := make([]string, len(c.data))
		for i, s := range c.data {
			out[i] = kernel(s)
		}
		return apis.Col(&Strings{data: out, device: c.device}), nil
	}
}

func length(_ apis.Params, args ...apis.Value) (apis.Value, error) {
	if len(args) != 1 {
		return apis.Value{}, fmt.Errorf("%w: length takes 1 argument, got %d", ErrArgument, len(args))
	}
	c, ok := text(args[0])
	if !ok {
		return apis.Value{}, fmt.Errorf("%w: length needs a %s column, got %s", ErrArgument, KindString, args[0])
	}
	out := make([]float64, len(c.data))
	for i, s := range c.data {
		out[i] = float64(utf8.RuneCountInString(s))
	}
	return apis.Col(&Float64{data: out, device: c.device}), nil
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func neg(x float64) float64 { return -x }

func addTo(dst, a, b []float64) { floats.AddTo(dst, a, b) }
func subTo(dst, a, b []float64) { floats.SubTo(dst, a, b) }
func mulTo(dst, a, b []float64) { floats.MulTo(dst, a, b) }
func divTo(dst, a, b []float64) { floats.DivTo(dst, a, b) }

// scalars pulls optional scalar arguments, substituting defaults for the
// ones not given.
func scalars(op string, args []apis.Value, defaults ...float64) ([]float64, error) {
	if len(args) > len(defaults) {
		return nil, fmt.Errorf("%w: %s takes at most %d arguments, got %d", ErrArgument, op, len(defaults), len(args))
	}
	out := slices.Clone(defaults)
	for i, a := range args {
		v, ok := a.Scalar()
		if !ok {
			return nil, fmt.Errorf("%w: %s argument %d must be a scalar, got %s", ErrArgument, op, i, a)
		}
		out[i] = v
	}
	return out, nil
}

// factory builds a column of params.Size elements on params.Device.
func factory(op string, fill func(dst []float64, args []float64), defaults ...float64) apis.Func {
	return func(params apis.Params, args ...apis.Value) (apis.Value, error) {
		n, ok := params.Size.Int()
		if !ok || n < 0 {
			return apis.Value{}, fmt.Errorf("%w: %s needs a non-negative integer size, got %s", ErrArgument, op, params.Size)
		}
		vals, err := scalars(op, args, defaults...)
		if err != nil {
			return apis.Value{}, err
		}
		device := params.Device
		if device == "" {
			device = DefaultDevice
		}
		out := make([]float64, n)
		fill(out, vals)
		return apis.Col(&Float64{data: out, device: device}), nil
	}
}

func fillConst(dst []float64, args []float64) {
	for i := range dst {
		dst[i] = args[0]
	}
}

func fillWith(v float64) func([]float64, []float64) {
	return func(dst []float64, _ []float64) {
		for i := range dst {
			dst[i] = v
		}
	}
}

func fillArange(dst []float64, args []float64) {
	start, step := args[0], args[1]
	for i := range dst {
		dst[i] = start + float64(i)*step
	}
}

func fillLinspace(dst []float64, args []float64) {
	switch len(dst) {
	case 0:
	case 1:
		dst[0] = args[0]
	default:
		floats.Span(dst, args[0], args[1])
	}
}
