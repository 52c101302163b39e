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
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"dirpx.dev/opx/apis"
)

// Column kinds served by this backend.
const (
	KindFloat64 apis.Kind = "dense.float64"
	KindString  apis.Kind = "dense.string"
)

// DefaultDevice is the device label new columns carry.
const DefaultDevice = "cpu"

// Float64 is an immutable in-memory numeric column.
type Float64 struct {
	data   []float64
	device string
}

// Ensure Float64 implements apis.NumericColumn.
var _ apis.NumericColumn = (*Float64)(nil)

// FromFloats copies data into a new column on DefaultDevice.
func FromFloats(data ...float64) *Float64 {
	return &Float64{data: slices.Clone(data), device: DefaultDevice}
}

// To returns a copy of c labelled with device.
func (c *Float64) To(device string) *Float64 {
	return &Float64{data: slices.Clone(c.data), device: device}
}

func (c *Float64) Device() string  { return c.device }
func (c *Float64) Kind() apis.Kind { return KindFloat64 }
func (c *Float64) Len() int        { return len(c.data) }

// Values returns a copy of the column data.
func (c *Float64) Values() []float64 { return slices.Clone(c.data) }

// Min returns the smallest element, or NaN for an empty column.
func (c *Float64) Min() float64 {
	if len(c.data) == 0 {
		return math.NaN()
	}
	return floats.Min(c.data)
}

// Max returns the largest element, or NaN for an empty column.
func (c *Float64) Max() float64 {
	if len(c.data) == 0 {
		return math.NaN()
	}
	return floats.Max(c.data)
}

// Strings is an immutable in-memory string column. It is not numeric.
type Strings struct {
	data   []string
	device string
}

// Ensure Strings implements apis.Column.
var _ apis.Column = (*Strings)(nil)

// FromStrings copies data into a new column on DefaultDevice.
func FromStrings(data ...string) *Strings {
	return &Strings{data: slices.Clone(data), device: DefaultDevice}
}

// To returns a copy of c labelled with device.
func (c *Strings) To(device string) *Strings {
	return &Strings{data: slices.Clone(c.data), device: device}
}

func (c *Strings) Device() string  { return c.device }
func (c *Strings) Kind() apis.Kind { return KindString }
func (c *Strings) Len() int        { return len(c.data) }

// Values returns a copy of the column data.
func (c *Strings) Values() []string { return slices.Clone(c.data) }
