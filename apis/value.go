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

import (
	"fmt"
	"strconv"
)

// Key identifies a registered backend (e.g. "dense", "cudf").
type Key string

// Kind labels a concrete column implementation. It plays the role of a
// tagged variant: two columns with the same Kind are the same container
// flavour, regardless of the Go type that carries them.
type Kind string

// Column is the capability every dispatchable container exposes.
type Column interface {
	// Device returns the execution context label (e.g. "cpu").
	Device() string
	// Kind returns the container variant.
	Kind() Kind
}

// NumericColumn is a Column holding numbers. Min and Max are the column's own
// reductions; the dispatch layer reads them but never computes them.
type NumericColumn interface {
	Column
	Min() float64
	Max() float64
}

// ValueKind tags the active member of a Value.
type ValueKind uint8

const (
	// Invalid is the zero Value.
	Invalid ValueKind = iota
	// ColumnValue carries a Column.
	ColumnValue
	// ScalarValue carries a float64.
	ScalarValue
	// LabelValue carries a string.
	LabelValue
)

// String implements fmt.Stringer.
func (k ValueKind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case ColumnValue:
		return "column"
	case ScalarValue:
		return "scalar"
	case LabelValue:
		return "label"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Value is an operation argument or result: a column reference, a scalar,
// or a label. The zero Value is Invalid.
type Value struct {
	kind   ValueKind
	col    Column
	scalar float64
	label  string
}

// Col wraps a column. A nil column yields the zero Value.
func Col(c Column) Value {
	if c == nil {
		return Value{}
	}
	return Value{kind: ColumnValue, col: c}
}

// Scalar wraps a number.
func Scalar(v float64) Value {
	return Value{kind: ScalarValue, scalar: v}
}

// Label wraps a string literal.
func Label(s string) Value {
	return Value{kind: LabelValue, label: s}
}

// Kind reports which member is set.
func (v Value) Kind() ValueKind { return v.kind }

// IsColumn is the column predicate used by argument scanning.
func (v Value) IsColumn() bool { return v.kind == ColumnValue }

// Column returns the wrapped column, if any.
func (v Value) Column() (Column, bool) {
	return v.col, v.kind == ColumnValue
}

// Scalar returns the wrapped number, if any.
func (v Value) Scalar() (float64, bool) {
	return v.scalar, v.kind == ScalarValue
}

// Label returns the wrapped string, if any.
func (v Value) Label() (string, bool) {
	return v.label, v.kind == LabelValue
}

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v.kind {
	case ColumnValue:
		return fmt.Sprintf("column(%s@%s)", v.col.Kind(), v.col.Device())
	case ScalarValue:
		return strconv.FormatFloat(v.scalar, 'g', -1, 64)
	case LabelValue:
		return strconv.Quote(v.label)
	default:
		return "invalid"
	}
}

// FirstColumn returns the left-most column among args.
func FirstColumn(args []Value) (Column, bool) {
	for _, a := range args {
		if c, ok := a.Column(); ok {
			return c, true
		}
	}
	return nil, false
}
