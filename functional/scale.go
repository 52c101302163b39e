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

// ErrPrecondition is returned when an operation receives an argument
// outside its contract.
var ErrPrecondition = errors.New("opx(functional): precondition failed")

// ScaleToUnitRange returns col scaled to [0,1]. A column with a single
// distinct value is mapped through sigmoid instead.
//
// All arithmetic goes through the dispatched "sub", "div" and "sigmoid"
// operations of the backend serving col.
func (f *Functional) ScaleToUnitRange(col apis.Column) (apis.Value, error) {
	num, ok := col.(apis.NumericColumn)
	if !ok {
		return apis.Value{}, fmt.Errorf("%w: scale_to_unit_range needs a numeric column, got %T", ErrPrecondition, col)
	}

	lo, hi := num.Min(), num.Max()
	if lo < hi {
		shifted, err := f.Op("sub").Call(apis.Col(col), apis.Scalar(lo))
		if err != nil {
			return apis.Value{}, err
		}
		return f.Op("div").Call(shifted, apis.Scalar(hi-lo))
	}
	return f.Op("sigmoid").Call(apis.Col(col))
}
