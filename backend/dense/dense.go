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

// Package dense is the bundled reference backend: pure-Go, in-memory
// columns whose kernels are computed with gonum.
//
// Register it on a dispatcher during initialization:
//
//	f := functional.New()
//	if err := dense.Register(f); err != nil {
//	    // key already taken
//	}
//	out, err := f.Op("sigmoid").Call(apis.Col(dense.FromFloats(1, 2, 3)))
package dense

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"dirpx.dev/opx/apis"
	"dirpx.dev/opx/namespace"
)

// Key is the dispatch key the backend registers under.
const Key apis.Key = "dense"

// FactoryMethods lists the operations that build columns from a size.
var FactoryMethods = []string{"full", "zeros", "ones", "arange", "linspace"}

// Registrar is the registration surface a dispatcher exposes.
type Registrar interface {
	RegisterBackend(key apis.Key, ns apis.Namespace) error
	RegisterFactoryMethods(names ...string)
}

// Register adds the backend under Key and marks its factory methods.
func Register(r Registrar) error {
	if err := r.RegisterBackend(Key, Namespace()); err != nil {
		return err
	}
	r.RegisterFactoryMethods(FactoryMethods...)
	return nil
}

// Namespace builds the operation table.
func Namespace() *namespace.Table {
	return namespace.New(Key).
		// arithmetic
		Def("add", binary("add", addTo, func(a, b float64) float64 { return a + b })).
		Def("sub", binary("sub", subTo, func(a, b float64) float64 { return a - b })).
		Def("mul", binary("mul", mulTo, func(a, b float64) float64 { return a * b })).
		Def("div", binary("div", divTo, func(a, b float64) float64 { return a / b })).
		// element-wise
		Def("neg", unary("neg", neg)).
		Def("abs", unary("abs", math.Abs)).
		Def("exp", unary("exp", math.Exp)).
		Def("log", unary("log", math.Log)).
		Def("sigmoid", unary("sigmoid", sigmoid)).
		// reductions
		Def("sum", reduce("sum", floats.Sum)).
		Def("min", reduce("min", floats.Min)).
		Def("max", reduce("max", floats.Max)).
		// strings
		Def("lower", mapStrings("lower", strings.ToLower)).
		Def("upper", mapStrings("upper", strings.ToUpper)).
		Def("length", length).
		// factories
		Def("full", factory("full", fillConst, 0)).
		Def("zeros", factory("zeros", fillWith(0))).
		Def("ones", factory("ones", fillWith(1))).
		Def("arange", factory("arange", fillArange, 0, 1)).
		Def("linspace", factory("linspace", fillLinspace, 0, 1))
}
