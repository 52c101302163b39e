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

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"dirpx.dev/opx/apis"
	"dirpx.dev/opx/backend/dense"
)

// parseFloats parses every argument as a float64.
func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out = append(out, f)
	}
	return out, nil
}

// printValue writes v on one line: columns as "[v1 v2 ...] @device",
// scalars and labels as themselves.
func printValue(w io.Writer, v apis.Value) error {
	switch v.Kind() {
	case apis.ColumnValue:
		col, _ := v.Column()
		switch c := col.(type) {
		case *dense.Float64:
			_, err := fmt.Fprintf(w, "%s @%s\n", joinFloats(c.Values()), c.Device())
			return err
		case *dense.Strings:
			_, err := fmt.Fprintf(w, "%q @%s\n", c.Values(), c.Device())
			return err
		default:
			_, err := fmt.Fprintf(w, "%s\n", v)
			return err
		}
	case apis.ScalarValue:
		f, _ := v.Scalar()
		_, err := fmt.Fprintln(w, strconv.FormatFloat(f, 'g', -1, 64))
		return err
	default:
		_, err := fmt.Fprintln(w, v.String())
		return err
	}
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, f := range vals {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
