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
	"github.com/spf13/cobra"

	"dirpx.dev/opx"
	"dirpx.dev/opx/apis"
	"dirpx.dev/opx/backend/dense"
)

func newCallCmd() *cobra.Command {
	var (
		device    string
		scalar    float64
		asStrings bool
	)

	cmd := &cobra.Command{
		Use:   "call OP [VALUE...]",
		Short: "Dispatch OP on a column built from VALUEs",
		Example: `  opx call sigmoid 0 1 2
  opx call add 1 2 3 --scalar 10
  opx call upper --strings a b`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, rest := args[0], args[1:]

			var call []apis.Value
			switch {
			case len(rest) == 0:
			case asStrings:
				call = append(call, apis.Col(dense.FromStrings(rest...).To(device)))
			default:
				vals, err := parseFloats(rest)
				if err != nil {
					return err
				}
				call = append(call, apis.Col(dense.FromFloats(vals...).To(device)))
			}
			if cmd.Flags().Changed("scalar") {
				call = append(call, apis.Scalar(scalar))
			}

			out, err := opx.Op(name).Call(call...)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&device, "device", dense.DefaultDevice, "device the input column lives on")
	cmd.Flags().Float64Var(&scalar, "scalar", 0, "trailing scalar operand")
	cmd.Flags().BoolVar(&asStrings, "strings", false, "treat VALUEs as strings")
	return cmd
}
