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
)

func newFactoryCmd() *cobra.Command {
	var (
		size   int
		device string
	)

	cmd := &cobra.Command{
		Use:   "factory OP [SCALAR...]",
		Short: "Build a column with a factory operation",
		Example: `  opx factory ones --size 3
  opx factory arange --size 4 0 0.5
  opx factory full --size 2 --device cpu 7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, rest := args[0], args[1:]

			vals, err := parseFloats(rest)
			if err != nil {
				return err
			}
			call := make([]apis.Value, 0, len(vals))
			for _, v := range vals {
				call = append(call, apis.Scalar(v))
			}

			var opts []apis.CallOption
			if cmd.Flags().Changed("size") {
				opts = append(opts, apis.WithSize(size))
			}
			if device != "" {
				opts = append(opts, apis.WithDevice(device))
			}

			out, err := opx.Op(name).Invoke(apis.NewParams(opts...), call...)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "number of elements")
	cmd.Flags().StringVar(&device, "device", "", "target device (default: configured default device)")
	return cmd
}
