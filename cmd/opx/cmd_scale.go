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
	"dirpx.dev/opx/backend/dense"
)

func newScaleCmd() *cobra.Command {
	var device string

	cmd := &cobra.Command{
		Use:   "scale VALUE...",
		Short: "Scale a column to [0,1], or squash it with sigmoid when constant",
		Example: `  opx scale 2 4 6
  opx scale --device cpu 5 5 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := parseFloats(args)
			if err != nil {
				return err
			}
			out, err := opx.ScaleToUnitRange(dense.FromFloats(vals...).To(device))
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&device, "device", dense.DefaultDevice, "device the input column lives on")
	return cmd
}
