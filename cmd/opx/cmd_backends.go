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
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"dirpx.dev/opx"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "backends",
		Aliases: []string{"ls"},
		Short:   "List backends, devices, kind overrides and factory methods",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listBackends(cmd.OutOrStdout())
		},
	}
}

// opLister is implemented by namespaces that can enumerate their operations.
type opLister interface {
	Ops() []string
}

func listBackends(w io.Writer) error {
	f := opx.Default()
	cfg := f.Config()

	var data [][]string
	for _, e := range f.Backends() {
		ops := "-"
		if l, ok := e.Namespace.(opLister); ok {
			ops = strings.Join(l.Ops(), ",")
		}
		data = append(data, []string{"backend", string(e.Key), ops})
	}

	devices := slices.Sorted(maps.Keys(cfg.Devices))
	for _, d := range devices {
		target := string(cfg.Devices[d])
		if d == cfg.DefaultDevice {
			target += " (default)"
		}
		data = append(data, []string{"device", d, target})
	}
	if _, ok := cfg.Devices[cfg.DefaultDevice]; !ok {
		data = append(data, []string{"device", cfg.DefaultDevice, "- (default)"})
	}

	for _, k := range f.Kinds() {
		data = append(data, []string{"kind", string(k.Kind), string(k.Key)})
	}

	if fm := f.FactoryMethods(); len(fm) > 0 {
		data = append(data, []string{"factory", strings.Join(fm, ","), ""})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"TYPE", "NAME", "TARGET"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()
	return nil
}
