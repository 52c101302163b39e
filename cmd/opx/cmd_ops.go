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
	"encoding/json"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"dirpx.dev/opx"
	"dirpx.dev/opx/apis"
)

// opRow is one operation name with the path its wrapper took.
type opRow struct {
	Name     string    `json:"name"`
	Path     apis.Path `json:"path"`
	Backends []string  `json:"backends"`
}

// pathFlag is a pflag.Value filtering on apis.Path.
type pathFlag struct {
	path apis.Path
	set  bool
}

func (f *pathFlag) String() string {
	if !f.set {
		return ""
	}
	return f.path.String()
}

func (f *pathFlag) Set(s string) error {
	if err := f.path.UnmarshalText([]byte(s)); err != nil {
		return err
	}
	f.set = true
	return nil
}

func (*pathFlag) Type() string { return "path" }

func newOpsCmd() *cobra.Command {
	var (
		filter pathFlag
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List backend operations and the dispatch path of their wrappers",
		Example: `  opx ops
  opx ops --path factory
  opx ops --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := listOps(filter)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			renderOps(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().Var(&filter, "path", "only list operations on this path (default, factory)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// listOps materializes a wrapper for every operation a backend serves and
// reports the dispatcher's wrapper set.
func listOps(filter pathFlag) []opRow {
	f := opx.Default()

	served := make(map[string][]string)
	for _, e := range f.Backends() {
		l, ok := e.Namespace.(opLister)
		if !ok {
			continue
		}
		for _, op := range l.Ops() {
			served[op] = append(served[op], string(e.Key))
			f.Op(op)
		}
	}

	rows := []opRow{}
	for _, name := range f.Ops() {
		p := f.Op(name).Path()
		if filter.set && p != filter.path {
			continue
		}
		rows = append(rows, opRow{Name: name, Path: p, Backends: served[name]})
	}
	return rows
}

func renderOps(w io.Writer, rows []opRow) {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Name, r.Path.String(), strings.Join(r.Backends, ",")})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"OP", "PATH", "BACKENDS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
