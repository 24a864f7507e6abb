package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Show the supported conversion matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets := docfmt.Targets()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			header := table.Row{"source"}
			for _, tgt := range targets {
				header = append(header, tgt.String())
			}
			t.AppendHeader(header)
			for _, src := range docfmt.Sources() {
				row := table.Row{src.String()}
				for _, tgt := range targets {
					if docfmt.CanConvert(src, tgt) {
						row = append(row, "yes")
					} else {
						row = append(row, "")
					}
				}
				t.AppendRow(row)
			}
			t.SetStyle(table.StyleLight)
			t.Render()
			return nil
		},
	}
}
