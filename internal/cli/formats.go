package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:         "formats",
	Short:       "List the supported input formats",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigLoad: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows := make([][]string, 0)
		for _, reg := range registry.Strategies() {
			rows = append(rows, []string{reg.Input, reg.Extension, reg.Description})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Input", "Output", "Description"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range headers {
		configs[i] = table.ColumnConfig{Number: i + 1, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
