package main

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

func newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the form component palette",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := rootCmd.PersistentFlags().GetString("output")
			if format == "json" {
				return printOutput(schema.Catalog())
			}
			tw := tablewriter.NewWriter(os.Stdout)
			tw.SetHeader([]string{"ID", "Type", "Label", "Icon"})
			for _, c := range schema.Catalog() {
				tw.Append([]string{c.ID, string(c.Type), c.Label, c.Icon})
			}
			tw.Render()
			return nil
		},
	}
}
