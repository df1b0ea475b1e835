package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/projectflow-dev/projectflow/pkg/config"
	"github.com/projectflow-dev/projectflow/sdk"
	"github.com/projectflow-dev/projectflow/sdk/client"
)

// newClient builds an API client from resolved configuration.
func newClient(cmd *cobra.Command) (client.Client, error) {
	resolved, err := config.Resolve(cmd)
	if err != nil {
		return nil, err
	}
	var opts []client.Option
	if resolved.Token != "" {
		opts = append(opts, client.WithToken(resolved.Token))
	}
	return client.NewHTTP(resolved.APIURL, opts...), nil
}

// printOutput prints data in either JSON or table format based on the --output flag.
func printOutput(v any) error {
	format, err := rootCmd.PersistentFlags().GetString("output")
	if err != nil {
		return err
	}
	if format == "json" {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}
	switch x := v.(type) {
	case []sdk.FormSummary:
		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"ID", "Title", "Description", "Updated"})
		for _, f := range x {
			tw.Append([]string{f.ID, f.Title, f.Description, f.UpdatedAt.Format("2006-01-02 15:04:05")})
		}
		tw.Render()
	case *sdk.FormSummary:
		fmt.Printf("%s\t%s\n", x.ID, x.Title)
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	}
	return nil
}
