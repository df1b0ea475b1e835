package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/projectflow-dev/projectflow/pkg/renderer"
)

func newRenderCmd() *cobra.Command {
	var out string
	var deferOptions bool
	cmd := &cobra.Command{
		Use:   "render <form-id>",
		Short: "Render a form's schema as an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			details, err := cli.GetSchema(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts := []renderer.Option{renderer.WithResolver(renderer.NewResolver())}
			if deferOptions {
				opts = append(opts, renderer.WithDeferredOptions())
			}
			r := renderer.New(opts...)
			page, err := r.RenderPage(cmd.Context(), details.Schema())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(page)
				return err
			}
			if err := os.WriteFile(out, page, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&deferOptions, "defer-options", false, "emit data-source attributes instead of fetching options")
	return cmd
}
