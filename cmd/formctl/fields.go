package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

func newFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "fields", Short: "Manage form fields"}
	cmd.AddCommand(newFieldsListCmd())
	cmd.AddCommand(newFieldsAddCmd())
	cmd.AddCommand(newFieldsRemoveCmd())
	cmd.AddCommand(newFieldsReorderCmd())
	return cmd
}

func newFieldsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <form-id>",
		Short: "List a form's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			fields, err := cli.ListFields(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			format, _ := rootCmd.PersistentFlags().GetString("output")
			if format == "json" {
				return printOutput(fields)
			}
			tw := tablewriter.NewWriter(os.Stdout)
			tw.SetHeader([]string{"ID", "Type", "Label", "Name", "Required", "Span"})
			for _, f := range fields {
				tw.Append([]string{f.ID, string(f.Type), f.Label, f.Name, fmt.Sprint(f.Required), fmt.Sprint(f.ColSpan)})
			}
			tw.Render()
			return nil
		},
	}
}

func newFieldsAddCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "add <form-id>",
		Short: "Append a field of the given type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := schema.FieldType(typ)
			if !t.Valid() {
				return fmt.Errorf("unknown field type %q", typ)
			}
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			f, err := cli.AddField(cmd.Context(), args[0], schema.NewField(t))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", f.ID, f.Type)
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", "text", "field type")
	return cmd
}

func newFieldsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <form-id> <field-id>",
		Short: "Remove a field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			if err := cli.RemoveField(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
			return nil
		},
	}
}

func newFieldsReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <form-id> <field-id>...",
		Short: "Reorder fields to the given sequence",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			fields, err := cli.ReorderFields(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			ids := make([]string, len(fields))
			for i, f := range fields {
				ids[i] = f.ID
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(ids, " "))
			return nil
		},
	}
}
