package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFormsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "forms", Short: "Manage forms"}
	cmd.AddCommand(newFormsListCmd())
	cmd.AddCommand(newFormsCreateCmd())
	cmd.AddCommand(newFormsDeleteCmd())
	return cmd
}

func newFormsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			forms, err := cli.ListForms(cmd.Context())
			if err != nil {
				return err
			}
			return printOutput(forms)
		},
	}
}

func newFormsCreateCmd() *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a form",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			f, err := cli.CreateForm(cmd.Context(), title, description)
			if err != nil {
				return err
			}
			return printOutput(f)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "form title")
	cmd.Flags().StringVar(&description, "description", "", "form description")
	return cmd
}

func newFormsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <form-id>",
		Short: "Delete a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			if err := cli.DeleteForm(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
