package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/projectflow-dev/projectflow/sdk"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "schema", Short: "Export and apply form schemas"}
	cmd.AddCommand(newSchemaGetCmd())
	cmd.AddCommand(newSchemaApplyCmd())
	return cmd
}

func newSchemaGetCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "get <form-id>",
		Short: "Write a form's schema to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			svc := sdk.New(sdk.Config{Client: cli})
			return svc.ExportSchema(cmd.Context(), args[0], cmd.OutOrStdout(), sdk.Format(format))
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "schema format (json|yaml)")
	return cmd
}

func newSchemaApplyCmd() *cobra.Command {
	var file, format string
	var watch bool
	cmd := &cobra.Command{
		Use:   "apply <form-id>",
		Short: "Replace a form's schema from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			svc := sdk.New(sdk.Config{Client: cli})
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			details, err := svc.ApplySchema(cmd.Context(), args[0], f, sdk.Format(format))
			f.Close()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d fields to %s\n", len(details.Fields), details.ID)
			if !watch {
				return nil
			}
			stop, err := svc.StartFileWatcher(cmd.Context(), args[0], file, sdk.Format(format), 500*time.Millisecond)
			if err != nil {
				return err
			}
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", file)
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "schema file")
	cmd.Flags().StringVar(&format, "format", "json", "schema format (json|yaml)")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-apply on file change")
	cmd.MarkFlagRequired("file")
	return cmd
}
