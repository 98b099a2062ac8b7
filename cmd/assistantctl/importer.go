package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCandidatesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates",
		Short: "List remote assistants available for import",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, console, cleanup, err := openConsole(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			candidates, err := console.Importer.ListCandidates(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range candidates {
				fmt.Fprintf(out, "%s\t%s\n", c.ID, c.DisplayName)
			}
			return nil
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <assistant-id>",
		Short: "Import a remote assistant into the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, console, cleanup, err := openConsole(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			a, err := console.Importer.Import(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported assistant %s (ID: %s).\n", a.Label, a.ID)
			return nil
		},
	}
}
