package main

import (
	"fmt"
	"io"

	"github.com/lk2023060901/assistant-admin/internal/assistant/biz"
	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/spf13/cobra"
)

func newModelsCmd(opts *rootOptions) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models offered by the OpenAI platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, console, cleanup, err := openConsole(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			var list []types.RemoteModel
			if refresh {
				list, err = console.Catalog.Refresh(ctx)
			} else {
				list, err = console.Catalog.Models(ctx)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range list {
				fmt.Fprintln(out, m.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the model cache")
	return cmd
}

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the stored OpenAI credential",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored secret key (masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, console, cleanup, err := openConsole(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := console.Settings.Get(ctx)
			if err != nil {
				return err
			}
			writeSettings(cmd.OutOrStdout(), view)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-key <secret-key>",
		Short: "Store the OpenAI secret key",
		Long:  "Stores the secret key in the settings record. It takes precedence over the config file and the environment.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, console, cleanup, err := openConsole(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := console.Settings.SetSecretKey(ctx, args[0])
			if err != nil {
				return err
			}
			writeSettings(cmd.OutOrStdout(), view)
			return nil
		},
	})

	return cmd
}

func writeSettings(w io.Writer, view *biz.SettingsView) {
	if !view.SecretKeySet {
		fmt.Fprintln(w, "secret key: (not set)")
		return
	}
	fmt.Fprintf(w, "secret key: %s\n", view.SecretKeyMasked)
}
