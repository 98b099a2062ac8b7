package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lk2023060901/assistant-admin/internal/conf"
	"github.com/lk2023060901/assistant-admin/internal/pkg/injector"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

type rootOptions struct {
	configPath string
	operator   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "assistantctl",
		Short:         "Assistant admin: keep local assistants in step with OpenAI",
		Long:          "assistantctl audits, synchronizes and imports assistants between the local store and the OpenAI Assistants API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config.yaml", "path to config file")
	cmd.PersistentFlags().StringVar(&opts.operator, "operator", os.Getenv("USER"), "operator name recorded on sync runs")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newAuditCmd(opts))
	cmd.AddCommand(newSyncCmd(opts))
	cmd.AddCommand(newRunsCmd(opts))
	cmd.AddCommand(newCandidatesCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newModelsCmd(opts))
	cmd.AddCommand(newSettingsCmd(opts))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "assistantctl %s (commit: %s)\n", Version, Commit)
		},
	}
}

// openConsole loads the config and wires the use cases. Logs go to stderr
// so command output stays parseable.
func openConsole(cmd *cobra.Command, opts *rootOptions) (context.Context, *injector.Console, func(), error) {
	config, err := conf.LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if config.Log.Output == "console" {
		config.Log.Output = "stderr"
	}

	log, err := logger.New(&config.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	console, cleanup, err := injector.InitializeConsole(config, log.Named("cli"))
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithOperator(ctx, opts.operator)

	return ctx, console, func() {
		cleanup()
		_ = log.Sync()
	}, nil
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
