package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lk2023060901/assistant-admin/internal/assistant/biz"
	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/spf13/cobra"
)

// errSyncFailures makes `sync` exit non-zero when any record failed.
var errSyncFailures = errors.New("synchronization finished with failures")

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List local assistants with drift warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, console, cleanup, err := openConsole(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			listing, err := console.Sync.Listing(ctx)
			if err != nil {
				return err
			}
			writeListing(cmd.OutOrStdout(), listing)
			return nil
		},
	}
}

func newAuditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Report local assistants missing on the OpenAI platform",
		Long:  "Compares the local store with the remote assistant list. Read-only: nothing is created or changed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, console, cleanup, err := openConsole(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := console.Sync.Audit(ctx)
			if err != nil {
				return err
			}
			writeAudit(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func newSyncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Create missing local assistants on the OpenAI platform",
		Long:  "Creates every local assistant absent from the OpenAI platform and rekeys the local record to the new remote id.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, console, cleanup, err := openConsole(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := console.Sync.Synchronize(ctx, biz.TriggerCLI)
			if err != nil {
				return err
			}
			writeSyncReport(cmd.OutOrStdout(), report)
			if report.HasFailures() {
				return errSyncFailures
			}
			return nil
		},
	}
}

func newRunsCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent synchronization runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, console, cleanup, err := openConsole(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			runs, err := console.Sync.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			writeRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}

func writeListing(w io.Writer, listing *types.Listing) {
	for _, warning := range listing.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	if listing.SyncHint {
		fmt.Fprintln(w, "hint: run `assistantctl sync` to create the missing assistants")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tID\tMODEL\tSTATUS")
	for _, a := range listing.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Label, a.ID, a.Model, a.StatusLabel())
	}
	_ = tw.Flush()
}

func writeAudit(w io.Writer, report *types.AuditReport) {
	fmt.Fprintf(w, "local: %d, remote: %d, missing remotely: %d\n", report.LocalCount, report.RemoteCount, len(report.Orphans))
	for _, o := range report.Orphans {
		fmt.Fprintln(w, biz.OrphanMessage(o))
	}
}

func writeSyncReport(w io.Writer, report *types.SyncReport) {
	fmt.Fprintf(w, "run %s: checked %d, created %d, failed %d\n",
		report.RunID, report.Checked, len(report.Reconciled), len(report.Failures))
	for _, r := range report.Reconciled {
		fmt.Fprintf(w, "  created %s: %s -> %s\n", r.Label, r.Previous, r.ID)
	}
	for _, f := range report.Failures {
		fmt.Fprintf(w, "  failed %s (%s): %s\n", f.Label, f.ID, f.Error)
	}
}

func writeRuns(w io.Writer, runs []*types.SyncRun) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tTRIGGER\tOPERATOR\tSTARTED\tCHECKED\tCREATED\tFAILED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			r.ID, r.Trigger, r.Operator, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Checked, len(r.Reconciled), len(r.Failures))
	}
	_ = tw.Flush()
}
