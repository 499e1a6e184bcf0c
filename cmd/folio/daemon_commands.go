package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Interact with a running folio daemon",
	}

	daemonCmd.AddCommand(newDaemonStatusCommand(ctx))
	daemonCmd.AddCommand(newDaemonProcessCommand(ctx))
	daemonCmd.AddCommand(newDaemonWatchCommand(ctx))

	return daemonCmd
}

func newDaemonStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			status, err := client.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("daemon unreachable: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Folio Daemon", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Running", boolKind(status.Running), "", colorize))
			fmt.Fprintln(out, renderStatusLine("Watching", boolKind(status.Watching), "", colorize))
			fmt.Fprintln(out, renderStatusLine("PID", statusInfo, strconv.Itoa(status.PID), colorize))
			fmt.Fprintln(out, renderStatusLine("Books dir", statusInfo, status.BooksDir, colorize))
			if status.CatalogPath != "" {
				fmt.Fprintln(out, renderStatusLine("Catalog", statusInfo, status.CatalogPath, colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Lock file", statusInfo, status.LockFilePath, colorize))
			return nil
		},
	}
}

func newDaemonProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Ask the daemon to sweep the books directory now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			report, err := client.Process(cmd.Context())
			if err != nil {
				return fmt.Errorf("daemon unreachable: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(report.Results) == 0 {
				fmt.Fprintln(out, "No book folders found.")
				return nil
			}
			rows := make([][]string, 0, len(report.Results))
			for _, result := range report.Results {
				pages := ""
				if result.PageCount > 0 {
					pages = strconv.Itoa(result.PageCount)
				}
				detail := result.Detail
				if result.Error != "" {
					detail = result.Error
				}
				rows = append(rows, []string{
					result.BookID,
					strings.ReplaceAll(result.Status, "_", " "),
					pages,
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Book", "Status", "Pages", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintln(out, report.Summary)
			return nil
		},
	}
}

func newDaemonWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Confirm the daemon's folder watcher is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			status, err := client.Watch(cmd.Context())
			if err != nil {
				return fmt.Errorf("daemon unreachable: %w", err)
			}
			if status.Watching {
				fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", status.BooksDir)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Daemon is running but not watching")
			}
			return nil
		},
	}
}

func boolKind(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusError
}
