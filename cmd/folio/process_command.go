package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/logging"
	"folio/internal/pipeline"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process [folder]",
		Short: "Run the pipeline over the books directory, or one folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openCatalog()
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			if store != nil {
				defer store.Close()
			}

			processor := pipeline.New(cfg, logging.NewNop(), store)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				folder := args[0]
				if !filepath.IsAbs(folder) {
					folder = filepath.Join(cfg.Paths.BooksDir, folder)
				}
				result := processor.Process(cmd.Context(), folder)
				fmt.Fprintln(out, renderResults([]pipeline.Result{result}))
				if result.Status == pipeline.StatusFailed {
					return result.Err
				}
				return nil
			}

			report, err := processor.ProcessAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(report.Results) == 0 {
				fmt.Fprintln(out, "No book folders found.")
				return nil
			}
			fmt.Fprintln(out, renderResults(report.Results))
			fmt.Fprintln(out, report.Summary())
			return nil
		},
	}
}

func renderResults(results []pipeline.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		detail := result.Detail
		if result.Err != nil {
			detail = result.Err.Error()
		}
		pages := ""
		if result.PageCount > 0 {
			pages = strconv.Itoa(result.PageCount)
		}
		rows = append(rows, []string{
			result.BookID,
			statusLabel(result.Status),
			pages,
			detail,
		})
	}
	return renderTable(
		[]string{"Book", "Status", "Pages", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func statusLabel(status pipeline.Status) string {
	switch status {
	case pipeline.StatusProcessed:
		return "processed"
	case pipeline.StatusSkippedAlreadyDone:
		return "skipped (done)"
	case pipeline.StatusSkippedNoMetadata:
		return "skipped (no metadata)"
	case pipeline.StatusSkippedNoImages:
		return "skipped (no images)"
	case pipeline.StatusFailed:
		return "FAILED"
	default:
		return strings.ReplaceAll(string(status), "_", " ")
	}
}
