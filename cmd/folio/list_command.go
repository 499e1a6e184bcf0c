package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/pipeline"
	"folio/internal/textutil"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List book folders and their processing state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(cfg.Paths.BooksDir)
			if err != nil {
				return fmt.Errorf("read books directory: %w", err)
			}

			var names []string
			for _, entry := range entries {
				if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
					names = append(names, entry.Name())
				}
			}
			sort.Slice(names, func(i, j int) bool {
				return textutil.NaturalLess(names[i], names[j])
			})

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No book folders found.")
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				folder := filepath.Join(cfg.Paths.BooksDir, name)
				state := "pending"
				if pipeline.AlreadyProcessed(folder) {
					state = "processed"
				}
				rows = append(rows, []string{name, state, strconv.Itoa(countImages(folder, cfg.Images.Extensions))})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Book", "State", "Images"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func countImages(folder string, extensions []string) int {
	recognized := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		recognized[ext] = struct{}{}
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if _, ok := recognized[ext]; ok {
			count++
		}
	}
	return count
}
