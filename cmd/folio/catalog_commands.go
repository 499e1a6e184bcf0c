package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the descriptive-metadata catalog",
	}

	catalogCmd.AddCommand(newCatalogImportCommand(ctx))
	catalogCmd.AddCommand(newCatalogImportDocsCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))

	return catalogCmd
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import description rows from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.requireCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			imported, err := store.ImportCSV(cmd.Context(), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d descriptions\n", imported)
			return nil
		},
	}
}

func newCatalogImportDocsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import-docs <dir>",
		Short: "Import verified description sheets from a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.requireCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			imported, err := store.ImportDocuments(cmd.Context(), args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d descriptions\n", imported)
			if err != nil {
				fmt.Fprintf(out, "Some sheets were skipped: %v\n", err)
			}
			return nil
		},
	}
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.requireCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			descriptions, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(descriptions) == 0 {
				fmt.Fprintln(out, "Catalog is empty.")
				return nil
			}

			rows := make([][]string, 0, len(descriptions))
			for _, desc := range descriptions {
				rows = append(rows, []string{desc.BookID, desc.Author, desc.Title})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Book", "Author", "Title"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.requireCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			desc, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if desc == nil {
				desc, err = store.FindByNumber(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			}
			if desc == nil {
				return fmt.Errorf("no catalog entry for %q", args[0])
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Book "+desc.BookID, colorize) {
				fmt.Fprintln(out, line)
			}
			printField(out, "Author", desc.Author, colorize)
			printField(out, "Second author", desc.SecondAuthor, colorize)
			printField(out, "Title", desc.Title, colorize)
			printField(out, "Publication", desc.Publication, colorize)
			printField(out, "Dimensions", desc.Dimensions, colorize)
			printField(out, "Location", desc.Location, colorize)
			printField(out, "Signature", desc.Signature, colorize)
			printField(out, "Binding", desc.Binding, colorize)
			printField(out, "Language", desc.LanguageInfo, colorize)
			printField(out, "Decoration", desc.Decoration, colorize)
			printField(out, "Description", desc.Description, colorize)
			return nil
		},
	}
}

func printField(out io.Writer, label, value string, colorize bool) {
	if value == "" {
		return
	}
	fmt.Fprintln(out, renderStatusLine(label, statusInfo, value, colorize))
}
