package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagescan/internal/core/domain"
	"github.com/custodia-labs/pagescan/internal/core/ports/driving"
	"github.com/custodia-labs/pagescan/internal/core/services"
)

var watchSettle time.Duration

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the stored book library",
	Long: `Import scanned books into the local library and inspect what is stored.
Library searches run against these books.`,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import books from a JSON file",
	Long: `Imports a JSON array of books. Each book replaces any stored book with
the same ISBN. Books without an ISBN are skipped. Use "-" to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryImport,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored books",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show [isbn]",
	Short: "Show a stored book as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [isbn]",
	Short: "Remove a stored book",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

var libraryWatchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Import a JSON file and re-import it whenever it changes",
	Long: `Imports the file, then keeps watching it and imports it again after
every change until interrupted. A change that fails to import is reported
and the previously imported books are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryWatch,
}

func init() {
	libraryWatchCmd.Flags().DurationVar(&watchSettle, "settle", 100*time.Millisecond,
		"wait this long after a change before importing")

	libraryCmd.AddCommand(libraryImportCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	libraryCmd.AddCommand(libraryWatchCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}

	var r io.Reader
	if args[0] == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening books: %w", err)
		}
		defer f.Close()
		r = f
	}

	result, err := libraryService.Import(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	printImportResult(cmd.OutOrStdout(), result)
	return nil
}

func printImportResult(w io.Writer, result *driving.ImportResult) {
	styles := stylesFor(w)
	fmt.Fprintln(w, styles.Success.Render(fmt.Sprintf("Imported %d book(s).", result.Imported)))
	if result.Skipped > 0 {
		fmt.Fprintln(w, styles.Warning.Render(fmt.Sprintf("Skipped %d book(s) without an ISBN.", result.Skipped)))
	}
	fmt.Fprintln(w, styles.Muted.Render("Batch: "+result.BatchID))
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}

	books, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing books: %w", err)
	}

	out := cmd.OutOrStdout()
	styles := stylesFor(out)

	if len(books) == 0 {
		fmt.Fprintln(out, "No books in the library.")
		fmt.Fprintln(out, "Import some with 'pagescan library import <file>'.")
		return nil
	}

	fmt.Fprintln(out, styles.Title.Render("Books:"))
	fmt.Fprintln(out)
	for i := range books {
		title := books[i].Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(out, "  %s  %s\n", styles.Subtitle.Render(books[i].ISBN), title)
		fmt.Fprintf(out, "      %s\n", styles.Muted.Render(fmt.Sprintf("%d line(s)", len(books[i].Content))))
	}

	return nil
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}

	book, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("book %s not found", args[0])
		}
		return fmt.Errorf("getting book: %w", err)
	}

	return outputJSON(cmd.OutOrStdout(), book)
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}

	if err := libraryService.Remove(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("book %s not found", args[0])
		}
		return fmt.Errorf("removing book: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
	return nil
}

func runLibraryWatch(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	watcher := services.NewLibraryWatcher(libraryService, args[0])
	watcher.SetSettleDelay(watchSettle)
	watcher.OnImport(func(result *driving.ImportResult, err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Import failed: %v\n", err)
			return
		}
		printImportResult(out, result)
	})

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", args[0])
	return watcher.Run(ctx)
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
