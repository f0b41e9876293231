package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagescan/internal/core/domain"
)

var (
	searchFile    string
	searchISBNs   []string
	searchJSON    bool
	searchWorkerN int
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Find a phrase in scanned books",
	Long: `Finds every occurrence of a phrase and reports the ISBN, page and line
where it begins. Matches are case sensitive and must be whole words.

Whitespace in the phrase and the scanned text is collapsed, so phrases may
wrap across lines. A line ending in "-" joins the next line directly.

By default the stored library is searched. Use --file to search a JSON
file of books instead ("-" reads standard input). --isbn restricts either
source to the listed books.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFile, "file", "f", "", "search books in this JSON file instead of the library")
	searchCmd.Flags().StringSliceVar(&searchISBNs, "isbn", nil, "restrict the library search to these ISBNs")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVarP(&searchWorkerN, "workers", "w", 0, "books searched concurrently (default from settings)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]

	if searchService == nil {
		return errNotConfigured("search")
	}

	opts := domain.SearchOptions{
		ISBNs:   searchISBNs,
		Workers: searchWorkers,
	}
	if searchWorkerN > 0 {
		opts.Workers = searchWorkerN
	}

	var resp *domain.SearchResponse
	var err error
	if searchFile != "" {
		books, readErr := readBooks(cmd, searchFile)
		if readErr != nil {
			return readErr
		}
		books, readErr = filterBooks(books, searchISBNs)
		if readErr != nil {
			return fmt.Errorf("search failed: %w", readErr)
		}
		resp, err = searchService.Search(cmd.Context(), term, books, opts)
	} else {
		resp, err = searchService.SearchLibrary(cmd.Context(), term, opts)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}

	return outputSearchTable(cmd, resp)
}

// readBooks loads books from path, or standard input when path is "-".
func readBooks(cmd *cobra.Command, path string) ([]domain.Book, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening books: %w", err)
		}
		defer f.Close()
		r = f
	}

	books, err := domain.DecodeBooks(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return books, nil
}

// filterBooks keeps the books whose ISBN is listed, in the order of isbns.
// An empty list keeps every book. Every listed ISBN must be present.
func filterBooks(books []domain.Book, isbns []string) ([]domain.Book, error) {
	if len(isbns) == 0 {
		return books, nil
	}

	filtered := make([]domain.Book, 0, len(isbns))
	for _, isbn := range isbns {
		found := false
		for i := range books {
			if books[i].ISBN == isbn {
				filtered = append(filtered, books[i])
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("book %s: %w", isbn, domain.ErrNotFound)
		}
	}
	return filtered, nil
}

func outputSearchJSON(cmd *cobra.Command, resp *domain.SearchResponse) error {
	return outputJSON(cmd.OutOrStdout(), resp)
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp *domain.SearchResponse) error {
	out := cmd.OutOrStdout()
	styles := stylesFor(out)

	if len(resp.Results) == 0 {
		fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("No matches for %q.", resp.SearchTerm)))
		return nil
	}

	fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Matches for %q:", resp.SearchTerm)))
	fmt.Fprintln(out)

	lastISBN := ""
	for _, r := range resp.Results {
		if r.ISBN != lastISBN {
			fmt.Fprintln(out, styles.Subtitle.Render("  " + r.ISBN))
			lastISBN = r.ISBN
		}
		fmt.Fprintf(out, "    page %d, line %d\n", r.Page, r.Line)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("%d match(es)", len(resp.Results))))

	return nil
}
