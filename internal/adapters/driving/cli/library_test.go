package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagescan/internal/core/domain"
	"github.com/custodia-labs/pagescan/internal/core/ports/driving"
)

func TestLibraryCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range libraryCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"import", "list", "show", "remove", "watch"} {
		assert.True(t, names[want], "missing library %s command", want)
	}
}

func TestLibraryImportCmd_FromFile(t *testing.T) {
	store := setupTestServices(t)
	content := `[
		{"Title": "A", "ISBN": "1", "Content": [{"Page": 1, "Line": 1, "Text": "hello"}]},
		{"Title": "No ISBN", "Content": []}
	]`
	path := writeBooksFile(t, content)

	out, err := execute(t, "library", "import", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 book(s).")
	assert.Contains(t, out, "Skipped 1 book(s) without an ISBN.")
	assert.Contains(t, out, "Batch: ")

	book, err := store.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "A", book.Title)
	assert.NotEmpty(t, book.BatchID)
}

func TestLibraryImportCmd_FromStdin(t *testing.T) {
	store := setupTestServices(t)
	rootCmd.SetIn(strings.NewReader(twentyLeaguesJSON))

	out, err := execute(t, "library", "import", "-")

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 book(s).")
	assert.NotContains(t, out, "Skipped")

	_, err = store.Get(context.Background(), "9780000528531")
	assert.NoError(t, err)
}

func TestLibraryImportCmd_InvalidJSON(t *testing.T) {
	setupTestServices(t)
	path := writeBooksFile(t, "not json")

	_, err := execute(t, "library", "import", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLibraryImportCmd_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "library", "import", filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening books")
}

func TestLibraryListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "library", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No books in the library.")
}

func TestLibraryListCmd_ShowsBooks(t *testing.T) {
	setupTestServices(t, twentyLeagues(), domain.Book{ISBN: "1", Content: []domain.ContentLine{{Page: 1, Line: 1, Text: "x"}}})

	out, err := execute(t, "library", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "9780000528531")
	assert.Contains(t, out, "Twenty Thousand Leagues Under the Sea")
	assert.Contains(t, out, "3 line(s)")
	assert.Contains(t, out, "(untitled)")
	assert.Less(t, strings.Index(out, "  1  "), strings.Index(out, "9780000528531"))
}

func TestLibraryShowCmd(t *testing.T) {
	setupTestServices(t, twentyLeagues())

	out, err := execute(t, "library", "show", "9780000528531")
	require.NoError(t, err)

	var book domain.Book
	require.NoError(t, json.Unmarshal([]byte(out), &book))
	assert.Equal(t, twentyLeagues(), book)
}

func TestLibraryShowCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "library", "show", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "book missing not found")
}

func TestLibraryRemoveCmd(t *testing.T) {
	store := setupTestServices(t, twentyLeagues())

	out, err := execute(t, "library", "remove", "9780000528531")

	require.NoError(t, err)
	assert.Contains(t, out, "Removed 9780000528531.")
	_, err = store.Get(context.Background(), "9780000528531")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryRemoveCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "library", "remove", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "book missing not found")
}

func TestLibraryWatchCmd_Flags(t *testing.T) {
	flag := libraryWatchCmd.Flags().Lookup("settle")
	require.NotNil(t, flag)
	assert.Equal(t, "100ms", flag.DefValue)
}

func TestLibraryWatchCmd_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "library", "watch", filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestPrintImportResult(t *testing.T) {
	buf := new(bytes.Buffer)

	printImportResult(buf, &driving.ImportResult{BatchID: "b-1", Imported: 2})

	assert.Equal(t, "Imported 2 book(s).\nBatch: b-1\n", buf.String())
}

func TestLibraryCommands_ServiceNotConfigured(t *testing.T) {
	setupTestServices(t)
	libraryService = nil

	runners := map[string]func() error{
		"import": func() error { return runLibraryImport(libraryImportCmd, []string{"-"}) },
		"list":   func() error { return runLibraryList(libraryListCmd, nil) },
		"show":   func() error { return runLibraryShow(libraryShowCmd, []string{"1"}) },
		"remove": func() error { return runLibraryRemove(libraryRemoveCmd, []string{"1"}) },
		"watch":  func() error { return runLibraryWatch(libraryWatchCmd, []string{"x"}) },
	}

	for name, run := range runners {
		t.Run(name, func(t *testing.T) {
			err := run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "library service not configured")
		})
	}
}

func TestLibraryImportCmd_EndToEndSearch(t *testing.T) {
	setupTestServices(t)
	path := writeBooksFile(t, twentyLeaguesJSON)

	_, err := execute(t, "library", "import", path)
	require.NoError(t, err)
	resetFlags()

	out, err := execute(t, "search", "--json", "Canadian's eyes")
	require.NoError(t, err)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []domain.MatchResult{{ISBN: "9780000528531", Page: 31, Line: 9}}, resp.Results)
}
