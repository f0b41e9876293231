// Package cli provides the pagescan command-line interface.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagescan/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pagescan/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pagescan/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pagescan/internal/core/domain"
	"github.com/custodia-labs/pagescan/internal/core/ports/driven"
	"github.com/custodia-labs/pagescan/internal/core/ports/driving"
	"github.com/custodia-labs/pagescan/internal/core/services"
	"github.com/custodia-labs/pagescan/internal/logger"
)

// version is set at build time via -ldflags "-X .../cli.version=...".
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services used by the commands. Wired on first use.
var (
	searchService   driving.SearchService
	libraryService  driving.LibraryService
	settingsService driving.SettingsService

	// searchWorkers is the configured default for --workers.
	searchWorkers = 1

	// closeStore releases the book store opened by wireServices.
	closeStore func() error
)

var rootCmd = &cobra.Command{
	Use:   "pagescan",
	Short: "Find phrases in scanned books",
	Long: `pagescan finds phrases in OCR-scanned books and reports the ISBN,
page and line where each occurrence begins.

Phrases may wrap across lines and across hyphenated line breaks.
Books can be searched straight from a JSON file or imported into a
local library first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return wireServices()
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if closeStore == nil {
			return nil
		}
		err := closeStore()
		closeStore = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print search diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.pagescan)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// wireServices builds the services from the stored settings.
// Services already set are left alone.
func wireServices() error {
	if settingsService != nil && searchService != nil && libraryService != nil {
		return nil
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	settingsSvc := services.NewSettingsService(configStore)
	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	storage := settings.Storage
	if storage.DataDir == "" && configDir != "" {
		storage.DataDir = filepath.Join(configDir, "data")
	}

	bookStore, closer, err := openBookStore(storage)
	if err != nil {
		return err
	}

	settingsService = settingsSvc
	searchService = services.NewSearchService(bookStore)
	libraryService = services.NewLibraryService(bookStore)
	searchWorkers = settings.Search.Workers
	closeStore = closer
	return nil
}

// openBookStore opens the library backend named by the settings.
func openBookStore(settings domain.StorageSettings) (driven.BookStore, func() error, error) {
	switch settings.Backend {
	case domain.StorageBackendMemory:
		return memory.NewBookStore(), nil, nil
	case domain.StorageBackendSQLite:
		store, err := sqlite.NewStore(settings.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening library: %w", err)
		}
		return store.BookStore(), store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, settings.Backend)
	}
}

// errNotConfigured is returned when a command runs without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
