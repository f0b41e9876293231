package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagescan/internal/core/domain"
)

// Setting keys accepted by 'settings set'.
const (
	keyStorageBackend = "storage.backend"
	keyStorageDataDir = "storage.data_dir"
	keySearchWorkers  = "search.workers"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure library storage and search settings.

Settings are stored in config.toml in the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Available keys:
  storage.backend   - sqlite or memory
  storage.data_dir  - directory holding the SQLite library
  search.workers    - books searched concurrently (1-256)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Choose the library storage backend",
	Args:  cobra.NoArgs,
	RunE:  runSettingsBackend,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	styles := stylesFor(out)

	fmt.Fprintln(out, styles.Title.Render("Current Settings"))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styles.Subtitle.Render("[Storage]"))
	fmt.Fprintf(out, "  Backend: %s\n", settings.Storage.Backend.Description())
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	fmt.Fprintf(out, "  Data directory: %s\n", dataDir)
	fmt.Fprintln(out)

	fmt.Fprintln(out, styles.Subtitle.Render("[Search]"))
	fmt.Fprintf(out, "  Workers: %d\n", settings.Search.Workers)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key, value := args[0], args[1]

	var err error
	switch key {
	case keyStorageBackend:
		err = settingsService.SetStorageBackend(domain.StorageBackend(value))
	case keyStorageDataDir:
		err = settingsService.SetDataDir(value)
	case keySearchWorkers:
		workers, convErr := strconv.Atoi(value)
		if convErr != nil {
			return fmt.Errorf("%w: workers must be a number: %q", domain.ErrInvalidInput, value)
		}
		err = settingsService.SetWorkers(workers)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)
	return nil
}

func runSettingsBackend(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintln(out, "Select Storage Backend")
	fmt.Fprintln(out, "----------------------")
	backends := domain.AllStorageBackends()
	for i, backend := range backends {
		fmt.Fprintf(out, "  %d. %s\n", i+1, backend.Description())
	}
	fmt.Fprint(out, "\nEnter choice: ")
	idx := parseChoice(readLine(reader), len(backends), 0)
	if idx == 0 {
		return errors.New("invalid selection")
	}

	selected := backends[idx-1]
	if err := settingsService.SetStorageBackend(selected); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}

	fmt.Fprintf(out, "\nStorage backend set to: %s\n", selected.Description())
	if selected == domain.StorageBackendMemory {
		fmt.Fprintln(out, "Note: the memory backend forgets imported books when pagescan exits.")
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
