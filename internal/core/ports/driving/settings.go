package driving

import "github.com/custodia-labs/pagescan/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStorageBackend updates the library storage backend.
	SetStorageBackend(backend domain.StorageBackend) error

	// SetDataDir updates the directory holding the library database.
	SetDataDir(dir string) error

	// SetWorkers updates the number of books searched concurrently.
	SetWorkers(workers int) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
