package services

import (
	"fmt"

	"github.com/custodia-labs/pagescan/internal/core/domain"
	"github.com/custodia-labs/pagescan/internal/core/ports/driven"
	"github.com/custodia-labs/pagescan/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend = "storage.backend"
	keyStorageDataDir = "storage.data_dir"
	keySearchWorkers  = "search.workers"
)

// maxWorkers caps concurrent book searches.
const maxWorkers = 256

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Unknown or out-of-range stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir), // Empty means home default
		},
		Search: domain.SearchSettings{
			Workers: s.getWorkers(defaults.Search.Workers),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.configStore.Set(keyStorageDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save storage data_dir: %w", err)
	}
	if err := s.configStore.Set(keySearchWorkers, settings.Search.Workers); err != nil {
		return fmt.Errorf("save search workers: %w", err)
	}
	return nil
}

// SetStorageBackend updates the library storage backend.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage.Backend = backend
	return s.Save(settings)
}

// SetDataDir updates the directory holding the library database.
func (s *SettingsService) SetDataDir(dir string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage.DataDir = dir
	return s.Save(settings)
}

// SetWorkers updates the number of books searched concurrently.
func (s *SettingsService) SetWorkers(workers int) error {
	if workers < 1 || workers > maxWorkers {
		return fmt.Errorf("%w: workers must be between 1 and %d, got %d",
			domain.ErrInvalidInput, maxWorkers, workers)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Search.Workers = workers
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getWorkers(defaultVal int) int {
	val := s.configStore.GetInt(keySearchWorkers)
	if val < 1 || val > maxWorkers {
		return defaultVal
	}
	return val
}
