package domain

const unknownDescription = "Unknown"

// StorageBackend identifies where the book library is persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite persists books in a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendMemory keeps books for the lifetime of the process only.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (persistent)"
	case StorageBackendMemory:
		return "Memory (process lifetime only)"
	default:
		return unknownDescription
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{
		StorageBackendSQLite,
		StorageBackendMemory,
	}
}

// StorageSettings holds library persistence configuration.
type StorageSettings struct {
	// Backend selects the book store implementation.
	Backend StorageBackend

	// DataDir is where the SQLite database lives.
	// Empty means the default under the user's home directory.
	DataDir string
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Workers is the number of books searched concurrently.
	Workers int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Storage holds library persistence settings.
	Storage StorageSettings

	// Search holds search behaviour settings.
	Search SearchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
		Search: SearchSettings{
			Workers: 1,
		},
	}
}
