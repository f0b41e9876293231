// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - SearchService: phrase search over books (the scan pipeline per book)
//   - LibraryService: book import and management
//   - SettingsService: configuration
//   - LibraryWatcher: keeps the library in step with a JSON file
package services
