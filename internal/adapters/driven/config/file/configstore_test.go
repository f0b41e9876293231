package file

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NotNil(t, store)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".pagescan", "config.toml"), store.Path())
}

func TestDefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".pagescan"), dir)
}

func TestConfigStore_MissingFileIsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("storage.backend")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("storage.backend"))
	assert.Zero(t, store.GetInt("search.workers"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.backend", "memory"))
	require.NoError(t, store.Set("search.workers", 4))

	assert.Equal(t, "memory", store.GetString("storage.backend"))
	assert.Equal(t, 4, store.GetInt("search.workers"))

	// Wrong types read as zero values.
	assert.Empty(t, store.GetString("search.workers"))
	assert.Zero(t, store.GetInt("storage.backend"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.backend", "sqlite"))
	require.NoError(t, store.Set("storage.data_dir", "/var/lib/pagescan"))
	require.NoError(t, store.Set("search.workers", 8))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "[storage]")
	assert.Contains(t, content, "[search]")
	assert.Regexp(t, `backend = ["']sqlite["']`, content)

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", reloaded.GetString("storage.backend"))
	assert.Equal(t, "/var/lib/pagescan", reloaded.GetString("storage.data_dir"))
	assert.Equal(t, 8, reloaded.GetInt("search.workers"))
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[storage]\nbackend = \"memory\"\n\n[search]\nworkers = 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "memory", store.GetString("storage.backend"))
	assert.Equal(t, 3, store.GetInt("search.workers"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.backend", "sqlite"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.backend", "sqlite"))
	require.NoError(t, store.Set("storage.backend", "memory"))

	assert.Equal(t, "memory", store.GetString("storage.backend"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "worker.key" + strconv.Itoa(id)
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		assert.Equal(t, i, store.GetInt("worker.key"+strconv.Itoa(i)))
	}
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.toml")
	assert.Nil(t, store)
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["storage.data_dir"] = "/srv/books"
	store.mu.Unlock()

	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/books", reloaded.GetString("storage.data_dir"))
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("storage.backend", "sqlite"))

	// A directory in place of the file makes the write fail.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("search.workers", 2)
	assert.Error(t, err)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("storage.backend", "sqlite"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"storage": map[string]any{
			"backend": "sqlite",
			"paths":   map[string]any{"data": "/d"},
		},
		"top": int64(1),
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, map[string]any{
		"storage.backend":    "sqlite",
		"storage.paths.data": "/d",
		"top":                int64(1),
	}, flat)
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"storage.backend":  "memory",
		"storage.data_dir": "/d",
		"search.workers":   2,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"storage": map[string]any{"backend": "memory", "data_dir": "/d"},
		"search":  map[string]any{"workers": 2},
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}

func TestNestMap_ScalarWinsOverTable(t *testing.T) {
	nested := nestMap(map[string]any{
		"storage":         "plain",
		"storage.backend": "sqlite",
	})

	assert.Equal(t, map[string]any{"storage": "plain"}, nested)
}
