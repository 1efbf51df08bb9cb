package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/mystart/internal/ai"
	"github.com/nikbrunner/mystart/internal/model"
	"github.com/nikbrunner/mystart/internal/storage"
	"gotest.tools/v3/assert"
)

// setupConfig points the commands at a JSON backend in a temp directory.
func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")

	cfg := storage.DefaultConfig()
	cfg.Backend = storage.BackendJSON
	cfg.DataDir = dataDir
	configPath := filepath.Join(dir, "config.json")
	assert.NilError(t, storage.SaveConfig(configPath, &cfg))

	t.Setenv(storage.ConfigEnv, configPath)
	t.Setenv(ai.APIKeyEnv, "")
	return dataDir
}

func TestRun_FailedImportStillClosesStorage(t *testing.T) {
	dataDir := setupConfig(t)
	var out bytes.Buffer

	err := run([]string{"import", filepath.Join(t.TempDir(), "missing.json")}, strings.NewReader(""), &out)

	assert.ErrorContains(t, err, "reading file")
	// The final save on close wrote the collection.
	_, err = storage.NewFileKV(dataDir).Get(storage.StorageKey)
	assert.NilError(t, err)
	_, err = os.Stat(filepath.Join(dataDir, "mystart.log"))
	assert.NilError(t, err)
}

func TestRun_ExportThenImport(t *testing.T) {
	dataDir := setupConfig(t)
	exportPath := filepath.Join(t.TempDir(), "out", "links.json")
	var out bytes.Buffer

	assert.NilError(t, run([]string{"export", exportPath}, strings.NewReader(""), &out))
	assert.Assert(t, strings.Contains(out.String(), "Exported"))

	data, err := os.ReadFile(exportPath)
	assert.NilError(t, err)
	exported, err := model.ParseStore(data)
	assert.NilError(t, err)

	out.Reset()
	assert.NilError(t, run([]string{"import", exportPath}, strings.NewReader(""), &out))
	assert.Assert(t, strings.Contains(out.String(), "Imported"))

	saved, err := storage.NewCollections(storage.NewFileKV(dataDir)).LoadCollection()
	assert.NilError(t, err)
	assert.Equal(t, saved.ItemCount(), exported.ItemCount())
	assert.Equal(t, len(saved.Groups), len(exported.Groups))
}

func TestRun_ImportNeedsFile(t *testing.T) {
	err := run([]string{"import"}, strings.NewReader(""), &bytes.Buffer{})

	assert.ErrorContains(t, err, "usage: mystart import")
}
