package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileManager(t *testing.T) *FileManager {
	t.Helper()
	dir := t.TempDir()
	fm := NewFileManager(filepath.Join(dir, "output"), filepath.Join(dir, "archive"))
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func TestEnsureDirectories(t *testing.T) {
	fm := newTestFileManager(t)
	assert.DirExists(t, fm.OutputDir)
	assert.DirExists(t, fm.InputArchiveDir)
}

func TestArchiveInputFile(t *testing.T) {
	fm := newTestFileManager(t)

	input := filepath.Join(t.TempDir(), "sales_data.txt")
	require.NoError(t, os.WriteFile(input, []byte("data"), 0644))

	archivePath, err := fm.ArchiveInputFile(input)
	require.NoError(t, err)

	// Moved, not copied.
	assert.NoFileExists(t, input)
	assert.FileExists(t, archivePath)
	assert.Contains(t, archivePath, "sales_data.txt")
	assert.Equal(t, fm.InputArchiveDir, filepath.Dir(archivePath))
}

func TestArchiveInputFileDisabled(t *testing.T) {
	fm := newTestFileManager(t)
	fm.ArchiveOnSuccess = false

	input := filepath.Join(t.TempDir(), "sales_data.txt")
	require.NoError(t, os.WriteFile(input, []byte("data"), 0644))

	archivePath, err := fm.ArchiveInputFile(input)
	require.NoError(t, err)
	assert.Equal(t, input, archivePath)
	assert.FileExists(t, input)
}

func TestArchiveInputFileUniqueNames(t *testing.T) {
	fm := newTestFileManager(t)
	dir := t.TempDir()

	var archived []string
	for i := 0; i < 2; i++ {
		input := filepath.Join(dir, "sales_data.txt")
		require.NoError(t, os.WriteFile(input, []byte("data"), 0644))

		path, err := fm.ArchiveInputFile(input)
		require.NoError(t, err)
		archived = append(archived, path)
	}

	// Same base name twice, two distinct archive entries.
	assert.NotEqual(t, archived[0], archived[1])
	assert.FileExists(t, archived[0])
	assert.FileExists(t, archived[1])
}

func TestWriteRunLog(t *testing.T) {
	fm := newTestFileManager(t)

	entries := []RunLogEntry{
		{Timestamp: time.Now(), Stage: "parse", Message: "3 malformed lines skipped"},
		{Timestamp: time.Now(), Stage: "enrich", Message: "catalog fetch failed"},
	}

	logPath, err := fm.WriteRunLog("run-123", entries)
	require.NoError(t, err)
	require.NotEmpty(t, logPath)

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Run ID: run-123")
	assert.Contains(t, string(content), "3 malformed lines skipped")
	assert.Contains(t, string(content), "catalog fetch failed")
}

func TestWriteRunLogNoEntries(t *testing.T) {
	fm := newTestFileManager(t)

	logPath, err := fm.WriteRunLog("run-123", nil)
	require.NoError(t, err)
	assert.Empty(t, logPath)
}

func TestCleanOldArchives(t *testing.T) {
	fm := newTestFileManager(t)

	oldFile := filepath.Join(fm.InputArchiveDir, "old.txt")
	newFile := filepath.Join(fm.InputArchiveDir, "new.txt")
	require.NoError(t, os.WriteFile(oldFile, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(newFile, []byte("new"), 0644))

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, stale, stale))

	removed, err := fm.CleanOldArchives(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, newFile)
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
}

func TestGetFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0644))

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = GetFileSize(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
