package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFile(t *testing.T) *File {
	t.Helper()
	dir := t.TempDir()
	return NewFile(filepath.Join(dir, "things.json"), filepath.Join(dir, "_backups"))
}

func TestLoad_MissingFileRecoversToEmpty(t *testing.T) {
	f := newTestFile(t)

	var items []string
	require.NoError(t, f.Load(&items))
	assert.Empty(t, items)
}

func TestLoad_MalformedJSONRecoversToEmpty(t *testing.T) {
	f := newTestFile(t)
	require.NoError(t, os.WriteFile(f.Path(), []byte(`{not json`), 0o644))

	var items []string
	require.NoError(t, f.Load(&items))
	assert.Empty(t, items)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	f := newTestFile(t)

	require.NoError(t, f.Save([]string{"a", "b"}))

	var items []string
	require.NoError(t, f.Load(&items))
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestSave_CreatesBackupOfPriorContent(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "_backups")
	f := NewFile(filepath.Join(dir, "things.json"), backupDir)

	require.NoError(t, f.Save([]string{"first"}))
	require.NoError(t, f.Save([]string{"second"}))
	require.NoError(t, f.Save([]string{"third"}))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	// First save has nothing to back up; the next two do.
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.Contains(t, e.Name(), "things.json.")
		assert.Contains(t, e.Name(), ".bak")
	}
}

func TestSave_NoTempFileLeftBehind(t *testing.T) {
	f := newTestFile(t)
	require.NoError(t, f.Save(map[string]int{"n": 1}))

	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestWithLock_SerializesMutation(t *testing.T) {
	f := newTestFile(t)

	done := make(chan struct{})
	counter := 0
	for i := 0; i < 10; i++ {
		go func() {
			_ = f.WithLock(func() error {
				counter++
				return nil
			})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	assert.Equal(t, 10, counter)
}

func TestAcquireFileLock_Exclusive(t *testing.T) {
	f := newTestFile(t)

	release, err := f.AcquireFileLock()
	require.NoError(t, err)

	_, err = os.Stat(f.Path() + ".lock")
	assert.NoError(t, err, "lock file should exist while held")

	release()

	_, err = os.Stat(f.Path() + ".lock")
	assert.True(t, os.IsNotExist(err), "lock file should be removed on release")

	// Re-acquire after release succeeds immediately.
	release2, err := f.AcquireFileLock()
	require.NoError(t, err)
	release2()
}
