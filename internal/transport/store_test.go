package transport

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(store.NewFile(filepath.Join(dir, "transport_modes.json"), filepath.Join(dir, "_backups")))
}

func TestSaveIfNew_AddsOnce(t *testing.T) {
	s := newTestStore(t)

	added, err := s.SaveIfNew("Road")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.SaveIfNew("Road")
	require.NoError(t, err)
	assert.False(t, added)

	modes, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mode of Transport: Road"}, modes)
}

func TestSaveIfNew_EquivalentVariantsDeduplicate(t *testing.T) {
	s := newTestStore(t)

	added, err := s.SaveIfNew("Mode Of Transports - Road")
	require.NoError(t, err)
	assert.True(t, added)

	// Same core in a different shape and case.
	added, err = s.SaveIfNew("mode of transport:road")
	require.NoError(t, err)
	assert.False(t, added)

	cores, err := s.Cores()
	require.NoError(t, err)
	assert.Equal(t, []string{"Road"}, cores)
}

func TestSaveIfNew_BlankIsIgnored(t *testing.T) {
	s := newTestStore(t)

	added, err := s.SaveIfNew("   ")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = s.SaveIfNew("mode of transport:")
	require.NoError(t, err)
	assert.False(t, added)
}

func TestCores_SortedAndDeduplicated(t *testing.T) {
	s := newTestStore(t)

	for _, mode := range []string{"Ship", "Road", "Air", "road"} {
		_, err := s.SaveIfNew(mode)
		require.NoError(t, err)
	}

	cores, err := s.Cores()
	require.NoError(t, err)
	assert.Equal(t, []string{"Air", "Road", "Ship"}, cores)
}
